package cas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ceramicnetwork/go-cas-client/models"
)

// HttpTransport is the default models.Transport over net/http. It performs no
// retries; retry policy belongs to the engine.
type HttpTransport struct {
	client *http.Client
}

func NewHttpTransport() *HttpTransport {
	return &HttpTransport{client: http.DefaultClient}
}

func (t *HttpTransport) Send(ctx context.Context, transportReq *models.TransportRequest) ([]byte, error) {
	var reqBody io.Reader
	if transportReq.Body != nil {
		encodedBody, err := json.Marshal(transportReq.Body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(encodedBody)
	}
	req, err := http.NewRequestWithContext(ctx, transportReq.Method, transportReq.Url, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Content-Type", "application/json")
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	// Error documents ride on non-2xx responses with a JSON body. Anything
	// else (proxies, load balancer pages) is a transport fault.
	if resp.StatusCode >= http.StatusBadRequest && !json.Valid(respBody) {
		return nil, fmt.Errorf("send: error in response: %v, %s", resp.StatusCode, respBody)
	}
	return respBody, nil
}
