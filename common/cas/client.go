package cas

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/abevier/tsk/ratelimiter"

	"github.com/ceramicnetwork/go-cas-client/models"
)

const DefaultCasRateLimit = 16
const DefaultCasBurstLimit = 16
const DefaultCasLimiterMaxQueueDepth = 100

const (
	supportedChainsPath = "/api/v0/service-info/supported_chains"
	requestsPath        = "/api/v0/requests"
)

// Client is the anchoring service seen through its HTTP API. All calls are
// funneled through a rate limiter so that a process with many concurrent
// anchor requests cannot flood the service.
type Client struct {
	url       string
	transport models.Transport
	limiter   *ratelimiter.RateLimiter[*models.TransportRequest, []byte]
}

func NewCasClient(url string, transport models.Transport) *Client {
	rlOpts := ratelimiter.Opts{
		Limit:             DefaultCasRateLimit,
		Burst:             DefaultCasBurstLimit,
		MaxQueueDepth:     DefaultCasLimiterMaxQueueDepth,
		FullQueueStrategy: ratelimiter.BlockWhenFull,
	}
	client := &Client{url: url, transport: transport}
	client.limiter = ratelimiter.New(rlOpts, func(ctx context.Context, req *models.TransportRequest) ([]byte, error) {
		sCtx, sCancel := context.WithTimeout(ctx, models.DefaultHttpWaitTime)
		defer sCancel()
		return client.transport.Send(sCtx, req)
	})
	return client
}

func (c *Client) SupportedChains(ctx context.Context) (*models.CasSupportedChains, error) {
	respBody, err := c.limiter.Submit(ctx, &models.TransportRequest{
		Method: http.MethodGet,
		Url:    c.url + supportedChainsPath,
	})
	if err != nil {
		return nil, &models.TransportError{Err: err}
	}
	chains := new(models.CasSupportedChains)
	if err = json.Unmarshal(respBody, chains); err != nil {
		return nil, &models.TransportError{Err: err}
	}
	return chains, nil
}

func (c *Client) CreateRequest(ctx context.Context, req *models.CasCreateRequest) (*models.CasStatusResponse, error) {
	respBody, err := c.limiter.Submit(ctx, &models.TransportRequest{
		Method: http.MethodPost,
		Url:    c.url + requestsPath,
		Body:   req,
	})
	if err != nil {
		return nil, &models.TransportError{Err: err}
	}
	return decodeStatusResponse(respBody)
}

func (c *Client) RequestStatus(ctx context.Context, cid string) (*models.CasStatusResponse, error) {
	respBody, err := c.limiter.Submit(ctx, &models.TransportRequest{
		Method: http.MethodGet,
		Url:    c.url + requestsPath + "/" + cid,
	})
	if err != nil {
		return nil, &models.TransportError{Err: err}
	}
	return decodeStatusResponse(respBody)
}

// decodeStatusResponse parses a status document. A document carrying an
// application-level error is still a successfully received document and is
// returned as-is; only an unparseable body counts as a transport fault.
func decodeStatusResponse(respBody []byte) (*models.CasStatusResponse, error) {
	statusResp := new(models.CasStatusResponse)
	if err := json.Unmarshal(respBody, statusResp); err != nil {
		return nil, &models.TransportError{Err: err}
	}
	return statusResp, nil
}
