package models

import "context"

// TransportRequest describes one outbound HTTP-style call. Body, if set, is
// sent as JSON.
type TransportRequest struct {
	Method string
	Url    string
	Body   any
}

// Transport is the injected capability for performing network requests. It
// returns the raw response body on success and an error on network failure.
// Implementations must not retry; retry policy belongs to the caller.
type Transport interface {
	Send(ctx context.Context, req *TransportRequest) ([]byte, error)
}

// Authenticator signs outbound requests on behalf of the node identity. It is
// an external collaborator; the engine only routes calls through it.
type Authenticator interface {
	Init(ctx context.Context) error
	SendAuthenticatedRequest(ctx context.Context, req *TransportRequest) ([]byte, error)
}

// CasApi is the anchoring service seen through its three endpoints.
type CasApi interface {
	SupportedChains(ctx context.Context) (*CasSupportedChains, error)
	CreateRequest(ctx context.Context, req *CasCreateRequest) (*CasStatusResponse, error)
	RequestStatus(ctx context.Context, cid string) (*CasStatusResponse, error)
}

type Notifier interface {
	SendAlert(title, desc, content string) error
}

type MetricService interface {
	Count(ctx context.Context, name MetricName, val int) error
	Distribution(ctx context.Context, name MetricName, val int) error
	Shutdown(ctx context.Context)
}

type Logger interface {
	Debugf(template string, args ...interface{})
	Debugw(msg string, args ...interface{})
	Errorf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Infoln(args ...interface{})
	Warnf(template string, args ...interface{})
	Sync() error
}
