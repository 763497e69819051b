package services

import (
	"context"

	"github.com/ceramicnetwork/go-cas-client/models"
)

// AuthenticatedTransport routes outbound calls through an authenticator's
// request-signing capability instead of the plain transport. Build the CAS
// API client over it to get signed submissions.
type AuthenticatedTransport struct {
	authenticator models.Authenticator
}

func NewAuthenticatedTransport(authenticator models.Authenticator) *AuthenticatedTransport {
	return &AuthenticatedTransport{authenticator}
}

func (t *AuthenticatedTransport) Send(ctx context.Context, req *models.TransportRequest) ([]byte, error) {
	return t.authenticator.SendAuthenticatedRequest(ctx, req)
}

// AuthenticatedAnchorService decorates an AnchorService whose transport is an
// AuthenticatedTransport: the only behavioral difference from the base engine
// is that the authenticator is initialized before the chain registry.
type AuthenticatedAnchorService struct {
	*AnchorService
	authenticator models.Authenticator
}

func NewAuthenticatedAnchorService(anchorService *AnchorService, authenticator models.Authenticator) *AuthenticatedAnchorService {
	return &AuthenticatedAnchorService{anchorService, authenticator}
}

func (a *AuthenticatedAnchorService) Init(ctx context.Context) (string, error) {
	if err := a.authenticator.Init(ctx); err != nil {
		return "", err
	}
	return a.AnchorService.Init(ctx)
}
