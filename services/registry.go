package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/ceramicnetwork/go-cas-client/models"
)

// ChainRegistry resolves the CAIP-2 chain identifier the anchoring service
// anchors to. The identifier is resolved once at startup and cached for the
// life of the process; anchoring against more than one chain is unsupported.
type ChainRegistry struct {
	casApi  models.CasApi
	logger  models.Logger
	chainId string
	mu      sync.Mutex
}

func NewChainRegistry(casApi models.CasApi, logger models.Logger) *ChainRegistry {
	return &ChainRegistry{casApi: casApi, logger: logger}
}

// Init queries the service for its supported chains and caches the single
// advertised chain identifier. It must complete before any request is
// submitted.
func (r *ChainRegistry) Init(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.chainId) > 0 {
		return r.chainId, nil
	}
	chains, err := r.casApi.SupportedChains(ctx)
	if err != nil {
		return "", fmt.Errorf("init: error querying supported chains: %w", err)
	}
	if len(chains.SupportedChains) == 0 {
		return "", &models.ConfigurationError{Reason: "anchoring service advertised no supported chains"}
	}
	if len(chains.SupportedChains) > 1 {
		return "", &models.ConfigurationError{
			Reason: fmt.Sprintf("anchoring on multiple chains is not supported, got %v", chains.SupportedChains),
		}
	}
	r.chainId = chains.SupportedChains[0]
	r.logger.Infof("registry: resolved anchor chain %s", r.chainId)
	return r.chainId, nil
}

// ChainId returns the resolved chain identifier, or the empty string if Init
// has not completed successfully.
func (r *ChainRegistry) ChainId() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chainId
}
