package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ceramicnetwork/go-cas-client/models"
)

func TestChainRegistryInit(t *testing.T) {
	tests := map[string]struct {
		chains          []string
		expectedChainId string
		shouldError     bool
	}{
		"resolves a single advertised chain": {
			chains:          []string{"eip155:1"},
			expectedChainId: "eip155:1",
		},
		"fails on zero advertised chains": {
			chains:      []string{},
			shouldError: true,
		},
		"fails on multiple advertised chains": {
			chains:      []string{"eip155:1", "eip155:100"},
			shouldError: true,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			casApi := &FakeCasApi{chains: &models.CasSupportedChains{SupportedChains: test.chains}}
			registry := NewChainRegistry(casApi, &SpyLogger{})
			chainId, err := registry.Init(context.Background())
			if test.shouldError {
				if err == nil {
					t.Fatalf("expected a configuration error, got chain %s", chainId)
				}
				configErr := new(models.ConfigurationError)
				if !errors.As(err, &configErr) {
					t.Fatalf("expected a ConfigurationError, got %v", err)
				}
				if registry.ChainId() != "" {
					t.Errorf("chain id %s resolved despite failed initialization", registry.ChainId())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if chainId != test.expectedChainId {
				t.Errorf("incorrect chain id %s, expected %s", chainId, test.expectedChainId)
			}
			if registry.ChainId() != test.expectedChainId {
				t.Errorf("incorrect cached chain id %s", registry.ChainId())
			}
		})
	}
}

func TestChainRegistryInitOnce(t *testing.T) {
	casApi := &FakeCasApi{chains: &models.CasSupportedChains{SupportedChains: []string{"eip155:1"}}}
	registry := NewChainRegistry(casApi, &SpyLogger{})
	for i := 0; i < 3; i++ {
		if _, err := registry.Init(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if casApi.chainsCalls != 1 {
		t.Errorf("expected one supported chains query, got %d", casApi.chainsCalls)
	}
}
