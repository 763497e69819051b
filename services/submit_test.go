package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ceramicnetwork/go-cas-client/models"
)

func TestSubmitRetriesTransportErrors(t *testing.T) {
	tests := map[string]struct {
		failCount int
	}{
		"succeeds on first attempt":   {failCount: 0},
		"retries once then succeeds":  {failCount: 1},
		"retries twice then succeeds": {failCount: 2},
	}
	t.Setenv(models.Env_RetryInterval, "1ms")
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			results := make([]casApiResult, 0, test.failCount+1)
			for i := 0; i < test.failCount; i++ {
				results = append(results, casApiResult{err: &models.TransportError{Err: errors.New("connection refused")}})
			}
			results = append(results, casApiResult{resp: &models.CasStatusResponse{Status: models.CasStatus_Pending}})
			casApi := &FakeCasApi{createResults: results}
			logger := &SpyLogger{}
			submitter := NewRequestSubmitter(casApi, NewStatusTranslator(), logger, &FakeMetricService{})

			event, err := submitter.Submit(context.Background(), testAnchorRequest())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if event.Status != models.RequestStatus_Pending {
				t.Errorf("incorrect status %s", event.Status)
			}
			if casApi.CreateCalls() != test.failCount+1 {
				t.Errorf("incorrect number %d of submission attempts, expected %d", casApi.CreateCalls(), test.failCount+1)
			}
			if logger.ErrorCount() != test.failCount {
				t.Errorf("incorrect number %d of logged errors, expected %d", logger.ErrorCount(), test.failCount)
			}
		})
	}
}

func TestSubmitDoesNotRetryApplicationErrors(t *testing.T) {
	t.Setenv(models.Env_RetryInterval, "1ms")
	casApi := &FakeCasApi{createResults: []casApiResult{
		{resp: &models.CasStatusResponse{Status: models.CasStatus_Pending, Error: "stream conflict"}},
	}}
	logger := &SpyLogger{}
	submitter := NewRequestSubmitter(casApi, NewStatusTranslator(), logger, &FakeMetricService{})

	event, err := submitter.Submit(context.Background(), testAnchorRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Status != models.RequestStatus_Failed {
		t.Errorf("incorrect status %s, expected FAILED", event.Status)
	}
	if event.Message != "stream conflict" {
		t.Errorf("incorrect message %q", event.Message)
	}
	if casApi.CreateCalls() != 1 {
		t.Errorf("application error was retried: %d attempts", casApi.CreateCalls())
	}
	if logger.ErrorCount() != 0 {
		t.Errorf("application error was logged as a retry: %d errors", logger.ErrorCount())
	}
}

func TestSubmitCancellation(t *testing.T) {
	// A long retry delay so that cancellation lands while the submitter is
	// waiting to retry.
	t.Setenv(models.Env_RetryInterval, "1h")
	casApi := &FakeCasApi{createResults: []casApiResult{
		{err: &models.TransportError{Err: errors.New("connection refused")}},
	}}
	submitter := NewRequestSubmitter(casApi, NewStatusTranslator(), &SpyLogger{}, &FakeMetricService{})

	ctx, cancel := context.WithCancel(context.Background())
	errC := make(chan error, 1)
	go func() {
		_, err := submitter.Submit(ctx, testAnchorRequest())
		errC <- err
	}()
	cancel()
	select {
	case err := <-errC:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context cancellation, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("submitter did not stop on cancellation")
	}
	if casApi.CreateCalls() != 1 {
		t.Errorf("incorrect number %d of submission attempts after cancellation", casApi.CreateCalls())
	}
}
