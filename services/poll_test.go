package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ceramicnetwork/go-cas-client/models"
)

func TestPollUntilTerminalStatus(t *testing.T) {
	t.Setenv(models.Env_PollInterval, "1ms")
	t.Setenv(models.Env_MaxPollTime, "1m")
	casApi := &FakeCasApi{statusResults: []casApiResult{
		{resp: &models.CasStatusResponse{Status: models.CasStatus_Pending}},
		{resp: &models.CasStatusResponse{Status: models.CasStatus_Pending}},
		{resp: &models.CasStatusResponse{Status: models.CasStatus_Processing, Message: "Request is processing."}},
		{resp: &models.CasStatusResponse{
			Status:       models.CasStatus_Completed,
			Message:      "CID successfully anchored.",
			AnchorCommit: &models.CasAnchorCommit{Cid: testCommitCid},
		}},
	}}
	poller := NewStatusPoller(casApi, NewStatusTranslator(), &SpyLogger{}, &FakeMetricService{})

	events := make(chan *models.AnchorStatusEvent, 8)
	terminalEvent, err := poller.Poll(context.Background(), testAnchorRequest(), events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(events)

	expectedStatuses := []models.RequestStatus{
		models.RequestStatus_Pending,
		models.RequestStatus_Pending,
		models.RequestStatus_Processing,
		models.RequestStatus_Anchored,
	}
	received := make([]models.RequestStatus, 0, len(expectedStatuses))
	var lastEvent *models.AnchorStatusEvent
	for event := range events {
		received = append(received, event.Status)
		lastEvent = event
	}
	if len(received) != len(expectedStatuses) {
		t.Fatalf("incorrect number %d of events, expected %d", len(received), len(expectedStatuses))
	}
	for idx, status := range expectedStatuses {
		if received[idx] != status {
			t.Errorf("incorrect status %s at position %d, expected %s", received[idx], idx, status)
		}
	}
	if lastEvent.AnchorCommit == nil || *lastEvent.AnchorCommit != testCommitCid {
		t.Errorf("anchored event is missing a valid anchor commit: %+v", lastEvent)
	}
	if terminalEvent.Status != models.RequestStatus_Anchored {
		t.Errorf("incorrect terminal status %s", terminalEvent.Status)
	}
	if casApi.StatusCalls() != 4 {
		t.Errorf("incorrect number %d of status queries", casApi.StatusCalls())
	}
}

func TestPollTimeout(t *testing.T) {
	t.Setenv(models.Env_PollInterval, "2ms")
	t.Setenv(models.Env_MaxPollTime, "1ms")
	casApi := &FakeCasApi{statusResults: []casApiResult{
		{resp: &models.CasStatusResponse{Status: models.CasStatus_Pending}},
	}}
	poller := NewStatusPoller(casApi, NewStatusTranslator(), &SpyLogger{}, &FakeMetricService{})

	events := make(chan *models.AnchorStatusEvent, 8)
	_, err := poller.Poll(context.Background(), testAnchorRequest(), events)
	timeoutErr := new(models.PollTimeoutError)
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected a PollTimeoutError, got %v", err)
	}
	queriesAtTimeout := casApi.StatusCalls()
	time.Sleep(20 * time.Millisecond)
	if casApi.StatusCalls() != queriesAtTimeout {
		t.Errorf("queries continued after the timeout: %d -> %d", queriesAtTimeout, casApi.StatusCalls())
	}
}

func TestPollCancellation(t *testing.T) {
	t.Setenv(models.Env_PollInterval, "1ms")
	t.Setenv(models.Env_MaxPollTime, "1m")
	casApi := &FakeCasApi{statusResults: []casApiResult{
		{resp: &models.CasStatusResponse{Status: models.CasStatus_Pending}},
	}}
	poller := NewStatusPoller(casApi, NewStatusTranslator(), &SpyLogger{}, &FakeMetricService{})

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan *models.AnchorStatusEvent, 1)
	errC := make(chan error, 1)
	go func() {
		_, err := poller.Poll(ctx, testAnchorRequest(), events)
		errC <- err
	}()
	// Wait for at least one emitted event, then abandon the sequence.
	<-events
	cancel()
	select {
	case err := <-errC:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context cancellation, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("poller did not stop on cancellation")
	}
	queriesAtCancel := casApi.StatusCalls()
	time.Sleep(20 * time.Millisecond)
	if casApi.StatusCalls() != queriesAtCancel {
		t.Errorf("queries continued after cancellation: %d -> %d", queriesAtCancel, casApi.StatusCalls())
	}
}

func TestPollPropagatesTransportErrors(t *testing.T) {
	t.Setenv(models.Env_PollInterval, "1ms")
	t.Setenv(models.Env_MaxPollTime, "1m")
	casApi := &FakeCasApi{statusResults: []casApiResult{
		{err: &models.TransportError{Err: errors.New("connection refused")}},
	}}
	poller := NewStatusPoller(casApi, NewStatusTranslator(), &SpyLogger{}, &FakeMetricService{})

	events := make(chan *models.AnchorStatusEvent, 1)
	_, err := poller.Poll(context.Background(), testAnchorRequest(), events)
	transportErr := new(models.TransportError)
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected a transport error to propagate, got %v", err)
	}
	if casApi.StatusCalls() != 1 {
		t.Errorf("transport error was retried inside the poller: %d queries", casApi.StatusCalls())
	}
}
