package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ceramicnetwork/go-cas-client/ceramic"
	"github.com/ceramicnetwork/go-cas-client/models"
)

const AnnouncedMessage = "Sending anchoring request"

// NewAnchorRequest validates the stream and tip identifiers and stamps the
// submission time. The request is immutable from here on.
func NewAnchorRequest(streamId, tip string) (*models.AnchorRequest, error) {
	if _, err := ceramic.ParseStreamId(streamId); err != nil {
		return nil, err
	}
	tipCid, err := ceramic.ParseCommitCid(tip)
	if err != nil {
		return nil, err
	}
	return &models.AnchorRequest{
		Id:        uuid.New(),
		StreamId:  streamId,
		Cid:       tipCid,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// AnchorService drives one anchor request through its full lifecycle: an
// immediate announced event, the submission outcome, then the polling
// sequence, delivered as a single ordered event channel. Any internal fault is
// converted into a terminal FAILED event, so the channel never surfaces errors
// to the caller; it just closes after the terminal event or once the caller
// cancels.
type AnchorService struct {
	registry      *ChainRegistry
	submitter     *RequestSubmitter
	poller        *StatusPoller
	logger        models.Logger
	metricService models.MetricService
	notifier      models.Notifier
}

func NewAnchorService(casApi models.CasApi, logger models.Logger, metricService models.MetricService, notifier models.Notifier) *AnchorService {
	translator := NewStatusTranslator()
	return &AnchorService{
		registry:      NewChainRegistry(casApi, logger),
		submitter:     NewRequestSubmitter(casApi, translator, logger, metricService),
		poller:        NewStatusPoller(casApi, translator, logger, metricService),
		logger:        logger,
		metricService: metricService,
		notifier:      notifier,
	}
}

// Init resolves the anchor chain identifier. It must complete successfully
// before the first RequestAnchor call.
func (a *AnchorService) Init(ctx context.Context) (string, error) {
	return a.registry.Init(ctx)
}

func (a *AnchorService) ChainId() string {
	return a.registry.ChainId()
}

// RequestAnchor starts the lifecycle for one request. Events arrive strictly
// ordered on the returned channel; cancel ctx to abandon the request, which
// releases any pending timers and stops further network calls.
func (a *AnchorService) RequestAnchor(ctx context.Context, anchorReq *models.AnchorRequest) <-chan *models.AnchorStatusEvent {
	events := make(chan *models.AnchorStatusEvent, 1)
	a.metricService.Count(ctx, models.MetricName_AnchorRequested, 1)
	// The announced event is emitted before any network call; the buffer
	// guarantees it lands even if the consumer hasn't started reading yet.
	events <- &models.AnchorStatusEvent{
		Status:   models.RequestStatus_Pending,
		StreamId: anchorReq.StreamId,
		Cid:      anchorReq.Cid,
		Message:  AnnouncedMessage,
	}
	go func() {
		defer close(events)
		if err := a.run(ctx, anchorReq, events); err != nil {
			if ctx.Err() != nil {
				// Abandoned by the caller; no terminal event is owed.
				return
			}
			a.fail(ctx, anchorReq, err, events)
		}
	}()
	return events
}

func (a *AnchorService) run(ctx context.Context, anchorReq *models.AnchorRequest, events chan<- *models.AnchorStatusEvent) error {
	if len(a.registry.ChainId()) == 0 {
		return fmt.Errorf("requestAnchor: anchor chain not resolved, Init must complete before submitting")
	}
	event, err := a.submitter.Submit(ctx, anchorReq)
	if err != nil {
		return err
	}
	select {
	case events <- event:
	case <-ctx.Done():
		return ctx.Err()
	}
	if event.Status.Terminal() {
		a.countOutcome(ctx, event.Status)
		return nil
	}
	terminalEvent, err := a.poller.Poll(ctx, anchorReq, events)
	if err != nil {
		return err
	}
	a.countOutcome(ctx, terminalEvent.Status)
	return nil
}

// fail is the catch-all that re-expresses every internal fault as a terminal
// FAILED event. A poll timeout is a client-side giving-up signal, not a
// service-reported failure; the anchor's true status remains unknown. A
// protocol violation additionally raises an alert, since it means the
// service's status vocabulary changed incompatibly.
func (a *AnchorService) fail(ctx context.Context, anchorReq *models.AnchorRequest, err error, events chan<- *models.AnchorStatusEvent) {
	unreachableErr := new(models.UnreachableCaseError)
	timeoutErr := new(models.PollTimeoutError)
	if errors.As(err, &unreachableErr) {
		a.logger.Errorf("requestAnchor: protocol violation for stream %s: %v", anchorReq.StreamId, err)
		a.metricService.Count(ctx, models.MetricName_ProtocolViolation, 1)
		a.alert(models.AlertDesc_ProtocolViolation, fmt.Sprintf(models.AlertFmt_ProtocolViolation, unreachableErr.Status))
	} else if errors.As(err, &timeoutErr) {
		a.logger.Warnf("requestAnchor: giving up on stream %s: %v", anchorReq.StreamId, err)
		a.metricService.Count(ctx, models.MetricName_PollTimeout, 1)
		a.alert(models.AlertDesc_PollTimeout, fmt.Sprintf(models.AlertFmt_PollTimeout, anchorReq.StreamId, timeoutErr.Elapsed))
	} else {
		a.logger.Errorf("requestAnchor: error anchoring stream %s: %v", anchorReq.StreamId, err)
	}
	a.countOutcome(ctx, models.RequestStatus_Failed)
	select {
	case events <- &models.AnchorStatusEvent{
		Status:   models.RequestStatus_Failed,
		StreamId: anchorReq.StreamId,
		Cid:      anchorReq.Cid,
		Message:  err.Error(),
	}:
	case <-ctx.Done():
	}
}

func (a *AnchorService) countOutcome(ctx context.Context, status models.RequestStatus) {
	switch status {
	case models.RequestStatus_Anchored:
		a.metricService.Count(ctx, models.MetricName_AnchorCompleted, 1)
	case models.RequestStatus_Failed:
		a.metricService.Count(ctx, models.MetricName_AnchorFailed, 1)
	case models.RequestStatus_Replaced:
		a.metricService.Count(ctx, models.MetricName_AnchorReplaced, 1)
	}
}

func (a *AnchorService) alert(desc, content string) {
	if a.notifier != nil {
		if err := a.notifier.SendAlert(models.AlertTitle, desc, content); err != nil {
			a.logger.Errorf("requestAnchor: error sending alert: %v", err)
		}
	}
}
