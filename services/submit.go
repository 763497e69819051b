package services

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/ceramicnetwork/go-cas-client/models"
)

// RequestSubmitter sends anchor requests to the anchoring service. Transport
// failures are assumed transient and are retried after a fixed delay,
// indefinitely, each one logged. An application-level error reported by the
// service is not retried; it translates into a terminal FAILED event.
type RequestSubmitter struct {
	casApi        models.CasApi
	translator    *StatusTranslator
	logger        models.Logger
	metricService models.MetricService
	retryInterval time.Duration
}

func NewRequestSubmitter(casApi models.CasApi, translator *StatusTranslator, logger models.Logger, metricService models.MetricService) *RequestSubmitter {
	retryInterval := models.DefaultPollInterval
	if configPollInterval, found := os.LookupEnv(models.Env_PollInterval); found {
		if parsedPollInterval, err := time.ParseDuration(configPollInterval); err == nil {
			retryInterval = parsedPollInterval
		}
	}
	if configRetryInterval, found := os.LookupEnv(models.Env_RetryInterval); found {
		if parsedRetryInterval, err := time.ParseDuration(configRetryInterval); err == nil {
			retryInterval = parsedRetryInterval
		}
	}
	return &RequestSubmitter{casApi, translator, logger, metricService, retryInterval}
}

// Submit blocks until the submission is accepted or terminally rejected by
// the service, or the context is canceled. The result is a single event, not
// a stream; the poller takes over from there.
func (s *RequestSubmitter) Submit(ctx context.Context, anchorReq *models.AnchorRequest) (*models.AnchorStatusEvent, error) {
	createReq := &models.CasCreateRequest{
		StreamId:  anchorReq.StreamId,
		Cid:       anchorReq.Cid,
		Timestamp: anchorReq.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	for {
		statusResp, err := s.casApi.CreateRequest(ctx, createReq)
		if err == nil {
			return s.translator.Translate(anchorReq, statusResp)
		}
		transportErr := new(models.TransportError)
		if !errors.As(err, &transportErr) {
			return nil, err
		}
		s.logger.Errorf("submit: error submitting request %s for stream %s: %v", anchorReq.Id, anchorReq.StreamId, err)
		s.metricService.Count(ctx, models.MetricName_SubmissionRetry, 1)
		timer := time.NewTimer(s.retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
