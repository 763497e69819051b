package services

import (
	"context"
	"os"
	"time"

	"github.com/ceramicnetwork/go-cas-client/models"
)

// StatusPoller queries the anchoring service for the status of a previously
// submitted request on a fixed interval, until a terminal status is reached or
// the maximum elapsed-time budget is exhausted. Transport errors are not
// retried here; the fixed interval already provides natural backoff, so they
// propagate to the orchestrator's catch-all instead.
type StatusPoller struct {
	casApi        models.CasApi
	translator    *StatusTranslator
	logger        models.Logger
	metricService models.MetricService
	pollInterval  time.Duration
	maxPollTime   time.Duration
}

func NewStatusPoller(casApi models.CasApi, translator *StatusTranslator, logger models.Logger, metricService models.MetricService) *StatusPoller {
	pollInterval := models.DefaultPollInterval
	if configPollInterval, found := os.LookupEnv(models.Env_PollInterval); found {
		if parsedPollInterval, err := time.ParseDuration(configPollInterval); err == nil {
			pollInterval = parsedPollInterval
		}
	}
	maxPollTime := models.DefaultMaxPollTime
	if configMaxPollTime, found := os.LookupEnv(models.Env_MaxPollTime); found {
		if parsedMaxPollTime, err := time.ParseDuration(configMaxPollTime); err == nil {
			maxPollTime = parsedMaxPollTime
		}
	}
	return &StatusPoller{casApi, translator, logger, metricService, pollInterval, maxPollTime}
}

// Poll emits translated status events into the given channel until the request
// reaches a terminal status, which is also returned, or until the budget runs
// out (PollTimeoutError), the consumer cancels, or a query/translation fault
// occurs. The budget is measured from the first tick, and is re-checked before
// each query so no query is issued past it.
func (p *StatusPoller) Poll(ctx context.Context, anchorReq *models.AnchorRequest, events chan<- *models.AnchorStatusEvent) (*models.AnchorStatusEvent, error) {
	tick := time.NewTicker(p.pollInterval)
	defer tick.Stop()
	var startTime time.Time
	numPolls := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-tick.C:
			if startTime.IsZero() {
				startTime = time.Now()
			}
			if elapsed := time.Since(startTime); elapsed > p.maxPollTime {
				return nil, &models.PollTimeoutError{Elapsed: elapsed}
			}
			statusResp, err := p.casApi.RequestStatus(ctx, anchorReq.Cid)
			if err != nil {
				return nil, err
			}
			numPolls++
			p.metricService.Count(ctx, models.MetricName_PollTick, 1)
			event, err := p.translator.Translate(anchorReq, statusResp)
			if err != nil {
				return nil, err
			}
			p.logger.Debugw("poll: status received",
				"stream", anchorReq.StreamId, "cid", anchorReq.Cid, "status", event.Status.String())
			select {
			case events <- event:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			if event.Status.Terminal() {
				p.metricService.Distribution(ctx, models.MetricName_PollCount, numPolls)
				return event, nil
			}
		}
	}
}
