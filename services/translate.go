package services

import (
	"fmt"

	"github.com/go-playground/validator"

	"github.com/ceramicnetwork/go-cas-client/ceramic"
	"github.com/ceramicnetwork/go-cas-client/models"
)

const PendingMessage = "Request is pending."

// StatusTranslator collapses the anchoring service's wire status vocabulary
// into the internal lifecycle states. It performs no I/O and no retries.
type StatusTranslator struct {
	validator *validator.Validate
}

func NewStatusTranslator() *StatusTranslator {
	return &StatusTranslator{validator: validator.New()}
}

// Translate maps one status document onto a lifecycle event for the given
// request. An application-level error in the document becomes a FAILED event.
// An unknown wire status is a contract fault and is returned as an
// UnreachableCaseError rather than being coerced into a known state.
func (t *StatusTranslator) Translate(anchorReq *models.AnchorRequest, statusResp *models.CasStatusResponse) (*models.AnchorStatusEvent, error) {
	if len(statusResp.Error) > 0 {
		return t.newEvent(anchorReq, models.RequestStatus_Failed, statusResp.Error), nil
	}
	if err := t.validator.Struct(statusResp); err != nil {
		return nil, fmt.Errorf("translate: invalid status response for stream %s: %v", anchorReq.StreamId, err)
	}
	switch statusResp.Status {
	case models.CasStatus_Ready, models.CasStatus_Pending:
		return t.newEvent(anchorReq, models.RequestStatus_Pending, orDefault(statusResp.Message, PendingMessage)), nil
	case models.CasStatus_Processing:
		return t.newEvent(anchorReq, models.RequestStatus_Processing, statusResp.Message), nil
	case models.CasStatus_Failed:
		return t.newEvent(anchorReq, models.RequestStatus_Failed, statusResp.Message), nil
	case models.CasStatus_Replaced:
		return t.newEvent(anchorReq, models.RequestStatus_Replaced, statusResp.Message), nil
	case models.CasStatus_Completed:
		if statusResp.AnchorCommit == nil {
			return nil, fmt.Errorf("translate: completed response for stream %s is missing an anchor commit", anchorReq.StreamId)
		}
		anchorCommit, err := ceramic.ParseCommitCid(statusResp.AnchorCommit.Cid)
		if err != nil {
			return nil, fmt.Errorf("translate: completed response for stream %s: %v", anchorReq.StreamId, err)
		}
		event := t.newEvent(anchorReq, models.RequestStatus_Anchored, statusResp.Message)
		event.AnchorCommit = &anchorCommit
		return event, nil
	}
	return nil, &models.UnreachableCaseError{Status: statusResp.Status}
}

// Every event carries the stream/tip pair of the original request, regardless
// of what the service echoed back.
func (t *StatusTranslator) newEvent(anchorReq *models.AnchorRequest, status models.RequestStatus, message string) *models.AnchorStatusEvent {
	return &models.AnchorStatusEvent{
		Status:   status,
		StreamId: anchorReq.StreamId,
		Cid:      anchorReq.Cid,
		Message:  message,
	}
}

func orDefault(message, fallback string) string {
	if len(message) > 0 {
		return message
	}
	return fallback
}
