package models

import "time"

const DefaultPollInterval = time.Minute
const DefaultMaxPollTime = 24 * time.Hour
const DefaultHttpWaitTime = 30 * time.Second

const (
	Env_PollInterval  = "ANCHOR_POLL_INTERVAL"
	Env_MaxPollTime   = "ANCHOR_POLL_MAX_TIME"
	Env_RetryInterval = "ANCHOR_RETRY_INTERVAL"
)

// CasStatus is the wire status vocabulary of the anchoring service. It is
// larger than the internal RequestStatus set and is collapsed into it by the
// status translator.
type CasStatus string

const (
	CasStatus_Ready      CasStatus = "READY"
	CasStatus_Pending    CasStatus = "PENDING"
	CasStatus_Processing CasStatus = "PROCESSING"
	CasStatus_Failed     CasStatus = "FAILED"
	CasStatus_Replaced   CasStatus = "REPLACED"
	CasStatus_Completed  CasStatus = "COMPLETED"
)

type CasAnchorCommit struct {
	Cid string `json:"cid" validate:"required"`
}

// CasStatusResponse is the status document returned by the anchoring service,
// both from request creation and from status polling. A non-empty Error means
// the service reported an application-level failure for the request; that is
// distinct from a transport error, which never produces a document at all.
type CasStatusResponse struct {
	Id           string           `json:"id"`
	Status       CasStatus        `json:"status" validate:"required"`
	StreamId     string           `json:"streamId"`
	Cid          string           `json:"cid"`
	Message      string           `json:"message"`
	AnchorCommit *CasAnchorCommit `json:"anchorCommit,omitempty"`
	Error        string           `json:"error,omitempty"`
}

type CasCreateRequest struct {
	StreamId  string `json:"streamId"`
	Cid       string `json:"cid"`
	Timestamp string `json:"timestamp"`
}

type CasSupportedChains struct {
	SupportedChains []string `json:"supportedChains" validate:"required"`
}
