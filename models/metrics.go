package models

type MetricName string

// Counts
const (
	MetricName_AnchorRequested   MetricName = "anchor_requested"
	MetricName_AnchorCompleted   MetricName = "anchor_completed"
	MetricName_AnchorFailed      MetricName = "anchor_failed"
	MetricName_AnchorReplaced    MetricName = "anchor_replaced"
	MetricName_PollTick          MetricName = "poll_tick"
	MetricName_PollTimeout       MetricName = "poll_timeout"
	MetricName_ProtocolViolation MetricName = "protocol_violation"
	MetricName_SubmissionRetry   MetricName = "submission_retry"
)

// Distributions
const (
	MetricName_PollCount MetricName = "poll_count"
)
