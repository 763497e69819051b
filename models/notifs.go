package models

const AlertTitle = "CAS Client Alert"

const (
	AlertDesc_ProtocolViolation = "Protocol Violation"
	AlertDesc_PollTimeout       = "Poll Timeout"
)

const (
	AlertFmt_ProtocolViolation string = "unknown anchoring service status:\n%s"
	AlertFmt_PollTimeout       string = "gave up polling stream %s after %s"
)
