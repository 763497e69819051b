package models

type RequestStatus uint8

const (
	RequestStatus_Pending RequestStatus = iota
	RequestStatus_Processing
	RequestStatus_Anchored
	RequestStatus_Failed
	RequestStatus_Replaced
)

func (s RequestStatus) String() string {
	switch s {
	case RequestStatus_Pending:
		return "PENDING"
	case RequestStatus_Processing:
		return "PROCESSING"
	case RequestStatus_Anchored:
		return "ANCHORED"
	case RequestStatus_Failed:
		return "FAILED"
	case RequestStatus_Replaced:
		return "REPLACED"
	}
	return "UNKNOWN"
}

// Terminal reports whether the status ends a request's lifecycle. PENDING and
// PROCESSING may repeat; the other three appear exactly once, as the last
// event of the sequence.
func (s RequestStatus) Terminal() bool {
	switch s {
	case RequestStatus_Anchored, RequestStatus_Failed, RequestStatus_Replaced:
		return true
	}
	return false
}
