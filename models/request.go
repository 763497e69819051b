package models

import (
	"time"

	"github.com/google/uuid"
)

// AnchorRequest identifies one stream tip to be anchored. Immutable once
// constructed; the engine holds no reference to it after the event sequence
// for it completes.
type AnchorRequest struct {
	Id        uuid.UUID `json:"reqId"`
	StreamId  string    `json:"streamId"`
	Cid       string    `json:"cid"`
	CreatedAt time.Time `json:"ts"`
}

// AnchorStatusEvent is the unit of output of the lifecycle engine. AnchorCommit
// is set only when Status is ANCHORED.
type AnchorStatusEvent struct {
	Status       RequestStatus `json:"status"`
	StreamId     string        `json:"streamId"`
	Cid          string        `json:"cid"`
	Message      string        `json:"message"`
	AnchorCommit *string       `json:"anchorCommit,omitempty"`
}
