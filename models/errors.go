package models

import (
	"fmt"
	"time"
)

// ConfigurationError means the anchoring service advertised an unusable chain
// configuration. The engine cannot run at all, so this is returned from
// initialization instead of being folded into any request's event sequence.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// TransportError wraps a network-level failure from the injected transport.
// These are transient by assumption and are retried indefinitely during
// submission.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// PollTimeoutError means the polling budget was exhausted before the service
// reported a terminal status. It says nothing about the true fate of the
// anchor, only that the client stopped waiting.
type PollTimeoutError struct {
	Elapsed time.Duration
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("polling exceeded maximum duration after %s without reaching a terminal status", e.Elapsed)
}

// UnreachableCaseError means the service returned a status outside the known
// wire vocabulary, i.e. the protocol changed incompatibly. It is never coerced
// into one of the known internal states.
type UnreachableCaseError struct {
	Status CasStatus
}

func (e *UnreachableCaseError) Error() string {
	return fmt.Sprintf("unreachable case: unknown anchoring service status %q", e.Status)
}
