package powerautomate

import (
	"fmt"
)

// APIErrorKind identifies which listing call was answered with a non-2xx status.
type APIErrorKind int

const (
	EnvironmentListFailed APIErrorKind = iota
	FlowListFailed
)

func (k APIErrorKind) String() string {
	switch k {
	case EnvironmentListFailed:
		return "environment list failed"
	case FlowListFailed:
		return "flow list failed"
	default:
		return "unknown"
	}
}

// APIError is returned when the API answers with a non-2xx status. Body is kept verbatim.
type APIError struct {
	Kind        APIErrorKind
	Environment string
	StatusCode  int
	Body        string
}

func (e *APIError) Error() string {
	if e.Kind == FlowListFailed {
		return fmt.Sprintf("failed to retrieve flows for environment %s: status code %d: %s", e.Environment, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("failed to retrieve environments: status code %d: %s", e.StatusCode, e.Body)
}

// FaultError reports a failure nothing above the caller is expected to handle:
// a transport error, a body that is not JSON, or a missing field.
type FaultError struct {
	Op  string
	Err error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}
