package domain

import (
	"errors"
	"fmt"
)

type FailureReason int

const (
	FailureUnknownFact FailureReason = iota + 1
	FailureUnresolvablePrice
	FailureUnavailableUtilization
	FailureUpstream
)

func (r FailureReason) String() string {
	switch r {
	case FailureUnknownFact:
		return "unknown_fact"
	case FailureUnresolvablePrice:
		return "unresolvable_price"
	case FailureUnavailableUtilization:
		return "unavailable_utilization"
	case FailureUpstream:
		return "upstream_failure"
	default:
		return "unclassified"
	}
}

// Failure is an error tagged with the class of problem that produced it.
// Key identifies the resource, price or query involved.
type Failure struct {
	Reason FailureReason
	Key    string
	Err    error
}

func NewFailure(reason FailureReason, key string, err error) *Failure {
	return &Failure{Reason: reason, Key: key, Err: err}
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s: %s", f.Reason, f.Key)
	}
	return fmt.Sprintf("%s: %s: %v", f.Reason, f.Key, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// FailureReasonOf reports the reason of the first Failure in err's chain.
func FailureReasonOf(err error) (FailureReason, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f.Reason, true
	}
	return 0, false
}
