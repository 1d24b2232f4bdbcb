package tiktok

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies browser operation failures so callers can pattern
// match instead of string-matching wrapped errors.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindNotFound: no locator expression produced a visible element.
	KindNotFound
	// KindNotInteractable: the element was found but every interaction
	// strategy failed on it.
	KindNotInteractable
	// KindStale: the element handle no longer points at a live node.
	KindStale
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindNotInteractable:
		return "not_interactable"
	case KindStale:
		return "stale"
	default:
		return "unknown"
	}
}

// OpError is the failure result of a single page operation.
type OpError struct {
	Kind   ErrorKind
	Target string
	Err    error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Target, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Target, e.Kind)
}

func (e *OpError) Unwrap() error { return e.Err }

// KindOf extracts the ErrorKind from an error chain, KindUnknown when the
// chain carries no OpError.
func KindOf(err error) ErrorKind {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return KindUnknown
}

func notFound(target string, err error) *OpError {
	return &OpError{Kind: KindNotFound, Target: target, Err: err}
}

func notInteractable(target string, err error) *OpError {
	return &OpError{Kind: KindNotInteractable, Target: target, Err: err}
}
