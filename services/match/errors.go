// Copyright (C) 2025 Harborline Supply Co.
// Licensed under the Apache License, Version 2.0.
// See the LICENSE file for details.

package match

import (
	"errors"
	"fmt"
)

// ErrInvalidInput rejects a problem description that is empty or shorter
// than three characters after trimming. No upstream call is made.
var ErrInvalidInput = errors.New("problem description too short")

// ErrMissingCredential is a startup-time misconfiguration: no API key was
// supplied for the completion service. Reported distinctly from runtime
// upstream failures.
var ErrMissingCredential = errors.New("completion API key not configured")

// Kind classifies a completion-service failure for the caller.
type Kind string

const (
	// KindUnavailable covers network failures and non-429 error
	// responses. The caller may retry later.
	KindUnavailable Kind = "unavailable"

	// KindRateLimited is a 429 without a quota code. Retrying after a
	// pause is useful.
	KindRateLimited Kind = "rate_limited"

	// KindQuotaExceeded is a 429 carrying a quota-exhaustion code. It
	// implies operator action (billing), not retry.
	KindQuotaExceeded Kind = "quota_exceeded"
)

// UpstreamError is a classified completion-service failure. RequestID
// correlates the failure with server logs for support diagnosis; Status is
// the upstream HTTP status when one was reported.
type UpstreamError struct {
	Kind      Kind
	Status    int
	RequestID string
	err       error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion service %s: %v", e.Kind, e.err)
}

func (e *UpstreamError) Unwrap() error { return e.err }

// Message is the stable, user-presentable description of the failure.
func (e *UpstreamError) Message() string {
	switch e.Kind {
	case KindQuotaExceeded:
		return "Completion quota exhausted for this API key."
	case KindRateLimited:
		return "Rate limited. Please wait a moment and try again."
	default:
		return "Product matching is unavailable right now."
	}
}
