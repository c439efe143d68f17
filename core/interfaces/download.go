// ABOUTME: Download delegation contract between the fetch pipeline and the transport layer
// ABOUTME: The core never performs network I/O itself; it hands requests to a Downloader

package interfaces

import (
	"context"
	"errors"
)

// ErrNoHandler is returned by Delegate when no download handler accepts the
// request, for example because the URL scheme is not supported.
var ErrNoHandler = errors.New("no download handler accepts the request")

// ErrorCategory classifies terminal download failures.
type ErrorCategory int

const (
	CategoryUnknown ErrorCategory = iota
	CategoryNotFound
	CategoryAccessDenied
	CategoryLocalError
	CategoryUserCanceled
)

// String returns the human string used in user-facing failure notifications.
func (c ErrorCategory) String() string {
	switch c {
	case CategoryNotFound:
		return "address not found"
	case CategoryAccessDenied:
		return "access denied"
	case CategoryLocalError:
		return "local error"
	case CategoryUserCanceled:
		return "user canceled the download"
	default:
		return "unknown error"
	}
}

// DownloadRequest asks the transport layer to fetch URL into DestPath.
type DownloadRequest struct {
	// URL is the address to fetch.
	URL string

	// DestPath is the local file the document bytes are written to.
	DestPath string

	// Internal marks the request as machine-initiated; handlers should not
	// surface it as a user-visible download entry.
	Internal bool

	// Silent suppresses handler-side progress reporting.
	Silent bool

	// NotPersistent tells handlers not to record the request in any
	// download history.
	NotPersistent bool
}

// DownloadError is the error variant of a download result.
type DownloadError struct {
	Category ErrorCategory
	Cause    error
}

// Error implements the error interface.
func (e *DownloadError) Error() string {
	if e.Cause != nil {
		return e.Category.String() + ": " + e.Cause.Error()
	}
	return e.Category.String()
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *DownloadError) Unwrap() error { return e.Cause }

// Downloader is the external download capability. Delegate returns a channel
// that delivers exactly one result: nil on success, a *DownloadError on a
// terminal failure. Delegate itself fails only when no handler accepts the
// request (ErrNoHandler); the fetch never started in that case.
//
// There is no cancellation beyond the passed context and no timeout at this
// level; retry and timeout policy belong to the implementation.
type Downloader interface {
	Delegate(ctx context.Context, req DownloadRequest) (<-chan *DownloadError, error)
}
