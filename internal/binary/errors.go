package binary

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyRedirects is returned when a redirect chain exceeds the limit.
	ErrTooManyRedirects = errors.New("too many redirects")
	// ErrEntryNotFound is returned when the tarball lacks the binary entry.
	ErrEntryNotFound = errors.New("entry not found in archive")
	// ErrIntegrityMismatch is returned when a tarball fails its SRI check.
	ErrIntegrityMismatch = errors.New("integrity mismatch")
)

// StatusError reports a registry response outside the success and redirect
// ranges.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("registry responded with status code %d when downloading %s", e.StatusCode, e.URL)
}

// ArchiveFormatError reports a malformed or truncated tar archive.
type ArchiveFormatError struct {
	Offset int64
	Reason string
	Err    error
}

func (e *ArchiveFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed archive at offset %d: %s: %v", e.Offset, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed archive at offset %d: %s", e.Offset, e.Reason)
}

func (e *ArchiveFormatError) Unwrap() error {
	return e.Err
}
