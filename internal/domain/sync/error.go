package sync

import (
	"errors"
	"fmt"
)

var (
	// ErrInProgress is returned when Sync is invoked while another
	// invocation is still running.
	ErrInProgress = errors.New("sync already in progress")

	// ErrNotAuthenticated is returned when no session token is available.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// PushError reports a failed push phase. The pull is never attempted and
// local state is left untouched.
type PushError struct {
	Status  int
	Message string
	Timeout bool
	Err     error
}

func (e *PushError) Error() string {
	return "push failed: " + phaseDetail(e.Status, e.Message, e.Timeout, e.Err)
}

func (e *PushError) Unwrap() error { return e.Err }

// PullError reports a failed pull phase after a successful push. Local data
// is unmodified and pending deletions are retained for retry.
type PullError struct {
	Status  int
	Message string
	Timeout bool
	Err     error
}

func (e *PullError) Error() string {
	return "pull failed: " + phaseDetail(e.Status, e.Message, e.Timeout, e.Err)
}

func (e *PullError) Unwrap() error { return e.Err }

func phaseDetail(status int, message string, timeout bool, err error) string {
	switch {
	case timeout:
		return "request timed out"
	case message != "":
		return message
	case status != 0:
		return fmt.Sprintf("server returned status %d", status)
	case err != nil:
		return err.Error()
	default:
		return "unknown error"
	}
}
