package census

import (
	"errors"
	"fmt"
	"time"
)

// ErrRunIdentifierMissing indicates a trigger response carried no run
// identifier. This is a local invariant violation, not a remote failure:
// no polling is attempted when it occurs.
var ErrRunIdentifierMissing = errors.New("census: trigger response is missing a run identifier")

// ErrInvalidPollBudget indicates a poll budget with a non-positive frequency.
var ErrInvalidPollBudget = errors.New("census: poll frequency must be greater than zero")

// FetchFailedError indicates the API call to read sync run info failed.
// UserMessage carries the message Census attached to the error response,
// when one could be extracted.
type FetchFailedError struct {
	RunID       int64
	UserMessage string
	Err         error
}

func (e *FetchFailedError) Error() string {
	if e.UserMessage != "" {
		return fmt.Sprintf("census: failed to fetch info for sync run %d: %s", e.RunID, e.UserMessage)
	}
	return fmt.Sprintf("census: failed to fetch info for sync run %d: %v", e.RunID, e.Err)
}

func (e *FetchFailedError) Unwrap() error { return e.Err }

// TriggerFailedError indicates the API call to trigger a sync failed.
type TriggerFailedError struct {
	SyncID      int64
	UserMessage string
	Err         error
}

func (e *TriggerFailedError) Error() string {
	if e.UserMessage != "" {
		return fmt.Sprintf("census: failed to trigger sync %d: %s", e.SyncID, e.UserMessage)
	}
	return fmt.Sprintf("census: failed to trigger sync %d: %v", e.SyncID, e.Err)
}

func (e *TriggerFailedError) Unwrap() error { return e.Err }

// SyncRunTimeoutError indicates no terminal status was observed within the
// configured poll budget.
type SyncRunTimeoutError struct {
	RunID   int64
	MaxWait time.Duration
}

func (e *SyncRunTimeoutError) Error() string {
	return fmt.Sprintf("census: max wait time of %s exceeded while waiting for sync run %d", e.MaxWait, e.RunID)
}

// SyncRunCancelledError indicates the run reached the cancelled status.
type SyncRunCancelledError struct {
	RunID int64
}

func (e *SyncRunCancelledError) Error() string {
	return fmt.Sprintf("census: sync run %d was cancelled", e.RunID)
}

// SyncRunFailedError indicates the run reached the failed status.
type SyncRunFailedError struct {
	RunID int64
}

func (e *SyncRunFailedError) Error() string {
	return fmt.Sprintf("census: sync run %d failed", e.RunID)
}

// UnexpectedTerminalStatusError indicates a run stopped in a status outside
// the known terminal set. Raw carries the status string as the API sent it.
type UnexpectedTerminalStatusError struct {
	RunID int64
	Raw   string
}

func (e *UnexpectedTerminalStatusError) Error() string {
	return fmt.Sprintf("census: sync run %d finished with unexpected status %q", e.RunID, e.Raw)
}
