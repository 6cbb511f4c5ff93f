package census

import "github.com/iancoleman/strcase"

// SyncRunStatus classifies the state of a Census sync run.
// The underlying values are the lowercase strings used on the wire.
type SyncRunStatus string

const (
	StatusQueued    SyncRunStatus = "queued"
	StatusWorking   SyncRunStatus = "working"
	StatusCompleted SyncRunStatus = "completed"
	StatusFailed    SyncRunStatus = "failed"
	StatusCancelled SyncRunStatus = "cancelled"
	StatusUnknown   SyncRunStatus = "unknown"
)

// ClassifySyncRunStatus maps a raw status string from the Census API to a
// SyncRunStatus. It is total: unrecognised values classify as StatusUnknown
// rather than failing, so a new upstream status never breaks polling.
func ClassifySyncRunStatus(raw string) SyncRunStatus {
	switch SyncRunStatus(raw) {
	case StatusQueued, StatusWorking, StatusCompleted, StatusFailed, StatusCancelled:
		return SyncRunStatus(raw)
	}
	return StatusUnknown
}

// IsTerminal reports whether a run in this status will transition no further.
// StatusUnknown is never terminal.
func (s SyncRunStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// DisplayName returns the status in the casing used for progress logging,
// e.g. "Working" for "working".
func (s SyncRunStatus) DisplayName() string {
	return strcase.ToCamel(string(s))
}
