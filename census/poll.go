package census

import (
	"context"
	"time"
)

// Defaults for how long and how often to poll a sync run.
const (
	DefaultMaxWait       = 900 * time.Second
	DefaultPollFrequency = 10 * time.Second
)

// PollBudget bounds a single wait: MaxWait is the total wall clock allowed
// and PollFrequency the fixed interval between status checks. There is no
// backoff and no jitter — the cadence is strictly fixed.
type PollBudget struct {
	MaxWait       time.Duration
	PollFrequency time.Duration
}

// DefaultPollBudget returns the standard budget of 900 seconds total at a
// 10 second cadence.
func DefaultPollBudget() PollBudget {
	return PollBudget{MaxWait: DefaultMaxWait, PollFrequency: DefaultPollFrequency}
}

// WaitForSyncRun polls the given run at a fixed cadence until it reaches a
// terminal status or the budget is exhausted.
//
// Elapsed time starts at zero and the budget check runs before each fetch,
// so at least one fetch is always made and N status checks fit in the
// budget iff (N-1)*PollFrequency <= MaxWait. A fetch failure propagates
// immediately as a FetchFailedError and is never retried here. Any
// terminal status returns the record as-is: mapping completed, failed or
// cancelled to an outcome is the caller's concern. An exhausted budget
// returns a SyncRunTimeoutError.
//
// The sleep between fetches is the loop's only suspension point; it
// responds to ctx, so cancelling the host task aborts the wait promptly
// with the context's error.
func WaitForSyncRun(ctx context.Context, client *Client, runID int64, budget PollBudget, logger Logger) (RunRecord, error) {
	if budget.PollFrequency <= 0 {
		return RunRecord{}, ErrInvalidPollBudget
	}
	if logger == nil {
		logger = DefaultLogger()
	}
	var elapsed time.Duration
	for elapsed <= budget.MaxWait {
		record, err := client.GetSyncRunInfo(ctx, runID)
		if err != nil {
			return RunRecord{}, err
		}
		if record.Status.IsTerminal() {
			return record, nil
		}
		logger.Printf("Census sync run %d has status %s. Waiting for %s.",
			runID, record.Status.DisplayName(), budget.PollFrequency)
		if err := sleep(ctx, budget.PollFrequency); err != nil {
			return RunRecord{}, err
		}
		elapsed += budget.PollFrequency
	}
	return RunRecord{}, &SyncRunTimeoutError{RunID: runID, MaxWait: budget.MaxWait}
}

// sleep pauses for d or until ctx is cancelled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
