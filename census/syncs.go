package census

import (
	"context"
	"errors"
	"fmt"
	gosync "sync"
)

// WaitOption adjusts the exported sync operations.
type WaitOption func(*waitOptions)

type waitOptions struct {
	logger  Logger
	policy  CallPolicy
	client  []ClientOption
	trigger []TriggerOption
}

// WithWaitLogger sets the progress logger.
func WithWaitLogger(logger Logger) WaitOption {
	return func(o *waitOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCallPolicy overrides the retry policy applied to single-shot API calls.
func WithCallPolicy(policy CallPolicy) WaitOption {
	return func(o *waitOptions) {
		o.policy = policy
	}
}

// WithClientOptions forwards options to the underlying API client.
func WithClientOptions(opts ...ClientOption) WaitOption {
	return func(o *waitOptions) {
		o.client = append(o.client, opts...)
	}
}

// WithTriggerOptions forwards options to the trigger call.
func WithTriggerOptions(opts ...TriggerOption) WaitOption {
	return func(o *waitOptions) {
		o.trigger = append(o.trigger, opts...)
	}
}

func newWaitOptions(opts []WaitOption) waitOptions {
	options := waitOptions{
		logger: DefaultLogger(),
		policy: DefaultCallPolicy(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func (o waitOptions) newClient(creds Credentials) *Client {
	clientOpts := append([]ClientOption{WithClientLogger(o.logger)}, o.client...)
	return creds.GetClient(clientOpts...)
}

// GetSyncRunInfo retrieves the current state of a sync run, applying the
// call-layer retry policy to transport failures.
func GetSyncRunInfo(ctx context.Context, creds Credentials, runID int64, opts ...WaitOption) (RunRecord, error) {
	options := newWaitOptions(opts)
	client := options.newClient(creds)
	var record RunRecord
	err := retryCall(ctx, options.policy, func() error {
		var err error
		record, err = client.GetSyncRunInfo(ctx, runID)
		return err
	})
	return record, err
}

// TriggerSyncRun starts a run of the given sync, applying the call-layer
// retry policy to transport failures, and returns the trigger payload.
func TriggerSyncRun(ctx context.Context, creds Credentials, syncID int64, opts ...WaitOption) (RunRecord, error) {
	options := newWaitOptions(opts)
	client := options.newClient(creds)
	return triggerSyncRun(ctx, client, syncID, options)
}

func triggerSyncRun(ctx context.Context, client *Client, syncID int64, options waitOptions) (RunRecord, error) {
	options.logger.Printf("Triggering Census sync run for sync with ID %d", syncID)
	var record RunRecord
	err := retryCall(ctx, options.policy, func() error {
		var err error
		record, err = client.TriggerSyncRun(ctx, syncID, options.trigger...)
		return err
	})
	return record, err
}

// TriggerSyncRunAndWait triggers a run of the given sync and blocks until
// the run reaches a terminal status or the budget is exhausted.
//
// A completed run returns its final record. Other outcomes return the
// typed failure for the caller to branch on: SyncRunCancelledError or
// SyncRunFailedError for runs that stopped without completing (alongside
// the final record), ErrRunIdentifierMissing when the trigger payload
// carried no run id (in which case no polling happens at all),
// SyncRunTimeoutError when the budget runs out, and TriggerFailedError or
// FetchFailedError when the API calls themselves fail.
func TriggerSyncRunAndWait(ctx context.Context, creds Credentials, syncID int64, budget PollBudget, opts ...WaitOption) (RunRecord, error) {
	options := newWaitOptions(opts)
	client := options.newClient(creds)

	triggered, err := triggerSyncRun(ctx, client, syncID, options)
	if err != nil {
		return RunRecord{}, err
	}

	runID, ok := triggered.runIdentifier()
	if !ok {
		return RunRecord{}, ErrRunIdentifierMissing
	}
	options.logger.Printf("Census sync run with ID %d successfully triggered for sync with ID %d. "+
		"You can view the status of this sync run at %s/sync/%d/sync-history", runID, syncID, BaseURL, syncID)

	record, err := WaitForSyncRun(ctx, client, runID, budget, options.logger)
	if err != nil {
		return RunRecord{}, err
	}

	switch record.Status {
	case StatusCompleted:
		return record, nil
	case StatusCancelled:
		return record, &SyncRunCancelledError{RunID: runID}
	case StatusFailed:
		return record, &SyncRunFailedError{RunID: runID}
	}
	return record, &UnexpectedTerminalStatusError{RunID: runID, Raw: record.RawStatus()}
}

// SyncRunResult pairs a sync id with the outcome of its triggered run.
type SyncRunResult struct {
	SyncID int64
	Record RunRecord
	Err    error
}

// TriggerSyncRunsAndWait triggers a run for each of the given syncs and
// waits on all of them concurrently. Each wait polls independently; one
// failing does not stop the others. Results are returned in the order of
// syncIDs and the returned error joins all individual failures.
func TriggerSyncRunsAndWait(ctx context.Context, creds Credentials, syncIDs []int64, budget PollBudget, opts ...WaitOption) ([]SyncRunResult, error) {
	if len(syncIDs) == 0 {
		return nil, nil
	}

	results := make([]SyncRunResult, len(syncIDs))
	var wg gosync.WaitGroup
	for i, syncID := range syncIDs {
		wg.Add(1)
		go func(index int, id int64) {
			defer wg.Done()
			record, err := TriggerSyncRunAndWait(ctx, creds, id, budget, opts...)
			results[index] = SyncRunResult{SyncID: id, Record: record, Err: err}
		}(i, syncID)
	}
	wg.Wait()

	errs := make([]error, len(results))
	for i, r := range results {
		errs[i] = r.Err
	}
	if err := errors.Join(errs...); err != nil {
		return results, fmt.Errorf("census errors: %w", err)
	}
	return results, nil
}
