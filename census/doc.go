// Package census triggers and monitors sync runs on the Census reverse ETL
// service from a workflow host.
//
// The entry point for most hosts is TriggerSyncRunAndWait, which starts a
// run of a configured sync and polls it at a fixed cadence until it
// completes, fails, is cancelled or the poll budget runs out:
//
//	creds := census.NewCredentials(os.Getenv("CENSUS_API_KEY"))
//	record, err := census.TriggerSyncRunAndWait(ctx, creds, 42, census.DefaultPollBudget())
//
// TriggerSyncRun and GetSyncRunInfo are also usable on their own, and
// WaitForSyncRun can poll a run that was triggered elsewhere. Every
// operation takes a context and returns typed failures (TriggerFailedError,
// FetchFailedError, SyncRunTimeoutError, SyncRunCancelledError,
// SyncRunFailedError) that carry the run or sync id and, where Census
// provided one, the user facing message from the API error response.
//
// Concurrent invocations are independent: nothing is cached or deduplicated
// and every poll is a fresh read, so two waiters on the same run simply
// observe the same terminal state.
package census
