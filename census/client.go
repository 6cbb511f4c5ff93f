package census

import (
	"context"
	"errors"
	"net/http"

	"github.com/carlmjohnson/requests"
	"github.com/tidwall/gjson"
)

// CensusError captures the JSON body Census returns on non-2xx responses.
type CensusError map[string]interface{}

// userMessage extracts the user facing message Census attaches to error
// responses, if one is present.
func (e CensusError) userMessage() string {
	if status, ok := e["status"].(map[string]interface{}); ok {
		if msg, ok := status["user_message"].(string); ok {
			return msg
		}
	}
	return ""
}

// ClientOption adjusts how a Client talks to the Census API.
type ClientOption func(*Client)

// WithTransport overrides the HTTP transport, e.g. for scripted responses
// in tests.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.transport = rt
	}
}

// WithRecording writes request/response pairs to the given directory using
// the requests.Record transport. Useful for capturing fixtures.
func WithRecording(dir string) ClientOption {
	return func(c *Client) {
		c.recordDir = dir
	}
}

// WithClientLogger routes API error logging through the given logger.
func WithClientLogger(logger Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client calls the Census API on behalf of a single set of credentials.
// It holds no mutable state, so one Client may be shared across goroutines.
type Client struct {
	creds     Credentials
	transport http.RoundTripper
	recordDir string
	logger    Logger
}

// NewClient returns a client authenticated with the given credentials.
func NewClient(creds Credentials, opts ...ClientOption) *Client {
	c := &Client{
		creds:  creds,
		logger: DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiBuilder returns a new requests.Builder configured for the Census API.
func (c *Client) apiBuilder() *requests.Builder {
	apiBuilder := requests.
		URL(BaseURL).
		Client(&http.Client{Timeout: HTTPRequestTimeout}).
		Bearer(c.creds.apiKey)
	if c.recordDir != "" {
		apiBuilder = apiBuilder.Transport(requests.Record(c.transport, c.recordDir))
	} else if c.transport != nil {
		apiBuilder = apiBuilder.Transport(c.transport)
	}
	return apiBuilder
}

// GetSyncRunInfo reads the current state of a sync run. The returned record
// is a point-in-time snapshot; fetch again to observe progress. Failures,
// including non-2xx responses, are returned as a FetchFailedError and are
// never retried here.
func (c *Client) GetSyncRunInfo(ctx context.Context, runID int64) (RunRecord, error) {
	censusError := CensusError{}
	var json string
	err := c.apiBuilder().
		Pathf("/api/v1/sync_runs/%d", runID).
		ToString(&json).
		ErrorJSON(&censusError).
		Fetch(ctx)
	if err != nil {
		c.logger.Printf("Census Error: %+v", censusError)
		return RunRecord{}, &FetchFailedError{RunID: runID, UserMessage: censusError.userMessage(), Err: err}
	}
	if !gjson.Valid(json) {
		c.logger.Printf("Invalid Census Response:\n%s", json)
		return RunRecord{}, &FetchFailedError{RunID: runID, Err: errors.New("invalid json response")}
	}
	return newRunRecord(gjson.Parse(json).Get("data")), nil
}

// TriggerOption adjusts how a sync run is triggered.
type TriggerOption func(*triggerOptions)

type triggerOptions struct {
	forceFullSync bool
}

// WithForceFullSync requests a full sync rather than an incremental one.
func WithForceFullSync() TriggerOption {
	return func(o *triggerOptions) {
		o.forceFullSync = true
	}
}

// TriggerSyncRun starts a run of the given sync and returns the trigger
// payload, which carries the identifier of the new run. Failures, including
// non-2xx responses, are returned as a TriggerFailedError.
func (c *Client) TriggerSyncRun(ctx context.Context, syncID int64, opts ...TriggerOption) (RunRecord, error) {
	var options triggerOptions
	for _, opt := range opts {
		opt(&options)
	}
	censusError := CensusError{}
	var json string
	apiBuilder := c.apiBuilder().
		Post().
		Pathf("/api/v1/syncs/%d/trigger", syncID)
	if options.forceFullSync {
		apiBuilder = apiBuilder.Param("force_full_sync", "true")
	}
	err := apiBuilder.
		ToString(&json).
		ErrorJSON(&censusError).
		Fetch(ctx)
	if err != nil {
		c.logger.Printf("Census Error: %+v", censusError)
		return RunRecord{}, &TriggerFailedError{SyncID: syncID, UserMessage: censusError.userMessage(), Err: err}
	}
	if !gjson.Valid(json) {
		c.logger.Printf("Invalid Census Response:\n%s", json)
		return RunRecord{}, &TriggerFailedError{SyncID: syncID, Err: errors.New("invalid json response")}
	}
	return newRunRecord(gjson.Parse(json).Get("data")), nil
}
