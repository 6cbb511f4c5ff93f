package census

import (
	"errors"
	"io"
	"net/http"
	"strings"
	gosync "sync"
	"testing"

	"github.com/tidwall/sjson"
)

func jsonResponse(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

// runInfoBody builds a sync run info payload in the shape the API returns.
func runInfoBody(t *testing.T, runID int64, status string) string {
	t.Helper()
	body := `{"data":{}}`
	var err error
	for _, s := range []struct {
		path  string
		value interface{}
	}{
		{"data.id", runID},
		{"data.sync_id", int64(42)},
		{"data.status", status},
		{"data.records_processed", 100},
		{"data.records_updated", 90},
		{"data.records_failed", 10},
		{"data.created_at", "2023-10-01T03:09:38.979Z"},
	} {
		body, err = sjson.Set(body, s.path, s.value)
		if err != nil {
			t.Fatal(err)
		}
	}
	return body
}

// triggerBody builds a trigger payload carrying the given run id.
func triggerBody(t *testing.T, runID int64) string {
	t.Helper()
	body, err := sjson.Set(`{"data":{}}`, "data.id", runID)
	if err != nil {
		t.Fatal(err)
	}
	body, err = sjson.Set(body, "data.sync_run_id", runID)
	if err != nil {
		t.Fatal(err)
	}
	return body
}

// fakeCensus scripts the Census API: one response for the trigger endpoint
// and a sequence of run info responses (the last repeats). The first
// FailCalls round trips fail with a transport error.
type fakeCensus struct {
	TriggerStatus int // defaults to 200
	TriggerBody   string
	RunStatus     int // defaults to 200
	RunBodies     []string
	FailCalls     int

	mu           gosync.Mutex
	triggerCalls int
	runCalls     int
	lastAuth     string
	lastQuery    string
	lastMethod   string
	paths        []string
}

func (f *fakeCensus) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAuth = req.Header.Get("Authorization")
	if f.FailCalls > 0 {
		f.FailCalls--
		return nil, errors.New("connection reset")
	}
	f.paths = append(f.paths, req.URL.Path)
	if strings.HasSuffix(req.URL.Path, "/trigger") {
		f.triggerCalls++
		f.lastMethod = req.Method
		f.lastQuery = req.URL.RawQuery
		status := f.TriggerStatus
		if status == 0 {
			status = http.StatusOK
		}
		return jsonResponse(req, status, f.TriggerBody), nil
	}
	f.runCalls++
	i := f.runCalls - 1
	if i >= len(f.RunBodies) {
		i = len(f.RunBodies) - 1
	}
	status := f.RunStatus
	if status == 0 {
		status = http.StatusOK
	}
	return jsonResponse(req, status, f.RunBodies[i]), nil
}

func (f *fakeCensus) RunCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runCalls
}

func (f *fakeCensus) TriggerCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.triggerCalls
}

// runBodies builds one run info payload per status.
func runBodies(t *testing.T, runID int64, statuses ...string) []string {
	t.Helper()
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = runInfoBody(t, runID, s)
	}
	return result
}
