package census

import "github.com/tidwall/gjson"

// Source wraps the raw JSON payload of an API response so callers can read
// individual fields by path while the full payload round-trips verbatim.
type Source struct {
	data gjson.Result
}

func (s Source) StringForPath(path string) (string, bool) {
	result := s.data.Get(path)
	return result.String(), result.Exists() && (result.Value() != nil)
}

func (s Source) IntForPath(path string) (int64, bool) {
	result := s.data.Get(path)
	return result.Int(), result.Exists() && (result.Value() != nil)
}

func (s Source) BoolForPath(path string) (bool, bool) {
	result := s.data.Get(path)
	return result.Bool(), result.Exists() && (result.Value() != nil)
}

// Raw returns the payload exactly as it came back from the API.
func (s Source) Raw() string {
	return s.data.Raw
}

// Data returns the payload as a generic map, or nil if the payload is not
// a JSON object.
func (s Source) Data() map[string]interface{} {
	if v := s.data.Value(); v != nil {
		if m, ok := v.(map[string]interface{}); ok {
			return m
		}
	}
	return nil
}

// RunRecord is a snapshot of a Census sync run as observed via the API.
// The run itself lives on the Census side and progresses independently;
// a RunRecord only captures the state at the time of one fetch. Counts,
// timestamps and error detail beyond ID and Status are available through
// Source without interpretation.
type RunRecord struct {
	ID     int64
	Status SyncRunStatus
	Source Source
}

func newRunRecord(data gjson.Result) RunRecord {
	return RunRecord{
		ID:     data.Get("id").Int(),
		Status: ClassifySyncRunStatus(data.Get("status").String()),
		Source: Source{data: data},
	}
}

// RawStatus returns the status string exactly as the API sent it.
func (r RunRecord) RawStatus() string {
	s, _ := r.Source.StringForPath("status")
	return s
}

// runIdentifier extracts the run id from a trigger payload. Census has
// returned it as both sync_run_id and id across API revisions, so both
// are accepted.
func (r RunRecord) runIdentifier() (int64, bool) {
	if v, ok := r.Source.IntForPath("sync_run_id"); ok {
		return v, true
	}
	return r.Source.IntForPath("id")
}
