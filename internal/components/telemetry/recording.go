package telemetry

import "sync"

// RecordingAPI keeps every report in memory so tests can assert on them.
type RecordingAPI struct {
	mu       sync.Mutex
	Broken   []string
	Warnings []string
	Debug    []string
	Counts   map[string]int64
}

func (r *RecordingAPI) ReportBroken(id string, params ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Broken = append(r.Broken, id)
}

func (r *RecordingAPI) ReportWarning(id string, params ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, id)
}

func (r *RecordingAPI) ReportDebug(msg string, params ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Debug = append(r.Debug, msg)
}

func (r *RecordingAPI) ReportCount(id string, count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Counts == nil {
		r.Counts = map[string]int64{}
	}
	r.Counts[id] = count
}
