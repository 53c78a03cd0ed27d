package telemetry

// API is what every component reports through instead of logging directly,
// tests swap in RecordingAPI to assert on what was reported.
type API interface {
	// ReportBroken marks a component as failing, `id` names the component
	// (ex. "client.get-schools") and `params` carry the error and whatever
	// identifies the failing input.
	//
	// ids are lowercase, dots separate a component from its operation and
	// dashes join words.
	ReportBroken(id string, params ...any)
	// ReportWarning is for something unexpected that did not stop the component.
	ReportWarning(id string, params ...any)
	// ReportDebug is only visible in verbose runs.
	ReportDebug(msg string, params ...any)
	// ReportCount records the latest value of a count, values are samples
	// and must not be summed.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id and message with "<namespace>: ".
type ScopedAPI struct {
	prefix string
	inner  API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{prefix: namespace + ": ", inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.prefix+id, params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.prefix+id, params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.prefix+msg, params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.prefix+id, count)
}
