package metrics

import "time"

type Result string

const (
	ResultOK        Result = "ok"
	ResultUnchanged Result = "unchanged"
	ResultError     Result = "error"
)

// Recorder receives load observations from the builder.
type Recorder interface {
	ObserveLoad(d time.Duration, loaded, skipped int)
	IncWarnings(n int)
	IncRebuild(r Result)
}

type NoopRecorder struct{}

func (NoopRecorder) ObserveLoad(time.Duration, int, int) {}
func (NoopRecorder) IncWarnings(int)                     {}
func (NoopRecorder) IncRebuild(Result)                   {}
