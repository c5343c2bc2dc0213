package atlaspipe

// Stage names a coarse checkpoint in the downscale pipeline.
type Stage int

const (
	StageLevelStarted Stage = iota
	StageCandidateEvaluated
	StageAtlasSaved
	StageLevelFinished
)

// ProgressEvent is passed to a ProgressFunc at each checkpoint. Not every
// field is populated at every stage.
type ProgressEvent struct {
	Stage   Stage
	Scale   int
	Atlases int
	File    string
}

// ProgressFunc is an optional checkpoint callback: invoked per downscale
// level, per candidate evaluated, and per atlas saved. Cancellation isn't
// wired through it; a caller that wants to stop early can track its own
// flag and check it between pipeline calls.
type ProgressFunc func(ProgressEvent)

func notify(fn ProgressFunc, ev ProgressEvent) {
	if fn != nil {
		fn(ev)
	}
}
