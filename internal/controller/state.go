package controller

import (
	"fmt"

	"github.com/yildizm/CityReport/internal/analysis"
)

// State is the request lifecycle of one controller
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ViewState is derived from the last submission and never persisted.
// The submit control is disabled exactly while Loading; result panels are
// visible exactly while Success or Failed.
type ViewState struct {
	State  State
	City   string
	Result *analysis.Result
	Err    error
}

// SubmitEnabled reports whether the submit control accepts input
func (v ViewState) SubmitEnabled() bool {
	return v.State != StateLoading
}

// ResultsVisible reports whether result panels are shown
func (v ViewState) ResultsVisible() bool {
	return v.State == StateSuccess || v.State == StateFailed
}

// Tone colours the status line
type Tone int

const (
	ToneNeutral Tone = iota
	ToneBusy
	ToneSuccess
	ToneError
)
