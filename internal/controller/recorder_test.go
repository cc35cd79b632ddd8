package controller

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/yildizm/CityReport/internal/analysis"
)

// recorderView captures every call the controller makes
type recorderView struct {
	mu sync.Mutex

	enabled      []bool
	statuses     []string
	tones        []Tone
	visible      []bool
	alerts       []string
	summary      string
	report       string
	links        string
	pdfs         string
	errorDetails string
}

func (r *recorderView) SetSubmitEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = append(r.enabled, enabled)
}

func (r *recorderView) SetStatus(text string, tone Tone) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, text)
	r.tones = append(r.tones, tone)
}

func (r *recorderView) SetResultsVisible(visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = append(r.visible, visible)
}

func (r *recorderView) SetSummary(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary = text
}

func (r *recorderView) SetReport(html string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report = html
}

func (r *recorderView) SetLinks(html string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links = html
}

func (r *recorderView) SetPDFs(html string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pdfs = html
}

func (r *recorderView) SetErrorDetails(html string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errorDetails = html
}

func (r *recorderView) Alert(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, message)
}

func (r *recorderView) lastStatus() (string, Tone) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statuses) == 0 {
		return "", ToneNeutral
	}
	return r.statuses[len(r.statuses)-1], r.tones[len(r.tones)-1]
}

func (r *recorderView) lastEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled[len(r.enabled)-1]
}

func (r *recorderView) lastVisible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible[len(r.visible)-1]
}

// reEnables counts false->true transitions of the submit control
func (r *recorderView) reEnables() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for i := 1; i < len(r.enabled); i++ {
		if !r.enabled[i-1] && r.enabled[i] {
			count++
		}
	}
	return count
}

// fakeRunner returns a canned outcome and counts calls
type fakeRunner struct {
	calls  atomic.Int32
	result *analysis.Result
	err    error

	// when set, Run signals started and blocks until release or ctx is done
	started chan struct{}
	release chan struct{}
}

func (f *fakeRunner) Run(ctx context.Context, city string) (*analysis.Result, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.result, f.err
}
