package controller

// View is the rendering target the controller drives. Implementations
// receive HTML fragments from the render package and decide how to show
// them; the controller never reads anything back.
type View interface {
	SetSubmitEnabled(enabled bool)
	SetStatus(text string, tone Tone)
	SetResultsVisible(visible bool)

	// SetSummary sets the compact one-line summary used by the modal layout
	SetSummary(text string)
	SetReport(html string)
	SetLinks(html string)
	SetPDFs(html string)
	SetErrorDetails(html string)

	// Alert interrupts the user; used for input that never reaches the network
	Alert(message string)
}

// NopView discards everything. Useful when only the returned error matters.
type NopView struct{}

func (NopView) SetSubmitEnabled(bool)  {}
func (NopView) SetStatus(string, Tone) {}
func (NopView) SetResultsVisible(bool) {}
func (NopView) SetSummary(string)      {}
func (NopView) SetReport(string)       {}
func (NopView) SetLinks(string)        {}
func (NopView) SetPDFs(string)         {}
func (NopView) SetErrorDetails(string) {}
func (NopView) Alert(string)           {}
