package controller

import (
	"fmt"
	"sync"
)

// Panel names one collapsible section of the details modal
type Panel string

const (
	PanelReport     Panel = "report"
	PanelLinks      Panel = "links"
	PanelPDFs       Panel = "pdfs"
	PanelStatistics Panel = "statistics"
)

// Panels lists the modal sections in display order
var Panels = []Panel{PanelReport, PanelLinks, PanelPDFs, PanelStatistics}

// ParsePanel resolves a panel name
func ParsePanel(s string) (Panel, error) {
	for _, p := range Panels {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown panel %q", s)
}

// Details is the state of the details modal. It only rearranges data that
// already arrived; nothing here talks to the server.
type Details struct {
	mu       sync.Mutex
	open     bool
	expanded map[Panel]bool
}

// NewDetails returns a closed modal with the report panel expanded
func NewDetails() *Details {
	d := &Details{}
	d.Reset()
	return d
}

// Reset closes the modal and restores the default expansion
func (d *Details) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	d.expanded = map[Panel]bool{PanelReport: true}
}

// Open shows the modal
func (d *Details) Open() {
	d.mu.Lock()
	d.open = true
	d.mu.Unlock()
}

// Close hides the modal and keeps the expansion state
func (d *Details) Close() {
	d.mu.Lock()
	d.open = false
	d.mu.Unlock()
}

// IsOpen reports whether the modal is shown
func (d *Details) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Toggle flips the expansion of panel and returns the new state
func (d *Details) Toggle(panel Panel) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.expanded[panel] = !d.expanded[panel]
	return d.expanded[panel]
}

// Expanded reports whether panel is expanded
func (d *Details) Expanded(panel Panel) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.expanded[panel]
}
