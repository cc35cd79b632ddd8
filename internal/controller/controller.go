// Package controller drives one analysis request from user input to a
// rendered view. It owns the request lifecycle (Idle, Loading, Success,
// Failed), maps every failure to exactly one status message and pushes HTML
// fragments to an injected View.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/yildizm/CityReport/internal/analysis"
	"github.com/yildizm/CityReport/internal/logger"
	"github.com/yildizm/CityReport/internal/monitor"
	"github.com/yildizm/CityReport/internal/render"
)

// Status and alert texts
const (
	MsgCityRequired    = "Please enter a city name!"
	MsgBusy            = "Processing... searching for and filtering relevant links. This can take 10-15 minutes, please keep this window open."
	MsgCompletePrefix  = "Analysis complete! "
	MsgCompleteDefault = "Processing finished"
	MsgErrorPrefix     = "Error: "
	MsgUnknownError    = "an unexpected error occurred"
	MsgCanceled        = "the request was canceled"
)

// ErrBusy is returned by Submit while a request is already in flight
var ErrBusy = errors.New("an analysis request is already in progress")

// Runner issues one analysis request. *analysis.Client implements it.
type Runner interface {
	Run(ctx context.Context, city string) (*analysis.Result, error)
}

// Layout selects how results are presented
type Layout string

const (
	// LayoutPanels shows report, links, PDFs and statistics inline
	LayoutPanels Layout = "panels"

	// LayoutModal shows a compact summary line; the full data sits behind
	// the details modal
	LayoutModal Layout = "modal"
)

// ParseLayout accepts "panels" or "modal"
func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case LayoutPanels:
		return LayoutPanels, nil
	case LayoutModal:
		return LayoutModal, nil
	default:
		return "", fmt.Errorf("invalid layout %q (valid: panels, modal)", s)
	}
}

// Option configures a Controller
type Option func(*Controller)

// WithTimeout sets the client-side deadline for one request. Zero disables
// the controller deadline and leaves timing to the runner.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.timeout = d
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics records every request in session
func WithMetrics(session *monitor.Session) Option {
	return func(c *Controller) {
		if session != nil {
			c.metrics = session
		}
	}
}

// WithLayout selects the result layout
func WithLayout(layout Layout) Option {
	return func(c *Controller) {
		c.layout = layout
	}
}

// Controller is the request/response controller for the city analysis form
type Controller struct {
	runner  Runner
	view    View
	log     *logger.Logger
	timeout time.Duration
	layout  Layout
	details *Details
	metrics *monitor.Session

	mu     sync.Mutex
	state  ViewState
	cancel context.CancelFunc
}

// New creates a controller bound to view. The view receives the initial
// Idle projection immediately.
func New(runner Runner, view View, opts ...Option) *Controller {
	if view == nil {
		view = NopView{}
	}
	c := &Controller{
		runner:  runner,
		view:    view,
		log:     logger.Discard(),
		timeout: analysis.DefaultTimeout,
		layout:  LayoutPanels,
		details: NewDetails(),
		metrics: monitor.NewSession(),
		state:   ViewState{State: StateIdle},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.view.SetSubmitEnabled(true)
	c.view.SetResultsVisible(false)
	return c
}

// State returns a snapshot of the current view state
func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Layout returns the configured result layout
func (c *Controller) Layout() Layout {
	return c.layout
}

// Timeout returns the per-request deadline
func (c *Controller) Timeout() time.Duration {
	return c.timeout
}

// Metrics returns the session metrics
func (c *Controller) Metrics() *monitor.Session {
	return c.metrics
}

// Details returns the details modal state
func (c *Controller) Details() *Details {
	return c.details
}

// OpenDetails opens the details modal when there is a result to show
func (c *Controller) OpenDetails() bool {
	if c.State().State != StateSuccess {
		return false
	}
	c.details.Open()
	return true
}

// Submit validates city, issues exactly one request and projects the outcome
// onto the view. An empty city raises an alert and returns a validation
// error without touching the network. A call made while another request is
// in flight returns ErrBusy.
func (c *Controller) Submit(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		c.view.Alert(MsgCityRequired)
		return analysis.NewValidationError("city", MsgCityRequired)
	}

	runCtx, finish, err := c.begin(ctx, city)
	if err != nil {
		return err
	}
	defer finish()

	start := time.Now()
	c.metrics.Started()
	c.log.InfoWithFields("analysis started", []logger.Field{logger.F("city", city)})

	result, err := c.runner.Run(runCtx, city)
	if err == nil && result == nil {
		err = analysis.NewMalformedResponseError(nil)
	}
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, analysis.ErrTimeout) {
			err = &analysis.Error{Type: analysis.ErrTypeTimeout, Message: "request timed out", Cause: err}
		}
		c.fail(city, err)
		c.metrics.Finished(outcomeOf(err), time.Since(start))
		c.log.WarnWithFields("analysis failed", []logger.Field{
			logger.F("city", city),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		})
		return err
	}

	c.succeed(city, result)
	c.metrics.Finished(monitor.OutcomeSuccess, time.Since(start))
	c.log.InfoWithFields("analysis complete", []logger.Field{
		logger.F("city", city),
		logger.Duration(time.Since(start)),
		logger.Count(len(result.RelevantLinks)),
	})
	return nil
}

// Cancel aborts the in-flight request, if any
func (c *Controller) Cancel() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Bind submits every city name received on submissions until the channel
// closes or dispose is called. Names arriving while a request is in flight
// are dropped, as a disabled submit control would drop them. dispose cancels
// the in-flight request and waits for it to settle; it is safe to call more
// than once.
func (c *Controller) Bind(submissions <-chan string) (dispose func()) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case city, ok := <-submissions:
				if !ok {
					return
				}
				if !c.State().SubmitEnabled() {
					c.log.Debug("dropping submission while busy: %s", city)
					continue
				}
				wg.Add(1)
				go func() {
					defer wg.Done()
					if err := c.Submit(ctx, city); err != nil && !errors.Is(err, ErrBusy) {
						c.log.Debug("bound submission ended: %v", err)
					}
				}()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}
}

// begin moves to Loading and returns the request context together with the
// function that must run exactly once when the request settles
func (c *Controller) begin(ctx context.Context, city string) (context.Context, func(), error) {
	c.mu.Lock()
	if c.state.State == StateLoading {
		c.mu.Unlock()
		return nil, nil, ErrBusy
	}

	var runCtx context.Context
	var cancel context.CancelFunc
	if c.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}
	c.cancel = cancel
	c.state = ViewState{State: StateLoading, City: city}
	c.mu.Unlock()

	c.details.Reset()
	c.view.SetSubmitEnabled(false)
	c.view.SetStatus(MsgBusy, ToneBusy)
	c.view.SetResultsVisible(false)
	c.clearPanels()

	finish := func() {
		cancel()
		c.mu.Lock()
		c.cancel = nil
		c.mu.Unlock()
		c.view.SetSubmitEnabled(true)
	}
	return runCtx, finish, nil
}

func (c *Controller) succeed(city string, result *analysis.Result) {
	c.mu.Lock()
	c.state = ViewState{State: StateSuccess, City: city, Result: result}
	c.mu.Unlock()

	c.view.SetStatus(CompleteMessage(result), ToneSuccess)
	if c.layout == LayoutModal {
		c.view.SetSummary(SummaryLine(result))
	}
	c.view.SetReport(render.ReportHTML(result))
	c.view.SetLinks(render.LinksHTML(result.RelevantLinks))
	c.view.SetPDFs(render.PDFsHTML(result.PDFDownloads))
	c.view.SetResultsVisible(true)
}

func (c *Controller) fail(city string, err error) {
	c.mu.Lock()
	c.state = ViewState{State: StateFailed, City: city, Err: err}
	c.mu.Unlock()

	c.view.SetStatus(c.FailureMessage(err), ToneError)
	c.view.SetErrorDetails(render.ErrorHTML(detailMessage(err)))
	c.view.SetResultsVisible(true)
}

func (c *Controller) clearPanels() {
	c.view.SetSummary("")
	c.view.SetReport("")
	c.view.SetLinks("")
	c.view.SetPDFs("")
	c.view.SetErrorDetails("")
}

// CompleteMessage is the success status line
func CompleteMessage(result *analysis.Result) string {
	if result != nil && strings.TrimSpace(result.Summary) != "" {
		return MsgCompletePrefix + result.Summary
	}
	return MsgCompletePrefix + MsgCompleteDefault
}

// SummaryLine is the compact result line used by the modal layout
func SummaryLine(result *analysis.Result) string {
	if result == nil {
		return ""
	}
	stats := result.Stats()
	return fmt.Sprintf("%d relevant links, %d PDFs, %d pages crawled",
		len(result.RelevantLinks), len(result.PDFDownloads), stats.TotalCrawled)
}

// FailureMessage maps err to the status line. Timeouts get a dedicated
// message naming the deadline; everything else is prefixed with "Error: ".
func (c *Controller) FailureMessage(err error) string {
	return FailureMessage(err, c.timeout)
}

// FailureMessage maps err to the status line for a request with the given
// deadline
func FailureMessage(err error, timeout time.Duration) string {
	if errors.Is(err, analysis.ErrTimeout) {
		return TimeoutMessage(timeout)
	}
	return MsgErrorPrefix + detailMessage(err)
}

// TimeoutMessage is the status shown when the deadline fires
func TimeoutMessage(timeout time.Duration) string {
	return fmt.Sprintf("Timeout: the analysis took too long (over %s). The server may be under heavy load.",
		humanDuration(timeout))
}

func outcomeOf(err error) monitor.Outcome {
	switch {
	case errors.Is(err, analysis.ErrTimeout):
		return monitor.OutcomeTimeout
	case errors.Is(err, analysis.ErrHTTP):
		return monitor.OutcomeHTTP
	case errors.Is(err, analysis.ErrMalformedResponse):
		return monitor.OutcomeMalformed
	case errors.Is(err, analysis.ErrNetwork):
		return monitor.OutcomeNetwork
	case errors.Is(err, analysis.ErrCanceled), errors.Is(err, context.Canceled):
		return monitor.OutcomeCanceled
	default:
		return monitor.OutcomeOther
	}
}

func detailMessage(err error) string {
	if err == nil {
		return MsgUnknownError
	}
	if errors.Is(err, analysis.ErrCanceled) || errors.Is(err, context.Canceled) {
		return MsgCanceled
	}
	var aerr *analysis.Error
	if errors.As(err, &aerr) && aerr.Message != "" {
		return aerr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgUnknownError
}

func humanDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "the configured limit"
	case d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	case d%time.Second == 0:
		return plural(int(d/time.Second), "second")
	default:
		return d.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
