package monitor

import (
	"fmt"
	"strings"
	"time"
)

// Outcome is how one request ended
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeTimeout   Outcome = "timeout"
	OutcomeHTTP      Outcome = "http"
	OutcomeMalformed Outcome = "malformed_response"
	OutcomeNetwork   Outcome = "network"
	OutcomeCanceled  Outcome = "canceled"
	OutcomeOther     Outcome = "other"
)

var outcomes = []Outcome{
	OutcomeSuccess, OutcomeTimeout, OutcomeHTTP, OutcomeMalformed,
	OutcomeNetwork, OutcomeCanceled, OutcomeOther,
}

// Session collects metrics for every request issued in one process
type Session struct {
	started   time.Time
	requests  *Counter
	outcomes  map[Outcome]*Counter
	durations *Timer
}

// NewSession creates an empty session
func NewSession() *Session {
	s := &Session{
		started:   time.Now(),
		requests:  NewCounter("requests"),
		outcomes:  make(map[Outcome]*Counter, len(outcomes)),
		durations: NewTimer("request_duration"),
	}
	for _, o := range outcomes {
		s.outcomes[o] = NewCounter(string(o))
	}
	return s
}

// Started records that a request was issued
func (s *Session) Started() {
	s.requests.Inc()
}

// Finished records how a request ended and how long it took
func (s *Session) Finished(outcome Outcome, d time.Duration) {
	c, ok := s.outcomes[outcome]
	if !ok {
		c = s.outcomes[OutcomeOther]
	}
	c.Inc()
	s.durations.Record(d)
}

// Snapshot is a point-in-time copy of the session metrics
type Snapshot struct {
	Uptime    time.Duration     `json:"uptime_ns"`
	Requests  int64             `json:"requests"`
	Succeeded int64             `json:"succeeded"`
	Failed    int64             `json:"failed"`
	Outcomes  map[Outcome]int64 `json:"outcomes"`
	Last      time.Duration     `json:"last_ns"`
	Avg       time.Duration     `json:"avg_ns"`
	Min       time.Duration     `json:"min_ns"`
	Max       time.Duration     `json:"max_ns"`
}

// Snapshot copies the current values
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Uptime:   time.Since(s.started),
		Requests: s.requests.Get(),
		Outcomes: make(map[Outcome]int64, len(s.outcomes)),
		Last:     s.durations.Last(),
		Avg:      s.durations.Avg(),
		Min:      s.durations.Min(),
		Max:      s.durations.Max(),
	}
	for o, c := range s.outcomes {
		n := c.Get()
		if n == 0 {
			continue
		}
		snap.Outcomes[o] = n
		if o == OutcomeSuccess {
			snap.Succeeded += n
		} else {
			snap.Failed += n
		}
	}
	return snap
}

// String renders the compact footer line, e.g. "3 requests: 2 ok, 1 failed, avg 4m12s"
func (s Snapshot) String() string {
	if s.Requests == 0 {
		return "no requests yet"
	}
	parts := []string{fmt.Sprintf("%d ok", s.Succeeded), fmt.Sprintf("%d failed", s.Failed)}
	if s.Avg > 0 {
		parts = append(parts, "avg "+s.Avg.Round(time.Second).String())
	}
	noun := "requests"
	if s.Requests == 1 {
		noun = "request"
	}
	return fmt.Sprintf("%d %s: %s", s.Requests, noun, strings.Join(parts, ", "))
}
