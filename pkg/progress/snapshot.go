package progress

import (
	"strings"
	"time"
)

// Field names a value available to Lookup and to status templates.
type Field string

// Fields of every indicator.
const (
	FieldMessage   Field = "message"
	FieldIndex     Field = "index"
	FieldElapsed   Field = "elapsed"
	FieldElapsedTD Field = "elapsed_td"
	FieldAvg       Field = "avg"
	FieldSMA       Field = "sma"
)

// Fields of bounded indicators only.
const (
	FieldMax       Field = "max"
	FieldProgress  Field = "progress"
	FieldPercent   Field = "percent"
	FieldRemaining Field = "remaining"
	FieldEta       Field = "eta"
	FieldEtaTD     Field = "eta_td"
)

// Snapshot is a point-in-time copy of an indicator's metrics, handed to
// RenderFunc hooks.
type Snapshot struct {
	Message string
	Index   int
	Elapsed int     // seconds
	Avg     float64 // seconds per unit since start
	SMA     float64 // seconds per unit over the recent window

	// Set only for bounded indicators.
	Bounded   bool
	Max       int
	Progress  float64 // in [0,1]
	Percent   float64
	Remaining int
	Eta       int // seconds
}

// ElapsedDuration returns Elapsed as a time.Duration.
func (s Snapshot) ElapsedDuration() time.Duration {
	return time.Duration(s.Elapsed) * time.Second
}

// EtaDuration returns Eta as a time.Duration.
func (s Snapshot) EtaDuration() time.Duration {
	return time.Duration(s.Eta) * time.Second
}

// Lookup returns the value of the named field, or nil when the name is
// internal (leading underscore), unknown, or bounded-only on an unbounded
// snapshot.
func (s Snapshot) Lookup(name string) any {
	if strings.HasPrefix(name, "_") {
		return nil
	}

	switch Field(name) {
	case FieldMessage:
		return s.Message
	case FieldIndex:
		return s.Index
	case FieldElapsed:
		return s.Elapsed
	case FieldElapsedTD:
		return s.ElapsedDuration()
	case FieldAvg:
		return s.Avg
	case FieldSMA:
		return s.SMA
	}

	if !s.Bounded {
		return nil
	}
	switch Field(name) {
	case FieldMax:
		return s.Max
	case FieldProgress:
		return s.Progress
	case FieldPercent:
		return s.Percent
	case FieldRemaining:
		return s.Remaining
	case FieldEta:
		return s.Eta
	case FieldEtaTD:
		return s.EtaDuration()
	}
	return nil
}
