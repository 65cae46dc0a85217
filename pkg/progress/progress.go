package progress

import (
	"math"
	"time"
)

// bounded is the kind of indicators with a target maximum.
type bounded struct {
	max int
}

func (b *bounded) start(i *Indicator) error { return i.Update() }

func (b *bounded) inferLength(n int) { b.max = n }

func (b *bounded) fill(s *Snapshot) {
	s.Bounded = true
	s.Max = b.max
	s.Progress = fraction(s.Index, b.max)
	s.Percent = s.Progress * 100
	s.Remaining = remaining(s.Index, b.max)
	s.Eta = eta(s.Avg, s.Remaining)
}

// fraction is index/max clamped to [0,1]. A non-positive max counts as complete.
func fraction(index, max int) float64 {
	if max <= 0 {
		return 1
	}
	return math.Max(0, math.Min(1, float64(index)/float64(max)))
}

func remaining(index, max int) int {
	if r := max - index; r > 0 {
		return r
	}
	return 0
}

func eta(avg float64, remaining int) int {
	return int(math.Ceil(avg * float64(remaining)))
}

// Progress is a bounded indicator: it knows the index value that means done.
type Progress struct {
	*Indicator
	bounds *bounded
}

// NewProgress creates a bounded indicator with maximum cfg.Max.
func NewProgress(message string, cfg Config) (*Progress, error) {
	b := &bounded{max: cfg.Max}
	ind, err := newIndicator(message, cfg, b)
	if err != nil {
		return nil, err
	}
	return &Progress{Indicator: ind, bounds: b}, nil
}

// Max returns the index value that represents completion.
func (p *Progress) Max() int { return p.bounds.max }

// SetMax replaces the target maximum.
func (p *Progress) SetMax(max int) { p.bounds.max = max }

// Progress returns the completed fraction in [0,1]. It is 1 when Max is not
// positive.
func (p *Progress) Progress() float64 {
	return fraction(p.Index(), p.bounds.max)
}

// Percent returns Progress scaled to 0-100.
func (p *Progress) Percent() float64 {
	return p.Progress() * 100
}

// Remaining returns the units left before Max, never negative.
func (p *Progress) Remaining() int {
	return remaining(p.Index(), p.bounds.max)
}

// Eta returns the estimated whole seconds to completion at the average rate.
func (p *Progress) Eta() int {
	return eta(p.Avg(), p.Remaining())
}

// EtaDuration returns Eta as a time.Duration.
func (p *Progress) EtaDuration() time.Duration {
	return time.Duration(p.Eta()) * time.Second
}

// Goto moves the index to an absolute position. Moving backwards is allowed.
func (p *Progress) Goto(index int) error {
	return p.Next(index - p.Index())
}
