// Package clock abstracts wall-clock time so every time-dependent rule in
// the scanning engine (time-to-close, trading-hours checks, evaluator risk
// rules, signal IDs) can be driven deterministically under test.
//
// Replacing the active clock with a Frozen instance must fully determinise
// every time-dependent code path in this module — that is the load-bearing
// invariant this package exists to uphold.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock returns the current instant. tz may be nil, meaning "caller's
// default location".
type Clock interface {
	Now(tz *time.Location) time.Time
}

// System delegates to the OS wall clock. It is the default process-wide
// instance.
type System struct{}

// Now returns time.Now(), converted to tz when non-nil.
func (System) Now(tz *time.Location) time.Time {
	if tz == nil {
		return time.Now()
	}
	return time.Now().In(tz)
}

// Frozen returns a fixed instant regardless of the requested location. The
// caller is responsible for supplying a location-aware At.
type Frozen struct {
	At time.Time
}

// Now returns f.At verbatim, ignoring tz.
func (f Frozen) Now(tz *time.Location) time.Time {
	return f.At
}

// Shift returns Base.Now() + Offset. Offset may be mutated after
// construction via SetOffset.
type Shift struct {
	Base   Clock
	offset atomic.Int64 // time.Duration, nanoseconds
}

// NewShift builds a Shift clock with an initial offset.
func NewShift(base Clock, offset time.Duration) *Shift {
	s := &Shift{Base: base}
	s.offset.Store(int64(offset))
	return s
}

// Now returns the base clock's time plus the current offset.
func (s *Shift) Now(tz *time.Location) time.Time {
	return s.Base.Now(tz).Add(time.Duration(s.offset.Load()))
}

// SetOffset mutates the shift applied to the base clock.
func (s *Shift) SetOffset(offset time.Duration) {
	s.offset.Store(int64(offset))
}

// active is the process-wide mutable clock slot. Tests acquire it via
// SetActive and must restore it via Reset in teardown; production code
// should prefer constructor injection of a Clock and fall back to Active()
// only where injection is impractical (see spec §9).
var active atomic.Value // Clock

func init() {
	active.Store(Clock(System{}))
}

// Active returns the process-wide clock.
func Active() Clock {
	return active.Load().(Clock)
}

// SetActive installs c as the process-wide clock.
func SetActive(c Clock) {
	active.Store(c)
}

// Reset restores the process-wide clock to System{}.
func Reset() {
	active.Store(Clock(System{}))
}

// CHINA is the fixed UTC+8 location used by the A-share market components.
var CHINA = time.FixedZone("CST", 8*60*60)
