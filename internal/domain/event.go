package domain

import "time"

// EventType names the kind of market occurrence a detector found.
type EventType string

const (
	EventLimitUp      EventType = "limit_up"
	EventBreakout     EventType = "breakout"
	EventShortSqueeze EventType = "short_squeeze"
)

// Event is a point-in-time market occurrence produced by an EventDetector.
type Event struct {
	ID            string // optional, distinct from the derived TradingSignal.SignalID; the built-in detectors leave it empty
	EventType     EventType
	SecurityCode  string
	SecurityName  string
	Price         float64
	ChangePct     float64
	TriggerPrice  float64
	TriggerTime   time.Time
	Volume        int64
	Amount        float64
	Metadata      map[string]any
}

// MetaFloat reads a float64 out of Metadata, defaulting to 0 if absent or
// of the wrong type.
func (e Event) MetaFloat(key string) float64 {
	if e.Metadata == nil {
		return 0
	}
	v, ok := e.Metadata[key]
	if !ok {
		return 0
	}
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return f
}
