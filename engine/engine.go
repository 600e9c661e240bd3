// Package engine drives the external media engine that performs the actual trim.
package engine

import (
	"context"

	"github.com/user/mkvcut/clip"
)

// Event is one notification from a running cut. The set of variants is closed:
// Progress, Completed and Failed.
type Event interface {
	isEvent()
}

// Progress reports how much of the requested duration has been written.
// Percent is passed through as reported and may exceed 0-100.
type Progress struct {
	Percent float64
}

// Completed is the terminal event for a successful cut.
type Completed struct{}

// Failed is the terminal event for a failed cut.
type Failed struct {
	Message string
}

func (Progress) isEvent()  {}
func (Completed) isEvent() {}
func (Failed) isEvent()    {}

// Engine runs a cut. The returned channel carries zero or more Progress
// events followed by exactly one Completed or Failed, then it is closed.
type Engine interface {
	Cut(ctx context.Context, req clip.CutRequest) <-chan Event
}

// IsTerminal reports whether ev ends the event stream.
func IsTerminal(ev Event) bool {
	switch ev.(type) {
	case Completed, Failed:
		return true
	}
	return false
}
