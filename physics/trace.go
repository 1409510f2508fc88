package physics

import (
	"fmt"

	"github.com/lixenwraith/golf-sim/obstacle"
	"github.com/lixenwraith/golf-sim/vmath"
)

// EventKind classifies notable transitions during a shot
type EventKind uint8

const (
	// EventBounce is a reflection off an obstacle
	EventBounce EventKind = iota
	// EventBorder is a reflection off the course border
	EventBorder
	// EventTouch is a stop-on-touch rejection
	EventTouch
	// EventStop is a static friction stop
	EventStop
	// EventSlide is a stop overridden by a slope steeper than static friction
	EventSlide
	// EventWater is a stop caused by negative terrain height
	EventWater
)

func (k EventKind) String() string {
	switch k {
	case EventBounce:
		return "bounce"
	case EventBorder:
		return "border"
	case EventTouch:
		return "touch"
	case EventStop:
		return "stop"
	case EventSlide:
		return "slide"
	case EventWater:
		return "water"
	default:
		return fmt.Sprintf("event(%d)", k)
	}
}

// Event records a transition at a given trajectory index
type Event struct {
	Step       int
	Kind       EventKind
	Position   vmath.Vec2
	Obstacle   obstacle.ID
	Bounciness float64
}

// Trace is a simulated trajectory with the events that shaped it
// Positions[0] is the start position, Positions[Step] is the position after that step
type Trace struct {
	Positions []vmath.Vec2
	Events    []Event
}

// Steps returns the number of integration steps taken
func (t Trace) Steps() int {
	return len(t.Positions) - 1
}

// Final returns the resting position
func (t Trace) Final() vmath.Vec2 {
	if len(t.Positions) == 0 {
		return vmath.Vec2{}
	}
	return t.Positions[len(t.Positions)-1]
}

// Count returns how many events of kind k occurred
func (t Trace) Count(k EventKind) int {
	n := 0
	for _, e := range t.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// EventsAt returns the events recorded at step, in order
func (t Trace) EventsAt(step int) []Event {
	var out []Event
	for _, e := range t.Events {
		if e.Step == step {
			out = append(out, e)
		}
	}
	return out
}
