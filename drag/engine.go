// Package drag turns pointer and touch movement over a bounded container into
// normalized positions for a single dragged element.
package drag

import "cover-photo/compose"

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Rect is the container's bounding box in client coordinates.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Measurer reports the container geometry. ok is false when the container
// is not mounted.
type Measurer func() (r Rect, ok bool)

// PositionFunc receives every computed position.
type PositionFunc func(elementID string, pos compose.Position)

// Engine is the Idle / Dragging(target) state machine for one container.
// It is not safe for concurrent use; callers serialize events.
type Engine struct {
	measure  Measurer
	onChange PositionFunc
	state    State
	target   string
}

func New(measure Measurer, onChange PositionFunc) *Engine {
	return &Engine{measure: measure, onChange: onChange}
}

func (e *Engine) State() State { return e.state }

// Target returns the element being dragged, or "" when idle.
func (e *Engine) Target() string { return e.target }

// PointerDown starts dragging target. A pointer-down while already dragging
// re-targets the gesture to the new element. Callers are expected to
// suppress the platform default action for the event.
func (e *Engine) PointerDown(target string) {
	if target == "" {
		return
	}
	e.state = Dragging
	e.target = target
}

// PointerMove recomputes the target position from client coordinates and
// reports it. It returns false when nothing was emitted: the engine is idle,
// or the container could not be measured (the drag stays active).
func (e *Engine) PointerMove(clientX, clientY float64) (compose.Position, bool) {
	if e.state != Dragging {
		return compose.Position{}, false
	}
	r, ok := e.measure()
	if !ok || r.Width <= 0 || r.Height <= 0 {
		return compose.Position{}, false
	}
	pos := compose.Position{
		X: clamp((clientX-r.Left)/r.Width*100, 0, 100),
		Y: clamp((clientY-r.Top)/r.Height*100, 0, 100),
	}
	if e.onChange != nil {
		e.onChange(e.target, pos)
	}
	return pos, true
}

// PointerUp ends the drag.
func (e *Engine) PointerUp() {
	e.state = Idle
	e.target = ""
}

// PointerLeave is treated exactly like PointerUp: a drag that exits the
// container is terminated, not paused.
func (e *Engine) PointerLeave() {
	e.PointerUp()
}

func clamp(v, lo, hi float64) float64 {
	if v != v { // NaN from non-finite client coordinates
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
