package flightpath

import (
	"math"
	"sync"
)

// Point is a position in image pixel coordinates (y grows downward)
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Model owns the hand-drawn flight path and answers position/heading queries.
// Points are only appended while a drawing stroke is active; starting a new
// stroke replaces the previous path entirely.
type Model struct {
	mu      sync.Mutex
	points  []Point
	drawing bool
}

// NewModel creates an empty path model
func NewModel() *Model {
	return &Model{}
}

// Begin starts a new drawing stroke, replacing any existing path
func (m *Model) Begin(p Point) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.points = []Point{p}
	m.drawing = true
}

// Extend appends a point to the current stroke.
// Ignored when no stroke is active.
func (m *Model) Extend(p Point) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.drawing {
		return
	}
	m.points = append(m.points, p)
}

// End finishes the current stroke; the path is retained as-is
func (m *Model) End() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.drawing = false
}

// Reset clears the path and drawing state (used when a new image is loaded)
func (m *Model) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.points = nil
	m.drawing = false
}

// HasPath reports whether the path is long enough to animate.
// A single point cannot define a heading.
func (m *Model) HasPath() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.points) > 1
}

// Len returns the number of points in the path
func (m *Model) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.points)
}

// PointAt returns the point at index, clamped into [0, len-1].
// Returns the zero Point for an empty path.
func (m *Model) PointAt(index int) Point {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.points) == 0 {
		return Point{}
	}
	return m.points[clamp(index, 0, len(m.points)-1)]
}

// HeadingAt returns the travel direction at index in degrees, computed from
// the segment between the point and its forward neighbor. The last index
// looks backward so the final segment's heading is preserved at the path end.
// Paths shorter than 2 points and zero-length segments yield 0.
func (m *Model) HeadingAt(index int) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.points) < 2 {
		return 0.0
	}

	idx := clamp(index, 0, len(m.points)-1)
	var p1, p2 Point
	if idx < len(m.points)-1 {
		p1 = m.points[idx]
		p2 = m.points[idx+1]
	} else {
		p1 = m.points[idx-1]
		p2 = m.points[idx]
	}

	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	if dx == 0 && dy == 0 {
		return 0.0
	}

	return math.Atan2(dy, dx) * 180.0 / math.Pi
}

// Points returns a copy of the path for read-only consumers (e.g. the
// frontend redraw). Mutating the returned slice does not affect the model.
func (m *Model) Points() []Point {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make([]Point, len(m.points))
	copy(snapshot, m.points)
	return snapshot
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
