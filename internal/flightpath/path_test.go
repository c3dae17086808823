package flightpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtendOnlyWhileDrawing(t *testing.T) {
	m := NewModel()

	// Extending before any stroke is a no-op
	m.Extend(Point{X: 1, Y: 1})
	assert.Equal(t, 0, m.Len())

	m.Begin(Point{X: 0, Y: 0})
	m.Extend(Point{X: 1, Y: 0})
	m.Extend(Point{X: 2, Y: 0})
	assert.Equal(t, 3, m.Len())

	m.End()
	m.Extend(Point{X: 3, Y: 0})
	assert.Equal(t, 3, m.Len(), "extend after release must be ignored")
}

func TestBeginReplacesPath(t *testing.T) {
	m := NewModel()
	m.Begin(Point{X: 0, Y: 0})
	m.Extend(Point{X: 5, Y: 5})
	m.End()
	require.Equal(t, 2, m.Len())

	m.Begin(Point{X: 100, Y: 100})
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, Point{X: 100, Y: 100}, m.PointAt(0))
}

func TestHasPath(t *testing.T) {
	m := NewModel()
	assert.False(t, m.HasPath())

	m.Begin(Point{X: 0, Y: 0})
	assert.False(t, m.HasPath(), "a single point cannot define a heading")

	m.Extend(Point{X: 1, Y: 1})
	assert.True(t, m.HasPath())

	m.Reset()
	assert.False(t, m.HasPath())
	assert.Equal(t, 0, m.Len())
}

func TestPointAtClamps(t *testing.T) {
	m := NewModel()
	assert.Equal(t, Point{}, m.PointAt(0), "empty path returns zero point")

	m.Begin(Point{X: 1, Y: 2})
	m.Extend(Point{X: 3, Y: 4})
	m.End()

	assert.Equal(t, Point{X: 1, Y: 2}, m.PointAt(-5))
	assert.Equal(t, Point{X: 3, Y: 4}, m.PointAt(99))
}

func TestHeadingAt(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		index  int
		want   float64
	}{
		{
			name:   "east",
			points: []Point{{0, 0}, {10, 0}},
			index:  0,
			want:   0,
		},
		{
			name:   "south (y grows downward)",
			points: []Point{{0, 0}, {0, 10}},
			index:  0,
			want:   90,
		},
		{
			name:   "north",
			points: []Point{{0, 0}, {0, -10}},
			index:  0,
			want:   -90,
		},
		{
			name:   "west",
			points: []Point{{10, 0}, {0, 0}},
			index:  0,
			want:   180,
		},
		{
			name:   "diagonal",
			points: []Point{{0, 0}, {10, 10}},
			index:  0,
			want:   45,
		},
		{
			name:   "last index looks backward",
			points: []Point{{0, 0}, {10, 0}, {10, 10}},
			index:  2,
			want:   90,
		},
		{
			name:   "duplicate consecutive points freeze heading at 0",
			points: []Point{{5, 5}, {5, 5}},
			index:  0,
			want:   0,
		},
		{
			name:   "index clamped above",
			points: []Point{{0, 0}, {10, 0}},
			index:  50,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()
			m.Begin(tt.points[0])
			for _, p := range tt.points[1:] {
				m.Extend(p)
			}
			m.End()

			assert.InDelta(t, tt.want, m.HeadingAt(tt.index), 1e-9)
		})
	}
}

func TestHeadingShortPath(t *testing.T) {
	m := NewModel()
	assert.Equal(t, 0.0, m.HeadingAt(0))

	m.Begin(Point{X: 7, Y: 7})
	assert.Equal(t, 0.0, m.HeadingAt(0), "single point has no heading")
}

func TestHeadingEndMatchesPenultimate(t *testing.T) {
	// When the last two points are distinct, the heading at the final index
	// must equal the heading at the index before it.
	m := NewModel()
	m.Begin(Point{X: 0, Y: 0})
	m.Extend(Point{X: 3, Y: 1})
	m.Extend(Point{X: 8, Y: 4})
	m.Extend(Point{X: 9, Y: 9})
	m.End()

	last := m.Len() - 1
	assert.InDelta(t, m.HeadingAt(last-1), m.HeadingAt(last), 1e-9)
}

func TestPointsSnapshotIsCopy(t *testing.T) {
	m := NewModel()
	m.Begin(Point{X: 0, Y: 0})
	m.Extend(Point{X: 1, Y: 1})
	m.End()

	snap := m.Points()
	snap[0].X = math.MaxFloat64

	assert.Equal(t, Point{X: 0, Y: 0}, m.PointAt(0))
}
