package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointDistance(t *testing.T) {
	a := NewPoint2D(0, 0)
	b := NewPoint2D(3, 4)
	assert.InDelta(t, 5.0, a.Distance(b), 1e-9)
	assert.InDelta(t, 5.0, b.Distance(a), 1e-9)
}

func TestPointAddSub(t *testing.T) {
	p := NewPoint2D(10, 20).Add(NewPoint2D(1, 2))
	assert.Equal(t, NewPoint2D(11, 22), p)
	assert.Equal(t, NewPoint2D(10, 20), p.Sub(NewPoint2D(1, 2)))
}

func TestFinite(t *testing.T) {
	assert.True(t, NewPoint2D(1, -1).Finite())
	assert.False(t, NewPoint2D(math.NaN(), 0).Finite())
	assert.False(t, NewPoint2D(0, math.Inf(-1)).Finite())
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 20, 5, 4)
	tests := []struct {
		name string
		p    Point2D
		want bool
	}{
		{"inside", NewPoint2D(12, 22), true},
		{"top-left edge", NewPoint2D(10, 20), true},
		{"bottom-right edge", NewPoint2D(15, 24), true},
		{"left of rect", NewPoint2D(9, 20), false},
		{"below rect", NewPoint2D(12, 25), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.p))
		})
	}
}

func TestRectContainsNegativeSize(t *testing.T) {
	r := NewRect(10, 10, -5, -5)
	assert.True(t, r.Contains(NewPoint2D(7, 7)))
	assert.False(t, r.Contains(NewPoint2D(11, 11)))
}

func TestRectNormalize(t *testing.T) {
	in := NewRect(10, 20, -5, -6)
	assert.Equal(t, NewRect(5, 14, 5, 6), in.Normalize())
	pos := NewRect(1, 2, 3, 4)
	assert.Equal(t, pos, pos.Normalize())
}

func TestRectTranslateAndUnion(t *testing.T) {
	r := NewRect(0, 0, 10, 10).Translate(NewPoint2D(5, 5))
	assert.Equal(t, NewRect(5, 5, 10, 10), r)

	u := NewRect(0, 0, 10, 10).Union(NewRect(20, 5, 5, 20))
	assert.Equal(t, NewRect(0, 0, 25, 25), u)
}

func TestSizePositive(t *testing.T) {
	assert.True(t, NewSize(1, 1).Positive())
	assert.False(t, NewSize(0, 1).Positive())
	assert.False(t, NewSize(1, -1).Positive())
}
