package selection

import (
	"fmt"

	"selection-canvas/pkg/geometry"
)

// HandleID identifies one of the two draggable corner handles.
type HandleID int

const (
	HandleBottomLeft HandleID = iota
	HandleBottomRight
)

// String returns the handle's stable part name.
func (h HandleID) String() string {
	switch h {
	case HandleBottomLeft:
		return string(PartBottomLeft)
	case HandleBottomRight:
		return string(PartBottomRight)
	default:
		return fmt.Sprintf("handle(%d)", int(h))
	}
}

// Valid reports whether h is one of the known handles.
func (h HandleID) Valid() bool {
	return h == HandleBottomLeft || h == HandleBottomRight
}

// ParseHandle converts a part name ("bottomLeft", "bottomRight") or a short
// alias ("bl", "br") into a HandleID.
func ParseHandle(s string) (HandleID, error) {
	switch s {
	case string(PartBottomLeft), "bottom-left", "bl":
		return HandleBottomLeft, nil
	case string(PartBottomRight), "bottom-right", "br":
		return HandleBottomRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownHandle, s)
}

// Part names one decoration inside a box. Names are unique within a box only.
type Part string

const (
	PartNone        Part = ""
	PartRect        Part = "selection"
	PartBadge       Part = "orderNumberGroup"
	PartClose       Part = "closeButtonGroup"
	PartBottomLeft  Part = "bottomLeft"
	PartBottomRight Part = "bottomRight"
)

// Geometry holds the local-coordinate positions of every part of a box.
// The box group's top edge is local y = 0, so a bottom handle's y is the
// rectangle height.
type Geometry struct {
	Rect   geometry.Rect    // Rectangle outline (X moves with the left handle)
	BadgeX float64          // Badge group x, tracks the left edge
	CloseX float64          // Close control group x, tracks the right edge
	Left   geometry.Point2D // Bottom-left handle
	Right  geometry.Point2D // Bottom-right handle
}

// NewGeometry returns the initial layout for a width x height box.
func NewGeometry(width, height float64) Geometry {
	return Geometry{
		Rect:   geometry.NewRect(0, 0, width, height),
		BadgeX: 0,
		CloseX: width,
		Left:   geometry.NewPoint2D(0, height),
		Right:  geometry.NewPoint2D(width, height),
	}
}

// Handle returns the position of the given handle.
func (g Geometry) Handle(id HandleID) geometry.Point2D {
	if id == HandleBottomRight {
		return g.Right
	}
	return g.Left
}

// ApplyHandleMove moves one handle to pos and recomputes the dependent
// parts. Handle positions are written unclamped, so handles may cross. The
// rectangle size is only updated when the recomputed width and height are
// both positive; otherwise the previous size stays and ErrDegenerateResize
// is returned together with the updated geometry.
func ApplyHandleMove(g Geometry, id HandleID, pos geometry.Point2D) (Geometry, error) {
	switch id {
	case HandleBottomLeft:
		g.Left = pos
		g.Right.Y = pos.Y
		g.BadgeX = pos.X
		g.Rect.X = pos.X
	case HandleBottomRight:
		g.Right = pos
		g.Left.Y = pos.Y
		g.CloseX = pos.X
	default:
		return g, fmt.Errorf("%w: %v", ErrUnknownHandle, id)
	}

	width := g.Right.X - g.Left.X
	height := g.Left.Y
	if width <= 0 || height <= 0 {
		return g, fmt.Errorf("%w: width=%g height=%g", ErrDegenerateResize, width, height)
	}
	g.Rect.Width = width
	g.Rect.Height = height
	return g, nil
}
