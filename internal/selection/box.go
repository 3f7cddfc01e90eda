// Package selection implements the resizable selection box model: a
// rectangle with a numbered badge, a close control and two bottom corner
// handles whose positions are kept mutually consistent while a handle is
// dragged. The model has no rendering dependency; hosts read its geometry
// and redraw after each notification.
package selection

import (
	"errors"
	"fmt"

	"selection-canvas/pkg/geometry"

	"github.com/sirupsen/logrus"
)

// State is the lifecycle state of a box.
type State int

const (
	StateLive State = iota
	StateDestroyed
)

// Box is a single selection box.
type Box struct {
	order  int
	origin geometry.Point2D
	geom   Geometry
	style  Style
	active bool
	state  State

	// Hover state per handle
	hovered [2]bool

	// Decoration stacking order, bottom first
	stack []Part

	cursor      CursorService
	onDestroyed []func(*Box)
	log         *logrus.Entry
}

// Option configures a Box at construction.
type Option func(*Box)

// WithStyle overrides the default style.
func WithStyle(s Style) Option {
	return func(b *Box) { b.style = s }
}

// WithLogger sets the log entry used by the box.
func WithLogger(entry *logrus.Entry) Option {
	return func(b *Box) { b.log = entry }
}

// New creates a box with the given order label at canvas position (x, y).
// A zero width or height means "not supplied" and uses the default of 50.
// Negative or non-finite sizes are rejected with ErrInvalidDimension.
func New(order int, x, y, width, height float64, cursor CursorService, opts ...Option) (*Box, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}
	origin := geometry.NewPoint2D(x, y)
	if !origin.Finite() {
		return nil, fmt.Errorf("%w: (%g, %g)", ErrInvalidCoordinate, x, y)
	}
	if !geometry.Finite(width) || !geometry.Finite(height) || width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrInvalidDimension, width, height)
	}
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	if cursor == nil {
		cursor = NopCursor{}
	}

	b := &Box{
		order:  order,
		origin: origin,
		geom:   NewGeometry(width, height),
		style:  DefaultStyle(),
		stack:  []Part{PartRect, PartBadge, PartClose, PartBottomLeft, PartBottomRight},
		cursor: cursor,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logrus.WithField("component", "selection")
	}
	b.log = b.log.WithField("order", order)
	return b, nil
}

// Order returns the box's display label.
func (b *Box) Order() int { return b.order }

// Origin returns the canvas position of the box group.
func (b *Box) Origin() geometry.Point2D { return b.origin }

// Geometry returns the current local geometry.
func (b *Box) Geometry() Geometry { return b.geom }

// Style returns the drawing style.
func (b *Box) Style() Style { return b.style }

// Width returns the rectangle width.
func (b *Box) Width() float64 { return b.geom.Rect.Width }

// Height returns the rectangle height.
func (b *Box) Height() float64 { return b.geom.Rect.Height }

// Bounds returns the rectangle in canvas coordinates.
func (b *Box) Bounds() geometry.Rect {
	return b.geom.Rect.Translate(b.origin)
}

// IsActive reports whether the box is the active selection.
func (b *Box) IsActive() bool { return b.active }

// SetActive sets the active flag.
func (b *Box) SetActive(active bool) {
	if b.state == StateDestroyed {
		return
	}
	b.active = active
}

// Destroyed reports whether the close control has been activated.
func (b *Box) Destroyed() bool { return b.state == StateDestroyed }

// OnDestroyed registers a callback run once when the box is closed.
func (b *Box) OnDestroyed(fn func(*Box)) {
	b.onDestroyed = append(b.onDestroyed, fn)
}

// MoveHandle applies one drag-move notification for a handle at local
// position pos. Notifications must be delivered in order; each one reads
// the positions written by the previous. The caller redraws.
func (b *Box) MoveHandle(id HandleID, pos geometry.Point2D) error {
	if b.state == StateDestroyed {
		return ErrDestroyed
	}
	if !pos.Finite() {
		return fmt.Errorf("%w: (%g, %g)", ErrInvalidCoordinate, pos.X, pos.Y)
	}
	geom, err := ApplyHandleMove(b.geom, id, pos)
	switch {
	case err == nil:
		b.geom = geom
	case errors.Is(err, ErrDegenerateResize):
		b.geom = geom
		b.log.WithField("handle", id).Debug(err)
	default:
		b.log.WithField("handle", id).Warn(err)
	}
	return err
}

// Translate moves the whole box group by (dx, dy) on the canvas.
func (b *Box) Translate(dx, dy float64) error {
	if b.state == StateDestroyed {
		return ErrDestroyed
	}
	delta := geometry.NewPoint2D(dx, dy)
	if !delta.Finite() {
		return fmt.Errorf("%w: (%g, %g)", ErrInvalidCoordinate, dx, dy)
	}
	b.origin = b.origin.Add(delta)
	return nil
}

// HandleStroke returns the current stroke width of a handle.
func (b *Box) HandleStroke(id HandleID) float64 {
	if id.Valid() && b.hovered[id] {
		return b.style.HandleHoverStroke
	}
	return b.style.HandleStrokeWidth
}

// HandleHovered reports whether the pointer is over the handle.
func (b *Box) HandleHovered(id HandleID) bool {
	return id.Valid() && b.hovered[id]
}

// HandleEnter thickens the handle stroke and requests the pointer cursor.
func (b *Box) HandleEnter(id HandleID) {
	if b.state == StateDestroyed || !id.Valid() {
		return
	}
	b.hovered[id] = true
	b.cursor.RequestPointer()
}

// HandleLeave reverts the stroke and cursor set by HandleEnter.
func (b *Box) HandleLeave(id HandleID) {
	if b.state == StateDestroyed || !id.Valid() {
		return
	}
	b.hovered[id] = false
	b.cursor.RequestDefault()
}

// HandlePress raises the handle to the top of the box's decoration stack
// so it stays grabbable over the other parts.
func (b *Box) HandlePress(id HandleID) {
	if b.state == StateDestroyed || !id.Valid() {
		return
	}
	b.raise(Part(id.String()))
}

// Stack returns the decoration drawing order, bottom first.
func (b *Box) Stack() []Part {
	out := make([]Part, len(b.stack))
	copy(out, b.stack)
	return out
}

func (b *Box) raise(p Part) {
	for i, s := range b.stack {
		if s == p {
			b.stack = append(b.stack[:i], b.stack[i+1:]...)
			b.stack = append(b.stack, p)
			return
		}
	}
}

// CloseEnter requests the pointer cursor while over the close control.
func (b *Box) CloseEnter() {
	if b.state == StateDestroyed {
		return
	}
	b.cursor.RequestPointer()
}

// CloseLeave restores the default cursor.
func (b *Box) CloseLeave() {
	if b.state == StateDestroyed {
		return
	}
	b.cursor.RequestDefault()
}

// Close activates the close control: the cursor is reset and the box moves
// to its terminal destroyed state. Observers run once; later calls do
// nothing.
func (b *Box) Close() {
	if b.state == StateDestroyed {
		return
	}
	b.cursor.RequestDefault()
	b.state = StateDestroyed
	b.active = false
	b.log.Debug("selection closed")

	callbacks := b.onDestroyed
	b.onDestroyed = nil
	for _, fn := range callbacks {
		fn(b)
	}
}

// HitTest returns the part under a canvas point, checking the topmost
// decoration first. PartNone means the point misses the box.
func (b *Box) HitTest(p geometry.Point2D) Part {
	if b.state == StateDestroyed {
		return PartNone
	}
	local := p.Sub(b.origin)
	for i := len(b.stack) - 1; i >= 0; i-- {
		part := b.stack[i]
		if b.partContains(part, local) {
			return part
		}
	}
	return PartNone
}

func (b *Box) partContains(part Part, local geometry.Point2D) bool {
	switch part {
	case PartBottomLeft:
		return local.Distance(b.geom.Left) <= b.style.HandleRadius
	case PartBottomRight:
		return local.Distance(b.geom.Right) <= b.style.HandleRadius
	case PartClose:
		return local.Distance(geometry.NewPoint2D(b.geom.CloseX, 0)) <= b.style.CircleRadius
	case PartBadge:
		return local.Distance(geometry.NewPoint2D(b.geom.BadgeX, 0)) <= b.style.CircleRadius
	case PartRect:
		return b.geom.Rect.Contains(local)
	}
	return false
}
