// Package app provides the canvas host session: box lifecycle, click
// routing, the shared cursor and application events.
package app

import (
	"errors"
	"fmt"
	"sync"

	"selection-canvas/internal/logging"
	"selection-canvas/internal/selection"
	"selection-canvas/pkg/geometry"

	"github.com/sirupsen/logrus"
)

// ErrNoSuchBox is returned when an order label does not name a live box.
var ErrNoSuchBox = errors.New("no such selection")

// Policy holds host-level choices for creating boxes.
type Policy struct {
	DefaultWidth         float64
	DefaultHeight        float64
	CreateOnSurfaceClick bool
}

// DefaultPolicy matches the standard canvas: 50x50 boxes, surface clicks
// only clear the active selection.
func DefaultPolicy() Policy {
	return Policy{
		DefaultWidth:  selection.DefaultWidth,
		DefaultHeight: selection.DefaultHeight,
	}
}

// Session holds the canvas state: the live boxes in stacking order, the
// order counter, the active box and the shared cursor.
type Session struct {
	mu sync.RWMutex

	boxes     []*selection.Box // bottom first
	nextOrder int
	active    *selection.Box

	policy Policy
	cursor *SharedCursor
	log    *logrus.Entry

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different session events.
type EventType int

const (
	EventBoxCreated EventType = iota
	EventBoxResized
	EventBoxMoved
	EventBoxDestroyed
	EventActiveChanged
)

// EventListener is called when an event occurs. Data is the affected
// *selection.Box, or nil for EventActiveChanged with no active box.
type EventListener func(data interface{})

// NewSession creates an empty session.
func NewSession(policy Policy) *Session {
	if policy.DefaultWidth <= 0 {
		policy.DefaultWidth = selection.DefaultWidth
	}
	if policy.DefaultHeight <= 0 {
		policy.DefaultHeight = selection.DefaultHeight
	}
	return &Session{
		nextOrder: 1,
		policy:    policy,
		cursor:    NewSharedCursor(),
		log:       logging.Component("session"),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *Session) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Cursor returns the shared cursor.
func (s *Session) Cursor() *SharedCursor {
	return s.cursor
}

// Policy returns the creation policy.
func (s *Session) Policy() Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

// SetCreateOnSurfaceClick toggles creating a box when empty canvas is clicked.
func (s *Session) SetCreateOnSurfaceClick(enabled bool) {
	s.mu.Lock()
	s.policy.CreateOnSurfaceClick = enabled
	s.mu.Unlock()
}

// AddBox creates a box of the default size at canvas point (x, y).
func (s *Session) AddBox(x, y float64) (*selection.Box, error) {
	p := s.Policy()
	return s.AddBoxSized(x, y, p.DefaultWidth, p.DefaultHeight)
}

// AddBoxSized creates a box with the next order label. Order labels are
// never reused, even after a box is closed or construction fails.
func (s *Session) AddBoxSized(x, y, width, height float64) (*selection.Box, error) {
	s.mu.Lock()
	order := s.nextOrder
	s.nextOrder++
	s.mu.Unlock()

	box, err := selection.New(order, x, y, width, height, s.cursor,
		selection.WithLogger(logging.Component("selection")))
	if err != nil {
		return nil, fmt.Errorf("create selection %d: %w", order, err)
	}
	box.OnDestroyed(s.remove)

	s.mu.Lock()
	s.boxes = append(s.boxes, box)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"order": order,
		"x":     x,
		"y":     y,
		"size":  fmt.Sprintf("%gx%g", box.Width(), box.Height()),
	}).Info("selection created")
	s.Emit(EventBoxCreated, box)
	return box, nil
}

// Boxes returns the live boxes, bottom first.
func (s *Session) Boxes() []*selection.Box {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*selection.Box, len(s.boxes))
	copy(out, s.boxes)
	return out
}

// Box returns the live box with the given order label.
func (s *Session) Box(order int) (*selection.Box, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.boxes {
		if b.Order() == order {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrNoSuchBox, order)
}

// Active returns the active box, or nil.
func (s *Session) Active() *selection.Box {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// MoveHandle forwards a drag-move notification to a box. A degenerate
// resize still moved the handles, so listeners are notified and the error
// is returned for the caller to inspect.
func (s *Session) MoveHandle(order int, id selection.HandleID, pos geometry.Point2D) error {
	box, err := s.Box(order)
	if err != nil {
		return err
	}
	err = box.MoveHandle(id, pos)
	if err == nil || errors.Is(err, selection.ErrDegenerateResize) {
		s.Emit(EventBoxResized, box)
	}
	return err
}

// TranslateBox moves a box across the canvas.
func (s *Session) TranslateBox(order int, dx, dy float64) error {
	box, err := s.Box(order)
	if err != nil {
		return err
	}
	if err := box.Translate(dx, dy); err != nil {
		return err
	}
	s.Emit(EventBoxMoved, box)
	return nil
}

// CloseBox activates a box's close control.
func (s *Session) CloseBox(order int) error {
	box, err := s.Box(order)
	if err != nil {
		return err
	}
	box.Close()
	return nil
}

// Clear closes every live box.
func (s *Session) Clear() {
	for _, b := range s.Boxes() {
		b.Close()
	}
}

// SetActive makes box the active selection and clears the flag on every
// other box. A nil box clears the active selection. A box that is not live
// in this session (closed, or owned by another session) is ignored.
func (s *Session) SetActive(box *selection.Box) {
	s.mu.Lock()
	if s.active == box || (box != nil && !s.holds(box)) {
		s.mu.Unlock()
		return
	}
	for _, b := range s.boxes {
		b.SetActive(b == box)
	}
	s.active = box
	s.mu.Unlock()

	if box == nil {
		s.Emit(EventActiveChanged, nil)
		return
	}
	s.Emit(EventActiveChanged, box)
}

// holds reports whether box is one of the live boxes. Callers hold s.mu.
func (s *Session) holds(box *selection.Box) bool {
	for _, b := range s.boxes {
		if b == box {
			return true
		}
	}
	return false
}

// ClickResult describes how a click was routed.
type ClickResult struct {
	Box     *selection.Box
	Part    selection.Part
	Created bool
}

// Click routes a click at canvas point p. A click on a box part makes that
// box active (the close control closes it instead). A click on empty
// surface clears the active box and, when the policy allows, creates a new
// box at p and makes it active.
func (s *Session) Click(p geometry.Point2D) (ClickResult, error) {
	boxes := s.Boxes()
	for i := len(boxes) - 1; i >= 0; i-- {
		box := boxes[i]
		part := box.HitTest(p)
		if part == selection.PartNone {
			continue
		}
		if part == selection.PartClose {
			box.Close()
			return ClickResult{Box: box, Part: part}, nil
		}
		s.SetActive(box)
		return ClickResult{Box: box, Part: part}, nil
	}

	s.SetActive(nil)
	if !s.Policy().CreateOnSurfaceClick {
		return ClickResult{}, nil
	}
	box, err := s.AddBox(p.X, p.Y)
	if err != nil {
		return ClickResult{}, err
	}
	s.SetActive(box)
	return ClickResult{Box: box, Created: true}, nil
}

// remove drops a destroyed box from the session.
func (s *Session) remove(box *selection.Box) {
	s.mu.Lock()
	for i, b := range s.boxes {
		if b == box {
			s.boxes = append(s.boxes[:i], s.boxes[i+1:]...)
			break
		}
	}
	wasActive := s.active == box
	if wasActive {
		s.active = nil
	}
	s.mu.Unlock()

	s.log.WithField("order", box.Order()).Info("selection closed")
	s.Emit(EventBoxDestroyed, box)
	if wasActive {
		s.Emit(EventActiveChanged, nil)
	}
}
