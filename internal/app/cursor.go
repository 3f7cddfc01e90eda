package app

import (
	"sync"

	"selection-canvas/internal/selection"
)

// SharedCursor is the single process-wide cursor. Boxes request changes;
// the last request wins.
type SharedCursor struct {
	mu        sync.Mutex
	current   selection.Cursor
	listeners []func(selection.Cursor)
}

var _ selection.CursorService = (*SharedCursor)(nil)

// NewSharedCursor returns a cursor in the default state.
func NewSharedCursor() *SharedCursor {
	return &SharedCursor{current: selection.CursorDefault}
}

// RequestPointer switches to the pointer cursor.
func (c *SharedCursor) RequestPointer() { c.set(selection.CursorPointer) }

// RequestDefault switches to the default cursor.
func (c *SharedCursor) RequestDefault() { c.set(selection.CursorDefault) }

// Current returns the cursor last requested.
func (c *SharedCursor) Current() selection.Cursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// OnChange registers a callback run whenever the cursor changes.
func (c *SharedCursor) OnChange(fn func(selection.Cursor)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *SharedCursor) set(cur selection.Cursor) {
	c.mu.Lock()
	if c.current == cur {
		c.mu.Unlock()
		return
	}
	c.current = cur
	listeners := c.listeners
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(cur)
	}
}
