package app

import (
	"testing"

	"selection-canvas/internal/selection"
	"selection-canvas/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBox_SequentialOrders(t *testing.T) {
	s := NewSession(DefaultPolicy())

	var created []int
	s.On(EventBoxCreated, func(data interface{}) {
		created = append(created, data.(*selection.Box).Order())
	})

	b1, err := s.AddBox(150, 150)
	require.NoError(t, err)
	b2, err := s.AddBoxSized(10, 10, 100, 40)
	require.NoError(t, err)

	assert.Equal(t, 1, b1.Order())
	assert.Equal(t, 2, b2.Order())
	assert.Equal(t, []int{1, 2}, created)
	assert.Equal(t, 50.0, b1.Width())
	assert.Equal(t, 100.0, b2.Width())
	assert.Len(t, s.Boxes(), 2)
}

func TestAddBox_OrdersNeverReused(t *testing.T) {
	s := NewSession(DefaultPolicy())

	b1, err := s.AddBox(0, 0)
	require.NoError(t, err)
	require.NoError(t, s.CloseBox(b1.Order()))

	_, err = s.AddBoxSized(0, 0, -1, 10)
	require.ErrorIs(t, err, selection.ErrInvalidDimension)

	b3, err := s.AddBox(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, b3.Order())
	assert.Len(t, s.Boxes(), 1)
}

func TestNewSession_PolicyDefaults(t *testing.T) {
	s := NewSession(Policy{DefaultWidth: 80})
	box, err := s.AddBox(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 80.0, box.Width())
	assert.Equal(t, selection.DefaultHeight, box.Height())
}

func TestMoveHandle_EmitsResize(t *testing.T) {
	s := NewSession(DefaultPolicy())
	box, err := s.AddBox(150, 150)
	require.NoError(t, err)

	resized := 0
	s.On(EventBoxResized, func(interface{}) { resized++ })

	require.NoError(t, s.MoveHandle(box.Order(), selection.HandleBottomRight, geometry.NewPoint2D(80, 80)))
	assert.Equal(t, 80.0, box.Width())

	err = s.MoveHandle(box.Order(), selection.HandleBottomRight, geometry.NewPoint2D(0, 80))
	assert.ErrorIs(t, err, selection.ErrDegenerateResize)
	assert.Equal(t, 2, resized)

	err = s.MoveHandle(box.Order(), selection.HandleID(9), geometry.NewPoint2D(0, 80))
	assert.ErrorIs(t, err, selection.ErrUnknownHandle)
	assert.Equal(t, 2, resized)

	assert.ErrorIs(t, s.MoveHandle(42, selection.HandleBottomLeft, geometry.Point2D{}), ErrNoSuchBox)
}

func TestTranslateBox(t *testing.T) {
	s := NewSession(DefaultPolicy())
	box, err := s.AddBox(10, 10)
	require.NoError(t, err)

	moved := 0
	s.On(EventBoxMoved, func(interface{}) { moved++ })
	require.NoError(t, s.TranslateBox(box.Order(), 5, 5))
	assert.Equal(t, geometry.NewPoint2D(15, 15), box.Origin())
	assert.Equal(t, 1, moved)
}

func TestCloseBox_RemovesAndIsTerminal(t *testing.T) {
	s := NewSession(DefaultPolicy())
	box, err := s.AddBox(0, 0)
	require.NoError(t, err)
	s.SetActive(box)
	s.Cursor().RequestPointer()

	var destroyed []int
	var activeEvents []interface{}
	s.On(EventBoxDestroyed, func(data interface{}) {
		destroyed = append(destroyed, data.(*selection.Box).Order())
	})
	s.On(EventActiveChanged, func(data interface{}) {
		activeEvents = append(activeEvents, data)
	})

	require.NoError(t, s.CloseBox(box.Order()))
	assert.Equal(t, []int{1}, destroyed)
	assert.Empty(t, s.Boxes())
	assert.Nil(t, s.Active())
	assert.Equal(t, []interface{}{nil}, activeEvents)
	assert.Equal(t, selection.CursorDefault, s.Cursor().Current())

	assert.ErrorIs(t, s.CloseBox(box.Order()), ErrNoSuchBox)
	assert.ErrorIs(t, s.MoveHandle(box.Order(), selection.HandleBottomRight, geometry.NewPoint2D(1, 1)), ErrNoSuchBox)
	assert.ErrorIs(t, box.MoveHandle(selection.HandleBottomRight, geometry.NewPoint2D(1, 1)), selection.ErrDestroyed)
}

func TestClear(t *testing.T) {
	s := NewSession(DefaultPolicy())
	for i := 0; i < 3; i++ {
		_, err := s.AddBox(float64(i*100), 0)
		require.NoError(t, err)
	}
	s.Clear()
	assert.Empty(t, s.Boxes())
}

func TestClick_Routing(t *testing.T) {
	s := NewSession(DefaultPolicy())
	b1, err := s.AddBox(0, 0)
	require.NoError(t, err)
	b2, err := s.AddBox(200, 200)
	require.NoError(t, err)

	res, err := s.Click(geometry.NewPoint2D(225, 225))
	require.NoError(t, err)
	assert.Same(t, b2, res.Box)
	assert.Equal(t, selection.PartRect, res.Part)
	assert.True(t, b2.IsActive())
	assert.False(t, b1.IsActive())
	assert.Same(t, b2, s.Active())

	res, err = s.Click(geometry.NewPoint2D(25, 25))
	require.NoError(t, err)
	assert.Same(t, b1, res.Box)
	assert.True(t, b1.IsActive())
	assert.False(t, b2.IsActive())

	// Empty surface clears the selection and, by default, creates nothing.
	res, err = s.Click(geometry.NewPoint2D(600, 600))
	require.NoError(t, err)
	assert.Nil(t, res.Box)
	assert.False(t, res.Created)
	assert.Nil(t, s.Active())
	assert.False(t, b1.IsActive())
	assert.Len(t, s.Boxes(), 2)
}

func TestClick_TopmostBoxWins(t *testing.T) {
	s := NewSession(DefaultPolicy())
	_, err := s.AddBox(0, 0)
	require.NoError(t, err)
	top, err := s.AddBox(20, 20)
	require.NoError(t, err)

	res, err := s.Click(geometry.NewPoint2D(40, 40))
	require.NoError(t, err)
	assert.Same(t, top, res.Box)
}

func TestClick_CloseControl(t *testing.T) {
	s := NewSession(DefaultPolicy())
	box, err := s.AddBox(100, 100)
	require.NoError(t, err)

	res, err := s.Click(geometry.NewPoint2D(150, 100))
	require.NoError(t, err)
	assert.Equal(t, selection.PartClose, res.Part)
	assert.True(t, box.Destroyed())
	assert.Empty(t, s.Boxes())
}

func TestClick_CreateOnSurfaceClick(t *testing.T) {
	s := NewSession(DefaultPolicy())
	s.SetCreateOnSurfaceClick(true)

	res, err := s.Click(geometry.NewPoint2D(300, 120))
	require.NoError(t, err)
	require.NotNil(t, res.Box)
	assert.True(t, res.Created)
	assert.Equal(t, 1, res.Box.Order())
	assert.Equal(t, geometry.NewPoint2D(300, 120), res.Box.Origin())
	assert.Same(t, res.Box, s.Active())
	assert.True(t, res.Box.IsActive())
}

func TestSetActive_IgnoresBoxesNotInSession(t *testing.T) {
	s := NewSession(DefaultPolicy())
	live, err := s.AddBox(0, 0)
	require.NoError(t, err)
	closed, err := s.AddBox(100, 100)
	require.NoError(t, err)
	require.NoError(t, s.CloseBox(closed.Order()))

	events := 0
	s.On(EventActiveChanged, func(interface{}) { events++ })

	s.SetActive(closed)
	assert.Nil(t, s.Active())
	assert.False(t, closed.IsActive())

	other := NewSession(DefaultPolicy())
	foreign, err := other.AddBox(0, 0)
	require.NoError(t, err)
	s.SetActive(foreign)
	assert.Nil(t, s.Active())
	assert.False(t, foreign.IsActive())
	assert.Equal(t, 0, events)

	s.SetActive(live)
	s.SetActive(foreign)
	assert.Same(t, live, s.Active())
	assert.True(t, live.IsActive())
	assert.Equal(t, 1, events)
}

func TestSharedCursor_LastWriterWins(t *testing.T) {
	c := NewSharedCursor()
	var seen []selection.Cursor
	c.OnChange(func(cur selection.Cursor) { seen = append(seen, cur) })

	c.RequestPointer()
	c.RequestPointer()
	c.RequestDefault()
	c.RequestPointer()

	assert.Equal(t, selection.CursorPointer, c.Current())
	assert.Equal(t, []selection.Cursor{
		selection.CursorPointer,
		selection.CursorDefault,
		selection.CursorPointer,
	}, seen)
}

func TestHover_UsesSharedCursor(t *testing.T) {
	s := NewSession(DefaultPolicy())
	a, err := s.AddBox(0, 0)
	require.NoError(t, err)
	b, err := s.AddBox(100, 0)
	require.NoError(t, err)

	a.HandleEnter(selection.HandleBottomLeft)
	assert.Equal(t, selection.CursorPointer, s.Cursor().Current())
	b.CloseLeave()
	assert.Equal(t, selection.CursorDefault, s.Cursor().Current())
}
