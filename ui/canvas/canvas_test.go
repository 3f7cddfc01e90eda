package canvas

import (
	"testing"

	"selection-canvas/internal/app"
	"selection-canvas/internal/selection"
	"selection-canvas/pkg/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCanvas(t *testing.T) (*SelectionCanvas, *app.Session) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	s := app.NewSession(app.DefaultPolicy())
	sc := NewSelectionCanvas(s)
	sc.Resize(fyne.NewSize(800, 600))
	return sc, s
}

func drag(dx, dy float32) *fyne.DragEvent {
	return &fyne.DragEvent{Dragged: fyne.NewDelta(dx, dy)}
}

func TestCanvas_ViewsFollowSession(t *testing.T) {
	s := app.NewSession(app.DefaultPolicy())
	_, err := s.AddBox(150, 150)
	require.NoError(t, err)

	a := test.NewApp()
	defer a.Quit()
	sc := NewSelectionCanvas(s)
	require.NotNil(t, sc.view(1))

	b2, err := s.AddBox(400, 100)
	require.NoError(t, err)
	require.NotNil(t, sc.view(b2.Order()))

	// background + 2 boxes x 10 objects
	assert.Len(t, sc.content.Objects, 21)

	require.NoError(t, s.CloseBox(1))
	assert.Nil(t, sc.view(1))
	assert.Len(t, sc.content.Objects, 11)
}

func TestCanvas_HandleDragResizes(t *testing.T) {
	sc, s := newTestCanvas(t)
	box, err := s.AddBox(150, 150)
	require.NoError(t, err)
	v := sc.view(box.Order())

	changes := 0
	sc.OnChange(func() { changes++ })

	h := v.handles[selection.HandleBottomRight]
	h.Dragged(drag(10, 10))
	h.Dragged(drag(20, 20))
	h.DragEnd()

	assert.Equal(t, 80.0, box.Width())
	assert.Equal(t, 80.0, box.Height())
	assert.Equal(t, geometry.NewPoint2D(0, 80), box.Geometry().Left)
	assert.Equal(t, 2, changes)

	assert.Equal(t, fyne.NewSize(80, 80), v.rect.Size())
	assert.Equal(t, fyne.NewPos(150, 150), v.rect.Position())
	// Handle widget is centred on the new corner.
	assert.Equal(t, fyne.NewPos(225, 225), h.Position())
	assert.Equal(t, fyne.NewPos(220, 140), v.close.Position())
}

func TestCanvas_LeftHandleMovesBadge(t *testing.T) {
	sc, s := newTestCanvas(t)
	box, err := s.AddBoxSized(0, 0, 100, 100)
	require.NoError(t, err)
	v := sc.view(box.Order())

	v.handles[selection.HandleBottomLeft].Dragged(drag(30, 0))

	assert.Equal(t, 70.0, box.Width())
	assert.Equal(t, fyne.NewPos(30, 0), v.rect.Position())
	assert.Equal(t, fyne.NewPos(20, -10), v.badgeCircle.Position())
}

func TestCanvas_DegenerateDragKeepsRect(t *testing.T) {
	sc, s := newTestCanvas(t)
	box, err := s.AddBox(100, 100)
	require.NoError(t, err)
	v := sc.view(box.Order())

	v.handles[selection.HandleBottomRight].Dragged(drag(-50, 0))

	assert.Equal(t, fyne.NewSize(50, 50), v.rect.Size())
	assert.Equal(t, fyne.NewPos(95, 145), v.handles[selection.HandleBottomRight].Position())
}

func TestCanvas_HoverFeedback(t *testing.T) {
	sc, s := newTestCanvas(t)
	box, err := s.AddBox(100, 100)
	require.NoError(t, err)
	h := sc.view(box.Order()).handles[selection.HandleBottomLeft]

	h.MouseIn(&desktop.MouseEvent{})
	assert.Equal(t, float32(box.Style().HandleHoverStroke), h.circle.StrokeWidth)
	assert.Equal(t, desktop.PointerCursor, h.Cursor())
	assert.Equal(t, desktop.PointerCursor, sc.Cursor())

	h.MouseOut()
	assert.Equal(t, float32(box.Style().HandleStrokeWidth), h.circle.StrokeWidth)
	assert.Equal(t, desktop.DefaultCursor, sc.Cursor())
}

func TestCanvas_PressRaisesHandle(t *testing.T) {
	sc, s := newTestCanvas(t)
	box, err := s.AddBox(100, 100)
	require.NoError(t, err)
	v := sc.view(box.Order())

	left := v.handles[selection.HandleBottomLeft]
	left.MouseDown(&desktop.MouseEvent{})

	objs := sc.content.Objects
	assert.Equal(t, fyne.CanvasObject(left), objs[len(objs)-1])
}

func TestCanvas_CloseTap(t *testing.T) {
	sc, s := newTestCanvas(t)
	box, err := s.AddBox(100, 100)
	require.NoError(t, err)
	v := sc.view(box.Order())

	v.close.MouseIn(&desktop.MouseEvent{})
	assert.Equal(t, desktop.PointerCursor, sc.Cursor())

	v.close.Tapped(&fyne.PointEvent{})
	assert.True(t, box.Destroyed())
	assert.Nil(t, sc.view(box.Order()))
	assert.Empty(t, s.Boxes())
	assert.Equal(t, desktop.DefaultCursor, sc.Cursor())

	// Late events from the released widgets are harmless.
	assert.NotPanics(t, func() {
		v.handles[selection.HandleBottomRight].Dragged(drag(5, 5))
		v.close.Tapped(&fyne.PointEvent{})
	})
}

func TestCanvas_BodyTapAndDrag(t *testing.T) {
	sc, s := newTestCanvas(t)
	box, err := s.AddBox(100, 100)
	require.NoError(t, err)
	v := sc.view(box.Order())

	v.body.Tapped(&fyne.PointEvent{Position: fyne.NewPos(25, 25)})
	assert.True(t, box.IsActive())
	assert.Same(t, box, s.Active())

	v.body.Dragged(drag(10, -20))
	assert.Equal(t, geometry.NewPoint2D(110, 80), box.Origin())
	assert.Equal(t, fyne.NewPos(110, 80), v.rect.Position())
}

func TestCanvas_SurfaceTap(t *testing.T) {
	sc, s := newTestCanvas(t)
	box, err := s.AddBox(100, 100)
	require.NoError(t, err)
	s.SetActive(box)

	sc.Tapped(&fyne.PointEvent{Position: fyne.NewPos(500, 500)})
	assert.Nil(t, s.Active())
	assert.Len(t, s.Boxes(), 1)

	s.SetCreateOnSurfaceClick(true)
	sc.Tapped(&fyne.PointEvent{Position: fyne.NewPos(500, 500)})
	require.Len(t, s.Boxes(), 2)
	assert.NotNil(t, sc.view(2))
}

func TestCanvas_BadgeTapActivates(t *testing.T) {
	sc, s := newTestCanvas(t)
	box, err := s.AddBox(100, 100)
	require.NoError(t, err)

	// The badge half outside the rectangle reaches the canvas itself.
	sc.Tapped(&fyne.PointEvent{Position: fyne.NewPos(97, 97)})
	assert.True(t, box.IsActive())
}
