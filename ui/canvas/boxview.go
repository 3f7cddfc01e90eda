package canvas

import (
	"errors"
	"image/color"
	"strconv"

	"selection-canvas/internal/selection"
	"selection-canvas/pkg/colorutil"
	"selection-canvas/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// boxView holds the fyne objects drawing one selection box. Objects live in
// the canvas content container, positioned in canvas coordinates.
type boxView struct {
	canvas *SelectionCanvas
	box    *selection.Box

	rect *fynecanvas.Rectangle
	body *bodyWidget

	badgeCircle *fynecanvas.Circle
	badgeText   *fynecanvas.Text

	closeCircle *fynecanvas.Circle
	closeLines  [2]*fynecanvas.Line
	close       *closeWidget

	handles [2]*handleWidget
}

func newBoxView(sc *SelectionCanvas, b *selection.Box) *boxView {
	st := b.Style()
	v := &boxView{canvas: sc, box: b}

	v.rect = fynecanvas.NewRectangle(color.Transparent)
	v.rect.StrokeColor = colorutil.DarkOrange
	v.rect.StrokeWidth = float32(st.RectStrokeWidth)
	v.body = newBodyWidget(v)

	v.badgeCircle = fynecanvas.NewCircle(colorutil.Lerp(colorutil.Red, colorutil.Yellow, 0.5))
	v.badgeCircle.StrokeColor = colorutil.White
	v.badgeCircle.StrokeWidth = float32(st.CircleStrokeWidth)
	v.badgeText = fynecanvas.NewText(strconv.Itoa(b.Order()), colorutil.White)
	v.badgeText.TextSize = float32(st.BadgeFontSize)
	v.badgeText.Alignment = fyne.TextAlignCenter

	v.closeCircle = fynecanvas.NewCircle(colorutil.Orange)
	v.closeCircle.StrokeColor = colorutil.White
	v.closeCircle.StrokeWidth = float32(st.CircleStrokeWidth)
	for i := range v.closeLines {
		v.closeLines[i] = fynecanvas.NewLine(colorutil.White)
		v.closeLines[i].StrokeWidth = float32(st.CircleStrokeWidth)
	}
	v.close = newCloseWidget(v)

	v.handles[selection.HandleBottomLeft] = newHandleWidget(v, selection.HandleBottomLeft)
	v.handles[selection.HandleBottomRight] = newHandleWidget(v, selection.HandleBottomRight)

	v.layout()
	return v
}

// objects returns the view's canvas objects in the box's stacking order.
func (v *boxView) objects() []fyne.CanvasObject {
	var out []fyne.CanvasObject
	for _, part := range v.box.Stack() {
		switch part {
		case selection.PartRect:
			out = append(out, v.rect, v.body)
		case selection.PartBadge:
			out = append(out, v.badgeCircle, v.badgeText)
		case selection.PartClose:
			out = append(out, v.closeCircle, v.closeLines[0], v.closeLines[1], v.close)
		case selection.PartBottomLeft:
			out = append(out, v.handles[selection.HandleBottomLeft])
		case selection.PartBottomRight:
			out = append(out, v.handles[selection.HandleBottomRight])
		}
	}
	return out
}

// layout positions every object from the box's current geometry.
func (v *boxView) layout() {
	o := v.box.Origin()
	g := v.box.Geometry()
	st := v.box.Style()

	rect := g.Rect.Translate(o)
	v.rect.Move(pos(rect.X, rect.Y))
	v.rect.Resize(size(rect.Width, rect.Height))
	v.body.Move(pos(rect.X, rect.Y))
	v.body.Resize(size(rect.Width, rect.Height))

	badge := o.Add(geometry.NewPoint2D(g.BadgeX, 0))
	placeCircle(v.badgeCircle, badge, st.CircleRadius)
	v.badgeText.Move(pos(badge.X-st.CircleRadius, badge.Y-st.BadgeFontSize*0.7))
	v.badgeText.Resize(size(2*st.CircleRadius, st.BadgeFontSize*1.4))

	closeAt := o.Add(geometry.NewPoint2D(g.CloseX, 0))
	placeCircle(v.closeCircle, closeAt, st.CircleRadius)
	half := st.CircleRadius / 2
	v.closeLines[0].Position1 = pos(closeAt.X-half, closeAt.Y-half)
	v.closeLines[0].Position2 = pos(closeAt.X+half, closeAt.Y+half)
	v.closeLines[1].Position1 = pos(closeAt.X+half, closeAt.Y-half)
	v.closeLines[1].Position2 = pos(closeAt.X-half, closeAt.Y+half)
	v.close.Move(pos(closeAt.X-st.CircleRadius, closeAt.Y-st.CircleRadius))
	v.close.Resize(size(2*st.CircleRadius, 2*st.CircleRadius))

	for _, h := range v.handles {
		h.place(o.Add(g.Handle(h.id)), st.HandleRadius, v.box.HandleStroke(h.id))
	}

	for _, obj := range v.objects() {
		obj.Refresh()
	}
}

func placeCircle(c *fynecanvas.Circle, center geometry.Point2D, r float64) {
	c.Move(pos(center.X-r, center.Y-r))
	c.Resize(size(2*r, 2*r))
}

func pos(x, y float64) fyne.Position {
	return fyne.NewPos(float32(x), float32(y))
}

func size(w, h float64) fyne.Size {
	return fyne.NewSize(float32(w), float32(h))
}

// handleWidget is a draggable corner handle.
type handleWidget struct {
	widget.BaseWidget
	view   *boxView
	id     selection.HandleID
	circle *fynecanvas.Circle
}

var (
	_ fyne.Draggable     = (*handleWidget)(nil)
	_ desktop.Hoverable  = (*handleWidget)(nil)
	_ desktop.Mouseable  = (*handleWidget)(nil)
	_ desktop.Cursorable = (*handleWidget)(nil)
)

func newHandleWidget(v *boxView, id selection.HandleID) *handleWidget {
	h := &handleWidget{view: v, id: id}
	h.circle = fynecanvas.NewCircle(colorutil.White)
	h.circle.StrokeColor = colorutil.Grey
	h.ExtendBaseWidget(h)
	return h
}

func (h *handleWidget) place(center geometry.Point2D, r, stroke float64) {
	h.circle.StrokeWidth = float32(stroke)
	h.Move(pos(center.X-r, center.Y-r))
	h.Resize(size(2*r, 2*r))
}

func (h *handleWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(h.circle)
}

// Dragged delivers one handle-move notification per drag event, in order.
func (h *handleWidget) Dragged(ev *fyne.DragEvent) {
	b := h.view.box
	next := b.Geometry().Handle(h.id).Add(
		geometry.NewPoint2D(float64(ev.Dragged.DX), float64(ev.Dragged.DY)))

	err := h.view.canvas.session.MoveHandle(b.Order(), h.id, next)
	if err != nil && !errors.Is(err, selection.ErrDegenerateResize) {
		h.view.canvas.log.WithError(err).WithField("handle", h.id).Debug("handle move ignored")
	}
}

func (h *handleWidget) DragEnd() {
	h.view.layout()
}

func (h *handleWidget) MouseDown(*desktop.MouseEvent) {
	h.view.box.HandlePress(h.id)
	h.view.canvas.restack()
}

func (h *handleWidget) MouseUp(*desktop.MouseEvent) {}

func (h *handleWidget) MouseIn(*desktop.MouseEvent) {
	h.view.box.HandleEnter(h.id)
	h.view.layout()
}

func (h *handleWidget) MouseMoved(*desktop.MouseEvent) {}

func (h *handleWidget) MouseOut() {
	h.view.box.HandleLeave(h.id)
	h.view.layout()
}

func (h *handleWidget) Cursor() desktop.Cursor {
	return h.view.canvas.Cursor()
}

// closeWidget is the clickable area over the close control.
type closeWidget struct {
	widget.BaseWidget
	view *boxView
}

var (
	_ fyne.Tappable      = (*closeWidget)(nil)
	_ desktop.Hoverable  = (*closeWidget)(nil)
	_ desktop.Cursorable = (*closeWidget)(nil)
)

func newCloseWidget(v *boxView) *closeWidget {
	c := &closeWidget{view: v}
	c.ExtendBaseWidget(c)
	return c
}

func (c *closeWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(fynecanvas.NewRectangle(color.Transparent))
}

func (c *closeWidget) Tapped(*fyne.PointEvent) {
	if err := c.view.canvas.session.CloseBox(c.view.box.Order()); err != nil {
		c.view.canvas.log.WithError(err).Debug("close")
	}
}

func (c *closeWidget) MouseIn(*desktop.MouseEvent) {
	c.view.box.CloseEnter()
}

func (c *closeWidget) MouseMoved(*desktop.MouseEvent) {}

func (c *closeWidget) MouseOut() {
	c.view.box.CloseLeave()
}

func (c *closeWidget) Cursor() desktop.Cursor {
	return c.view.canvas.Cursor()
}

// bodyWidget covers the rectangle: tapping selects the box, dragging moves it.
type bodyWidget struct {
	widget.BaseWidget
	view *boxView
}

var (
	_ fyne.Tappable  = (*bodyWidget)(nil)
	_ fyne.Draggable = (*bodyWidget)(nil)
)

func newBodyWidget(v *boxView) *bodyWidget {
	b := &bodyWidget{view: v}
	b.ExtendBaseWidget(b)
	return b
}

func (b *bodyWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(fynecanvas.NewRectangle(color.Transparent))
}

func (b *bodyWidget) Tapped(ev *fyne.PointEvent) {
	p := b.Position().Add(ev.Position)
	b.view.canvas.clickAt(geometry.NewPoint2D(float64(p.X), float64(p.Y)))
}

func (b *bodyWidget) Dragged(ev *fyne.DragEvent) {
	order := b.view.box.Order()
	if err := b.view.canvas.session.TranslateBox(order, float64(ev.Dragged.DX), float64(ev.Dragged.DY)); err != nil {
		b.view.canvas.log.WithError(err).Debug("move ignored")
	}
}

func (b *bodyWidget) DragEnd() {}
