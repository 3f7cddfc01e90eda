// Package canvas provides the drawing surface that hosts selection boxes.
package canvas

import (
	"selection-canvas/internal/app"
	"selection-canvas/internal/logging"
	"selection-canvas/internal/selection"
	"selection-canvas/pkg/colorutil"
	"selection-canvas/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
)

// SelectionCanvas is the drawing surface. It creates a view per box in the
// session, routes clicks on empty surface and reports the shared cursor.
type SelectionCanvas struct {
	widget.BaseWidget

	session *app.Session
	views   map[int]*boxView
	order   []int // view stacking order, bottom first

	background *fynecanvas.Rectangle
	content    *fyne.Container

	// Callbacks
	onChange func()

	log *logrus.Entry
}

var (
	_ fyne.Tappable      = (*SelectionCanvas)(nil)
	_ desktop.Cursorable = (*SelectionCanvas)(nil)
)

// NewSelectionCanvas creates a canvas bound to a session. Boxes already in
// the session get views immediately.
func NewSelectionCanvas(session *app.Session) *SelectionCanvas {
	sc := &SelectionCanvas{
		session:    session,
		views:      make(map[int]*boxView),
		background: fynecanvas.NewRectangle(colorutil.Background),
		log:        logging.Component("canvas"),
	}
	sc.content = container.NewWithoutLayout(sc.background)

	for _, b := range session.Boxes() {
		sc.addView(b)
	}

	session.On(app.EventBoxCreated, func(data interface{}) {
		sc.addView(data.(*selection.Box))
		sc.changed()
	})
	session.On(app.EventBoxDestroyed, func(data interface{}) {
		sc.removeView(data.(*selection.Box))
		sc.changed()
	})
	session.On(app.EventBoxResized, sc.redrawBox)
	session.On(app.EventBoxMoved, sc.redrawBox)
	session.On(app.EventActiveChanged, func(interface{}) {
		sc.changed()
	})

	sc.ExtendBaseWidget(sc)
	return sc
}

// Session returns the session shown by the canvas.
func (sc *SelectionCanvas) Session() *app.Session {
	return sc.session
}

// OnChange sets a callback run after any visible change (status updates).
func (sc *SelectionCanvas) OnChange(callback func()) {
	sc.onChange = callback
}

// Tapped routes a click that no box widget consumed. Parts drawn without a
// widget (the badge) are still hit-tested by the session.
func (sc *SelectionCanvas) Tapped(ev *fyne.PointEvent) {
	sc.clickAt(geometry.NewPoint2D(float64(ev.Position.X), float64(ev.Position.Y)))
}

func (sc *SelectionCanvas) clickAt(p geometry.Point2D) {
	res, err := sc.session.Click(p)
	if err != nil {
		sc.log.WithError(err).Warn("click")
		return
	}
	if res.Created {
		sc.log.WithField("order", res.Box.Order()).Debug("created on surface click")
	}
}

// Cursor implements desktop.Cursorable using the session's shared cursor.
func (sc *SelectionCanvas) Cursor() desktop.Cursor {
	return desktopCursor(sc.session.Cursor().Current())
}

func desktopCursor(c selection.Cursor) desktop.Cursor {
	if c == selection.CursorPointer {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

func (sc *SelectionCanvas) view(order int) *boxView {
	return sc.views[order]
}

func (sc *SelectionCanvas) addView(b *selection.Box) {
	if _, ok := sc.views[b.Order()]; ok {
		return
	}
	sc.views[b.Order()] = newBoxView(sc, b)
	sc.order = append(sc.order, b.Order())
	sc.restack()
}

// removeView releases the view of a destroyed box.
func (sc *SelectionCanvas) removeView(b *selection.Box) {
	if _, ok := sc.views[b.Order()]; !ok {
		return
	}
	delete(sc.views, b.Order())
	for i, o := range sc.order {
		if o == b.Order() {
			sc.order = append(sc.order[:i], sc.order[i+1:]...)
			break
		}
	}
	sc.restack()
}

// restack rebuilds the content objects: background, then each box view's
// objects in box order and decoration stacking order.
func (sc *SelectionCanvas) restack() {
	objects := []fyne.CanvasObject{sc.background}
	for _, o := range sc.order {
		objects = append(objects, sc.views[o].objects()...)
	}
	sc.content.Objects = objects
	sc.content.Refresh()
}

func (sc *SelectionCanvas) redrawBox(data interface{}) {
	b := data.(*selection.Box)
	if v := sc.views[b.Order()]; v != nil {
		v.layout()
	}
	sc.changed()
}

func (sc *SelectionCanvas) changed() {
	if sc.onChange != nil {
		sc.onChange()
	}
}

// CreateRenderer implements fyne.Widget.
func (sc *SelectionCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &selectionCanvasRenderer{canvas: sc}
}

type selectionCanvasRenderer struct {
	canvas *SelectionCanvas
}

func (r *selectionCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.content.Resize(size)
	r.canvas.background.Resize(size)
}

func (r *selectionCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *selectionCanvasRenderer) Refresh() {
	for _, v := range r.canvas.views {
		v.layout()
	}
	r.canvas.content.Refresh()
}

func (r *selectionCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *selectionCanvasRenderer) Destroy() {}
