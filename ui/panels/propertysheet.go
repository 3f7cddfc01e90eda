// Package panels provides UI panels for the application.
package panels

import (
	"fmt"
	"strconv"

	"selection-canvas/internal/app"
	"selection-canvas/pkg/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const none = "-"

// PropertySheet shows the geometry of the active selection. It is
// read-only; boxes are edited on the canvas.
type PropertySheet struct {
	session *app.Session
	content *fyne.Container

	orderLabel  *widget.Label
	originLabel *widget.Label
	sizeLabel   *widget.Label
	boundsLabel *widget.Label

	leftLabel  *widget.Label
	rightLabel *widget.Label
	badgeLabel *widget.Label
	closeLabel *widget.Label
}

// NewPropertySheet creates a property sheet that follows the session's
// active box.
func NewPropertySheet(session *app.Session) *PropertySheet {
	ps := &PropertySheet{session: session}

	ps.buildUI()
	ps.refresh()

	refresh := func(interface{}) { ps.refresh() }
	session.On(app.EventActiveChanged, refresh)
	session.On(app.EventBoxResized, refresh)
	session.On(app.EventBoxMoved, refresh)
	session.On(app.EventBoxDestroyed, refresh)

	return ps
}

// Container returns the panel for embedding.
func (ps *PropertySheet) Container() fyne.CanvasObject {
	return ps.content
}

func (ps *PropertySheet) buildUI() {
	newValue := func() *widget.Label {
		return widget.NewLabel(none)
	}
	addFrame := func(title string, rows ...fyne.CanvasObject) *widget.Card {
		return widget.NewCard(title, "", container.New(layout.NewFormLayout(), rows...))
	}
	row := func(label string, value *widget.Label) []fyne.CanvasObject {
		lbl := widget.NewLabel(label)
		lbl.Alignment = fyne.TextAlignTrailing
		return []fyne.CanvasObject{lbl, value}
	}

	ps.orderLabel = newValue()
	ps.originLabel = newValue()
	ps.sizeLabel = newValue()
	ps.boundsLabel = newValue()
	ps.leftLabel = newValue()
	ps.rightLabel = newValue()
	ps.badgeLabel = newValue()
	ps.closeLabel = newValue()

	var selRows, partRows []fyne.CanvasObject
	selRows = append(selRows, row("Order:", ps.orderLabel)...)
	selRows = append(selRows, row("Origin:", ps.originLabel)...)
	selRows = append(selRows, row("Size:", ps.sizeLabel)...)
	selRows = append(selRows, row("Bounds:", ps.boundsLabel)...)

	partRows = append(partRows, row("Bottom left:", ps.leftLabel)...)
	partRows = append(partRows, row("Bottom right:", ps.rightLabel)...)
	partRows = append(partRows, row("Badge x:", ps.badgeLabel)...)
	partRows = append(partRows, row("Close x:", ps.closeLabel)...)

	ps.content = container.NewVBox(
		addFrame("Selection", selRows...),
		addFrame("Handles", partRows...),
	)
}

// refresh reloads every value from the active box.
func (ps *PropertySheet) refresh() {
	box := ps.session.Active()
	if box == nil || box.Destroyed() {
		for _, l := range []*widget.Label{
			ps.orderLabel, ps.originLabel, ps.sizeLabel, ps.boundsLabel,
			ps.leftLabel, ps.rightLabel, ps.badgeLabel, ps.closeLabel,
		} {
			l.SetText(none)
		}
		return
	}

	g := box.Geometry()
	b := box.Bounds()
	ps.orderLabel.SetText(strconv.Itoa(box.Order()))
	ps.originLabel.SetText(formatPoint(box.Origin()))
	ps.sizeLabel.SetText(fmt.Sprintf("%g x %g", g.Rect.Width, g.Rect.Height))
	ps.boundsLabel.SetText(fmt.Sprintf("%s .. %s", formatPoint(b.TopLeft()), formatPoint(b.BottomRight())))
	ps.leftLabel.SetText(formatPoint(g.Left))
	ps.rightLabel.SetText(formatPoint(g.Right))
	ps.badgeLabel.SetText(strconv.FormatFloat(g.BadgeX, 'g', -1, 64))
	ps.closeLabel.SetText(strconv.FormatFloat(g.CloseX, 'g', -1, 64))
}

func formatPoint(p geometry.Point2D) string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
