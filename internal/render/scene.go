// Package render draws snapshots of the selection canvas without a window:
// PNG through gg and SVG through svgo. Both renderers use the same layout
// as the interactive view.
package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"selection-canvas/internal/selection"
	"selection-canvas/pkg/geometry"
)

// ErrEmptyCanvas is returned for a scene with a non-positive size.
var ErrEmptyCanvas = errors.New("canvas size must be positive")

// Scene is a snapshot of the canvas.
type Scene struct {
	Width  int
	Height int
	Boxes  []*selection.Box // bottom first
}

// FitScene returns a scene large enough to hold every box plus margin.
func FitScene(boxes []*selection.Box, minWidth, minHeight int, margin float64) Scene {
	w, h := float64(minWidth), float64(minHeight)
	for _, b := range boxes {
		br := b.Bounds().Normalize().BottomRight()
		if br.X+margin > w {
			w = br.X + margin
		}
		if br.Y+margin > h {
			h = br.Y + margin
		}
	}
	return Scene{Width: int(w + 0.5), Height: int(h + 0.5), Boxes: boxes}
}

// Renderer writes a scene in one output format.
type Renderer interface {
	Render(w io.Writer, scene Scene) error
}

// Format names an output format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ForFormat returns the renderer for a format.
func ForFormat(f Format) (Renderer, error) {
	switch f {
	case FormatPNG:
		return PNG{}, nil
	case FormatSVG:
		return SVG{}, nil
	}
	return nil, fmt.Errorf("unknown render format %q", f)
}

// painter draws the primitives of a single box.
type painter interface {
	rect(r geometry.Rect, st selection.Style)
	badge(center geometry.Point2D, label string, st selection.Style)
	closeControl(center geometry.Point2D, st selection.Style)
	handle(center geometry.Point2D, stroke float64, st selection.Style)
}

// paintBox draws a live box's parts in its stacking order.
func paintBox(p painter, b *selection.Box) {
	if b.Destroyed() {
		return
	}
	o := b.Origin()
	g := b.Geometry()
	st := b.Style()
	for _, part := range b.Stack() {
		switch part {
		case selection.PartRect:
			if g.Rect.Width > 0 && g.Rect.Height > 0 {
				p.rect(g.Rect.Translate(o), st)
			}
		case selection.PartBadge:
			p.badge(o.Add(geometry.NewPoint2D(g.BadgeX, 0)), strconv.Itoa(b.Order()), st)
		case selection.PartClose:
			p.closeControl(o.Add(geometry.NewPoint2D(g.CloseX, 0)), st)
		case selection.PartBottomLeft:
			p.handle(o.Add(g.Left), b.HandleStroke(selection.HandleBottomLeft), st)
		case selection.PartBottomRight:
			p.handle(o.Add(g.Right), b.HandleStroke(selection.HandleBottomRight), st)
		}
	}
}

func (s Scene) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyCanvas, s.Width, s.Height)
	}
	return nil
}
