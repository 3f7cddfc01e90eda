package render

import (
	"fmt"
	"io"

	"selection-canvas/internal/selection"
	"selection-canvas/pkg/colorutil"
	"selection-canvas/pkg/geometry"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
)

// PNG renders scenes as anti-aliased PNG images.
type PNG struct{}

// Render implements Renderer.
func (PNG) Render(w io.Writer, scene Scene) error {
	dc, err := rasterize(scene)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func rasterize(scene Scene) (*gg.Context, error) {
	if err := scene.validate(); err != nil {
		return nil, err
	}
	dc := gg.NewContext(scene.Width, scene.Height)
	dc.SetColor(colorutil.Background)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	p := &ggPainter{dc: dc}
	for _, b := range scene.Boxes {
		paintBox(p, b)
	}
	return dc, nil
}

type ggPainter struct {
	dc *gg.Context
}

func (p *ggPainter) rect(r geometry.Rect, st selection.Style) {
	p.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	p.dc.SetColor(colorutil.DarkOrange)
	p.dc.SetLineWidth(st.RectStrokeWidth)
	p.dc.Stroke()
}

func (p *ggPainter) badge(c geometry.Point2D, label string, st selection.Style) {
	grad := gg.NewLinearGradient(c.X-50, c.Y-50, c.X+50, c.Y+50)
	grad.AddColorStop(0, colorutil.Red)
	grad.AddColorStop(1, colorutil.Yellow)

	p.dc.DrawCircle(c.X, c.Y, st.CircleRadius)
	p.dc.SetFillStyle(grad)
	p.dc.FillPreserve()
	p.dc.SetColor(colorutil.White)
	p.dc.SetLineWidth(st.CircleStrokeWidth)
	p.dc.Stroke()

	p.dc.SetColor(colorutil.White)
	p.dc.DrawStringAnchored(label, c.X, c.Y, 0.5, 0.35)
}

func (p *ggPainter) closeControl(c geometry.Point2D, st selection.Style) {
	p.dc.DrawCircle(c.X, c.Y, st.CircleRadius)
	p.dc.SetColor(colorutil.Orange)
	p.dc.FillPreserve()
	p.dc.SetColor(colorutil.White)
	p.dc.SetLineWidth(st.CircleStrokeWidth)
	p.dc.Stroke()

	half := st.CircleRadius / 2
	p.dc.DrawLine(c.X-half, c.Y-half, c.X+half, c.Y+half)
	p.dc.DrawLine(c.X+half, c.Y-half, c.X-half, c.Y+half)
	p.dc.Stroke()
}

func (p *ggPainter) handle(c geometry.Point2D, stroke float64, st selection.Style) {
	p.dc.DrawCircle(c.X, c.Y, st.HandleRadius)
	p.dc.SetColor(colorutil.White)
	p.dc.FillPreserve()
	p.dc.SetColor(colorutil.Grey)
	p.dc.SetLineWidth(stroke)
	p.dc.Stroke()
}
