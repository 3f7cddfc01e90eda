package render

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"selection-canvas/internal/selection"
	"selection-canvas/pkg/colorutil"
	"selection-canvas/pkg/geometry"

	svg "github.com/ajstarks/svgo"
)

const badgeGradientID = "badgeFill"

// SVG renders scenes as SVG documents. Coordinates are rounded to whole
// pixels.
type SVG struct{}

// Render implements Renderer.
func (SVG) Render(w io.Writer, scene Scene) error {
	if err := scene.validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)
	canvas.Start(scene.Width, scene.Height)
	canvas.Def()
	canvas.LinearGradient(badgeGradientID, 0, 0, 100, 100, []svg.Offcolor{
		{Offset: 0, Color: colorutil.Hex(colorutil.Red), Opacity: 1},
		{Offset: 100, Color: colorutil.Hex(colorutil.Yellow), Opacity: 1},
	})
	canvas.DefEnd()
	canvas.Rect(0, 0, scene.Width, scene.Height, "fill:"+colorutil.Hex(colorutil.Background))

	p := &svgPainter{canvas: canvas}
	for _, b := range scene.Boxes {
		if b.Destroyed() {
			continue
		}
		canvas.Gid(fmt.Sprintf("selection-%d", b.Order()))
		paintBox(p, b)
		canvas.Gend()
	}
	canvas.End()

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

type svgPainter struct {
	canvas *svg.SVG
}

func px(v float64) int { return int(math.Round(v)) }

func (p *svgPainter) rect(r geometry.Rect, st selection.Style) {
	p.canvas.Rect(px(r.X), px(r.Y), px(r.Width), px(r.Height),
		fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", colorutil.Hex(colorutil.DarkOrange), st.RectStrokeWidth))
}

func (p *svgPainter) badge(c geometry.Point2D, label string, st selection.Style) {
	p.canvas.Circle(px(c.X), px(c.Y), px(st.CircleRadius),
		fmt.Sprintf("fill:url(#%s);stroke:white;stroke-width:%g", badgeGradientID, st.CircleStrokeWidth))
	p.canvas.Text(px(c.X), px(c.Y+st.BadgeFontSize/3), label,
		fmt.Sprintf("text-anchor:middle;font-size:%gpx;fill:white", st.BadgeFontSize))
}

func (p *svgPainter) closeControl(c geometry.Point2D, st selection.Style) {
	p.canvas.Circle(px(c.X), px(c.Y), px(st.CircleRadius),
		fmt.Sprintf("fill:%s;stroke:white;stroke-width:%g", colorutil.Hex(colorutil.Orange), st.CircleStrokeWidth))
	half := st.CircleRadius / 2
	line := fmt.Sprintf("stroke:white;stroke-width:%g", st.CircleStrokeWidth)
	p.canvas.Line(px(c.X-half), px(c.Y-half), px(c.X+half), px(c.Y+half), line)
	p.canvas.Line(px(c.X+half), px(c.Y-half), px(c.X-half), px(c.Y+half), line)
}

func (p *svgPainter) handle(c geometry.Point2D, stroke float64, st selection.Style) {
	p.canvas.Circle(px(c.X), px(c.Y), px(st.HandleRadius),
		fmt.Sprintf("fill:white;stroke:%s;stroke-width:%g", colorutil.Hex(colorutil.Grey), stroke))
}
