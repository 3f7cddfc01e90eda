// Package cli provides the boxrender command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"selection-canvas/internal/app"
	"selection-canvas/internal/logging"
	"selection-canvas/internal/render"
	"selection-canvas/internal/selection"
	"selection-canvas/pkg/geometry"

	"github.com/spf13/cobra"
)

const defaultMargin = 20

type options struct {
	boxes    []string
	drags    []string
	pngPath  string
	svgPath  string
	width    int
	height   int
	logLevel string
}

// NewRootCmd creates the boxrender command.
func NewRootCmd(version, commit, buildDate string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "boxrender",
		Short: "Replay selection box edits and render the result",
		Long: `Builds selection boxes from --box flags, applies --drag handle moves in
order and prints the resulting geometry. --png and --svg write snapshots.`,
		Example: `  boxrender --box 150,150 --drag 1:bottomRight:80,80 --png out.png`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logging.Setup(opts.logLevel, logging.FormatText, cmd.ErrOrStderr()); err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), opts)
		},
		SilenceUsage: true,
	}

	flags := rootCmd.Flags()
	flags.StringArrayVar(&opts.boxes, "box", nil, "add a box at x,y or x,y,width,height (repeatable)")
	flags.StringArrayVar(&opts.drags, "drag", nil, "move a handle: order:handle:x,y with handle bottomLeft or bottomRight (repeatable)")
	flags.StringVar(&opts.pngPath, "png", "", "write a PNG snapshot to this file")
	flags.StringVar(&opts.svgPath, "svg", "", "write an SVG snapshot to this file")
	flags.IntVar(&opts.width, "width", 0, "minimum snapshot width")
	flags.IntVar(&opts.height, "height", 0, "minimum snapshot height")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "boxrender %s\n", version)
			fmt.Fprintf(out, "commit: %s\n", commit)
			fmt.Fprintf(out, "built: %s\n", buildDate)
		},
	}
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

func run(out io.Writer, opts *options) error {
	session := app.NewSession(app.DefaultPolicy())
	for _, arg := range opts.boxes {
		x, y, w, h, err := parseBox(arg)
		if err != nil {
			return err
		}
		if _, err := session.AddBoxSized(x, y, w, h); err != nil {
			return err
		}
	}

	for _, arg := range opts.drags {
		order, id, pos, err := parseDrag(arg)
		if err != nil {
			return err
		}
		if err := session.MoveHandle(order, id, pos); err != nil {
			fmt.Fprintf(out, "drag %s: %v\n", arg, err)
		}
	}

	for _, b := range session.Boxes() {
		fmt.Fprintln(out, describe(b))
	}

	boxes := session.Boxes()
	scene := render.FitScene(boxes, opts.width, opts.height, defaultMargin)
	if opts.pngPath != "" {
		if err := writeSnapshot(opts.pngPath, render.PNG{}, scene); err != nil {
			return err
		}
	}
	if opts.svgPath != "" {
		if err := writeSnapshot(opts.svgPath, render.SVG{}, scene); err != nil {
			return err
		}
	}
	return nil
}

func writeSnapshot(path string, r render.Renderer, scene render.Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.Render(f, scene); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}

// describe formats one box's geometry on a single line.
func describe(b *selection.Box) string {
	g := b.Geometry()
	o := b.Origin()
	return fmt.Sprintf("#%d origin=(%g,%g) rect=(%g,%g %gx%g) badge=%g close=%g left=(%g,%g) right=(%g,%g)",
		b.Order(), o.X, o.Y,
		g.Rect.X, g.Rect.Y, g.Rect.Width, g.Rect.Height,
		g.BadgeX, g.CloseX,
		g.Left.X, g.Left.Y, g.Right.X, g.Right.Y)
}

// parseBox parses "x,y" or "x,y,width,height". Omitted sizes are 0 and
// take the default.
func parseBox(s string) (x, y, w, h float64, err error) {
	vals, err := parseFloats(s)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("box %q: %w", s, err)
	}
	switch len(vals) {
	case 2:
		return vals[0], vals[1], 0, 0, nil
	case 4:
		return vals[0], vals[1], vals[2], vals[3], nil
	}
	return 0, 0, 0, 0, fmt.Errorf("box %q: want x,y or x,y,width,height", s)
}

// parseDrag parses "order:handle:x,y".
func parseDrag(s string) (int, selection.HandleID, geometry.Point2D, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, 0, geometry.Point2D{}, fmt.Errorf("drag %q: want order:handle:x,y", s)
	}
	order, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, geometry.Point2D{}, fmt.Errorf("drag %q: bad order: %w", s, err)
	}
	id, err := selection.ParseHandle(parts[1])
	if err != nil {
		return 0, 0, geometry.Point2D{}, fmt.Errorf("drag %q: %w", s, err)
	}
	vals, err := parseFloats(parts[2])
	if err != nil || len(vals) != 2 {
		return 0, 0, geometry.Point2D{}, fmt.Errorf("drag %q: want x,y position", s)
	}
	return order, id, geometry.NewPoint2D(vals[0], vals[1]), nil
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
