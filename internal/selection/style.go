package selection

// Default box size used when a dimension is not supplied.
const (
	DefaultWidth  = 50.0
	DefaultHeight = 50.0
)

// Style holds the stroke widths and radii used to draw a box.
type Style struct {
	RectStrokeWidth   float64
	CircleRadius      float64 // badge and close control
	CircleStrokeWidth float64
	HandleRadius      float64
	HandleStrokeWidth float64
	HandleHoverStroke float64
	BadgeFontSize     float64
}

// DefaultStyle returns the standard box style.
func DefaultStyle() Style {
	return Style{
		RectStrokeWidth:   4,
		CircleRadius:      10,
		CircleStrokeWidth: 2,
		HandleRadius:      5,
		HandleStrokeWidth: 1,
		HandleHoverStroke: 4,
		BadgeFontSize:     10,
	}
}
