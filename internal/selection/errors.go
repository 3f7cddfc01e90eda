package selection

import "errors"

var (
	// ErrInvalidDimension is returned when a box is constructed with a
	// negative or non-finite width or height.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrInvalidOrder is returned when the order label is less than 1.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrInvalidCoordinate is returned for non-finite positions.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrDegenerateResize reports that a handle move would have produced a
	// non-positive width or height. The handles moved, the rectangle kept
	// its previous size.
	ErrDegenerateResize = errors.New("degenerate resize")

	// ErrUnknownHandle is returned for a handle identity other than the two
	// bottom corners.
	ErrUnknownHandle = errors.New("unknown handle")

	// ErrDestroyed is returned by mutating calls on a closed box.
	ErrDestroyed = errors.New("selection destroyed")
)
