package selection

// Cursor is the pointer style shown over the canvas.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

func (c Cursor) String() string {
	if c == CursorPointer {
		return "pointer"
	}
	return "default"
}

// CursorService is the shared cursor owned by the canvas host. Boxes only
// request changes; the last request wins.
type CursorService interface {
	RequestPointer()
	RequestDefault()
}

// NopCursor ignores all requests.
type NopCursor struct{}

func (NopCursor) RequestPointer() {}
func (NopCursor) RequestDefault() {}
