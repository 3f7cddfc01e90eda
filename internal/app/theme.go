package app

import (
	"image/color"

	"selection-canvas/pkg/colorutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// SelectionTheme provides the application theme.
type SelectionTheme struct{}

var _ fyne.Theme = (*SelectionTheme)(nil)

func (t *SelectionTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return colorutil.DarkOrange
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0xFF, G: 0x8C, B: 0x00, A: 0x60}
	case theme.ColorNameFocus:
		return color.NRGBA{R: 0xFF, G: 0xA5, B: 0x00, A: 0x80}
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *SelectionTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *SelectionTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *SelectionTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
