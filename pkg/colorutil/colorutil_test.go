package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	assert.Equal(t, Red, Lerp(Red, Yellow, 0))
	assert.Equal(t, Yellow, Lerp(Red, Yellow, 1))
	assert.Equal(t, color.RGBA{R: 255, G: 128, B: 0, A: 255}, Lerp(Red, Yellow, 0.5))
	assert.Equal(t, Yellow, Lerp(Red, Yellow, 3))
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ff8c00", Hex(DarkOrange))
	assert.Equal(t, "#000000", Hex(Black))
}
