package panels

import (
	"testing"

	"selection-canvas/internal/app"
	"selection-canvas/internal/selection"
	"selection-canvas/pkg/geometry"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertySheet_FollowsActiveBox(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	s := app.NewSession(app.DefaultPolicy())
	ps := NewPropertySheet(s)
	require.NotNil(t, ps.Container())
	assert.Equal(t, none, ps.orderLabel.Text)

	box, err := s.AddBox(150, 150)
	require.NoError(t, err)
	assert.Equal(t, none, ps.orderLabel.Text)

	s.SetActive(box)
	assert.Equal(t, "1", ps.orderLabel.Text)
	assert.Equal(t, "(150, 150)", ps.originLabel.Text)
	assert.Equal(t, "50 x 50", ps.sizeLabel.Text)

	require.NoError(t, s.MoveHandle(1, selection.HandleBottomRight, geometry.NewPoint2D(80, 80)))
	assert.Equal(t, "80 x 80", ps.sizeLabel.Text)
	assert.Equal(t, "(150, 150) .. (230, 230)", ps.boundsLabel.Text)
	assert.Equal(t, "(0, 80)", ps.leftLabel.Text)
	assert.Equal(t, "(80, 80)", ps.rightLabel.Text)
	assert.Equal(t, "80", ps.closeLabel.Text)

	require.NoError(t, s.TranslateBox(1, 10, 0))
	assert.Equal(t, "(160, 150)", ps.originLabel.Text)

	require.NoError(t, s.CloseBox(1))
	assert.Equal(t, none, ps.orderLabel.Text)
	assert.Equal(t, none, ps.rightLabel.Text)
}

func TestPropertySheet_DegenerateDragShowsHandles(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	s := app.NewSession(app.DefaultPolicy())
	box, err := s.AddBox(100, 100)
	require.NoError(t, err)
	s.SetActive(box)
	ps := NewPropertySheet(s)

	err = s.MoveHandle(1, selection.HandleBottomRight, geometry.NewPoint2D(-20, 50))
	assert.ErrorIs(t, err, selection.ErrDegenerateResize)
	assert.Equal(t, "50 x 50", ps.sizeLabel.Text)
	assert.Equal(t, "(-20, 50)", ps.rightLabel.Text)
	assert.Equal(t, "-20", ps.closeLabel.Text)
}
