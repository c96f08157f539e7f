package render

import "quiz-dungeon/internal/dungeon"

// Camera translates between grid coordinates and screen coordinates.
// Grid X is multiplied by 2 because emoji occupy 2 terminal columns.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera for a view of viewW columns by viewH rows.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{ViewWidth: viewW, ViewHeight: viewH}
}

// Fit centres a gridW x gridH grid in the view. Grids larger than the view
// are pinned to the top-left corner.
func (c *Camera) Fit(gridW, gridH int) {
	c.OffsetX = -max((c.ViewWidth-gridW*2)/4, 0)
	c.OffsetY = -max((c.ViewHeight-gridH)/2, 0)
}

// WorldToScreen converts grid (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * 2
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx+1 < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to grid coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) (int, int) {
	return sx/2 + c.OffsetX, sy + c.OffsetY
}

// Viewport describes the camera in the form the dungeon's tap input uses.
func (c *Camera) Viewport() dungeon.Viewport {
	return dungeon.Viewport{
		CellWidth:  2,
		CellHeight: 1,
		OffsetX:    -c.OffsetX * 2,
		OffsetY:    -c.OffsetY,
	}
}
