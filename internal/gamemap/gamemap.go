package gamemap

import (
	"errors"
	"fmt"
)

// ErrMalformed is returned by Validate when the cell rows disagree with the
// declared dimensions.
var ErrMalformed = errors.New("malformed grid")

// Grid is the fixed W×H cell array for one dungeon run.
type Grid struct {
	Width, Height int
	Cells         [][]Cell
}

// New creates a Grid with every cell walkable and no walls.
func New(width, height int) *Grid {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = MakeFloor(x, y)
		}
	}
	return &Grid{Width: width, Height: height, Cells: cells}
}

// Validate reports whether the row count and row lengths match Width×Height
// and no cell is both wall and walkable.
func (g *Grid) Validate() error {
	if g == nil {
		return fmt.Errorf("nil grid: %w", ErrMalformed)
	}
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("dimensions %dx%d: %w", g.Width, g.Height, ErrMalformed)
	}
	if len(g.Cells) != g.Height {
		return fmt.Errorf("have %d rows, want %d: %w", len(g.Cells), g.Height, ErrMalformed)
	}
	for y, row := range g.Cells {
		if len(row) != g.Width {
			return fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), g.Width, ErrMalformed)
		}
		for x, c := range row {
			if c.Wall == c.Walkable {
				return fmt.Errorf("cell (%d,%d) wall=%v walkable=%v: %w", x, y, c.Wall, c.Walkable, ErrMalformed)
			}
		}
	}
	return nil
}

// InBounds reports whether (x, y) is within the grid boundaries.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns a pointer to the cell at (x, y). Panics if out of bounds.
func (g *Grid) At(x, y int) *Cell {
	return &g.Cells[y][x]
}

// SetFloor makes (x, y) walkable. Out-of-bounds coordinates are ignored.
func (g *Grid) SetFloor(x, y int) {
	if g.has(x, y) {
		visited := g.Cells[y][x].Visited
		g.Cells[y][x] = MakeFloor(x, y)
		g.Cells[y][x].Visited = visited
	}
}

// SetWall makes (x, y) a wall. Out-of-bounds coordinates are ignored.
func (g *Grid) SetWall(x, y int) {
	if g.has(x, y) {
		g.Cells[y][x] = MakeWall(x, y)
	}
}

// IsWalkable returns true when (x, y) is in bounds and walkable.
func (g *Grid) IsWalkable(x, y int) bool {
	if !g.has(x, y) {
		return false
	}
	return g.Cells[y][x].Walkable
}

// MarkVisited flags (x, y) as stepped on.
func (g *Grid) MarkVisited(x, y int) {
	if g.has(x, y) {
		g.Cells[y][x].Visited = true
	}
}

// Adjacent returns the up, down, left and right neighbours of (x, y) that
// are in bounds and walkable, in that order.
func (g *Grid) Adjacent(x, y int) []Point {
	var out []Point
	for _, d := range Directions {
		nx, ny := x+d.X, y+d.Y
		if g.IsWalkable(nx, ny) {
			out = append(out, Point{X: nx, Y: ny})
		}
	}
	return out
}

// WalkableCells lists every walkable coordinate in row-major order.
func (g *Grid) WalkableCells() []Point {
	var out []Point
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.IsWalkable(x, y) {
				out = append(out, Point{X: x, Y: y})
			}
		}
	}
	return out
}

// Directions are the four orthogonal steps: up, down, left, right.
var Directions = [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// has is InBounds plus a guard against short rows.
func (g *Grid) has(x, y int) bool {
	if !g.InBounds(x, y) || y >= len(g.Cells) {
		return false
	}
	return x < len(g.Cells[y])
}
