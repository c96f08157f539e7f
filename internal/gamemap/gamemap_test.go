package gamemap

import (
	"errors"
	"testing"
)

func TestInBounds(t *testing.T) {
	g := New(7, 8)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{6, 7, true},
		{-1, 0, false},
		{7, 0, false},
		{0, 8, false},
	}
	for _, c := range cases {
		got := g.InBounds(c.x, c.y)
		if got != c.want {
			t.Errorf("InBounds(%d,%d)=%v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestNewIsAllWalkable(t *testing.T) {
	g := New(5, 4)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y)
			if !c.Walkable || c.Wall {
				t.Fatalf("cell (%d,%d) = %+v; want walkable floor", x, y, *c)
			}
			if c.X != x || c.Y != y {
				t.Fatalf("cell (%d,%d) carries coords (%d,%d)", x, y, c.X, c.Y)
			}
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("fresh grid should validate: %v", err)
	}
}

func TestSetWallAndFloor(t *testing.T) {
	g := New(5, 5)
	g.SetWall(2, 2)
	if g.IsWalkable(2, 2) {
		t.Error("wall should not be walkable")
	}
	if !g.At(2, 2).Wall {
		t.Error("wall flag not set")
	}
	g.SetFloor(2, 2)
	if !g.IsWalkable(2, 2) || g.At(2, 2).Wall {
		t.Error("floor should be walkable and not a wall")
	}
	// out of bounds is a no-op
	g.SetWall(-1, 0)
	g.SetFloor(9, 9)
	if g.IsWalkable(-1, 0) {
		t.Error("out-of-bounds should not be walkable")
	}
}

func TestSetFloorKeepsVisited(t *testing.T) {
	g := New(3, 3)
	g.MarkVisited(1, 1)
	g.SetFloor(1, 1)
	if !g.At(1, 1).Visited {
		t.Error("SetFloor should preserve the visited trail")
	}
}

func TestAdjacentExcludesWallsAndEdges(t *testing.T) {
	g := New(3, 3)
	g.SetWall(1, 0) // above centre

	got := g.Adjacent(1, 1)
	want := []Point{{1, 2}, {0, 1}, {2, 1}}
	if len(got) != len(want) {
		t.Fatalf("Adjacent(1,1) = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Adjacent(1,1)[%d] = %v; want %v", i, got[i], want[i])
		}
	}

	corner := g.Adjacent(0, 0)
	if len(corner) != 1 || corner[0] != (Point{0, 1}) {
		t.Errorf("Adjacent(0,0) = %v; want [(0,1)]", corner)
	}
}

func TestValidateDetectsMalformedGrids(t *testing.T) {
	cases := []struct {
		name  string
		build func() *Grid
	}{
		{"nil grid", func() *Grid { return nil }},
		{"missing row", func() *Grid {
			g := New(4, 4)
			g.Cells = g.Cells[:3]
			return g
		}},
		{"short row", func() *Grid {
			g := New(4, 4)
			g.Cells[2] = g.Cells[2][:1]
			return g
		}},
		{"wall and walkable", func() *Grid {
			g := New(4, 4)
			g.At(1, 1).Wall = true
			return g
		}},
		{"zero size", func() *Grid { return New(0, 0) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.build().Validate()
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Validate() = %v; want ErrMalformed", err)
			}
		})
	}
}

func TestIsWalkableOnShortRowDoesNotPanic(t *testing.T) {
	g := New(4, 4)
	g.Cells[3] = g.Cells[3][:1]
	if g.IsWalkable(3, 3) {
		t.Error("missing cell should not be walkable")
	}
}

func TestWalkableCells(t *testing.T) {
	g := New(2, 2)
	g.SetWall(0, 0)
	cells := g.WalkableCells()
	if len(cells) != 3 {
		t.Fatalf("expected 3 walkable cells, got %d", len(cells))
	}
	if cells[0] != (Point{1, 0}) {
		t.Errorf("expected row-major order starting at (1,0), got %v", cells[0])
	}
}
