package generate

import (
	"math/rand"
	"testing"

	"quiz-dungeon/internal/gamemap"
)

func solidGrid(w, h int) *gamemap.Grid {
	g := gamemap.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.SetWall(x, y)
		}
	}
	return g
}

func TestCarvePathConnectsEndpoints(t *testing.T) {
	cases := []struct {
		name string
		a, b gamemap.Point
	}{
		{"horizontal", gamemap.Point{0, 3}, gamemap.Point{9, 3}},
		{"vertical", gamemap.Point{4, 0}, gamemap.Point{4, 9}},
		{"diagonal", gamemap.Point{0, 0}, gamemap.Point{9, 9}},
		{"shallow slope", gamemap.Point{0, 9}, gamemap.Point{9, 6}},
		{"same cell", gamemap.Point{5, 5}, gamemap.Point{5, 5}},
	}
	for seed := int64(0); seed < 5; seed++ {
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				g := solidGrid(10, 10)
				CarvePath(g, tc.a, tc.b, rand.New(rand.NewSource(seed)))
				if !PathExists(g, tc.a.X, tc.a.Y, tc.b.X, tc.b.Y) {
					t.Errorf("seed=%d: no path from %v to %v after carving", seed, tc.a, tc.b)
				}
			})
		}
	}
}

func TestCarvePathOnlyAddsWalkableCells(t *testing.T) {
	g := gamemap.New(8, 8)
	rng := rand.New(rand.NewSource(3))
	PlaceWalls(g, 0.4, rng)
	before := len(g.WalkableCells())
	CarvePath(g, gamemap.Point{0, 7}, gamemap.Point{7, 0}, rng)
	after := len(g.WalkableCells())
	if after < before {
		t.Fatalf("carving removed walkable cells: %d -> %d", before, after)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("grid invalid after carve: %v", err)
	}
}

func TestPlaceWallsSparesBottomRowAndKeep(t *testing.T) {
	g := gamemap.New(7, 8)
	keep := gamemap.Point{X: 3, Y: 2}
	PlaceWalls(g, 1.0, rand.New(rand.NewSource(1)), keep)
	for x := 0; x < g.Width; x++ {
		if !g.IsWalkable(x, g.Height-1) {
			t.Errorf("bottom row cell (%d,%d) was walled", x, g.Height-1)
		}
	}
	if !g.IsWalkable(keep.X, keep.Y) {
		t.Error("kept cell was walled")
	}
	if g.IsWalkable(0, 0) {
		t.Error("density 1.0 should wall every other eligible cell")
	}
}
