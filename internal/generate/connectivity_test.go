package generate

import (
	"math/rand"
	"testing"

	"quiz-dungeon/internal/gamemap"
)

func TestPathExistsOpenGrid(t *testing.T) {
	g := gamemap.New(7, 8)
	if !PathExists(g, 3, 7, 0, 0) {
		t.Fatal("open grid should connect every pair")
	}
	if !PathExists(g, 2, 2, 2, 2) {
		t.Fatal("a walkable cell reaches itself")
	}
}

func TestPathExistsBlockedByWall(t *testing.T) {
	g := gamemap.New(5, 5)
	for x := 0; x < 5; x++ {
		g.SetWall(x, 2)
	}
	if PathExists(g, 0, 4, 0, 0) {
		t.Fatal("a full wall row should separate top from bottom")
	}
	g.SetFloor(4, 2)
	if !PathExists(g, 0, 4, 0, 0) {
		t.Fatal("opening one gap should reconnect")
	}
}

func TestPathExistsFailsClosed(t *testing.T) {
	cases := []struct {
		name           string
		mutate         func(g *gamemap.Grid)
		sx, sy, ex, ey int
	}{
		{"start out of bounds", nil, -1, 0, 2, 2},
		{"end out of bounds", nil, 0, 0, 5, 5},
		{"start is wall", func(g *gamemap.Grid) { g.SetWall(0, 0) }, 0, 0, 2, 2},
		{"end is wall", func(g *gamemap.Grid) { g.SetWall(2, 2) }, 0, 0, 2, 2},
		{"missing row", func(g *gamemap.Grid) { g.Cells = g.Cells[:4] }, 0, 0, 1, 1},
		{"short row", func(g *gamemap.Grid) { g.Cells[1] = g.Cells[1][:2] }, 0, 0, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := gamemap.New(5, 5)
			if tc.mutate != nil {
				tc.mutate(g)
			}
			if PathExists(g, tc.sx, tc.sy, tc.ex, tc.ey) {
				t.Errorf("PathExists(%d,%d,%d,%d) = true; want false", tc.sx, tc.sy, tc.ex, tc.ey)
			}
		})
	}
}

func TestPathExistsNilGrid(t *testing.T) {
	if PathExists(nil, 0, 0, 0, 0) {
		t.Fatal("nil grid must report unreachable")
	}
}

func TestEnsureConnectivityCarvesEnoughTargets(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := solidGrid(7, 8)
		start := StartCell(g)
		g.SetFloor(start.X, start.Y)
		targets := []gamemap.Point{{0, 0}, {6, 0}, {3, 3}}
		for _, p := range targets {
			g.SetFloor(p.X, p.Y)
		}

		carves, err := EnsureConnectivity(g, start, targets, 2, rng)
		if err != nil {
			t.Fatalf("seed=%d: %v", seed, err)
		}
		if carves < 1 {
			t.Errorf("seed=%d: expected at least one carve on a sealed grid", seed)
		}
		reached := 0
		for _, p := range targets {
			if PathExists(g, start.X, start.Y, p.X, p.Y) {
				reached++
			}
		}
		if reached < 2 {
			t.Errorf("seed=%d: only %d targets reachable, want >= 2", seed, reached)
		}
	}
}

func TestEnsureConnectivityNoopWhenAlreadyReachable(t *testing.T) {
	g := gamemap.New(7, 8)
	before := len(g.WalkableCells())
	carves, err := EnsureConnectivity(g, StartCell(g), []gamemap.Point{{1, 1}, {5, 2}}, 2, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if carves != 0 {
		t.Errorf("carves = %d; want 0", carves)
	}
	if len(g.WalkableCells()) != before {
		t.Error("grid changed although all targets were reachable")
	}
}

func TestEnsureConnectivityClampsToTargetCount(t *testing.T) {
	g := solidGrid(5, 5)
	g.SetFloor(2, 4)
	g.SetFloor(2, 0)
	_, err := EnsureConnectivity(g, gamemap.Point{2, 4}, []gamemap.Point{{2, 0}}, 2, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatal(err)
	}
	if !PathExists(g, 2, 4, 2, 0) {
		t.Fatal("the single boss target should be reachable")
	}
}

func TestEnsureConnectivityRejectsMalformedGrid(t *testing.T) {
	g := gamemap.New(5, 5)
	g.Cells = g.Cells[:2]
	if _, err := EnsureConnectivity(g, gamemap.Point{2, 4}, []gamemap.Point{{0, 0}}, 1, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected an error for a malformed grid")
	}
}

// TestGeneratedWavesMeetReachability mirrors the end-to-end guarantee: after
// walls, placement and repair, at least minReachable nodes are reachable.
func TestGeneratedWavesMeetReachability(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		for intensity := 1; intensity <= BossIntensity; intensity++ {
			rng := rand.New(rand.NewSource(seed))
			g, start := Generate(&Config{Width: 7, Height: 8, WallDensity: 0.35, Rand: rng})
			spawns := PlaceEncounters(g, intensity, 3, start, rng)
			targets := make([]gamemap.Point, len(spawns))
			for i, s := range spawns {
				targets[i] = gamemap.Point{X: s.X, Y: s.Y}
			}
			minReach := 2
			if intensity == BossIntensity {
				minReach = 1
			}
			if _, err := EnsureConnectivity(g, start, targets, minReach, rng); err != nil {
				t.Fatalf("seed=%d intensity=%d: %v", seed, intensity, err)
			}
			reach := Reachable(g, start)
			n := 0
			for _, p := range targets {
				if reach.Has(p) {
					n++
				}
			}
			if n < minReach {
				t.Errorf("seed=%d intensity=%d: %d reachable, want >= %d", seed, intensity, n, minReach)
			}
		}
	}
}
