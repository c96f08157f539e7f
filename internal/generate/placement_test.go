package generate

import (
	"math/rand"
	"testing"

	"quiz-dungeon/internal/gamemap"
)

func TestPlaceEncountersDifficultyCycle(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g, start := Generate(&Config{Width: 7, Height: 8, WallDensity: 0.3, Rand: rng})
		for _, intensity := range []int{1, 2} {
			spawns := PlaceEncounters(g, intensity, 3, start, rng)
			if len(spawns) != 3 {
				t.Fatalf("seed=%d: got %d spawns, want 3", seed, len(spawns))
			}
			want := []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
			for i, s := range spawns {
				if s.Difficulty != want[i] {
					t.Errorf("seed=%d spawn %d: difficulty %s, want %s", seed, i, s.Difficulty, want[i])
				}
				if s.Boss {
					t.Errorf("seed=%d spawn %d: non-boss wave produced a boss", seed, i)
				}
			}
		}
	}
}

func TestPlaceEncountersCycleWraps(t *testing.T) {
	g := gamemap.New(7, 8)
	spawns := PlaceEncounters(g, 1, 5, StartCell(g), rand.New(rand.NewSource(2)))
	want := []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEasy, DifficultyMedium}
	for i, s := range spawns {
		if s.Difficulty != want[i] {
			t.Errorf("spawn %d: %s, want %s", i, s.Difficulty, want[i])
		}
	}
}

func TestPlaceEncountersBossWave(t *testing.T) {
	g := gamemap.New(7, 8)
	spawns := PlaceEncounters(g, BossIntensity, 3, StartCell(g), rand.New(rand.NewSource(7)))
	if len(spawns) != 1 {
		t.Fatalf("boss wave has %d nodes, want 1", len(spawns))
	}
	if !spawns[0].Boss || spawns[0].Difficulty != DifficultyBoss {
		t.Errorf("boss spawn = %+v", spawns[0])
	}
}

func TestPlaceEncountersExclusions(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g, _ := Generate(&Config{Width: 7, Height: 8, WallDensity: 0.3, Rand: rng})
		player := gamemap.Point{X: 3, Y: 2}
		spawns := PlaceEncounters(g, 1, 3, player, rng)
		seen := map[gamemap.Point]bool{}
		for _, s := range spawns {
			p := gamemap.Point{X: s.X, Y: s.Y}
			if p == player {
				t.Errorf("seed=%d: encounter on player cell", seed)
			}
			if s.Y == g.Height-1 {
				t.Errorf("seed=%d: encounter on start row", seed)
			}
			if !g.IsWalkable(s.X, s.Y) {
				t.Errorf("seed=%d: encounter on wall at %v", seed, p)
			}
			if seen[p] {
				t.Errorf("seed=%d: duplicate encounter cell %v", seed, p)
			}
			seen[p] = true
		}
	}
}

func TestPlaceEncountersForceCarvesOnSealedGrid(t *testing.T) {
	g := solidGrid(4, 3)
	for x := 0; x < 4; x++ {
		g.SetFloor(x, 2)
	}
	spawns := PlaceEncounters(g, 1, 3, gamemap.Point{X: 2, Y: 2}, rand.New(rand.NewSource(5)))
	if len(spawns) != 3 {
		t.Fatalf("got %d spawns, want 3 via forced carving", len(spawns))
	}
	for _, s := range spawns {
		if !g.IsWalkable(s.X, s.Y) {
			t.Errorf("forced cell (%d,%d) left as wall", s.X, s.Y)
		}
	}
}

func TestPlaceEncountersSingleRowGivesUp(t *testing.T) {
	g := gamemap.New(5, 1)
	spawns := PlaceEncounters(g, 1, 3, gamemap.Point{X: 2, Y: 0}, rand.New(rand.NewSource(1)))
	if len(spawns) != 0 {
		t.Fatalf("a grid with only the start row has no valid cells, got %d", len(spawns))
	}
}

func TestSpecialTileCount(t *testing.T) {
	cases := map[int]int{1: 5, 2: 6, 3: 7, 4: 8, 6: 8}
	for intensity, want := range cases {
		if got := SpecialTileCount(intensity); got != want {
			t.Errorf("SpecialTileCount(%d) = %d; want %d", intensity, got, want)
		}
	}
}

func TestPlaceSpecialTilesExclusions(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g, start := Generate(&Config{Width: 7, Height: 8, WallDensity: 0.25, Rand: rng})
		enc := PlaceEncounters(g, 1, 3, start, rng)
		var exclude []gamemap.Point
		blocked := map[gamemap.Point]bool{start: true}
		for _, e := range enc {
			p := gamemap.Point{X: e.X, Y: e.Y}
			exclude = append(exclude, p)
			blocked[p] = true
		}
		tiles := PlaceSpecialTiles(g, 1, exclude, start, rng, DefaultTilePool)
		if len(tiles) != 5 {
			t.Errorf("seed=%d: %d tiles, want 5", seed, len(tiles))
		}
		for _, tl := range tiles {
			p := gamemap.Point{X: tl.X, Y: tl.Y}
			if blocked[p] {
				t.Errorf("seed=%d: tile on blocked cell %v", seed, p)
			}
			if !g.IsWalkable(tl.X, tl.Y) {
				t.Errorf("seed=%d: tile on wall %v", seed, p)
			}
			if tl.Kind == TileMystery || tl.Kind == TileTeleport {
				t.Errorf("seed=%d: disabled kind %s selected", seed, tl.Kind)
			}
			blocked[p] = true
		}
	}
}

func TestPlaceSpecialTilesDegradesWhenCrowded(t *testing.T) {
	g := gamemap.New(2, 2)
	tiles := PlaceSpecialTiles(g, 3, []gamemap.Point{{0, 0}}, gamemap.Point{1, 1}, rand.New(rand.NewSource(1)), DefaultTilePool)
	if len(tiles) != 2 {
		t.Fatalf("got %d tiles, want the 2 free cells", len(tiles))
	}
}

func TestPlaceSpecialTilesEmptyPool(t *testing.T) {
	g := gamemap.New(7, 8)
	pool := []TileWeight{{TileMystery, 0}}
	if tiles := PlaceSpecialTiles(g, 1, nil, StartCell(g), rand.New(rand.NewSource(1)), pool); tiles != nil {
		t.Fatalf("zero-weight pool should place nothing, got %v", tiles)
	}
}

func TestPickKindHonoursWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	counts := map[TileKind]int{}
	for range 10000 {
		counts[pickKind(DefaultTilePool, 100, rng)]++
	}
	if counts[TileTreasure] < counts[TileBonusXP] {
		t.Errorf("treasure (w30) drawn %d times, bonus_xp (w10) %d", counts[TileTreasure], counts[TileBonusXP])
	}
	if counts[TileMystery] != 0 || counts[TileTeleport] != 0 {
		t.Error("zero-weight kinds must never be drawn")
	}
}
