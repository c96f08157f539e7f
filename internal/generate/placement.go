package generate

import (
	"quiz-dungeon/internal/gamemap"

	"github.com/zyedidia/generic/mapset"
)

// Difficulty grades an encounter node.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyBoss   Difficulty = "boss"
)

// difficultyCycle is assigned in placement order, not per-node at random.
var difficultyCycle = [...]Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// TileKind is the hidden effect carried by a special tile.
type TileKind string

const (
	TileTreasure TileKind = "treasure"
	TileTrap     TileKind = "trap"
	TilePowerup  TileKind = "powerup"
	TileHeal     TileKind = "heal"
	TileBonusXP  TileKind = "bonus_xp"
	TileMystery  TileKind = "mystery"
	TileTeleport TileKind = "teleport"
)

// TileWeight is one entry of the weighted special-tile pool.
type TileWeight struct {
	Kind   TileKind
	Weight int
}

// DefaultTilePool is the active weighted pool. Mystery and teleport are
// listed with weight 0: they exist but are switched off.
var DefaultTilePool = []TileWeight{
	{TileTreasure, 30},
	{TileTrap, 25},
	{TilePowerup, 20},
	{TileHeal, 15},
	{TileBonusXP, 10},
	{TileMystery, 0},
	{TileTeleport, 0},
}

// BossIntensity is the intensity level whose wave is a single boss.
const BossIntensity = 3

// maxPlacementAttempts bounds random sampling before falling back to an
// exhaustive scan of valid cells.
const maxPlacementAttempts = 100

// EncounterSpawn describes one encounter node to create.
type EncounterSpawn struct {
	X, Y       int
	Difficulty Difficulty
	Boss       bool
}

// TileSpawn describes one special tile to create.
type TileSpawn struct {
	X, Y int
	Kind TileKind
}

// SpecialTileCount is min(4+intensity, 8).
func SpecialTileCount(intensity int) int {
	return min(4+intensity, 8)
}

// PlaceEncounters picks cells for one wave. Below BossIntensity it places
// count nodes with difficulties cycling easy, medium, hard; at
// BossIntensity it places exactly one boss. Cells are walkable, never the
// player's cell, never the bottom spawn row and never repeated. When no
// valid cell remains a wall is carved open so the wave is always complete
// on grids with more than one row.
func PlaceEncounters(g *gamemap.Grid, intensity, count int, player gamemap.Point, rng Rand) []EncounterSpawn {
	boss := intensity >= BossIntensity
	if boss {
		count = 1
	}
	chosen := mapset.New[gamemap.Point]()
	valid := func(p gamemap.Point) bool {
		return g.IsWalkable(p.X, p.Y) && p != player && p.Y != g.Height-1 && !chosen.Has(p)
	}

	var out []EncounterSpawn
	for i := 0; i < count; i++ {
		p, ok := pickCell(g, rng, valid)
		if !ok {
			p, ok = forceCell(g, rng, func(p gamemap.Point) bool {
				return p != player && p.Y != g.Height-1 && !chosen.Has(p)
			})
			if !ok {
				break
			}
		}
		chosen.Put(p)
		spawn := EncounterSpawn{X: p.X, Y: p.Y, Difficulty: difficultyCycle[i%len(difficultyCycle)]}
		if boss {
			spawn.Difficulty = DifficultyBoss
			spawn.Boss = true
		}
		out = append(out, spawn)
	}
	return out
}

// PlaceSpecialTiles picks SpecialTileCount(intensity) cells and a hidden kind
// for each from pool. Player, excluded (encounter) and already chosen cells
// are skipped. Running out of cells yields fewer tiles.
func PlaceSpecialTiles(g *gamemap.Grid, intensity int, exclude []gamemap.Point, player gamemap.Point, rng Rand, pool []TileWeight) []TileSpawn {
	total := 0
	for _, w := range pool {
		total += max(w.Weight, 0)
	}
	if total == 0 {
		return nil
	}
	blocked := mapset.New[gamemap.Point]()
	blocked.Put(player)
	for _, p := range exclude {
		blocked.Put(p)
	}
	valid := func(p gamemap.Point) bool {
		return g.IsWalkable(p.X, p.Y) && !blocked.Has(p)
	}

	var out []TileSpawn
	for range SpecialTileCount(intensity) {
		p, ok := pickCell(g, rng, valid)
		if !ok {
			break
		}
		blocked.Put(p)
		out = append(out, TileSpawn{X: p.X, Y: p.Y, Kind: pickKind(pool, total, rng)})
	}
	return out
}

// pickKind draws from pool by weight. total must be the positive weight sum.
func pickKind(pool []TileWeight, total int, rng Rand) TileKind {
	roll := rng.Intn(total)
	for _, w := range pool {
		if w.Weight <= 0 {
			continue
		}
		if roll < w.Weight {
			return w.Kind
		}
		roll -= w.Weight
	}
	return pool[len(pool)-1].Kind
}

// pickCell samples random coordinates up to maxPlacementAttempts times, then
// falls back to a uniform choice among every cell that satisfies valid.
func pickCell(g *gamemap.Grid, rng Rand, valid func(gamemap.Point) bool) (gamemap.Point, bool) {
	if g.Width <= 0 || g.Height <= 0 {
		return gamemap.Point{}, false
	}
	for range maxPlacementAttempts {
		p := gamemap.Point{X: rng.Intn(g.Width), Y: rng.Intn(g.Height)}
		if valid(p) {
			return p, true
		}
	}
	var candidates []gamemap.Point
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if p := (gamemap.Point{X: x, Y: y}); valid(p) {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 {
		return gamemap.Point{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

// forceCell carves open a random cell satisfying allowed regardless of its
// terrain.
func forceCell(g *gamemap.Grid, rng Rand, allowed func(gamemap.Point) bool) (gamemap.Point, bool) {
	var candidates []gamemap.Point
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if p := (gamemap.Point{X: x, Y: y}); allowed(p) {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 {
		return gamemap.Point{}, false
	}
	p := candidates[rng.Intn(len(candidates))]
	g.SetFloor(p.X, p.Y)
	return p, true
}
