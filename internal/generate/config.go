package generate

import "quiz-dungeon/internal/gamemap"

// Rand is the random source used by every generator in this package.
// *math/rand.Rand satisfies it; tests inject seeded sources.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Config drives procedural generation for one dungeon grid.
type Config struct {
	Width, Height int
	WallDensity   float64 // fraction of eligible cells turned into walls, 0–1
	Rand          Rand
}

// StartCell returns the player spawn: bottom row, middle column.
func StartCell(g *gamemap.Grid) gamemap.Point {
	return gamemap.Point{X: g.Width / 2, Y: g.Height - 1}
}

// Generate builds a fresh grid, scatters walls and returns it with the
// player start cell. Connectivity is not guaranteed until encounters are
// placed and EnsureConnectivity runs.
func Generate(cfg *Config) (*gamemap.Grid, gamemap.Point) {
	g := gamemap.New(cfg.Width, cfg.Height)
	start := StartCell(g)
	PlaceWalls(g, cfg.WallDensity, cfg.Rand, start)
	return g, start
}
