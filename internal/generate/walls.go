package generate

import (
	"quiz-dungeon/internal/gamemap"

	"github.com/zyedidia/generic/mapset"
)

// PlaceWalls turns roughly density of the cells above the bottom row into
// walls. The bottom row is the spawn corridor and is never walled, nor is
// any cell listed in keep.
func PlaceWalls(g *gamemap.Grid, density float64, rng Rand, keep ...gamemap.Point) {
	if density <= 0 {
		return
	}
	kept := mapset.New[gamemap.Point]()
	for _, p := range keep {
		kept.Put(p)
	}
	for y := 0; y < g.Height-1; y++ {
		for x := 0; x < g.Width; x++ {
			if kept.Has(gamemap.Point{X: x, Y: y}) {
				continue
			}
			if rng.Float64() < density {
				g.SetWall(x, y)
			}
		}
	}
}
