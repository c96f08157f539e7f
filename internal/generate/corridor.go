package generate

import (
	"math"

	"quiz-dungeon/internal/gamemap"
)

// CarvePath opens a corridor on the straight line from a to b. Every stepped
// cell becomes walkable, and each of its orthogonal neighbours is opened
// with probability 1/2. The line is kept 4-connected: a diagonal step also
// carves the corner cell between the two points.
//
// Carving only ever adds walkable cells, so it cannot break a path that
// already exists.
func CarvePath(g *gamemap.Grid, a, b gamemap.Point, rng Rand) {
	steps := max(abs(b.X-a.X), abs(b.Y-a.Y))
	prev := a
	carveCell(g, a, rng)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		cur := gamemap.Point{
			X: int(math.Round(float64(a.X) + t*float64(b.X-a.X))),
			Y: int(math.Round(float64(a.Y) + t*float64(b.Y-a.Y))),
		}
		if cur.X != prev.X && cur.Y != prev.Y {
			carveCell(g, gamemap.Point{X: prev.X, Y: cur.Y}, rng)
		}
		carveCell(g, cur, rng)
		prev = cur
	}
}

func carveCell(g *gamemap.Grid, p gamemap.Point, rng Rand) {
	if !g.InBounds(p.X, p.Y) {
		return
	}
	g.SetFloor(p.X, p.Y)
	for _, d := range gamemap.Directions {
		nx, ny := p.X+d.X, p.Y+d.Y
		if g.InBounds(nx, ny) && rng.Intn(2) == 0 {
			g.SetFloor(nx, ny)
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
