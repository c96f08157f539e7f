package generate

import (
	"fmt"

	"quiz-dungeon/internal/gamemap"

	"github.com/zyedidia/generic/mapset"
)

// PathExists reports whether (ex, ey) can be reached from (sx, sy) by
// 4-directional steps over walkable cells. It fails closed: out-of-bounds
// coordinates, non-walkable endpoints and malformed grids all report false.
func PathExists(g *gamemap.Grid, sx, sy, ex, ey int) bool {
	if g.Validate() != nil {
		return false
	}
	if !g.IsWalkable(sx, sy) || !g.IsWalkable(ex, ey) {
		return false
	}
	end := gamemap.Point{X: ex, Y: ey}
	found := false
	flood(g, gamemap.Point{X: sx, Y: sy}, func(p gamemap.Point) bool {
		found = p == end
		return !found
	})
	return found
}

// Reachable returns every walkable cell connected to start. The set is empty
// when start itself is not walkable.
func Reachable(g *gamemap.Grid, start gamemap.Point) mapset.Set[gamemap.Point] {
	seen := mapset.New[gamemap.Point]()
	if !g.IsWalkable(start.X, start.Y) {
		return seen
	}
	flood(g, start, func(p gamemap.Point) bool {
		seen.Put(p)
		return true
	})
	return seen
}

// flood runs a BFS from start, calling visit for each reached cell until
// visit returns false.
func flood(g *gamemap.Grid, start gamemap.Point, visit func(gamemap.Point) bool) {
	visited := mapset.New[gamemap.Point]()
	visited.Put(start)
	queue := []gamemap.Point{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !visit(cur) {
			return
		}
		for _, n := range g.Adjacent(cur.X, cur.Y) {
			if visited.Has(n) {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}
}

// EnsureConnectivity guarantees that at least minReachable of targets can be
// reached from start, carving corridors to unreachable targets until the
// gap is closed. minReachable is clamped to len(targets). It returns the
// number of corridors carved.
func EnsureConnectivity(g *gamemap.Grid, start gamemap.Point, targets []gamemap.Point, minReachable int, rng Rand) (int, error) {
	if err := g.Validate(); err != nil {
		return 0, fmt.Errorf("ensure connectivity: %w", err)
	}
	minReachable = min(minReachable, len(targets))
	if minReachable <= 0 {
		return 0, nil
	}
	g.SetFloor(start.X, start.Y)

	carves := 0
	for {
		reach := Reachable(g, start)
		var unreachable []gamemap.Point
		for _, t := range targets {
			if !reach.Has(t) {
				unreachable = append(unreachable, t)
			}
		}
		if len(targets)-len(unreachable) >= minReachable || len(unreachable) == 0 {
			return carves, nil
		}
		CarvePath(g, start, unreachable[0], rng)
		carves++
		if carves > len(targets) {
			// Each carve connects its target, so this only trips on a
			// target outside the grid.
			return carves, fmt.Errorf("ensure connectivity: target %v cannot be connected", unreachable[0])
		}
	}
}
