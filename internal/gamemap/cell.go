package gamemap

// Cell holds the terrain state for one grid square.
// A cell is always exactly one of wall or walkable.
type Cell struct {
	X, Y     int
	Visited  bool
	Walkable bool
	Wall     bool
}

// MakeFloor returns a passable cell at (x, y).
func MakeFloor(x, y int) Cell {
	return Cell{X: x, Y: y, Walkable: true}
}

// MakeWall returns a blocking wall cell at (x, y).
func MakeWall(x, y int) Cell {
	return Cell{X: x, Y: y, Wall: true}
}

// Point is a grid coordinate.
type Point struct {
	X, Y int
}
