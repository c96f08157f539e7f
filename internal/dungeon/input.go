package dungeon

import (
	"quiz-dungeon/internal/gamemap"
	"quiz-dungeon/internal/profile"
)

// MoveResult is the outcome of a move request.
type MoveResult uint8

const (
	MoveRejected MoveResult = iota
	MoveOK
	MoveEncounter
	MoveSpecialTile
)

func (m MoveResult) String() string {
	switch m {
	case MoveOK:
		return "ok"
	case MoveEncounter:
		return "encounter"
	case MoveSpecialTile:
		return "special tile"
	}
	return "rejected"
}

// Button is one of the four on-screen direction controls.
type Button uint8

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Viewport maps screen coordinates onto grid cells.
type Viewport struct {
	CellWidth, CellHeight int
	OffsetX, OffsetY      int
}

// Cell converts a screen position to grid coordinates. ok is false for
// positions left of or above the grid, or for a degenerate viewport.
func (v Viewport) Cell(px, py int) (x, y int, ok bool) {
	if v.CellWidth <= 0 || v.CellHeight <= 0 {
		return 0, 0, false
	}
	dx, dy := px-v.OffsetX, py-v.OffsetY
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}
	return dx / v.CellWidth, dy / v.CellHeight, true
}

// RequestMove steps the player by (dx, dy).
func (r *Run) RequestMove(dx, dy int) MoveResult {
	return r.RequestMoveTo(r.player.X+dx, r.player.Y+dy)
}

// Press handles one of the four direction buttons.
func (r *Run) Press(b Button) MoveResult {
	d := gamemap.Directions[b%4]
	return r.RequestMove(d.X, d.Y)
}

// Tap resolves a pointer position through vp and moves there.
func (r *Run) Tap(px, py int, vp Viewport) MoveResult {
	x, y, ok := vp.Cell(px, py)
	if !ok {
		r.log.Debug("tap outside grid", "px", px, "py", py)
		return MoveRejected
	}
	return r.RequestMoveTo(x, y)
}

// RequestMoveTo moves the player onto (x, y) if that cell is adjacent and
// walkable and the input cooldown has elapsed. Rejected requests change
// nothing.
func (r *Run) RequestMoveTo(x, y int) MoveResult {
	if r.Finished() || r.phase != PhaseExploring {
		r.log.Debug("move discarded", "reason", "busy", "x", x, "y", y)
		return MoveRejected
	}
	target := gamemap.Point{X: x, Y: y}
	adjacent := false
	for _, p := range r.grid.Adjacent(r.player.X, r.player.Y) {
		if p == target {
			adjacent = true
			break
		}
	}
	if !adjacent {
		r.log.Debug("move discarded", "reason", "not adjacent", "x", x, "y", y)
		return MoveRejected
	}
	now := r.clock()
	if !r.lastMove.IsZero() && now.Sub(r.lastMove) < r.inputCooldown {
		if _, ok := r.profile.UseBuff(profile.BuffSwift); !ok {
			r.log.Debug("move discarded", "reason", "cooldown", "x", x, "y", y)
			return MoveRejected
		}
	}

	from := r.player
	r.player = target
	r.lastMove = now
	r.grid.MarkVisited(x, y)
	r.emit(PlayerMoved{From: from, To: target})

	if i := r.encounterAt(x, y); i >= 0 {
		r.engage(i)
		return MoveEncounter
	}
	if i := r.tileAt(x, y); i >= 0 && r.arrive(i, now) {
		return MoveSpecialTile
	}
	r.emit(GridChanged{})
	return MoveOK
}
