package dungeon

import (
	"fmt"
	"time"

	"quiz-dungeon/internal/generate"
	"quiz-dungeon/internal/profile"
)

// Effect scale factors, multiplied by the current intensity.
const (
	treasurePerLevel = 100
	trapPerLevel     = 10
	healPerLevel     = 15
	bonusXPPerLevel  = 25
	comboStep        = 50
	comboCap         = 5
)

type pendingTrigger struct {
	tile int
	due  time.Time
}

func (r *Run) tileAt(x, y int) int {
	for i, t := range r.tiles {
		if t.X == x && t.Y == y {
			return i
		}
	}
	return -1
}

func (r *Run) isPending(i int) bool {
	for _, p := range r.pending {
		if p.tile == i {
			return true
		}
	}
	return false
}

// arrive reveals the tile at index i and fires it now or queues it for the
// reveal delay. It reports whether anything happened.
func (r *Run) arrive(i int, now time.Time) bool {
	t := &r.tiles[i]
	if t.Triggered || r.isPending(i) {
		return false
	}
	t.Revealed = true
	r.emit(TileRevealed{Tile: *t})
	r.message("Special tile", fmt.Sprintf("You uncovered %s", t.Kind), "aqua")
	r.emit(GridChanged{})
	if r.revealDelay <= 0 {
		r.trigger(i)
		return true
	}
	r.pending = append(r.pending, pendingTrigger{tile: i, due: now.Add(r.revealDelay)})
	return true
}

// flushPending fires every queued tile whose delay has elapsed.
func (r *Run) flushPending(now time.Time) {
	kept := r.pending[:0]
	var due []int
	for _, p := range r.pending {
		if now.Before(p.due) {
			kept = append(kept, p)
			continue
		}
		due = append(due, p.tile)
	}
	r.pending = kept
	for _, i := range due {
		if r.Finished() {
			return
		}
		r.trigger(i)
	}
}

// trigger marks the tile spent and runs its handler. A spent tile never
// fires again.
func (r *Run) trigger(i int) {
	if i < 0 || i >= len(r.tiles) || r.tiles[i].Triggered {
		return
	}
	t := &r.tiles[i]
	t.Triggered = true
	t.Revealed = true

	kind := t.Kind
	if kind == generate.TileMystery {
		kind = r.resolveMystery()
		r.message("Mystery", fmt.Sprintf("The rune becomes %s", kind), "purple")
	}

	if r.combo.Count > 0 && r.combo.Last == kind {
		r.combo.Count++
	} else {
		r.combo = Combo{Last: kind, Count: 1}
	}

	r.applyTile(kind)
	if r.Finished() {
		return
	}
	if r.combo.Count >= 2 {
		bonus := comboStep * min(r.combo.Count, comboCap)
		r.summary.TotalScore += bonus
		r.message("Combo", fmt.Sprintf("%s x%d: +%d", kind, r.combo.Count, bonus), "gold")
	}
	r.emit(GridChanged{})
	r.emit(HUDChanged{})
}

func (r *Run) applyTile(kind generate.TileKind) {
	level := r.prog.Intensity
	switch kind {
	case generate.TileTreasure:
		gain := treasurePerLevel * level
		if b, ok := r.profile.UseBuff(profile.BuffLucky); ok {
			gain += b.Magnitude
		}
		r.summary.TotalScore += gain
		r.message("Treasure", fmt.Sprintf("+%d score", gain), "gold")
	case generate.TileTrap:
		dmg := trapPerLevel * level
		if b, ok := r.profile.UseBuff(profile.BuffShield); ok {
			dmg -= dmg * min(b.Magnitude, 100) / 100
		}
		r.profile.SetHP(r.profile.HP() - dmg)
		r.message("Trap", fmt.Sprintf("-%d HP", dmg), "red")
		r.checkHP()
	case generate.TilePowerup:
		b := r.randomBuff()
		r.profile.AddBuff(b)
		r.message("Power-up", fmt.Sprintf("Gained %s", b.Kind), "green")
	case generate.TileHeal:
		n := healPerLevel * level
		r.profile.SetHP(r.profile.HP() + n)
		r.message("Heal", fmt.Sprintf("+%d HP", n), "green")
	case generate.TileBonusXP:
		n := bonusXPPerLevel * level
		r.summary.ComboScore += n
		r.message("Bonus XP", fmt.Sprintf("+%d combo score", n), "aqua")
	case generate.TileTeleport:
		r.message("Teleport", "The rune is dormant", "gray")
	default:
		r.log.Warn("unknown tile kind", "kind", kind)
	}
}

// randomBuff draws from the power-up catalog.
func (r *Run) randomBuff() profile.Buff {
	catalog := []profile.Buff{
		{Kind: profile.BuffShield, Magnitude: 50, Charges: 2},
		{Kind: profile.BuffLucky, Magnitude: 25 * r.prog.Intensity, Charges: 2},
		{Kind: profile.BuffSwift, Charges: 10},
	}
	return catalog[r.rng.Intn(len(catalog))]
}

// resolveMystery picks one of the active ordinary kinds in the pool.
func (r *Run) resolveMystery() generate.TileKind {
	var kinds []generate.TileKind
	for _, w := range r.pool {
		if w.Weight > 0 && w.Kind != generate.TileMystery && w.Kind != generate.TileTeleport {
			kinds = append(kinds, w.Kind)
		}
	}
	if len(kinds) == 0 {
		return generate.TileTreasure
	}
	return kinds[r.rng.Intn(len(kinds))]
}
