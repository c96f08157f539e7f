package dungeon

import (
	"fmt"
	"time"

	"quiz-dungeon/internal/gamemap"
	"quiz-dungeon/internal/generate"
	"quiz-dungeon/internal/profile"
)

// EventKind is one of the random dungeon events.
type EventKind uint8

const (
	EventDamageAll EventKind = iota
	EventBonusScore
	EventRegenTiles
	EventSpeedBoost
	EventRegenGrid
	EventDoubleDamage
	EventDoubleRewards
	eventKindCount
)

const bonusScorePerLevel = 50

var eventNames = [eventKindCount]string{
	EventDamageAll:     "lightning",
	EventBonusScore:    "bonus score",
	EventRegenTiles:    "tile shuffle",
	EventSpeedBoost:    "speed boost",
	EventRegenGrid:     "earthquake",
	EventDoubleDamage:  "double damage",
	EventDoubleRewards: "double rewards",
}

func (k EventKind) String() string {
	if k < eventKindCount {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Update advances timers: delayed tile triggers, the speed boost, lazy wave
// spawning and the random event clock. The host calls it from the goroutine
// that owns the run.
func (r *Run) Update(now time.Time) {
	if r.Finished() {
		return
	}
	if !r.boostUntil.IsZero() && !now.Before(r.boostUntil) {
		r.inputCooldown = r.baseCooldown
		r.boostUntil = time.Time{}
		r.message("Speed boost", "The rush fades", "gray")
	}
	if r.phase != PhaseExploring {
		return
	}
	if r.checkHP() {
		return
	}
	r.flushPending(now)
	if r.Finished() {
		return
	}
	if len(r.encounters) == 0 {
		r.spawnWave()
	}
	if r.events.Cooldown > 0 && now.Sub(r.events.Last) >= r.events.Cooldown {
		r.events.Last = now
		r.fireEvent(EventKind(r.rng.Intn(int(eventKindCount))), now)
	}
}

// TriggerEvent applies kind immediately. It reports false when the run is
// not exploring.
func (r *Run) TriggerEvent(kind EventKind) bool {
	if r.Finished() || r.phase != PhaseExploring || kind >= eventKindCount {
		return false
	}
	r.fireEvent(kind, r.clock())
	return true
}

func (r *Run) fireEvent(kind EventKind, now time.Time) {
	r.log.Debug("random event", "kind", kind.String())
	level := r.prog.Intensity
	switch kind {
	case EventDamageAll:
		// Encounters have no HP pool of their own; this is flavour only.
		n := 0
		for _, e := range r.encounters {
			if !e.Boss {
				n++
			}
		}
		r.message("Lightning", fmt.Sprintf("Lightning strikes %d foes", n), "yellow")
	case EventBonusScore:
		n := bonusScorePerLevel * level
		r.summary.TotalScore += n
		r.message("Windfall", fmt.Sprintf("+%d score", n), "gold")
	case EventRegenTiles:
		r.placeTiles()
		r.message("Tile shuffle", "The floor shifts beneath you", "aqua")
	case EventSpeedBoost:
		r.inputCooldown = r.baseCooldown / 2
		r.boostUntil = now.Add(r.boostFor)
		r.message("Speed boost", "Your steps quicken", "green")
	case EventRegenGrid:
		r.regenerateGrid()
		r.message("Earthquake", "The dungeon rearranges itself", "orange")
	case EventDoubleDamage:
		r.profile.AddBuff(profile.Buff{Kind: profile.BuffDoubleDamage, Charges: 1})
		r.message("Sharpened", "Your next encounter deals double damage", "red")
	case EventDoubleRewards:
		r.profile.AddBuff(profile.Buff{Kind: profile.BuffDoubleRewards, Charges: 1})
		r.message("Fortune", "Your next encounter pays double", "gold")
	}
	r.emit(GridChanged{})
	r.emit(HUDChanged{})
}

// regenerateGrid rebuilds the terrain, moves the surviving nodes onto the
// new grid and re-validates the player's cell.
func (r *Run) regenerateGrid() {
	g, start := generate.Generate(r.genConfig())
	g.SetFloor(r.player.X, r.player.Y)
	if !generate.PathExists(g, start.X, start.Y, r.player.X, r.player.Y) {
		generate.CarvePath(g, start, r.player, r.rng)
	}
	g.MarkVisited(r.player.X, r.player.Y)

	var spawns []generate.EncounterSpawn
	if len(r.encounters) > 0 {
		spawns = generate.PlaceEncounters(g, r.prog.Intensity, len(r.encounters), r.player, r.rng)
	}
	moved := r.encounters[:0]
	for i, s := range spawns {
		if i >= len(r.encounters) {
			break
		}
		e := r.encounters[i]
		e.X, e.Y = s.X, s.Y
		moved = append(moved, e)
	}
	if len(moved) < len(r.encounters) {
		r.log.Warn("regenerate grid dropped encounters", "kept", len(moved), "had", len(r.encounters))
	}

	r.grid = g
	r.start = start
	r.encounters = moved
	r.connect()
	r.placeTiles()
	if len(r.encounters) > 0 && !r.anyReachable() {
		r.log.Warn("regenerated grid left no reachable node")
	}
}

func (r *Run) anyReachable() bool {
	reach := generate.Reachable(r.grid, r.player)
	for _, e := range r.encounters {
		if reach.Has(gamemap.Point{X: e.X, Y: e.Y}) {
			return true
		}
	}
	return false
}
