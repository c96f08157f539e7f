package dungeon

import (
	"quiz-dungeon/assets"
	"quiz-dungeon/internal/gamemap"
	"quiz-dungeon/internal/generate"
	"quiz-dungeon/internal/storage"
)

// Thresholds returns the cumulative defeat counts that end waves 1, 2 and 3.
func (r *Run) Thresholds() [3]int {
	n := r.encounterCount
	return [3]int{n, 2 * n, 2*n + 1}
}

// minReachable is how many wave nodes must be reachable from start.
func minReachable(intensity int) int {
	if intensity >= generate.BossIntensity {
		return 1
	}
	return 2
}

// spawnWave places a new set of encounters and special tiles. It is a no-op
// while any encounter of the current wave is still active.
func (r *Run) spawnWave() {
	if len(r.encounters) > 0 || r.Finished() {
		return
	}
	if err := r.grid.Validate(); err != nil {
		r.log.Warn("spawn wave", "error", err)
		return
	}

	spawns := generate.PlaceEncounters(r.grid, r.prog.Intensity, r.encounterCount, r.player, r.rng)
	r.encounters = r.encounters[:0]
	for _, s := range spawns {
		r.encounters = append(r.encounters, r.newEncounter(s))
	}
	r.connect()
	r.placeTiles()

	r.log.Debug("wave spawned", "intensity", r.prog.Intensity,
		"encounters", len(r.encounters), "tiles", len(r.tiles))
	r.emit(GridChanged{})
	r.emit(HUDChanged{})
}

func (r *Run) newEncounter(s generate.EncounterSpawn) Encounter {
	m := assets.MonsterFor(s.Difficulty, r.spawned)
	r.spawned++
	return Encounter{
		X:          s.X,
		Y:          s.Y,
		Difficulty: s.Difficulty,
		SpriteKey:  m.Key,
		Label:      assets.Label(s.Difficulty, m),
		Boss:       s.Boss,
	}
}

// connect carves paths until enough of the active nodes are reachable.
func (r *Run) connect() {
	targets := make([]gamemap.Point, len(r.encounters))
	for i, e := range r.encounters {
		targets[i] = gamemap.Point{X: e.X, Y: e.Y}
	}
	carved, err := generate.EnsureConnectivity(r.grid, r.start, targets, minReachable(r.prog.Intensity), r.rng)
	if err != nil {
		r.log.Warn("ensure connectivity", "error", err)
		return
	}
	if carved > 0 {
		r.log.Debug("carved paths", "count", carved)
	}
}

// placeTiles replaces the special tile set, avoiding encounter cells.
func (r *Run) placeTiles() {
	exclude := make([]gamemap.Point, len(r.encounters))
	for i, e := range r.encounters {
		exclude[i] = gamemap.Point{X: e.X, Y: e.Y}
	}
	spawns := generate.PlaceSpecialTiles(r.grid, r.prog.Intensity, exclude, r.player, r.rng, r.pool)
	r.tiles = r.tiles[:0]
	r.pending = nil
	for _, s := range spawns {
		r.tiles = append(r.tiles, SpecialTile{X: s.X, Y: s.Y, Kind: s.Kind})
	}
}

// checkProgress is the continuation run after a reward hand-off completes.
func (r *Run) checkProgress() {
	if r.Finished() {
		return
	}
	th := r.Thresholds()
	switch {
	case r.state == StateWave1 && r.prog.EnemiesDefeated >= th[0]:
		r.advance(StateWave2)
	case r.state == StateWave2 && r.prog.EnemiesDefeated >= th[1]:
		r.advance(StateWave3)
	case r.state == StateWave3 && r.prog.EnemiesDefeated >= th[2]:
		r.finish(storage.OutcomeCompleted)
	default:
		r.emit(HUDChanged{})
	}
}

// advance moves to the next wave tier. Leftover nodes and tiles of the old
// wave are dropped so the next Update spawns the new tier.
func (r *Run) advance(next State) {
	r.state = next
	r.prog.Intensity = min(r.prog.Intensity+1, r.prog.MaxIntensity)
	r.encounters = r.encounters[:0]
	r.tiles = r.tiles[:0]
	r.pending = nil
	r.player = r.start
	r.grid.SetFloor(r.start.X, r.start.Y)
	r.grid.MarkVisited(r.start.X, r.start.Y)

	r.log.Info("wave advanced", "state", next.String(), "intensity", r.prog.Intensity,
		"defeated", r.prog.EnemiesDefeated)
	r.emit(PositionReset{X: r.start.X, Y: r.start.Y})
	r.message("Wave cleared", next.String()+" begins", "gold")
	r.emit(GridChanged{})
	r.emit(HUDChanged{})
}
