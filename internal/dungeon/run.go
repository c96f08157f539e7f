// Package dungeon drives one dungeon run: the grid, the encounter waves,
// special tiles, random events and the hand-offs to the quiz and reward
// subsystems. A Run is owned by a single goroutine; the host calls into it
// for input, timer ticks and resumes, and observes it through events.
package dungeon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"quiz-dungeon/internal/gamemap"
	"quiz-dungeon/internal/generate"
	"quiz-dungeon/internal/profile"
	"quiz-dungeon/internal/quiz"
	"quiz-dungeon/internal/reward"
	"quiz-dungeon/internal/storage"
)

// ErrNotAwaiting is returned when a resume arrives while the run is not
// waiting for that subsystem.
var ErrNotAwaiting = errors.New("dungeon: not awaiting a result")

// State is the progression state of a run.
type State uint8

const (
	StateWave1 State = iota
	StateWave2
	StateWave3
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateWave1:
		return "wave 1"
	case StateWave2:
		return "wave 2"
	case StateWave3:
		return "boss wave"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Phase says who currently has control.
type Phase uint8

const (
	PhaseExploring Phase = iota
	PhaseAwaitingQuiz
	PhaseAwaitingReward
)

// Host launches the external subsystems. Either call may resume the run
// synchronously before returning.
type Host interface {
	LaunchQuiz(module quiz.ModuleID, cfg quiz.EncounterConfig)
	LaunchReward(req reward.Request)
}

// Profile is the externally owned player record. HP is never cached by the
// run; every read goes through HP.
type Profile interface {
	HP() int
	SetHP(v int)
	MaxHP() int
	AddBuff(b profile.Buff)
	Buff(kind profile.BuffKind) (profile.Buff, bool)
	RemoveBuff(kind profile.BuffKind)
	UseBuff(kind profile.BuffKind) (profile.Buff, bool)
}

// Options configures a new run. Zero values pick defaults.
type Options struct {
	Width, Height  int
	WallDensity    float64
	EncounterCount int
	Topic          string

	InputCooldown      time.Duration
	EventCooldown      time.Duration // <= 0 disables random events
	SpeedBoostDuration time.Duration
	TileRevealDelay    time.Duration

	TilePool []generate.TileWeight
	Rand     generate.Rand
	Clock    func() time.Time
	Logger   *slog.Logger

	Host    Host
	Profile Profile
	Courses storage.CourseStore
	Runs    storage.RunRecorder
}

// Encounter is an active encounter node.
type Encounter struct {
	X, Y       int
	Difficulty generate.Difficulty
	SpriteKey  string
	Label      string
	Boss       bool
}

// SpecialTile is a one-shot effect cell. Kind stays hidden until Revealed.
type SpecialTile struct {
	X, Y      int
	Kind      generate.TileKind
	Revealed  bool
	Triggered bool
}

// Progression tracks the wave tier. Both counters only grow.
type Progression struct {
	Intensity       int
	EnemiesDefeated int
	MaxIntensity    int
}

// Combo counts consecutive triggers of the same tile kind.
type Combo struct {
	Last  generate.TileKind
	Count int
}

// Summary is the running statistics shown when the run ends.
type Summary struct {
	TotalScore     int
	CorrectAnswers int
	WrongAnswers   int
	ComboScore     int
}

// EventClock gates the random event scheduler.
type EventClock struct {
	Last     time.Time
	Cooldown time.Duration
}

// Run is one dungeon playthrough.
type Run struct {
	ctx     context.Context
	log     *slog.Logger
	rng     generate.Rand
	clock   func() time.Time
	host    Host
	profile Profile
	courses storage.CourseStore
	runs    storage.RunRecorder

	width, height  int
	wallDensity    float64
	encounterCount int
	topic          string
	pool           []generate.TileWeight

	grid       *gamemap.Grid
	start      gamemap.Point
	player     gamemap.Point
	encounters []Encounter
	tiles      []SpecialTile
	pending    []pendingTrigger
	spawned    int

	prog    Progression
	state   State
	phase   Phase
	combo   Combo
	summary Summary
	events  EventClock

	baseCooldown  time.Duration
	inputCooldown time.Duration
	boostFor      time.Duration
	boostUntil    time.Time
	lastMove      time.Time
	revealDelay   time.Duration

	active      quiz.EncounterConfig
	resume      func()
	subscribers []func(Event)
}

// New builds the grid and the first wave. ctx bounds the persistence calls
// made when the run finishes.
func New(ctx context.Context, opts Options) (*Run, error) {
	if opts.Host == nil {
		return nil, errors.New("dungeon: host is required")
	}
	if opts.Width == 0 {
		opts.Width = 7
	}
	if opts.Height == 0 {
		opts.Height = 8
	}
	if opts.Width < 1 || opts.Height < 2 {
		return nil, fmt.Errorf("dungeon: grid %dx%d too small", opts.Width, opts.Height)
	}
	if opts.EncounterCount <= 0 {
		opts.EncounterCount = 3
	}
	if opts.Topic == "" {
		opts.Topic = quiz.DefaultTopic
	}
	if opts.TilePool == nil {
		opts.TilePool = generate.DefaultTilePool
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Profile == nil {
		opts.Profile = profile.New(100)
	}

	r := &Run{
		ctx:            ctx,
		log:            opts.Logger,
		rng:            opts.Rand,
		clock:          opts.Clock,
		host:           opts.Host,
		profile:        opts.Profile,
		courses:        opts.Courses,
		runs:           opts.Runs,
		width:          opts.Width,
		height:         opts.Height,
		wallDensity:    opts.WallDensity,
		encounterCount: opts.EncounterCount,
		topic:          opts.Topic,
		pool:           opts.TilePool,
		prog:           Progression{Intensity: 1, MaxIntensity: generate.BossIntensity},
		state:          StateWave1,
		baseCooldown:   opts.InputCooldown,
		inputCooldown:  opts.InputCooldown,
		boostFor:       opts.SpeedBoostDuration,
		revealDelay:    opts.TileRevealDelay,
	}
	r.events = EventClock{Last: r.clock(), Cooldown: opts.EventCooldown}

	r.grid, r.start = generate.Generate(r.genConfig())
	r.player = r.start
	r.grid.MarkVisited(r.player.X, r.player.Y)
	r.spawnWave()
	return r, nil
}

func (r *Run) genConfig() *generate.Config {
	return &generate.Config{Width: r.width, Height: r.height, WallDensity: r.wallDensity, Rand: r.rng}
}

// Grid returns the live grid. Callers must treat it as read-only.
func (r *Run) Grid() *gamemap.Grid { return r.grid }

func (r *Run) Player() gamemap.Point { return r.player }
func (r *Run) Start() gamemap.Point  { return r.start }
func (r *Run) State() State          { return r.state }
func (r *Run) Phase() Phase          { return r.phase }
func (r *Run) Topic() string         { return r.topic }
func (r *Run) Combo() Combo          { return r.combo }
func (r *Run) Summary() Summary      { return r.summary }

func (r *Run) Progression() Progression { return r.prog }

// Profile returns the injected player profile.
func (r *Run) Profile() Profile { return r.profile }

// Encounters returns a copy of the active encounter nodes.
func (r *Run) Encounters() []Encounter {
	out := make([]Encounter, len(r.encounters))
	copy(out, r.encounters)
	return out
}

// Tiles returns a copy of the current wave's special tiles.
func (r *Run) Tiles() []SpecialTile {
	out := make([]SpecialTile, len(r.tiles))
	copy(out, r.tiles)
	return out
}

// InputCooldown is the current minimum gap between accepted moves.
func (r *Run) InputCooldown() time.Duration { return r.inputCooldown }

// Finished reports whether the run reached Completed or Failed.
func (r *Run) Finished() bool {
	return r.state == StateCompleted || r.state == StateFailed
}

// finish moves the run to a terminal state, records it and notifies
// subscribers. Persistence failures are logged and otherwise ignored.
func (r *Run) finish(outcome storage.Outcome) {
	if r.Finished() {
		return
	}
	r.pending = nil
	r.resume = nil
	r.phase = PhaseExploring
	if outcome == storage.OutcomeCompleted {
		r.state = StateCompleted
		if r.courses != nil {
			if err := r.courses.SetCourseCompleted(r.ctx, r.topic, true); err != nil {
				r.log.Warn("record course completion", "topic", r.topic, "error", err)
			}
		}
	} else {
		r.state = StateFailed
	}

	if r.runs != nil {
		rec := storage.RunRecord{
			Topic:           r.topic,
			Outcome:         outcome,
			Intensity:       r.prog.Intensity,
			EnemiesDefeated: r.prog.EnemiesDefeated,
			TotalScore:      r.summary.TotalScore,
			CorrectAnswers:  r.summary.CorrectAnswers,
			WrongAnswers:    r.summary.WrongAnswers,
			ComboScore:      r.summary.ComboScore,
			FinishedAt:      r.clock(),
		}
		if err := r.runs.RecordRun(r.ctx, rec); err != nil {
			r.log.Warn("record run", "topic", r.topic, "error", err)
		}
	}

	r.log.Info("run finished", "topic", r.topic, "outcome", outcome,
		"defeated", r.prog.EnemiesDefeated, "score", r.summary.TotalScore)
	r.emit(HUDChanged{})
	if outcome == storage.OutcomeCompleted {
		r.emit(CourseComplete{Topic: r.topic, Summary: r.summary})
	} else {
		r.emit(RunFailed{Summary: r.summary})
	}
}

// checkHP ends the run when the profile reports zero HP.
func (r *Run) checkHP() bool {
	if r.profile.HP() > 0 {
		return false
	}
	r.finish(storage.OutcomeFailed)
	return true
}
