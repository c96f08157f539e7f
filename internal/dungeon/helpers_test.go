package dungeon

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"quiz-dungeon/internal/gamemap"
	"quiz-dungeon/internal/generate"
	"quiz-dungeon/internal/profile"
	"quiz-dungeon/internal/quiz"
	"quiz-dungeon/internal/reward"
	"quiz-dungeon/internal/storage"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type testHost struct {
	modules  []quiz.ModuleID
	quizzes  []quiz.EncounterConfig
	rewards  []reward.Request
	onQuiz   func(quiz.EncounterConfig)
	onReward func(reward.Request)
}

func (h *testHost) LaunchQuiz(m quiz.ModuleID, cfg quiz.EncounterConfig) {
	h.modules = append(h.modules, m)
	h.quizzes = append(h.quizzes, cfg)
	if h.onQuiz != nil {
		h.onQuiz(cfg)
	}
}

func (h *testHost) LaunchReward(req reward.Request) {
	h.rewards = append(h.rewards, req)
	if h.onReward != nil {
		h.onReward(req)
	}
}

type fixture struct {
	run     *Run
	host    *testHost
	clock   *fakeClock
	profile *profile.Profile
	store   *storage.Memory
	events  []Event
}

// newFixture builds an open 7x8 run with no tiles, no random events and no
// input cooldown. mutate may override any option.
func newFixture(t *testing.T, seed int64, mutate func(*Options)) *fixture {
	t.Helper()
	f := &fixture{
		host:    &testHost{},
		clock:   &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		profile: profile.New(100),
		store:   storage.NewMemory(),
	}
	opts := Options{
		Width:          7,
		Height:         8,
		EncounterCount: 3,
		Topic:          "python",
		TilePool:       []generate.TileWeight{},
		Rand:           rand.New(rand.NewSource(seed)),
		Clock:          f.clock.Now,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Host:           f.host,
		Profile:        f.profile,
		Courses:        f.store,
		Runs:           f.store,
	}
	if mutate != nil {
		mutate(&opts)
	}
	r, err := New(context.Background(), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Subscribe(func(ev Event) { f.events = append(f.events, ev) })
	f.run = r
	return f
}

// clearBoard leaves a single far-away encounter so Update never respawns a
// wave, and removes every special tile.
func (f *fixture) clearBoard() {
	f.run.encounters = []Encounter{{X: 0, Y: 0, Difficulty: generate.DifficultyEasy, SpriteKey: "slime"}}
	f.run.tiles = nil
	f.run.pending = nil
}

// walkTo steps the player along a shortest walkable path to target,
// avoiding every other encounter. It returns the result of the last step.
func (f *fixture) walkTo(t *testing.T, target gamemap.Point) MoveResult {
	t.Helper()
	r := f.run
	blocked := map[gamemap.Point]bool{}
	for _, e := range r.encounters {
		if p := (gamemap.Point{X: e.X, Y: e.Y}); p != target {
			blocked[p] = true
		}
	}
	prev := map[gamemap.Point]gamemap.Point{}
	seen := map[gamemap.Point]bool{r.player: true}
	queue := []gamemap.Point{r.player}
	for len(queue) > 0 && !seen[target] {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range r.grid.Adjacent(cur.X, cur.Y) {
			if seen[n] || blocked[n] {
				continue
			}
			seen[n] = true
			prev[n] = cur
			queue = append(queue, n)
		}
	}
	if !seen[target] {
		t.Fatalf("no path from %v to %v", r.player, target)
	}
	var path []gamemap.Point
	for p := target; p != r.player; p = prev[p] {
		path = append([]gamemap.Point{p}, path...)
	}
	res := MoveRejected
	for _, p := range path {
		res = r.RequestMoveTo(p.X, p.Y)
		if res == MoveRejected {
			t.Fatalf("step to %v rejected", p)
		}
	}
	return res
}

// defeatNext walks into the first active encounter and wins it.
func (f *fixture) defeatNext(t *testing.T) Encounter {
	t.Helper()
	if len(f.run.encounters) == 0 {
		t.Fatal("no active encounter")
	}
	e := f.run.encounters[0]
	if res := f.walkTo(t, gamemap.Point{X: e.X, Y: e.Y}); res != MoveEncounter {
		t.Fatalf("last step = %v, want encounter", res)
	}
	if err := f.run.ResumeQuiz(quiz.Result{EnemyDefeated: true, Score: 10, CorrectAnswers: 4, TotalQuestions: 5}); err != nil {
		t.Fatalf("ResumeQuiz: %v", err)
	}
	if err := f.run.ResumeReward(); err != nil {
		t.Fatalf("ResumeReward: %v", err)
	}
	return e
}

func countEvents[T Event](events []Event) int {
	n := 0
	for _, ev := range events {
		if _, ok := ev.(T); ok {
			n++
		}
	}
	return n
}
