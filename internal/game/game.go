// Package game is the terminal front end of a dungeon run. It owns the tcell
// screen, hosts the quiz and reward hand-offs as modal panels and drives the
// run's timers from the same goroutine that reads input.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"quiz-dungeon/internal/config"
	"quiz-dungeon/internal/dungeon"
	"quiz-dungeon/internal/profile"
	"quiz-dungeon/internal/quiz"
	"quiz-dungeon/internal/render"
	"quiz-dungeon/internal/reward"
	"quiz-dungeon/internal/storage"

	"github.com/gdamore/tcell/v2"
)

// TickInterval is how often the run's timers are advanced.
const TickInterval = 100 * time.Millisecond

// wrongAnswerDamage is the HP a wrong quiz answer costs the player.
const wrongAnswerDamage = 5

// maxLogLines bounds the message log kept for the HUD.
const maxLogLines = 50

type mode uint8

const (
	modeExplore mode = iota
	modeQuiz
	modeReward
	modeSummary
	modeConfirmQuit
)

// Options configures a Game.
type Options struct {
	Screen  tcell.Screen
	Config  config.Config
	Topic   string
	Profile *profile.Profile
	Courses storage.CourseStore
	Runs    storage.RunRecorder
	Rand    *rand.Rand
	Logger  *slog.Logger
}

// Game is one player's terminal session on a dungeon run.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	run      *dungeon.Run
	profile  *profile.Profile
	rng      *rand.Rand
	log      *slog.Logger

	mode     mode
	prevMode mode
	messages []render.Line

	drill    *quiz.Drill
	quizCfg  quiz.EncounterConfig
	module   quiz.ModuleID
	feedback render.Line

	cards []reward.Card

	summaryTitle string
	summary      []render.Line
}

// New creates the run and wires the game in as its host.
func New(ctx context.Context, opts Options) (*Game, error) {
	if opts.Screen == nil {
		return nil, errors.New("game: screen is required")
	}
	if opts.Rand == nil {
		opts.Rand = newRand(opts.Config.Seed)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Profile == nil {
		opts.Profile = profile.New(opts.Config.PlayerMaxHP)
	}
	if opts.Topic == "" {
		opts.Topic = opts.Config.Topic
	}

	g := &Game{
		screen:   opts.Screen,
		renderer: render.NewRenderer(opts.Screen),
		profile:  opts.Profile,
		rng:      opts.Rand,
		log:      opts.Logger,
	}
	run, err := dungeon.New(ctx, dungeon.Options{
		Width:              opts.Config.GridWidth,
		Height:             opts.Config.GridHeight,
		WallDensity:        opts.Config.WallDensity,
		EncounterCount:     opts.Config.EncounterCount,
		Topic:              opts.Topic,
		InputCooldown:      opts.Config.InputCooldown,
		EventCooldown:      opts.Config.EventCooldown,
		SpeedBoostDuration: opts.Config.SpeedBoost,
		TileRevealDelay:    opts.Config.TileReveal,
		TilePool:           opts.Config.TilePool(),
		Rand:               opts.Rand,
		Logger:             opts.Logger,
		Host:               g,
		Profile:            opts.Profile,
		Courses:            opts.Courses,
		Runs:               opts.Runs,
	})
	if err != nil {
		return nil, fmt.Errorf("new run: %w", err)
	}
	g.run = run
	run.Subscribe(g.onEvent)
	g.addMessage(fmt.Sprintf("Welcome to the %s dungeon. Defeat every guardian!", run.Topic()), tcell.ColorLightYellow)
	return g, nil
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Run is the session loop. Input is read on a helper goroutine; everything
// else, including the run's timers, happens here. It returns when the
// player quits, the screen closes or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	eventCh := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			eventCh <- ev
		}
	}()

	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	g.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-eventCh:
			if !ok {
				return nil
			}
			if g.handleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			g.run.Update(now)
		}
		g.draw()
	}
}

// Dungeon exposes the underlying run.
func (g *Game) Dungeon() *dungeon.Run { return g.run }

// LaunchQuiz opens the quiz panel for an encounter.
func (g *Game) LaunchQuiz(module quiz.ModuleID, cfg quiz.EncounterConfig) {
	g.module = module
	g.quizCfg = cfg
	g.drill = quiz.NewDrill(cfg, g.rng)
	g.feedback = render.Line{}
	g.mode = modeQuiz
	g.log.Debug("quiz launched", "module", module, "label", cfg.Label, "boss", cfg.Boss)
}

// LaunchReward opens the reward panel with three cards.
func (g *Game) LaunchReward(req reward.Request) {
	g.cards = reward.Offer(req, g.rng)
	g.mode = modeReward
}

func (g *Game) onEvent(ev dungeon.Event) {
	switch ev := ev.(type) {
	case dungeon.Message:
		text := ev.Text
		if ev.Title != "" {
			text = ev.Title + ": " + ev.Text
		}
		g.addMessage(text, render.ColorFor(ev.Color))
	case dungeon.PositionReset:
		g.addMessage("You are pulled back to the entrance.", tcell.ColorGray)
	case dungeon.CourseComplete:
		g.showSummary("COURSE COMPLETE", ev.Summary, tcell.ColorGold)
	case dungeon.RunFailed:
		g.showSummary("YOU FELL", ev.Summary, tcell.ColorRed)
	}
}

func (g *Game) addMessage(text string, color tcell.Color) {
	g.messages = append(g.messages, render.Line{Text: text, Color: color})
	if len(g.messages) > maxLogLines {
		g.messages = g.messages[len(g.messages)-maxLogLines:]
	}
}

func (g *Game) showSummary(title string, s dungeon.Summary, color tcell.Color) {
	g.summaryTitle = title
	g.summary = []render.Line{
		{Text: fmt.Sprintf("Topic:           %s", g.run.Topic()), Color: color},
		{Text: fmt.Sprintf("Total score:     %d", s.TotalScore), Color: tcell.ColorWhite},
		{Text: fmt.Sprintf("Correct answers: %d", s.CorrectAnswers), Color: tcell.ColorGreen},
		{Text: fmt.Sprintf("Wrong answers:   %d", s.WrongAnswers), Color: tcell.ColorRed},
		{Text: fmt.Sprintf("Combo score:     %d", s.ComboScore), Color: tcell.ColorAqua},
		{},
		{Text: "[Enter] Leave the dungeon", Color: tcell.ColorGray},
	}
	g.mode = modeSummary
}

func (g *Game) status() render.Status {
	return render.Status{
		Topic:       g.run.Topic(),
		HP:          g.profile.HP(),
		MaxHP:       g.profile.MaxHP(),
		Progression: g.run.Progression(),
		Thresholds:  g.run.Thresholds(),
		Summary:     g.run.Summary(),
		Combo:       g.run.Combo(),
		Buffs:       g.profile.Buffs(),
	}
}

func (g *Game) draw() {
	g.renderer.DrawFrame(g.run)
	g.renderer.DrawHUD(g.status(), g.messages)
	switch g.mode {
	case modeQuiz:
		g.renderer.DrawPanel(g.quizCfg.Label, g.quizLines())
	case modeReward:
		g.renderer.DrawPanel("Choose a reward", g.rewardLines())
	case modeSummary:
		g.renderer.DrawPanel(g.summaryTitle, g.summary)
	case modeConfirmQuit:
		g.renderer.DrawPanel("Leave the dungeon?", []render.Line{{Text: "(y/n)", Color: tcell.ColorYellow}})
	}
	g.renderer.Show()
}
