package dungeon

import (
	"fmt"

	"quiz-dungeon/internal/profile"
	"quiz-dungeon/internal/quiz"
	"quiz-dungeon/internal/reward"
)

func (r *Run) encounterAt(x, y int) int {
	for i, e := range r.encounters {
		if e.X == x && e.Y == y {
			return i
		}
	}
	return -1
}

// engage removes the node at index i and hands control to the quiz
// subsystem. The phase is switched before the launch so a host that
// resumes synchronously sees a consistent run.
func (r *Run) engage(i int) {
	e := r.encounters[i]
	r.encounters = append(r.encounters[:i], r.encounters[i+1:]...)

	cfg := quiz.NewEncounterConfig(e.SpriteKey, e.Label, e.Boss)
	if _, ok := r.profile.UseBuff(profile.BuffDoubleDamage); ok {
		cfg.DoubleDamage = true
	}
	if _, ok := r.profile.UseBuff(profile.BuffDoubleRewards); ok {
		cfg.DoubleRewards = true
	}
	r.active = cfg
	r.phase = PhaseAwaitingQuiz

	module := quiz.ModuleFor(r.topic)
	r.log.Debug("encounter", "sprite", e.SpriteKey, "boss", e.Boss, "module", module)
	r.emit(GridChanged{})
	r.host.LaunchQuiz(module, cfg)
}

// ResumeQuiz folds a quiz result into the run. Statistics are always kept;
// a defeat hands off to the reward subsystem.
func (r *Run) ResumeQuiz(res quiz.Result) error {
	if r.phase != PhaseAwaitingQuiz {
		return fmt.Errorf("resume quiz: %w", ErrNotAwaiting)
	}
	cfg := r.active
	r.active = quiz.EncounterConfig{}

	score := res.Score
	if cfg.DoubleRewards {
		score *= 2
	}
	r.summary.TotalScore += score
	r.summary.CorrectAnswers += res.CorrectAnswers
	r.summary.WrongAnswers += res.WrongAnswers()
	r.summary.ComboScore += res.ComboScore

	if !res.EnemyDefeated {
		r.phase = PhaseExploring
		r.message("Retreat", cfg.Label+" still stands", "orange")
		r.emit(HUDChanged{})
		r.checkHP()
		return nil
	}

	r.prog.EnemiesDefeated++
	r.phase = PhaseAwaitingReward
	r.resume = r.checkProgress
	r.emit(HUDChanged{})
	r.host.LaunchReward(reward.Request{PlayerLevel: r.prog.Intensity, BossReward: cfg.Boss})
	return nil
}

// ResumeReward runs the stored continuation exactly once.
func (r *Run) ResumeReward() error {
	if r.phase != PhaseAwaitingReward || r.resume == nil {
		return fmt.Errorf("resume reward: %w", ErrNotAwaiting)
	}
	next := r.resume
	r.resume = nil
	r.phase = PhaseExploring
	next()
	return nil
}
