package quiz

import (
	"fmt"
	"strconv"
)

// Rand is the random source for drills.
type Rand interface {
	Intn(n int) int
}

// Question is one multiple-choice prompt.
type Question struct {
	Prompt  string
	Choices [4]string
	Answer  int // index into Choices
}

const (
	pointsPerCorrect = 10
	comboStep        = 5
)

// Drill runs one encounter: the enemy loses HP on every correct answer and
// the drill ends when it is defeated or the questions run out.
type Drill struct {
	cfg       EncounterConfig
	rng       Rand
	questions []Question
	index     int
	enemyHP   int
	streak    int
	result    Result
}

// NewDrill prepares cfg.QuestionCount arithmetic questions.
func NewDrill(cfg EncounterConfig, rng Rand) *Drill {
	d := &Drill{cfg: cfg, rng: rng, enemyHP: cfg.MaxHP}
	for range cfg.QuestionCount {
		d.questions = append(d.questions, d.makeQuestion())
	}
	d.result.TotalQuestions = len(d.questions)
	return d
}

func (d *Drill) makeQuestion() Question {
	a, b := d.rng.Intn(12)+1, d.rng.Intn(12)+1
	var prompt string
	var answer int
	if d.cfg.Boss {
		prompt = fmt.Sprintf("%d × %d = ?", a, b)
		answer = a * b
	} else {
		prompt = fmt.Sprintf("%d + %d = ?", a, b)
		answer = a + b
	}
	q := Question{Prompt: prompt, Answer: d.rng.Intn(4)}
	used := map[int]bool{answer: true}
	for i := range q.Choices {
		if i == q.Answer {
			q.Choices[i] = strconv.Itoa(answer)
			continue
		}
		wrong := answer
		for used[wrong] {
			wrong = answer + d.rng.Intn(9) - 4
		}
		used[wrong] = true
		q.Choices[i] = strconv.Itoa(wrong)
	}
	return q
}

// Current returns the question awaiting an answer.
func (d *Drill) Current() (Question, bool) {
	if d.Done() {
		return Question{}, false
	}
	return d.questions[d.index], true
}

// Progress returns the 1-based question number and the total.
func (d *Drill) Progress() (int, int) {
	return min(d.index+1, len(d.questions)), len(d.questions)
}

// EnemyHP returns the remaining enemy hit points.
func (d *Drill) EnemyHP() int { return d.enemyHP }

// Answer records choice for the current question and reports whether it was
// correct. Answers after the drill has ended are ignored.
func (d *Drill) Answer(choice int) bool {
	q, ok := d.Current()
	if !ok {
		return false
	}
	d.index++
	if choice != q.Answer {
		d.streak = 0
		return false
	}
	d.streak++
	d.result.CorrectAnswers++
	d.result.Score += pointsPerCorrect
	if d.streak >= 2 {
		d.result.ComboScore += comboStep * d.streak
	}

	hit := d.cfg.MaxHP / max(d.cfg.QuestionCount/2, 1)
	if d.cfg.DoubleDamage {
		hit *= 2
	}
	d.enemyHP = max(d.enemyHP-hit, 0)
	if d.enemyHP == 0 {
		d.result.EnemyDefeated = true
	}
	return true
}

// Done reports whether the enemy is defeated or no questions remain.
func (d *Drill) Done() bool {
	return d.result.EnemyDefeated || d.index >= len(d.questions)
}

// Result returns the statistics gathered so far.
func (d *Drill) Result() Result { return d.result }
