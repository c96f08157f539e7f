package game

import (
	"fmt"

	"quiz-dungeon/internal/render"

	"github.com/gdamore/tcell/v2"
)

// answer records a quiz choice and hands the result back to the run once
// the drill is over.
func (g *Game) answer(choice int) {
	if g.drill == nil {
		return
	}
	if g.drill.Answer(choice) {
		g.feedback = render.Line{Text: "Correct! The enemy reels.", Color: tcell.ColorGreen}
	} else {
		g.profile.SetHP(g.profile.HP() - wrongAnswerDamage)
		g.feedback = render.Line{Text: fmt.Sprintf("Wrong! You take %d damage.", wrongAnswerDamage), Color: tcell.ColorRed}
	}
	if !g.drill.Done() && g.profile.HP() > 0 {
		return
	}

	res := g.drill.Result()
	g.drill = nil
	g.mode = modeExplore
	if res.EnemyDefeated {
		g.addMessage(fmt.Sprintf("%s defeated! %d/%d correct", g.quizCfg.Label, res.CorrectAnswers, res.TotalQuestions), tcell.ColorGold)
	} else {
		g.addMessage(fmt.Sprintf("%s drove you off.", g.quizCfg.Label), tcell.ColorOrange)
	}
	if err := g.run.ResumeQuiz(res); err != nil {
		g.log.Warn("resume quiz", "error", err)
	}
}

func (g *Game) quizLines() []render.Line {
	if g.drill == nil {
		return nil
	}
	n, total := g.drill.Progress()
	lines := []render.Line{
		{Text: fmt.Sprintf("Enemy HP: %d/%d   Question %d/%d   Your HP: %d", g.drill.EnemyHP(), g.quizCfg.MaxHP, n, total, g.profile.HP()), Color: tcell.ColorWhite},
	}
	var mods string
	if g.quizCfg.DoubleDamage {
		mods += "  [double damage]"
	}
	if g.quizCfg.DoubleRewards {
		mods += "  [double rewards]"
	}
	if mods != "" {
		lines = append(lines, render.Line{Text: mods, Color: tcell.ColorGold})
	}
	q, ok := g.drill.Current()
	if ok {
		lines = append(lines, render.Line{}, render.Line{Text: q.Prompt, Color: tcell.ColorLightYellow})
		for i, c := range q.Choices {
			lines = append(lines, render.Line{Text: fmt.Sprintf("[%d] %s", i+1, c), Color: tcell.ColorWhite})
		}
	}
	lines = append(lines, render.Line{}, g.feedback)
	return lines
}

func (g *Game) rewardLines() []render.Line {
	lines := make([]render.Line, 0, len(g.cards)+2)
	for i, c := range g.cards {
		lines = append(lines, render.Line{Text: fmt.Sprintf("[%d] %-10s %s", i+1, c.Name, c.Text), Color: tcell.ColorWhite})
	}
	lines = append(lines, render.Line{}, render.Line{Text: fmt.Sprintf("[1-%d] Choose", len(g.cards)), Color: tcell.ColorGray})
	return lines
}
