package game

import (
	"quiz-dungeon/internal/dungeon"
	"quiz-dungeon/internal/reward"

	"github.com/gdamore/tcell/v2"
)

// Action represents a player-requested exploration action.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveN
	ActionMoveS
	ActionMoveE
	ActionMoveW
	ActionQuit
)

// keyToAction maps a tcell key event to an exploration action.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionMoveN
	case tcell.KeyDown:
		return ActionMoveS
	case tcell.KeyRight:
		return ActionMoveE
	case tcell.KeyLeft:
		return ActionMoveW
	case tcell.KeyEscape:
		return ActionQuit
	}

	switch ev.Rune() {
	case 'k', 'K', 'w', 'W':
		return ActionMoveN
	case 'j', 'J', 's', 'S':
		return ActionMoveS
	case 'l', 'L', 'd', 'D':
		return ActionMoveE
	case 'h', 'H', 'a', 'A':
		return ActionMoveW
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// actionToButton converts a movement action to its direction button.
func actionToButton(a Action) (dungeon.Button, bool) {
	switch a {
	case ActionMoveN:
		return dungeon.ButtonUp, true
	case ActionMoveS:
		return dungeon.ButtonDown, true
	case ActionMoveE:
		return dungeon.ButtonRight, true
	case ActionMoveW:
		return dungeon.ButtonLeft, true
	}
	return 0, false
}

// choiceFromKey maps '1'..'9' to a zero-based index.
func choiceFromKey(ev *tcell.EventKey) (int, bool) {
	r := ev.Rune()
	if ev.Key() != tcell.KeyRune || r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}

// handleEvent routes one terminal event by mode. It reports true when the
// session should end.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.renderer.Resize()
	case *tcell.EventKey:
		return g.handleKey(ev)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 || g.mode != modeExplore {
			return false
		}
		x, y := ev.Position()
		if btn, ok := g.renderer.ButtonAt(x, y); ok {
			g.run.Press(btn)
			return false
		}
		g.run.Tap(x, y, g.renderer.Camera().Viewport())
	}
	return false
}

func (g *Game) handleKey(ev *tcell.EventKey) bool {
	switch g.mode {
	case modeExplore:
		a := keyToAction(ev)
		if a == ActionQuit {
			g.prevMode = g.mode
			g.mode = modeConfirmQuit
			return false
		}
		if btn, ok := actionToButton(a); ok {
			g.run.Press(btn)
		}
	case modeQuiz:
		if i, ok := choiceFromKey(ev); ok && i < 4 {
			g.answer(i)
		}
	case modeReward:
		if i, ok := choiceFromKey(ev); ok && i < len(g.cards) {
			g.pickCard(i)
		}
	case modeSummary:
		return ev.Key() == tcell.KeyEnter || ev.Key() == tcell.KeyEscape || ev.Rune() == 'q'
	case modeConfirmQuit:
		switch {
		case ev.Rune() == 'y' || ev.Rune() == 'Y':
			return true
		case ev.Rune() == 'n' || ev.Rune() == 'N' || ev.Key() == tcell.KeyEscape:
			g.mode = g.prevMode
		}
	}
	return false
}

func (g *Game) pickCard(i int) {
	card := g.cards[i]
	reward.Apply(card, g.profile)
	g.addMessage("Reward: "+card.Name+" ("+card.Text+")", tcell.ColorGreen)
	g.cards = nil
	g.mode = modeExplore
	if err := g.run.ResumeReward(); err != nil {
		g.log.Warn("resume reward", "error", err)
	}
}
