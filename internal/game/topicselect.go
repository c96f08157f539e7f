package game

import (
	"context"
	"fmt"

	"quiz-dungeon/internal/quiz"
	"quiz-dungeon/internal/storage"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// SelectTopic shows the course list and blocks until the player picks one.
// Completed courses are ticked when courses is non-nil. Returns false if the
// player quits or the screen closes.
func SelectTopic(ctx context.Context, screen tcell.Screen, courses storage.CourseStore) (string, bool) {
	topics := quiz.Topics()
	done := make(map[string]bool, len(topics))
	if courses != nil {
		for _, t := range topics {
			ok, err := courses.CourseCompleted(ctx, t)
			done[t] = err == nil && ok
		}
	}

	selected := 0
	for {
		drawTopicSelect(screen, topics, done, selected)
		ev := screen.PollEvent()
		if ev == nil {
			return "", false
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyUp:
				selected = (selected - 1 + len(topics)) % len(topics)
			case tcell.KeyDown:
				selected = (selected + 1) % len(topics)
			case tcell.KeyEnter:
				return topics[selected], true
			case tcell.KeyEscape:
				return "", false
			}
			switch ev.Rune() {
			case 'k', 'K':
				selected = (selected - 1 + len(topics)) % len(topics)
			case 'j', 'J':
				selected = (selected + 1) % len(topics)
			case 'q', 'Q':
				return "", false
			default:
				if i, ok := choiceFromKey(ev); ok && i < len(topics) {
					return topics[i], true
				}
			}
		}
	}
}

func drawTopicSelect(screen tcell.Screen, topics []string, done map[string]bool, selected int) {
	screen.Clear()
	w, _ := screen.Size()

	titleStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(180, 100, 255)).Bold(true)
	normalStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	highlightStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(180, 100, 255))

	centerText := func(y int, text string, style tcell.Style) {
		x := max((w-runewidth.StringWidth(text))/2, 0)
		drawScreenText(screen, x, y, text, style)
	}

	centerText(1, "⚔️ THE QUIZ DUNGEON ⚔️", titleStyle)
	centerText(2, "Choose a course to conquer", dimStyle)

	for i, t := range topics {
		prefix := "  "
		style := normalStyle
		if i == selected {
			prefix = "► "
			style = highlightStyle
		}
		mark := "  "
		if done[t] {
			mark = "✅"
		}
		line := fmt.Sprintf("%s[%d] %s %-10s %s", prefix, i+1, mark, t, quiz.ModuleFor(t))
		drawScreenText(screen, 4, 4+i*2, line, style)
	}

	centerText(5+len(topics)*2, "[j/k or ↑/↓] Navigate   [1-6] Quick-select   [Enter] Confirm   [q] Quit", dimStyle)
	screen.Show()
}

// drawScreenText writes a string to the screen at (x, y) with the given style.
func drawScreenText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		screen.SetContent(col, y, ch, nil, style)
		col += w
	}
}
