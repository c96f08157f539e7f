package render

import (
	"fmt"
	"strings"

	"quiz-dungeon/internal/dungeon"
	"quiz-dungeon/internal/profile"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Line is one colored line of text.
type Line struct {
	Text  string
	Color tcell.Color
}

// Status is everything the status bar shows.
type Status struct {
	Topic       string
	HP, MaxHP   int
	Progression dungeon.Progression
	Thresholds  [3]int
	Summary     dungeon.Summary
	Combo       dungeon.Combo
	Buffs       []profile.Buff
}

// buttons are the on-screen direction controls, left to right.
var buttons = []struct {
	label string
	btn   dungeon.Button
}{
	{"[ ▲ ]", dungeon.ButtonUp},
	{"[ ▼ ]", dungeon.ButtonDown},
	{"[ ◀ ]", dungeon.ButtonLeft},
	{"[ ▶ ]", dungeon.ButtonRight},
}

const buttonGap = 1

// DrawHUD renders the status bar, the last three messages and the direction
// buttons at the bottom of the screen.
func (r *Renderer) DrawHUD(st Status, log []Line) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDRows

	r.drawHLine(hudY, tcell.ColorGray)

	p := st.Progression
	goal := st.Thresholds[min(max(p.Intensity, 1), 3)-1]
	wave := fmt.Sprintf("Wave %d/%d", p.Intensity, p.MaxIntensity)
	if p.Intensity >= p.MaxIntensity {
		wave = "BOSS"
	}
	status := fmt.Sprintf("[%s]  HP: %d/%d  %s  Defeated: %d/%d  Score: %d",
		st.Topic, st.HP, st.MaxHP, wave, p.EnemiesDefeated, goal, st.Summary.TotalScore)
	r.DrawText(0, hudY+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	var extras []string
	if st.Combo.Count >= 2 {
		extras = append(extras, fmt.Sprintf("Combo %s x%d", st.Combo.Last, st.Combo.Count))
	}
	if st.Summary.ComboScore > 0 {
		extras = append(extras, fmt.Sprintf("XP %d", st.Summary.ComboScore))
	}
	for _, b := range st.Buffs {
		extras = append(extras, fmt.Sprintf("%s(%d)", b.Kind, b.Charges))
	}
	r.DrawText(0, hudY+2, strings.Join(extras, "  "), tcell.StyleDefault.Foreground(tcell.ColorAqua))

	start := max(len(log)-3, 0)
	for i, l := range log[start:] {
		r.DrawText(0, hudY+3+i, l.Text, tcell.StyleDefault.Foreground(l.Color))
	}

	x := 0
	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	for _, b := range buttons {
		r.DrawText(x, hudY+HUDRows-1, b.label, style)
		x += runewidth.StringWidth(b.label) + buttonGap
	}
}

// ButtonAt reports which direction button, if any, covers screen (sx, sy).
func (r *Renderer) ButtonAt(sx, sy int) (dungeon.Button, bool) {
	_, screenH := r.screen.Size()
	if sy != screenH-1 {
		return 0, false
	}
	x := 0
	for _, b := range buttons {
		w := runewidth.StringWidth(b.label)
		if sx >= x && sx < x+w {
			return b.btn, true
		}
		x += w + buttonGap
	}
	return 0, false
}

// DrawPanel draws a bordered box centred on the screen with a title and
// lines of text. Modals use it for quizzes, rewards and summaries.
func (r *Renderer) DrawPanel(title string, lines []Line) {
	sw, sh := r.screen.Size()
	width := runewidth.StringWidth(title) + 4
	for _, l := range lines {
		width = max(width, runewidth.StringWidth(l.Text)+4)
	}
	width = min(width, sw)
	height := min(len(lines)+4, sh)
	x0 := max((sw-width)/2, 0)
	y0 := max((sh-height)/2, 0)

	border := tcell.StyleDefault.Foreground(tcell.ColorGold).Background(tcell.ColorBlack)
	fill := tcell.StyleDefault.Background(tcell.ColorBlack)
	for y := y0; y < y0+height; y++ {
		for x := x0; x < x0+width; x++ {
			ch := ' '
			st := fill
			switch {
			case y == y0 && x == x0:
				ch, st = '┌', border
			case y == y0 && x == x0+width-1:
				ch, st = '┐', border
			case y == y0+height-1 && x == x0:
				ch, st = '└', border
			case y == y0+height-1 && x == x0+width-1:
				ch, st = '┘', border
			case y == y0 || y == y0+height-1:
				ch, st = '─', border
			case x == x0 || x == x0+width-1:
				ch, st = '│', border
			}
			r.screen.SetContent(x, y, ch, nil, st)
		}
	}
	r.DrawText(x0+2, y0+1, title, border.Bold(true))
	for i, l := range lines {
		if y0+3+i >= y0+height-1 {
			break
		}
		r.DrawText(x0+2, y0+3+i, l.Text, fill.Foreground(l.Color))
	}
}

// Show flushes the frame to the terminal.
func (r *Renderer) Show() { r.screen.Show() }

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// DrawText writes text starting at (x, y), advancing by each rune's display
// width.
func (r *Renderer) DrawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		r.screen.SetContent(col, y, ch, nil, style)
		col += w
	}
}
