package render

import (
	"quiz-dungeon/assets"
	"quiz-dungeon/internal/dungeon"
	"quiz-dungeon/internal/gamemap"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDRows is the number of screen rows reserved below the map.
const HUDRows = 7

// View is the read-only part of a run the renderer draws.
type View interface {
	Grid() *gamemap.Grid
	Player() gamemap.Point
	Start() gamemap.Point
	Encounters() []dungeon.Encounter
	Tiles() []dungeon.SpecialTile
	Progression() dungeon.Progression
}

// Renderer draws a dungeon run onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(w, max(h-HUDRows, 0)),
	}
}

// Resize re-reads the screen size after a resize event.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = max(h-HUDRows, 0)
}

// Camera exposes the camera for tap hit-testing.
func (r *Renderer) Camera() *Camera { return r.camera }

// DrawFrame clears the screen and draws terrain, tiles, encounters and the
// player.
func (r *Renderer) DrawFrame(v View) {
	r.screen.Clear()
	g := v.Grid()
	if g == nil || g.Validate() != nil {
		return
	}
	r.camera.Fit(g.Width, g.Height)
	theme := ThemeFor(v.Progression().Intensity)
	r.drawGrid(g, v.Start(), theme)
	r.drawTiles(v.Tiles(), theme)
	r.drawEncounters(v.Encounters())
	p := v.Player()
	r.drawAt(p.X, p.Y, assets.GlyphPlayer)
}

func (r *Renderer) drawGrid(g *gamemap.Grid, start gamemap.Point, theme WaveTiles) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y)
			glyph := theme.Floor
			switch {
			case c.Wall:
				glyph = theme.Wall
			case x == start.X && y == start.Y:
				glyph = assets.GlyphStart
			case c.Visited:
				glyph = theme.Trail
			}
			r.drawAt(x, y, glyph)
		}
	}
}

func (r *Renderer) drawTiles(tiles []dungeon.SpecialTile, theme WaveTiles) {
	for _, t := range tiles {
		glyph := assets.GlyphUnknown
		switch {
		case t.Triggered:
			glyph = theme.Spent
		case t.Revealed:
			if g, ok := assets.TileGlyphs[t.Kind]; ok {
				glyph = g
			}
		}
		r.drawAt(t.X, t.Y, glyph)
	}
}

func (r *Renderer) drawEncounters(encs []dungeon.Encounter) {
	for _, e := range encs {
		glyph := assets.GlyphUnknown
		if m, ok := assets.MonsterByKey(e.SpriteKey); ok {
			glyph = m.Glyph
		}
		r.drawAt(e.X, e.Y, glyph)
	}
}

func (r *Renderer) drawAt(x, y int, glyph string) {
	sx, sy, ok := r.camera.WorldToScreen(x, y)
	if !ok {
		return
	}
	r.putGlyph(sx, sy, glyph, tcell.StyleDefault.Background(tcell.ColorBlack))
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
