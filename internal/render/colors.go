package render

import "github.com/gdamore/tcell/v2"

// WaveTiles holds the emoji glyphs used to draw one wave's terrain.
// Emoji carry their own colors, so states get distinct glyphs instead of
// a terminal FG tint.
type WaveTiles struct {
	Wall  string
	Floor string
	Trail string // floor the player has already walked
	Spent string // special tile that has fired
}

// TileThemes maps intensity (1-indexed, index 0 unused) to its tile set.
var TileThemes = [4]WaveTiles{
	{},
	{
		// Wave 1: mossy entry halls
		Wall:  "🧱",
		Floor: "⬛",
		Trail: "🟫",
		Spent: "▫️",
	},
	{
		// Wave 2: flooded crypt
		Wall:  "🪨",
		Floor: "⬛",
		Trail: "🟦",
		Spent: "▫️",
	},
	{
		// Boss wave: the lair
		Wall:  "🌋",
		Floor: "⬛",
		Trail: "🟥",
		Spent: "▫️",
	},
}

// ThemeFor returns the tile set for an intensity, clamped to the known range.
func ThemeFor(intensity int) WaveTiles {
	return TileThemes[min(max(intensity, 1), len(TileThemes)-1)]
}

// ColorFor maps a message color name to a tcell color. Unknown names fall
// back to light yellow.
func ColorFor(name string) tcell.Color {
	if c := tcell.GetColor(name); c != tcell.ColorDefault {
		return c
	}
	return tcell.ColorLightYellow
}
