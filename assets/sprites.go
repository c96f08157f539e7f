// Package assets holds the encounter roster and the glyphs used to draw it.
package assets

import (
	"strings"

	"quiz-dungeon/internal/generate"
)

// Emoji constants used as map glyphs.
const (
	GlyphPlayer  = "🧙"
	GlyphUnknown = "❓"
	GlyphWall    = "🧱"
	GlyphFloor   = "⬛"
	GlyphVisited = "🟫"
	GlyphStart   = "🚪"
)

// Monster is one encounter sprite.
type Monster struct {
	Key   string
	Name  string
	Glyph string
}

// roster lists the sprites available for each difficulty.
var roster = map[generate.Difficulty][]Monster{
	generate.DifficultyEasy: {
		{Key: "slime", Name: "Syntax Slime", Glyph: "🟢"},
		{Key: "bat", Name: "Bug Bat", Glyph: "🦇"},
	},
	generate.DifficultyMedium: {
		{Key: "goblin", Name: "Goblin Parser", Glyph: "👺"},
		{Key: "skeleton", Name: "Null Skeleton", Glyph: "💀"},
	},
	generate.DifficultyHard: {
		{Key: "wraith", Name: "Race Wraith", Glyph: "👻"},
		{Key: "golem", Name: "Legacy Golem", Glyph: "🗿"},
	},
	generate.DifficultyBoss: {
		{Key: "dragon", Name: "Segfault Dragon", Glyph: "🐉"},
	},
}

// MonsterFor picks the n-th sprite for a difficulty, wrapping around.
func MonsterFor(d generate.Difficulty, n int) Monster {
	list := roster[d]
	if len(list) == 0 {
		return Monster{Key: "unknown", Name: "Unknown", Glyph: GlyphUnknown}
	}
	return list[((n%len(list))+len(list))%len(list)]
}

// MonsterByKey looks a sprite up by key.
func MonsterByKey(key string) (Monster, bool) {
	for _, list := range roster {
		for _, m := range list {
			if m.Key == key {
				return m, true
			}
		}
	}
	return Monster{}, false
}

// Label is the display name handed to the quiz, e.g. "Hard · Race Wraith".
func Label(d generate.Difficulty, m Monster) string {
	s := string(d)
	if s == "" {
		return m.Name
	}
	return strings.ToUpper(s[:1]) + s[1:] + " · " + m.Name
}

// TileGlyphs shows each special tile once revealed.
var TileGlyphs = map[generate.TileKind]string{
	generate.TileTreasure: "💰",
	generate.TileTrap:     "🪤",
	generate.TilePowerup:  "⚡",
	generate.TileHeal:     "💖",
	generate.TileBonusXP:  "⭐",
	generate.TileMystery:  "🔮",
	generate.TileTeleport: "🌀",
}
