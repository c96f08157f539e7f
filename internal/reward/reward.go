// Package reward defines the reward hand-off contract and the card pool the
// terminal front end offers after a defeated encounter.
package reward

import (
	"fmt"

	"quiz-dungeon/internal/profile"
)

// Request is handed to the reward subsystem after a confirmed defeat.
type Request struct {
	PlayerLevel int
	BossReward  bool
}

// Card is one selectable reward.
type Card struct {
	Name string
	Text string
	Heal int
	Buff profile.Buff
}

// Rand is the random source for card offers.
type Rand interface {
	Intn(n int) int
}

// Store is the part of the player profile a card can touch.
type Store interface {
	HP() int
	SetHP(v int)
	AddBuff(b profile.Buff)
}

var pool = []func(level int) Card{
	func(level int) Card {
		n := 10 * level
		return Card{Name: "Potion", Text: fmt.Sprintf("Restore %d HP", n), Heal: n}
	},
	func(level int) Card {
		return Card{Name: "Aegis", Text: "Halve the next 2 traps",
			Buff: profile.Buff{Kind: profile.BuffShield, Magnitude: 50, Charges: 2}}
	},
	func(level int) Card {
		return Card{Name: "Clover", Text: "Treasure pays more",
			Buff: profile.Buff{Kind: profile.BuffLucky, Magnitude: 25 * level, Charges: 3}}
	},
	func(level int) Card {
		return Card{Name: "Boots", Text: "Next 15 steps ignore the cooldown",
			Buff: profile.Buff{Kind: profile.BuffSwift, Charges: 15}}
	},
	func(level int) Card {
		return Card{Name: "Whetstone", Text: "Double damage next fight",
			Buff: profile.Buff{Kind: profile.BuffDoubleDamage, Charges: 1}}
	},
	func(level int) Card {
		return Card{Name: "Crown", Text: "Double rewards next fight",
			Buff: profile.Buff{Kind: profile.BuffDoubleRewards, Charges: 1}}
	},
}

// Offer draws three distinct cards. Boss rewards scale one level higher.
func Offer(req Request, rng Rand) []Card {
	level := max(req.PlayerLevel, 1)
	if req.BossReward {
		level++
	}
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	for i := len(idx) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	cards := make([]Card, 0, 3)
	for _, i := range idx[:3] {
		cards = append(cards, pool[i](level))
	}
	return cards
}

// Apply grants c to the player.
func Apply(c Card, s Store) {
	if c.Heal > 0 {
		s.SetHP(s.HP() + c.Heal)
	}
	if c.Buff.Kind != "" {
		s.AddBuff(c.Buff)
	}
}
