// Package profile holds the player's persistent profile: hit points and
// buffs. The dungeon never touches these fields directly; every read and
// write goes through the clamped accessors below.
package profile

import "sync"

// BuffKind identifies a temporary player modifier.
type BuffKind string

const (
	BuffShield        BuffKind = "shield"         // softens traps
	BuffLucky         BuffKind = "lucky"          // bigger treasure
	BuffSwift         BuffKind = "swift"          // moves ignore the input cooldown
	BuffDoubleDamage  BuffKind = "double_damage"  // next encounter only
	BuffDoubleRewards BuffKind = "double_rewards" // next encounter only
)

// Buff is an active modifier. Charges counts the uses left; a buff with no
// charges left is removed.
type Buff struct {
	Kind      BuffKind
	Magnitude int
	Charges   int
}

// Profile is the externally owned player record.
type Profile struct {
	mu    sync.Mutex
	hp    int
	maxHP int
	buffs []Buff
}

// New returns a profile at full health.
func New(maxHP int) *Profile {
	maxHP = max(maxHP, 0)
	return &Profile{hp: maxHP, maxHP: maxHP}
}

// HP returns the current hit points.
func (p *Profile) HP() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hp
}

// MaxHP returns the hit point ceiling.
func (p *Profile) MaxHP() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxHP
}

// SetHP stores v clamped to [0, MaxHP].
func (p *Profile) SetHP(v int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hp = min(max(v, 0), p.maxHP)
}

// AddBuff adds b, replacing an existing buff of the same kind when b has
// more charges.
func (p *Profile) AddBuff(b Buff) {
	if b.Charges <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, cur := range p.buffs {
		if cur.Kind == b.Kind {
			if b.Charges > cur.Charges {
				p.buffs[i] = b
			}
			return
		}
	}
	p.buffs = append(p.buffs, b)
}

// Buff returns the active buff of the given kind.
func (p *Profile) Buff(kind BuffKind) (Buff, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range p.buffs {
		if b.Kind == kind {
			return b, true
		}
	}
	return Buff{}, false
}

// RemoveBuff drops the buff of the given kind, if any.
func (p *Profile) RemoveBuff(kind BuffKind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.buffs[:0]
	for _, b := range p.buffs {
		if b.Kind != kind {
			kept = append(kept, b)
		}
	}
	p.buffs = kept
}

// UseBuff spends one charge of kind and reports whether a buff was active.
func (p *Profile) UseBuff(kind BuffKind) (Buff, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, b := range p.buffs {
		if b.Kind != kind {
			continue
		}
		b.Charges--
		if b.Charges <= 0 {
			p.buffs = append(p.buffs[:i], p.buffs[i+1:]...)
		} else {
			p.buffs[i] = b
		}
		return b, true
	}
	return Buff{}, false
}

// Buffs returns a copy of the active buffs.
func (p *Profile) Buffs() []Buff {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Buff, len(p.buffs))
	copy(out, p.buffs)
	return out
}
