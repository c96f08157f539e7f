package reward

import (
	"math/rand"
	"testing"

	"quiz-dungeon/internal/profile"
)

func TestOfferDrawsThreeDistinctCards(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		cards := Offer(Request{PlayerLevel: 2}, rand.New(rand.NewSource(seed)))
		if len(cards) != 3 {
			t.Fatalf("seed=%d: got %d cards", seed, len(cards))
		}
		seen := map[string]bool{}
		for _, c := range cards {
			if seen[c.Name] {
				t.Errorf("seed=%d: duplicate card %s", seed, c.Name)
			}
			seen[c.Name] = true
		}
	}
}

func TestBossRewardScalesHigher(t *testing.T) {
	normal := pool[0](1)
	boss := pool[0](2)
	if boss.Heal <= normal.Heal {
		t.Fatalf("boss potion (%d) should heal more than normal (%d)", boss.Heal, normal.Heal)
	}
}

func TestApplyHealIsClamped(t *testing.T) {
	p := profile.New(50)
	p.SetHP(45)
	Apply(Card{Name: "Potion", Heal: 30}, p)
	if p.HP() != 50 {
		t.Fatalf("HP = %d; want clamped 50", p.HP())
	}
}

func TestApplyBuff(t *testing.T) {
	p := profile.New(50)
	Apply(Card{Name: "Crown", Buff: profile.Buff{Kind: profile.BuffDoubleRewards, Charges: 1}}, p)
	if _, ok := p.Buff(profile.BuffDoubleRewards); !ok {
		t.Fatal("buff card should add its buff")
	}
}
