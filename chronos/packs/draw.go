package packs

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/projectchronos/chronos/chronos/database/models"
)

// lockedRand guards a rand.Rand for concurrent draws. Injecting a seeded
// source makes draws reproducible in tests.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newLockedRand(rnd *rand.Rand) *lockedRand {
	return &lockedRand{rnd: rnd}
}

func (lr *lockedRand) Float64() float64 {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.rnd.Float64()
}

func (lr *lockedRand) Intn(n int) int {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.rnd.Intn(n)
}

// drawCards materializes one pack's card set from the template: for each
// slot, a rarity tier is drawn by weight, then a card of that tier is picked
// uniformly from the pool. Tiers with weight but no pool cards are excluded
// from the draw.
func drawCards(template *models.CardPackTemplate, rnd *lockedRand) ([]models.CardInstance, error) {
	pool := template.PoolByRarity()

	// Walk rarities in declaration order so cumulative weights are stable
	// regardless of map iteration.
	type tier struct {
		rarity models.Rarity
		weight float64
	}
	var tiers []tier
	var total float64
	for _, rarity := range models.AllRarities() {
		weight := template.RarityDistribution[rarity]
		if weight <= 0 || len(pool[rarity]) == 0 {
			continue
		}
		tiers = append(tiers, tier{rarity: rarity, weight: weight})
		total += weight
	}
	if len(tiers) == 0 {
		return nil, fmt.Errorf("template %d: no drawable rarity tier (distribution and pool are disjoint)", template.ID)
	}

	cards := make([]models.CardInstance, 0, template.CardsPerPack)
	for i := 0; i < template.CardsPerPack; i++ {
		roll := rnd.Float64() * total
		drawn := tiers[len(tiers)-1].rarity
		for _, t := range tiers {
			if roll < t.weight {
				drawn = t.rarity
				break
			}
			roll -= t.weight
		}

		candidates := pool[drawn]
		cards = append(cards, candidates[rnd.Intn(len(candidates))].Instantiate())
	}
	return cards, nil
}
