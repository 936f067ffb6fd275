package packs

import (
	"math/rand"
	"testing"

	"github.com/projectchronos/chronos/chronos/database/models"
)

func drawTestTemplate() *models.CardPackTemplate {
	return &models.CardPackTemplate{
		ID:   1,
		Type: models.PackTypeWelcome,
		RarityDistribution: models.RarityDistribution{
			models.RarityCommon: 0.7,
			models.RarityRare:   0.3,
		},
		CardPool: []models.CardDefinition{
			{Name: "Tideworn Keeper", Element: models.ElementChronos, Class: models.CardClassMelee, Power: 3, Health: 5, Agility: 2, Rarity: models.RarityCommon},
			{Name: "Gloom Stalker", Element: models.ElementUmbra, Class: models.CardClassMelee, Power: 4, Health: 3, Agility: 4, Rarity: models.RarityCommon},
			{Name: "Hourglass Duelist", Element: models.ElementChronos, Class: models.CardClassMelee, Power: 5, Health: 4, Agility: 6, Rarity: models.RarityRare},
		},
		CardsPerPack: 4,
		Active:       true,
	}
}

func Test_drawCards_Count(t *testing.T) {
	template := drawTestTemplate()
	rnd := newLockedRand(rand.New(rand.NewSource(1)))

	cards, err := drawCards(template, rnd)
	if err != nil {
		t.Fatalf("drawCards() error = %v", err)
	}
	if len(cards) != template.CardsPerPack {
		t.Errorf("drawCards() returned %d cards, want %d", len(cards), template.CardsPerPack)
	}
	for _, card := range cards {
		if card.Name == "" {
			t.Errorf("drawCards() produced a card without a name")
		}
	}
}

func Test_drawCards_Reproducible(t *testing.T) {
	template := drawTestTemplate()

	first, err := drawCards(template, newLockedRand(rand.New(rand.NewSource(42))))
	if err != nil {
		t.Fatalf("drawCards() error = %v", err)
	}
	second, err := drawCards(template, newLockedRand(rand.New(rand.NewSource(42))))
	if err != nil {
		t.Fatalf("drawCards() error = %v", err)
	}

	for i := range first {
		if first[i].Name != second[i].Name {
			t.Errorf("draw %d differs: %q vs %q", i, first[i].Name, second[i].Name)
		}
	}
}

func Test_drawCards_SkipsUndrawableTiers(t *testing.T) {
	template := drawTestTemplate()
	// Weight on a tier with no pool cards must never be drawn.
	template.RarityDistribution[models.RarityLegendary] = 0.9
	rnd := newLockedRand(rand.New(rand.NewSource(7)))

	for i := 0; i < 50; i++ {
		cards, err := drawCards(template, rnd)
		if err != nil {
			t.Fatalf("drawCards() error = %v", err)
		}
		for _, card := range cards {
			if card.Rarity == models.RarityLegendary {
				t.Fatalf("drew a legendary card from an empty legendary pool")
			}
		}
	}
}

func Test_drawCards_ZeroWeightTierNeverDrawn(t *testing.T) {
	template := drawTestTemplate()
	template.RarityDistribution[models.RarityRare] = 0
	rnd := newLockedRand(rand.New(rand.NewSource(11)))

	for i := 0; i < 50; i++ {
		cards, err := drawCards(template, rnd)
		if err != nil {
			t.Fatalf("drawCards() error = %v", err)
		}
		for _, card := range cards {
			if card.Rarity == models.RarityRare {
				t.Fatalf("drew a rare card despite zero weight")
			}
		}
	}
}

func Test_drawCards_DisjointDistributionAndPool(t *testing.T) {
	template := drawTestTemplate()
	template.RarityDistribution = models.RarityDistribution{
		models.RarityLegendary: 1.0,
	}
	rnd := newLockedRand(rand.New(rand.NewSource(3)))

	if _, err := drawCards(template, rnd); err == nil {
		t.Errorf("drawCards() expected error for disjoint distribution and pool")
	}
}
