package models

import "fmt"

// CardDefinition is a card recipe inside a template's pool. Definitions are
// never persisted on their own; they live in the template's card_pool JSONB
// column.
type CardDefinition struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Element     Element   `json:"element"`
	Class       CardClass `json:"class"`
	Power       int       `json:"power"`
	Health      int       `json:"health"`
	Agility     int       `json:"agility"`
	Rarity      Rarity    `json:"rarity"`
}

func (d CardDefinition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("card definition missing name")
	}
	if !d.Element.Valid() {
		return fmt.Errorf("card %q: invalid element %q", d.Name, d.Element)
	}
	if !d.Class.Valid() {
		return fmt.Errorf("card %q: invalid class %q", d.Name, d.Class)
	}
	if !d.Rarity.Valid() {
		return fmt.Errorf("card %q: invalid rarity %q", d.Name, d.Rarity)
	}
	return nil
}

// CardInstance is a card materialized into a pack at generation time. The
// instance set of a pack is immutable after creation.
type CardInstance struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Element     Element   `json:"element"`
	Class       CardClass `json:"class"`
	Power       int       `json:"power"`
	Health      int       `json:"health"`
	Agility     int       `json:"agility"`
	Rarity      Rarity    `json:"rarity"`
}

// Instantiate copies a definition into a concrete card instance.
func (d CardDefinition) Instantiate() CardInstance {
	return CardInstance(d)
}

// RarityDistribution maps rarity tiers to selection weights. Weights are
// relative, not probabilities; they must be non-negative and sum > 0.
type RarityDistribution map[Rarity]float64

func (rd RarityDistribution) Validate() error {
	if len(rd) == 0 {
		return fmt.Errorf("rarity distribution is empty")
	}
	var sum float64
	for rarity, weight := range rd {
		if !rarity.Valid() {
			return fmt.Errorf("rarity distribution has unknown tier %q", rarity)
		}
		if weight < 0 {
			return fmt.Errorf("rarity %q has negative weight %v", rarity, weight)
		}
		sum += weight
	}
	if sum <= 0 {
		return fmt.Errorf("rarity distribution weights sum to %v, want > 0", sum)
	}
	return nil
}
