package models

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// CardPackTemplate is a named recipe packs are generated from.
type CardPackTemplate struct {
	bun.BaseModel `bun:"table:card_pack_templates,alias:tpl"`

	ID                 int64              `bun:"id,pk,autoincrement"`
	Type               PackType           `bun:"type,notnull"`
	RarityDistribution RarityDistribution `bun:"rarity_distribution,type:jsonb,notnull"`
	CardPool           []CardDefinition   `bun:"card_pool,type:jsonb,notnull"`
	CardsPerPack       int                `bun:"cards_per_pack,notnull"`
	MaxSupply          *int               `bun:"max_supply"` // nil = unlimited
	Active             bool               `bun:"active,notnull"`
	CreatedAt          time.Time          `bun:"created_at,notnull"`
	UpdatedAt          time.Time          `bun:"updated_at,notnull"`
}

// Validate checks the template invariants before it is persisted or used for
// a draw.
func (t *CardPackTemplate) Validate() error {
	if !t.Type.Valid() {
		return fmt.Errorf("template has invalid pack type %q", t.Type)
	}
	if err := t.RarityDistribution.Validate(); err != nil {
		return fmt.Errorf("template %d: %w", t.ID, err)
	}
	if len(t.CardPool) == 0 {
		return fmt.Errorf("template %d has an empty card pool", t.ID)
	}
	for _, def := range t.CardPool {
		if err := def.Validate(); err != nil {
			return fmt.Errorf("template %d: %w", t.ID, err)
		}
	}
	if t.CardsPerPack <= 0 {
		return fmt.Errorf("template %d: cards_per_pack must be positive, got %d", t.ID, t.CardsPerPack)
	}
	if t.MaxSupply != nil && *t.MaxSupply <= 0 {
		return fmt.Errorf("template %d: max_supply must be positive when set, got %d", t.ID, *t.MaxSupply)
	}
	return nil
}

// PoolByRarity groups the card pool by rarity tier, preserving pool order
// within each tier.
func (t *CardPackTemplate) PoolByRarity() map[Rarity][]CardDefinition {
	pool := make(map[Rarity][]CardDefinition)
	for _, def := range t.CardPool {
		pool[def.Rarity] = append(pool[def.Rarity], def)
	}
	return pool
}
