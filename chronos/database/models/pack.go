package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CardPack is a materialized, immutable bundle of cards. The numeric id
// doubles as creation order: claims are served oldest id first.
type CardPack struct {
	bun.BaseModel `bun:"table:card_packs,alias:cp"`

	ID         int64          `bun:"id,pk,autoincrement"`
	PackID     string         `bun:"pack_id,notnull,unique"` // external uuid, also the mint idempotency key
	TemplateID int64          `bun:"template_id,notnull"`
	Type       PackType       `bun:"type,notnull"`
	Status     PackStatus     `bun:"status,notnull"`
	OwnerID    string         `bun:"owner_id"`
	ClaimedAt  *time.Time     `bun:"claimed_at"`
	Cards      []CardInstance `bun:"cards,type:jsonb,notnull"`
	CreatedAt  time.Time      `bun:"created_at,notnull"`
}
