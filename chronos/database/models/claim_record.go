package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ClaimRecord is the append-only audit trail of successful claims. Rows are
// never updated except for the on-chain leg outcome.
type ClaimRecord struct {
	bun.BaseModel `bun:"table:claim_records,alias:cr"`

	ID            int64         `bun:"id,pk,autoincrement"`
	UserID        string        `bun:"user_id,notnull"`
	PackID        string        `bun:"pack_id,notnull"`
	ClaimedAt     time.Time     `bun:"claimed_at,notnull"`
	OnChainResult OnChainStatus `bun:"on_chain_result,notnull"`
	OnChainRef    string        `bun:"on_chain_ref"`
	CreatedAt     time.Time     `bun:"created_at,notnull"`
}
