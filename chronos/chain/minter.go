// Package chain talks to the on-chain ledger gateway that records pack
// ownership after a claim. The gateway wraps the actual contract calls; this
// package only knows mint/transfer/claim-condition operations that are
// idempotent per pack id.
package chain

import (
	"context"

	"github.com/projectchronos/chronos/chronos/database/models"
)

// Minter is the narrow mint-and-assign capability the claim arbiter consumes.
// MintAndAssign must be safe to call more than once with the same
// idempotency key; the gateway deduplicates on it.
type Minter interface {
	MintAndAssign(ctx context.Context, cards []models.CardInstance, ownerID, idempotencyKey string) (ref string, err error)
}

// ClaimConditions mirrors the gateway's per-token claim configuration.
type ClaimConditions struct {
	MaxClaimableSupply int     `json:"maxClaimableSupply"`
	QuantityLimit      int     `json:"quantityLimitPerWallet"`
	Price              float64 `json:"price"`
	Currency           string  `json:"currencyAddress"`
}

// TxResult is the gateway's receipt for a submitted transaction.
type TxResult struct {
	TxHash  string `json:"txHash"`
	TokenID string `json:"tokenId"`
	Status  string `json:"status"`
}
