package repositories

import (
	"context"
	"time"

	"github.com/projectchronos/chronos/chronos/database/models"
	"github.com/uptrace/bun"
)

type ClaimRepository interface {
	// Append writes one audit record per successful claim. The trail is
	// append-only; only the on-chain leg outcome is ever updated.
	Append(ctx context.Context, record *models.ClaimRecord) error
	SetOnChainResult(ctx context.Context, packID string, status models.OnChainStatus, ref string) error
	ListByUser(ctx context.Context, userID string) ([]*models.ClaimRecord, error)
	ListUnresolved(ctx context.Context, limit int) ([]*models.ClaimRecord, error)
}

type claimRepository struct {
	*BaseRepository
}

func NewClaimRepository(db *bun.DB) ClaimRepository {
	return &claimRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *claimRepository) Append(ctx context.Context, record *models.ClaimRecord) error {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	record.CreatedAt = time.Now()
	if record.OnChainResult == "" {
		record.OnChainResult = models.OnChainPending
	}

	_, err := r.DB().NewInsert().
		Model(record).
		Exec(timeoutCtx)
	return r.HandleError("append", "claim_record", err)
}

func (r *claimRepository) SetOnChainResult(ctx context.Context, packID string, status models.OnChainStatus, ref string) error {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.DB().NewUpdate().
		Model((*models.ClaimRecord)(nil)).
		Set("on_chain_result = ?", status).
		Set("on_chain_ref = ?", ref).
		Where("cr.pack_id = ?", packID).
		Exec(timeoutCtx)
	if err != nil {
		return r.HandleErrorWithID("set_on_chain_result", "claim_record", packID, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "claim_record", ID: packID}
	}
	return nil
}

func (r *claimRepository) ListByUser(ctx context.Context, userID string) ([]*models.ClaimRecord, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var records []*models.ClaimRecord
	err := r.DB().NewSelect().
		Model(&records).
		Where("cr.user_id = ?", userID).
		Order("cr.claimed_at ASC").
		Scan(timeoutCtx)
	if err != nil {
		return nil, r.HandleError("list_by_user", "claim_record", err)
	}
	return records, nil
}

func (r *claimRepository) ListUnresolved(ctx context.Context, limit int) ([]*models.ClaimRecord, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var records []*models.ClaimRecord
	err := r.DB().NewSelect().
		Model(&records).
		Where("cr.on_chain_result != ?", models.OnChainSucceeded).
		Order("cr.claimed_at ASC").
		Limit(limit).
		Scan(timeoutCtx)
	if err != nil {
		return nil, r.HandleError("list_unresolved", "claim_record", err)
	}
	return records, nil
}
