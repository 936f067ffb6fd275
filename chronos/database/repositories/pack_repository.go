package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/projectchronos/chronos/chronos/database/models"
	"github.com/uptrace/bun"
)

var (
	// ErrSupplyExhausted signals that a batch insert would push a template
	// past its max supply. Nothing is inserted in that case.
	ErrSupplyExhausted = errors.New("pack supply exhausted for template")
	// ErrNoPackAvailable signals that no available pack of the requested
	// type exists to claim.
	ErrNoPackAvailable = errors.New("no available pack of requested type")
)

type PackRepository interface {
	// CreateBatch inserts the batch atomically, enforcing the template's max
	// supply. Either every pack is inserted or none is.
	CreateBatch(ctx context.Context, template *models.CardPackTemplate, packs []*models.CardPack) error
	// TryClaimOne atomically transitions the oldest available pack of the
	// given type to claimed. Exactly one concurrent caller wins per pack.
	TryClaimOne(ctx context.Context, packType models.PackType, ownerID string, at time.Time) (*models.CardPack, error)
	CountAvailable(ctx context.Context, packType models.PackType) (int, error)
	CountByTemplate(ctx context.Context, templateID int64) (int, error)
	GetByPackID(ctx context.Context, packID string) (*models.CardPack, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.CardPack, error)
}

type packRepository struct {
	*BaseRepository
}

func NewPackRepository(db *bun.DB) PackRepository {
	return &packRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *packRepository) CreateBatch(ctx context.Context, template *models.CardPackTemplate, packs []*models.CardPack) error {
	if len(packs) == 0 {
		return nil
	}

	timeoutCtx, cancel := r.WithCustomTimeout(ctx, batchQueryTimeout)
	defer cancel()

	err := r.DB().RunInTx(timeoutCtx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(ctx context.Context, tx bun.Tx) error {
		if template.MaxSupply != nil {
			// Lock the template row so concurrent generation requests
			// serialize the cap check against the insert.
			locked := new(models.CardPackTemplate)
			err := tx.NewSelect().
				Model(locked).
				Where("tpl.id = ?", template.ID).
				For("UPDATE").
				Scan(ctx)
			if err != nil {
				return err
			}

			existing, err := tx.NewSelect().
				Model((*models.CardPack)(nil)).
				Where("cp.template_id = ?", template.ID).
				Count(ctx)
			if err != nil {
				return err
			}
			if existing+len(packs) > *template.MaxSupply {
				return ErrSupplyExhausted
			}
		}

		_, err := tx.NewInsert().
			Model(&packs).
			Exec(ctx)
		return err
	})

	if err != nil {
		if errors.Is(err, ErrSupplyExhausted) {
			return ErrSupplyExhausted
		}
		return r.HandleError("create_batch", "card_pack", err)
	}
	return nil
}

func (r *packRepository) TryClaimOne(ctx context.Context, packType models.PackType, ownerID string, at time.Time) (*models.CardPack, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	// Single conditional UPDATE: the sub-select picks the oldest available
	// pack and SKIP LOCKED keeps concurrent claimers from ever selecting the
	// same row. A claimer that matches nothing is out of stock.
	pack := new(models.CardPack)
	res, err := r.DB().NewUpdate().
		Model(pack).
		Set("status = ?", models.PackStatusClaimed).
		Set("owner_id = ?", ownerID).
		Set("claimed_at = ?", at).
		Where(`cp.id = (
			SELECT id FROM card_packs
			WHERE type = ? AND status = ?
			ORDER BY id ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)`, packType, models.PackStatusAvailable).
		Where("cp.status = ?", models.PackStatusAvailable).
		Returning("*").
		Exec(timeoutCtx, pack)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoPackAvailable
		}
		return nil, r.HandleError("try_claim_one", "card_pack", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, r.HandleError("try_claim_one", "card_pack", err)
	}
	if affected == 0 {
		return nil, ErrNoPackAvailable
	}
	return pack, nil
}

func (r *packRepository) CountAvailable(ctx context.Context, packType models.PackType) (int, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	count, err := r.DB().NewSelect().
		Model((*models.CardPack)(nil)).
		Where("cp.type = ?", packType).
		Where("cp.status = ?", models.PackStatusAvailable).
		Count(timeoutCtx)
	if err != nil {
		return 0, r.HandleError("count_available", "card_pack", err)
	}
	return count, nil
}

func (r *packRepository) CountByTemplate(ctx context.Context, templateID int64) (int, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	count, err := r.DB().NewSelect().
		Model((*models.CardPack)(nil)).
		Where("cp.template_id = ?", templateID).
		Count(timeoutCtx)
	if err != nil {
		return 0, r.HandleError("count_by_template", "card_pack", err)
	}
	return count, nil
}

func (r *packRepository) GetByPackID(ctx context.Context, packID string) (*models.CardPack, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	pack := new(models.CardPack)
	err := r.DB().NewSelect().
		Model(pack).
		Where("cp.pack_id = ?", packID).
		Scan(timeoutCtx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "card_pack", packID, err)
	}
	return pack, nil
}

func (r *packRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.CardPack, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var packs []*models.CardPack
	err := r.DB().NewSelect().
		Model(&packs).
		Where("cp.owner_id = ?", ownerID).
		Where("cp.status = ?", models.PackStatusClaimed).
		Order("cp.claimed_at ASC", "cp.id ASC").
		Scan(timeoutCtx)
	if err != nil {
		return nil, r.HandleError("list_by_owner", "card_pack", err)
	}
	return packs, nil
}
