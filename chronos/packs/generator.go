package packs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/projectchronos/chronos/chronos/database/models"
	"github.com/projectchronos/chronos/chronos/database/repositories"
)

// CreatePacks generates count packs from a resolved template and persists
// them. Each pack's cards are drawn independently from the template's rarity
// distribution. The batch is all-or-nothing: if the template's max supply
// would be exceeded, nothing is generated and ErrSupplyExhausted is
// returned.
func (s *Service) CreatePacks(ctx context.Context, template *models.CardPackTemplate, count int) (*CreatedPacks, error) {
	if count <= 0 {
		return nil, fmt.Errorf("pack count must be positive, got %d", count)
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	batch := make([]*models.CardPack, 0, count)
	packIDs := make([]string, 0, count)
	for i := 0; i < count; i++ {
		cards, err := drawCards(template, s.rnd)
		if err != nil {
			return nil, err
		}
		packID := uuid.NewString()
		batch = append(batch, &models.CardPack{
			PackID:     packID,
			TemplateID: template.ID,
			Type:       template.Type,
			Status:     models.PackStatusAvailable,
			Cards:      cards,
			CreatedAt:  now,
		})
		packIDs = append(packIDs, packID)
	}

	if err := s.packs.CreateBatch(ctx, template, batch); err != nil {
		if errors.Is(err, repositories.ErrSupplyExhausted) {
			return nil, fmt.Errorf("%w: template %d capped at %d packs", ErrSupplyExhausted, template.ID, derefSupply(template.MaxSupply))
		}
		return nil, fmt.Errorf("failed to persist pack batch: %w", err)
	}

	slog.Info("Packs generated",
		slog.String("type", "generator"),
		slog.Int64("template_id", template.ID),
		slog.String("pack_type", template.Type.String()),
		slog.Int("count", count))

	return &CreatedPacks{
		TemplateID: template.ID,
		Count:      count,
		PackIDs:    packIDs,
	}, nil
}

// CreatePacksByID is a convenience wrapper that resolves the template by id
// first. It fails with the same errors resolution can produce.
func (s *Service) CreatePacksByID(ctx context.Context, templateID int64, count int) (*CreatedPacks, error) {
	template, err := s.ResolveTemplateByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return s.CreatePacks(ctx, template, count)
}

// CreatePacksByType resolves the active template for the type, then
// generates.
func (s *Service) CreatePacksByType(ctx context.Context, packType models.PackType, count int) (*CreatedPacks, error) {
	template, err := s.ResolveTemplateByType(ctx, packType)
	if err != nil {
		return nil, err
	}
	return s.CreatePacks(ctx, template, count)
}

func derefSupply(max *int) int {
	if max == nil {
		return 0
	}
	return *max
}
