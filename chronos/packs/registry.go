package packs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/projectchronos/chronos/chronos/database/models"
	"github.com/projectchronos/chronos/chronos/database/repositories"
)

// welcomeCardsPerPack and the bootstrap pool below define the default
// welcome template seeded on startup.
const welcomeCardsPerPack = 3

func welcomeRarityDistribution() models.RarityDistribution {
	return models.RarityDistribution{
		models.RarityCommon:    0.6,
		models.RarityRare:      0.25,
		models.RarityEpic:      0.1,
		models.RarityLegendary: 0.05,
	}
}

func welcomeCardPool() []models.CardDefinition {
	return []models.CardDefinition{
		{Name: "Tideworn Keeper", Description: "A patient guardian of the first hour.", Image: "cards/tideworn-keeper.png", Element: models.ElementChronos, Class: models.CardClassMelee, Power: 3, Health: 5, Agility: 2, Rarity: models.RarityCommon},
		{Name: "Gloom Stalker", Description: "Hunts in the space between moments.", Image: "cards/gloom-stalker.png", Element: models.ElementUmbra, Class: models.CardClassMelee, Power: 4, Health: 3, Agility: 4, Rarity: models.RarityCommon},
		{Name: "Skyshard Archer", Description: "Looses arrows of condensed light.", Image: "cards/skyshard-archer.png", Element: models.ElementAether, Class: models.CardClassRanged, Power: 3, Health: 2, Agility: 5, Rarity: models.RarityCommon},
		{Name: "Frostbound Sentry", Description: "Never sleeps, never thaws.", Image: "cards/frostbound-sentry.png", Element: models.ElementCryo, Class: models.CardClassRanged, Power: 2, Health: 6, Agility: 1, Rarity: models.RarityCommon},
		{Name: "Hourglass Duelist", Description: "Strikes twice in the same second.", Image: "cards/hourglass-duelist.png", Element: models.ElementChronos, Class: models.CardClassMelee, Power: 5, Health: 4, Agility: 6, Rarity: models.RarityRare},
		{Name: "Veilpiercer", Description: "Sees through every shadow it casts.", Image: "cards/veilpiercer.png", Element: models.ElementUmbra, Class: models.CardClassRanged, Power: 6, Health: 3, Agility: 5, Rarity: models.RarityRare},
		{Name: "Aurora Warden", Description: "Wears the dawn as armor.", Image: "cards/aurora-warden.png", Element: models.ElementAether, Class: models.CardClassMelee, Power: 7, Health: 7, Agility: 4, Rarity: models.RarityEpic},
		{Name: "Glacier Colossus", Description: "A winter that walks.", Image: "cards/glacier-colossus.png", Element: models.ElementCryo, Class: models.CardClassMelee, Power: 8, Health: 10, Agility: 1, Rarity: models.RarityEpic},
		{Name: "Chronarch Primus", Description: "The first and last keeper of the spiral.", Image: "cards/chronarch-primus.png", Element: models.ElementChronos, Class: models.CardClassRanged, Power: 10, Health: 8, Agility: 8, Rarity: models.RarityLegendary},
	}
}

// EnsureWelcomePackTemplateExists makes sure exactly one active welcome
// template is persisted. Idempotent: concurrent callers race on the store's
// uniqueness constraint and the losers see "already exists". Returns true
// only on the call that created it.
func (s *Service) EnsureWelcomePackTemplateExists(ctx context.Context) (bool, error) {
	template := &models.CardPackTemplate{
		Type:               models.PackTypeWelcome,
		RarityDistribution: welcomeRarityDistribution(),
		CardPool:           welcomeCardPool(),
		CardsPerPack:       welcomeCardsPerPack,
		Active:             true,
	}
	if err := template.Validate(); err != nil {
		return false, fmt.Errorf("default welcome template is invalid: %w", err)
	}

	created, err := s.templates.CreateIfAbsent(ctx, template)
	if err != nil {
		return false, fmt.Errorf("failed to bootstrap welcome template: %w", err)
	}
	return created, nil
}

// CreateTemplate registers a new active template. At most one active
// template per type can exist; a second registration fails with
// ErrTemplateExists until the current one is deactivated.
func (s *Service) CreateTemplate(ctx context.Context, template *models.CardPackTemplate) error {
	template.Active = true
	if err := template.Validate(); err != nil {
		return err
	}
	if err := s.templates.Create(ctx, template); err != nil {
		if repositories.IsConflict(err) {
			return fmt.Errorf("%w: active %s template already registered", ErrTemplateExists, template.Type)
		}
		return fmt.Errorf("failed to create template: %w", err)
	}

	slog.Info("Template registered",
		slog.String("type", "registry"),
		slog.Int64("template_id", template.ID),
		slog.String("pack_type", template.Type.String()))
	return nil
}

// DeactivateTemplate retires a template. Existing packs stay claimable;
// only generation against the template stops.
func (s *Service) DeactivateTemplate(ctx context.Context, id int64) error {
	if err := s.templates.Deactivate(ctx, id); err != nil {
		return mapResolveError(err)
	}
	slog.Info("Template deactivated",
		slog.String("type", "registry"),
		slog.Int64("template_id", id))
	return nil
}

// ResolveTemplateByID resolves and validates a template by id.
func (s *Service) ResolveTemplateByID(ctx context.Context, id int64) (*models.CardPackTemplate, error) {
	template, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, mapResolveError(err)
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}
	return template, nil
}

// ResolveTemplateByType resolves and validates the active template for a
// pack type.
func (s *Service) ResolveTemplateByType(ctx context.Context, packType models.PackType) (*models.CardPackTemplate, error) {
	if !packType.Valid() {
		return nil, fmt.Errorf("%w: invalid pack type %q", ErrNotFound, packType)
	}
	template, err := s.templates.GetActiveByType(ctx, packType)
	if err != nil {
		return nil, mapResolveError(err)
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}
	return template, nil
}

func mapResolveError(err error) error {
	switch {
	case repositories.IsNotFound(err):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, repositories.ErrAmbiguousTemplate):
		return fmt.Errorf("%w: %v", ErrAmbiguousTemplate, err)
	default:
		return fmt.Errorf("template resolution failed: %w", err)
	}
}
