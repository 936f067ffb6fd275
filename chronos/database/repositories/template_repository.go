package repositories

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/projectchronos/chronos/chronos/database/models"
	"github.com/uptrace/bun"
)

var (
	// ErrAmbiguousTemplate signals more than one active template for a pack
	// type. The partial unique index makes this unreachable; it is surfaced
	// loudly if a migration ever breaks the invariant.
	ErrAmbiguousTemplate = errors.New("multiple active templates for pack type")
)

const templateCacheSize = 32

type TemplateRepository interface {
	GetByID(ctx context.Context, id int64) (*models.CardPackTemplate, error)
	GetActiveByType(ctx context.Context, packType models.PackType) (*models.CardPackTemplate, error)
	Create(ctx context.Context, template *models.CardPackTemplate) error
	// CreateIfAbsent persists the template unless an active template of the
	// same type already exists. Returns true only when this call created it.
	CreateIfAbsent(ctx context.Context, template *models.CardPackTemplate) (bool, error)
	Deactivate(ctx context.Context, id int64) error
}

type templateRepository struct {
	*BaseRepository
	// Resolved active templates by type. Templates change rarely; entries
	// are dropped whenever a write touches the type.
	cache *lru.Cache
}

func NewTemplateRepository(db *bun.DB) TemplateRepository {
	cache, _ := lru.New(templateCacheSize)
	return &templateRepository{
		BaseRepository: NewBaseRepository(db),
		cache:          cache,
	}
}

func (r *templateRepository) GetByID(ctx context.Context, id int64) (*models.CardPackTemplate, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	template := new(models.CardPackTemplate)
	err := r.DB().NewSelect().
		Model(template).
		Where("tpl.id = ?", id).
		Scan(timeoutCtx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "card_pack_template", id, err)
	}
	return template, nil
}

func (r *templateRepository) GetActiveByType(ctx context.Context, packType models.PackType) (*models.CardPackTemplate, error) {
	if cached, ok := r.cache.Get(packType); ok {
		return cached.(*models.CardPackTemplate), nil
	}

	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var templates []*models.CardPackTemplate
	err := r.DB().NewSelect().
		Model(&templates).
		Where("tpl.type = ?", packType).
		Where("tpl.active = ?", true).
		Order("tpl.id ASC").
		Limit(2).
		Scan(timeoutCtx)
	if err != nil {
		return nil, r.HandleError("get_active", "card_pack_template", err)
	}

	switch len(templates) {
	case 0:
		return nil, &NotFoundError{Entity: "card_pack_template", ID: packType}
	case 1:
		r.cache.Add(packType, templates[0])
		return templates[0], nil
	default:
		return nil, ErrAmbiguousTemplate
	}
}

func (r *templateRepository) Create(ctx context.Context, template *models.CardPackTemplate) error {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	template.CreatedAt = now
	template.UpdatedAt = now

	_, err := r.DB().NewInsert().
		Model(template).
		Exec(timeoutCtx)
	if err != nil {
		if isUniqueViolation(err) {
			return &ConflictError{Entity: "card_pack_template", Field: "type", Value: template.Type}
		}
		return r.HandleError("create", "card_pack_template", err)
	}

	r.cache.Remove(template.Type)
	return nil
}

func (r *templateRepository) CreateIfAbsent(ctx context.Context, template *models.CardPackTemplate) (bool, error) {
	err := r.Create(ctx, template)
	if err != nil {
		if IsConflict(err) {
			// A concurrent bootstrap won the race; that is still success.
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *templateRepository) Deactivate(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	template := new(models.CardPackTemplate)
	_, err := r.DB().NewUpdate().
		Model(template).
		Set("active = ?", false).
		Set("updated_at = ?", time.Now()).
		Where("tpl.id = ?", id).
		Returning("*").
		Exec(timeoutCtx, template)
	if err != nil {
		return r.HandleErrorWithID("deactivate", "card_pack_template", id, err)
	}

	r.cache.Remove(template.Type)
	return nil
}
