// Package packs is the allocation-and-claim core: template registry and
// bootstrap, pack generation, inventory accounting, claim arbitration, and
// content preview. Persistence and the on-chain ledger are consumed through
// narrow interfaces; the atomic primitives (claim-one, supply reservation,
// bootstrap uniqueness) are contracts the stores must provide.
package packs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/projectchronos/chronos/chronos/database/models"
	"github.com/projectchronos/chronos/chronos/database/repositories"
)

// TemplateStore persists pack templates.
type TemplateStore interface {
	GetByID(ctx context.Context, id int64) (*models.CardPackTemplate, error)
	GetActiveByType(ctx context.Context, packType models.PackType) (*models.CardPackTemplate, error)
	Create(ctx context.Context, template *models.CardPackTemplate) error
	CreateIfAbsent(ctx context.Context, template *models.CardPackTemplate) (bool, error)
	Deactivate(ctx context.Context, id int64) error
}

// PackStore persists generated packs and supplies the two atomic primitives
// the core depends on: all-or-nothing supply-capped batch insert and
// claim-one-matching-row.
type PackStore interface {
	CreateBatch(ctx context.Context, template *models.CardPackTemplate, packs []*models.CardPack) error
	TryClaimOne(ctx context.Context, packType models.PackType, ownerID string, at time.Time) (*models.CardPack, error)
	CountAvailable(ctx context.Context, packType models.PackType) (int, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.CardPack, error)
}

// ClaimLog is the append-only claim audit trail.
type ClaimLog interface {
	Append(ctx context.Context, record *models.ClaimRecord) error
	SetOnChainResult(ctx context.Context, packID string, status models.OnChainStatus, ref string) error
	ListByUser(ctx context.Context, userID string) ([]*models.ClaimRecord, error)
}

// Minter is the idempotent on-chain assignment capability, keyed by pack id.
type Minter interface {
	MintAndAssign(ctx context.Context, cards []models.CardInstance, ownerID, idempotencyKey string) (ref string, err error)
}

// Service implements the card pack service contract.
type Service struct {
	templates TemplateStore
	packs     PackStore
	claims    ClaimLog
	minter    Minter
	art       ArtResolver
	rnd       *lockedRand
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRand injects the random source used for card draws. Draws are
// reproducible given a seeded source.
func WithRand(rnd *rand.Rand) Option {
	return func(s *Service) { s.rnd = newLockedRand(rnd) }
}

// WithArtResolver injects the card art URL resolver.
func WithArtResolver(art ArtResolver) Option {
	return func(s *Service) { s.art = art }
}

// WithClock injects the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(templates TemplateStore, packs PackStore, claims ClaimLog, minter Minter, opts ...Option) *Service {
	s := &Service{
		templates: templates,
		packs:     packs,
		claims:    claims,
		minter:    minter,
		rnd:       newLockedRand(rand.New(rand.NewSource(time.Now().UnixNano()))),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ClaimPack selects exactly one available pack of the given type, assigns it
// to the user, records the claim, then triggers the on-chain assignment.
// Expected conditions (out of stock, on-chain failure) are reported in the
// result; only infrastructure faults come back as errors.
func (s *Service) ClaimPack(ctx context.Context, userID string, packType models.PackType) (*ClaimResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("claim requires a user id")
	}
	if !packType.Valid() {
		return &ClaimResult{
			BaseServiceResult: BaseServiceResult{
				Message: fmt.Sprintf("unknown pack type %q", packType),
			},
			Code: ClaimCodeInvalidType,
		}, nil
	}

	claimedAt := s.now()
	pack, err := s.packs.TryClaimOne(ctx, packType, userID, claimedAt)
	if err != nil {
		if errors.Is(err, repositories.ErrNoPackAvailable) {
			return &ClaimResult{
				BaseServiceResult: BaseServiceResult{
					Message: fmt.Sprintf("no %s packs available", packType),
				},
				Code: ClaimCodeOutOfStock,
			}, nil
		}
		return nil, fmt.Errorf("claim selection failed: %w", err)
	}

	slog.Info("Pack claimed",
		slog.String("type", "claim"),
		slog.String("pack_id", pack.PackID),
		slog.String("pack_type", packType.String()),
		slog.String("user_id", userID))

	record := &models.ClaimRecord{
		UserID:        userID,
		PackID:        pack.PackID,
		ClaimedAt:     claimedAt,
		OnChainResult: models.OnChainPending,
	}
	if err := s.claims.Append(ctx, record); err != nil {
		// The pack transition is durable; losing the audit row is an
		// operational problem, not a reason to unwind the claim.
		slog.Error("Failed to append claim record",
			slog.String("pack_id", pack.PackID),
			slog.Any("error", err))
	}

	result := &ClaimResult{
		BaseServiceResult: BaseServiceResult{
			Success: true,
			Message: fmt.Sprintf("claimed pack %s", pack.PackID),
		},
		Code: ClaimCodeOK,
		Pack: s.projectPack(pack),
	}

	// The pack row is already durably claimed; no lock is held across the
	// ledger call and the pack id makes a retry safe.
	ref, err := s.minter.MintAndAssign(ctx, pack.Cards, userID, pack.PackID)
	if err != nil {
		slog.Error("On-chain assignment failed",
			slog.String("pack_id", pack.PackID),
			slog.Any("error", err))
		if logErr := s.claims.SetOnChainResult(ctx, pack.PackID, models.OnChainFailed, ""); logErr != nil {
			slog.Error("Failed to record on-chain failure",
				slog.String("pack_id", pack.PackID),
				slog.Any("error", logErr))
		}
		result.OnChain = models.OnChainFailed
		result.Message = fmt.Sprintf("claimed pack %s; on-chain assignment failed and can be retried", pack.PackID)
		return result, nil
	}

	if logErr := s.claims.SetOnChainResult(ctx, pack.PackID, models.OnChainSucceeded, ref); logErr != nil {
		slog.Error("Failed to record on-chain success",
			slog.String("pack_id", pack.PackID),
			slog.Any("error", logErr))
	}
	result.OnChain = models.OnChainSucceeded
	result.OnChainRef = ref
	return result, nil
}

// GetPacksRemaining counts available packs of the type. Unknown types count
// as zero, not as an error.
func (s *Service) GetPacksRemaining(ctx context.Context, packType models.PackType) (int, error) {
	if !packType.Valid() {
		return 0, nil
	}
	count, err := s.packs.CountAvailable(ctx, packType)
	if err != nil {
		return 0, fmt.Errorf("failed to count available packs: %w", err)
	}
	return count, nil
}

// GetOwnedPacks lists the user's claimed packs, oldest claim first. The
// returned slice is safe to re-enumerate.
func (s *Service) GetOwnedPacks(ctx context.Context, userID string) ([]ExpressPack, error) {
	if userID == "" {
		return nil, fmt.Errorf("ownership query requires a user id")
	}
	owned, err := s.packs.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned packs: %w", err)
	}

	out := make([]ExpressPack, 0, len(owned))
	for _, pack := range owned {
		out = append(out, *s.projectPack(pack))
	}
	return out, nil
}

// GetClaimHistory lists the user's claim audit trail, oldest first.
func (s *Service) GetClaimHistory(ctx context.Context, userID string) ([]ExpressClaim, error) {
	if userID == "" {
		return nil, fmt.Errorf("claim history query requires a user id")
	}
	records, err := s.claims.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list claim records: %w", err)
	}

	out := make([]ExpressClaim, 0, len(records))
	for _, record := range records {
		out = append(out, ExpressClaim{
			PackID:     record.PackID,
			ClaimedAt:  record.ClaimedAt,
			OnChain:    record.OnChainResult.String(),
			OnChainRef: record.OnChainRef,
		})
	}
	return out, nil
}
