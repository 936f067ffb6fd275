package packs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/projectchronos/chronos/chronos/database/models"
	"github.com/projectchronos/chronos/chronos/database/repositories"
	"github.com/projectchronos/chronos/chronos/packs/mock"
	gomock "go.uber.org/mock/gomock"
)

func claimedPack(packID string, userID string, at time.Time) *models.CardPack {
	return &models.CardPack{
		ID:         1,
		PackID:     packID,
		TemplateID: 1,
		Type:       models.PackTypeWelcome,
		Status:     models.PackStatusClaimed,
		OwnerID:    userID,
		ClaimedAt:  &at,
		Cards: []models.CardInstance{
			{Name: "Tideworn Keeper", Element: models.ElementChronos, Class: models.CardClassMelee, Power: 3, Health: 5, Agility: 2, Rarity: models.RarityCommon},
		},
	}
}

func Test_ClaimPack_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pack := claimedPack("pack-1", "user-1", now)

	packStore := mock.NewMockPackStore(ctrl)
	packStore.EXPECT().
		TryClaimOne(gomock.Any(), models.PackTypeWelcome, "user-1", now).
		Return(pack, nil)

	claims := mock.NewMockClaimLog(ctrl)
	claims.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record *models.ClaimRecord) error {
			if record.UserID != "user-1" || record.PackID != "pack-1" {
				t.Errorf("claim record = %+v, want user-1/pack-1", record)
			}
			if record.OnChainResult != models.OnChainPending {
				t.Errorf("claim record on-chain status = %q, want pending", record.OnChainResult)
			}
			return nil
		})
	claims.EXPECT().
		SetOnChainResult(gomock.Any(), "pack-1", models.OnChainSucceeded, "0xabc").
		Return(nil)

	minter := mock.NewMockMinter(ctrl)
	minter.EXPECT().
		MintAndAssign(gomock.Any(), pack.Cards, "user-1", "pack-1").
		Return("0xabc", nil)

	s := NewService(mock.NewMockTemplateStore(ctrl), packStore, claims, minter,
		WithClock(func() time.Time { return now }))

	result, err := s.ClaimPack(context.Background(), "user-1", models.PackTypeWelcome)
	if err != nil {
		t.Fatalf("ClaimPack() error = %v", err)
	}
	if !result.Success {
		t.Errorf("ClaimPack() success = false, want true")
	}
	if result.Code != ClaimCodeOK {
		t.Errorf("ClaimPack() code = %q, want %q", result.Code, ClaimCodeOK)
	}
	if result.OnChain != models.OnChainSucceeded || result.OnChainRef != "0xabc" {
		t.Errorf("ClaimPack() on-chain = %q/%q, want succeeded/0xabc", result.OnChain, result.OnChainRef)
	}
	if result.Pack == nil || result.Pack.PackID != "pack-1" {
		t.Errorf("ClaimPack() pack = %+v, want pack-1", result.Pack)
	}
}

func Test_ClaimPack_OutOfStock(t *testing.T) {
	ctrl := gomock.NewController(t)

	packStore := mock.NewMockPackStore(ctrl)
	packStore.EXPECT().
		TryClaimOne(gomock.Any(), models.PackTypeWelcome, "user-1", gomock.Any()).
		Return(nil, repositories.ErrNoPackAvailable)

	s := NewService(mock.NewMockTemplateStore(ctrl), packStore, mock.NewMockClaimLog(ctrl), mock.NewMockMinter(ctrl))

	result, err := s.ClaimPack(context.Background(), "user-1", models.PackTypeWelcome)
	if err != nil {
		t.Fatalf("ClaimPack() error = %v, want result-level out of stock", err)
	}
	if result.Success {
		t.Errorf("ClaimPack() success = true, want false")
	}
	if result.Code != ClaimCodeOutOfStock {
		t.Errorf("ClaimPack() code = %q, want %q", result.Code, ClaimCodeOutOfStock)
	}
	if result.Pack != nil {
		t.Errorf("ClaimPack() pack = %+v, want nil", result.Pack)
	}
}

func Test_ClaimPack_InvalidType(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewService(mock.NewMockTemplateStore(ctrl), mock.NewMockPackStore(ctrl), mock.NewMockClaimLog(ctrl), mock.NewMockMinter(ctrl))

	result, err := s.ClaimPack(context.Background(), "user-1", models.PackType("bogus"))
	if err != nil {
		t.Fatalf("ClaimPack() error = %v, want result-level rejection", err)
	}
	if result.Success || result.Code != ClaimCodeInvalidType {
		t.Errorf("ClaimPack() = %+v, want invalid_type failure", result)
	}
}

func Test_ClaimPack_EmptyUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewService(mock.NewMockTemplateStore(ctrl), mock.NewMockPackStore(ctrl), mock.NewMockClaimLog(ctrl), mock.NewMockMinter(ctrl))

	if _, err := s.ClaimPack(context.Background(), "", models.PackTypeWelcome); err == nil {
		t.Errorf("ClaimPack() expected error for empty user id")
	}
}

// A failed on-chain leg must not fail the claim: the pack stays with the
// user and the failure is recorded for retry.
func Test_ClaimPack_MintFailureKeepsClaim(t *testing.T) {
	ctrl := gomock.NewController(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pack := claimedPack("pack-2", "user-2", now)

	packStore := mock.NewMockPackStore(ctrl)
	packStore.EXPECT().
		TryClaimOne(gomock.Any(), models.PackTypeWelcome, "user-2", now).
		Return(pack, nil)

	claims := mock.NewMockClaimLog(ctrl)
	claims.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	claims.EXPECT().
		SetOnChainResult(gomock.Any(), "pack-2", models.OnChainFailed, "").
		Return(nil)

	minter := mock.NewMockMinter(ctrl)
	minter.EXPECT().
		MintAndAssign(gomock.Any(), pack.Cards, "user-2", "pack-2").
		Return("", errors.New("gateway timeout"))

	s := NewService(mock.NewMockTemplateStore(ctrl), packStore, claims, minter,
		WithClock(func() time.Time { return now }))

	result, err := s.ClaimPack(context.Background(), "user-2", models.PackTypeWelcome)
	if err != nil {
		t.Fatalf("ClaimPack() error = %v, want claimed result with failed on-chain leg", err)
	}
	if !result.Success {
		t.Errorf("ClaimPack() success = false, want true (claim leg is durable)")
	}
	if result.OnChain != models.OnChainFailed {
		t.Errorf("ClaimPack() on-chain = %q, want failed", result.OnChain)
	}
}

func Test_GetPacksRemaining(t *testing.T) {
	tests := []struct {
		name     string
		packType models.PackType
		stock    int
		want     int
	}{
		{name: "InStock", packType: models.PackTypeWelcome, stock: 7, want: 7},
		{name: "Empty", packType: models.PackTypeCryo, stock: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			packStore := mock.NewMockPackStore(ctrl)
			packStore.EXPECT().
				CountAvailable(gomock.Any(), tt.packType).
				Return(tt.stock, nil)

			s := NewService(mock.NewMockTemplateStore(ctrl), packStore, mock.NewMockClaimLog(ctrl), mock.NewMockMinter(ctrl))
			got, err := s.GetPacksRemaining(context.Background(), tt.packType)
			if err != nil {
				t.Fatalf("GetPacksRemaining() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GetPacksRemaining() = %d, want %d", got, tt.want)
			}
		})
	}
}

func Test_GetPacksRemaining_InvalidType(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewService(mock.NewMockTemplateStore(ctrl), mock.NewMockPackStore(ctrl), mock.NewMockClaimLog(ctrl), mock.NewMockMinter(ctrl))

	got, err := s.GetPacksRemaining(context.Background(), models.PackType("bogus"))
	if err != nil {
		t.Fatalf("GetPacksRemaining() error = %v, want 0 without error", err)
	}
	if got != 0 {
		t.Errorf("GetPacksRemaining() = %d, want 0", got)
	}
}

func Test_GetOwnedPacks(t *testing.T) {
	ctrl := gomock.NewController(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	packStore := mock.NewMockPackStore(ctrl)
	packStore.EXPECT().
		ListByOwner(gomock.Any(), "user-1").
		Return([]*models.CardPack{
			claimedPack("pack-1", "user-1", now),
			claimedPack("pack-2", "user-1", now.Add(time.Minute)),
		}, nil)

	s := NewService(mock.NewMockTemplateStore(ctrl), packStore, mock.NewMockClaimLog(ctrl), mock.NewMockMinter(ctrl))

	owned, err := s.GetOwnedPacks(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetOwnedPacks() error = %v", err)
	}
	if len(owned) != 2 {
		t.Fatalf("GetOwnedPacks() returned %d packs, want 2", len(owned))
	}
	if owned[0].PackID != "pack-1" || owned[1].PackID != "pack-2" {
		t.Errorf("GetOwnedPacks() order = %s, %s; want pack-1, pack-2", owned[0].PackID, owned[1].PackID)
	}
	if owned[0].OwnerID != "user-1" {
		t.Errorf("GetOwnedPacks() owner = %q, want user-1", owned[0].OwnerID)
	}
}

func Test_GetOwnedPacks_EmptyUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewService(mock.NewMockTemplateStore(ctrl), mock.NewMockPackStore(ctrl), mock.NewMockClaimLog(ctrl), mock.NewMockMinter(ctrl))

	if _, err := s.GetOwnedPacks(context.Background(), ""); err == nil {
		t.Errorf("GetOwnedPacks() expected error for empty user id")
	}
}
