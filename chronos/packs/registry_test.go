package packs

import (
	"context"
	"errors"
	"testing"

	"github.com/projectchronos/chronos/chronos/database/models"
	"github.com/projectchronos/chronos/chronos/database/repositories"
	"github.com/projectchronos/chronos/chronos/packs/mock"
	gomock "go.uber.org/mock/gomock"
)

func Test_WelcomeTemplate_IsValid(t *testing.T) {
	template := &models.CardPackTemplate{
		Type:               models.PackTypeWelcome,
		RarityDistribution: welcomeRarityDistribution(),
		CardPool:           welcomeCardPool(),
		CardsPerPack:       welcomeCardsPerPack,
		Active:             true,
	}
	if err := template.Validate(); err != nil {
		t.Errorf("welcome template invalid: %v", err)
	}

	// Every weighted tier must have at least one card to draw.
	pool := template.PoolByRarity()
	for rarity, weight := range template.RarityDistribution {
		if weight > 0 && len(pool[rarity]) == 0 {
			t.Errorf("rarity %s has weight %v but no cards in the pool", rarity, weight)
		}
	}
}

func Test_EnsureWelcomePackTemplateExists(t *testing.T) {
	tests := []struct {
		name    string
		created bool
	}{
		{name: "CreatesWhenAbsent", created: true},
		{name: "NoopWhenPresent", created: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			templates := mock.NewMockTemplateStore(ctrl)
			templates.EXPECT().
				CreateIfAbsent(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, template *models.CardPackTemplate) (bool, error) {
					if template.Type != models.PackTypeWelcome || !template.Active {
						t.Errorf("bootstrap template = %+v, want active welcome", template)
					}
					return tt.created, nil
				})

			s := NewService(templates, mock.NewMockPackStore(ctrl), mock.NewMockClaimLog(ctrl), mock.NewMockMinter(ctrl))
			created, err := s.EnsureWelcomePackTemplateExists(context.Background())
			if err != nil {
				t.Fatalf("EnsureWelcomePackTemplateExists() error = %v", err)
			}
			if created != tt.created {
				t.Errorf("EnsureWelcomePackTemplateExists() = %v, want %v", created, tt.created)
			}
		})
	}
}

func Test_ResolveTemplateByType_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		wantErr  error
	}{
		{
			name:     "NotFound",
			storeErr: &repositories.NotFoundError{Entity: "card_pack_template", ID: "welcome"},
			wantErr:  ErrNotFound,
		},
		{
			name:     "Ambiguous",
			storeErr: repositories.ErrAmbiguousTemplate,
			wantErr:  ErrAmbiguousTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			templates := mock.NewMockTemplateStore(ctrl)
			templates.EXPECT().
				GetActiveByType(gomock.Any(), models.PackTypeWelcome).
				Return(nil, tt.storeErr)

			s := NewService(templates, mock.NewMockPackStore(ctrl), mock.NewMockClaimLog(ctrl), mock.NewMockMinter(ctrl))
			_, err := s.ResolveTemplateByType(context.Background(), models.PackTypeWelcome)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ResolveTemplateByType() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func Test_ResolveTemplateByType_InvalidType(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewService(mock.NewMockTemplateStore(ctrl), mock.NewMockPackStore(ctrl), mock.NewMockClaimLog(ctrl), mock.NewMockMinter(ctrl))

	_, err := s.ResolveTemplateByType(context.Background(), models.PackType("bogus"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ResolveTemplateByType() error = %v, want ErrNotFound", err)
	}
}

func Test_CreateTemplate_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	templates := mock.NewMockTemplateStore(ctrl)
	templates.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(&repositories.ConflictError{Entity: "card_pack_template", Field: "type", Value: models.PackTypeWelcome})

	s := NewService(templates, mock.NewMockPackStore(ctrl), mock.NewMockClaimLog(ctrl), mock.NewMockMinter(ctrl))
	err := s.CreateTemplate(context.Background(), &models.CardPackTemplate{
		Type:               models.PackTypeWelcome,
		RarityDistribution: welcomeRarityDistribution(),
		CardPool:           welcomeCardPool(),
		CardsPerPack:       welcomeCardsPerPack,
	})
	if !errors.Is(err, ErrTemplateExists) {
		t.Errorf("CreateTemplate() error = %v, want ErrTemplateExists", err)
	}
}

func Test_CreateTemplate_RejectsInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewService(mock.NewMockTemplateStore(ctrl), mock.NewMockPackStore(ctrl), mock.NewMockClaimLog(ctrl), mock.NewMockMinter(ctrl))

	err := s.CreateTemplate(context.Background(), &models.CardPackTemplate{
		Type:         models.PackTypeStarter,
		CardsPerPack: 0,
	})
	if err == nil {
		t.Errorf("CreateTemplate() expected validation error")
	}
}

func Test_DeactivateTemplate_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	templates := mock.NewMockTemplateStore(ctrl)
	templates.EXPECT().
		Deactivate(gomock.Any(), int64(99)).
		Return(&repositories.NotFoundError{Entity: "card_pack_template", ID: int64(99)})

	s := NewService(templates, mock.NewMockPackStore(ctrl), mock.NewMockClaimLog(ctrl), mock.NewMockMinter(ctrl))
	if err := s.DeactivateTemplate(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeactivateTemplate() error = %v, want ErrNotFound", err)
	}
}

func Test_CreatePacksByType_SupplyExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	maxSupply := 10

	templates := mock.NewMockTemplateStore(ctrl)
	templates.EXPECT().
		GetActiveByType(gomock.Any(), models.PackTypeWelcome).
		Return(&models.CardPackTemplate{
			ID:                 1,
			Type:               models.PackTypeWelcome,
			RarityDistribution: welcomeRarityDistribution(),
			CardPool:           welcomeCardPool(),
			CardsPerPack:       welcomeCardsPerPack,
			MaxSupply:          &maxSupply,
			Active:             true,
		}, nil)

	packStore := mock.NewMockPackStore(ctrl)
	packStore.EXPECT().
		CreateBatch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(repositories.ErrSupplyExhausted)

	s := NewService(templates, packStore, mock.NewMockClaimLog(ctrl), mock.NewMockMinter(ctrl))
	_, err := s.CreatePacksByType(context.Background(), models.PackTypeWelcome, 3)
	if !errors.Is(err, ErrSupplyExhausted) {
		t.Errorf("CreatePacksByType() error = %v, want ErrSupplyExhausted", err)
	}
}

func Test_CreatePacks_UniquePackIDs(t *testing.T) {
	ctrl := gomock.NewController(t)

	packStore := mock.NewMockPackStore(ctrl)
	packStore.EXPECT().
		CreateBatch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.CardPackTemplate, batch []*models.CardPack) error {
			seen := make(map[string]bool)
			for _, p := range batch {
				if p.PackID == "" || seen[p.PackID] {
					t.Errorf("batch contains a missing or duplicate pack id %q", p.PackID)
				}
				seen[p.PackID] = true
				if p.Status != models.PackStatusAvailable {
					t.Errorf("generated pack status = %q, want available", p.Status)
				}
				if len(p.Cards) != welcomeCardsPerPack {
					t.Errorf("generated pack has %d cards, want %d", len(p.Cards), welcomeCardsPerPack)
				}
			}
			return nil
		})

	s := NewService(mock.NewMockTemplateStore(ctrl), packStore, mock.NewMockClaimLog(ctrl), mock.NewMockMinter(ctrl))
	template := &models.CardPackTemplate{
		ID:                 1,
		Type:               models.PackTypeWelcome,
		RarityDistribution: welcomeRarityDistribution(),
		CardPool:           welcomeCardPool(),
		CardsPerPack:       welcomeCardsPerPack,
		Active:             true,
	}

	created, err := s.CreatePacks(context.Background(), template, 25)
	if err != nil {
		t.Fatalf("CreatePacks() error = %v", err)
	}
	if created.Count != 25 || len(created.PackIDs) != 25 {
		t.Errorf("CreatePacks() = %+v, want 25 packs", created)
	}
}
