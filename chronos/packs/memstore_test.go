package packs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/projectchronos/chronos/chronos/database/models"
	"github.com/projectchronos/chronos/chronos/database/repositories"
)

// memStore is an in-memory store honoring the same atomic contracts the
// Postgres repositories provide: claim-one under a single lock, all-or-
// nothing supply-capped batch insert, and unique active-template-per-type
// bootstrap. It backs the concurrency tests.
type memStore struct {
	mu        sync.Mutex
	nextID    int64
	templates map[models.PackType]*models.CardPackTemplate
	packs     []*models.CardPack
	records   []*models.ClaimRecord
	mintCalls map[string]int
	mintErr   error
}

func newMemStore() *memStore {
	return &memStore{
		templates: make(map[models.PackType]*models.CardPackTemplate),
		mintCalls: make(map[string]int),
	}
}

func (m *memStore) GetByID(_ context.Context, id int64) (*models.CardPackTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.templates {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, &repositories.NotFoundError{Entity: "card_pack_template", ID: id}
}

func (m *memStore) GetActiveByType(_ context.Context, packType models.PackType) (*models.CardPackTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[packType]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "card_pack_template", ID: packType}
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) Create(_ context.Context, template *models.CardPackTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[template.Type]; ok {
		return &repositories.ConflictError{Entity: "card_pack_template", Field: "type", Value: template.Type}
	}
	m.nextID++
	cp := *template
	cp.ID = m.nextID
	m.templates[template.Type] = &cp
	template.ID = cp.ID
	return nil
}

func (m *memStore) Deactivate(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for packType, t := range m.templates {
		if t.ID == id {
			delete(m.templates, packType)
			return nil
		}
	}
	return &repositories.NotFoundError{Entity: "card_pack_template", ID: id}
}

func (m *memStore) CreateIfAbsent(_ context.Context, template *models.CardPackTemplate) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[template.Type]; ok {
		return false, nil
	}
	m.nextID++
	cp := *template
	cp.ID = m.nextID
	m.templates[template.Type] = &cp
	template.ID = cp.ID
	return true, nil
}

func (m *memStore) CreateBatch(_ context.Context, template *models.CardPackTemplate, batch []*models.CardPack) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if template.MaxSupply != nil {
		existing := 0
		for _, p := range m.packs {
			if p.TemplateID == template.ID {
				existing++
			}
		}
		if existing+len(batch) > *template.MaxSupply {
			return repositories.ErrSupplyExhausted
		}
	}
	for _, p := range batch {
		m.nextID++
		p.ID = m.nextID
		m.packs = append(m.packs, p)
	}
	return nil
}

func (m *memStore) TryClaimOne(_ context.Context, packType models.PackType, ownerID string, at time.Time) (*models.CardPack, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.packs {
		if p.Type == packType && p.Status == models.PackStatusAvailable {
			p.Status = models.PackStatusClaimed
			p.OwnerID = ownerID
			claimedAt := at
			p.ClaimedAt = &claimedAt
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrNoPackAvailable
}

func (m *memStore) CountAvailable(_ context.Context, packType models.PackType) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, p := range m.packs {
		if p.Type == packType && p.Status == models.PackStatusAvailable {
			count++
		}
	}
	return count, nil
}

func (m *memStore) ListByOwner(_ context.Context, ownerID string) ([]*models.CardPack, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.CardPack
	for _, p := range m.packs {
		if p.OwnerID == ownerID && p.Status == models.PackStatusClaimed {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStore) Append(_ context.Context, record *models.ClaimRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *record
	m.records = append(m.records, &cp)
	return nil
}

func (m *memStore) ListByUser(_ context.Context, userID string) ([]*models.ClaimRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.ClaimRecord
	for _, r := range m.records {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStore) SetOnChainResult(_ context.Context, packID string, status models.OnChainStatus, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.PackID == packID {
			r.OnChainResult = status
			r.OnChainRef = ref
			return nil
		}
	}
	return &repositories.NotFoundError{Entity: "claim_record", ID: packID}
}

func (m *memStore) MintAndAssign(_ context.Context, _ []models.CardInstance, _, idempotencyKey string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mintCalls[idempotencyKey]++
	if m.mintErr != nil {
		return "", m.mintErr
	}
	return fmt.Sprintf("0x%s", idempotencyKey), nil
}
