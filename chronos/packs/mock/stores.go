package mock

import (
	context "context"
	reflect "reflect"
	time "time"

	models "github.com/projectchronos/chronos/chronos/database/models"
	gomock "go.uber.org/mock/gomock"
)

// MockTemplateStore is a mock of TemplateStore interface.
type MockTemplateStore struct {
	ctrl     *gomock.Controller
	recorder *MockTemplateStoreMockRecorder
	isgomock struct{}
}

// MockTemplateStoreMockRecorder is the mock recorder for MockTemplateStore.
type MockTemplateStoreMockRecorder struct {
	mock *MockTemplateStore
}

// NewMockTemplateStore creates a new mock instance.
func NewMockTemplateStore(ctrl *gomock.Controller) *MockTemplateStore {
	mock := &MockTemplateStore{ctrl: ctrl}
	mock.recorder = &MockTemplateStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTemplateStore) EXPECT() *MockTemplateStoreMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockTemplateStore) Create(ctx context.Context, template *models.CardPackTemplate) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, template)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockTemplateStoreMockRecorder) Create(ctx, template any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockTemplateStore)(nil).Create), ctx, template)
}

// CreateIfAbsent mocks base method.
func (m *MockTemplateStore) CreateIfAbsent(ctx context.Context, template *models.CardPackTemplate) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateIfAbsent", ctx, template)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateIfAbsent indicates an expected call of CreateIfAbsent.
func (mr *MockTemplateStoreMockRecorder) CreateIfAbsent(ctx, template any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateIfAbsent", reflect.TypeOf((*MockTemplateStore)(nil).CreateIfAbsent), ctx, template)
}

// Deactivate mocks base method.
func (m *MockTemplateStore) Deactivate(ctx context.Context, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Deactivate", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Deactivate indicates an expected call of Deactivate.
func (mr *MockTemplateStoreMockRecorder) Deactivate(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Deactivate", reflect.TypeOf((*MockTemplateStore)(nil).Deactivate), ctx, id)
}

// GetActiveByType mocks base method.
func (m *MockTemplateStore) GetActiveByType(ctx context.Context, packType models.PackType) (*models.CardPackTemplate, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetActiveByType", ctx, packType)
	ret0, _ := ret[0].(*models.CardPackTemplate)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetActiveByType indicates an expected call of GetActiveByType.
func (mr *MockTemplateStoreMockRecorder) GetActiveByType(ctx, packType any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetActiveByType", reflect.TypeOf((*MockTemplateStore)(nil).GetActiveByType), ctx, packType)
}

// GetByID mocks base method.
func (m *MockTemplateStore) GetByID(ctx context.Context, id int64) (*models.CardPackTemplate, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*models.CardPackTemplate)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockTemplateStoreMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockTemplateStore)(nil).GetByID), ctx, id)
}

// MockPackStore is a mock of PackStore interface.
type MockPackStore struct {
	ctrl     *gomock.Controller
	recorder *MockPackStoreMockRecorder
	isgomock struct{}
}

// MockPackStoreMockRecorder is the mock recorder for MockPackStore.
type MockPackStoreMockRecorder struct {
	mock *MockPackStore
}

// NewMockPackStore creates a new mock instance.
func NewMockPackStore(ctrl *gomock.Controller) *MockPackStore {
	mock := &MockPackStore{ctrl: ctrl}
	mock.recorder = &MockPackStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPackStore) EXPECT() *MockPackStoreMockRecorder {
	return m.recorder
}

// CountAvailable mocks base method.
func (m *MockPackStore) CountAvailable(ctx context.Context, packType models.PackType) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountAvailable", ctx, packType)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountAvailable indicates an expected call of CountAvailable.
func (mr *MockPackStoreMockRecorder) CountAvailable(ctx, packType any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountAvailable", reflect.TypeOf((*MockPackStore)(nil).CountAvailable), ctx, packType)
}

// CreateBatch mocks base method.
func (m *MockPackStore) CreateBatch(ctx context.Context, template *models.CardPackTemplate, packs []*models.CardPack) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateBatch", ctx, template, packs)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateBatch indicates an expected call of CreateBatch.
func (mr *MockPackStoreMockRecorder) CreateBatch(ctx, template, packs any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateBatch", reflect.TypeOf((*MockPackStore)(nil).CreateBatch), ctx, template, packs)
}

// ListByOwner mocks base method.
func (m *MockPackStore) ListByOwner(ctx context.Context, ownerID string) ([]*models.CardPack, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByOwner", ctx, ownerID)
	ret0, _ := ret[0].([]*models.CardPack)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByOwner indicates an expected call of ListByOwner.
func (mr *MockPackStoreMockRecorder) ListByOwner(ctx, ownerID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByOwner", reflect.TypeOf((*MockPackStore)(nil).ListByOwner), ctx, ownerID)
}

// TryClaimOne mocks base method.
func (m *MockPackStore) TryClaimOne(ctx context.Context, packType models.PackType, ownerID string, at time.Time) (*models.CardPack, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TryClaimOne", ctx, packType, ownerID, at)
	ret0, _ := ret[0].(*models.CardPack)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TryClaimOne indicates an expected call of TryClaimOne.
func (mr *MockPackStoreMockRecorder) TryClaimOne(ctx, packType, ownerID, at any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TryClaimOne", reflect.TypeOf((*MockPackStore)(nil).TryClaimOne), ctx, packType, ownerID, at)
}

// MockClaimLog is a mock of ClaimLog interface.
type MockClaimLog struct {
	ctrl     *gomock.Controller
	recorder *MockClaimLogMockRecorder
	isgomock struct{}
}

// MockClaimLogMockRecorder is the mock recorder for MockClaimLog.
type MockClaimLogMockRecorder struct {
	mock *MockClaimLog
}

// NewMockClaimLog creates a new mock instance.
func NewMockClaimLog(ctrl *gomock.Controller) *MockClaimLog {
	mock := &MockClaimLog{ctrl: ctrl}
	mock.recorder = &MockClaimLogMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockClaimLog) EXPECT() *MockClaimLogMockRecorder {
	return m.recorder
}

// Append mocks base method.
func (m *MockClaimLog) Append(ctx context.Context, record *models.ClaimRecord) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Append", ctx, record)
	ret0, _ := ret[0].(error)
	return ret0
}

// Append indicates an expected call of Append.
func (mr *MockClaimLogMockRecorder) Append(ctx, record any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Append", reflect.TypeOf((*MockClaimLog)(nil).Append), ctx, record)
}

// ListByUser mocks base method.
func (m *MockClaimLog) ListByUser(ctx context.Context, userID string) ([]*models.ClaimRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByUser", ctx, userID)
	ret0, _ := ret[0].([]*models.ClaimRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByUser indicates an expected call of ListByUser.
func (mr *MockClaimLogMockRecorder) ListByUser(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByUser", reflect.TypeOf((*MockClaimLog)(nil).ListByUser), ctx, userID)
}

// SetOnChainResult mocks base method.
func (m *MockClaimLog) SetOnChainResult(ctx context.Context, packID string, status models.OnChainStatus, ref string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetOnChainResult", ctx, packID, status, ref)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetOnChainResult indicates an expected call of SetOnChainResult.
func (mr *MockClaimLogMockRecorder) SetOnChainResult(ctx, packID, status, ref any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetOnChainResult", reflect.TypeOf((*MockClaimLog)(nil).SetOnChainResult), ctx, packID, status, ref)
}

// MockMinter is a mock of Minter interface.
type MockMinter struct {
	ctrl     *gomock.Controller
	recorder *MockMinterMockRecorder
	isgomock struct{}
}

// MockMinterMockRecorder is the mock recorder for MockMinter.
type MockMinterMockRecorder struct {
	mock *MockMinter
}

// NewMockMinter creates a new mock instance.
func NewMockMinter(ctrl *gomock.Controller) *MockMinter {
	mock := &MockMinter{ctrl: ctrl}
	mock.recorder = &MockMinterMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockMinter) EXPECT() *MockMinterMockRecorder {
	return m.recorder
}

// MintAndAssign mocks base method.
func (m *MockMinter) MintAndAssign(ctx context.Context, cards []models.CardInstance, ownerID, idempotencyKey string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MintAndAssign", ctx, cards, ownerID, idempotencyKey)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// MintAndAssign indicates an expected call of MintAndAssign.
func (mr *MockMinterMockRecorder) MintAndAssign(ctx, cards, ownerID, idempotencyKey any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MintAndAssign", reflect.TypeOf((*MockMinter)(nil).MintAndAssign), ctx, cards, ownerID, idempotencyKey)
}
