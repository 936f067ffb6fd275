package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/projectchronos/chronos/chronos/database/models"
	"github.com/projectchronos/chronos/chronos/database/repositories"
	"github.com/projectchronos/chronos/chronos/packs"
	"github.com/projectchronos/chronos/chronos/packs/mock"
	gomock "go.uber.org/mock/gomock"
)

func Test_parsePackType(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		want       models.PackType
		wantErr    bool
		suggestion string
	}{
		{name: "Exact", in: "welcome", want: models.PackTypeWelcome},
		{name: "MixedCase", in: "Umbra", want: models.PackTypeUmbra},
		{name: "TypoGetsSuggestion", in: "welcom", wantErr: true, suggestion: "welcome"},
		{name: "NoSuggestion", in: "zzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePackType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePackType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if tt.suggestion != "" && !strings.Contains(err.Error(), tt.suggestion) {
					t.Errorf("parsePackType(%q) error = %q, want suggestion %q", tt.in, err, tt.suggestion)
				}
				return
			}
			if got != tt.want {
				t.Errorf("parsePackType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func testHandler(t *testing.T, packStore packs.PackStore) http.Handler {
	t.Helper()
	ctrl := gomock.NewController(t)
	service := packs.NewService(
		mock.NewMockTemplateStore(ctrl),
		packStore,
		mock.NewMockClaimLog(ctrl),
		mock.NewMockMinter(ctrl),
	)
	return New(service, nil, 1).Handler()
}

func Test_packsRemainingRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	packStore := mock.NewMockPackStore(ctrl)
	packStore.EXPECT().
		CountAvailable(gomock.Any(), models.PackTypeWelcome).
		Return(4, nil)

	handler := testHandler(t, packStore)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/packs/remaining/welcome", nil)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Code int `json:"code"`
		Data struct {
			Type      string `json:"type"`
			Remaining int    `json:"remaining"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.Remaining != 4 || envelope.Data.Type != "welcome" {
		t.Errorf("body = %+v, want welcome/4", envelope.Data)
	}
}

func Test_packsRemainingRoute_BadType(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := testHandler(t, mock.NewMockPackStore(ctrl))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/packs/remaining/mystery", nil)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func Test_claimRoute_OutOfStock(t *testing.T) {
	ctrl := gomock.NewController(t)
	packStore := mock.NewMockPackStore(ctrl)
	packStore.EXPECT().
		TryClaimOne(gomock.Any(), models.PackTypeWelcome, "user-1", gomock.Any()).
		Return(nil, repositories.ErrNoPackAvailable)

	handler := testHandler(t, packStore)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/packs/claim",
		strings.NewReader(`{"userId":"user-1","type":"welcome"}`))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 (body: %s)", rec.Code, rec.Body.String())
	}
}

func Test_claimRoute_MissingUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := testHandler(t, mock.NewMockPackStore(ctrl))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/packs/claim",
		strings.NewReader(`{"type":"welcome"}`))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
