package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"next-golang/internal/storage"
)

type MockAuftragUpdater struct {
	mock.Mock
}

func (m *MockAuftragUpdater) UpdateAuftrag(ctx context.Context, id int, upd storage.AuftragUpdate) (storage.Auftrag, bool, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(storage.Auftrag), args.Bool(1), args.Error(2)
}

func (m *MockAuftragUpdater) UpdateAuftragVonPlanung(ctx context.Context, id int, upd storage.AuftragUpdate) (storage.Auftrag, bool, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(storage.Auftrag), args.Bool(1), args.Error(2)
}

func (m *MockAuftragUpdater) UpdateProjektstatus(ctx context.Context, id int, status storage.Projektstatus) (storage.Auftrag, bool, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(storage.Auftrag), args.Bool(1), args.Error(2)
}

func (m *MockAuftragUpdater) ChangePrio(ctx context.Context, id int, delta int) (storage.Auftrag, error) {
	args := m.Called(ctx, id, delta)
	return args.Get(0).(storage.Auftrag), args.Error(1)
}

func (m *MockAuftragUpdater) ReplaceAuftraege(ctx context.Context, auftraege []storage.Auftrag) error {
	args := m.Called(ctx, auftraege)
	return args.Error(0)
}

func updateRouter(updater AuftragUpdater) *chi.Mux {
	router := chi.NewRouter()
	router.Put("/api/auftraege/{id}", UpdateAuftrag(slog.Default(), updater))
	router.Put("/api/auftraege/{id}/planung", UpdateAuftragPlanung(slog.Default(), updater))
	router.Put("/api/auftraege/{id}/status", UpdateProjektstatus(slog.Default(), updater))
	router.Put("/api/auftraege/{id}/prio", UpdatePrio(slog.Default(), updater))
	router.Put("/api/auftraege/replace", ReplaceAuftraege(slog.Default(), updater))
	return router
}

func TestUpdateAuftrag_PartiellesUpdate(t *testing.T) {
	mockUpdater := new(MockAuftragUpdater)

	// nur kundeName ist gesetzt, alle anderen Felder bleiben nil
	mockUpdater.On("UpdateAuftrag", mock.Anything, 3, mock.MatchedBy(func(upd storage.AuftragUpdate) bool {
		return upd.KundeName != nil && *upd.KundeName == "Muster AG" &&
			upd.CommissionNr == nil && upd.Projektstatus == nil
	})).Return(storage.Auftrag{ID: 3, KundeName: "Muster AG"}, true, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/auftraege/3",
		strings.NewReader(`{"kundeName": "Muster AG"}`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	updateRouter(mockUpdater).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Equal(t, "Muster AG", resp.Auftrag.KundeName)

	mockUpdater.AssertExpectations(t)
}

// Ein vom Guard verworfenes Update ist trotzdem eine 200er-Antwort,
// nur applied steht auf false
func TestUpdateProjektstatus_GuardAbgelehnt(t *testing.T) {
	mockUpdater := new(MockAuftragUpdater)
	mockUpdater.On("UpdateProjektstatus", mock.Anything, 3, storage.StatusFertig).
		Return(storage.Auftrag{ID: 3, Projektstatus: storage.StatusOffen}, false, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/auftraege/3/status",
		strings.NewReader(`{"projektstatus": "fertig"}`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	updateRouter(mockUpdater).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.False(t, resp.Applied)
	assert.Equal(t, storage.StatusOffen, resp.Auftrag.Projektstatus)
}

func TestUpdateAuftragPlanung_NotFound(t *testing.T) {
	mockUpdater := new(MockAuftragUpdater)
	mockUpdater.On("UpdateAuftragVonPlanung", mock.Anything, 99, mock.Anything).
		Return(storage.Auftrag{}, false, storage.ErrAuftragNotFound)

	req := httptest.NewRequest(http.MethodPut, "/api/auftraege/99/planung",
		strings.NewReader(`{"kundeName": "X"}`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	updateRouter(mockUpdater).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdatePrio(t *testing.T) {
	mockUpdater := new(MockAuftragUpdater)
	mockUpdater.On("ChangePrio", mock.Anything, 3, -1).
		Return(storage.Auftrag{ID: 3, Prio: 1}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/auftraege/3/prio",
		strings.NewReader(`{"delta": -1}`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	updateRouter(mockUpdater).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Auftrag.Prio)

	mockUpdater.AssertExpectations(t)
}

func TestReplaceAuftraege(t *testing.T) {
	mockUpdater := new(MockAuftragUpdater)
	mockUpdater.On("ReplaceAuftraege", mock.Anything, mock.MatchedBy(func(auftraege []storage.Auftrag) bool {
		return len(auftraege) == 2 && auftraege[0].ID == 5
	})).Return(nil)

	req := httptest.NewRequest(http.MethodPut, "/api/auftraege/replace",
		strings.NewReader(`[{"id": 5, "commissionNr": "024016-1"}, {"id": 6, "commissionNr": "024016-2"}]`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	updateRouter(mockUpdater).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockUpdater.AssertExpectations(t)
}

func TestUpdateAuftrag_UngueltigesJSON(t *testing.T) {
	mockUpdater := new(MockAuftragUpdater)

	req := httptest.NewRequest(http.MethodPut, "/api/auftraege/3", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	updateRouter(mockUpdater).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockUpdater.AssertNotCalled(t, "UpdateAuftrag")
}
