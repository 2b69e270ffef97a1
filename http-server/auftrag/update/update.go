package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"next-golang/internal/storage"
)

type AuftragUpdater interface {
	UpdateAuftrag(ctx context.Context, id int, upd storage.AuftragUpdate) (storage.Auftrag, bool, error)
	UpdateAuftragVonPlanung(ctx context.Context, id int, upd storage.AuftragUpdate) (storage.Auftrag, bool, error)
	UpdateProjektstatus(ctx context.Context, id int, status storage.Projektstatus) (storage.Auftrag, bool, error)
	ChangePrio(ctx context.Context, id int, delta int) (storage.Auftrag, error)
	ReplaceAuftraege(ctx context.Context, auftraege []storage.Auftrag) error
}

type Response struct {
	Auftrag *storage.Auftrag `json:"auftrag,omitempty"`
	// false wenn ein Status-Guard das Update verworfen hat
	Applied bool   `json:"applied"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

type RequestStatus struct {
	Projektstatus storage.Projektstatus `json:"projektstatus"`
}

type RequestPrio struct {
	Delta int `json:"delta"`
}

func parseID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func updateHandler(log *slog.Logger, op string, apply func(ctx context.Context, id int, upd storage.AuftragUpdate) (storage.Auftrag, bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		var upd storage.AuftragUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			log.Error("Ungültiges JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ungültige Daten", http.StatusBadRequest)
			return
		}

		auftrag, applied, err := apply(r.Context(), id, upd)
		if errors.Is(err, storage.ErrAuftragNotFound) {
			http.Error(w, "Auftrag not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Update fehlgeschlagen", slog.String("op", op), slog.Int("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{
			Auftrag: &auftrag,
			Applied: applied,
			Status:  strconv.Itoa(http.StatusOK),
		})
	}
}

// UpdateAuftrag ist das generische partielle Update. Bewachte Statuswechsel
// laufen durch die Guards, ein abgelehntes Update ist ein stilles No-op.
func UpdateAuftrag(log *slog.Logger, updater AuftragUpdater) http.HandlerFunc {
	return updateHandler(log, "handler.auftrag.update.UpdateAuftrag", updater.UpdateAuftrag)
}

// UpdateAuftragPlanung ist das Update aus der Planungsansicht, es markiert
// Aufträge in Werkstatt-Bearbeitung als von der Planung geändert.
func UpdateAuftragPlanung(log *slog.Logger, updater AuftragUpdater) http.HandlerFunc {
	return updateHandler(log, "handler.auftrag.update.UpdateAuftragPlanung", updater.UpdateAuftragVonPlanung)
}

// UpdateProjektstatus ist der Statuswechsel aus dem Picker.
func UpdateProjektstatus(log *slog.Logger, updater AuftragUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.auftrag.update.UpdateProjektstatus"

		id, err := parseID(r)
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		var req RequestStatus
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Ungültiges JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ungültige Daten", http.StatusBadRequest)
			return
		}

		auftrag, applied, err := updater.UpdateProjektstatus(r.Context(), id, req.Projektstatus)
		if errors.Is(err, storage.ErrAuftragNotFound) {
			http.Error(w, "Auftrag not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Statuswechsel fehlgeschlagen", slog.String("op", op), slog.Int("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{
			Auftrag: &auftrag,
			Applied: applied,
			Status:  strconv.Itoa(http.StatusOK),
		})
	}
}

// UpdatePrio verschiebt die Priorität um +1/-1 und sortiert das Board neu.
func UpdatePrio(log *slog.Logger, updater AuftragUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.auftrag.update.UpdatePrio"

		id, err := parseID(r)
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		var req RequestPrio
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Ungültiges JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ungültige Daten", http.StatusBadRequest)
			return
		}

		auftrag, err := updater.ChangePrio(r.Context(), id, req.Delta)
		if errors.Is(err, storage.ErrAuftragNotFound) {
			http.Error(w, "Auftrag not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Prio-Änderung fehlgeschlagen", slog.String("op", op), slog.Int("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{
			Auftrag: &auftrag,
			Applied: true,
			Status:  strconv.Itoa(http.StatusOK),
		})
	}
}

// ReplaceAuftraege ersetzt die komplette Liste (Bulk-Umsortierung).
func ReplaceAuftraege(log *slog.Logger, updater AuftragUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.auftrag.update.ReplaceAuftraege"

		var auftraege []storage.Auftrag
		if err := json.NewDecoder(r.Body).Decode(&auftraege); err != nil {
			log.Error("Ungültiges JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ungültige Daten", http.StatusBadRequest)
			return
		}

		if err := updater.ReplaceAuftraege(r.Context(), auftraege); err != nil {
			log.Error("Ersetzen fehlgeschlagen", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{
			Applied: true,
			Status:  strconv.Itoa(http.StatusOK),
		})
	}
}
