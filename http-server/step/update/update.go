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

type StepUpdater interface {
	StepAction(ctx context.Context, id int, key storage.WorkStepKey, action storage.StepActionKind, lead string) (storage.Auftrag, bool, error)
	ToggleStep(ctx context.Context, id int, key storage.WorkStepKey) (storage.Auftrag, bool, error)
}

type Request struct {
	Action storage.StepActionKind `json:"action"`
	Lead   string                 `json:"lead,omitempty"`
}

type Response struct {
	Auftrag *storage.Auftrag `json:"auftrag"`
	// false wenn die Aktion abgelehnt wurde (fehlender Lead, falscher Zustand)
	Applied bool   `json:"applied"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// StepAction führt start/pause/stop auf einem Arbeitsschritt aus.
// Fertigungsschritte ohne Lead werden still abgelehnt.
func StepAction(log *slog.Logger, updater StepUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.step.update.StepAction"

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}
		key := storage.WorkStepKey(chi.URLParam(r, "step"))

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Ungültiges JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ungültige Daten", http.StatusBadRequest)
			return
		}

		auftrag, applied, err := updater.StepAction(r.Context(), id, key, req.Action, req.Lead)
		if errors.Is(err, storage.ErrAuftragNotFound) {
			http.Error(w, "Auftrag not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Step-Aktion fehlgeschlagen",
				slog.String("op", op),
				slog.Int("id", id),
				slog.String("step", string(key)),
				slog.String("error", err.Error()),
			)
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

// ToggleStep ist der Ein-Knopf-Timer: starten bzw. stoppen in einem Aufruf.
func ToggleStep(log *slog.Logger, updater StepUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.step.update.ToggleStep"

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}
		key := storage.WorkStepKey(chi.URLParam(r, "step"))

		auftrag, applied, err := updater.ToggleStep(r.Context(), id, key)
		if errors.Is(err, storage.ErrAuftragNotFound) {
			http.Error(w, "Auftrag not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Toggle fehlgeschlagen",
				slog.String("op", op),
				slog.Int("id", id),
				slog.String("step", string(key)),
				slog.String("error", err.Error()),
			)
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
