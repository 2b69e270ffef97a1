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

type BenutzerUpdater interface {
	UpdateBenutzer(ctx context.Context, id int, upd storage.BenutzerUpdate) (storage.Benutzer, error)
	DeleteBenutzer(ctx context.Context, id int) error
}

type Response struct {
	Benutzer *storage.Benutzer `json:"benutzer,omitempty"`
	Status   string            `json:"status"`
	Error    string            `json:"error,omitempty"`
}

func UpdateBenutzer(log *slog.Logger, updater BenutzerUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.benutzer.update.UpdateBenutzer"

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		var upd storage.BenutzerUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			log.Error("Ungültiges JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ungültige Daten", http.StatusBadRequest)
			return
		}

		benutzer, err := updater.UpdateBenutzer(r.Context(), id, upd)
		if errors.Is(err, storage.ErrBenutzerNotFound) {
			http.Error(w, "Benutzer not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Benutzer-Update fehlgeschlagen", slog.String("op", op), slog.Int("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{
			Benutzer: &benutzer,
			Status:   strconv.Itoa(http.StatusOK),
		})
	}
}

func DeleteBenutzer(log *slog.Logger, updater BenutzerUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.benutzer.update.DeleteBenutzer"

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		err = updater.DeleteBenutzer(r.Context(), id)
		if errors.Is(err, storage.ErrBenutzerNotFound) {
			http.Error(w, "Benutzer not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Benutzer konnte nicht gelöscht werden", slog.String("op", op), slog.Int("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{
			Status: strconv.Itoa(http.StatusOK),
		})
	}
}
