package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"next-golang/internal/storage"
)

type AuftragDeleter interface {
	DeleteAuftrag(ctx context.Context, id int) (bool, error)
}

type Response struct {
	// false wenn der Auftrag nicht mehr in einem löschbaren Status war
	Deleted bool   `json:"deleted"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// DeleteAuftrag löscht endgültig, samt Dateien. Nur in frühen Stati erlaubt,
// sonst ein stilles No-op.
func DeleteAuftrag(log *slog.Logger, deleter AuftragDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.auftrag.remove.DeleteAuftrag"

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		deleted, err := deleter.DeleteAuftrag(r.Context(), id)
		if errors.Is(err, storage.ErrAuftragNotFound) {
			http.Error(w, "Auftrag not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Löschen fehlgeschlagen", slog.String("op", op), slog.Int("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{
			Deleted: deleted,
			Status:  strconv.Itoa(http.StatusOK),
		})
	}
}
