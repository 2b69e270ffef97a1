package save

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

type AuftragSaver interface {
	SaveAuftrag(ctx context.Context, neu storage.NeuerAuftrag) (storage.Auftrag, error)
	CopyAuftrag(ctx context.Context, id int) (storage.Auftrag, error)
}

type Response struct {
	Auftrag *storage.Auftrag `json:"auftrag"`
	Status  string           `json:"status"`
	Error   string           `json:"error,omitempty"`
}

// SaveAuftrag legt einen neuen Auftrag an. Die Commission-Nr wird
// normalisiert und bekommt das nächste freie Suffix.
func SaveAuftrag(log *slog.Logger, saver AuftragSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.auftrag.save.SaveAuftrag"

		var req storage.NeuerAuftrag
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Ungültiges JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ungültige Daten", http.StatusBadRequest)
			return
		}

		created, err := saver.SaveAuftrag(r.Context(), req)
		if err != nil {
			log.Error("Auftrag konnte nicht angelegt werden", slog.String("op", op), slog.String("error", err.Error()))
			render.JSON(w, r, Response{Error: "Auftrag konnte nicht angelegt werden"})
			return
		}

		render.JSON(w, r, Response{
			Auftrag: &created,
			Status:  strconv.Itoa(http.StatusOK),
		})
	}
}

// CopyAuftrag dupliziert einen Auftrag, die Kopie kommt ohne Dateien und
// ohne Step-Zustand zurück und kann direkt bearbeitet werden.
func CopyAuftrag(log *slog.Logger, saver AuftragSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.auftrag.save.CopyAuftrag"

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		copied, err := saver.CopyAuftrag(r.Context(), id)
		if errors.Is(err, storage.ErrAuftragNotFound) {
			http.Error(w, "Auftrag not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Auftrag konnte nicht dupliziert werden", slog.String("op", op), slog.Int("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{
			Auftrag: &copied,
			Status:  strconv.Itoa(http.StatusOK),
		})
	}
}
