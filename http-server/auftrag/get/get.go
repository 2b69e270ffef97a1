package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"next-golang/internal/storage"
)

type AuftragGetter interface {
	GetAuftraege(ctx context.Context) ([]storage.Auftrag, error)
	GetAuftrag(ctx context.Context, id int) (storage.Auftrag, error)
}

type ResponseAuftraege struct {
	Auftraege []storage.Auftrag `json:"auftraege"`
	Status    string            `json:"status"`
	Error     string            `json:"error,omitempty"`
}

type ResponseAuftrag struct {
	Auftrag *storage.Auftrag `json:"auftrag"`
	Status  string           `json:"status"`
	Error   string           `json:"error,omitempty"`
}

// GetAuftraege liefert das komplette Board, Steps immer materialisiert.
func GetAuftraege(log *slog.Logger, getter AuftragGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.auftrag.get.GetAuftraege"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		auftraege, err := getter.GetAuftraege(r.Context())
		if err != nil {
			log.Error("Aufträge konnten nicht gelesen werden", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseAuftraege{Error: "Aufträge konnten nicht gelesen werden"})
			return
		}

		render.JSON(w, r, ResponseAuftraege{
			Auftraege: auftraege,
			Status:    strconv.Itoa(http.StatusOK),
		})
	}
}

func GetAuftragByID(log *slog.Logger, getter AuftragGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.auftrag.get.GetAuftragByID"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("Ungültige Auftrags-ID", slog.String("error", err.Error()))
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		auftrag, err := getter.GetAuftrag(r.Context(), id)
		if errors.Is(err, storage.ErrAuftragNotFound) {
			http.Error(w, "Auftrag not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Auftrag konnte nicht gelesen werden", slog.Int("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, ResponseAuftrag{
			Auftrag: &auftrag,
			Status:  strconv.Itoa(http.StatusOK),
		})
	}
}
