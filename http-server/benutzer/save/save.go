package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"next-golang/internal/storage"
)

type BenutzerSaver interface {
	SaveBenutzer(ctx context.Context, neu storage.NeuerBenutzer) (storage.Benutzer, error)
}

type Response struct {
	Benutzer *storage.Benutzer `json:"benutzer"`
	Status   string            `json:"status"`
	Error    string            `json:"error,omitempty"`
}

func SaveBenutzer(log *slog.Logger, saver BenutzerSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.benutzer.save.SaveBenutzer"

		var req storage.NeuerBenutzer
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Ungültiges JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ungültige Daten", http.StatusBadRequest)
			return
		}

		created, err := saver.SaveBenutzer(r.Context(), req)
		if err != nil {
			log.Error("Benutzer konnte nicht angelegt werden", slog.String("op", op), slog.String("error", err.Error()))
			render.JSON(w, r, Response{Error: "Benutzer konnte nicht angelegt werden"})
			return
		}

		render.JSON(w, r, Response{
			Benutzer: &created,
			Status:   strconv.Itoa(http.StatusOK),
		})
	}
}
