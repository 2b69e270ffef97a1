package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"next-golang/internal/storage"
)

type BenutzerGetter interface {
	GetBenutzer(ctx context.Context) ([]storage.Benutzer, error)
}

type Response struct {
	Benutzer []storage.Benutzer `json:"benutzer"`
	Status   string             `json:"status"`
	Error    string             `json:"error,omitempty"`
}

func GetBenutzer(log *slog.Logger, getter BenutzerGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.benutzer.get.GetBenutzer"

		benutzer, err := getter.GetBenutzer(r.Context())
		if err != nil {
			log.Error("Benutzer konnten nicht gelesen werden", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{
			Benutzer: benutzer,
			Status:   strconv.Itoa(http.StatusOK),
		})
	}
}
