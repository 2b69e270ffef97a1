package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"next-golang/internal/storage"
)

type DateiGetter interface {
	GetAuftrag(ctx context.Context, id int) (storage.Auftrag, error)
	GetDatei(ctx context.Context, id int) (storage.DateiEintrag, error)
}

func downloadHandler(log *slog.Logger, op string, getter DateiGetter, pick func(eintrag storage.DateiEintrag, a storage.Auftrag) ([]byte, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		auftrag, err := getter.GetAuftrag(r.Context(), id)
		if errors.Is(err, storage.ErrAuftragNotFound) {
			http.Error(w, "Auftrag not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Auftrag konnte nicht gelesen werden", slog.String("op", op), slog.Int("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		eintrag, err := getter.GetDatei(r.Context(), id)
		if err != nil {
			http.Error(w, "Datei not found", http.StatusNotFound)
			return
		}

		data, name := pick(eintrag, auftrag)
		if len(data) == 0 || name == "" {
			http.Error(w, "Datei not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.Write(data)
	}
}

// DownloadOriginalDatei liefert den Original-Plan unter seinem Upload-Namen.
func DownloadOriginalDatei(log *slog.Logger, getter DateiGetter) http.HandlerFunc {
	return downloadHandler(log, "handler.datei.download.DownloadOriginalDatei", getter,
		func(eintrag storage.DateiEintrag, a storage.Auftrag) ([]byte, string) {
			return eintrag.Original, a.OriginalDateiName
		})
}

// DownloadReadyDatei liefert den Ready-Plan unter seinem Upload-Namen.
func DownloadReadyDatei(log *slog.Logger, getter DateiGetter) http.HandlerFunc {
	return downloadHandler(log, "handler.datei.download.DownloadReadyDatei", getter,
		func(eintrag storage.DateiEintrag, a storage.Auftrag) ([]byte, string) {
			return eintrag.Ready, a.ReadyDateiName
		})
}
