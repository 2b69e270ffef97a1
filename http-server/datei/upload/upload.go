package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"next-golang/internal/storage"
)

// Pläne sind PDFs oder DXF-Exporte, 20 MB reichen dafür locker.
const maxUploadBytes = 20 << 20

type DateiSaver interface {
	AddOriginalDatei(ctx context.Context, id int, name string, data []byte) (storage.Auftrag, error)
	AddReadyDatei(ctx context.Context, id int, name string, data []byte) (storage.Auftrag, error)
}

type Response struct {
	Auftrag *storage.Auftrag `json:"auftrag"`
	Status  string           `json:"status"`
	Error   string           `json:"error,omitempty"`
}

func uploadHandler(log *slog.Logger, op string, add func(ctx context.Context, id int, name string, data []byte) (storage.Auftrag, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			log.Error("Ungültiger Upload", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Ungültiger Upload", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "Missing file field", http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			log.Error("Datei konnte nicht gelesen werden", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		auftrag, err := add(r.Context(), id, header.Filename, data)
		if errors.Is(err, storage.ErrAuftragNotFound) {
			http.Error(w, "Auftrag not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Datei konnte nicht gespeichert werden", slog.String("op", op), slog.Int("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{
			Auftrag: &auftrag,
			Status:  strconv.Itoa(http.StatusOK),
		})
	}
}

// UploadOriginalDatei nimmt den Original-Plan entgegen (multipart, Feld "file").
func UploadOriginalDatei(log *slog.Logger, saver DateiSaver) http.HandlerFunc {
	return uploadHandler(log, "handler.datei.upload.UploadOriginalDatei", saver.AddOriginalDatei)
}

// UploadReadyDatei nimmt den Ready-Plan entgegen. Sind damit alle
// Pflichtangaben erfüllt, springt der Auftrag auf "Ready für WS".
func UploadReadyDatei(log *slog.Logger, saver DateiSaver) http.HandlerFunc {
	return uploadHandler(log, "handler.datei.upload.UploadReadyDatei", saver.AddReadyDatei)
}
