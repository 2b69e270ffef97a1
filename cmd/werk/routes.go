package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getauftrag "next-golang/http-server/auftrag/get"
	removeauftrag "next-golang/http-server/auftrag/remove"
	saveauftrag "next-golang/http-server/auftrag/save"
	upauftrag "next-golang/http-server/auftrag/update"
	getbenutzer "next-golang/http-server/benutzer/get"
	savebenutzer "next-golang/http-server/benutzer/save"
	upbenutzer "next-golang/http-server/benutzer/update"
	downloaddatei "next-golang/http-server/datei/download"
	uploaddatei "next-golang/http-server/datei/upload"
	generate_excel "next-golang/http-server/generate-report/generate-excel"
	upstep "next-golang/http-server/step/update"
	"next-golang/internal/config"
	"next-golang/internal/middleware/auth"
	"next-golang/internal/service/report"
	"next-golang/internal/storage/memory"
)

func routes(cfg config.Config, log *slog.Logger, storage *memory.Storage, auswertung *report.AuswertungService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Board: alle Aufträge, Steps immer materialisiert
	router.Get("/api/auftraege", getauftrag.GetAuftraege(log, storage))
	router.Get("/api/auftraege/{id}", getauftrag.GetAuftragByID(log, storage))

	// Planung: anlegen, duplizieren, löschen
	router.Post("/api/auftraege", saveauftrag.SaveAuftrag(log, storage))
	router.Post("/api/auftraege/{id}/copy", saveauftrag.CopyAuftrag(log, storage))
	router.Delete("/api/auftraege/{id}", removeauftrag.DeleteAuftrag(log, storage))

	// Updates laufen alle durch die Status-Guards
	router.Put("/api/auftraege/{id}", upauftrag.UpdateAuftrag(log, storage))
	router.Put("/api/auftraege/{id}/planung", upauftrag.UpdateAuftragPlanung(log, storage))
	router.Put("/api/auftraege/{id}/status", upauftrag.UpdateProjektstatus(log, storage))
	router.Put("/api/auftraege/{id}/prio", upauftrag.UpdatePrio(log, storage))
	router.Put("/api/auftraege/replace", upauftrag.ReplaceAuftraege(log, storage))

	// Werkstatt: Timer pro Arbeitsschritt
	router.Post("/api/auftraege/{id}/steps/{step}", upstep.StepAction(log, storage))
	router.Post("/api/auftraege/{id}/steps/{step}/toggle", upstep.ToggleStep(log, storage))

	// Pläne hoch- und runterladen
	router.Post("/api/auftraege/{id}/datei/original", uploaddatei.UploadOriginalDatei(log, storage))
	router.Post("/api/auftraege/{id}/datei/ready", uploaddatei.UploadReadyDatei(log, storage))
	router.Get("/api/auftraege/{id}/datei/original", downloaddatei.DownloadOriginalDatei(log, storage))
	router.Get("/api/auftraege/{id}/datei/ready", downloaddatei.DownloadReadyDatei(log, storage))

	// Auswertung als Excel
	router.Get("/api/auswertung/excel", generate_excel.GenerateAuswertungExcel(log, auswertung))

	// Benutzerverwaltung nur für Admins
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/benutzer", getbenutzer.GetBenutzer(log, storage))
	adminRouter.Post("/benutzer", savebenutzer.SaveBenutzer(log, storage))
	adminRouter.Put("/benutzer/{id}", upbenutzer.UpdateBenutzer(log, storage))
	adminRouter.Delete("/benutzer/{id}", upbenutzer.DeleteBenutzer(log, storage))

	router.Mount("/api/admin", adminRouter)

	// Statik: exportiertes Next.js-Frontend
	frontendDir := cfg.FrontendDir
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("Frontend-Ordner nicht gefunden, nur API aktiv", "path", frontendDir)
		return router
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/_next/*", fileServer)
	router.Handle("/assets/*", fileServer)
	router.Handle("/img/*", fileServer)

	// SPA-Fallback: jeder andere Pfad → index.html
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, r.URL.Path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
