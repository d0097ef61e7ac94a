package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	gethealth "pardelta-dashboard/http-server/health/get"
	getreport "pardelta-dashboard/http-server/report/get"
	getstores "pardelta-dashboard/http-server/stores/get"
	"pardelta-dashboard/internal/config"
	"pardelta-dashboard/internal/directory"
	"pardelta-dashboard/internal/service/report"
	"pardelta-dashboard/internal/storage/postgres"
)

func routes(cfg config.Config, log *slog.Logger, storage *postgres.Storage, stores []directory.Store, reportService *report.Service) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/api/stores", getstores.GetStores(log, stores))

	// Period selector: ?period=wtd|mtd|ytd (+ optional ?date=YYYY-MM-DD).
	router.Get("/api/report/ranking", getreport.GetRanking(log, reportService))
	router.Get("/api/report/performance", getreport.GetPerformance(log, reportService))

	router.Get("/api/health", gethealth.GetHealth(log, cfg, storage))

	// Static SPA frontend. The API works without it.
	frontendDir := cfg.FrontendDir
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("frontend directory not found, serving API only", slog.String("path", frontendDir))
		return router
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	// SPA fallback: existing files are served as-is, everything else gets
	// index.html.
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
