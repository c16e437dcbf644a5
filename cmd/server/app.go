package main

import (
	"net/http"

	"github.com/manteauvert/go-papiers/internal/config"
	"github.com/manteauvert/go-papiers/internal/export"
	"github.com/manteauvert/go-papiers/internal/handlers"
	"github.com/manteauvert/go-papiers/internal/logging"
	"github.com/manteauvert/go-papiers/internal/services"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
}

// NewApp wires the document service, exporter and handlers together.
func NewApp(cfg config.Config) *App {
	log := logging.Logger()
	svc := services.NewDocumentService()
	// Server-side failures land in the log; the HTTP layer carries the
	// user-facing message itself.
	exporter := export.NewExporter(cfg.Export, log, export.NotifierFunc(func(msg string) {
		log.Warn(msg)
	}))
	dh := handlers.NewDocumentHandler(svc, exporter, cfg, log)

	app := &App{mux: http.NewServeMux()}
	app.mux.HandleFunc("GET /{$}", dh.Edit)
	app.mux.HandleFunc("POST /documents/totals", dh.Totals)
	app.mux.HandleFunc("POST /documents/preview", dh.Preview)
	app.mux.HandleFunc("POST /documents/export", dh.Export)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}
