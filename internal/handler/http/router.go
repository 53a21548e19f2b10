package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/flextime-hq/flextime-backend-go/internal/config"
)

func NewRouter(
	cfg *config.Config,
	aggregationHandler AggregationHandler,
	clockInOutHandler ClockInOutHandler,
	sessionHandler SessionHandler,
	ingestHandler IngestHandler,
	reportHandler ReportHandler,
	masterHandler MasterHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "flextime-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/aggregations", aggregationHandler.Get)
		r.Get("/clock-in-out", clockInOutHandler.List)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.List)
			r.Post("/derive", sessionHandler.Derive)
		})

		r.Post("/ingest", ingestHandler.IngestTimeEntries)
		r.Post("/sync/directory", ingestHandler.SyncDirectory)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/weekly", reportHandler.Weekly)
		})
		r.Post("/email/weekly", reportHandler.SendWeeklyDigests)

		r.Route("/agents", func(r chi.Router) {
			r.Get("/", masterHandler.ListAgents)
			r.Get("/{id}", masterHandler.GetAgent)
		})
		r.Get("/groups", masterHandler.ListGroups)
		r.Get("/activities", masterHandler.ListActivities)
	})
	return r
}
