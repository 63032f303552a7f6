package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mindfold-ai/mindfold/internal/api/handlers"
	mw "github.com/mindfold-ai/mindfold/internal/api/middleware"
	"github.com/mindfold-ai/mindfold/internal/config"
	"github.com/mindfold-ai/mindfold/internal/domain"
	"github.com/mindfold-ai/mindfold/internal/ingest"
	"github.com/mindfold-ai/mindfold/internal/llm"
	"github.com/mindfold-ai/mindfold/internal/service"
	"github.com/mindfold-ai/mindfold/internal/store"
)

// App holds the router and request counters for lifecycle management.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(logger *zap.Logger) (*App, error) {
	dataDir := config.DataDir()

	// Stores
	episodicStore := store.NewEpisodicStore(filepath.Join(dataDir, "episodic_log.jsonl"))
	beliefStore := store.NewBeliefStore(filepath.Join(dataDir, "beliefs.json"))
	patternStore := store.NewPatternStore(filepath.Join(dataDir, "cognitive_patterns.json"))
	tensionStore := store.NewTensionStore(filepath.Join(dataDir, "tensions.json"))

	// Oracle via provider factory
	oracle, err := llm.NewClient(config.OracleProvider(), llm.Options{
		Endpoint: config.OracleEndpoint(),
		Model:    config.OracleModel(),
		APIKey:   config.OpenAIAPIKey(),
	})
	if err != nil {
		return nil, err
	}
	logger.Info("oracle client initialized",
		zap.String("provider", config.OracleProvider()),
		zap.String("model", config.OracleModel()))

	// Services
	interactionSvc := service.NewInteractionService(episodicStore, logger)
	ingestSvc := ingest.NewService(episodicStore, logger)
	reflectionSvc := service.NewReflectionService(episodicStore, beliefStore, oracle, service.ReflectionConfig{
		Window:              config.ReflectionWindow(),
		MinBeliefConfidence: config.MinBeliefConfidence(),
		SimilarityThreshold: config.BeliefSimilarityThreshold(),
		OracleTimeout:       config.OracleTimeout(),
	}, logger)
	synthesisSvc := service.NewSynthesisService(episodicStore, beliefStore, patternStore, tensionStore, oracle, service.SynthesisConfig{
		MinPatternConfidence: config.MinPatternConfidence(),
		OracleTimeout:        config.OracleTimeout(),
	}, logger)
	gate := service.NewRelevanceGate()
	formatter := service.NewFormatter(beliefStore, patternStore, tensionStore)

	// Handlers
	interactionHandler := handlers.NewInteractionHandler(interactionSvc)
	ingestHandler := handlers.NewIngestHandler(ingestSvc)
	reflectHandler := handlers.NewReflectHandler(reflectionSvc)
	synthesizeHandler := handlers.NewSynthesizeHandler(synthesisSvc)
	profileHandler := handlers.NewProfileHandler(beliefStore, patternStore, tensionStore)
	contextHandler := handlers.NewContextHandler(gate, formatter)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", healthHandler())
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/interactions", interactionHandler.Log)
		r.Post("/ingest", ingestHandler.Ingest)
		r.Post("/reflect", reflectHandler.Reflect)
		r.Post("/synthesize", synthesizeHandler.Synthesize)
		r.Get("/beliefs", profileHandler.GetBeliefs)
		r.Get("/patterns", profileHandler.GetPatterns)
		r.Get("/tensions", profileHandler.GetTensions)
		r.Post("/context", contextHandler.GetContext)
	})

	return app, nil
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.EpisodicStore = (*store.EpisodicStore)(nil)
	_ domain.BeliefStore   = (*store.BeliefStore)(nil)
	_ domain.PatternStore  = (*store.PatternStore)(nil)
	_ domain.TensionStore  = (*store.TensionStore)(nil)
	_ domain.Oracle        = (*llm.OllamaClient)(nil)
	_ domain.Oracle        = (*llm.OpenAIClient)(nil)
	_ domain.Oracle        = (*llm.MockOracle)(nil)
)
