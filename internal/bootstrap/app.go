// Package bootstrap wires configuration, storage, services, and HTTP routing
// into a runnable application. Both the API server and the queue worker share
// the same construction path so wiring stays identical between entrypoints.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"content-backend/internal/briefs"
	"content-backend/internal/clients"
	"content-backend/internal/content"
	"content-backend/internal/delivery"
	"content-backend/internal/experiments"
	"content-backend/internal/generation"
	"content-backend/internal/llm"
	"content-backend/internal/llm/openrouter"
	"content-backend/internal/payments"
	"content-backend/internal/quality"
	"content-backend/internal/queue"
	"content-backend/internal/services/health"
	"content-backend/internal/shared/config"
	"content-backend/internal/shared/server"
	"content-backend/internal/shared/storage/db"
	"content-backend/internal/shared/telemetry"
	"content-backend/internal/templates"
)

// BriefProcessor runs the full generation pipeline for one brief. Satisfied
// by the generation service; swapped for a stub in worker tests.
type BriefProcessor interface {
	ProcessBrief(ctx context.Context, briefID string) error
}

// App holds the wired application.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Queue  queue.Client

	Clients     *clients.Service
	Briefs      *briefs.Service
	Payments    *payments.Service
	Templates   *templates.Service
	Content     *content.Service
	Generation  *generation.Service
	Experiments *experiments.Service
	Health      *health.Service

	// BriefProcessor overrides Generation for queue message handling.
	BriefProcessor BriefProcessor

	BriefsHandler      *briefs.Handler
	PaymentsHandler    *payments.Handler
	TemplatesHandler   *templates.Handler
	ContentHandler     *content.Handler
	GenerationHandler  *generation.Handler
	ExperimentsHandler *experiments.Handler
}

// Options tweaks construction per entrypoint.
type Options struct {
	// DBOptions sets the connection pool profile; the API server and the
	// worker use different defaults.
	DBOptions db.Options
	// SkipRouter leaves App.Router nil; the worker has no HTTP surface.
	SkipRouter bool
}

// Build constructs the application from configuration.
func Build(cfg config.Config) (*App, error) {
	return BuildWithOptions(cfg, Options{DBOptions: db.OptionsFromEnv(db.DefaultServerOptions())})
}

// BuildWithOptions constructs the application with entrypoint-specific knobs.
func BuildWithOptions(cfg config.Config, opts Options) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg, opts.DBOptions)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Queue:  queueClient,
		Health: health.NewService(),
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	if !opts.SkipRouter {
		app.Router = server.NewRouter(server.RouterDeps{
			Config:      cfg,
			Health:      app.Health,
			Briefs:      app.BriefsHandler,
			Payments:    app.PaymentsHandler,
			Templates:   app.TemplatesHandler,
			Content:     app.ContentHandler,
			Generation:  app.GenerationHandler,
			Experiments: app.ExperimentsHandler,
		})
	}

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config, opts db.Options) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.QueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx, cfg.QueueURL)
}

func buildServices(app *App) error {
	cfg := app.Config

	var (
		clientRepo     clients.Repo
		briefRepo      briefs.Repo
		paymentRepo    payments.Repo
		templateRepo   templates.Repo
		contentRepo    content.Repo
		experimentRepo experiments.Repo
	)
	if app.DB != nil {
		clientRepo = &clients.PGRepo{DB: app.DB}
		briefRepo = &briefs.PGRepo{DB: app.DB}
		paymentRepo = &payments.PGRepo{DB: app.DB}
		templateRepo = &templates.PGRepo{DB: app.DB}
		contentRepo = &content.PGRepo{DB: app.DB}
		experimentRepo = &experiments.PGRepo{DB: app.DB}
	} else {
		clientRepo = clients.NewMemoryRepo()
		briefRepo = briefs.NewMemoryRepo()
		paymentRepo = payments.NewMemoryRepo()
		templateRepo = templates.NewMemoryRepo()
		contentRepo = content.NewMemoryRepo()
		experimentRepo = experiments.NewMemoryRepo()
	}

	app.Clients = clients.NewService(clientRepo)
	app.Briefs = &briefs.Service{Repo: briefRepo}
	app.Templates = &templates.Service{Repo: templateRepo}

	app.Content = &content.Service{
		Repo:      contentRepo,
		Briefs:    app.Briefs,
		Clients:   app.Clients,
		Deliverer: buildDeliverer(cfg),
	}

	app.Generation = &generation.Service{
		Briefs:    app.Briefs,
		Templates: app.Templates,
		Contents:  contentRepo,
		Content:   app.Content,
		LLM:       buildLLM(cfg),
		Selector:  generation.NewSelector(nil),
		Gate:      buildGate(cfg),
		Retry:     generation.DefaultRetryPolicy(),
	}

	app.Experiments = &experiments.Service{
		Repo:      experimentRepo,
		Briefs:    app.Briefs,
		Contents:  contentRepo,
		Generator: app.Generation,
	}

	app.Payments = &payments.Service{
		Repo:      paymentRepo,
		Gateway:   payments.DevGateway{},
		Briefs:    app.Briefs,
		Scheduler: buildScheduler(app),
	}

	app.BriefsHandler = briefs.NewHandler(app.Briefs, app.Clients, app.Payments, cfg.ContentPrice)
	app.PaymentsHandler = payments.NewHandler(app.Payments)
	app.TemplatesHandler = templates.NewHandler(app.Templates, templates.GenerationSourceFunc(func(ctx context.Context) ([]templates.GenerationRecord, error) {
		records, err := app.Content.UsageRecords(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]templates.GenerationRecord, 0, len(records))
		for _, r := range records {
			out = append(out, templates.GenerationRecord{
				TemplateID:   r.TemplateID,
				TemplateName: r.TemplateName,
				QualityScore: r.QualityScore,
			})
		}
		return out, nil
	}))
	app.ContentHandler = content.NewHandler(app.Content)
	app.GenerationHandler = generation.NewHandler(app.Generation)
	app.ExperimentsHandler = experiments.NewHandler(app.Experiments)

	return nil
}

// buildScheduler decides how paid briefs reach the pipeline: enqueued to SQS
// when a queue is configured, otherwise processed on a goroutine in-process.
func buildScheduler(app *App) payments.Scheduler {
	if app.Queue != nil {
		return payments.SchedulerFunc(func(ctx context.Context, briefID string) error {
			msg := queue.Message{
				BriefID:    briefID,
				RequestID:  generation.RequestIDFrom(ctx),
				EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
				Version:    1,
			}
			return app.Queue.Send(ctx, msg)
		})
	}

	return payments.SchedulerFunc(func(ctx context.Context, briefID string) error {
		bg := generation.BackgroundWithRequestID(ctx)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					telemetry.Error("generation.schedule.panic", map[string]any{
						"brief_id": briefID,
						"panic":    r,
					})
				}
			}()
			if err := app.Generation.ProcessBrief(bg, briefID); err != nil {
				telemetry.Error("generation.schedule.failed", map[string]any{
					"brief_id": briefID,
					"error":    err.Error(),
				})
			}
		}()
		return nil
	})
}

func buildLLM(cfg config.Config) llm.Client {
	switch strings.ToLower(strings.TrimSpace(cfg.LLMProvider)) {
	case "openrouter":
		client, err := openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterURL)
		if err != nil {
			log.Printf("bootstrap: openrouter unavailable, using placeholder provider: %v", err)
			return llm.PlaceholderClient{}
		}
		return client
	default:
		return llm.PlaceholderClient{}
	}
}

func buildGate(cfg config.Config) *quality.Gate {
	gate := &quality.Gate{
		Similarity: quality.LexicalSimilarity{},
		Threshold:  cfg.QualityThreshold,
	}
	if strings.TrimSpace(cfg.LanguageToolURL) != "" {
		gate.Grammar = quality.NewLanguageToolChecker(cfg.LanguageToolURL)
	}
	return gate
}

func buildDeliverer(cfg config.Config) delivery.Deliverer {
	if strings.TrimSpace(cfg.EmailFrom) == "" || strings.TrimSpace(cfg.EmailUsername) == "" {
		return delivery.LogDeliverer{}
	}
	return &delivery.SMTPDeliverer{
		Host:     cfg.EmailHost,
		Port:     cfg.EmailPort,
		Username: cfg.EmailUsername,
		Password: cfg.EmailPassword,
		From:     cfg.EmailFrom,
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
