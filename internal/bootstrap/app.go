package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "cv-report-backend/internal/auth"
	"cv-report-backend/internal/documents"
	"cv-report-backend/internal/extract"
	"cv-report-backend/internal/llm"
	"cv-report-backend/internal/llm/openrouter"
	"cv-report-backend/internal/reports"
	"cv-report-backend/internal/shared/config"
	"cv-report-backend/internal/shared/server"
	"cv-report-backend/internal/shared/storage/db"
)

// App holds shared dependencies. The DB handle is opened here and owned by
// the caller: close it via Close at shutdown.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	DocumentsRepo    documents.Repo
	ReportsRepo      reports.Repo
	DocumentsService *documents.Service
	ReportsService   *reports.Service
	DocumentsHandler *documents.Handler
	ReportsHandler   *reports.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares all dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}

	if err := buildServices(app); err != nil {
		if sqlDB != nil {
			sqlDB.Close()
		}
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		DocumentHandler: app.DocumentsHandler,
		ReportHandler:   app.ReportsHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
}

// Close releases the resources held by the app.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errors.New("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if isDevLike(cfg.Env) {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	return sqlDB, nil
}

func buildServices(app *App) error {
	var docRepo documents.Repo
	var reportRepo reports.Repo

	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		reportRepo = &reports.PGRepo{DB: app.DB}
	} else {
		memReports := reports.NewMemoryRepo()
		reportRepo = memReports
		docRepo = documents.NewMemoryRepo(reportSummaryLookup(memReports))
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openrouter" && app.Config.OpenRouterKey != "" {
		client, err := openrouter.NewClient(app.Config.OpenRouterKey, app.Config.LLMModel, app.Config.OpenRouterBaseURL)
		if err != nil {
			return err
		}
		llmClient = client
	} else {
		log.Printf("bootstrap: no completion provider configured; report generation will fail")
	}

	docSvc := &documents.Service{
		Repo:    docRepo,
		Extract: extract.Text,
	}
	reportSvc := &reports.Service{
		Repo:           reportRepo,
		Docs:           documentAdapter{repo: docRepo},
		LLM:            llmClient,
		PromptMaxChars: app.Config.PromptMaxChars,
	}

	app.DocumentsRepo = docRepo
	app.ReportsRepo = reportRepo
	app.DocumentsService = docSvc
	app.ReportsService = reportSvc
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.ReportsHandler = reports.NewHandler(reportSvc)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
	)

	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

// documentAdapter exposes the documents store under the narrow contract the
// reports service consumes.
type documentAdapter struct {
	repo documents.Repo
}

func (a documentAdapter) GetByID(ctx context.Context, id int64) (reports.DocumentRecord, error) {
	doc, err := a.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return reports.DocumentRecord{}, reports.ErrDocumentNotFound
		}
		return reports.DocumentRecord{}, err
	}
	return reports.DocumentRecord{
		ID:      doc.ID,
		OwnerID: doc.OwnerID,
		Text:    doc.Text,
	}, nil
}

// reportSummaryLookup lets the in-memory documents repo resolve report
// summaries the way the Postgres left join does.
func reportSummaryLookup(repo reports.Repo) documents.ReportSummaryFn {
	return func(ctx context.Context, documentID int64) (documents.ReportSummary, bool, error) {
		report, err := repo.GetByDocument(ctx, documentID)
		if err != nil {
			if errors.Is(err, reports.ErrNotFound) {
				return documents.ReportSummary{}, false, nil
			}
			return documents.ReportSummary{}, false, err
		}
		return documents.ReportSummary{ID: report.ID, CreatedAt: report.CreatedAt}, true, nil
	}
}
