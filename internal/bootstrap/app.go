package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"cvforge-backend/internal/account"
	googleauth "cvforge-backend/internal/auth"
	"cvforge-backend/internal/generations"
	"cvforge-backend/internal/llm"
	openai "cvforge-backend/internal/llm/openai"
	"cvforge-backend/internal/profiles"
	"cvforge-backend/internal/render"
	"cvforge-backend/internal/shared/config"
	"cvforge-backend/internal/shared/server"
	"cvforge-backend/internal/shared/storage/db"
	"cvforge-backend/internal/users"
)

// App holds the application's shared dependencies wired together.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	ProfileRepo    profiles.Repo
	GenerationRepo generations.Repo
	UserRepo       users.Repo

	ProfileService    *profiles.Service
	GenerationService *generations.Service
	RenderService     *render.Service
	AccountService    *account.Service
	UserService       *users.Service

	ProfileHandler    *profiles.Handler
	GenerationHandler *generations.Handler
	RenderHandler     *render.Handler
	AccountHandler    *account.Handler
	UserHandler       *users.Handler
	GoogleAuth        *googleauth.GoogleService
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		ProfileHandler:    app.ProfileHandler,
		GenerationHandler: app.GenerationHandler,
		RenderHandler:     app.RenderHandler,
		AccountHandler:    app.AccountHandler,
		UserHandler:       app.UserHandler,
		GoogleAuth:        app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
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

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			_ = sqlDB.Close()
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var profileRepo profiles.Repo
	var generationRepo generations.Repo
	var userRepo users.Repo

	if app.DB != nil {
		profileRepo = &profiles.PGRepo{DB: app.DB}
		generationRepo = &generations.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		profileRepo = profiles.NewMemoryRepo()
		generationRepo = generations.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" {
		openaiClient, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel, app.Config.LLMTimeout)
		if err != nil {
			if !isDevLike(app.Config.Env) {
				return err
			}
			log.Printf("bootstrap: openai client unavailable; using placeholder LLM client: %v", err)
		} else {
			llmClient = openaiClient
		}
	}

	profileSvc := &profiles.Service{Repo: profileRepo}
	generationSvc := &generations.Service{
		Repo:     generationRepo,
		Profiles: profileSvc,
		LLM:      llmClient,
	}
	renderSvc := &render.Service{
		Generations: generationSvc,
		Compiler: &render.Compiler{
			Binary:  app.Config.LatexBinary,
			Timeout: app.Config.RenderTimeout,
		},
	}
	userSvc := users.NewService(userRepo)
	accountSvc := account.NewService(profileRepo, generationRepo, userRepo)

	app.ProfileRepo = profileRepo
	app.GenerationRepo = generationRepo
	app.UserRepo = userRepo
	app.ProfileService = profileSvc
	app.GenerationService = generationSvc
	app.RenderService = renderSvc
	app.AccountService = accountSvc
	app.UserService = userSvc
	app.ProfileHandler = profiles.NewHandler(profileSvc)
	app.GenerationHandler = generations.NewHandler(generationSvc)
	app.RenderHandler = render.NewHandler(renderSvc)
	app.AccountHandler = account.NewHandler(accountSvc)
	app.UserHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	return nil
}
