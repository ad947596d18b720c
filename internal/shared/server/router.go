package server

import (
	"context"
	"database/sql"
	"log"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/analyses"
	googleauth "placement-backend/internal/auth"
	"placement-backend/internal/documents"
	"placement-backend/internal/shared/config"
	"placement-backend/internal/shared/metrics"
	"placement-backend/internal/shared/server/middleware"
	"placement-backend/internal/shared/server/respond"
	"placement-backend/internal/shared/storage/db"
	localstore "placement-backend/internal/shared/storage/object/local"
	"placement-backend/internal/users"
)

// NewRouter constructs the Gin engine with middleware, dependencies and
// routes registered. With no reachable database the repositories fall
// back to memory so local development works out of the box.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	store := localstore.New(cfg.LocalStoreDir)
	sqlDB := connectDB(cfg)

	var docRepo documents.Repo
	var analysisRepo analyses.Repo
	var userRepo users.Repo
	if sqlDB != nil {
		docRepo = &documents.PGRepo{DB: sqlDB}
		analysisRepo = &analyses.PGRepo{DB: sqlDB}
		userRepo = &users.PGRepo{DB: sqlDB}
	} else {
		docRepo = documents.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	docSvc := &documents.Service{Store: store, Repo: docRepo}
	analysisSvc := &analyses.Service{
		Repo:  analysisRepo,
		Cache: analyses.NewMemoryCache(),
		Delay: cfg.AnalysisDelay,
	}
	userSvc := users.NewService(userRepo)

	docHandler := documents.NewHandler(docSvc)
	analysisHandler := analyses.NewHandler(analysisSvc, docSvc)
	userHandler := users.NewHandler(userSvc)
	googleAuth := googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		userSvc,
	)

	api := r.Group("/api/v1")
	api.Use(middleware.Auth())
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})
	googleAuth.RegisterRoutes(api)
	userHandler.RegisterRoutes(api)
	docHandler.RegisterRoutes(api)
	analysisHandler.RegisterRoutes(api, middleware.RateLimit(cfg.AnalyzeRatePerMin, cfg.AnalyzeBurst))

	return r
}

func connectDB(cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL empty; using in-memory repositories")
		return nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("database connect failed, falling back to memory: %v", err)
		return nil
	}
	if err := db.MigrateUp(sqlDB); err != nil {
		log.Printf("migrations failed, falling back to memory: %v", err)
		sqlDB.Close()
		return nil
	}
	return sqlDB
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
