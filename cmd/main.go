package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/examsim/config"
	_ "github.com/lshigami/examsim/docs" // Swagger docs
	"github.com/lshigami/examsim/internal/controller"
	examctrl "github.com/lshigami/examsim/internal/controller/exam"
	"github.com/lshigami/examsim/internal/database"
	"github.com/lshigami/examsim/internal/lock"
	"github.com/lshigami/examsim/internal/logger"
	"github.com/lshigami/examsim/internal/repository"
	"github.com/lshigami/examsim/internal/service"
	"github.com/lshigami/examsim/internal/validator"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// @title Data Engineer Exam Simulator API
// @version 1.0
// @description Runs LLM-generated technical interview exams: batch question generation, typed or spoken answers, and graded feedback.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	validator.Setup()

	app := fx.New(
		fx.Supply(cfg),
		fx.NopLogger,

		fx.Provide(
			NewSessionRepository,
			NewSessionLocker,
			NewLLMService,
			NewGinEngine,
		),

		fx.Provide(
			service.NewExamService,
		),

		fx.Provide(
			controller.NewController,
			examctrl.NewExamController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Application stopped with errors")
	}
}

// NewSessionRepository picks the session store named by STORAGE_DRIVER.
func NewSessionRepository(lc fx.Lifecycle, cfg *config.Config) (repository.SessionRepository, error) {
	switch cfg.Storage.Driver {
	case "file", "":
		return repository.NewFileSessionRepository(cfg.Storage.SessionDir)
	case "postgres":
		db, err := database.NewDatabase(cfg)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		})
		return repository.NewGormSessionRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// NewSessionLocker uses Redis when REDIS_URL is set so several API replicas
// can share one session store.
func NewSessionLocker(lc fx.Lifecycle, cfg *config.Config) (lock.SessionLocker, error) {
	if cfg.Redis.URL == "" {
		return lock.NewMemoryLocker(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rdb, err := database.NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return rdb.Close()
		},
	})
	return lock.NewRedisLocker(rdb, cfg.Redis.LockTTL), nil
}

func NewLLMService(lc fx.Lifecycle, cfg *config.Config) (service.LLMService, error) {
	svc, err := service.NewLLMServiceFromConfig(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return svc.Close()
		},
	})
	return svc, nil
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	systemCtrl *controller.Controller,
	examCtrl *examctrl.ExamController,
) {
	systemCtrl.RegisterRoutes(router)
	examCtrl.RegisterRoutes(router.Group("/api/v1"))

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam simulator API starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
