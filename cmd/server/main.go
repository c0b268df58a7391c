package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelichko/study-backend/internal/auth"
	"github.com/avelichko/study-backend/internal/catalog"
	"github.com/avelichko/study-backend/internal/store"
	"github.com/avelichko/study-backend/internal/token"
	"github.com/avelichko/study-backend/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := newStore(ctx, cfg)
	cancel()
	if err != nil {
		logger.Fatal("init store", zap.String("adapter", cfg.StoreAdapter), zap.Error(err))
	}

	issuer := token.NewIssuer(cfg.AccessSecret, cfg.RefreshSecret)
	authHandler := auth.NewHandler(st, issuer, logger)
	catalogHandler := catalog.NewHandler(st, logger)

	router := gin.Default()
	router.Use(cors.Default())

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.POST("/refresh", authHandler.Refresh)
	router.GET("/health", func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := router.Group("/", auth.RequireAuth(issuer))
	protected.GET("/lessons", catalogHandler.ListLessons)
	protected.POST("/lessons", catalogHandler.CreateLesson)
	protected.PUT("/lessons/:id", catalogHandler.UpdateLesson)
	protected.DELETE("/lessons/:id", catalogHandler.DeleteLesson)
	protected.GET("/exercises", catalogHandler.ListExercises)
	protected.POST("/exercises", catalogHandler.CreateExercise)
	protected.PUT("/exercises/:id", catalogHandler.UpdateExercise)
	protected.DELETE("/exercises/:id", catalogHandler.DeleteExercise)

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: router}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := st.Close(shutdownCtx); err != nil {
		logger.Error("store close", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreAdapter {
	case "mongo":
		return store.NewMongoStore(ctx, cfg.MongoURI)
	case "postgres":
		return store.NewPostgresStore(cfg.DatabaseURL)
	default:
		return store.NewMemoryStore(), nil
	}
}
