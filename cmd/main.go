package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/dkarpov/taskman-server/internal/api/http/router"
	"github.com/dkarpov/taskman-server/internal/config"
	"github.com/dkarpov/taskman-server/internal/logger"
	"github.com/dkarpov/taskman-server/internal/model"
	"github.com/dkarpov/taskman-server/internal/repository/mongodb"
	"github.com/dkarpov/taskman-server/internal/server"
	"github.com/dkarpov/taskman-server/internal/service"
	"github.com/dkarpov/taskman-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := mongodb.NewConnection(ctx, cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close(context.Background())

	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("failed to ensure user indexes", "error", err)
	}
	if err := taskRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("failed to ensure task indexes", "error", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	authService := service.NewAuth(userRepo, tokenManager, logger)
	taskService := service.NewTask(taskRepo, logger)

	gin.SetMode(gin.ReleaseMode)
	r := router.New(authService, taskService, tokenManager, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
