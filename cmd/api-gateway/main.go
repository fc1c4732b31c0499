package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	_ "github.com/equipo46/horarios-api/api/swagger"
	"github.com/equipo46/horarios-api/internal/backendless"
	"github.com/equipo46/horarios-api/internal/handler"
	"github.com/equipo46/horarios-api/internal/router"
	"github.com/equipo46/horarios-api/internal/service"
	"github.com/equipo46/horarios-api/pkg/config"
	"github.com/equipo46/horarios-api/pkg/logger"
)

// @title Planificador de Horarios API
// @version 1.0.0
// @description REST gateway proxying subject CRUD and login to Backendless
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()

	client, err := backendless.NewClient(cfg.Backendless, logr, metricsSvc)
	if err != nil {
		logr.Sugar().Fatalw("failed to init backendless client", "error", err)
	}

	validate := validator.New()
	authSvc := service.NewAuthService(client, validate, logr)
	subjectSvc := service.NewSubjectService(client, validate, logr)

	handlers := &router.Handlers{
		Auth:    handler.NewAuthHandler(authSvc),
		Subject: handler.NewSubjectHandler(subjectSvc),
		System:  handler.NewSystemHandler(),
		Metrics: handler.NewMetricsHandler(metricsSvc),
	}

	engine := router.Setup(cfg, logr, handlers, metricsSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Sugar().Infow("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("forced shutdown", "error", err)
	}
}
