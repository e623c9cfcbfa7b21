package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boutiqueCMS/cmd/app"
	"boutiqueCMS/internal/config"
	handlers "boutiqueCMS/internal/handler"
	"boutiqueCMS/internal/logger"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()
	log := logger.Init(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	if cfg.JWTSecretKey == "" {
		log.Fatal().Msg("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, _, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, cfg)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           handlers.NewRouter(handler, log),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("env", cfg.AppEnv).
			Str("storage", cfg.Storage.Backend).
			Str("database", cfg.DB.DbNAME).
			Msg("сервер запущен")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ошибка запуска сервера")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("получен сигнал остановки")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("сервер остановлен принудительно")
		return
	}
	if err := services.Feed.Wait(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("загрузка изображений Instagram прервана")
	}
	log.Info().Msg("сервер остановлен")
}
