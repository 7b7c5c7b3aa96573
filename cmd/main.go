package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/speech_proxy/internal/config"
	"github.com/Vovarama1992/speech_proxy/internal/delivery"
	"github.com/Vovarama1992/speech_proxy/internal/error_notificator"
	"github.com/Vovarama1992/speech_proxy/internal/speech"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	var errInfra error_notificator.Notificator = error_notificator.NopInfra{}
	if cfg.AlertsEnabled() {
		tg, err := error_notificator.NewTelegramInfra(cfg.Telegram.Token, cfg.Telegram.ChatID, error_notificator.DefaultSendTimeout)
		if err != nil {
			log.Fatalf("failed to init telegram alerts: %v", err)
		}
		errInfra = tg
	}
	errService := error_notificator.NewService(errInfra, zl)
	go errService.Run(ctx)

	// =========================================================================
	// INFERENCE
	// =========================================================================

	sttClient, ttsClient, err := speech.NewClients(cfg)
	if err != nil {
		log.Fatalf("failed to init inference provider: %v", err)
	}

	speechService := speech.NewService(
		sttClient,
		ttsClient,
		cfg.RequestTimeout,
		zl,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	speechHandler := delivery.NewSpeechHandler(speechService, errService, zl)
	delivery.RegisterRoutes(r, speechHandler, cfg.STTPath, cfg.TTSPath)

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr + ", provider=" + cfg.Provider,
		Service: "speech_proxy",
	})

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
