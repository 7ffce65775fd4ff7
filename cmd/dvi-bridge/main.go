// cmd/dvi-bridge/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/TigerTown3661/dvi-bridge/internal/common/config"
	"github.com/TigerTown3661/dvi-bridge/internal/common/logger"
	"github.com/TigerTown3661/dvi-bridge/internal/common/rowriter"
	"github.com/TigerTown3661/dvi-bridge/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting DVI bridge",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	dvi := rowriter.New(cfg.DVI, log)
	e := server.New(cfg, dvi, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	zapLog.Info("DVI bridge listening", zap.String("addr", addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		zapLog.Error("shutdown failed", zap.Error(err))
	}
}
