package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"statefi/config"
	"statefi/core/events"
	"statefi/core/state"
	"statefi/core/types"
	"statefi/native/bridge"
	"statefi/observability/logging"
	"statefi/rpc"
	"statefi/storage"
)

const envName = "STATEFI_ENV"

// slogEmitter forwards ledger events to the structured logger so operators can
// trail settlement activity without a dedicated subscriber.
type slogEmitter struct {
	logger *slog.Logger
}

func (e slogEmitter) Emit(evt events.Event) {
	if evt == nil {
		return
	}
	args := []any{slog.String("type", evt.EventType())}
	if typed, ok := evt.(*types.Event); ok && typed != nil {
		for key, value := range logging.RedactAttrs(typed.Attributes) {
			args = append(args, slog.String(key, value))
		}
	}
	e.logger.Info("ledger event", args...)
}

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv(envName))

	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	var logOut io.Writer
	if strings.TrimSpace(cfg.LogFile) != "" {
		logOut = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSize,
			MaxBackups: cfg.LogBackups,
			MaxAge:     cfg.LogMaxAge,
			Compress:   true,
		}
	}
	logger := logging.Setup("statefid", env, logOut)

	db, err := storage.NewLevelDB(cfg.DataDir)
	if err != nil {
		panic(fmt.Sprintf("Failed to open database: %v", err))
	}
	defer db.Close()

	engine := bridge.NewEngine()
	engine.SetState(state.NewManager(db))
	engine.SetEmitter(slogEmitter{logger: logger})

	server := rpc.NewServer(engine)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(cfg.RPCAddress); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	logger.Info("statefid started",
		slog.String("rpc", cfg.RPCAddress),
		slog.String("dataDir", cfg.DataDir),
		slog.String("network", cfg.NetworkName),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("RPC server failed", slog.Any("error", err))
		os.Exit(1)
	case sig := <-sigCh:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
}
