package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kzk-maeda/mcp-book-search/availability"
	"github.com/kzk-maeda/mcp-book-search/calil"
	"github.com/kzk-maeda/mcp-book-search/registry"
)

const serverVersion = "0.2.0"

func main() {
	_ = godotenv.Load(".env.local")

	// stdout carries the MCP transport; everything else goes to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	appKey := mustGetEnv(logger, "CALIL_APPKEY")
	httpAddr := getEnv("MCP_HTTP_ADDR", "")

	client, err := calil.New(calil.Config{
		AppKey:        appKey,
		BaseURL:       getEnv("CALIL_BASE_URL", ""),
		PollInterval:  getEnvDuration(logger, "CALIL_POLL_INTERVAL"),
		MaxPollRounds: getEnvInt(logger, "CALIL_MAX_POLL_ROUNDS"),
		Logger:        slogLogger{logger},
	})
	if err != nil {
		logger.Error("cannot create calil client", "error", err)
		os.Exit(1)
	}

	resolver, err := availability.New(availability.Options{
		Directory: client,
		Checker:   client,
	})
	if err != nil {
		logger.Error("cannot create resolver", "error", err)
		os.Exit(1)
	}

	reg := registry.New(registry.Config{
		ServerInfo: registry.ServerInfo{Name: "mcp-book-search", Version: serverVersion},
	})
	if err := registerTools(reg, client, resolver); err != nil {
		logger.Error("cannot register tools", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if httpAddr != "" {
		logger.Info("serving MCP over HTTP", "addr", httpAddr)
		srv := &http.Server{
			Addr:         httpAddr,
			Handler:      registry.ServeHTTP(reg),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 60 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
		return
	}

	logger.Info("serving MCP over stdio")
	if err := registry.ServeStdio(ctx, reg); err != nil && ctx.Err() == nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

// slogLogger adapts slog to the calil.Logger interface.
type slogLogger struct {
	l *slog.Logger
}

func (s slogLogger) Logf(format string, args ...any) {
	s.l.Info(fmt.Sprintf(format, args...))
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustGetEnv(logger *slog.Logger, key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	logger.Error("missing required environment variable", "key", key)
	os.Exit(1)
	return ""
}

// getEnvDuration returns zero when unset, leaving the client default in
// place. A set-but-unparsable value is a configuration mistake worth failing
// loudly on at startup.
func getEnvDuration(logger *slog.Logger, key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Error("invalid duration environment variable", "key", key, "value", v)
		os.Exit(1)
	}
	return d
}

func getEnvInt(logger *slog.Logger, key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Error("invalid integer environment variable", "key", key, "value", v)
		os.Exit(1)
	}
	return n
}
