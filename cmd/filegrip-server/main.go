// Command filegrip-server serves an in-memory file tree over the /api
// routes filegrip speaks. It is meant for local development.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"filegrip/internal/api"
	"filegrip/internal/logging"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:3000", "Listen address")
	empty := flag.Bool("empty", false, "Start with an empty tree instead of the demo files")
	capacity := flag.Int64("capacity", 512<<20, "Reported total space in bytes")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	if err := logging.Init(logging.Config{Level: *logLevel, Format: "console", OutputPath: "stderr"}); err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logging.Sync() }()

	src := api.NewDemoSource()
	if *empty {
		src = api.NewMemorySource(*capacity)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.NewHandler(src),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.Info("serving file api", zap.String("addr", *addr), zap.Bool("demo", !*empty))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Error("server failed", zap.Error(err))
		os.Exit(1)
	}
}
