package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Tmacphee13/ci-demo/internal/config"
	"github.com/Tmacphee13/ci-demo/internal/server"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

func main() {
	logger := newLogger(os.Stderr)

	// .env is optional; values already in the environment win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		level.Error(logger).Log("msg", "load .env file", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, os.Getenv); err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return level.NewFilter(logger, level.AllowInfo())
}

func run(ctx context.Context, logger log.Logger, getenv func(string) string) error {
	cfg, err := config.Load(getenv)
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	srv := server.New(server.WithLogger(logger))
	return srv.Run(ctx, cfg.Port)
}
