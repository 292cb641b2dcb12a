package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/web/server"
	"github.com/urfave/cli"
)

// Serve starts the preview server and blocks until it is interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	info := GetSystemInfo()
	logSystemInfo(info)

	defaults := renderer.DefaultRenderConfig()
	defaults.NumWorkers = info.PhysicalCores
	if n := ctx.Int("workers"); n > 0 {
		defaults.NumWorkers = n
	}

	srv := server.New(ctx.String("addr"), defaults)
	limits := server.DefaultLimits()
	if n := ctx.Int("max-pixels"); n > 0 {
		limits.MaxPixels = n
	}
	if n := ctx.Int("max-spp"); n > 0 {
		limits.MaxSamples = n
	}
	srv.SetLimits(limits)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	logger.Notice("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
