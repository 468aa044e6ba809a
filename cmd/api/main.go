// Package main starts the juju-dotty HTTP server. It renders POSTed juju
// status documents as DOT graphs and exposes health and Prometheus metrics
// endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/jujuviz/core/cmd/api/middleware"
	"github.com/jujuviz/core/internal/config"
	"github.com/jujuviz/core/internal/handlers"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func run(args []string) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}
	if err := cfg.SetupLogging(os.Stderr); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ListenAddr, cfg.Port),
		Handler:           newRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", server.Addr).Info("server starting")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "failed to serve")
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Wrap(server.Shutdown(shutdownCtx), "failed to shut down")
}

func parseFlags(args []string) (*config.Config, error) {
	defaults := config.Default()

	fs := flag.NewFlagSet("juju-dotty-api", flag.ContinueOnError)
	fs.String("listen-addr", defaults.ListenAddr, "address to listen on")
	fs.Int("port", defaults.Port, "port to listen on")
	fs.String("cors-origin", defaults.CORSOrigin, "allowed CORS origin")
	fs.String("nagios-file", "", "nagios livestatus JSON dump")
	fs.String("nagios-url", "", "nagios status.cgi URL")
	fs.String("nagios-prefix", "", "environment prefix of nagios hostnames")
	fs.String("exclude", "", "default exclude regexp")
	fs.String("include", "", "default include regexp")
	fs.String("title", "", "default graph title")
	fs.String("log-level", defaults.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "failed to parse flags")
	}
	return config.LoadFlagSet(fs)
}

func newRouter(cfg *config.Config) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handlers.NewHealthHandler(cfg))
	mux.HandleFunc("/render", handlers.NewRenderHandler(cfg))
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestLogger(middleware.NewCors(cfg.CORSOrigin)(mux))
}
