package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forum/app/config"
	"forum/app/logging"
	"forum/app/repositories"
	"forum/app/routes"
)

var log = logging.NewLogger("service")

const shutdownTimeout = 5 * time.Second

// RunAppServer starts the forum API and blocks until SIGINT or SIGTERM.
func RunAppServer(args []string) int {
	cfg, err := config.Parse("serve", args, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	if err := logging.Setup(os.Stderr, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Errorf("listen on %s: %v", cfg.Addr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Serve(ctx, cfg, ln); err != nil {
		log.Errorf("server: %v", err)
		return 1
	}
	return 0
}

// Serve runs the API on ln until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, cfg *config.Config, ln net.Listener) error {
	db, err := repositories.Open(cfg.DBPath)
	if err != nil {
		ln.Close()
		return err
	}
	defer db.Close()

	srv := &http.Server{
		Handler:           routes.SetupRoutes(db, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Infof("forum API listening on %s (db %s)", ln.Addr(), cfg.DBPath)
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
