package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-members-server/auth"
	"github.com/jrsteele09/go-members-server/server"
	"github.com/jrsteele09/go-members-server/sessions"
	"github.com/jrsteele09/go-members-server/users"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	displayAppname(cfg.GetAppName())

	userRepo, err := openUserStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeQuietly("user store", userRepo.Close)

	sessionRepo, closeSessions, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeQuietly("session store", closeSessions)

	manager, err := sessions.NewManager(sessionRepo, cfg.GetSessionTTL())
	if err != nil {
		return err
	}

	handler, err := server.New(cfg, auth.Deps{
		Users:    userRepo,
		Sessions: manager,
		Hasher:   users.NewBcryptHasher(cfg.GetBcryptCost()),
	})
	if err != nil {
		return err
	}

	go sweepExpiredSessions(ctx, manager)

	httpServer := &http.Server{
		Addr:              cfg.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listenAndServe(httpServer)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	if err := shutdown(httpServer); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

// sweepExpiredSessions purges expired sessions once per TTL until ctx is done
func sweepExpiredSessions(ctx context.Context, manager *sessions.Manager) {
	ticker := time.NewTicker(manager.TTL())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := manager.PurgeExpired(ctx); err != nil {
				log.Err(err).Msg("purge expired sessions")
			}
		}
	}
}

func closeQuietly(name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Err(err).Str("store", name).Msg("close failed")
	}
}
