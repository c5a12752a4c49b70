package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"flixnet/internal/api"
	"flixnet/internal/auth"
	"flixnet/internal/config"
	grpcserver "flixnet/internal/grpc"
	"flixnet/internal/ratelimit"
	"flixnet/internal/watchlist"
	"flixnet/internal/websocket"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the gRPC catalog and the watchlist event hub",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.SeedOnStart {
			if err := runSeed(cmd.Context(), db, cfg.SeedFile, logger); err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger, db)
	},
}

// serve runs the HTTP API and, when configured, the gRPC catalog until ctx
// is cancelled or either server fails.
func serve(ctx context.Context, cfg config.Config, logger zerolog.Logger, db *sql.DB) error {
	// bind gRPC first so a bad address fails before anything is serving
	var grpcLis net.Listener
	if cfg.GRPCAddr != "" {
		var err error
		if grpcLis, err = net.Listen("tcp", cfg.GRPCAddr); err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
	}

	ctx, cancelHub := context.WithCancel(ctx)
	defer cancelHub()
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.Deps{
		DB:             db,
		Tokens:         auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		Watchlist:      watchlist.NewService(db, hub, logger),
		Hub:            hub,
		AuthLimiter:    ratelimit.New(cfg.AuthRatePerS, cfg.AuthRateBurst, 3*time.Minute),
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		Logger:         logger,
	})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var grpcSrv *grpc.Server
	if grpcLis != nil {
		grpcSrv = grpc.NewServer()
		grpcserver.RegisterCatalogServer(grpcSrv, grpcserver.NewServer(db, logger))
		reflection.Register(grpcSrv)
		go func() {
			logger.Info().Str("addr", cfg.GRPCAddr).Msg("gRPC catalog listening")
			if err := grpcSrv.Serve(grpcLis); err != nil {
				errCh <- err
			}
		}()
	}

	var err error
	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	case err = <-errCh:
		logger.Error().Err(err).Msg("server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		logger.Warn().Err(serr).Msg("http shutdown")
	}
	return err
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
