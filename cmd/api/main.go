package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/roastery/internal/client"
	clientStore "github.com/MrJamesThe3rd/roastery/internal/client/store"
	"github.com/MrJamesThe3rd/roastery/internal/config"
	"github.com/MrJamesThe3rd/roastery/internal/database"
	"github.com/MrJamesThe3rd/roastery/internal/delivery"
	deliveryStore "github.com/MrJamesThe3rd/roastery/internal/delivery/store"
	roasteryHttp "github.com/MrJamesThe3rd/roastery/internal/http"
	"github.com/MrJamesThe3rd/roastery/internal/http/auth"
	clientHandler "github.com/MrJamesThe3rd/roastery/internal/http/client"
	deliveryHandler "github.com/MrJamesThe3rd/roastery/internal/http/delivery"
	invoiceHandler "github.com/MrJamesThe3rd/roastery/internal/http/invoice"
	statsHandler "github.com/MrJamesThe3rd/roastery/internal/http/stats"
	"github.com/MrJamesThe3rd/roastery/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/roastery/internal/invoice/store"
	"github.com/MrJamesThe3rd/roastery/internal/stats"
	statsStore "github.com/MrJamesThe3rd/roastery/internal/stats/store"
)

func main() {
	issueToken := flag.String("issue-token", "", "print a token for this subject signed with JWT_SECRET and exit")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of the token printed by -issue-token")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))

	if *issueToken != "" {
		if err := printToken(cfg, *issueToken, *tokenTTL); err != nil {
			slog.Error("failed to issue token", "error", err)
			os.Exit(1)
		}

		return
	}

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	var (
		statsService    = stats.NewService(statsStore.New(db))
		clientService   = client.NewService(clientStore.New(db))
		invoiceService  = invoice.NewService(invoiceStore.New(db))
		deliveryService = delivery.NewService(deliveryStore.New(db))
	)

	var (
		statsH    = statsHandler.NewHandler(statsService)
		clientH   = clientHandler.NewHandler(clientService)
		invoiceH  = invoiceHandler.NewHandler(invoiceService)
		deliveryH = deliveryHandler.NewHandler(deliveryService)
	)

	opts := roasteryHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Health:         db,
	}

	if cfg.Auth.Secret != "" {
		opts.Authenticate = auth.New(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.Audience).Handler
	} else {
		slog.Warn("JWT_SECRET is not set, the API accepts unauthenticated requests")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           roasteryHttp.New(opts, statsH, clientH, invoiceH, deliveryH),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "name", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", cfg.Server.Timeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func printToken(cfg *config.Config, subject string, ttl time.Duration) error {
	if cfg.Auth.Secret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	now := time.Now()

	tok, err := auth.New(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.Audience).Sign(auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    cfg.Auth.Issuer,
			Audience:  audience(cfg.Auth.Audience),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	if err != nil {
		return err
	}

	fmt.Println(tok)

	return nil
}

func audience(aud string) jwt.ClaimStrings {
	if aud == "" {
		return nil
	}

	return jwt.ClaimStrings{aud}
}
