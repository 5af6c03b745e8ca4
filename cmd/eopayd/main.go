package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/mwork/eopayment/internal/config"
	"github.com/mwork/eopayment/internal/domain/checkout"
	"github.com/mwork/eopayment/internal/middleware"
	"github.com/mwork/eopayment/internal/pkg/jwt"
	"github.com/mwork/eopayment/internal/pkg/logger"
	"github.com/mwork/eopayment/internal/pkg/payment"
	pkgresponse "github.com/mwork/eopayment/internal/pkg/response"
	"github.com/mwork/eopayment/internal/pkg/txid"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}
	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTTokenTTL)

	// eopayd token <merchant> prints a bearer token for POST /payments
	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := issueToken(os.Stdout, jwtService, os.Args[2:]); err != nil {
			log.Fatal().Err(err).Msg("Failed to issue merchant token")
		}
		return
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("backend", cfg.PaymentBackend).
		Str("txid_store", cfg.TxIDStore).
		Msg("Starting eopayment")

	store, closeStore, err := openClaimStore(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open transaction id store")
	}
	defer closeStore()

	backendCfg, err := cfg.Backend()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid payment backend")
	}
	p, err := payment.NewPayment(backendCfg, payment.Dependencies{IDs: txid.NewGenerator(store)})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure payment backend")
	}

	handler := checkout.NewHandler(checkout.NewService(p))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(handler, middleware.Auth(jwtService)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newRouter(handler *checkout.Handler, authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{"status": "ok"})
	})

	r.Mount("/payments", handler.Routes(authMiddleware))
	r.Mount("/backends", handler.BackendRoutes())
	return r
}

func issueToken(out io.Writer, jwtService *jwt.Service, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: eopayd token <merchant-id>")
	}
	token, err := jwtService.GenerateMerchantToken(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}

// openClaimStore opens the transaction id claim store selected by
// TXID_STORE. The returned func releases it.
func openClaimStore(ctx context.Context, cfg *config.Config) (txid.ClaimStore, func(), error) {
	noop := func() {}

	switch cfg.TxIDStore {
	case config.TxIDStoreMemory:
		log.Warn().Msg("Transaction ids are only unique within this process")
		return txid.NewMemoryStore(), noop, nil
	case config.TxIDStoreFile, "":
		store, err := txid.NewFileStore(cfg.TxIDDir)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	case config.TxIDStoreRedis:
		store, err := txid.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		return store, closer("redis", store.Close), nil
	case config.TxIDStorePostgres:
		store, err := txid.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("create claims table: %w", err)
		}
		return store, closer("postgres", store.Close), nil
	default:
		return nil, nil, fmt.Errorf("unknown transaction id store %q", cfg.TxIDStore)
	}
}

func closer(name string, close func() error) func() {
	return func() {
		if err := close(); err != nil {
			log.Error().Err(err).Str("store", name).Msg("Error closing transaction id store")
		} else {
			log.Info().Str("store", name).Msg("Transaction id store closed")
		}
	}
}
