package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pkwallet/internal/api"
	"pkwallet/internal/client"
	"pkwallet/internal/config"
	"pkwallet/internal/portal"
	"pkwallet/internal/relay"
	"pkwallet/internal/session"
	"pkwallet/wallet"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

var opt struct {
	debug bool
}

// @title        pkwallet daemon API
// @version      1.0
// @description  Passkey-secured wallet with relay-sponsored token transfers
// @BasePath     /
func main() {
	flag.BoolVar(&opt.debug, "debug", false, "debug mode")
	flag.Parse()

	logger := initLogger()

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env", "err", err)
	}

	if err := config.Init(); err != nil {
		logger.Error("config init failed", "err", err)
		os.Exit(1)
	}
	cfg := config.Get()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := buildSessionStore(ctx, cfg)
	if err != nil {
		logger.Error("session store init failed", "err", err)
		os.Exit(1)
	}

	chain, err := client.NewSolanaClient(cfg.SolanaRPCURL, cfg.TokenMint, cfg.Commitment)
	if err != nil {
		logger.Error("solana client init failed", "err", err)
		os.Exit(1)
	}

	svc := wallet.NewService(wallet.Options{
		Store:       store,
		Chain:       chain,
		Relay:       relay.New(cfg.RelayURL, cfg.RelayKey),
		Rates:       client.NewRateClient(cfg.FiatCurrency),
		Portal:      portal.New(cfg.PortalURL, cfg.PortalApp),
		Logger:      logger,
		CallbackURL: cfg.CallbackURL,
		Commitment:  cfg.Commitment,
		SessionTTL:  config.GetSessionTTL(),
		ConfirmWait: config.GetConfirmTimeout(),
		ConfirmPoll: config.GetConfirmPollInterval(),
	})

	svr := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.SetupRouter(svc, logger),
	}

	logger.Info("wallet daemon launched", "addr", svr.Addr, "rpc", cfg.SolanaRPCURL, "backend", cfg.SessionBackend)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return svr.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exit", "err", err)
	}
}

func initLogger() *slog.Logger {
	level := slog.LevelInfo
	if opt.debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

func buildSessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.SessionBackend {
	case "redis":
		return session.NewRedisStore(ctx, cfg.RedisURL, config.GetSessionTTL())
	default:
		if err := config.PromptForPassphrase(); err != nil {
			return nil, err
		}
		passphrase, err := config.GetSessionPassphraseBytes()
		if err != nil {
			return nil, err
		}
		defer clear(passphrase)
		return session.NewFileStore(cfg.SessionFilePath, passphrase)
	}
}
