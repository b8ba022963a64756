package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Tiliavir/healthsync/internal/collections"
	"github.com/Tiliavir/healthsync/internal/config"
	"github.com/Tiliavir/healthsync/internal/credentials"
	"github.com/Tiliavir/healthsync/internal/logging"
	"github.com/Tiliavir/healthsync/internal/metrics"
	"github.com/Tiliavir/healthsync/internal/remote"
	"github.com/Tiliavir/healthsync/internal/store"
)

// app is everything one command invocation needs.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	tokens *credentials.Accessor
	set    *collections.Set
	reg    *prometheus.Registry
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.Log, os.Stderr)

	session := &credentials.Session{}
	if flagToken != "" {
		session.Set(flagToken)
	}
	tokens := credentials.Default(session, cfg.Auth.TokenEnv, cfg.Auth.TokenFile, func(err error) {
		log.Warn("ignoring token file", "path", cfg.Auth.TokenFile, "error", err)
	})
	client := remote.NewClient(cfg.API.URL, tokens.TokenSource(), remote.WithLogger(log))

	reg := prometheus.NewRegistry()
	m, err := metrics.NewLifecycle(reg)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	return &app{
		cfg:    cfg,
		log:    log,
		tokens: tokens,
		set:    collections.NewSet(client, store.WithLogger(log), store.WithObserver(m)),
		reg:    reg,
	}, nil
}

// owner returns --user or the user ID carried by the current token.
func (a *app) owner() (string, error) {
	if flagUser != "" {
		return flagUser, nil
	}
	tok, _, ok := a.tokens.Token()
	if !ok {
		return "", fmt.Errorf("no token found; set %s or pass --user", a.cfg.Auth.TokenEnv)
	}
	id, err := credentials.OwnerID(tok)
	if err != nil {
		return "", fmt.Errorf("cannot determine user from token (%v); pass --user", err)
	}
	return id, nil
}

// settle reports a failed store operation and exits non-zero.
func settle[T any](st store.State[T]) {
	if st.LastError != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", *st.LastError)
		os.Exit(1)
	}
}
