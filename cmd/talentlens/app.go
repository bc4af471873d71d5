package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/talentlens-cli/internal/api"
	"github.com/jonathan/talentlens-cli/internal/config"
	"github.com/jonathan/talentlens-cli/internal/gate"
	"github.com/jonathan/talentlens-cli/internal/observability"
	"github.com/jonathan/talentlens-cli/internal/session"
)

const defaultAPIURL = "http://127.0.0.1:8000"

// app bundles what every command needs: the session store, the API client,
// and the logger. One app is built per command invocation and torn down with
// the process.
type app struct {
	store  *session.Store
	client *api.Client
	logger *zap.Logger
}

// newApp resolves configuration (flags win over the config file, which wins
// over environment and defaults) and wires the session store and API client.
func newApp() (*app, error) {
	cfg := config.Config{}
	if flagConfigFile != "" {
		loaded, err := config.LoadConfig(flagConfigFile)
		if err != nil {
			return nil, err
		}
		if err := loaded.Validate(); err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	verbose := flagVerbose || cfg.Verbose
	logger := observability.NewLogger(verbose)

	baseURL := flagAPIURL
	if baseURL == "" {
		baseURL = cfg.APIURL
	}
	if baseURL == "" {
		baseURL = os.Getenv("TALENTLENS_API_URL")
	}
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	tokenPath := flagTokenFile
	if tokenPath == "" {
		tokenPath = cfg.TokenFile
	}
	if tokenPath == "" {
		resolved, err := session.DefaultTokenPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve token path: %w", err)
		}
		tokenPath = resolved
	}

	store, err := session.NewFileStore(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	opts := api.DefaultOptions()
	opts.Logger = logger
	if cfg.TimeoutMS > 0 {
		opts.Timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}

	return &app{
		store:  store,
		client: api.NewClient(baseURL, opts),
		logger: logger,
	}, nil
}

// requireRoute consults the access gate before a protected command runs.
func (a *app) requireRoute(route gate.Route) error {
	token, _ := a.store.CurrentToken()
	if decision := gate.Decide(route, token); decision.Action == gate.RedirectToLogin {
		return fmt.Errorf("%s requires an active session: run 'talentlens login' first", decision.From)
	}
	return nil
}
