package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/clipbridge/clipbridge/internal/api"
	"github.com/clipbridge/clipbridge/internal/auth"
	"github.com/clipbridge/clipbridge/internal/browser"
	"github.com/clipbridge/clipbridge/internal/config"
	"github.com/clipbridge/clipbridge/internal/notify"
	"github.com/clipbridge/clipbridge/internal/session"
)

// listCacheTTL controls how long video listings are served from cache.
const listCacheTTL = time.Minute

// dependencies wires together the concrete implementations behind each
// command.
type dependencies struct {
	cfg          config.Config
	logger       *slog.Logger
	store        session.Store
	client       *api.Client
	orchestrator *auth.Orchestrator
	lister       *api.CachingLister
	notifier     *notify.Terminal
}

func buildDependencies(cfg config.Config, logger *slog.Logger) (*dependencies, error) {
	store, err := session.NewFileStore(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("open state directory: %w", err)
	}

	notifier := notify.NewTerminal(logger)
	navigator := &cliNavigator{out: os.Stderr}

	client := api.New(cfg.APIBaseURL, store, api.Options{
		HTTPClient:        &http.Client{Timeout: cfg.HTTPTimeout},
		Notifier:          notifier,
		Navigator:         navigator,
		RequestsPerMinute: cfg.RequestsPerMin,
		Burst:             cfg.RequestBurst,
	})

	orchestrator := auth.New(store, client, auth.Options{
		Browser:   browser.Opener{},
		Notifier:  notifier,
		Navigator: navigator,
		Logger:    logger,
	})

	return &dependencies{
		cfg:          cfg,
		logger:       logger,
		store:        store,
		client:       client,
		orchestrator: orchestrator,
		lister:       api.NewCachingLister(client, listCacheTTL),
		notifier:     notifier,
	}, nil
}

// cliNavigator translates the web client's route changes into terminal
// hints: there is no page to move to, only a next command to suggest.
type cliNavigator struct {
	out io.Writer
}

func (n *cliNavigator) ToLogin() {
	fmt.Fprintln(n.out, "Session expired. Run 'clipbridge login' to sign in again.")
}

func (n *cliNavigator) ToHome() {
	fmt.Fprintln(n.out, "Run 'clipbridge wizard' to start a download.")
}

func (n *cliNavigator) ToUpload() {
	fmt.Fprintln(n.out, "Run 'clipbridge upload' to publish a converted video.")
}
