// Package cli implements the interactive terminal client: a REPL that
// plays the part of the website's pages — public browsing, the member
// portal, and the admin console — on top of the auth service, the access
// gate, and the typed resource services.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/parishportal/parishportal/internal/client/client"
	"github.com/parishportal/parishportal/internal/client/config"
	"github.com/parishportal/parishportal/internal/client/services"
	"github.com/parishportal/parishportal/internal/client/store"
	"github.com/parishportal/parishportal/internal/logging"
)

// Mode reflects backend reachability as seen by the status watcher.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// App wires the CLI together: config, local state database, API client,
// and the application services.
type App struct {
	config *config.Config
	log    logging.Logger
	repos  *store.Repositories

	auth       services.AuthService
	events     *services.EventsService
	ministries *services.MinistriesService
	posts      *services.PostsService
	resources  *services.ResourcesService
	gallery    *services.GalleryService

	// pinger is the liveness probe; a separate field so tests can stub it.
	pinger interface {
		Ping(ctx context.Context) error
	}

	reader *bufio.Reader
	mode   Mode
}

// NewApp initializes the local database, the API client, and the services.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	repos, err := store.InitDatabase(ctx, cfg.StateDBPath)
	if err != nil {
		return nil, fmt.Errorf("init local database: %w", err)
	}

	apiClient := client.New(cfg.APIBaseURL,
		services.NewStateTokenSource(repos.State), log,
		client.WithTimeout(cfg.RequestTimeout))

	return &App{
		config:     cfg,
		log:        log,
		repos:      repos,
		auth:       services.NewAuthService(apiClient, repos.State, log),
		events:     services.NewEventsService(apiClient),
		ministries: services.NewMinistriesService(apiClient),
		posts:      services.NewPostsService(apiClient),
		resources:  services.NewResourcesService(apiClient),
		gallery:    services.NewGalleryService(apiClient),
		reader:     bufio.NewReader(os.Stdin),
		mode:       ModeOnline,
		pinger:     apiClient,
	}, nil
}

// Run restores the session, starts the status watcher, and enters the REPL.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.repos.DB.Close() }()

	a.auth.CheckAuth(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// status renders the prompt suffix: "(user@host role mode)".
func (a *App) status() string {
	s := ""
	if u := a.auth.CurrentUser(); u != nil {
		s = fmt.Sprintf("%s %s ", u.Email, u.Role)
	}
	return fmt.Sprintf("(%s%s)", s, a.mode)
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	if a.mode != mode {
		a.mode = mode
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

// StartOnlineStatusWatcher probes backend liveness on the given interval
// and flips the mode indicator. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			if err := a.pinger.Ping(probeCtx); err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}
			cancel()
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return a.auth.CurrentUser().IsAdmin()
}
