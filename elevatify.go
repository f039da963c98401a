// Package elevatify is the local relational state engine of the
// Elevatify collaboration app. It keeps users' projects, friendships
// and messages in a shared SQLite-backed entity store, exposes an
// idempotent mutation API and derived read-side views, and notifies
// subscribers about changes made by this context and by other contexts
// sharing the same database file.
package elevatify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/elevatify/elevatify/internal/config"
	"github.com/elevatify/elevatify/internal/logging"
	"github.com/elevatify/elevatify/internal/models"
	"github.com/elevatify/elevatify/internal/notify"
	"github.com/elevatify/elevatify/internal/projections"
	"github.com/elevatify/elevatify/internal/repositories/friends"
	"github.com/elevatify/elevatify/internal/repositories/messages"
	"github.com/elevatify/elevatify/internal/repositories/profiles"
	"github.com/elevatify/elevatify/internal/repositories/projects"
	"github.com/elevatify/elevatify/internal/services"
	"github.com/elevatify/elevatify/internal/store"
)

// Change notification types, re-exported for subscribers.
type (
	Event        = notify.Event
	EventKind    = notify.EventKind
	Subscription = notify.Subscription
)

// Stored record types, re-exported so callers can name what the
// services and views take and return.
type (
	Project       = models.Project
	ProjectStatus = models.ProjectStatus
	ProjectFields = services.ProjectFields
	Profile       = models.Profile
	Message       = models.Message
	Group         = models.Group
	FriendStatus  = models.FriendStatus
)

const (
	KindLocal    = notify.KindLocal
	KindExternal = notify.KindExternal
	KindRefresh  = notify.KindRefresh
)

// Engine bundles the mutation services and read-side views over one
// store handle. One Engine per context; contexts share state by opening
// the same database file.
type Engine struct {
	Projects services.ProjectService
	Friends  services.FriendService
	Messages services.MessageService
	Profiles services.ProfileService
	Views    *projections.Projections

	store *store.Store
}

// Option adjusts how Open configures the engine.
type Option func(*openSettings)

type openSettings struct {
	cfg *config.Config
	log logging.Logger
}

// WithDatabasePath overrides the store's database path.
func WithDatabasePath(path string) Option {
	return func(s *openSettings) { s.cfg.DatabasePath = path }
}

// WithWatchInterval overrides how often other contexts' commits are
// polled for.
func WithWatchInterval(d time.Duration) Option {
	return func(s *openSettings) { s.cfg.WatchInterval = d }
}

// WithRetryAttempts overrides the version-conflict retry budget.
func WithRetryAttempts(n uint64) Option {
	return func(s *openSettings) { s.cfg.RetryAttempts = n }
}

// WithLogger routes the engine's logs to l instead of slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *openSettings) { s.log = logging.NewSlogLogger(l) }
}

// Open opens (creating if needed) the shared store and wires the
// services and views over it. Configuration starts from defaults plus
// the ELEVATIFY_* environment overrides; options take precedence.
func Open(ctx context.Context, opts ...Option) (*Engine, error) {
	s := &openSettings{
		cfg: config.LoadConfig(),
		log: logging.NewSlogLogger(slog.Default()),
	}
	for _, opt := range opts {
		opt(s)
	}

	st, err := store.Open(ctx, s.cfg, s.log)
	if err != nil {
		return nil, fmt.Errorf("opening engine: %w", err)
	}

	projectRepo := projects.NewKVRepository(st, s.log)
	friendRepo := friends.NewKVRepository(st, s.log)
	messageRepo := messages.NewKVRepository(st, s.log)
	profileRepo := profiles.NewKVRepository(st, s.log)

	return &Engine{
		Projects: services.NewProjectService(projectRepo, s.log),
		Friends:  services.NewFriendService(friendRepo, s.log),
		Messages: services.NewMessageService(messageRepo, s.log),
		Profiles: services.NewProfileService(profileRepo, s.log),
		Views:    projections.New(projectRepo, friendRepo, messageRepo),
		store:    st,
	}, nil
}

// Subscribe registers fn for every change event: this context's own
// commits, other contexts' commits, and refresh pulses. fn runs
// synchronously; keep it short.
func (e *Engine) Subscribe(fn func(Event)) *Subscription {
	return e.store.Bus().Subscribe(fn)
}

// Resume catches up after a period of inactivity: missed external
// changes are delivered first, then a single refresh pulse.
func (e *Engine) Resume(ctx context.Context) {
	e.store.Resume(ctx)
}

// Close stops the watcher and closes the store.
func (e *Engine) Close() error {
	return e.store.Close()
}
