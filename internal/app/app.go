// Package app wires the store, services and screens together for the
// CLI commands.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepdeck/internal/config"
	"github.com/abhisek/prepdeck/internal/progress"
	"github.com/abhisek/prepdeck/internal/remote"
	"github.com/abhisek/prepdeck/internal/screens/practice"
	"github.com/abhisek/prepdeck/internal/screens/setup"
	"github.com/abhisek/prepdeck/internal/seed"
	"github.com/abhisek/prepdeck/internal/session"
	"github.com/abhisek/prepdeck/internal/store"
	"github.com/abhisek/prepdeck/internal/syncer"
)

// App holds the wired application.
type App struct {
	Store    *store.Store
	Config   *config.Config
	Sessions *session.Service
	Progress *progress.Service
	Remote   *remote.Client
	Sync     *syncer.Syncer
	Log      *slog.Logger
}

// New opens the store at dbPath, seeds the question bank if the store is
// empty, and wires the services. configFile may be empty to use the
// default locations.
func New(ctx context.Context, dbPath, configFile string, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	inserted, err := seed.IfEmpty(ctx, s.Questions())
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("seed question bank: %w", err)
	}
	if inserted > 0 {
		log.Debug("seeded question bank", "questions", inserted)
	}

	prog := progress.NewService(s.Profile(), s.Attempts())

	a := &App{
		Store:    s,
		Config:   cfg,
		Sessions: session.NewService(s.Questions(), s.Attempts(), prog, log),
		Progress: prog,
		Log:      log,
	}

	if cfg.Enabled() {
		a.Remote = remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.APIKey, remote.DefaultRetryAttempts, log)
		a.Sync = syncer.New(s.Profile(), s.Attempts(), a.Remote, log)
	}
	return a, nil
}

// Close releases the store and the remote client.
func (a *App) Close() error {
	if a.Remote != nil {
		_ = a.Remote.Close()
	}
	return a.Store.Close()
}

// RunPractice starts a session and drives it through the practice
// screen. Background sync runs for the duration when configured.
func (a *App) RunPractice(ctx context.Context, opts session.Options, placement bool) error {
	var p *session.Practice
	var err error
	if placement {
		p, err = a.Sessions.StartPlacement(ctx)
	} else {
		p, err = a.Sessions.Start(ctx, opts)
	}
	if err != nil {
		return err
	}
	if len(p.Questions) == 0 {
		return fmt.Errorf("no questions available")
	}

	stop := a.startBackgroundSync(ctx)
	defer stop()

	_, err = tea.NewProgram(practice.New(a.Sessions, p, placement)).Run()
	return err
}

// RunMistakes starts a replay session over previously missed questions.
func (a *App) RunMistakes(ctx context.Context) error {
	qs, err := a.Sessions.Mistakes(ctx, session.DefaultLimit)
	if err != nil {
		return err
	}
	if len(qs) == 0 {
		return fmt.Errorf("no mistakes to review")
	}
	questionIDs := make([]string, len(qs))
	for i, q := range qs {
		questionIDs[i] = q.ID
	}
	return a.RunPractice(ctx, session.Options{QuestionIDs: questionIDs}, false)
}

// RunSetup runs the goal-setting form.
func (a *App) RunSetup(ctx context.Context) error {
	existing, err := a.Store.Profile().Get(ctx)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(setup.New(a.Store.Profile(), existing)).Run()
	return err
}

// startBackgroundSync starts the periodic runner when a remote and a
// user are configured. The returned stop function waits for the runner.
func (a *App) startBackgroundSync(ctx context.Context) func() {
	if a.Sync == nil || a.Config.User.ID == "" {
		return func() {}
	}
	interval := time.Duration(a.Config.Sync.IntervalSeconds) * time.Second
	runner := syncer.NewRunner(a.Sync, a.Config.User.ID, interval, a.Log)
	runner.Start(ctx)
	return runner.Stop
}

// SignIn authenticates against the remote backend and returns the user
// id to sync under.
func (a *App) SignIn(ctx context.Context, email, password string) (string, error) {
	if a.Remote == nil {
		return "", fmt.Errorf("sync is not configured")
	}
	sess, err := a.Remote.SignIn(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("sign in: %w", err)
	}
	return sess.UserID, nil
}
