package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/shelf/internal/config"
	"github.com/five82/shelf/internal/library"
	"github.com/five82/shelf/internal/locale"
	"github.com/five82/shelf/internal/logging"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/session"
	"github.com/five82/shelf/internal/state"
	"github.com/five82/shelf/internal/ui"
)

// Options configure the shelf application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/shelf/prefs.toml
	APIBase    string // overrides api_base and SHELF_API_BASE
	PollEvery  int    // seconds; overrides refresh_interval when positive
}

// Run boots the shelf TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIBase != "" {
		cfg.APIBase = opts.APIBase
	}

	logger, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closeLog() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load prefs failed; using defaults", zap.Error(err))
	}

	sessions, err := session.New(cfg.SessionFile)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}

	client, err := library.NewClient(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	tr := locale.New(cfg.Language)
	ctrl := state.NewController(client, sessions, logger)

	interval := cfg.RefreshInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Periodic reloads are opt-in; startup loading happens in the UI's Init.
	StartPoller(ctx, ctrl, interval, logger)

	logger.Info("starting shelf",
		zap.String("api", client.BaseURL()),
		zap.String("session_file", sessions.Path()),
		zap.String("language", tr.Tag().String()),
		zap.Duration("refresh_interval", interval),
	)

	err = ui.Run(ui.Options{
		Context:    ctx,
		Controller: ctrl,
		Translator: tr,
		Logger:     logger,
		APIBase:    client.BaseURL(),
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
		LogPath:    cfg.LogFile,
		StartPath:  userPrefs.LastPath,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		logger.Info("shutting down", zap.Error(ctx.Err()))
		return nil
	}
	return err
}
