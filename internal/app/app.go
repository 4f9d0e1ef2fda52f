package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/five82/norris/internal/config"
	"github.com/five82/norris/internal/favorites"
	"github.com/five82/norris/internal/icndb"
	"github.com/five82/norris/internal/jokes"
	"github.com/five82/norris/internal/prefs"
	"github.com/five82/norris/internal/session"
	"github.com/five82/norris/internal/ui"
	"github.com/five82/norris/pkg/logger"
)

// Options configure the norris application.
type Options struct {
	ConfigPath    string
	PrefsPath     string // empty uses default ~/.config/norris/prefs.toml
	StartView     string // empty uses the stored preference
	ListFavorites bool   // print the stored favorites instead of starting the UI

	Stdout io.Writer
	Stderr io.Writer
}

// Run boots norris until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logFile, err := logger.OpenFile(cfg.LogPath)
	if err != nil {
		// Logging is best effort; the UI works without it.
		fmt.Fprintf(stderr, "norris: logging disabled: %v\n", err)
	} else {
		defer logFile.Close()
		logger.Init(cfg.LogLevel, logFile)
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("close favorites store", logger.Err(err))
		}
	}()

	registry := favorites.NewRegistry(ctx, store)
	logger.Info("norris starting",
		logger.String("api_url", cfg.APIURL),
		logger.String("store_backend", cfg.StoreBackend),
		logger.String("store_path", cfg.StorePath),
		logger.Int("favorites", registry.Len()),
	)

	if opts.ListFavorites {
		return writeFavorites(stdout, registry.All())
	}

	client, err := icndb.NewClient(cfg.APIURL, icndb.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return fmt.Errorf("init joke client: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	startName := userPrefs.StartView
	if opts.StartView != "" {
		startName = opts.StartView
	}
	start, ok := session.ParseView(startName)
	if !ok {
		if opts.StartView != "" {
			return fmt.Errorf("unknown view %q: want jokes, random or favorites", opts.StartView)
		}
		logger.Warn("ignore stored start view", logger.String("view", startName))
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Session:   session.New(client, registry),
		StartView: start,
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
	}
	err = ui.Run(uiOpts)
	if saveErr := registry.LastSaveError(); saveErr != nil {
		fmt.Fprintf(stderr, "norris: favorites may not be saved: %v\n", saveErr)
	}
	return err
}

// openStore opens the configured favorites backend. The returned func closes
// it.
func openStore(ctx context.Context, cfg config.Config) (favorites.Store, func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		db, err := favorites.NewSQLiteStore(cfg.StorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open favorites database: %w", err)
		}
		if err := db.Init(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("init favorites database: %w", err)
		}
		return db, db.Close, nil
	default:
		return favorites.NewFileStore(cfg.StorePath), func() error { return nil }, nil
	}
}

// writeFavorites prints one favorite per line as plain text.
func writeFavorites(w io.Writer, entries []jokes.Favorite) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "You haven't favorited anything yet.")
		return err
	}
	for _, f := range entries {
		line := fmt.Sprintf("#%d", f.ID)
		if len(f.Categories) > 0 {
			line += " [" + strings.Join(f.Categories, ",") + "]"
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", line, jokes.ContentKey(f.Text)); err != nil {
			return err
		}
	}
	return nil
}
