package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/five82/norris/internal/app"
	"github.com/five82/norris/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional, defaults to ~/.config/norris/config.toml)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	view := flag.String("view", "", "start view: jokes, random or favorites (optional)")
	listFavorites := flag.Bool("list-favorites", false, "print stored favorites and exit")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [flags]\n\n", os.Args[0])
		flag.PrintDefaults()
		if env := config.EnvUsage(); env != "" {
			fmt.Fprintf(out, "\n%s\n", env)
		}
	}
	flag.Parse()

	// A .env file in the working directory may set NORRIS_* variables.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "norris: read .env: %v\n", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:    *configPath,
		PrefsPath:     *prefsPath,
		StartView:     *view,
		ListFavorites: *listFavorites,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "norris: %v\n", err)
		return 1
	}
	return 0
}
