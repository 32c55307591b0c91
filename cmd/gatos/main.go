package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/gatos/internal/adapter"
	"github.com/mmcdole/gatos/internal/adapter/source"
	"github.com/mmcdole/gatos/internal/service"
	"github.com/mmcdole/gatos/internal/store"
	"github.com/mmcdole/gatos/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		plain       bool
		limit       int
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&plain, "plain", false, "print the batch as text instead of starting the TUI")
	flag.IntVar(&limit, "limit", 0, "number of images to fetch (overrides config)")
	flag.Parse()

	if showVersion {
		fmt.Printf("gatos %s\n", Version)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		plain = true
	}

	if err := run(plain, limit); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(plain bool, limit int) error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if limit > 0 {
		cfg.Source.Limit = limit
	}

	logger, logCloser, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer logCloser.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting gatos", "version", Version, "source", cfg.Source.URL, "limit", cfg.Source.Limit)

	client, err := source.NewClientFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create image source: %w", err)
	}

	favorites, err := store.NewFavoritesStore(cfg.Favorites.File)
	if err != nil {
		return fmt.Errorf("failed to open favorites: %w", err)
	}
	defer favorites.Close()

	gallerySvc := service.NewGalleryService(client, favorites, cfg.Source.Limit, cfg.Source.Timeout, logger)

	if plain {
		return runPlain(context.Background(), os.Stdout, gallerySvc)
	}

	opener := adapter.NewOpenerFromConfig(cfg, logger)
	model := tui.NewModel(gallerySvc, opener, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
