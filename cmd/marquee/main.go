package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/tmdb"
	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/mmcdole/marquee/internal/watchlist"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var (
		showVersion bool
		configPath  string
		ephemeral   bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to config.yaml")
	flag.BoolVar(&ephemeral, "ephemeral", false, "keep the watchlist in memory only")
	flag.Parse()

	if showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(configPath, ephemeral); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, ephemeral bool) error {
	cfg, err := adapter.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if ephemeral {
		cfg.Storage.DataDir = ""
	}

	logger, closer, err := adapter.SetupLogger(cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	client := tmdb.NewClient(cfg.TMDB.APIKey, tmdb.Options{
		BaseURL:           cfg.TMDB.BaseURL,
		Language:          cfg.TMDB.Language,
		Timeout:           cfg.TMDB.Timeout,
		RequestsPerSecond: cfg.TMDB.RequestsPerSecond,
	}, logger)

	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg, configPath, client); err != nil {
			return err
		}
	}

	blobs, err := store.NewBlobStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open watchlist storage: %w", err)
	}
	defer blobs.Close()

	styles.Apply(styles.ByName(cfg.UI.Theme))

	wl := watchlist.NewModel(watchlist.NewStore(blobs, logger), logger)
	coord := search.NewCoordinator(client, search.Options{
		Debounce:       cfg.Search.Debounce,
		MinQueryLength: cfg.Search.MinQueryLength,
		Logger:         logger,
	})
	defer coord.Close()

	imageBase := cfg.TMDB.ImageBaseURL
	model := tui.NewModel(tui.Services{
		Catalog:        catalog.NewService(client, logger),
		Search:         coord,
		Watchlist:      wl,
		Opener:         adapter.NewLauncher(cfg.Player, runtime.GOOS, logger),
		CopyToClip:     clipboard.WriteAll,
		PosterURL:      func(path string) string { return tmdb.ImageURL(imageBase, tmdb.PosterSize, path) },
		MinQueryLength: cfg.Search.MinQueryLength,
		Logger:         logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI", "theme", cfg.UI.Theme, "storage", blobs.Path())

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow asks for a TMDB API key, checks it and saves it
func runSetupFlow(cfg *adapter.Config, configPath string, client *tmdb.Client) error {
	fmt.Println()
	fmt.Println("Welcome to Marquee!")
	fmt.Println()
	fmt.Println("Marquee needs a TMDB API key (v3 auth).")
	fmt.Println("Create one at https://www.themoviedb.org/settings/api")
	fmt.Println()

	for {
		apiKey, err := readAPIKey()
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		client.SetAPIKey(apiKey)
		if err := validateWithSpinner(client); err != nil {
			var apiErr *domain.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
				fmt.Println("✗ TMDB rejected that key. Please try again.")
				fmt.Println()
				continue
			}
			return fmt.Errorf("could not verify API key: %w", err)
		}

		cfg.TMDB.APIKey = apiKey
		break
	}

	if err := adapter.SaveConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	return nil
}

// readAPIKey reads the key without echo when stdin is a terminal
func readAPIKey() (string, error) {
	fmt.Print("TMDB API key: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	input, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// validateWithSpinner checks the key against TMDB with a visual spinner
func validateWithSpinner(client *tmdb.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		resultCh <- client.ValidateKey(ctx)
	}()

	frame := 0
	fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err == nil {
				fmt.Println("✓ API key accepted")
			}
			return err

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("validation timed out")
		}
	}
}
