package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoURL is returned when there is nothing to open
var ErrNoURL = errors.New("no url to open")

// Launcher opens trailer and movie page URLs outside the terminal
type Launcher struct {
	command string   // configured player command, empty for detection/system default
	args    []string // additional arguments for the player
	goos    string
	logger  *slog.Logger

	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// invocation is one resolved command line
type invocation struct {
	name string
	args []string
}

// trailerPlayers are players that stream YouTube URLs directly (via yt-dlp),
// tried in order before falling back to the browser.
var trailerPlayers = map[string][]string{
	"darwin":  {"mpv", "iina-cli"},
	"linux":   {"mpv", "celluloid", "haruna"},
	"windows": {"mpv"},
}

// guiApps can be launched with "open -a" on macOS when not on PATH
var guiApps = map[string]string{
	"iina": "IINA",
	"vlc":  "VLC",
	"mpv":  "mpv",
}

// NewLauncher creates a Launcher for the current platform
func NewLauncher(cfg PlayerConfig, goos string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  cfg.Command,
		args:     cfg.Args,
		goos:     goos,
		logger:   logger,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// OpenTrailer plays a trailer URL: configured player, then a detected player,
// then the system default handler.
func (l *Launcher) OpenTrailer(url string) error {
	if url == "" {
		return ErrNoURL
	}
	inv := l.resolveTrailer(url)
	return l.run(inv)
}

// OpenPage opens a web page with the system default handler
func (l *Launcher) OpenPage(url string) error {
	if url == "" {
		return ErrNoURL
	}
	return l.run(systemOpener(l.goos, url))
}

func (l *Launcher) run(inv invocation) error {
	l.logger.Info("launching", "command", inv.name, "args", inv.args)
	if err := l.start(inv.name, inv.args...); err != nil {
		l.logger.Error("launch failed", "command", inv.name, "error", err)
		return fmt.Errorf("failed to launch %s: %w", inv.name, err)
	}
	return nil
}

// resolveTrailer picks the command line for a trailer URL
func (l *Launcher) resolveTrailer(url string) invocation {
	// Tier 1: user configured a specific player
	if l.command != "" {
		args := append(append([]string{}, l.args...), url)
		if _, err := l.lookPath(l.command); err != nil && l.goos == "darwin" {
			if app, ok := guiApps[playerBase(l.command)]; ok {
				l.logger.Debug("using macOS 'open -a' for GUI app", "app", app)
				openArgs := []string{"-a", app}
				if len(l.args) > 0 {
					openArgs = append(openArgs, "--args")
					openArgs = append(openArgs, l.args...)
				}
				return invocation{name: "open", args: append(openArgs, url)}
			}
		}
		return invocation{name: l.command, args: args}
	}

	// Tier 2: a detected player that can stream the URL
	candidates, ok := trailerPlayers[l.goos]
	if !ok {
		candidates = trailerPlayers["linux"]
	}
	for _, name := range candidates {
		if path, err := l.lookPath(name); err == nil {
			l.logger.Debug("detected trailer player", "player", name, "path", path)
			return invocation{name: name, args: []string{url}}
		}
	}

	// Tier 3: system default (browser)
	return systemOpener(l.goos, url)
}

// systemOpener returns the platform's default URL handler
func systemOpener(goos, url string) invocation {
	switch goos {
	case "darwin":
		return invocation{name: "open", args: []string{url}}
	case "windows":
		return invocation{name: "rundll32", args: []string{"url.dll,FileProtocolHandler", url}}
	default:
		return invocation{name: "xdg-open", args: []string{url}}
	}
}

// playerBase normalizes "/usr/bin/IINA.exe" to "iina"
func playerBase(command string) string {
	base := filepath.Base(command)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToLower(base)
}
