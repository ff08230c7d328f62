// Package player hands stream URLs to an external media player.
package player

import (
	"errors"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoPlayer is returned when no candidate player could be started
var ErrNoPlayer = errors.New("no candidate players found")

// Launcher opens stream URLs in an external player
type Launcher struct {
	command string   // configured player command, empty for auto-detect
	args    []string // extra arguments placed before the URL
	logger  *slog.Logger

	// start runs a command without waiting for it; replaced in tests
	start func(name string, args ...string) error
	// lookPath resolves a command in PATH; replaced in tests
	lookPath func(name string) (string, error)
}

// launchPath is one way to start a player on a platform
type launchPath struct {
	path      string   // command, or "open-a:AppName" for macOS apps
	openFlags []string // flags for macOS open, e.g. "-n"
}

// players maps a player name to its launch paths per platform
var players = map[string]map[string][]launchPath{
	"mpv": {
		"darwin":  {{path: "mpv"}},
		"linux":   {{path: "mpv"}},
		"windows": {{path: "mpv"}},
	},
	"vlc": {
		"darwin":  {{path: "vlc"}, {path: "open-a:VLC"}},
		"linux":   {{path: "vlc"}},
		"windows": {{path: "vlc"}},
	},
	"iina": {
		"darwin": {{path: "open-a:IINA", openFlags: []string{"-n"}}},
	},
	"celluloid": {
		"linux": {{path: "celluloid"}},
	},
	"potplayer": {
		"windows": {{path: "PotPlayerMini64.exe"}, {path: "PotPlayerMini.exe"}},
	},
}

// candidatePlayers is the preferred detection order per platform
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "vlc", "mpv"},
	"linux":   {"mpv", "vlc", "celluloid"},
	"windows": {"vlc", "mpv", "potplayer"},
}

// NewLauncher creates a launcher. An empty command means auto-detect.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  strings.TrimSpace(command),
		args:     args,
		logger:   logger,
		start:    startDetached,
		lookPath: exec.LookPath,
	}
}

func startDetached(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Launch opens url in the configured player, else the first detected
// candidate, else the system default handler.
func (l *Launcher) Launch(url string) error {
	// Tier 1: configured player
	if l.command != "" {
		args := append(append([]string{}, l.args...), url)
		l.logger.Info("launching player", "command", l.command, "args", args)
		return l.start(l.command, args...)
	}

	// Tier 2: candidate chain
	if name, err := l.detectAndLaunch(url); err == nil {
		l.logger.Info("launched with detected player", "player", name)
		return nil
	}

	// Tier 3: system default
	l.logger.Info("no candidate players found, using system default", "os", runtime.GOOS)
	return l.launchDefault(url)
}

func (l *Launcher) detectAndLaunch(url string) (string, error) {
	candidates, ok := candidatePlayers[runtime.GOOS]
	if !ok {
		candidates = candidatePlayers["linux"]
	}

	for _, name := range candidates {
		for _, lp := range players[name][runtime.GOOS] {
			var err error
			if app, ok := strings.CutPrefix(lp.path, "open-a:"); ok {
				args := append(append([]string{}, lp.openFlags...), "-a", app, url)
				err = l.start("open", args...)
			} else if _, err = l.lookPath(lp.path); err == nil {
				err = l.start(lp.path, append(append([]string{}, l.args...), url)...)
			}
			if err == nil {
				return name, nil
			}
			l.logger.Debug("launch path not available", "player", name, "path", lp.path, "error", err)
		}
	}
	return "", ErrNoPlayer
}

func (l *Launcher) launchDefault(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return l.start("open", url)
	case "windows":
		return l.start("cmd", "/c", "start", "", url)
	default:
		return l.start("xdg-open", url)
	}
}
