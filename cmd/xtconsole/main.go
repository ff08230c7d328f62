package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/xtconsole/internal/cli"
	"github.com/mmcdole/xtconsole/internal/clipboard"
	"github.com/mmcdole/xtconsole/internal/config"
	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/logging"
	"github.com/mmcdole/xtconsole/internal/player"
	"github.com/mmcdole/xtconsole/internal/remote"
	"github.com/mmcdole/xtconsole/internal/service"
	"github.com/mmcdole/xtconsole/internal/store"
	"github.com/mmcdole/xtconsole/internal/tui"
	"github.com/mmcdole/xtconsole/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configFile := os.Getenv("XTCONSOLE_CONFIG")

	// Load configuration
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, logCloser, err := logging.Setup(cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = logging.NullLogger()
	} else {
		defer logCloser.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting xtconsole", "version", Version)

	connect := func(ctx context.Context, server string) (*cli.Env, error) {
		if server == "" {
			if !cfg.IsConfigured() {
				if err := runSetupFlow(ctx, cfg, configFile, logger); err != nil {
					return nil, err
				}
			}
			server = cfg.Server.URL
		}
		return newEnv(cfg, server, logger), nil
	}

	runTUI := func(env *cli.Env) error {
		model := tui.NewModel(env.Session, env.State, env.Copier, env.Launcher, env.Options)

		p := tea.NewProgram(model, tea.WithAltScreen())

		logger.Info("starting TUI", "server", env.State.Origin())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", "error", err)
			return fmt.Errorf("TUI error: %w", err)
		}

		logger.Info("shutting down")
		return nil
	}

	app := cli.NewApp(Version, configFile, connect, runTUI)
	return app.Execute(context.Background(), os.Args[1:])
}

// newEnv wires the services against one backend
func newEnv(cfg *config.Config, server string, logger *slog.Logger) *cli.Env {
	journal, err := store.NewJournalStore(cfg.History.Dir, server, cfg.History.Limit)
	if err != nil {
		logger.Warn("history unavailable, keeping it in memory", "error", err)
		journal, _ = store.NewJournalStore("", server, cfg.History.Limit)
	}

	client := remote.NewClient(server, cfg.Server.Timeout, logger)
	api := remote.NewAPI(client)

	return &cli.Env{
		Session:  service.NewSession(api, journal, logger),
		State:    console.NewState(api.Origin()),
		Copier:   clipboard.NewCopier(cfg.Clipboard.OSC52, logger),
		Launcher: player.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger),
		Options: tui.Options{
			DownloadDir:  cfg.Downloads.Dir,
			HistoryLimit: cfg.History.Limit,
		},
		Close: journal.Close,
	}
}

// runSetupFlow asks for the backend URL until one answers, then saves it
func runSetupFlow(ctx context.Context, cfg *config.Config, configFile string, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to xtconsole!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Enter the backend URL (e.g., http://192.168.1.100:8000): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL := strings.TrimSpace(input)

		if serverURL == "" {
			fmt.Println("Backend URL cannot be empty. Please try again.")
			continue
		}
		if !strings.Contains(serverURL, "://") {
			serverURL = "http://" + serverURL
		}

		fmt.Println()
		if err := contactWithSpinner(ctx, serverURL, logger); err != nil {
			fmt.Printf("\n✗ Could not reach the backend: %v\n", err)
			fmt.Println("Please check the URL and try again.")
			fmt.Println()
			continue
		}

		cfg.Server.URL = serverURL
		break
	}

	if err := config.SaveConfig(cfg, configFile); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	return nil
}

// contactWithSpinner loads the settings record once with a visual spinner
func contactWithSpinner(ctx context.Context, serverURL string, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	api := remote.NewAPI(remote.NewClient(serverURL, 0, logger))
	resultCh := make(chan error, 1)

	// Start the request in background
	go func() {
		_, err := api.GetSettings(ctx)
		resultCh <- err
	}()

	frame := 0
	fmt.Printf("\r%s Contacting backend...", styles.SpinnerStyle.Render(styles.SpinnerFrames[frame]))

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Connected to %s\n", serverURL)
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Contacting backend...", styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)]))

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("backend did not answer in time")
		}
	}
}
