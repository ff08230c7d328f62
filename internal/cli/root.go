// Package cli exposes the console's operations as cobra subcommands. The root
// command without a subcommand starts the terminal UI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mmcdole/xtconsole/internal/config"
	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/service"
	"github.com/mmcdole/xtconsole/internal/tui"
	"github.com/spf13/cobra"
)

// Env is everything a command needs once a backend is chosen
type Env struct {
	Session  *service.Session
	State    *console.State
	Copier   tui.Copier
	Launcher tui.Launcher
	Options  tui.Options

	// Close releases the journal and log file
	Close func() error
}

// Connector builds an Env for a backend origin. An empty server uses the configured one.
type Connector func(ctx context.Context, server string) (*Env, error)

// App holds the process-level wiring shared by every command
type App struct {
	Version    string
	ConfigFile string

	Connect Connector
	RunTUI  func(env *Env) error

	In  io.Reader
	Out io.Writer
	Err io.Writer

	// IsTerminal reports whether In is interactive
	IsTerminal func() bool
	// ReadSecret reads a line without echo
	ReadSecret func() (string, error)

	server string
	output string
	env    *Env
}

// NewApp returns an App reading and writing the process's standard streams
func NewApp(version, configFile string, connect Connector, runTUI func(env *Env) error) *App {
	return &App{
		Version:    version,
		ConfigFile: configFile,
		Connect:    connect,
		RunTUI:     runTUI,
		In:         os.Stdin,
		Out:        os.Stdout,
		Err:        os.Stderr,
		IsTerminal: stdinIsTerminal,
		ReadSecret: readStdinSecret,
	}
}

// Execute runs the command line and releases the connection afterwards
func (a *App) Execute(ctx context.Context, args []string) error {
	if args == nil {
		args = []string{}
	}
	root := a.RootCmd()
	root.SetArgs(args)
	root.SetIn(a.In)
	root.SetOut(a.Out)
	root.SetErr(a.Err)

	err := root.ExecuteContext(ctx)
	if a.env != nil && a.env.Close != nil {
		if cerr := a.env.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	a.env = nil
	return err
}

// RootCmd builds the command tree
func (a *App) RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "xtconsole",
		Short:         "Operator console for an IPTV playlist aggregation backend",
		Long:          "Manage source playlists, Xtream accounts and backend settings.\nRun without a subcommand to open the interactive console.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.connect(cmd)
			if err != nil {
				return err
			}
			if a.RunTUI == nil {
				return errors.New("interactive console unavailable")
			}
			return a.RunTUI(env)
		},
	}

	root.PersistentFlags().StringVar(&a.server, "server", "", "Backend origin, overrides server.url")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", formatTable, "Output format: table, yaml or json")

	root.AddCommand(a.settingsCmd())
	root.AddCommand(a.playlistsCmd())
	root.AddCommand(a.xtreamsCmd())
	root.AddCommand(a.convertCmd())
	root.AddCommand(a.historyCmd())
	root.AddCommand(a.versionCmd())
	root.AddCommand(a.logoutCmd())

	return root
}

// connect builds the Env once per invocation
func (a *App) connect(cmd *cobra.Command) (*Env, error) {
	if a.env != nil {
		return a.env, nil
	}
	if err := checkFormat(a.output); err != nil {
		return nil, err
	}
	env, err := a.Connect(cmd.Context(), a.server)
	if err != nil {
		return nil, err
	}
	a.env = env
	return env, nil
}

// boot loads settings, playlists and accounts into the Env's state
func (a *App) boot(cmd *cobra.Command) (*Env, error) {
	env, err := a.connect(cmd)
	if err != nil {
		return nil, err
	}
	if err := env.Session.Boot(cmd.Context(), env.State); err != nil {
		return nil, err
	}
	return env, nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.Out, "xtconsole %s\n", a.Version)
			return nil
		},
	}
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the configured backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearServerConfig(a.ConfigFile); err != nil {
				return err
			}
			fmt.Fprintln(a.Out, "Backend URL cleared. The next run asks for it again.")
			return nil
		},
	}
}

// groupCmd is a parent command that only holds subcommands
func groupCmd(use, short string, subs ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("please specify a subcommand. Use --help to see available subcommands")
		},
	}
	cmd.AddCommand(subs...)
	return cmd
}
