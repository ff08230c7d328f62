package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/domain"
	"github.com/spf13/cobra"
)

func (a *App) playlistsCmd() *cobra.Command {
	cmd := groupCmd("playlists", "Manage source playlists",
		a.playlistsListCmd(),
		a.playlistsAddCmd(),
		a.playlistRowCmd("save", "Save a playlist's interval, resolver and changed fields", false),
		a.playlistRowCmd("refresh", "Save a playlist and re-fetch its content now", true),
		a.playlistsDeleteCmd(),
		a.playlistsLinkCmd(),
		a.playlistsOpenCmd(),
	)
	cmd.Aliases = []string{"playlist", "pl"}
	return cmd
}

// loadPlaylists fetches the collection into the Env's state
func loadPlaylists(ctx context.Context, env *Env) error {
	playlists, err := env.Session.Playlists.List(ctx)
	if err != nil {
		return err
	}
	env.State.ApplyPlaylists(playlists)
	return nil
}

func findPlaylist(ctx context.Context, env *Env, id string) (*domain.Playlist, error) {
	if err := loadPlaylists(ctx, env); err != nil {
		return nil, err
	}
	p := env.State.FindPlaylist(id)
	if p == nil {
		return nil, fmt.Errorf("playlist %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func (a *App) printPlaylists(env *Env) error {
	playlists := env.State.Playlists()
	views := make([]playlistView, len(playlists))
	rows := make([][]string, len(playlists))
	for i, p := range playlists {
		v := newPlaylistView(env.State, p)
		views[i] = v
		rows[i] = []string{v.ID, v.Name, v.Mode, strconv.Itoa(v.EveryHours) + "h", v.LastRefresh, v.Link}
	}
	return a.render(views, []string{"ID", "Name", "Mode", "Every", "Last refresh", "Link"}, rows)
}

func (a *App) playlistsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List playlists",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.connect(cmd)
			if err != nil {
				return err
			}
			if err := loadPlaylists(cmd.Context(), env); err != nil {
				return err
			}
			if len(env.State.Playlists()) == 0 && a.output == formatTable {
				fmt.Fprintln(a.Out, "No playlists yet.")
				return nil
			}
			return a.printPlaylists(env)
		},
	}
}

func (a *App) playlistsAddCmd() *cobra.Command {
	var in console.PlaylistInput
	var mode string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a source playlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := domain.ParseMode(mode)
			if err != nil {
				return err
			}
			in.Mode = m

			env, err := a.connect(cmd)
			if err != nil {
				return err
			}
			reload, err := env.Session.Playlists.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			env.State.ApplyReload(reload)

			fmt.Fprintf(a.Out, "Created playlist %q\n", in.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Playlist name (required)")
	cmd.Flags().StringVar(&in.URL, "url", "", "Source M3U URL (required)")
	cmd.Flags().StringVar(&mode, "mode", string(domain.ModeTV), "Format mode: tv or video")
	cmd.Flags().StringVar(&in.Interval, "every", strconv.Itoa(domain.DefaultRefreshHours), "Refresh interval in hours")
	cmd.Flags().StringVar(&in.Resolver, "resolver", "", "Resolver override URL")
	return cmd
}

// playlistRowCmd edits one playlist the way the row editor does. Unset flags
// keep the stored values.
func (a *App) playlistRowCmd(use, short string, refresh bool) *cobra.Command {
	var row console.RowDraft

	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.connect(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			p, err := findPlaylist(ctx, env, args[0])
			if err != nil {
				return err
			}

			draft := console.NewRowDraft(p)
			flags := cmd.Flags()
			if flags.Changed("name") {
				draft.Name = row.Name
			}
			if flags.Changed("url") {
				draft.URL = row.URL
			}
			if flags.Changed("every") {
				draft.Interval = row.Interval
			}
			if flags.Changed("resolver") {
				draft.Resolver = row.Resolver
			}

			save := env.Session.Playlists.Save
			verb := "Saved"
			if refresh {
				save = env.Session.Playlists.Refresh
				verb = "Refresh requested for"
			}
			reload, err := save(ctx, p, draft)
			if err != nil {
				return err
			}
			env.State.ApplyReload(reload)

			fmt.Fprintf(a.Out, "%s playlist %q\n", verb, p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&row.Name, "name", "", "New name")
	cmd.Flags().StringVar(&row.URL, "url", "", "New source URL")
	cmd.Flags().StringVar(&row.Interval, "every", "", "Refresh interval in hours")
	cmd.Flags().StringVar(&row.Resolver, "resolver", "", "Resolver override URL (empty = global)")
	return cmd
}

func (a *App) playlistsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a playlist",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.connect(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			p, err := findPlaylist(ctx, env, args[0])
			if err != nil {
				return err
			}

			if err := a.confirm(fmt.Sprintf("Delete playlist %q (%s)?", p.Name, p.ID), yes); err != nil {
				return err
			}

			reload, err := env.Session.Playlists.Delete(ctx, p.ID)
			if err != nil {
				return err
			}
			env.State.ApplyReload(reload)

			fmt.Fprintf(a.Out, "Deleted playlist %q\n", p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func (a *App) playlistsLinkCmd() *cobra.Command {
	var copyLink bool

	cmd := &cobra.Command{
		Use:   "link <id>",
		Short: "Print a playlist's retrieval link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.connect(cmd)
			if err != nil {
				return err
			}
			p, err := findPlaylist(cmd.Context(), env, args[0])
			if err != nil {
				return err
			}

			link := env.State.PlaylistLink(p)
			fmt.Fprintln(a.Out, link)
			if copyLink {
				a.copy(env, link)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyLink, "copy", "c", false, "Also copy the link to the clipboard")
	return cmd
}

func (a *App) playlistsOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Open a playlist's link in the external player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.connect(cmd)
			if err != nil {
				return err
			}
			p, err := findPlaylist(cmd.Context(), env, args[0])
			if err != nil {
				return err
			}
			return a.open(env, env.State.PlaylistLink(p))
		},
	}
}

// copy reports on stderr how the value reached the clipboard, or that it did not
func (a *App) copy(env *Env, value string) {
	if env.Copier == nil {
		fmt.Fprintln(a.Err, "Clipboard unavailable, copy the value above manually")
		return
	}
	method, err := env.Copier.Copy(value)
	if err != nil {
		fmt.Fprintf(a.Err, "Clipboard unavailable, copy the value above manually (%v)\n", err)
		return
	}
	fmt.Fprintf(a.Err, "Copied via %s\n", method)
}

func (a *App) open(env *Env, url string) error {
	if env.Launcher == nil {
		return errors.New("no player available")
	}
	if err := env.Launcher.Launch(url); err != nil {
		return fmt.Errorf("failed to open player: %w", err)
	}
	fmt.Fprintf(a.Out, "Opened %s\n", url)
	return nil
}
