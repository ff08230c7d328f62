package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/domain"
	"github.com/spf13/cobra"
)

func (a *App) xtreamsCmd() *cobra.Command {
	cmd := groupCmd("xtreams", "Manage Xtream accounts",
		a.xtreamsListCmd(),
		a.xtreamsAddCmd(),
		a.xtreamsUpdateCmd(),
		a.xtreamsRefreshCmd(),
		a.xtreamsDeleteCmd(),
		a.xtreamsURLsCmd(),
	)
	cmd.Aliases = []string{"xtream", "xt"}
	return cmd
}

func findXtream(env *Env, id string) (*domain.XtreamAccount, error) {
	x := env.State.FindXtream(id)
	if x == nil {
		return nil, fmt.Errorf("xtream account %s: %w", id, domain.ErrNotFound)
	}
	return x, nil
}

func (a *App) xtreamsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List accounts with their URLs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.boot(cmd)
			if err != nil {
				return err
			}
			accounts := env.State.Xtreams()
			if len(accounts) == 0 && a.output == formatTable {
				fmt.Fprintln(a.Out, "No accounts yet.")
				return nil
			}

			views := make([]xtreamView, len(accounts))
			rows := make([][]string, len(accounts))
			for i, x := range accounts {
				v := newXtreamView(env.State, x)
				views[i] = v
				counts := fmt.Sprintf("%d/%d/%d/%d", len(v.Live), len(v.Movies), len(v.Series), len(v.Mixed))
				rows[i] = []string{v.ID, v.Name, v.Username, v.Password, strconv.Itoa(v.EveryHours) + "h", v.LastRefresh, counts, v.ServerURL}
			}
			return a.render(views,
				[]string{"ID", "Name", "Username", "Password", "Every", "Last refresh", "L/M/S/X", "Server URL"},
				rows)
		},
	}
}

// accountFlags are the form fields settable from the command line
type accountFlags struct {
	form       console.AccountForm
	categories map[domain.Category]*[]string
}

func (f *accountFlags) register(cmd *cobra.Command, intervalDefault string) {
	f.categories = make(map[domain.Category]*[]string, 4)
	cmd.Flags().StringVar(&f.form.Name, "name", "", "Account name")
	cmd.Flags().StringVar(&f.form.Username, "username", "", "Xtream username")
	cmd.Flags().StringVar(&f.form.Password, "password", "", "Xtream password (prompted when empty on a terminal)")
	cmd.Flags().StringVar(&f.form.Interval, "every", intervalDefault, "Refresh interval in hours")
	for _, c := range domain.Categories() {
		ids := new([]string)
		f.categories[c] = ids
		name := strings.ToLower(c.String())
		cmd.Flags().StringSliceVar(ids, name, nil, fmt.Sprintf("%s playlist ids (%s mode)", c, c.EligibleMode()))
	}
}

// apply copies changed flags into the editor. Category flags replace that
// category's selection and must name offered playlists.
func (f *accountFlags) apply(cmd *cobra.Command, ed *console.Editor) error {
	flags := cmd.Flags()
	if flags.Changed("name") {
		ed.Form.Name = f.form.Name
	}
	if flags.Changed("username") {
		ed.Form.Username = f.form.Username
	}
	if flags.Changed("password") {
		ed.Form.Password = f.form.Password
	}
	if flags.Changed("every") {
		ed.Form.Interval = f.form.Interval
	}

	for _, c := range domain.Categories() {
		if !flags.Changed(strings.ToLower(c.String())) {
			continue
		}
		p := ed.Pickers().Get(c)
		ids := *f.categories[c]
		for _, id := range ids {
			if !p.Offers(id) {
				return fmt.Errorf("playlist %s cannot be used for %s: it must be an existing %s playlist", id, c, c.EligibleMode())
			}
		}
		p.Clear()
		p.Select(ids)
	}
	return nil
}

// submit sends the editor's form and installs the reloaded accounts
func (a *App) submit(ctx context.Context, env *Env) error {
	ed := env.State.Editor()
	label := ed.SubmitLabel()
	reload, err := env.Session.Xtreams.Submit(ctx, ed)
	if err != nil {
		return err
	}
	env.State.ApplyReload(reload)

	switch label {
	case "Create":
		fmt.Fprintln(a.Out, "Account created")
	default:
		fmt.Fprintln(a.Out, "Account updated")
	}
	return nil
}

func (a *App) xtreamsAddCmd() *cobra.Command {
	var f accountFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.boot(cmd)
			if err != nil {
				return err
			}
			ed := env.State.Editor()
			ed.Reset()
			if err := f.apply(cmd, ed); err != nil {
				return err
			}
			if ed.Form.Password, err = a.secret("Password", ed.Form.Password); err != nil {
				return err
			}
			return a.submit(cmd.Context(), env)
		},
	}

	f.register(cmd, strconv.Itoa(domain.DefaultRefreshHours))
	return cmd
}

func (a *App) xtreamsUpdateCmd() *cobra.Command {
	var f accountFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an account; unset flags keep the stored values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.boot(cmd)
			if err != nil {
				return err
			}
			x, err := findXtream(env, args[0])
			if err != nil {
				return err
			}
			ed := env.State.Editor()
			ed.Edit(x)
			if err := f.apply(cmd, ed); err != nil {
				return err
			}
			return a.submit(cmd.Context(), env)
		},
	}

	f.register(cmd, "")
	return cmd
}

func (a *App) xtreamsRefreshCmd() *cobra.Command {
	var every string

	cmd := &cobra.Command{
		Use:   "refresh <id>",
		Short: "Set an account's interval and refresh it now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.boot(cmd)
			if err != nil {
				return err
			}
			x, err := findXtream(env, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("every") {
				every = strconv.Itoa(x.RefreshIntervalHours)
			}

			reload, err := env.Session.Xtreams.Refresh(cmd.Context(), x.ID, every)
			if err != nil {
				return err
			}
			env.State.ApplyReload(reload)

			fmt.Fprintf(a.Out, "Refresh requested for %q every %dh\n", x.Name, console.ParseInterval(every))
			return nil
		},
	}

	cmd.Flags().StringVar(&every, "every", "", "Refresh interval in hours (default: stored value)")
	return cmd
}

func (a *App) xtreamsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an account",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.boot(cmd)
			if err != nil {
				return err
			}
			x, err := findXtream(env, args[0])
			if err != nil {
				return err
			}

			if err := a.confirm(fmt.Sprintf("Delete account %q (%s)?", x.Name, x.ID), yes); err != nil {
				return err
			}

			reload, err := env.Session.Xtreams.Delete(cmd.Context(), x.ID)
			if err != nil {
				return err
			}
			env.State.ApplyReload(reload)

			fmt.Fprintf(a.Out, "Deleted account %q\n", x.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func (a *App) xtreamsURLsCmd() *cobra.Command {
	var copyWhich string
	var open bool

	cmd := &cobra.Command{
		Use:   "urls <id>",
		Short: "Print an account's server and full URLs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.boot(cmd)
			if err != nil {
				return err
			}
			x, err := findXtream(env, args[0])
			if err != nil {
				return err
			}

			server, full := env.State.ServerURL(x), env.State.FullURL(x)
			v := map[string]string{"server_url": server, "full_url": full}
			if err := a.render(v, []string{"URL", "Value"}, [][]string{
				{"Server", server},
				{"Full", full},
			}); err != nil {
				return err
			}

			switch copyWhich {
			case "":
			case "server":
				a.copy(env, server)
			case "full":
				a.copy(env, full)
			default:
				return fmt.Errorf("unknown --copy value %q (want server or full)", copyWhich)
			}

			if open {
				return a.open(env, full)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&copyWhich, "copy", "", "Copy a URL to the clipboard: server or full")
	cmd.Flags().BoolVar(&open, "open", false, "Open the full URL in the external player")
	return cmd
}
