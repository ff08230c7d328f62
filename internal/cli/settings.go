package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) settingsCmd() *cobra.Command {
	return groupCmd("settings", "Show or change the backend settings",
		a.settingsShowCmd(),
		a.settingsSetCmd(),
	)
}

func (a *App) settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolver and MediaFlow settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.connect(cmd)
			if err != nil {
				return err
			}
			settings, err := env.Session.Settings.Load(cmd.Context())
			if err != nil {
				return err
			}
			env.State.ApplySettings(settings)

			v := newSettingsView(env.State)
			return a.render(v, []string{"Setting", "Value"}, [][]string{
				{"Resolver", v.ResolverBaseURL},
				{"MediaFlow", v.MediaflowURL},
				{"API password", v.APIPassword},
				{"URL base", v.URLBase},
			})
		},
	}
}

func (a *App) settingsSetCmd() *cobra.Command {
	var resolver, upstream, password string
	var askPassword bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings; unset flags keep their current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.connect(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			// The record is replaced wholesale, so start from what the server has
			settings, err := env.Session.Settings.Load(ctx)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("resolver") {
				settings.ResolverBaseURL = resolver
			}
			if flags.Changed("mediaflow") {
				settings.UpstreamURL = upstream
			}
			if flags.Changed("password") {
				settings.APIPassword = password
			}
			if askPassword {
				if settings.APIPassword, err = a.secret("MediaFlow API password", ""); err != nil {
					return err
				}
			}

			saved, err := env.Session.Settings.Save(ctx, settings)
			if err != nil {
				return err
			}
			env.State.ApplySettings(saved)
			fmt.Fprintf(a.Out, "Settings saved. Account URLs now start with %s\n", env.State.Base())
			return nil
		},
	}

	cmd.Flags().StringVar(&resolver, "resolver", "", "Resolver base URL (empty = this server)")
	cmd.Flags().StringVar(&upstream, "mediaflow", "", "MediaFlow proxy URL")
	cmd.Flags().StringVar(&password, "password", "", "MediaFlow API password")
	cmd.Flags().BoolVar(&askPassword, "ask-password", false, "Prompt for the API password without echo")
	return cmd
}
