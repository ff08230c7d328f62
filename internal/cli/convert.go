package cli

import (
	"fmt"

	"github.com/mmcdole/xtconsole/internal/domain"
	"github.com/spf13/cobra"
)

func (a *App) convertCmd() *cobra.Command {
	var url, mode, dir string
	var groups int

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a source playlist once and save the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := domain.ParseMode(mode)
			if err != nil {
				return err
			}
			env, err := a.connect(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dir") {
				dir = env.Options.DownloadDir
			}

			res, err := env.Session.Convert.Convert(cmd.Context(), url, m, dir)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.Out, "Saved %s (%d bytes, %d entries)\n", res.Path, res.Bytes, res.Summary.Len())
			for i, g := range res.Summary.Groups {
				if i == groups {
					fmt.Fprintf(a.Out, "  ... %d more groups\n", len(res.Summary.Groups)-groups)
					break
				}
				name := g.Name
				if name == "" {
					name = "(no group)"
				}
				fmt.Fprintf(a.Out, "  %-40s %d\n", name, g.Count)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Source M3U URL (required)")
	cmd.Flags().StringVar(&mode, "mode", string(domain.ModeTV), "Format mode: tv or video")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to save into (default: downloads.dir)")
	cmd.Flags().IntVar(&groups, "groups", 10, "Number of groups to summarize")
	return cmd
}

func (a *App) historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent operator actions against this backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.connect(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = env.Options.HistoryLimit
			}

			entries, err := env.Session.Pipeline.History(limit)
			if err != nil {
				return err
			}

			views := make([]historyView, len(entries))
			rows := make([][]string, len(entries))
			for i, e := range entries {
				v := historyView{
					At:     formatTime(e.At),
					Action: e.Action,
					Target: e.Target,
					OK:     e.OK,
					Error:  e.Error,
				}
				views[i] = v
				result := "ok"
				if !e.OK {
					result = e.Error
				}
				rows[i] = []string{v.At, v.Action, v.Target, result}
			}
			return a.render(views, []string{"When", "Action", "Target", "Result"}, rows)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries")
	return cmd
}
