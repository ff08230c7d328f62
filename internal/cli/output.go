package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/domain"
	"github.com/mmcdole/xtconsole/internal/tui/styles"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
	formatJSON  = "json"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Accent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func checkFormat(f string) error {
	switch f {
	case formatTable, formatYAML, formatJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, yaml or json)", f)
	}
}

// render writes v as yaml or json, or the headers and rows as a table
func (a *App) render(v any, headers []string, rows [][]string) error {
	return write(a.Out, a.output, v, headers, rows)
}

func write(w io.Writer, format string, v any, headers []string, rows [][]string) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.DimGray)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04")
}

type settingsView struct {
	ResolverBaseURL string `json:"resolver_base_url" yaml:"resolver_base_url"`
	MediaflowURL    string `json:"mediaflow_url" yaml:"mediaflow_url"`
	APIPassword     string `json:"api_password" yaml:"api_password"`
	URLBase         string `json:"url_base" yaml:"url_base"`
}

func newSettingsView(state *console.State) settingsView {
	s := state.Settings()
	return settingsView{
		ResolverBaseURL: s.ResolverBaseURL,
		MediaflowURL:    s.UpstreamURL,
		APIPassword:     s.APIPassword,
		URLBase:         state.Base(),
	}
}

type playlistView struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	URL         string `json:"url" yaml:"url"`
	Mode        string `json:"mode" yaml:"mode"`
	EveryHours  int    `json:"every_hours" yaml:"every_hours"`
	ResolverURL string `json:"resolver_url,omitempty" yaml:"resolver_url,omitempty"`
	LastRefresh string `json:"last_refresh" yaml:"last_refresh"`
	Link        string `json:"link" yaml:"link"`
}

func newPlaylistView(state *console.State, p *domain.Playlist) playlistView {
	return playlistView{
		ID:          p.ID,
		Name:        p.Name,
		URL:         p.SourceURL,
		Mode:        string(p.Mode),
		EveryHours:  p.RefreshIntervalHours,
		ResolverURL: p.ResolverOverrideURL,
		LastRefresh: formatTime(p.LastRefreshTime()),
		Link:        state.PlaylistLink(p),
	}
}

type xtreamView struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Username    string   `json:"username" yaml:"username"`
	Password    string   `json:"password" yaml:"password"`
	EveryHours  int      `json:"every_hours" yaml:"every_hours"`
	LastRefresh string   `json:"last_refresh" yaml:"last_refresh"`
	ServerURL   string   `json:"server_url" yaml:"server_url"`
	FullURL     string   `json:"full_url" yaml:"full_url"`
	Live        []string `json:"live" yaml:"live"`
	Movies      []string `json:"movies" yaml:"movies"`
	Series      []string `json:"series" yaml:"series"`
	Mixed       []string `json:"mixed" yaml:"mixed"`
}

func newXtreamView(state *console.State, x *domain.XtreamAccount) xtreamView {
	v := xtreamView{
		ID:          x.ID,
		Name:        x.Name,
		Username:    x.Username,
		Password:    x.Password,
		EveryHours:  x.RefreshIntervalHours,
		LastRefresh: formatTime(x.LastRefreshTime()),
		ServerURL:   state.ServerURL(x),
		FullURL:     state.FullURL(x),
	}
	for _, d := range state.CategoryDetails(x) {
		labels := d.Labels
		if labels == nil {
			labels = []string{}
		}
		switch d.Category {
		case domain.CategoryLive:
			v.Live = labels
		case domain.CategoryMovies:
			v.Movies = labels
		case domain.CategorySeries:
			v.Series = labels
		case domain.CategoryMixed:
			v.Mixed = labels
		}
	}
	return v
}

type historyView struct {
	At     string `json:"at" yaml:"at"`
	Action string `json:"action" yaml:"action"`
	Target string `json:"target" yaml:"target"`
	OK     bool   `json:"ok" yaml:"ok"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}
