package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/xtconsole/internal/domain"
	"github.com/mmcdole/xtconsole/internal/service"
	"github.com/mmcdole/xtconsole/internal/tui/components"
	"github.com/mmcdole/xtconsole/internal/tui/styles"
)

// Layout
const (
	chromeHeight  = 2 // tab bar + footer
	formChrome    = 3 // form title, hint line and spacing
	pickerHeight  = 8
	minListHeight = 6
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	// Handle modal states
	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateAlert:
		return components.RenderAlert(m.Width, m.Height, m.AlertTitle, m.Alert)
	case StateConfirmDelete:
		return components.RenderConfirm(m.Width, m.Height,
			"Delete "+m.pending.name+"?",
			"This removes it from the server. There is no undo.")
	case StateRowEdit:
		return m.renderRowEditor()
	case StatePrompt:
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.InputModal.View())
	}

	var body string
	switch m.Tab {
	case TabSettings:
		body = m.renderSettings()
	case TabPlaylists:
		body = m.renderPlaylists()
	case TabXtreams:
		body = m.renderXtreams()
	case TabConvert:
		body = m.renderConvert()
	case TabHistory:
		body = m.HistoryList.View(m.renderHistoryRow)
	}

	bodyHeight := max(m.Height-chromeHeight, 1)
	body = lipgloss.NewStyle().MaxWidth(m.Width).Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), body, m.renderFooter())
}

func (m Model) renderTabs() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.Tab {
			parts[i] = styles.ActiveTabStyle.Render(label)
		} else {
			parts[i] = styles.TabStyle.Render(label)
		}
	}
	tabs := strings.Join(parts, "")
	origin := styles.DimStyle.Render(m.Core.Origin())
	gap := m.Width - lipgloss.Width(tabs) - lipgloss.Width(origin)
	if gap < 1 {
		return tabs
	}
	return tabs + strings.Repeat(" ", gap) + origin
}

// Settings

func (m Model) renderSettings() string {
	title := styles.TitleStyle.Render("Server settings")
	switch m.SettingsStatus {
	case "saving...":
		title += "  " + styles.DimStyle.Render("saving...")
	case "ok":
		title += "  " + styles.SuccessStyle.Render("ok")
	case "error":
		title += "  " + styles.ErrorStyle.Render("error")
	}

	base := styles.SubtitleStyle.Render("Stream URLs are built on ") + styles.LinkStyle.Render(m.Core.Base())

	hints := []string{styles.Hint("enter", "edit"), styles.Hint("C-s", "save"), styles.Hint("r", "reload")}
	if m.SettingsForm.Focused() {
		hints = []string{styles.Hint("tab", "next field"), styles.Hint("C-s", "save"), styles.Hint("esc", "done")}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		title,
		"",
		m.SettingsForm.View(),
		"",
		base,
		"",
		strings.Join(hints, "  "),
	)
}

// Playlists

func (m Model) renderPlaylists() string {
	title := styles.TitleStyle.Render("Add playlist")
	if m.IsBusy(busyKey(service.ActionPlaylistCreate, "")) {
		title += "  " + styles.DimStyle.Render("creating...")
	}
	hint := styles.Hint("n", "focus form")
	if m.AddForm.Focused() {
		hint = strings.Join([]string{
			styles.Hint("tab", "next field"),
			styles.Hint("←/→", "mode"),
			styles.Hint("C-s", "add"),
			styles.Hint("esc", "back to list"),
		}, "  ")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.PlaylistList.View(m.renderPlaylistRow),
		title,
		m.AddForm.View(),
		hint,
	)
}

func (m Model) renderPlaylistRow(idx int, selected bool, width int) string {
	p := m.Core.Playlists()[idx]
	resolver := "-"
	if p.ResolverOverrideURL != "" {
		resolver = p.ResolverOverrideURL
	}
	line := fmt.Sprintf("%-24s %-5s %4dh  %-16s  %-20s  %s",
		truncate(p.Name, 24),
		p.Mode,
		p.RefreshIntervalHours,
		formatLastRefresh(p.LastRefreshTime()),
		truncate(resolver, 20),
		m.Core.PlaylistLink(p),
	)
	return renderRow(line, selected, width)
}

func (m Model) renderRowEditor() string {
	p := m.Core.FindPlaylist(m.rowEditID)
	name := m.rowEditID
	if p != nil {
		name = p.Name
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Edit "+name),
		m.RowForm.View(),
		"",
		strings.Join([]string{
			styles.Hint("enter", "save"),
			styles.Hint("C-r", "save + refresh"),
			styles.Hint("esc", "cancel"),
		}, "  "),
	)
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, styles.ModalStyle.Render(content))
}

// Xtream accounts

func (m Model) renderXtreams() string {
	ed := m.Core.Editor()
	title := styles.TitleStyle.Render("New account")
	if !ed.Target().IsCreating() {
		name := ed.Target().ID()
		if x := m.Core.FindXtream(name); x != nil {
			name = x.Name
		}
		title = styles.TitleStyle.Render("Editing " + name)
	}
	if m.IsBusy("xtream.save") {
		title += "  " + styles.DimStyle.Render("saving...")
	}

	colWidth := max((m.Width-4)/len(m.Pickers), 12)
	cols := make([]string, len(m.Pickers))
	for i, c := range domain.Categories() {
		view := m.Pickers[i].View(ed.Pickers().Get(c), m.pickerFocus == i, colWidth, pickerHeight-2)
		cols[i] = lipgloss.NewStyle().Width(colWidth).Height(pickerHeight).Render(view)
	}

	hint := styles.Hint("n", "new") + "  " + styles.Hint("e", "edit selected")
	if m.AccountFormFocused() {
		hint = strings.Join([]string{
			styles.Hint("tab", "next field/picker"),
			styles.Hint("space", "toggle"),
			styles.Hint("C-s", ed.SubmitLabel()),
			styles.Hint("C-n", "reset"),
			styles.Hint("esc", "back to list"),
		}, "  ")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.XtreamList.View(m.renderXtreamRow),
		title,
		m.AccountForm.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, cols...),
		hint,
	)
}

// credentialWidths sizes the username and password columns to the longest value
func credentialWidths(accounts []*domain.XtreamAccount) (int, int) {
	userW, passW := 8, 8
	for _, x := range accounts {
		userW = max(userW, lipgloss.Width(x.Username))
		passW = max(passW, lipgloss.Width(x.Password))
	}
	return userW, passW
}

func (m Model) renderXtreamRow(idx int, selected bool, width int) string {
	x := m.Core.Xtreams()[idx]
	userW, passW := credentialWidths(m.Core.Xtreams())

	// credentials are never cut; only the columns after them give way
	head := fmt.Sprintf("%-20s %s %s ",
		truncate(x.Name, 20),
		x.Username+strings.Repeat(" ", userW-lipgloss.Width(x.Username)),
		x.Password+strings.Repeat(" ", passW-lipgloss.Width(x.Password)),
	)
	tail := fmt.Sprintf("%4dh  %-16s  %s",
		x.RefreshIntervalHours,
		formatLastRefresh(x.LastRefreshTime()),
		m.Core.ServerURL(x),
	)
	if room := width - lipgloss.Width(head); room > 1 {
		tail = truncate(tail, room)
	} else {
		tail = ""
	}

	style := styles.NormalItemStyle
	if selected {
		style = styles.SelectedItemStyle
	}
	row := style.Render(head + tail)
	if !m.expanded[x.ID] {
		return row
	}

	lines := []string{row, "    " + styles.LinkStyle.Render(m.Core.FullURL(x))}
	for _, d := range m.Core.CategoryDetails(x) {
		names := "-"
		if len(d.Labels) > 0 {
			names = strings.Join(d.Labels, ", ")
		}
		lines = append(lines, "    "+styles.SubtitleStyle.Render(fmt.Sprintf("%-7s", d.Category.String()+":"))+" "+truncate(names, width-12))
	}
	return strings.Join(lines, "\n")
}

// Convert

func (m Model) renderConvert() string {
	lines := []string{
		"",
		styles.TitleStyle.Render("Convert once"),
		styles.SubtitleStyle.Render("Fetches a source through the server and saves it locally without registering it."),
		"",
		m.ConvertForm.View(),
		"",
	}
	if m.IsBusy("convert") {
		lines = append(lines, styles.DimStyle.Render("converting..."))
	}
	if res := m.Converted; res != nil {
		lines = append(lines,
			styles.SuccessStyle.Render("Saved ")+res.Path+styles.DimStyle.Render(fmt.Sprintf(" (%d bytes)", res.Bytes)),
			fmt.Sprintf("%d entries in %d groups", res.Summary.Len(), len(res.Summary.Groups)),
		)
		for i, g := range res.Summary.Groups {
			if i == 10 {
				lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("  ... %d more", len(res.Summary.Groups)-10)))
				break
			}
			name := g.Name
			if name == "" {
				name = "(ungrouped)"
			}
			lines = append(lines, fmt.Sprintf("  %5d  %s", g.Count, name))
		}
		lines = append(lines, "")
	}
	hint := styles.Hint("enter", "edit")
	if m.ConvertForm.Focused() {
		hint = styles.Hint("C-s", "convert") + "  " + styles.Hint("esc", "done")
	}
	lines = append(lines, hint)
	return strings.Join(lines, "\n")
}

// History

func (m Model) renderHistoryRow(idx int, selected bool, width int) string {
	e := m.History[idx]
	status := styles.SuccessStyle.Render("ok ")
	if !e.OK {
		status = styles.ErrorStyle.Render("err")
	}
	line := fmt.Sprintf("%s  %-17s %-24s %s",
		e.At.Local().Format("2006-01-02 15:04:05"),
		e.Action,
		truncate(e.Target, 24),
		e.Error,
	)
	if selected {
		return status + " " + styles.SelectedItemStyle.Render(truncate(line, width-4))
	}
	return status + " " + styles.NormalItemStyle.Render(truncate(line, width-4))
}

// Chrome

func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	var center string
	switch m.Tab {
	case TabPlaylists:
		if !m.AddForm.Focused() {
			center = strings.Join([]string{
				styles.Hint("e", "Edit"), styles.Hint("R", "Refresh"), styles.Hint("c", "Copy"),
				styles.Hint("o", "Open"), styles.Hint("x", "Delete"),
			}, " ")
		}
	case TabXtreams:
		if !m.AccountFormFocused() {
			center = strings.Join([]string{
				styles.Hint("d", "Details"), styles.Hint("R", "Refresh"), styles.Hint("c/C", "Copy"),
				styles.Hint("x", "Delete"),
			}, " ")
		}
	}

	right := styles.Hint("?", "help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
TABS                             LISTS
  1-5 / tab    Jump / next tab     j/k        Up/down
  S-tab        Previous tab        /          Filter by name
  q            Quit                r          Reload from server
  ?            This help           n          New (focus form)

PLAYLISTS                        XTREAM ACCOUNTS
  e/enter  Edit row (C-r refresh)  e/enter  Load into form
  R        Refresh now             d/space  Details
  c        Copy .m3u link          R        Refresh (set interval)
  o        Open in player          c / C    Copy server / full URL
  x        Delete                  o        Open full URL
                                   x        Delete

FORMS
  tab / S-tab  Next / previous field (pickers: space toggles, type to narrow)
  C-s          Save / submit          C-n  Reset account form
  esc          Leave form

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

func renderRow(line string, selected bool, width int) string {
	line = truncate(line, width)
	if selected {
		return styles.SelectedItemStyle.Render(line)
	}
	return styles.NormalItemStyle.Render(line)
}

func formatLastRefresh(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
