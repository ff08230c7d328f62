package tui

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/domain"
	"github.com/mmcdole/xtconsole/internal/service"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil

	case StateAlert:
		if key.Matches(msg, Keys.Escape, Keys.Enter) || msg.String() == " " {
			m.State = StateBrowsing
			m.Alert = ""
		}
		return m, nil

	case StateConfirmDelete:
		switch {
		case key.Matches(msg, Keys.Confirm):
			m.State = StateBrowsing
			return m.dispatchDelete()
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
			m.pending = pendingDelete{}
		}
		return m, nil

	case StateRowEdit:
		return m.handleRowEditKey(msg)

	case StatePrompt:
		var cmd tea.Cmd
		var submitted bool
		m.InputModal, cmd, submitted = m.InputModal.Update(msg)
		if !m.InputModal.IsVisible() {
			m.State = StateBrowsing
			return m, cmd
		}
		if submitted {
			m.InputModal.Hide()
			m.State = StateBrowsing
			return m.refreshXtream(m.promptID, m.InputModal.Value())
		}
		return m, cmd
	}

	// Focused forms and filter inputs take every key
	switch m.Tab {
	case TabSettings:
		if m.SettingsForm.Focused() {
			return m.handleSettingsFormKey(msg)
		}
	case TabPlaylists:
		if m.AddForm.Focused() {
			return m.handleAddFormKey(msg)
		}
		if m.PlaylistList.IsFilterTyping() {
			var cmd tea.Cmd
			m.PlaylistList, cmd = m.PlaylistList.Update(msg)
			return m, cmd
		}
	case TabXtreams:
		if m.AccountFormFocused() {
			return m.handleAccountFormKey(msg)
		}
		if m.XtreamList.IsFilterTyping() {
			var cmd tea.Cmd
			m.XtreamList, cmd = m.XtreamList.Update(msg)
			return m, cmd
		}
	case TabConvert:
		if m.ConvertForm.Focused() {
			return m.handleConvertFormKey(msg)
		}
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		return m.switchTab((m.Tab + 1) % Tab(len(tabNames)))

	case key.Matches(msg, Keys.PrevTab):
		return m.switchTab((m.Tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))

	case key.Matches(msg, Keys.TabKeys):
		n, _ := strconv.Atoi(msg.String())
		return m.switchTab(Tab(n - 1))
	}

	switch m.Tab {
	case TabSettings:
		return m.handleSettingsKey(msg)
	case TabPlaylists:
		return m.handlePlaylistsKey(msg)
	case TabXtreams:
		return m.handleXtreamsKey(msg)
	case TabConvert:
		if key.Matches(msg, Keys.Edit) {
			m.ConvertForm.FocusField(convURL)
		}
		return m, nil
	case TabHistory:
		if key.Matches(msg, Keys.Reload) {
			return m, m.loadHistory()
		}
		var cmd tea.Cmd
		m.HistoryList, cmd = m.HistoryList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) switchTab(t Tab) (tea.Model, tea.Cmd) {
	m.Tab = t
	if t == TabHistory {
		return m, m.loadHistory()
	}
	return m, nil
}

// Settings tab

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Edit):
		m.SettingsForm.FocusField(setResolver)
	case key.Matches(msg, Keys.Submit):
		return m.saveSettings()
	case key.Matches(msg, Keys.Reload):
		return m, LoadSettingsCmd(m.Session.Settings)
	}
	return m, nil
}

func (m Model) handleSettingsFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.SettingsForm.Blur()
		return m, nil
	case key.Matches(msg, Keys.Submit):
		return m.saveSettings()
	case key.Matches(msg, Keys.Enter):
		if !m.SettingsForm.Next() {
			return m.saveSettings()
		}
		return m, nil
	case key.Matches(msg, Keys.NextFld):
		if !m.SettingsForm.Next() {
			m.SettingsForm.FocusField(0)
		}
		return m, nil
	case key.Matches(msg, Keys.PrevFld):
		m.SettingsForm.Prev()
		return m, nil
	}

	var cmd tea.Cmd
	m.SettingsForm, cmd = m.SettingsForm.Update(msg)
	return m, cmd
}

func (m Model) saveSettings() (tea.Model, tea.Cmd) {
	if !m.startBusy(service.ActionSettingsSave) {
		return m, nil
	}
	m.settingsSeq++
	m.SettingsStatus = "saving..."
	return m, SaveSettingsCmd(m.Session.Settings, domain.Settings{
		ResolverBaseURL: m.SettingsForm.Value(setResolver),
		UpstreamURL:     m.SettingsForm.Value(setUpstream),
		APIPassword:     m.SettingsForm.Value(setPassword),
	})
}

// Playlists tab

func (m Model) handlePlaylistsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Filter):
		m.PlaylistList.StartFilter()
		return m, nil
	case key.Matches(msg, Keys.Escape):
		m.PlaylistList.ClearFilter()
		return m, nil
	case key.Matches(msg, Keys.Reload):
		return m, LoadPlaylistsCmd(m.Session.Playlists)
	case key.Matches(msg, Keys.New):
		m.AddForm.FocusField(addName)
		return m, nil
	}

	p := m.selectedPlaylist()
	if p != nil {
		link := m.Core.PlaylistLink(p)
		switch {
		case key.Matches(msg, Keys.Edit):
			m.openRowEditor(p)
			return m, nil
		case key.Matches(msg, Keys.Refresh):
			return m.savePlaylistRow(p, console.NewRowDraft(p), true)
		case key.Matches(msg, Keys.Delete):
			m.pending = pendingDelete{scope: console.ScopePlaylists, id: p.ID, name: p.Name}
			m.State = StateConfirmDelete
			return m, nil
		case key.Matches(msg, Keys.CopyLink):
			return m, CopyCmd(m.Copier, "playlist link", link)
		case key.Matches(msg, Keys.Open):
			return m.open(link)
		}
	}

	var cmd tea.Cmd
	m.PlaylistList, cmd = m.PlaylistList.Update(msg)
	return m, cmd
}

func (m Model) handleAddFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.AddForm.Blur()
		return m, nil
	case key.Matches(msg, Keys.Submit):
		return m.createPlaylist()
	case key.Matches(msg, Keys.Enter):
		if !m.AddForm.Next() {
			return m.createPlaylist()
		}
		return m, nil
	case key.Matches(msg, Keys.NextFld):
		if !m.AddForm.Next() {
			m.AddForm.FocusField(0)
		}
		return m, nil
	case key.Matches(msg, Keys.PrevFld):
		m.AddForm.Prev()
		return m, nil
	}

	var cmd tea.Cmd
	m.AddForm, cmd = m.AddForm.Update(msg)
	return m, cmd
}

func (m Model) createPlaylist() (tea.Model, tea.Cmd) {
	if !m.startBusy(busyKey(service.ActionPlaylistCreate, "")) {
		return m, nil
	}
	return m, CreatePlaylistCmd(m.Session.Playlists, console.PlaylistInput{
		Name:     m.AddForm.Value(addName),
		URL:      m.AddForm.Value(addURL),
		Mode:     domain.Mode(m.AddForm.Value(addMode)),
		Interval: m.AddForm.Value(addInterval),
		Resolver: m.AddForm.Value(addResolver),
	})
}

func (m *Model) openRowEditor(p *domain.Playlist) {
	row := console.NewRowDraft(p)
	m.RowForm.SetValue(rowName, row.Name)
	m.RowForm.SetValue(rowURL, row.URL)
	m.RowForm.SetValue(rowInterval, row.Interval)
	m.RowForm.SetValue(rowResolver, row.Resolver)
	m.RowForm.FocusField(rowInterval)
	m.rowEditID = p.ID
	m.State = StateRowEdit
}

func (m Model) handleRowEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.Core.FindPlaylist(m.rowEditID)
	closeEditor := func() {
		m.RowForm.Blur()
		m.rowEditID = ""
		m.State = StateBrowsing
	}
	if p == nil {
		closeEditor()
		return m, nil
	}

	row := console.RowDraft{
		Name:     m.RowForm.Value(rowName),
		URL:      m.RowForm.Value(rowURL),
		Interval: m.RowForm.Value(rowInterval),
		Resolver: m.RowForm.Value(rowResolver),
	}

	switch {
	case key.Matches(msg, Keys.Escape):
		closeEditor()
		return m, nil
	case key.Matches(msg, Keys.Enter), key.Matches(msg, Keys.Submit):
		closeEditor()
		return m.savePlaylistRow(p, row, false)
	case key.Matches(msg, Keys.SubmitRef):
		closeEditor()
		return m.savePlaylistRow(p, row, true)
	case key.Matches(msg, Keys.NextFld):
		if !m.RowForm.Next() {
			m.RowForm.FocusField(0)
		}
		return m, nil
	case key.Matches(msg, Keys.PrevFld):
		m.RowForm.Prev()
		return m, nil
	}

	var cmd tea.Cmd
	m.RowForm, cmd = m.RowForm.Update(msg)
	return m, cmd
}

func (m Model) savePlaylistRow(p *domain.Playlist, row console.RowDraft, refresh bool) (tea.Model, tea.Cmd) {
	action := service.ActionPlaylistSave
	if refresh {
		action = service.ActionPlaylistRefresh
	}
	if !m.startBusy(busyKey(action, p.ID)) {
		return m, nil
	}
	return m, SavePlaylistCmd(m.Session.Playlists, p, row, refresh)
}

// Xtream tab

func (m Model) handleXtreamsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Filter):
		m.XtreamList.StartFilter()
		return m, nil
	case key.Matches(msg, Keys.Escape):
		m.XtreamList.ClearFilter()
		return m, nil
	case key.Matches(msg, Keys.Reload):
		return m, LoadXtreamsCmd(m.Session.Xtreams)
	case key.Matches(msg, Keys.New):
		m.Core.Editor().Reset()
		m.pushAccountForm()
		m.AccountForm.FocusField(accName)
		return m, nil
	}

	x := m.selectedXtream()
	if x != nil {
		switch {
		case key.Matches(msg, Keys.Edit):
			m.Core.Editor().Edit(x)
			m.pushAccountForm()
			m.AccountForm.FocusField(accName)
			return m, nil
		case key.Matches(msg, Keys.Details):
			m.expanded[x.ID] = !m.expanded[x.ID]
			return m, nil
		case key.Matches(msg, Keys.Refresh):
			m.promptID = x.ID
			m.InputModal.Show("Refresh "+x.Name, strconv.Itoa(x.RefreshIntervalHours), "interval in hours, enter to refresh now")
			m.State = StatePrompt
			return m, nil
		case key.Matches(msg, Keys.Delete):
			m.pending = pendingDelete{scope: console.ScopeXtreams, id: x.ID, name: x.Name}
			m.State = StateConfirmDelete
			return m, nil
		case key.Matches(msg, Keys.CopyLink):
			return m, CopyCmd(m.Copier, "server URL", m.Core.ServerURL(x))
		case key.Matches(msg, Keys.CopyFull):
			return m, CopyCmd(m.Copier, "full URL", m.Core.FullURL(x))
		case key.Matches(msg, Keys.Open):
			return m.open(m.Core.FullURL(x))
		}
	}

	var cmd tea.Cmd
	m.XtreamList, cmd = m.XtreamList.Update(msg)
	return m, cmd
}

func (m Model) handleAccountFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.pullAccountForm()
		m.blurAccountForm()
		return m, nil
	case key.Matches(msg, Keys.ResetForm):
		m.Core.Editor().Reset()
		m.pushAccountForm()
		m.pickerFocus = -1
		m.AccountForm.FocusField(accName)
		return m, nil
	case key.Matches(msg, Keys.Submit):
		return m.submitAccount()
	case msg.String() == "tab":
		m.nextAccountField()
		return m, nil
	case msg.String() == "shift+tab":
		m.prevAccountField()
		return m, nil
	}

	if m.pickerFocus >= 0 {
		c := domain.Categories()[m.pickerFocus]
		m.Pickers[m.pickerFocus] = m.Pickers[m.pickerFocus].Update(msg, m.Core.Editor().Pickers().Get(c))
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Enter), msg.String() == "down":
		m.nextAccountField()
		return m, nil
	case msg.String() == "up":
		m.prevAccountField()
		return m, nil
	}

	var cmd tea.Cmd
	m.AccountForm, cmd = m.AccountForm.Update(msg)
	return m, cmd
}

// nextAccountField walks the text fields, then the four pickers, then wraps
func (m *Model) nextAccountField() {
	switch {
	case m.pickerFocus < 0 && m.AccountForm.Next():
	case m.pickerFocus < 0:
		m.AccountForm.Blur()
		m.pickerFocus = 0
	case m.pickerFocus < len(m.Pickers)-1:
		m.pickerFocus++
	default:
		m.pickerFocus = -1
		m.AccountForm.FocusField(0)
	}
}

func (m *Model) prevAccountField() {
	switch {
	case m.pickerFocus < 0 && m.AccountForm.Prev():
	case m.pickerFocus < 0:
		m.AccountForm.Blur()
		m.pickerFocus = len(m.Pickers) - 1
	case m.pickerFocus > 0:
		m.pickerFocus--
	default:
		m.pickerFocus = -1
		m.AccountForm.FocusField(m.AccountForm.Len() - 1)
	}
}

func (m Model) submitAccount() (tea.Model, tea.Cmd) {
	m.pullAccountForm()
	ed := m.Core.Editor()
	draft, err := ed.Draft()
	if err != nil {
		m.showAlert("Missing fields", err)
		return m, nil
	}
	if !m.startBusy(busyKey(service.ActionXtreamCreate, "")) {
		return m, nil
	}
	return m, SaveXtreamCmd(m.Session.Xtreams, ed.Target(), draft)
}

func (m Model) refreshXtream(id, interval string) (tea.Model, tea.Cmd) {
	if !m.startBusy(busyKey(service.ActionXtreamRefresh, id)) {
		return m, nil
	}
	return m, RefreshXtreamCmd(m.Session.Xtreams, id, interval)
}

// Convert tab

func (m Model) handleConvertFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.ConvertForm.Blur()
		return m, nil
	case key.Matches(msg, Keys.Submit):
		return m.convert()
	case key.Matches(msg, Keys.Enter):
		if !m.ConvertForm.Next() {
			return m.convert()
		}
		return m, nil
	case key.Matches(msg, Keys.NextFld):
		if !m.ConvertForm.Next() {
			m.ConvertForm.FocusField(0)
		}
		return m, nil
	case key.Matches(msg, Keys.PrevFld):
		m.ConvertForm.Prev()
		return m, nil
	}

	var cmd tea.Cmd
	m.ConvertForm, cmd = m.ConvertForm.Update(msg)
	return m, cmd
}

func (m Model) convert() (tea.Model, tea.Cmd) {
	if !m.startBusy("convert") {
		return m, nil
	}
	m.Converted = nil
	m.StatusMsg = "Converting..."
	m.StatusIsErr = false
	return m, ConvertCmd(m.Session.Convert,
		m.ConvertForm.Value(convURL),
		domain.Mode(m.ConvertForm.Value(convMode)),
		m.opts.DownloadDir)
}

// Shared row actions

func (m Model) dispatchDelete() (tea.Model, tea.Cmd) {
	p := m.pending
	m.pending = pendingDelete{}
	switch p.scope {
	case console.ScopePlaylists:
		if !m.startBusy(busyKey(service.ActionPlaylistDelete, p.id)) {
			return m, nil
		}
		return m, DeletePlaylistCmd(m.Session.Playlists, p.id)
	case console.ScopeXtreams:
		if !m.startBusy(busyKey(service.ActionXtreamDelete, p.id)) {
			return m, nil
		}
		return m, DeleteXtreamCmd(m.Session.Xtreams, p.id)
	}
	return m, nil
}

func (m Model) open(url string) (tea.Model, tea.Cmd) {
	if m.Launcher == nil {
		return m, func() tea.Msg {
			return PlayerLaunchedMsg{URL: url, Err: errors.New("no player available")}
		}
	}
	return m, OpenCmd(m.Launcher, url)
}
