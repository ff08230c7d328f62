package tui

import (
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/xtconsole/internal/clipboard"
	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/domain"
	"github.com/mmcdole/xtconsole/internal/service"
	"github.com/mmcdole/xtconsole/internal/tui/components"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmDelete
	StateAlert
	StateRowEdit
	StatePrompt
)

// Tab is one top-level pane
type Tab int

const (
	TabSettings Tab = iota
	TabPlaylists
	TabXtreams
	TabConvert
	TabHistory
)

var tabNames = []string{"Settings", "Playlists", "Xtream", "Convert", "History"}

func (t Tab) String() string {
	if int(t) < len(tabNames) {
		return tabNames[t]
	}
	return "?"
}

// Field positions in each form
const (
	setResolver = iota
	setUpstream
	setPassword
)

const (
	addName = iota
	addURL
	addMode
	addInterval
	addResolver
)

const (
	accName = iota
	accUsername
	accPassword
	accInterval
)

const (
	convURL = iota
	convMode
)

const (
	rowName = iota
	rowURL
	rowInterval
	rowResolver
)

// Timings
const (
	settingsStatusDelay = 1500 * time.Millisecond
	statusDelay         = 3 * time.Second
	errorStatusDelay    = 5 * time.Second
)

// Copier puts text on the operator's clipboard
type Copier interface {
	Copy(text string) (clipboard.Method, error)
}

// Launcher opens a stream URL in an external player
type Launcher interface {
	Launch(url string) error
}

// Options holds local settings the model needs
type Options struct {
	DownloadDir  string
	HistoryLimit int
}

type pendingDelete struct {
	scope console.Scope
	id    string
	name  string
}

// Model is the main Bubble Tea model for the application.
// Update is the only writer of Core; commands only return messages.
type Model struct {
	// Application state
	State ApplicationState
	Ready bool
	Tab   Tab

	// Services
	Session  *service.Session
	Core     *console.State
	Copier   Copier
	Launcher Launcher
	opts     Options

	// UI Components
	PlaylistList components.List
	XtreamList   components.List
	HistoryList  components.List
	SettingsForm components.Form
	AddForm      components.Form
	AccountForm  components.Form
	ConvertForm  components.Form
	RowForm      components.Form
	Pickers      [4]components.PickerView
	InputModal   components.InputModal

	// pickerFocus is the focused category picker, -1 while the account text fields have it
	pickerFocus int

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg      string
	StatusIsErr    bool
	SettingsStatus string
	AlertTitle     string
	Alert          string

	// bumped on every change so an older delayed clear is ignored
	statusSeq   int
	settingsSeq int

	pending   pendingDelete
	rowEditID string
	promptID  string
	expanded  map[string]bool
	busy      map[string]bool
	booting   bool

	// Data
	Converted *service.ConvertResult
	History   []domain.JournalEntry
}

// NewModel creates a new application model
func NewModel(session *service.Session, core *console.State, copier Copier, launcher Launcher, opts Options) Model {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 100
	}
	interval := strconv.Itoa(domain.DefaultRefreshHours)

	addInt := components.TextField("Every (h)", "12")
	addInt.Default = interval
	accInt := components.TextField("Every (h)", "12")
	accInt.Default = interval

	m := Model{
		State:        StateBrowsing,
		Tab:          TabPlaylists,
		Session:      session,
		Core:         core,
		Copier:       copier,
		Launcher:     launcher,
		opts:         opts,
		PlaylistList: components.NewList("Playlists", "No playlists yet. Press n to add one."),
		XtreamList:   components.NewList("Xtream accounts", "No accounts yet. Press n to create one."),
		HistoryList:  components.NewList("History", "No operator actions recorded."),
		SettingsForm: components.NewForm(
			components.TextField("Resolver", "http://host:port (empty = this server)"),
			components.TextField("MediaFlow", "http://mediaflow:8888"),
			components.TextField("Password", "MediaFlow API password"),
		),
		AddForm: components.NewForm(
			components.TextField("Name", "playlist name"),
			components.TextField("URL", "http://source/playlist.m3u"),
			components.ChoiceField("Mode", string(domain.ModeTV), string(domain.ModeVideo)),
			addInt,
			components.TextField("Resolver", "override (optional)"),
		),
		AccountForm: components.NewForm(
			components.TextField("Name", "account name"),
			components.TextField("Username", "username"),
			components.TextField("Password", "password"),
			accInt,
		),
		ConvertForm: components.NewForm(
			components.TextField("URL", "http://source/playlist.m3u"),
			components.ChoiceField("Mode", string(domain.ModeTV), string(domain.ModeVideo)),
		),
		RowForm: components.NewForm(
			components.TextField("Name", ""),
			components.TextField("URL", ""),
			components.TextField("Every (h)", "12"),
			components.TextField("Resolver", "empty = global resolver"),
		),
		InputModal:  components.NewInputModal(),
		pickerFocus: -1,
		expanded:    make(map[string]bool),
		busy:        make(map[string]bool),
		booting:     true,
	}
	m.PlaylistList.SetFocused(true)
	m.XtreamList.SetFocused(true)
	m.HistoryList.SetFocused(true)
	return m
}

// Init starts the boot chain: settings, then playlists, then accounts
func (m Model) Init() tea.Cmd {
	return LoadSettingsCmd(m.Session.Settings)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case SettingsLoadedMsg:
		if msg.Err == nil {
			m.Core.ApplySettings(msg.Settings)
			m.fillSettingsForm()
		}
		if m.booting {
			// a boot failure is only logged; the form stays empty
			return m, LoadPlaylistsCmd(m.Session.Playlists)
		}
		if msg.Err != nil {
			cmd := m.setStatus("loading settings: "+msg.Err.Error(), true)
			return m, cmd
		}
		return m, nil

	case PlaylistsLoadedMsg:
		var cmds []tea.Cmd
		if msg.Err != nil {
			cmds = append(cmds, m.setStatus(ErrMsg{Err: msg.Err, Context: "loading playlists"}.Error(), true))
		} else {
			m.Core.ApplyPlaylists(msg.Playlists)
			m.refreshRows()
		}
		if m.booting {
			cmds = append(cmds, LoadXtreamsCmd(m.Session.Xtreams))
		}
		return m, tea.Batch(cmds...)

	case XtreamsLoadedMsg:
		m.booting = false
		if msg.Err != nil {
			cmd := m.setStatus(ErrMsg{Err: msg.Err, Context: "loading accounts"}.Error(), true)
			return m, cmd
		}
		before := m.Core.Editor().Target()
		m.Core.ApplyXtreams(msg.Xtreams, false)
		if m.Core.Editor().Target() != before {
			m.pushAccountForm()
		}
		m.refreshRows()
		return m, nil

	case SettingsSavedMsg:
		delete(m.busy, service.ActionSettingsSave)
		if msg.Err != nil {
			m.SettingsStatus = "error"
			cmd := m.setStatus("saving settings: "+msg.Err.Error(), true)
			clearCmd := m.clearSettingsStatusLater()
			return m, tea.Batch(cmd, clearCmd)
		}
		m.Core.ApplySettings(msg.Settings)
		m.fillSettingsForm()
		m.SettingsStatus = "ok"
		clearCmd := m.clearSettingsStatusLater()
		return m, tea.Batch(clearCmd, m.loadHistory())

	case ClearSettingsStatusMsg:
		if msg.Seq == m.settingsSeq {
			m.SettingsStatus = ""
		}
		return m, nil

	case MutationDoneMsg:
		return m.handleMutationDone(msg)

	case CopiedMsg:
		if msg.Err != nil {
			cmd := m.setStatus(fmt.Sprintf("Clipboard unavailable, copy manually: %s", msg.Value), true)
			return m, cmd
		}
		cmd := m.setStatus(fmt.Sprintf("Copied %s via %s: %s", msg.What, msg.Method, msg.Value), false)
		return m, cmd

	case PlayerLaunchedMsg:
		if msg.Err != nil {
			cmd := m.setStatus(ErrMsg{Err: msg.Err, Context: "opening player"}.Error(), true)
			return m, cmd
		}
		cmd := m.setStatus("Opened "+msg.URL, false)
		return m, cmd

	case ConvertDoneMsg:
		delete(m.busy, "convert")
		if msg.Err != nil {
			m.showAlert("Conversion failed", msg.Err)
			return m, nil
		}
		m.Converted = msg.Result
		cmd := m.setStatus("Saved "+msg.Result.Path, false)
		return m, cmd

	case HistoryLoadedMsg:
		if msg.Err != nil {
			cmd := m.setStatus(ErrMsg{Err: msg.Err, Context: "loading history"}.Error(), true)
			return m, cmd
		}
		m.History = msg.Entries
		m.refreshRows()
		return m, nil

	case ErrMsg:
		cmd := m.setStatus(msg.Error(), true)
		return m, cmd

	case StatusMsg:
		cmd := m.setStatus(msg.Message, msg.IsError)
		return m, cmd

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	return m, nil
}

// handleMutationDone applies the reload that follows a write, or surfaces its error
func (m Model) handleMutationDone(msg MutationDoneMsg) (tea.Model, tea.Cmd) {
	delete(m.busy, busyKey(msg.Action, msg.Target))

	// a non-nil reload means the write landed, even if msg.Err reports a failed fetch
	if msg.Reload != nil {
		m.Core.ApplyReload(msg.Reload)
		if msg.Reload.Scope == console.ScopeXtreams {
			m.pushAccountForm()
			m.blurAccountForm()
		}
		if msg.Action == service.ActionPlaylistCreate {
			m.AddForm.SetValue(addName, "")
			m.AddForm.SetValue(addURL, "")
		}
		m.refreshRows()
	}

	if msg.Err != nil {
		title := "Request failed"
		if domain.IsValidation(msg.Err) {
			title = "Missing fields"
		}
		m.showAlert(title, msg.Err)
		return m, m.loadHistory()
	}

	var notice string
	switch msg.Action {
	case service.ActionPlaylistCreate:
		notice = "Playlist created"
	case service.ActionPlaylistSave:
		notice = "Playlist saved"
	case service.ActionPlaylistRefresh:
		notice = "Playlist refresh requested"
	case service.ActionPlaylistDelete:
		notice = "Playlist deleted"
	case service.ActionXtreamCreate:
		notice = "Account created"
	case service.ActionXtreamUpdate:
		notice = "Account updated"
	case service.ActionXtreamRefresh:
		notice = "Account refresh requested"
	case service.ActionXtreamDelete:
		notice = "Account deleted"
	}
	cmd := m.setStatus(notice, false)
	return m, tea.Batch(cmd, m.loadHistory())
}

func busyKey(action, target string) string {
	switch action {
	case service.ActionXtreamCreate, service.ActionXtreamUpdate:
		return "xtream.save"
	}
	return action + ":" + target
}

// startBusy marks key as outstanding; it reports false if it already was
func (m *Model) startBusy(key string) bool {
	if m.busy[key] {
		return false
	}
	m.busy[key] = true
	return true
}

// IsBusy reports whether a request for key is outstanding
func (m Model) IsBusy(key string) bool {
	return m.busy[key]
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	if isErr {
		return ClearStatusCmd(errorStatusDelay, m.statusSeq)
	}
	return ClearStatusCmd(statusDelay, m.statusSeq)
}

func (m *Model) clearSettingsStatusLater() tea.Cmd {
	m.settingsSeq++
	return ClearSettingsStatusCmd(settingsStatusDelay, m.settingsSeq)
}

func (m *Model) showAlert(title string, err error) {
	m.State = StateAlert
	m.AlertTitle = title
	m.Alert = err.Error()
}

func (m Model) loadHistory() tea.Cmd {
	return LoadHistoryCmd(m.Session.Pipeline, m.opts.HistoryLimit)
}

// refreshRows re-derives every list's titles from the current collections
func (m *Model) refreshRows() {
	playlists := m.Core.Playlists()
	titles := make([]string, len(playlists))
	for i, p := range playlists {
		titles[i] = p.Name
	}
	m.PlaylistList.SetTitles(titles)

	accounts := m.Core.Xtreams()
	titles = make([]string, len(accounts))
	for i, x := range accounts {
		titles[i] = x.Name + " " + x.Username
	}
	m.XtreamList.SetTitles(titles)

	titles = make([]string, len(m.History))
	for i, e := range m.History {
		titles[i] = e.Action + " " + e.Target
	}
	m.HistoryList.SetTitles(titles)
}

func (m *Model) selectedPlaylist() *domain.Playlist {
	idx := m.PlaylistList.Selected()
	playlists := m.Core.Playlists()
	if idx < 0 || idx >= len(playlists) {
		return nil
	}
	return playlists[idx]
}

func (m *Model) selectedXtream() *domain.XtreamAccount {
	idx := m.XtreamList.Selected()
	accounts := m.Core.Xtreams()
	if idx < 0 || idx >= len(accounts) {
		return nil
	}
	return accounts[idx]
}

func (m *Model) fillSettingsForm() {
	s := m.Core.Settings()
	m.SettingsForm.SetValue(setResolver, s.ResolverBaseURL)
	m.SettingsForm.SetValue(setUpstream, s.UpstreamURL)
	m.SettingsForm.SetValue(setPassword, s.APIPassword)
}

// pushAccountForm copies the editor's fields into the form inputs
func (m *Model) pushAccountForm() {
	f := m.Core.Editor().Form
	m.AccountForm.SetValue(accName, f.Name)
	m.AccountForm.SetValue(accUsername, f.Username)
	m.AccountForm.SetValue(accPassword, f.Password)
	m.AccountForm.SetValue(accInterval, f.Interval)
	for i := range m.Pickers {
		m.Pickers[i].Reset()
	}
}

// pullAccountForm copies the form inputs into the editor
func (m *Model) pullAccountForm() {
	ed := m.Core.Editor()
	ed.Form.Name = m.AccountForm.Value(accName)
	ed.Form.Username = m.AccountForm.Value(accUsername)
	ed.Form.Password = m.AccountForm.Value(accPassword)
	ed.Form.Interval = m.AccountForm.Value(accInterval)
}

func (m *Model) blurAccountForm() {
	m.AccountForm.Blur()
	m.pickerFocus = -1
}

// AccountFormFocused reports whether keys go to the account form or its pickers
func (m Model) AccountFormFocused() bool {
	return m.AccountForm.Focused() || m.pickerFocus >= 0
}

func (m *Model) updateLayout() {
	body := m.Height - chromeHeight
	if body < 6 {
		body = 6
	}
	listWidth := m.Width

	playlistHeight := body - (m.AddForm.Len() + formChrome)
	m.PlaylistList.SetSize(listWidth, max(playlistHeight, minListHeight))

	xtreamHeight := body - (m.AccountForm.Len() + pickerHeight + formChrome + 1)
	m.XtreamList.SetSize(listWidth, max(xtreamHeight, minListHeight))

	m.HistoryList.SetSize(listWidth, body)
}
