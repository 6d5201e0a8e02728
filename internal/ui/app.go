package ui

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/emphub/internal/dashboard"
	"github.com/five82/emphub/internal/form"
	"github.com/five82/emphub/internal/prefs"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Dashboard *dashboard.Dashboard
	ThemeName string
	PrefsPath string
	// Logout clears the persisted session. The program exits after it
	// succeeds.
	Logout func() error
	// Now is used for overview statistics; nil means time.Now.
	Now func() time.Time
}

// Result reports how the program ended.
type Result struct {
	LoggedOut bool
	Tab       dashboard.Tab
	Theme     string
}

type flashKind int

const (
	flashInfo flashKind = iota
	flashSuccess
	flashError
)

type flash struct {
	text string
	kind flashKind
	id   int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	dash      *dashboard.Dashboard
	prefsPath string
	logout    func() error
	now       func() time.Time
	keys      keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	// Search
	searching bool
	search    textinput.Model

	// Active form inputs; nil when no form is open on the active tab
	form       *formInputs
	submitting bool
	loading    bool

	selectedRow int

	flash    flash
	flashSeq int

	loggedOut bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "type, status, project or role"
	search.CharLimit = 64
	search.SetValue(opts.Dashboard.Query())

	return Model{
		ctx:       ctx,
		dash:      opts.Dashboard,
		prefsPath: prefsPath,
		logout:    opts.Logout,
		now:       now,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.ThemeName),
		search:    search,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return loadStatusCmd(m.dash)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.Width = max(msg.Width/3, 20)
		if m.form != nil {
			m.form.setWidth(m.inputWidth())
		}
		return m, nil

	case loadStatusMsg:
		if msg.text != "" {
			cmd := m.setFlash(msg.text, flashError)
			return m, cmd
		}
		return m, nil

	case submitResultMsg:
		return m.handleSubmitResult(msg)

	case reloadMsg:
		m.loading = false
		m.clampSelection()
		if status := m.dash.Status(msg.tab); status != "" {
			cmd := m.setFlash(status, flashError)
			return m, cmd
		}
		cmd := m.setFlash(msg.tab.String()+" refreshed", flashInfo)
		return m, cmd

	case logoutMsg:
		if msg.err != nil {
			log.Printf("logout failed: %v", msg.err)
			cmd := m.setFlash("Logout failed", flashError)
			return m, cmd
		}
		m.loggedOut = true
		return m, tea.Quit

	case flashExpiredMsg:
		if msg.id == m.flash.id {
			m.flash = flash{}
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) activeTab() dashboard.Tab {
	return m.dash.Tabs.Active()
}

// handleKey routes input to help, search, the open form or the global
// bindings, in that order.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	if m.form != nil {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.dash.Tabs.Next()
		m.selectedRow = 0
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.dash.Tabs.Prev()
		m.selectedRow = 0
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Cancel):
		if m.dash.Query() != "" {
			m.search.SetValue("")
			m.dash.SetQuery("")
			m.selectedRow = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleForm):
		return m.openForm()

	case key.Matches(msg, m.keys.Reload):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, reloadCmd(m.ctx, m.dash, m.activeTab())

	case key.Matches(msg, m.keys.Logout):
		if m.logout == nil {
			return m, nil
		}
		return m, logoutCmd(m.logout)
	}

	for i, binding := range m.keys.Tabs {
		if key.Matches(msg, binding) {
			m.dash.Tabs.Select(dashboard.AllTabs[i])
			m.selectedRow = 0
			return m, nil
		}
	}

	return m.handleListKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.dash.SetQuery("")
		m.selectedRow = 0
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.dash.SetQuery(m.search.Value())
	m.selectedRow = 0
	return m, cmd
}

// handleListKey moves the selection in table tabs.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.rowCount()
	if count == 0 {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	}
	return m, nil
}

func (m Model) rowCount() int {
	switch m.activeTab() {
	case dashboard.Leaves:
		return len(m.dash.FilteredLeaves())
	case dashboard.Timesheets:
		return len(m.dash.FilteredTimesheets())
	case dashboard.Allocations:
		return len(m.dash.FilteredAllocations())
	}
	return 0
}

func (m *Model) clampSelection() {
	count := m.rowCount()
	if m.selectedRow >= count {
		m.selectedRow = max(count-1, 0)
	}
}

// setFlash shows text in the status line and schedules its removal.
func (m *Model) setFlash(text string, kind flashKind) tea.Cmd {
	m.flashSeq++
	m.flash = flash{text: text, kind: kind, id: m.flashSeq}
	id := m.flashSeq
	return tea.Tick(FlashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{id: id}
	})
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, LastTab: m.activeTab().String()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

// Result returns the outcome of the session.
func (m Model) Result() Result {
	return Result{LoggedOut: m.loggedOut, Tab: m.activeTab(), Theme: m.theme.Name}
}

// Messages

type submitResultMsg struct {
	tab     dashboard.Tab
	message string
	err     error
}

type reloadMsg struct {
	tab dashboard.Tab
}

type logoutMsg struct {
	err error
}

type loadStatusMsg struct {
	text string
}

type flashExpiredMsg struct {
	id int
}

// Commands

func submitCmd(ctx context.Context, dash *dashboard.Dashboard, tab dashboard.Tab) tea.Cmd {
	return func() tea.Msg {
		message, err := dash.Submit(ctx, tab)
		return submitResultMsg{tab: tab, message: message, err: err}
	}
}

func reloadCmd(ctx context.Context, dash *dashboard.Dashboard, tab dashboard.Tab) tea.Cmd {
	return func() tea.Msg {
		dash.Reload(ctx, tab)
		return reloadMsg{tab: tab}
	}
}

func logoutCmd(logout func() error) tea.Cmd {
	return func() tea.Msg {
		return logoutMsg{err: logout()}
	}
}

// loadStatusCmd reports failures from the initial load.
func loadStatusCmd(dash *dashboard.Dashboard) tea.Cmd {
	return func() tea.Msg {
		seen := make(map[string]bool)
		var parts []string
		for _, tab := range dashboard.AllTabs {
			if status := dash.Status(tab); status != "" && !seen[status] {
				seen[status] = true
				parts = append(parts, status)
			}
		}
		return loadStatusMsg{text: strings.Join(parts, "; ")}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) (Result, error) {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return Result{}, nil
	}
	return m.Result(), nil
}

// formState reports the lifecycle state of the form on tab, if any.
func (m Model) formState(tab dashboard.Tab) (form.State, bool) {
	f, ok := m.dash.FormFor(tab)
	if !ok {
		return form.Closed, false
	}
	return f.State(), true
}
