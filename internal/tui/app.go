// internal/tui/app.go
//
// This is the main TUI for propdesk. It uses bubbletea, which follows
// The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"propdesk/internal/api"
	"propdesk/internal/config"
	"propdesk/internal/crm"
	"propdesk/internal/logbook"
)

// appState represents which "screen" we're on.
type appState int

const (
	stateRecords          appState = iota // The three record tabs
	stateDepartmentSelect                 // Department switcher
)

const (
	requestTimeout = 15 * time.Second
	logPanelLines  = 6
)

// App is the main application model. In bubbletea, this holds ALL
// your state.
type App struct {
	state   appState
	config  *config.Config
	client  *api.Client
	logbook *logbook.Logbook
	keys    KeyMap

	tab      tabKind
	deals    *recordsView[crm.Deal]
	bookings *recordsView[crm.Booking]
	units    *recordsView[crm.Unit]

	departmentMenu list.Model

	statusMsg string
	width     int
	height    int
}

// departmentItem implements list.Item for the department switcher.
type departmentItem struct {
	name string
}

func (i departmentItem) Title() string       { return strings.ToUpper(i.name[:1]) + i.name[1:] }
func (i departmentItem) Description() string { return "Scope lists to " + i.name }
func (i departmentItem) FilterValue() string { return i.name }

// NewApp creates a new App instance wired to its backend client and
// session logbook.
func NewApp(cfg *config.Config, client *api.Client, book *logbook.Logbook) *App {
	app := &App{
		state:   stateRecords,
		config:  cfg,
		client:  client,
		logbook: book,
		keys:    DefaultKeyMap,
		tab:     tabDeals,
	}
	app.deals = newDealsView(app)
	app.bookings = newBookingsView(app)
	app.units = newUnitsView(app)

	menu := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "Select Department"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	app.departmentMenu = menu
	app.refreshDepartmentMenu()

	app.logInfo("Session opened · department %s", cfg.Department())
	return app
}

func (a *App) refreshDepartmentMenu() {
	departments := a.config.Departments()
	items := make([]list.Item, 0, len(departments))
	selected := 0
	for i, name := range departments {
		items = append(items, departmentItem{name: name})
		if name == a.config.Department() {
			selected = i
		}
	}
	a.departmentMenu.SetItems(items)
	if len(items) > 0 {
		a.departmentMenu.Select(selected)
	}
}

func (a *App) activeView() recordTab {
	return a.viewFor(a.tab)
}

func (a *App) viewFor(tab tabKind) recordTab {
	switch tab {
	case tabBookings:
		return a.bookings
	case tabInventory:
		return a.units
	}
	return a.deals
}

func (a *App) theme() Theme {
	return themeFor(a.config.Department())
}

func (a *App) setStatus(message string) {
	a.statusMsg = message
}

// handOff records a communication deep link. A terminal client cannot
// raise the device intent itself, so the link is logged and surfaced
// for the host integration to pick up.
func (a *App) handOff(action, title, link string) {
	a.setStatus(fmt.Sprintf("%s → %s", strings.ToUpper(action[:1])+action[1:], link))
	a.logInfo("Handoff · %s for %s · %s", action, title, link)
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.activeView().Init()
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.departmentMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-10))
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Async results route to the tab that requested them, even when
	// the user has moved on.
	if scoped, ok := msg.(tabScopedMsg); ok {
		return a, a.viewFor(scoped.tabID()).Update(msg)
	}
	return a, a.activeView().Update(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.state == stateDepartmentSelect {
		return a.handleDepartmentKey(msg)
	}

	view := a.activeView()
	if view.CapturesText() {
		return a, view.Update(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.TabDeals):
		return a, a.switchTab(tabDeals)
	case key.Matches(msg, a.keys.TabBookings):
		return a, a.switchTab(tabBookings)
	case key.Matches(msg, a.keys.TabInventory):
		return a, a.switchTab(tabInventory)
	case key.Matches(msg, a.keys.TabCycle):
		return a, a.switchTab((a.tab + 1) % 3)
	case key.Matches(msg, a.keys.Departments):
		a.state = stateDepartmentSelect
		a.refreshDepartmentMenu()
		a.setStatus("Select a department")
		return a, nil
	}
	return a, view.Update(msg)
}

func (a *App) handleDepartmentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.state = stateRecords
		a.setStatus("")
		return a, nil
	case key.Matches(msg, a.keys.Confirm):
		item, ok := a.departmentMenu.SelectedItem().(departmentItem)
		if !ok {
			return a, nil
		}
		return a.selectDepartment(item.name)
	}
	var cmd tea.Cmd
	a.departmentMenu, cmd = a.departmentMenu.Update(msg)
	return a, cmd
}

func (a *App) selectDepartment(name string) (tea.Model, tea.Cmd) {
	if name == a.config.Department() {
		a.state = stateRecords
		return a, nil
	}
	if err := a.config.SetDepartment(name); err != nil {
		a.setStatus(fmt.Sprintf("Department switch failed: %v", err))
		a.logError("Department switch to %s failed: %v", name, err)
		return a, nil
	}
	a.state = stateRecords
	a.setStatus("Department: " + name)
	a.logInfo("Department switched to %s", name)
	// Every tab reloads under the new scope.
	return a, tea.Batch(
		a.deals.Refetch(),
		a.bookings.Refetch(),
		a.units.Refetch(),
	)
}

// switchTab activates a record screen, fetching its first page if it
// has never loaded.
func (a *App) switchTab(tab tabKind) tea.Cmd {
	if a.tab == tab {
		return nil
	}
	a.tab = tab
	a.setStatus("")
	return a.viewFor(tab).Init()
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	theme := a.theme()

	var content string
	switch a.state {
	case stateDepartmentSelect:
		content = a.renderDepartmentSelection(theme)
	default:
		content = a.activeView().View(width - 6)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(max(40, width-2)).
		Render(content)

	sections := []string{a.renderHeader(theme), a.renderTabBar(theme), box}
	if logPanel := a.renderLogPanel(theme); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, a.renderFooter(theme))
	return strings.Join(sections, "\n")
}

func (a *App) renderHeader(theme Theme) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Accent).
		Render("⌂ PROPDESK")
	department := lipgloss.NewStyle().
		Foreground(theme.Dim).
		Render(" · " + a.config.Department())
	return title + department
}

func (a *App) renderTabBar(theme Theme) string {
	active := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent)
	inactive := lipgloss.NewStyle().Foreground(theme.Dim)

	var parts []string
	for _, tab := range []tabKind{tabDeals, tabBookings, tabInventory} {
		label := fmt.Sprintf("%d·%s (%s)", int(tab)+1, tab, a.viewFor(tab).CountLabel())
		if tab == a.tab && a.state == stateRecords {
			parts = append(parts, active.Render("["+label+"]"))
		} else {
			parts = append(parts, inactive.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (a *App) renderDepartmentSelection(theme Theme) string {
	view := a.departmentMenu.View()
	if strings.TrimSpace(view) == "" {
		view = "No departments configured"
	}
	hint := lipgloss.NewStyle().
		Foreground(theme.Dim).
		MarginTop(1).
		Render("Enter → switch department    Esc → cancel")
	return lipgloss.JoinVertical(lipgloss.Left, view, hint)
}

func (a *App) renderLogPanel(theme Theme) string {
	if a.logbook == nil {
		return ""
	}
	entries := a.logbook.Recent(logPanelLines)
	if len(entries) == 0 {
		return ""
	}
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.String())
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Accent).
		Render("ACTIVITY")
	body := lipgloss.NewStyle().
		Foreground(theme.Dim).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(head + "\n" + body)
}

func (a *App) renderFooter(theme Theme) string {
	hints := "1/2/3=screens  /=filter  r=refresh  Enter=actions  D=department  q=quit"
	footer := hints
	if a.statusMsg != "" {
		footer = a.statusMsg + "    " + hints
	}
	return lipgloss.NewStyle().
		Foreground(theme.Dim).
		MarginTop(1).
		Render(footer)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
