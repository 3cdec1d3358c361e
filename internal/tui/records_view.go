package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"propdesk/internal/actionhub"
	"propdesk/internal/api"
	"propdesk/internal/contact"
	"propdesk/internal/crm"
	"propdesk/internal/records"
)

// tabKind identifies one of the three record screens.
type tabKind int

const (
	tabDeals tabKind = iota
	tabBookings
	tabInventory
)

func (t tabKind) String() string {
	switch t {
	case tabDeals:
		return "Deals"
	case tabBookings:
		return "Bookings"
	case tabInventory:
		return "Inventory"
	}
	return "Records"
}

// tabScopedMsg routes async results back to the view that asked for
// them, even when the user has switched tabs meanwhile.
type tabScopedMsg interface {
	tabID() tabKind
}

type recordsLoadedMsg[T crm.Record] struct {
	tab        tabKind
	page       int
	appendMode bool
	records    []T
	err        error
}

func (m recordsLoadedMsg[T]) tabID() tabKind { return m.tab }

type optionsLoadedMsg struct {
	tab    tabKind
	panel  actionhub.Panel
	stages []crm.Lookup
	users  []crm.User
	err    error
}

func (m optionsLoadedMsg) tabID() tabKind { return m.tab }

type mutationDoneMsg struct {
	tab    tabKind
	op     records.Op
	id     string
	detail string
	stage  string
	err    error
}

func (m mutationDoneMsg) tabID() tabKind { return m.tab }

// recordTab is the surface the app shell drives per screen.
type recordTab interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width int) string
	Refetch() tea.Cmd
	CapturesText() bool
	CountLabel() string
}

// recordsView is one record screen: a paginated collection, the
// search filter, and the per-record action hub. The three tabs share
// this shape and differ only in their wire calls and row rendering.
type recordsView[T crm.Record] struct {
	app *App
	tab tabKind

	// stageField is the payload key for enum changes ("stage" on
	// deals, "status" on bookings and inventory). lookupType selects
	// which lookup rows populate the picker.
	stageField string
	lookupType string

	fetch      func(ctx context.Context, opts api.ListOptions) ([]T, error)
	update     func(ctx context.Context, id string, fields map[string]any) error
	applyStage func(record T, value string) T
	rowLine    func(record T) string
	detailLine func(record T) string

	// Deal-only extensions; nil on the other tabs.
	mutator   *records.DealMutator
	dormantOf func(record T) bool
	tagsOf    func(record T) []string

	ctl     *records.Controller[T]
	cursor  int
	loading bool

	loadErr      error
	failedPage   int
	failedAppend bool

	filterInput textinput.Model
	filtering   bool

	hub      actionhub.Hub
	picker   *dropdown
	tagInput textinput.Model
	tagging  bool

	stages []crm.Lookup
	users  []crm.User
}

const listWindowRows = 12

func newListInput(placeholder string) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 64
	input.Width = 28
	return input
}

func newDealsView(app *App) *recordsView[crm.Deal] {
	ctl := records.NewController[crm.Deal](app.config.PageSize())
	view := &recordsView[crm.Deal]{
		app:        app,
		tab:        tabDeals,
		stageField: "stage",
		lookupType: "deal_stage",
		fetch:      app.client.ListDeals,
		update:     app.client.UpdateDeal,
		applyStage: func(deal crm.Deal, value string) crm.Deal {
			deal.Stage = crm.Lookup{Value: value}
			return deal
		},
		rowLine: func(deal crm.Deal) string {
			line := deal.DisplayTitle()
			if deal.Stage.Value != "" {
				line += "  [" + deal.Stage.Value + "]"
			}
			if deal.Dormant {
				line += "  (dormant)"
			}
			return line
		},
		detailLine: func(deal crm.Deal) string {
			parts := []string{}
			if deal.Amount != 0 {
				parts = append(parts, crm.FormatAmount(deal.Amount))
			}
			if deal.AssignedTo.Value != "" {
				parts = append(parts, "assigned "+deal.AssignedTo.Value)
			}
			if deal.Project.Value != "" {
				parts = append(parts, deal.Project.Value)
			}
			if len(deal.Tags) > 0 {
				parts = append(parts, "#"+strings.Join(deal.Tags, " #"))
			}
			return strings.Join(parts, " · ")
		},
		dormantOf: func(deal crm.Deal) bool { return deal.Dormant },
		tagsOf:    func(deal crm.Deal) []string { return deal.Tags },
		ctl:       ctl,
	}
	view.mutator = records.NewDealMutator(app.client, ctl)
	view.filterInput = newListInput("filter deals")
	view.tagInput = newListInput("new tag")
	return view
}

func newBookingsView(app *App) *recordsView[crm.Booking] {
	view := &recordsView[crm.Booking]{
		app:        app,
		tab:        tabBookings,
		stageField: "status",
		lookupType: "booking_status",
		fetch:      app.client.ListBookings,
		update:     app.client.UpdateBooking,
		applyStage: func(booking crm.Booking, value string) crm.Booking {
			booking.Status = crm.Lookup{Value: value}
			return booking
		},
		rowLine: func(booking crm.Booking) string {
			line := booking.DisplayTitle()
			if booking.Status.Value != "" {
				line += "  [" + booking.Status.Value + "]"
			}
			return line
		},
		detailLine: func(booking crm.Booking) string {
			parts := []string{}
			if booking.Amount != 0 {
				parts = append(parts, crm.FormatAmount(booking.Amount))
			}
			if booking.Customer.Name != "" {
				parts = append(parts, booking.Customer.Name)
			}
			if booking.BookedOn != "" {
				parts = append(parts, "booked "+booking.BookedOn)
			}
			return strings.Join(parts, " · ")
		},
		ctl: records.NewController[crm.Booking](app.config.PageSize()),
	}
	view.filterInput = newListInput("filter bookings")
	return view
}

func newUnitsView(app *App) *recordsView[crm.Unit] {
	view := &recordsView[crm.Unit]{
		app:        app,
		tab:        tabInventory,
		stageField: "status",
		lookupType: "unit_status",
		fetch:      app.client.ListUnits,
		update:     app.client.UpdateUnit,
		applyStage: func(unit crm.Unit, value string) crm.Unit {
			unit.Status = crm.Lookup{Value: value}
			return unit
		},
		rowLine: func(unit crm.Unit) string {
			line := unit.DisplayTitle()
			if unit.Status.Value != "" {
				line += "  [" + unit.Status.Value + "]"
			}
			return line
		},
		detailLine: func(unit crm.Unit) string {
			parts := []string{}
			if unit.Category.Value != "" {
				parts = append(parts, unit.Category.Value)
			}
			if unit.Size != "" {
				parts = append(parts, unit.Size)
			}
			if unit.Price != 0 {
				parts = append(parts, crm.FormatAmount(unit.Price))
			}
			if unit.Facing.Value != "" {
				parts = append(parts, unit.Facing.Value+" facing")
			}
			return strings.Join(parts, " · ")
		},
		ctl: records.NewController[crm.Unit](app.config.PageSize()),
	}
	view.filterInput = newListInput("filter inventory")
	return view
}

func (v *recordsView[T]) Init() tea.Cmd {
	if v.ctl.Len() > 0 || v.loading {
		return nil
	}
	return v.fetchCmd(1, false)
}

// Refetch reloads the first page as a replacement, used after
// department switches and post-mutation re-syncs.
func (v *recordsView[T]) Refetch() tea.Cmd {
	return v.fetchCmd(1, false)
}

func (v *recordsView[T]) CapturesText() bool {
	return v.filtering || v.tagging
}

func (v *recordsView[T]) CountLabel() string {
	suffix := ""
	if v.ctl.HasMore() {
		suffix = "+"
	}
	return fmt.Sprintf("%d%s", v.ctl.Len(), suffix)
}

func (v *recordsView[T]) fetchCmd(page int, appendMode bool) tea.Cmd {
	v.loading = true
	opts := api.ListOptions{
		Page:       page,
		Limit:      v.app.config.PageSize(),
		Department: v.app.config.Department(),
	}
	fetch := v.fetch
	tab := v.tab
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		recs, err := fetch(ctx, opts)
		return recordsLoadedMsg[T]{tab: tab, page: page, appendMode: appendMode, records: recs, err: err}
	}
}

func (v *recordsView[T]) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case recordsLoadedMsg[T]:
		return v.handleLoaded(m)
	case optionsLoadedMsg:
		return v.handleOptionsLoaded(m)
	case mutationDoneMsg:
		return v.handleMutationDone(m)
	case tea.KeyMsg:
		return v.handleKey(m)
	}
	return nil
}

func (v *recordsView[T]) handleLoaded(m recordsLoadedMsg[T]) tea.Cmd {
	v.loading = false
	if m.err != nil {
		// A failed fetch never touches the pages already loaded.
		v.loadErr = m.err
		v.failedPage = m.page
		v.failedAppend = m.appendMode
		v.app.logError("%s · fetch page %d failed: %v", v.tab, m.page, m.err)
		return nil
	}
	v.loadErr = nil
	v.ctl.Apply(m.page, m.records, m.appendMode)
	if !m.appendMode {
		v.cursor = 0
	}
	v.clampCursor()
	if rec, ok := v.ctl.Get(v.hubRecordID()); ok {
		v.hub.RefreshSelection(rec)
	}
	v.app.logInfo("%s · page %d · %d records", v.tab, m.page, len(m.records))
	return nil
}

func (v *recordsView[T]) handleOptionsLoaded(m optionsLoadedMsg) tea.Cmd {
	if m.err != nil {
		v.app.setStatus(fmt.Sprintf("Options unavailable: %v", m.err))
		v.app.logError("%s · options fetch failed: %v", v.tab, m.err)
		return nil
	}
	if len(m.stages) > 0 {
		v.stages = m.stages
	}
	if len(m.users) > 0 {
		v.users = m.users
	}
	// Show the picker only if the user still has that panel open.
	if v.hub.ActivePanel() == m.panel {
		v.openPicker(m.panel)
	}
	return nil
}

func (v *recordsView[T]) handleMutationDone(m mutationDoneMsg) tea.Cmd {
	if m.err != nil {
		v.app.setStatus(fmt.Sprintf("Update failed: %v", m.err))
		v.app.logError("%s · %s on %s failed: %v", v.tab, opName(m.op), m.id, m.err)
		return nil
	}
	// Non-deal stage changes patch here; the deal mutator already
	// patched the collection itself.
	if m.op == records.OpStage && v.mutator == nil {
		if rec, ok := v.ctl.Get(m.id); ok {
			v.ctl.PatchByID(m.id, v.applyStage(rec, m.stage))
		}
	}
	v.app.setStatus(fmt.Sprintf("%s updated · %s", v.tab, m.detail))
	v.app.logInfo("%s · %s on %s · %s", v.tab, opName(m.op), m.id, m.detail)

	if m.op.AutoClosesHub() {
		v.hub.Close()
		v.picker = nil
		v.tagging = false
	} else if rec, ok := v.ctl.Get(m.id); ok {
		v.hub.RefreshSelection(rec)
	}
	if m.op.TriggersRefetch() {
		return v.fetchCmd(1, false)
	}
	return nil
}

func opName(op records.Op) string {
	switch op {
	case records.OpStage:
		return "stage change"
	case records.OpReassign:
		return "reassign"
	case records.OpDormant:
		return "dormant toggle"
	case records.OpAddTag:
		return "tag add"
	case records.OpRemoveTag:
		return "tag remove"
	}
	return "mutation"
}

func (v *recordsView[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	keys := v.app.keys

	// The error alert blocks everything until retried or dismissed.
	if v.loadErr != nil {
		switch {
		case key.Matches(msg, keys.Confirm):
			return v.fetchCmd(v.failedPage, v.failedAppend)
		case key.Matches(msg, keys.Cancel):
			v.loadErr = nil
		}
		return nil
	}

	if v.filtering {
		return v.handleFilterKey(msg)
	}
	if v.tagging {
		return v.handleTagKey(msg)
	}
	if v.picker != nil {
		return v.handlePickerKey(msg)
	}
	if v.hub.IsOpen() {
		return v.handleHubKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, keys.Down):
		visible := v.visible()
		if v.cursor < len(visible)-1 {
			v.cursor++
		} else if v.query() == "" && v.ctl.HasMore() && !v.loading {
			// Bottom of the list with more pages predicted: append.
			return v.fetchCmd(v.ctl.NextPage(), true)
		}
	case key.Matches(msg, keys.FilterActivate):
		v.filtering = true
		v.filterInput.Focus()
		return textinput.Blink
	case key.Matches(msg, keys.Refresh):
		v.app.setStatus(fmt.Sprintf("Refreshing %s…", strings.ToLower(v.tab.String())))
		return v.fetchCmd(1, false)
	case key.Matches(msg, keys.OpenHub):
		if rec, ok := v.selected(); ok {
			v.hub.Open(rec)
		}
	}
	return nil
}

func (v *recordsView[T]) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	keys := v.app.keys
	switch {
	case key.Matches(msg, keys.Cancel):
		v.filtering = false
		v.filterInput.SetValue("")
		v.filterInput.Blur()
		v.cursor = 0
	case key.Matches(msg, keys.Confirm):
		v.filtering = false
		v.filterInput.Blur()
	default:
		var cmd tea.Cmd
		v.filterInput, cmd = v.filterInput.Update(msg)
		v.cursor = 0
		return cmd
	}
	return nil
}

func (v *recordsView[T]) handleTagKey(msg tea.KeyMsg) tea.Cmd {
	keys := v.app.keys
	switch {
	case key.Matches(msg, keys.Cancel):
		v.tagging = false
		v.tagInput.SetValue("")
		v.tagInput.Blur()
		v.hub.Toggle(actionhub.PanelTags)
		return nil
	case key.Matches(msg, keys.Confirm):
		tag := strings.TrimSpace(v.tagInput.Value())
		v.tagInput.SetValue("")
		if tag == "" {
			return nil
		}
		return v.tagCmd(records.OpAddTag, tag)
	case msg.String() == "backspace" && v.tagInput.Value() == "":
		// Backspace on an empty input removes the newest tag.
		if rec, ok := v.ctl.Get(v.hubRecordID()); ok && v.tagsOf != nil {
			tags := v.tagsOf(rec)
			if len(tags) > 0 {
				return v.tagCmd(records.OpRemoveTag, tags[len(tags)-1])
			}
		}
		return nil
	default:
		var cmd tea.Cmd
		v.tagInput, cmd = v.tagInput.Update(msg)
		return cmd
	}
}

func (v *recordsView[T]) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	keys := v.app.keys
	switch {
	case key.Matches(msg, keys.Up):
		v.picker.MoveUp()
	case key.Matches(msg, keys.Down):
		v.picker.MoveDown()
	case key.Matches(msg, keys.Cancel):
		v.picker = nil
		v.hub.Toggle(v.hub.ActivePanel())
	case key.Matches(msg, keys.Confirm):
		option := v.picker.Selected()
		panel := v.hub.ActivePanel()
		v.picker = nil
		switch panel {
		case actionhub.PanelStage:
			return v.stageCmd(option.value)
		case actionhub.PanelReassign:
			return v.reassignCmd(option.value)
		}
	}
	return nil
}

func (v *recordsView[T]) handleHubKey(msg tea.KeyMsg) tea.Cmd {
	keys := v.app.keys
	switch {
	case key.Matches(msg, keys.Cancel), key.Matches(msg, keys.OpenHub):
		v.hub.Close()
	case key.Matches(msg, keys.Stage):
		return v.togglePanel(actionhub.PanelStage)
	case key.Matches(msg, keys.Reassign):
		if v.mutator != nil {
			return v.togglePanel(actionhub.PanelReassign)
		}
	case key.Matches(msg, keys.Tags):
		if v.mutator != nil {
			v.hub.Toggle(actionhub.PanelTags)
			v.tagging = v.hub.ActivePanel() == actionhub.PanelTags
			if v.tagging {
				v.tagInput.Focus()
				return textinput.Blink
			}
		}
	case key.Matches(msg, keys.Dormant):
		if v.mutator != nil && v.dormantOf != nil {
			return v.dormantCmd()
		}
	case key.Matches(msg, keys.Call):
		v.communicate("call")
	case key.Matches(msg, keys.WhatsApp):
		v.communicate("whatsapp")
	case key.Matches(msg, keys.SMS):
		v.communicate("sms")
	case key.Matches(msg, keys.Mail):
		v.communicate("mail")
	}
	return nil
}

// togglePanel expands a dropdown-backed panel, fetching its options
// on first use.
func (v *recordsView[T]) togglePanel(panel actionhub.Panel) tea.Cmd {
	v.hub.Toggle(panel)
	if v.hub.ActivePanel() != panel {
		v.picker = nil
		return nil
	}
	cached := (panel == actionhub.PanelStage && len(v.stages) > 0) ||
		(panel == actionhub.PanelReassign && len(v.users) > 0)
	if cached {
		v.openPicker(panel)
		return nil
	}
	return v.optionsCmd(panel)
}

func (v *recordsView[T]) optionsCmd(panel actionhub.Panel) tea.Cmd {
	tab := v.tab
	lookupType := v.lookupType
	client := v.app.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		msg := optionsLoadedMsg{tab: tab, panel: panel}
		switch panel {
		case actionhub.PanelStage:
			msg.stages, msg.err = client.Lookups(ctx, lookupType)
		case actionhub.PanelReassign:
			msg.users, msg.err = client.ListUsers(ctx)
		}
		return msg
	}
}

func (v *recordsView[T]) openPicker(panel actionhub.Panel) {
	var options []dropdownOption
	switch panel {
	case actionhub.PanelStage:
		for _, stage := range v.stages {
			if stage.Value == "" {
				continue
			}
			options = append(options, dropdownOption{label: stage.Value, value: stage.Value})
		}
	case actionhub.PanelReassign:
		for _, user := range v.users {
			options = append(options, dropdownOption{label: user.Label(), value: user.ID})
		}
	}
	if len(options) == 0 {
		v.app.setStatus("No options available")
		v.hub.Toggle(panel)
		return
	}
	v.picker = newDropdown(options)
}

func (v *recordsView[T]) stageCmd(value string) tea.Cmd {
	id := v.hubRecordID()
	if id == "" {
		return nil
	}
	tab := v.tab
	if v.mutator != nil {
		mutator := v.mutator
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			err := mutator.SetStage(ctx, id, value)
			return mutationDoneMsg{tab: tab, op: records.OpStage, id: id, detail: value, stage: value, err: err}
		}
	}
	update := v.update
	field := v.stageField
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := update(ctx, id, map[string]any{field: value})
		return mutationDoneMsg{tab: tab, op: records.OpStage, id: id, detail: value, stage: value, err: err}
	}
}

func (v *recordsView[T]) reassignCmd(userID string) tea.Cmd {
	id := v.hubRecordID()
	if id == "" || v.mutator == nil {
		return nil
	}
	var target crm.User
	for _, user := range v.users {
		if user.ID == userID {
			target = user
			break
		}
	}
	if target.ID == "" {
		return nil
	}
	tab := v.tab
	mutator := v.mutator
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := mutator.Reassign(ctx, id, target)
		return mutationDoneMsg{tab: tab, op: records.OpReassign, id: id, detail: target.Label(), err: err}
	}
}

func (v *recordsView[T]) dormantCmd() tea.Cmd {
	id := v.hubRecordID()
	rec, ok := v.ctl.Get(id)
	if !ok {
		return nil
	}
	next := !v.dormantOf(rec)
	detail := "active"
	if next {
		detail = "dormant"
	}
	tab := v.tab
	mutator := v.mutator
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := mutator.SetDormant(ctx, id, next)
		return mutationDoneMsg{tab: tab, op: records.OpDormant, id: id, detail: detail, err: err}
	}
}

func (v *recordsView[T]) tagCmd(op records.Op, tag string) tea.Cmd {
	id := v.hubRecordID()
	if id == "" || v.mutator == nil {
		return nil
	}
	tab := v.tab
	mutator := v.mutator
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		var err error
		if op == records.OpAddTag {
			err = mutator.AddTag(ctx, id, tag)
		} else {
			err = mutator.RemoveTag(ctx, id, tag)
		}
		return mutationDoneMsg{tab: tab, op: op, id: id, detail: tag, err: err}
	}
}

// communicate resolves the contact chain for the hub's record and
// hands the resulting deep link off to the host. The client never
// dials anything itself.
func (v *recordsView[T]) communicate(action string) {
	record := v.hub.Record()
	if record == nil {
		return
	}
	phoneable, ok := record.(contact.Phoneable)
	if !ok {
		return
	}
	var (
		link string
		err  error
	)
	switch action {
	case "call":
		var phone string
		if phone, err = contact.Phone(phoneable); err == nil {
			link = contact.CallLink(phone)
		}
	case "whatsapp":
		var phone string
		if phone, err = contact.Phone(phoneable); err == nil {
			link, err = contact.WhatsAppLink(phone, v.app.config.CountryCode())
		}
	case "sms":
		var phone string
		if phone, err = contact.Phone(phoneable); err == nil {
			link = contact.SMSLink(phone)
		}
	case "mail":
		var address string
		if address, err = contact.Email(phoneable); err == nil {
			link = contact.MailLink(address)
		}
	}
	if err != nil {
		v.app.setStatus(fmt.Sprintf("Cannot %s: %v", action, err))
		v.app.logWarn("%s · %s on %s: %v", v.tab, action, record.RecordID(), err)
		return
	}
	v.app.handOff(action, record.DisplayTitle(), link)
}

func (v *recordsView[T]) query() string {
	return strings.TrimSpace(v.filterInput.Value())
}

func (v *recordsView[T]) visible() []T {
	return v.ctl.Filter(v.query())
}

func (v *recordsView[T]) selected() (T, bool) {
	visible := v.visible()
	if v.cursor < 0 || v.cursor >= len(visible) {
		var zero T
		return zero, false
	}
	return visible[v.cursor], true
}

func (v *recordsView[T]) clampCursor() {
	if n := len(v.visible()); v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *recordsView[T]) hubRecordID() string {
	if record := v.hub.Record(); record != nil {
		return record.RecordID()
	}
	return ""
}

func (v *recordsView[T]) View(width int) string {
	theme := v.app.theme()
	if v.loadErr != nil {
		return v.renderErrorAlert(theme, width)
	}

	var sections []string
	if v.filtering || v.query() != "" {
		sections = append(sections, v.filterInput.View())
	}
	sections = append(sections, v.renderList(theme, width))
	if v.loading {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Dim).Render("Loading…"))
	}
	if v.hub.IsOpen() {
		sections = append(sections, v.renderHub(theme, width))
	}
	return strings.Join(sections, "\n")
}

func (v *recordsView[T]) renderList(theme Theme, width int) string {
	visible := v.visible()
	if len(visible) == 0 {
		note := "No records in this department."
		if v.query() != "" {
			note = fmt.Sprintf("No matches for %q.", v.query())
		}
		if v.loading {
			note = "Fetching records…"
		}
		return lipgloss.NewStyle().Foreground(theme.Dim).Render(note)
	}

	start := 0
	if v.cursor >= listWindowRows {
		start = v.cursor - listWindowRows + 1
	}
	end := start + listWindowRows
	if end > len(visible) {
		end = len(visible)
	}

	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent)
	rowStyle := lipgloss.NewStyle().Foreground(theme.Highlight)
	detailStyle := lipgloss.NewStyle().Foreground(theme.Dim)

	var rows []string
	for i := start; i < end; i++ {
		marker := "  "
		style := rowStyle
		if i == v.cursor {
			marker = "> "
			style = selectedStyle
		}
		rows = append(rows, style.Render(truncate(marker+v.rowLine(visible[i]), width)))
		if i == v.cursor {
			if detail := v.detailLine(visible[i]); detail != "" {
				rows = append(rows, detailStyle.Render(truncate("    "+detail, width)))
			}
		}
	}
	if start > 0 {
		rows = append([]string{detailStyle.Render(fmt.Sprintf("  ↑ %d more", start))}, rows...)
	}
	if end < len(visible) {
		rows = append(rows, detailStyle.Render(fmt.Sprintf("  ↓ %d more", len(visible)-end)))
	} else if v.query() == "" && v.ctl.HasMore() {
		rows = append(rows, detailStyle.Render("  ↓ more on the server (j to load)"))
	}
	return strings.Join(rows, "\n")
}

func (v *recordsView[T]) renderHub(theme Theme, width int) string {
	record := v.hub.Record()
	if record == nil {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).
		Render(truncate(record.DisplayTitle(), width-4))

	lines := []string{title}
	if stage := record.StageName(); stage != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Dim).Render("Stage: "+stage))
	}

	switch v.hub.ActivePanel() {
	case actionhub.PanelStage, actionhub.PanelReassign:
		if v.picker != nil {
			lines = append(lines, v.picker.Render(theme)...)
		} else {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Dim).Render("Loading options…"))
		}
	case actionhub.PanelTags:
		if rec, ok := v.ctl.Get(record.RecordID()); ok && v.tagsOf != nil {
			tagLine := "(no tags)"
			if tags := v.tagsOf(rec); len(tags) > 0 {
				tagLine = "#" + strings.Join(tags, " #")
			}
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Highlight).Render(tagLine))
		}
		lines = append(lines, v.tagInput.View())
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Dim).
			Render("enter=add  bksp(empty)=remove last  esc=done"))
	default:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Dim).Render(v.hubHints()))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (v *recordsView[T]) hubHints() string {
	hints := []string{"s=stage"}
	if v.mutator != nil {
		hints = append(hints, "a=assign", "d=dormant", "t=tags")
	}
	hints = append(hints, "c=call", "w=whatsapp", "x=sms", "m=mail", "esc=close")
	return strings.Join(hints, "  ")
}

func (v *recordsView[T]) renderErrorAlert(theme Theme, width int) string {
	head := lipgloss.NewStyle().Bold(true).Foreground(theme.Danger).Render("⚠ Fetch failed")
	body := lipgloss.NewStyle().Foreground(theme.Highlight).
		Render(truncate(v.loadErr.Error(), width-6))
	hint := lipgloss.NewStyle().Foreground(theme.Dim).Render("enter=retry  esc=dismiss")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Danger).
		Padding(0, 1).
		Render(strings.Join([]string{head, body, hint}, "\n"))
}

func truncate(line string, width int) string {
	if width <= 3 || len(line) <= width {
		return line
	}
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	return string(runes[:width-1]) + "…"
}
