package teaui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/appoverrides/pkg/app"
	"tableflip.dev/appoverrides/pkg/overview"
	"tableflip.dev/appoverrides/pkg/session"
	"tableflip.dev/appoverrides/pkg/setting"
	"tableflip.dev/appoverrides/pkg/store"
)

type mode int

const (
	modeList mode = iota
	modePick
	modeEdit
)

type overrideItem struct{ row overview.OverrideRow }

func (it overrideItem) Title() string {
	if !it.row.Installed {
		return it.row.DisplayName + " (not installed)"
	}
	return it.row.DisplayName
}
func (it overrideItem) Description() string { return it.row.Subtitle }
func (it overrideItem) FilterValue() string { return it.row.DisplayName }

type candidateItem struct{ row overview.CandidateRow }

func (it candidateItem) Title() string       { return it.row.DisplayName }
func (it candidateItem) Description() string { return it.row.AppID }
func (it candidateItem) FilterValue() string { return it.row.DisplayName }

// editor holds the open session. The observer keeps snap current.
type editor struct {
	sess  *session.Session
	snap  session.Snapshot
	field int
}

// Model is the overview screen plus the per-app edit panel.
type Model struct {
	svc    *app.Service
	ctx    context.Context
	events <-chan store.Event

	mode   mode
	list   list.Model
	pick   list.Model
	edit   *editor
	status string

	termWidth  int
	termHeight int
}

// New creates a new UI model backed by the Service.
func New(svc *app.Service) Model {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)

	l := list.New([]list.Item{}, d, 60, 20)
	l.Title = "App overrides"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	p := list.New([]list.Item{}, d, 60, 20)
	p.Title = "Select app"
	p.SetShowHelp(false)
	p.SetShowStatusBar(false)
	p.SetFilteringEnabled(false)

	return Model{
		svc:    svc,
		ctx:    context.Background(),
		mode:   modeList,
		list:   l,
		pick:   p,
		status: listHelp,
	}
}

const (
	listHelp = "enter edit, a add override, q quit"
	pickHelp = "enter select, esc back"
	editHelp = "up/down field, left/right value, s save, d delete, esc cancel"
)

// messages
type errMsg struct{ err error }
type overviewLoadedMsg struct{ ov overview.Overview }
type storeChangedMsg struct{ ev store.Event }

// Init loads initial data
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadOverview(), m.waitForChange())
}

func (m Model) loadOverview() tea.Cmd {
	return func() tea.Msg {
		if m.svc == nil {
			return errMsg{errors.New("no service")}
		}
		ov, err := m.svc.Overview(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return overviewLoadedMsg{ov}
	}
}

func (m Model) waitForChange() tea.Cmd {
	if m.events == nil {
		return nil
	}
	ch := m.events
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return storeChangedMsg{ev}
	}
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case overviewLoadedMsg:
		m.setOverview(msg.ov)
	case storeChangedMsg:
		return m, tea.Batch(m.loadOverview(), m.waitForChange())
	case tea.KeyPressMsg:
		return m.handleKey(msg.String(), msg)
	}
	return m, nil
}

func (m *Model) setOverview(ov overview.Overview) {
	items := make([]list.Item, 0, len(ov.Overrides))
	for _, r := range ov.Overrides {
		items = append(items, overrideItem{row: r})
	}
	m.list.SetItems(items)

	cands := make([]list.Item, 0, len(ov.Candidates))
	for _, r := range ov.Candidates {
		cands = append(cands, candidateItem{row: r})
	}
	m.pick.SetItems(cands)
}

func (m Model) handleKey(key string, msg tea.Msg) (tea.Model, tea.Cmd) {
	if key == "ctrl+c" {
		if m.edit != nil {
			m.closeEditor()
		}
		return m, tea.Quit
	}

	switch m.mode {
	case modeEdit:
		return m.handleEditKey(key)
	case modePick:
		switch key {
		case "esc", "q":
			m.mode = modeList
			m.status = listHelp
			return m, nil
		case "enter":
			sel, ok := m.pick.SelectedItem().(candidateItem)
			if !ok {
				return m, nil
			}
			if !m.openEditor("") {
				return m, nil
			}
			if err := m.edit.sess.SelectApp(sel.row.AppID); err != nil {
				m.closeEditor()
				m.status = "ERR: " + err.Error()
				return m, nil
			}
			return m, nil
		}
		if msg == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.pick, cmd = m.pick.Update(msg)
		return m, cmd
	default:
		switch key {
		case "q", "esc":
			return m, tea.Quit
		case "a":
			if len(m.pick.Items()) == 0 {
				m.status = "every installed app already has an override"
				return m, nil
			}
			m.mode = modePick
			m.status = pickHelp
			return m, nil
		case "enter":
			sel, ok := m.list.SelectedItem().(overrideItem)
			if !ok {
				return m, nil
			}
			m.openEditor(sel.row.AppID)
			return m, nil
		}
		if msg == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
}

// openEditor starts a session for appID and reports whether one is open.
func (m *Model) openEditor(appID string) bool {
	ed := &editor{}
	sess, err := m.svc.Edit(appID, session.WithObserver(func(s session.Snapshot) { ed.snap = s }))
	if err != nil {
		m.status = "ERR: " + err.Error()
		return false
	}
	ed.sess = sess
	m.edit = ed
	m.mode = modeEdit
	m.status = editHelp
	return true
}

func (m *Model) closeEditor() {
	if m.edit != nil && m.edit.sess.State() != session.Closed {
		m.edit.sess.Cancel()
	}
	m.edit = nil
	m.mode = modeList
}

func (m Model) handleEditKey(key string) (tea.Model, tea.Cmd) {
	ed := m.edit
	fields := setting.AllFields()

	if ed.snap.ShowDeleteConfirm {
		switch key {
		case "y":
			if err := ed.sess.ConfirmDelete(); err != nil {
				m.status = "ERR: " + err.Error()
				return m, nil
			}
			m.closeEditor()
			m.status = "deleted " + ed.snap.AppID
			return m, m.loadOverview()
		case "n", "esc":
			_ = ed.sess.DismissDelete()
			m.status = editHelp
		}
		return m, nil
	}

	switch key {
	case "esc", "q":
		m.closeEditor()
		m.status = listHelp
	case "up", "k":
		if ed.field > 0 {
			ed.field--
		}
	case "down", "j":
		if ed.field < len(fields)-1 {
			ed.field++
		}
	case "left", "h":
		m.cycle(fields[ed.field], -1)
	case "right", "l":
		m.cycle(fields[ed.field], 1)
	case "s", "ctrl+s":
		appID := ed.snap.AppID
		if err := ed.sess.Save(); err != nil {
			m.status = "ERR: " + err.Error()
			return m, nil
		}
		m.closeEditor()
		m.status = "saved " + appID
		return m, m.loadOverview()
	case "d":
		if err := ed.sess.RequestDelete(); err != nil {
			m.status = "ERR: " + err.Error()
			return m, nil
		}
		m.status = "delete override? y/n"
	}
	return m, nil
}

func (m *Model) cycle(f setting.Field, step int) {
	options := setting.Values(f)
	current := m.edit.snap.Working.Value(f)
	idx := 0
	for i, o := range options {
		if o.Key == current {
			idx = i
		}
	}
	idx = (idx + step + len(options)) % len(options)
	if err := m.edit.sess.SetField(f, options[idx].Key); err != nil {
		m.status = "ERR: " + err.Error()
	}
}

// View renders the current screen.
func (m Model) View() string {
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.wrap(m.status))

	var body string
	switch m.mode {
	case modePick:
		body = m.pick.View()
	case modeEdit:
		body = m.editView()
	default:
		body = m.list.View()
	}
	return body + "\n\n" + status
}

func (m Model) editView() string {
	ed := m.edit
	snap := ed.snap

	title := lipgloss.NewStyle().Bold(true).Render(snap.AppID)
	if snap.IsNew {
		title += lipgloss.NewStyle().Italic(true).Render("  new override")
	}
	if snap.HasUnsavedChanges {
		title += lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("  unsaved")
	}

	lines := []string{title, ""}
	for i, f := range setting.AllFields() {
		indicator := "  "
		if i == ed.field {
			indicator = "→ "
		}
		lines = append(lines, fmt.Sprintf("%s%-18s ‹ %s ›", indicator, f.Label(), label(f, snap.Working.Value(f))))
	}
	if snap.ShowDeleteConfirm {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("Delete this override? y/n"))
	}
	panelStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1, 2)
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) wrap(s string) string {
	if m.termWidth <= 0 {
		return s
	}
	return wordwrap.String(s, m.termWidth)
}

func label(f setting.Field, key string) string {
	for _, o := range setting.Values(f) {
		if o.Key == key {
			return o.Label
		}
	}
	return key
}

// applySizes recalculates list sizes based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	height := m.termHeight - 4
	if height < 5 {
		height = 5
	}
	m.list.SetSize(m.termWidth, height)
	m.pick.SetSize(m.termWidth, height)
}

// Run starts the program and follows store changes until it exits.
func Run(ctx context.Context, svc *app.Service) error {
	m := New(svc)
	m.ctx = ctx
	if svc != nil {
		if events, err := svc.Watch(ctx); err == nil {
			m.events = events
		}
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
