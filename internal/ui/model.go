package ui

import (
	"fmt"
	"log"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"outlooker/internal/api"
	"outlooker/internal/cache"
	"outlooker/internal/config"
	"outlooker/internal/domain"
	"outlooker/internal/eventbus"
	"outlooker/internal/session"
	"outlooker/internal/tags"
	"outlooker/internal/ui/handlers"
	"outlooker/internal/ui/input"
	inputtypes "outlooker/internal/ui/input/types"
	"outlooker/internal/ui/services/batch"
	"outlooker/internal/ui/services/events"
	"outlooker/internal/ui/services/pagination"
	"outlooker/internal/ui/services/selection"
	"outlooker/internal/ui/state"
	"outlooker/internal/ui/views"
)

// pageSizes are the sizes the s key cycles through on the dashboard.
var pageSizes = []int{10, 20, 50, 100}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state

	width  int
	height int

	api      *api.Client
	session  session.Store
	snapshot *cache.Snapshot
	tags     tags.Manager

	// UI-side services
	uiBus     *events.Bus
	selection *selection.Service
	pager     *pagination.Service
	batch     *batch.Service

	// Handlers
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	inputHandler *input.Handler
	reporter     *Reporter

	// Import text editor
	importArea    textarea.Model
	editingImport bool

	toastTTL    time.Duration
	inPagerMode bool // tracks if we're currently in pager mode

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, client *api.Client, sess session.Store, snapshot *cache.Snapshot, tagIndex tags.Manager) *Model {
	appState := state.NewAppState(cfg.UISettings.PageSize)

	ta := textarea.New()
	ta.Placeholder = "email----password----client_id----refresh_token"
	ta.CharLimit = 0
	ta.SetHeight(10)

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		api:          client,
		session:      sess,
		snapshot:     snapshot,
		tags:         tagIndex,
		uiBus:        events.NewBus(),
		pager:        pagination.NewService(cfg.UISettings.PageSize),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		reporter:     NewReporter(),
		importArea:   ta,
		toastTTL:     time.Duration(cfg.UISettings.ToastSeconds) * time.Second,
	}
	if m.toastTTL <= 0 {
		m.toastTTL = 3 * time.Second
	}

	m.selection = selection.NewService(m.uiBus)
	m.batch = batch.NewService(m.selection, bus, func() {
		m.snapshot.Invalidate()
		m.selection.Clear()
	})
	m.eventHandler = handlers.NewEventHandler(appState, m.pager, snapshot, m.toastTTL, m.requestAccounts)

	m.uiBus.Subscribe(fmt.Sprintf("%T", selection.AllSelectedEvent{}), func(e interface{}) {
		if ev, ok := e.(selection.AllSelectedEvent); ok {
			m.toast(state.ToastInfo, fmt.Sprintf("Selected %d account(s)", len(ev.Emails)))
		}
	})
	m.uiBus.Subscribe(fmt.Sprintf("%T", selection.SelectionClearedEvent{}), func(e interface{}) {
		m.toast(state.ToastInfo, "Selection cleared")
	})

	// With a stored token the dashboard opens directly, seeded from the
	// local snapshot until the live page arrives.
	if sess.Token() != "" {
		appState.CurrentView = state.ViewDashboard
		if page, ok := snapshot.Accounts(); ok {
			appState.ApplyPage(page, true)
			m.pager.SetTotals(page.Total, page.TotalPages)
			m.pager.SetPage(page.Page)
		}
	}

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if m.reporter != nil {
		m.reporter.SetProgram(p)
	}
}

func (m *Model) toast(level state.ToastLevel, msg string) {
	m.state.SetToast(level, msg, time.Now().Add(m.toastTTL))
}

// requestAccounts asks the accounts service for the page the pagination
// state points at, with the current search and tag filter.
func (m *Model) requestAccounts() {
	q := m.state.Query
	q.Page = m.pager.Page()
	q.PageSize = m.pager.PageSize()
	m.state.Query = q
	m.state.LoadingAccounts = true
	m.bus.Publish(eventbus.AccountsRequestedEvent{Query: q})
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	if m.state.CurrentView == state.ViewDashboard {
		m.requestAccounts()
	}
	return tick()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	model = m

	// A panic anywhere below must not take the whole terminal down; the
	// recovery view offers a reload instead.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("update panic: %v\n%s", r, debug.Stack())
			m.state.PanicMessage = fmt.Sprintf("%v", r)
			m.state.CurrentView = state.ViewRecovery
			m.editingImport = false
			m.inputHandler.Reset()
			model = m
			cmd = tick()
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width - 8
		if w < 20 {
			w = 20
		}
		m.importArea.SetWidth(w)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		if c := m.inputHandler.Update(msg); c != nil {
			return m, c
		}
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The recovery view only knows reload and quit.
	if m.state.CurrentView == state.ViewRecovery {
		switch msg.String() {
		case "enter":
			m.state.PanicMessage = ""
			if m.session.Token() != "" {
				m.state.CurrentView = state.ViewDashboard
				m.requestAccounts()
			} else {
				m.state.CurrentView = state.ViewVerification
			}
			return m, nil
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	// The import editor owns the keyboard while open.
	if m.editingImport {
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			m.state.ImportText = m.importArea.Value()
			m.importArea.Blur()
			m.editingImport = false
			return m, nil
		}
		var c tea.Cmd
		m.importArea, c = m.importArea.Update(msg)
		return m, c
	}

	ctx := input.NewModelContext(m.state, m.selection, m.tags)
	actions, cmd := m.inputHandler.HandleKey(msg, ctx)

	cmds := []tea.Cmd{}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	for _, action := range actions {
		if actionCmd := m.processAction(action); actionCmd != nil {
			cmds = append(cmds, actionCmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.ToggleSelectAction:
		if email := m.state.CurrentEmail(); email != "" {
			m.selection.Toggle(email, m.state.SelectedIndex)
		}

	case inputtypes.SelectAllAction:
		m.selection.SelectAll(m.state.LoadedEmails())

	case inputtypes.DeselectAllAction:
		m.selection.Clear()

	case inputtypes.UpdateTextAction:
		switch m.inputHandler.CurrentMode() {
		case inputtypes.ModeJump:
			m.pager.SetJumpText(a.Text)
		case inputtypes.ModeTagBatch:
			m.batch.SetTagText(a.Text)
		}

	case inputtypes.SubmitTextAction:
		return m.handleSubmit(a)

	case inputtypes.CancelTextAction:
		if m.batch.TagModalOpen() {
			m.batch.CloseTagModal()
		}
		m.pager.SetJumpText("")

	case inputtypes.SwitchViewAction:
		return m.switchView(a.View)

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp

	case inputtypes.RequestDeleteAction:
		m.batch.RequestDelete()

	case inputtypes.ConfirmDeleteAction:
		if m.batch.DeleteConfirmOpen() && !m.batch.Loading() {
			return m.executeDeleteCmd()
		}

	case inputtypes.CancelDeleteAction:
		m.batch.CloseDeleteConfirm()

	case inputtypes.OpenTagModalAction:
		m.batch.OpenTagModal(a.Mode)

	case inputtypes.CycleTagModeAction:
		m.batch.CycleTagMode()

	case inputtypes.NextPageAction:
		if !m.pager.IsLastPage() {
			m.pager.NextPage()
			m.requestAccounts()
		}

	case inputtypes.PrevPageAction:
		if !m.pager.IsFirstPage() {
			m.pager.PrevPage()
			m.requestAccounts()
		}

	case inputtypes.CyclePageSizeAction:
		m.cyclePageSize()

	case inputtypes.RefreshAction:
		switch m.state.CurrentView {
		case state.ViewDashboard, state.ViewTags:
			m.requestAccounts()
		case state.ViewSystem:
			return tea.Batch(m.loadSystemConfigCmd(), m.loadMetricsCmd())
		}

	case inputtypes.RefreshCacheAction:
		m.state.RefreshingCache = true
		return m.refreshCacheCmd()

	case inputtypes.FilterByTagAction:
		m.filterByTag()

	case inputtypes.ClearFilterAction:
		if m.state.Query.Tag != "" || m.state.Query.Search != "" {
			m.state.Query.Tag = ""
			m.state.Query.Search = ""
			m.pager.SetPage(1)
			m.requestAccounts()
		}

	case inputtypes.EditImportTextAction:
		if m.state.CurrentView == state.ViewImport {
			m.editingImport = true
			m.importArea.SetValue(m.state.ImportText)
			m.importArea.Focus()
			return textarea.Blink
		}

	case inputtypes.ParseImportAction:
		if strings.TrimSpace(m.state.ImportText) == "" {
			m.toast(state.ToastError, "Nothing to parse")
			return nil
		}
		m.state.ImportLoading = true
		m.state.ImportResult = nil
		return m.parseImportCmd(m.state.ImportText)

	case inputtypes.CommitImportAction:
		if p := m.state.ImportPreview; p != nil && len(p.Accounts) > 0 {
			m.state.ImportLoading = true
			return m.commitImportCmd(p.Accounts, m.state.MergeMode)
		}

	case inputtypes.ShowImportReportAction:
		if p := m.state.ImportPreview; p != nil && len(p.Errors) > 0 {
			m.inPagerMode = true
			return m.showReportCmd(*p)
		}

	case inputtypes.ToggleMergeModeAction:
		m.state.ToggleMergeMode()

	case inputtypes.LogoutAction:
		if err := m.session.Clear(); err != nil {
			log.Printf("clearing session: %v", err)
		}
		m.selection.Clear()
		m.snapshot.Invalidate()
		m.state.CurrentView = state.ViewLogin
		m.toast(state.ToastInfo, "Signed out")

	case inputtypes.QuitAction:
		return tea.Quit
	}

	return nil
}

func (m *Model) navigate(direction string) {
	switch m.state.CurrentView {
	case state.ViewDashboard:
		switch direction {
		case "up":
			m.state.MoveCursor(-1)
		case "down":
			m.state.MoveCursor(1)
		case "home":
			m.state.SelectedIndex = 0
		case "end":
			m.state.MoveCursor(len(m.state.Page.Accounts))
		}
	case state.ViewTags:
		n := len(m.tags.Names())
		if n == 0 {
			m.state.TagIndex = 0
			return
		}
		switch direction {
		case "up":
			m.state.TagIndex--
		case "down":
			m.state.TagIndex++
		case "home":
			m.state.TagIndex = 0
		case "end":
			m.state.TagIndex = n - 1
		}
		if m.state.TagIndex < 0 {
			m.state.TagIndex = 0
		}
		if m.state.TagIndex >= n {
			m.state.TagIndex = n - 1
		}
	}
}

func (m *Model) handleSubmit(a inputtypes.SubmitTextAction) tea.Cmd {
	switch a.Mode {
	case inputtypes.ModeSearch:
		m.state.Query.Search = strings.TrimSpace(a.Text)
		m.pager.SetPage(1)
		m.inputHandler.Reset()
		m.requestAccounts()

	case inputtypes.ModeJump:
		m.pager.SetJumpText(strings.TrimSpace(a.Text))
		if !m.pager.CanJump() {
			// Empty jump field: the control is disabled, leave the mode
			m.inputHandler.Reset()
			return nil
		}
		if m.pager.Jump() {
			m.inputHandler.Reset()
			m.requestAccounts()
		} else {
			m.toast(state.ToastError, "Not a page number")
		}

	case inputtypes.ModeTagBatch:
		// Mode stays open until the server confirms; a failed call keeps
		// the dialog and its text for a retry.
		m.batch.SetTagText(a.Text)
		if m.batch.Loading() {
			return nil
		}
		return m.submitTagsCmd()

	case inputtypes.ModeTagRow:
		email := m.state.CurrentEmail()
		m.inputHandler.Reset()
		if email == "" {
			return nil
		}
		m.state.UpdatingRowTags = true
		return m.rowTagsCmd(email, tags.SplitTags(a.Text))

	case inputtypes.ModeLogin:
		if a.Text == "" {
			m.toast(state.ToastError, "Password required")
			return nil
		}
		m.state.LoginLoading = true
		m.inputHandler.Reset()
		return m.loginCmd(a.Text)

	case inputtypes.ModeEmail:
		email := strings.TrimSpace(a.Text)
		if email == "" {
			// Keep the form focused so the user can just type
			m.toast(state.ToastError, "Enter an email address")
			return nil
		}
		m.state.VerificationEmail = email
		m.state.VerificationResult = nil
		m.state.VerifyLoading = true
		m.inputHandler.Reset()
		return m.verifyCmd(email)

	case inputtypes.ModeEmailLimit:
		n, err := strconv.Atoi(strings.TrimSpace(a.Text))
		if err != nil || n < 0 {
			m.toast(state.ToastError, "Limit must be a non-negative number")
			return nil
		}
		m.state.SavingConfig = true
		m.inputHandler.Reset()
		return m.saveConfigCmd(domain.SystemConfig{EmailLimit: n})
	}

	return nil
}

func (m *Model) switchView(v state.View) tea.Cmd {
	adminView := v == state.ViewDashboard || v == state.ViewImport ||
		v == state.ViewTags || v == state.ViewSystem
	if adminView && m.session.Token() == "" {
		m.state.CurrentView = state.ViewLogin
		m.toast(state.ToastInfo, "Sign in first")
		return nil
	}

	m.state.CurrentView = v
	switch v {
	case state.ViewDashboard:
		if len(m.state.Page.Accounts) == 0 || m.state.FromCache {
			m.requestAccounts()
		}
	case state.ViewSystem:
		return tea.Batch(m.loadSystemConfigCmd(), m.loadMetricsCmd())
	}
	return nil
}

func (m *Model) cyclePageSize() {
	current := m.pager.PageSize()
	next := pageSizes[0]
	for i, s := range pageSizes {
		if s == current {
			next = pageSizes[(i+1)%len(pageSizes)]
			break
		}
	}
	m.pager.SetPageSize(next)
	m.requestAccounts()
}

func (m *Model) filterByTag() {
	var tag string
	switch m.state.CurrentView {
	case state.ViewTags:
		names := m.tags.Names()
		if m.state.TagIndex >= 0 && m.state.TagIndex < len(names) {
			tag = names[m.state.TagIndex]
		}
	case state.ViewDashboard:
		idx := m.state.SelectedIndex
		if idx >= 0 && idx < len(m.state.Page.Accounts) {
			if rowTags := m.state.Page.Accounts[idx].Tags; len(rowTags) > 0 {
				tag = rowTags[0]
			}
		}
	}
	if tag == "" {
		return
	}
	m.state.Query.Tag = tag
	m.pager.SetPage(1)
	m.state.CurrentView = state.ViewDashboard
	m.requestAccounts()
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		m.eventHandler.HandleEvent(msg.Event)
		switch msg.Event.(type) {
		case eventbus.AccountsLoadedEvent:
			// Selected rows must stay a subset of the loaded page set
			m.selection.Prune(m.state.LoadedEmails())
		case eventbus.AuthExpiredEvent:
			m.editingImport = false
			m.inputHandler.Reset()
		}
		return m, nil

	case tickMsg:
		m.state.ExpireToast(time.Now())
		if m.inPagerMode {
			return m, nil
		}
		return m, tick()

	case batchDeleteResultMsg:
		m.batch.FinishDelete(msg.emails, msg.err)
		return m, nil

	case batchTagsResultMsg:
		m.batch.FinishTagSubmit(msg.emails, msg.tags, msg.mode, msg.err)
		if msg.err == nil && m.inputHandler.CurrentMode() == inputtypes.ModeTagBatch {
			m.inputHandler.Reset()
		}
		return m, nil

	case verifyResultMsg:
		m.state.VerifyLoading = false
		if msg.err != nil {
			m.toast(state.ToastError, "No verification code found")
			log.Printf("verification lookup: %v", msg.err)
		} else {
			code := msg.code
			m.state.VerificationResult = &code
		}
		return m, nil

	case loginResultMsg:
		m.state.LoginLoading = false
		m.state.LoginAttempts++
		m.toast(state.ToastError, "Login failed")
		log.Printf("login: %v", msg.err)
		return m, nil

	case parseResultMsg:
		m.state.ImportLoading = false
		if msg.err != nil {
			if !api.IsUnauthorized(msg.err) {
				m.toast(state.ToastError, "Parsing import text failed")
			}
			log.Printf("parse import: %v", msg.err)
		} else {
			preview := msg.preview
			m.state.ImportPreview = &preview
			m.toast(state.ToastInfo, fmt.Sprintf("Parsed %d account(s), %d error(s)", preview.ParsedCount, preview.ErrorCount))
		}
		return m, nil

	case reportPagerMsg:
		m.inPagerMode = false
		if msg.err != nil {
			log.Printf("report pager: %v", msg.err)
		}
		return m, tick()

	default:
		return m, nil
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	vs := views.ViewState{
		Width:             m.width,
		Height:            m.height,
		App:               m.state,
		Selected:          m.selectedSet(),
		SelectionCount:    m.selection.Count(),
		TagNames:          m.tags.Names(),
		TagCounts:         m.tags.Counts(),
		ShowTags:          m.config.UISettings.ShowTags,
		ShowRemarks:       m.config.UISettings.ShowRemarks,
		PageNumbers:       m.pager.PageNumbers(),
		CanPrev:           !m.pager.IsFirstPage(),
		CanNext:           !m.pager.IsLastPage(),
		DeleteConfirmOpen: m.batch.DeleteConfirmOpen(),
		DeleteCount:       m.batch.DeleteCount(),
		TagModalOpen:      m.batch.TagModalOpen(),
		TagMode:           m.batch.TagMode(),
		TagText:           m.batch.TagText(),
		BatchLoading:      m.batch.Loading(),
		InputMode:         m.inputModeName(),
	}
	if vs.InputMode != "" {
		vs.TextInputView = m.inputHandler.TextInput().View()
	}
	if m.editingImport {
		vs.ImportEditor = m.importArea.View()
	}

	return m.renderer.Render(vs)
}

func (m *Model) selectedSet() map[string]bool {
	set := make(map[string]bool)
	for _, email := range m.selection.Ordered() {
		set[email] = true
	}
	return set
}

func (m *Model) inputModeName() string {
	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeSearch:
		return "search"
	case inputtypes.ModeJump:
		return "jump"
	case inputtypes.ModeTagBatch:
		return "batch-tags"
	case inputtypes.ModeTagRow:
		return "row-tags"
	case inputtypes.ModeLogin:
		return "login"
	case inputtypes.ModeEmail:
		return "email"
	case inputtypes.ModeEmailLimit:
		return "email-limit"
	}
	return ""
}
