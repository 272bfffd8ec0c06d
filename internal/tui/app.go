package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/todos/internal/domain"
	"github.com/mmcdole/todos/internal/service"
	"github.com/mmcdole/todos/internal/tui/components"
)

// Focus is the part of the screen receiving keys
type Focus int

const (
	FocusForm Focus = iota
	FocusList
	FocusSearch
)

const (
	// ErrorDisplayDuration is how long an error stays visible by default
	ErrorDisplayDuration = 3 * time.Second

	spinnerInterval = 100 * time.Millisecond
)

// Options configures the model
type Options struct {
	Filter        domain.Filter
	ErrorDuration time.Duration // How long an error stays visible

	// Context is the parent of every request; defaults to Background
	Context context.Context
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	TodoSvc *service.TodoService
	updates <-chan domain.Snapshot

	// Requests in flight are cancelled on quit
	ctx    context.Context
	cancel context.CancelFunc

	// State mirrored from the service
	Snap domain.Snapshot

	// UI state
	Filter       domain.Filter
	Focus        Focus
	ShowHelp     bool
	Ready        bool
	SpinnerFrame int

	// UI Components
	Form   components.TodoForm
	List   components.TodoList
	Search components.SearchBar

	// Dimensions
	Width  int
	Height int

	errorDuration time.Duration
	dismissSeq    uint64 // Notice whose auto-dismiss is already scheduled
}

// NewModel creates a new application model and subscribes it to svc
func NewModel(svc *service.TodoService, opts Options) Model {
	obs := NewChannelObserver()
	svc.SetObserver(obs)

	if opts.ErrorDuration <= 0 {
		opts.ErrorDuration = ErrorDisplayDuration
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	ctx, cancel := context.WithCancel(opts.Context)

	return Model{
		TodoSvc:       svc,
		updates:       obs.Updates(),
		ctx:           ctx,
		cancel:        cancel,
		Snap:          domain.Snapshot{Loading: true},
		Filter:        opts.Filter,
		Focus:         FocusForm,
		Form:          components.NewTodoForm(),
		List:          components.NewTodoList(),
		Search:        components.NewSearchBar(),
		errorDuration: opts.ErrorDuration,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadTodosCmd(m.ctx, m.TodoSvc),
		WaitForStateCmd(m.updates),
		TickCmd(spinnerInterval),
		textinput.Blink,
	)
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

	case TickMsg:
		m.SpinnerFrame++
		m.List.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(spinnerInterval)

	case StateChangedMsg:
		cmd := m.applySnapshot(msg.Snapshot)
		return m, tea.Batch(cmd, WaitForStateCmd(m.updates))

	case ClearErrorMsg:
		m.TodoSvc.DismissError(msg.Seq)
		return m, m.sync()

	case TodosLoadedMsg:
		return m, m.sync()

	case TodoCreatedMsg:
		if msg.Err == nil {
			m.Form.Reset()
			m.TodoSvc.ClearError()
		}
		return m, m.sync()

	case TodoToggledMsg, AllToggledMsg:
		return m, m.sync()

	case TodoRenamedMsg:
		if m.List.IsEditing() && m.List.EditID() == msg.ID {
			m.List.FinishEdit(msg.Err == nil)
		}
		return m, m.sync()

	case TodoDeletedMsg:
		if msg.FromEdit && m.List.IsEditing() && m.List.EditID() == msg.Result.ID {
			m.List.FinishEdit(msg.Result.Success)
		}
		cmds := []tea.Cmd{m.sync()}
		if msg.Result.Refocus {
			cmds = append(cmds, m.focusForm())
		}
		return m, tea.Batch(cmds...)

	case CompletedClearedMsg:
		cmds := []tea.Cmd{m.sync()}
		if msg.Result.Refocus {
			cmds = append(cmds, m.focusForm())
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// quit cancels outstanding requests and stops the program
func (m Model) quit() tea.Cmd {
	m.cancel()
	return tea.Quit
}

// sync pulls the current state from the service
func (m *Model) sync() tea.Cmd {
	return m.applySnapshot(m.TodoSvc.Snapshot())
}

// applySnapshot mirrors s into the UI. Snapshots older than the one shown
// are ignored. Returns the auto-dismiss timer for a newly raised error.
func (m *Model) applySnapshot(s domain.Snapshot) tea.Cmd {
	if s.Version < m.Snap.Version {
		return nil
	}
	m.Snap = s
	m.Form.SetDisabled(s.IsProcessing(domain.PendingID))
	m.refreshList()

	if s.Notice.Active() && s.Notice.Seq != m.dismissSeq {
		m.dismissSeq = s.Notice.Seq
		return DismissErrorCmd(s.Notice.Seq, m.errorDuration)
	}
	return nil
}

// refreshList recomputes the visible rows from the filter and search query
func (m *Model) refreshList() {
	query := strings.TrimSpace(m.Search.Query())
	items := service.ApplyFilter(m.Snap.Items, m.Filter)
	items = service.SearchTitles(items, query)

	m.List.SetEntries(domain.Entries(items, m.Snap.Pending), m.Snap.Processing)
	m.List.SetHighlight(query)
}

func (m *Model) setFilter(f domain.Filter) {
	m.Filter = f
	m.refreshList()
}

func (m *Model) focusForm() tea.Cmd {
	m.Focus = FocusForm
	m.List.SetFocused(false)
	m.List.CancelEdit()
	m.Search.Close()
	return m.Form.Focus()
}

func (m *Model) focusList() {
	m.Focus = FocusList
	m.Form.Blur()
	m.Search.Close()
	m.List.SetFocused(true)
}

// canToggleAll mirrors the visibility of the toggle-all control
func (m Model) canToggleAll() bool {
	return !m.Snap.Loading && len(m.Snap.Items) > 0
}
