package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/todos/internal/domain"
	"github.com/mmcdole/todos/internal/service"
)

// Command factories for async operations. The service records errors in
// its state; the messages only tell the UI that a request settled. Requests
// run under the model's context, which is cancelled on quit; the only
// request timeout is the client's api.timeout.

// LoadTodosCmd loads the user's todos
func LoadTodosCmd(ctx context.Context, svc *service.TodoService) tea.Cmd {
	return func() tea.Msg {
		return TodosLoadedMsg{Err: svc.Load(ctx)}
	}
}

// CreateTodoCmd creates a todo from the form input
func CreateTodoCmd(ctx context.Context, svc *service.TodoService, title string) tea.Cmd {
	return func() tea.Msg {
		item, err := svc.Create(ctx, title)
		return TodoCreatedMsg{Item: item, Err: err}
	}
}

// ToggleTodoCmd flips the completion of a todo
func ToggleTodoCmd(ctx context.Context, svc *service.TodoService, id int) tea.Cmd {
	return func() tea.Msg {
		return TodoToggledMsg{ID: id, Err: svc.Toggle(ctx, id)}
	}
}

// RenameTodoCmd submits an edited title
func RenameTodoCmd(ctx context.Context, svc *service.TodoService, id int, title string) tea.Cmd {
	return func() tea.Msg {
		return TodoRenamedMsg{ID: id, Err: svc.Rename(ctx, id, title)}
	}
}

// DeleteTodoCmd deletes a todo
func DeleteTodoCmd(ctx context.Context, svc *service.TodoService, id int, fromEdit bool) tea.Cmd {
	return func() tea.Msg {
		return TodoDeletedMsg{Result: svc.Delete(ctx, id), FromEdit: fromEdit}
	}
}

// ToggleAllCmd completes or reopens every todo
func ToggleAllCmd(ctx context.Context, svc *service.TodoService) tea.Cmd {
	return func() tea.Msg {
		return AllToggledMsg{Err: svc.ToggleAll(ctx)}
	}
}

// ClearCompletedCmd deletes every completed todo
func ClearCompletedCmd(ctx context.Context, svc *service.TodoService) tea.Cmd {
	return func() tea.Msg {
		return CompletedClearedMsg{Result: svc.ClearCompleted(ctx)}
	}
}

// WaitForStateCmd waits for the next published snapshot. The model re-arms
// it after every StateChangedMsg.
func WaitForStateCmd(updates <-chan domain.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-updates
		if !ok {
			return nil
		}
		return StateChangedMsg{Snapshot: snapshot}
	}
}

// DismissErrorCmd hides the error raised with seq after a delay
func DismissErrorCmd(seq uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearErrorMsg{Seq: seq}
	})
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}
