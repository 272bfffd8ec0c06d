package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/mmcdole/todos/internal/domain"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/iter"
)

// DeleteResult reports the outcome of a single delete
type DeleteResult struct {
	ID      int
	Success bool
	Refocus bool  // The new-todo field should take focus again
	Err     error // Set when Success is false
}

// ClearResult reports the outcome of clearing completed todos
type ClearResult struct {
	Deleted []int
	Failed  []int
	Refocus bool
}

// TodoService owns the client-side todo state: the item list, the ids with
// requests in flight, the placeholder of a pending creation and the active
// error. Every mutation replaces whole fields under the lock and is then
// published to the observer as a Snapshot.
//
// Operations on the same id are not serialized; the last response to
// arrive wins.
type TodoService struct {
	repo   domain.TodoRepository
	userID int
	logger *slog.Logger

	mu         sync.RWMutex
	items      []domain.Item
	pending    *domain.Draft
	processing map[int]int // id -> requests in flight
	notice     domain.Notice
	noticeSeq  uint64
	loading    bool
	version    uint64
	observer   domain.StateObserver
}

// NewTodoService creates a new todo service scoped to userID
func NewTodoService(repo domain.TodoRepository, userID int, logger *slog.Logger) *TodoService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TodoService{
		repo:       repo,
		userID:     userID,
		logger:     logger,
		processing: make(map[int]int),
		observer:   domain.NoOpObserver{},
	}
}

// SetObserver registers the receiver of state changes. Observers are called
// with the lock held and must not block or call back into the service.
func (s *TodoService) SetObserver(o domain.StateObserver) {
	if o == nil {
		o = domain.NoOpObserver{}
	}
	s.mu.Lock()
	s.observer = o
	s.mu.Unlock()
}

// UserID returns the user all requests are scoped to
func (s *TodoService) UserID() int { return s.userID }

// Snapshot returns a copy of the current state
func (s *TodoService) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *TodoService) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		Items:   slices.Clone(s.items),
		Notice:  s.notice,
		Loading: s.loading,
		Version: s.version,
	}
	if s.pending != nil {
		draft := *s.pending
		snap.Pending = &draft
	}
	snap.Processing = make([]int, 0, len(s.processing))
	for id := range s.processing {
		snap.Processing = append(snap.Processing, id)
	}
	slices.Sort(snap.Processing)
	return snap
}

// mutate applies fn under the write lock and publishes the result
func (s *TodoService) mutate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
	s.version++
	s.observer.OnStateChange(s.snapshotLocked())
}

// === Locked helpers (call only inside mutate) ===

func (s *TodoService) markProcessing(id int) {
	s.processing[id]++
}

func (s *TodoService) unmarkProcessing(id int) {
	if s.processing[id] <= 1 {
		delete(s.processing, id)
		return
	}
	s.processing[id]--
}

func (s *TodoService) setNotice(kind domain.ErrorKind) {
	s.noticeSeq++
	s.notice = domain.Notice{Kind: kind, Seq: s.noticeSeq}
}

func (s *TodoService) find(id int) (domain.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.Item{}, false
}

// === Errors ===

// SetError shows an error kind, replacing any active one
func (s *TodoService) SetError(kind domain.ErrorKind) {
	s.mutate(func() {
		if kind == domain.ErrorNone {
			s.notice = domain.Notice{}
			return
		}
		s.setNotice(kind)
	})
}

// ClearError hides the active error
func (s *TodoService) ClearError() {
	s.mu.RLock()
	active := s.notice.Active()
	s.mu.RUnlock()
	if !active {
		return
	}
	s.mutate(func() { s.notice = domain.Notice{} })
}

// DismissError hides the error raised with seq. A newer error is left alone.
func (s *TodoService) DismissError(seq uint64) {
	s.mu.RLock()
	current := s.notice.Seq == seq && s.notice.Active()
	s.mu.RUnlock()
	if !current {
		return
	}
	s.mutate(func() {
		if s.notice.Seq == seq {
			s.notice = domain.Notice{}
		}
	})
}

// === Operations ===

// Load fetches the user's todos and replaces the local list.
// On failure the list is left empty and UnableToLoad is shown.
func (s *TodoService) Load(ctx context.Context) error {
	s.mutate(func() {
		s.loading = true
		s.notice = domain.Notice{}
	})

	items, err := s.repo.List(ctx, s.userID)
	if err != nil {
		s.logger.Error("failed to load todos", "userID", s.userID, "error", err)
		s.mutate(func() {
			s.items = nil
			s.loading = false
			s.setNotice(domain.ErrorUnableToLoad)
		})
		return &OpError{Op: OpLoad, Kind: domain.ErrorUnableToLoad, Err: err}
	}

	s.logger.Info("loaded todos", "count", len(items))
	s.mutate(func() {
		s.items = dedupe(items)
		s.loading = false
	})
	return nil
}

// Create validates the title, shows a placeholder while the request is in
// flight and appends the created item on success. The placeholder is
// removed whatever the outcome.
func (s *TodoService) Create(ctx context.Context, title string) (domain.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		s.SetError(domain.ErrorTitleShouldNotBeEmpty)
		return domain.Item{}, &OpError{Op: OpCreate, Kind: domain.ErrorTitleShouldNotBeEmpty, Err: domain.ErrEmptyTitle}
	}

	draft := domain.Draft{UserID: s.userID, Title: title, Completed: false}
	s.mutate(func() {
		s.markProcessing(domain.PendingID)
		s.pending = &draft
	})

	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		kind := classify(err, domain.ErrorUnableToAdd)
		s.logger.Error("failed to create todo", "title", title, "error", err)
		s.mutate(func() {
			s.clearPending()
			s.setNotice(kind)
		})
		return domain.Item{}, &OpError{Op: OpCreate, Kind: kind, Err: err}
	}

	s.logger.Info("created todo", "id", created.ID)
	s.mutate(func() {
		s.items = upsert(s.items, created)
		s.clearPending()
	})
	return created, nil
}

// clearPending drops the placeholder once no creation is in flight
func (s *TodoService) clearPending() {
	s.unmarkProcessing(domain.PendingID)
	if s.processing[domain.PendingID] == 0 {
		s.pending = nil
	}
}

// Toggle flips the completion of a todo. Unknown ids are ignored.
func (s *TodoService) Toggle(ctx context.Context, id int) error {
	item, ok := s.find(id)
	if !ok {
		return nil
	}
	completed := !item.Completed
	return s.Update(ctx, id, domain.Patch{Completed: &completed}, domain.ErrorUnableToUpdate)
}

// Rename sets a new trimmed title. An empty title is rejected without a
// request; an unchanged title is a no-op.
func (s *TodoService) Rename(ctx context.Context, id int, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		s.SetError(domain.ErrorTitleShouldNotBeEmpty)
		return &OpError{Op: OpRename, ID: id, Kind: domain.ErrorTitleShouldNotBeEmpty, Err: domain.ErrEmptyTitle}
	}

	if item, ok := s.find(id); ok && item.Title == title {
		return nil
	}

	return s.Update(ctx, id, domain.Patch{Title: &title}, domain.ErrorUnableToUpdate)
}

// Update sends a partial update and replaces the item in place on success.
// On failure the fallback kind (or Unknown) is shown and an *OpError returned.
func (s *TodoService) Update(ctx context.Context, id int, patch domain.Patch, fallback domain.ErrorKind) error {
	s.mutate(func() { s.markProcessing(id) })

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		kind := classify(err, fallback)
		s.logger.Error("failed to update todo", "id", id, "patch", patch.String(), "error", err)
		s.mutate(func() {
			s.unmarkProcessing(id)
			s.setNotice(kind)
		})
		return &OpError{Op: OpUpdate, ID: id, Kind: kind, Err: err}
	}

	s.logger.Debug("updated todo", "id", id, "patch", patch.String())
	s.mutate(func() {
		s.items = replace(s.items, updated)
		s.unmarkProcessing(id)
	})
	return nil
}

// ToggleAll completes every todo, or reopens them all when all are already
// completed. Updates run concurrently; each failure is recorded
// independently and does not stop the others.
func (s *TodoService) ToggleAll(ctx context.Context) error {
	snap := s.Snapshot()
	target := !snap.AllCompleted()

	var (
		wg   conc.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, item := range snap.Items {
		if item.Completed == target {
			continue
		}
		wg.Go(func() {
			completed := target
			if err := s.Update(ctx, item.ID, domain.Patch{Completed: &completed}, domain.ErrorUnableToUpdate); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	return errors.Join(errs...)
}

// Delete removes a todo on the server and, on success, from the list
func (s *TodoService) Delete(ctx context.Context, id int) DeleteResult {
	return s.deleteOne(ctx, id, false)
}

// deleteOne issues a delete tracked in the processing set. A single delete
// drops the item and raises its own error. In bulk mode the caller folds
// the outcomes into one state change.
func (s *TodoService) deleteOne(ctx context.Context, id int, bulk bool) DeleteResult {
	s.mutate(func() { s.markProcessing(id) })

	if err := s.repo.Delete(ctx, id); err != nil {
		kind := classify(err, domain.ErrorUnableToDelete)
		s.logger.Error("failed to delete todo", "id", id, "error", err)
		s.mutate(func() {
			s.unmarkProcessing(id)
			if !bulk {
				s.setNotice(kind)
			}
		})
		return DeleteResult{ID: id, Success: false, Err: &OpError{Op: OpDelete, ID: id, Kind: kind, Err: err}}
	}

	s.logger.Info("deleted todo", "id", id)
	s.mutate(func() {
		s.unmarkProcessing(id)
		if !bulk {
			s.items = removeIDs(s.items, []int{id})
		}
	})
	return DeleteResult{ID: id, Success: true, Refocus: !bulk}
}

// ClearCompleted deletes every completed todo concurrently. Exactly the
// successful deletes are removed from the list; failures stay in place and
// raise UnableToDelete.
func (s *TodoService) ClearCompleted(ctx context.Context) ClearResult {
	var completed []domain.Item
	for _, item := range s.Snapshot().Items {
		if item.Completed {
			completed = append(completed, item)
		}
	}

	// One goroutine per delete; the default iterator caps at GOMAXPROCS
	deletes := iter.Mapper[domain.Item, DeleteResult]{MaxGoroutines: max(len(completed), 1)}
	results := deletes.Map(completed, func(item *domain.Item) DeleteResult {
		return s.deleteOne(ctx, item.ID, true)
	})

	res := ClearResult{Refocus: true}
	for _, r := range results {
		if r.Success {
			res.Deleted = append(res.Deleted, r.ID)
		} else {
			res.Failed = append(res.Failed, r.ID)
		}
	}

	if len(res.Deleted) > 0 || len(res.Failed) > 0 {
		s.mutate(func() {
			s.items = removeIDs(s.items, res.Deleted)
			if len(res.Failed) > 0 {
				s.setNotice(domain.ErrorUnableToDelete)
			}
		})
	}

	if len(res.Failed) > 0 {
		s.logger.Warn("clear completed partially failed", "deleted", len(res.Deleted), "failed", len(res.Failed))
	}
	return res
}

// === List helpers (pure) ===

// upsert appends item, or replaces an existing item with the same id
func upsert(items []domain.Item, item domain.Item) []domain.Item {
	for i := range items {
		if items[i].ID == item.ID {
			return replace(items, item)
		}
	}
	out := make([]domain.Item, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

// replace swaps the item with the same id, keeping order. Missing ids are
// not inserted.
func replace(items []domain.Item, item domain.Item) []domain.Item {
	out := make([]domain.Item, len(items))
	for i, existing := range items {
		if existing.ID == item.ID {
			out[i] = item
		} else {
			out[i] = existing
		}
	}
	return out
}

func removeIDs(items []domain.Item, ids []int) []domain.Item {
	if len(ids) == 0 {
		return items
	}
	drop := make(map[int]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if !drop[item.ID] {
			out = append(out, item)
		}
	}
	return out
}

// dedupe keeps the last occurrence of each id at the position of the first
func dedupe(items []domain.Item) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	index := make(map[int]int, len(items))
	for _, item := range items {
		if i, ok := index[item.ID]; ok {
			out[i] = item
			continue
		}
		index[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}
