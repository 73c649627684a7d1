// Package store owns the canonical in-memory task collection and preference
// state. Every mutation is applied to memory first and then written through
// to the persistence adapter by a background writer, so in-memory state is
// the source of truth and persisted state is eventually consistent with it.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mvu/taskpad/internal/model"
	"github.com/mvu/taskpad/internal/storage"
	"github.com/mvu/taskpad/internal/view"
)

// saveTimeout bounds a single write-through attempt.
const saveTimeout = 5 * time.Second

// writeReq is one pending write-through. A nil value with a non-nil barrier
// acts as a flush marker.
type writeReq struct {
	key     string
	value   []byte
	barrier chan struct{}
}

// Store is the sole owner and mutator of the canonical task collection and
// preference state.
type Store struct {
	adapter storage.Adapter
	log     *zap.Logger

	now   func() time.Time
	newID func() string

	mu     sync.Mutex
	tasks  []model.Task
	theme  model.Theme
	sortBy model.SortOption
	ready  bool

	writeCh chan writeReq
	done    chan struct{}
	closed  bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides id generation. Used in tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates a Store backed by the given adapter. The store is not usable
// until Initialize has been called.
func New(adapter storage.Adapter, log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		adapter: adapter,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.New().String() },
		theme:   model.ThemeLight,
		sortBy:  model.SortByDate,
		writeCh: make(chan writeReq, 64),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads persisted tasks, theme, and sort preference, then starts
// the background writer. Missing or corrupt data for any key falls back to
// that key's default independently; load failures never abort startup.
// Readiness flips exactly once.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return ErrAlreadyInitialized
	}

	s.tasks = s.loadTasks(ctx)
	s.theme = s.loadTheme(ctx)
	s.sortBy = s.loadSort(ctx)

	go s.writeLoop()

	s.ready = true
	s.log.Info("store initialized",
		zap.Int("tasks", len(s.tasks)),
		zap.String("theme", string(s.theme)),
		zap.String("sort", string(s.sortBy)),
	)
	return nil
}

// loadTasks reads the persisted task collection, returning an empty
// collection on absence or corruption.
func (s *Store) loadTasks(ctx context.Context) []model.Task {
	data, err := s.adapter.Load(ctx, storage.KeyTasks)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("loading tasks failed, starting empty", zap.Error(err))
		}
		return nil
	}

	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.log.Warn("persisted tasks corrupt, starting empty", zap.Error(err))
		return nil
	}
	return tasks
}

// loadTheme reads the persisted theme, returning light on absence,
// corruption, or an unknown value.
func (s *Store) loadTheme(ctx context.Context) model.Theme {
	data, err := s.adapter.Load(ctx, storage.KeyTheme)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("loading theme failed, using default", zap.Error(err))
		}
		return model.ThemeLight
	}

	theme := model.Theme(data)
	if !theme.Valid() {
		s.log.Warn("persisted theme invalid, using default",
			zap.String("value", string(data)))
		return model.ThemeLight
	}
	return theme
}

// loadSort reads the persisted sort preference, returning the date sort on
// absence, corruption, or an unknown value.
func (s *Store) loadSort(ctx context.Context) model.SortOption {
	data, err := s.adapter.Load(ctx, storage.KeySort)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("loading sort preference failed, using default", zap.Error(err))
		}
		return model.SortByDate
	}

	sortBy := model.SortOption(data)
	if !sortBy.Valid() {
		s.log.Warn("persisted sort preference invalid, using default",
			zap.String("value", string(data)))
		return model.SortByDate
	}
	return sortBy
}

// Ready reports whether Initialize has completed.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Close flushes pending writes and stops the background writer. The adapter
// itself is not closed; its owner does that.
func (s *Store) Close() error {
	s.mu.Lock()
	if !s.ready || s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.Flush()
	close(s.writeCh)
	<-s.done
	return nil
}

// AddTask constructs a task with a fresh id and the current timestamp and
// prepends it to the collection. It refuses with ErrCapacityExceeded when
// the collection already holds model.MaxTasks tasks. The title and
// description must already be validated by the caller.
func (s *Store) AddTask(
	title string,
	description string,
	dueDate *time.Time,
	priority *model.Priority,
) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return model.Task{}, ErrNotReady
	}
	if len(s.tasks) >= model.MaxTasks {
		return model.Task{}, ErrCapacityExceeded
	}

	task := model.Task{
		ID:          s.newID(),
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   s.now(),
	}
	if dueDate != nil {
		due := *dueDate
		task.DueDate = &due
	}
	if priority != nil {
		pr := *priority
		task.Priority = &pr
	}

	// Most recently added first.
	s.tasks = append([]model.Task{task}, s.tasks...)
	s.persistTasksLocked()

	return task, nil
}

// UpdateTask merges the patch onto the task matching id. It reports whether
// a task was found; an unknown id is a silent no-op and does not trigger a
// persistence write.
func (s *Store) UpdateTask(id string, patch model.TaskPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		patch.Apply(&s.tasks[i])
		s.persistTasksLocked()
		return true
	}
	return false
}

// DeleteTask removes the task matching id, reporting whether it existed.
// Deleting an absent id is a no-op and does not trigger a persistence write.
func (s *Store) DeleteTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		s.persistTasksLocked()
		return true
	}
	return false
}

// ToggleCompletion flips the completed flag of the task matching id,
// setting completedAt on false→true and clearing it on true→false. An
// unknown id is a silent no-op.
func (s *Store) ToggleCompletion(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		t := &s.tasks[i]
		t.Completed = !t.Completed
		if t.Completed {
			now := s.now()
			t.CompletedAt = &now
		} else {
			t.CompletedAt = nil
		}
		s.persistTasksLocked()
		return true
	}
	return false
}

// SetSortOption updates and persists the sort preference.
func (s *Store) SetSortOption(opt model.SortOption) error {
	if !opt.Valid() {
		return ErrInvalidSortOption
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortBy = opt
	s.enqueueLocked(storage.KeySort, []byte(opt))
	return nil
}

// SetTheme updates and persists the theme preference.
func (s *Store) SetTheme(theme model.Theme) error {
	if !theme.Valid() {
		return ErrInvalidTheme
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	s.enqueueLocked(storage.KeyTheme, []byte(theme))
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Store) ToggleTheme() model.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.theme == model.ThemeLight {
		s.theme = model.ThemeDark
	} else {
		s.theme = model.ThemeLight
	}
	s.enqueueLocked(storage.KeyTheme, []byte(s.theme))
	return s.theme
}

// Tasks returns a snapshot of the canonical collection in insertion order,
// most recently added first.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Task returns the task matching id, or false.
func (s *Store) Task(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Theme returns the current theme preference.
func (s *Store) Theme() model.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SortOption returns the current sort preference.
func (s *Store) SortOption() model.SortOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortBy
}

// Sorted returns the collection ordered by the active sort preference.
func (s *Store) Sorted() []model.Task {
	s.mu.Lock()
	tasks := make([]model.Task, len(s.tasks))
	copy(tasks, s.tasks)
	sortBy := s.sortBy
	s.mu.Unlock()

	return view.Sorted(tasks, sortBy)
}

// Filtered returns the sorted collection narrowed by the filter tag and an
// optional case-insensitive search query. An empty result is valid.
func (s *Store) Filtered(tag view.FilterTag, query string) []model.Task {
	return view.Apply(s.Sorted(), tag, query, s.now())
}

// Total returns the number of tasks in the canonical collection.
func (s *Store) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// CompletedCount returns the number of completed tasks.
func (s *Store) CompletedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// IncompleteCount returns the number of incomplete tasks.
func (s *Store) IncompleteCount() int {
	return s.Total() - s.CompletedCount()
}

// OverdueCount returns the number of incomplete tasks whose due date is
// strictly before now. Overdue is a function of wall-clock time and is
// recomputed on every call.
func (s *Store) OverdueCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for _, t := range s.tasks {
		if t.Overdue(now) {
			n++
		}
	}
	return n
}

// IsAtCapacity reports whether the collection is full.
func (s *Store) IsAtCapacity() bool {
	return s.Total() >= model.MaxTasks
}

// Flush blocks until every write enqueued before the call has been
// attempted. Used on shutdown and in tests.
func (s *Store) Flush() {
	barrier := make(chan struct{})
	s.writeCh <- writeReq{barrier: barrier}
	<-barrier
}

// persistTasksLocked serializes the collection and enqueues a write-through.
// Callers must hold s.mu.
func (s *Store) persistTasksLocked() {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		// Task fields are all JSON-serializable; this should not happen.
		s.log.Error("marshaling tasks failed, write-through skipped", zap.Error(err))
		return
	}
	s.enqueueLocked(storage.KeyTasks, data)
}

// enqueueLocked hands a write to the background writer without blocking the
// mutation path. Callers must hold s.mu; enqueue order matches mutation
// order, so the last write for a key always wins.
func (s *Store) enqueueLocked(key string, value []byte) {
	s.writeCh <- writeReq{key: key, value: value}
}

// writeLoop drains the write queue. Save failures are logged and not
// retried; in-memory state remains authoritative until the next successful
// save of the same key.
func (s *Store) writeLoop() {
	defer close(s.done)

	for req := range s.writeCh {
		if req.barrier != nil {
			close(req.barrier)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := s.adapter.Save(ctx, req.key, req.value)
		cancel()
		if err != nil {
			s.log.Warn("write-through failed",
				zap.String("key", req.key),
				zap.Error(err),
			)
		}
	}
}
