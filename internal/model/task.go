package model

import "time"

// MaxTasks is the hard cap on the number of tasks the store will hold.
// Add operations at or above this count are refused; update, delete, and
// toggle remain permitted regardless of count.
const MaxTasks = 50

// Theme values for the display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme value.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// SortOption selects the comparator used to order the task list.
type SortOption string

const (
	// SortByDate orders by creation time, newest first. Default.
	SortByDate SortOption = "date"
	// SortByDueDate orders by due date ascending; tasks without a due date
	// sort after all tasks that have one.
	SortByDueDate SortOption = "dueDate"
	// SortAlphabetical orders by title, case-insensitive ascending.
	SortAlphabetical SortOption = "alphabetical"
	// SortByCompleted orders incomplete tasks before completed ones.
	SortByCompleted SortOption = "completed"
)

// Valid reports whether s is a known sort option.
func (s SortOption) Valid() bool {
	switch s {
	case SortByDate, SortByDueDate, SortAlphabetical, SortByCompleted:
		return true
	}
	return false
}

// Priority is an optional task weight. It is carried and persisted but not
// consumed by any derivation rule yet.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority value.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task is a single tracked item. JSON field names are the persisted wire
// format and must stay stable across versions.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
}

// Overdue reports whether the task is incomplete, has a due date, and that
// due date is strictly before now.
func (t Task) Overdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
}

// TaskPatch is a partial update applied to an existing task. Nil fields are
// left untouched; non-nil fields replace the current value.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *Priority

	// ClearDueDate removes an existing due date. It wins over DueDate.
	ClearDueDate bool
}

// Apply merges the patch onto t, field by field, new value winning when
// present. The id, creation time, and completion state are never touched
// by a patch.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	if p.Priority != nil {
		pr := *p.Priority
		t.Priority = &pr
	}
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil &&
		p.DueDate == nil && p.Priority == nil && !p.ClearDueDate
}
