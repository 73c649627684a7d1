// Package view derives display-ready task sequences from the canonical
// collection. Every function is pure: input slices are never mutated and
// nothing is cached, since the collection is bounded by model.MaxTasks.
package view

import (
	"sort"
	"strings"
	"time"

	"github.com/mvu/taskpad/internal/model"
)

// FilterTag selects the base subset before search is applied.
type FilterTag string

const (
	FilterAll        FilterTag = "all"
	FilterIncomplete FilterTag = "incomplete"
	FilterCompleted  FilterTag = "completed"
	FilterOverdue    FilterTag = "overdue"
)

// Valid reports whether f is a known filter tag.
func (f FilterTag) Valid() bool {
	switch f {
	case FilterAll, FilterIncomplete, FilterCompleted, FilterOverdue:
		return true
	}
	return false
}

// Sorted returns a copy of tasks ordered by the given option. All sorts are
// stable: ties preserve the prior relative order.
func Sorted(tasks []model.Task, sortBy model.SortOption) []model.Task {
	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)

	switch sortBy {
	case model.SortAlphabetical:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
		})

	case model.SortByDueDate:
		// Tasks without a due date sort after all tasks that have one,
		// keeping their original relative order among themselves.
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i].DueDate, sorted[j].DueDate
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})

	case model.SortByCompleted:
		sort.SliceStable(sorted, func(i, j int) bool {
			return !sorted[i].Completed && sorted[j].Completed
		})

	default: // model.SortByDate
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}

	return sorted
}

// Completed returns the tasks with completed == true, preserving order.
func Completed(tasks []model.Task) []model.Task {
	return filter(tasks, func(t model.Task) bool { return t.Completed })
}

// Incomplete returns the tasks with completed == false, preserving order.
func Incomplete(tasks []model.Task) []model.Task {
	return filter(tasks, func(t model.Task) bool { return !t.Completed })
}

// Overdue returns the incomplete tasks whose due date is strictly before
// now, preserving order.
func Overdue(tasks []model.Task, now time.Time) []model.Task {
	return filter(tasks, func(t model.Task) bool { return t.Overdue(now) })
}

// Apply narrows a sorted sequence to the rendered list: first the base set
// selected by tag, then an optional case-insensitive substring match against
// title or description. An empty result is a valid state, not an error.
func Apply(sorted []model.Task, tag FilterTag, query string, now time.Time) []model.Task {
	var base []model.Task
	switch tag {
	case FilterIncomplete:
		base = Incomplete(sorted)
	case FilterCompleted:
		base = Completed(sorted)
	case FilterOverdue:
		base = Overdue(sorted, now)
	default:
		base = sorted
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return base
	}

	q := strings.ToLower(query)
	return filter(base, func(t model.Task) bool {
		return strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q)
	})
}

// filter returns the tasks satisfying keep, in order. It always returns a
// non-nil slice so an empty result is explicitly representable.
func filter(tasks []model.Task, keep func(model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
