package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvu/taskpad/internal/model"
	"github.com/mvu/taskpad/internal/view"
)

var baseTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func task(title string, opts ...func(*model.Task)) model.Task {
	t := model.Task{
		ID:        title,
		Title:     title,
		CreatedAt: baseTime,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func createdAt(ts time.Time) func(*model.Task) {
	return func(t *model.Task) { t.CreatedAt = ts }
}

func due(ts time.Time) func(*model.Task) {
	return func(t *model.Task) { t.DueDate = &ts }
}

func completed() func(*model.Task) {
	return func(t *model.Task) {
		t.Completed = true
		done := t.CreatedAt.Add(time.Hour)
		t.CompletedAt = &done
	}
}

func withDesc(desc string) func(*model.Task) {
	return func(t *model.Task) { t.Description = desc }
}

func titles(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestSortAlphabeticalIsCaseInsensitive(t *testing.T) {
	tasks := []model.Task{task("banana"), task("Apple"), task("cherry")}

	sorted := view.Sorted(tasks, model.SortAlphabetical)

	assert.Equal(t, []string{"Apple", "banana", "cherry"}, titles(sorted))
	assert.Equal(t, []string{"banana", "Apple", "cherry"}, titles(tasks),
		"input must not be mutated")
}

func TestSortByDueDateNullsLast(t *testing.T) {
	tasks := []model.Task{
		task("march", due(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))),
		task("none"),
		task("january", due(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))),
	}

	sorted := view.Sorted(tasks, model.SortByDueDate)

	assert.Equal(t, []string{"january", "march", "none"}, titles(sorted))
}

func TestSortByDueDateKeepsUndatedOrder(t *testing.T) {
	tasks := []model.Task{
		task("undated-a"),
		task("dated", due(baseTime)),
		task("undated-b"),
	}

	sorted := view.Sorted(tasks, model.SortByDueDate)

	assert.Equal(t, []string{"dated", "undated-a", "undated-b"}, titles(sorted))
}

func TestSortByDateNewestFirst(t *testing.T) {
	tasks := []model.Task{
		task("old", createdAt(baseTime)),
		task("new", createdAt(baseTime.Add(2*time.Hour))),
		task("mid", createdAt(baseTime.Add(time.Hour))),
	}

	sorted := view.Sorted(tasks, model.SortByDate)

	assert.Equal(t, []string{"new", "mid", "old"}, titles(sorted))
}

func TestSortByCompletedGroupsStable(t *testing.T) {
	tasks := []model.Task{
		task("done-a", completed()),
		task("open-a"),
		task("done-b", completed()),
		task("open-b"),
	}

	sorted := view.Sorted(tasks, model.SortByCompleted)

	assert.Equal(t, []string{"open-a", "open-b", "done-a", "done-b"}, titles(sorted))
}

func TestSortIsIdempotent(t *testing.T) {
	tasks := []model.Task{
		task("banana"),
		task("Apple"),
		task("cherry"),
		task("apricot"),
	}

	for _, opt := range []model.SortOption{
		model.SortByDate, model.SortByDueDate,
		model.SortAlphabetical, model.SortByCompleted,
	} {
		once := view.Sorted(tasks, opt)
		twice := view.Sorted(once, opt)
		assert.Equal(t, titles(once), titles(twice), "option %s", opt)
	}
}

func TestDerivedSubsets(t *testing.T) {
	now := baseTime.Add(24 * time.Hour)
	tasks := []model.Task{
		task("open-overdue", due(baseTime)),
		task("open-future", due(now.Add(time.Hour))),
		task("done-past-due", due(baseTime), completed()),
		task("open-undated"),
	}

	assert.Equal(t, []string{"done-past-due"}, titles(view.Completed(tasks)))
	assert.Equal(t,
		[]string{"open-overdue", "open-future", "open-undated"},
		titles(view.Incomplete(tasks)))
	assert.Equal(t, []string{"open-overdue"}, titles(view.Overdue(tasks, now)))
}

func TestApplySearchMatchesTitleOrDescription(t *testing.T) {
	now := baseTime
	tasks := []model.Task{
		task("Buy groceries"),
		task("Call mom"),
		task("Errands", withDesc("pick up groceries on the way home")),
	}

	got := view.Apply(tasks, view.FilterAll, "groc", now)
	assert.Equal(t, []string{"Buy groceries", "Errands"}, titles(got))

	got = view.Apply(tasks, view.FilterAll, "GROC", now)
	assert.Equal(t, []string{"Buy groceries", "Errands"}, titles(got), "search is case-insensitive")
}

func TestApplyFilterThenSearch(t *testing.T) {
	now := baseTime.Add(24 * time.Hour)
	tasks := []model.Task{
		task("buy milk", due(baseTime)),
		task("buy stamps", completed()),
		task("call mom", due(baseTime)),
	}

	got := view.Apply(tasks, view.FilterOverdue, "buy", now)
	assert.Equal(t, []string{"buy milk"}, titles(got))
}

func TestApplyEmptyResultIsValid(t *testing.T) {
	got := view.Apply([]model.Task{task("only task")}, view.FilterCompleted, "", baseTime)
	require.NotNil(t, got)
	assert.Empty(t, got)
}
