package board

import (
	"strings"
)

// FilterState is the set of active field filters, threaded explicitly
// through the pipeline. The zero value matches everything. Filter state is
// pure in-memory UI state; it is never persisted.
type FilterState struct {
	Assignee string
	Manager  string
	Project  string
	Stage    string
	Search   string // substring match over job and release numbers
}

// Active reports whether any filter is set.
func (f FilterState) Active() bool {
	return f != FilterState{}
}

// ApplyFilters returns the items satisfying every active filter (logical
// AND). Equality filters compare trimmed values exactly, case-sensitive;
// the assignee filter also matches joint-assignee items when the selected
// name equals any comma-split member. The input is never mutated and the
// operation is idempotent.
func ApplyFilters(items []WorkItem, state FilterState) []WorkItem {
	if !state.Active() {
		out := make([]WorkItem, len(items))
		copy(out, items)

		return out
	}

	out := make([]WorkItem, 0, len(items))

	for _, item := range items {
		if matchesFilters(item, state) {
			out = append(out, item)
		}
	}

	return out
}

func matchesFilters(item WorkItem, state FilterState) bool {
	if state.Assignee != "" && !matchesAssignee(item, state.Assignee) {
		return false
	}

	if state.Manager != "" && strings.TrimSpace(item.Manager) != strings.TrimSpace(state.Manager) {
		return false
	}

	if state.Project != "" && strings.TrimSpace(item.Project) != strings.TrimSpace(state.Project) {
		return false
	}

	if state.Stage != "" && strings.TrimSpace(item.Stage) != strings.TrimSpace(state.Stage) {
		return false
	}

	if state.Search != "" && !matchesSearch(item, state.Search) {
		return false
	}

	return true
}

// matchesAssignee matches a single selected name against the item's group
// key: exact for single assignment, any-member for joint assignment.
func matchesAssignee(item WorkItem, selected string) bool {
	key := ParseGroupKey(item.Assignee)
	want := strings.TrimSpace(selected)

	if !key.Joint() {
		return key.Canonical() == want
	}

	return key.Contains(want)
}

func matchesSearch(item WorkItem, term string) bool {
	needle := strings.TrimSpace(term)

	return strings.Contains(item.JobNumber, needle) ||
		strings.Contains(item.ReleaseNumber, needle)
}
