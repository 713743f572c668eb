package board

import (
	"sort"
	"strings"
)

// groupSeparator joins multiple simultaneous assignees into one raw key.
const groupSeparator = ","

// GroupKey is the identity of an ordering group: either a single assignee
// or a joint (multi-assignee) key. Joint items are never drag-reorderable
// and never mix into a single assignee's ordering group.
type GroupKey struct {
	raw   string
	names []string
}

// ParseGroupKey normalizes a raw assignee field into a GroupKey. Names are
// split on commas and trimmed; the raw comma-joined string stays the atomic
// group identity.
func ParseGroupKey(raw string) GroupKey {
	parts := strings.Split(raw, groupSeparator)

	names := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}

	return GroupKey{raw: strings.TrimSpace(raw), names: names}
}

// Joint reports whether the key carries multiple simultaneous assignees.
func (g GroupKey) Joint() bool {
	return len(g.names) > 1
}

// Names returns the individual assignee names. For joint keys the names are
// returned sorted so two spellings of the same joint assignment compare equal.
func (g GroupKey) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)

	if len(out) > 1 {
		sort.Strings(out)
	}

	return out
}

// Contains reports whether name equals any comma-split, trimmed member.
func (g GroupKey) Contains(name string) bool {
	for _, n := range g.names {
		if n == name {
			return true
		}
	}

	return false
}

// Canonical returns the atomic string identity used to partition items.
func (g GroupKey) Canonical() string {
	return g.raw
}

// Reorderable reports whether the item is eligible for drag reordering.
// Joint-assignee items are excluded from single-assignee ordering groups
// and cannot be dragged.
func Reorderable(item WorkItem) bool {
	return !ParseGroupKey(item.Assignee).Joint()
}

// Group is one ordering group: the items sharing a group key, in the order
// Partition saw them.
type Group struct {
	Key   GroupKey
	Items []WorkItem
}

// Partition splits items into ordering groups keyed by the raw assignee
// field. Group order follows first appearance in the input; items keep
// their input order within each group. The input is not mutated.
func Partition(items []WorkItem) []Group {
	index := make(map[string]int, len(items))
	groups := make([]Group, 0, len(items))

	for _, item := range items {
		key := ParseGroupKey(item.Assignee)
		canon := key.Canonical()

		at, seen := index[canon]
		if !seen {
			at = len(groups)
			index[canon] = at

			groups = append(groups, Group{Key: key})
		}

		groups[at].Items = append(groups[at].Items, item)
	}

	return groups
}

// GroupOf returns the canonical group key for an item.
func GroupOf(item WorkItem) string {
	return ParseGroupKey(item.Assignee).Canonical()
}

// SortedGroup returns the group's items in canonical group order: ascending
// order key with nulls last, ties broken by ID so transient duplicate keys
// (possible between a write and the store-side renumber) still yield a
// stable sequence.
func SortedGroup(items []WorkItem) []WorkItem {
	out := make([]WorkItem, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Order.Compare(out[j].Order); c != 0 {
			return c < 0
		}

		return out[i].ID < out[j].ID
	})

	return out
}
