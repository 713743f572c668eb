package board

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Direction is a sort direction.
type Direction int

// Sort directions. Unsorted means the built-in composite sort applies.
const (
	Unsorted Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "none"
	}
}

// SortState is the single active column sort. The zero value means no
// column sort is active and DefaultSort drives the display order.
type SortState struct {
	Column    Column
	Direction Direction
}

// Toggle advances the per-column sort cycle: activating the same column
// steps unsorted -> ascending -> descending -> unsorted; activating a
// different column starts it at ascending.
func (s SortState) Toggle(col Column) SortState {
	if s.Column != col || s.Direction == Unsorted {
		return SortState{Column: col, Direction: Ascending}
	}

	if s.Direction == Ascending {
		return SortState{Column: col, Direction: Descending}
	}

	return SortState{}
}

// Active reports whether a column sort is in effect.
func (s SortState) Active() bool {
	return s.Direction != Unsorted
}

// dateLayouts are the display-value date forms CompareValues coerces.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
}

// CompareValues orders two display values: empty values last, otherwise
// numeric comparison when both coerce to numbers, chronological when both
// coerce to dates, and case-insensitive string comparison as the fallback.
// Descending flips the sign of the result.
func CompareValues(a, b string, dir Direction) int {
	result := compareRaw(strings.TrimSpace(a), strings.TrimSpace(b))

	if dir == Descending {
		return -result
	}

	return result
}

func compareRaw(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}

	numA, okA := parseNumber(a)
	numB, okB := parseNumber(b)

	if okA && okB {
		switch {
		case numA < numB:
			return -1
		case numA > numB:
			return 1
		default:
			return 0
		}
	}

	dateA, okA := parseDate(a)
	dateB, okB := parseDate(b)

	if okA && okB {
		switch {
		case dateA.Before(dateB):
			return -1
		case dateA.After(dateB):
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func parseNumber(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}

	return time.Time{}, false
}

// DefaultSort returns the built-in composite display order: single-assignee
// groups before joint groups and lexicographic by group key (joint items
// additionally by id), then order key ascending with nulls last, then most
// recent update first. Returns a new slice; the input is untouched.
func DefaultSort(items []WorkItem) []WorkItem {
	out := make([]WorkItem, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		return defaultLess(out[i], out[j])
	})

	return out
}

func defaultLess(a, b WorkItem) bool {
	if c := compareGroupKeys(a, b); c != 0 {
		return c < 0
	}

	if c := a.Order.Compare(b.Order); c != 0 {
		return c < 0
	}

	// Fresh activity surfaces first.
	return a.UpdatedAt.After(b.UpdatedAt)
}

// compareGroupKeys orders items by group: single-assignee groups first,
// then lexicographic group key, with id breaking ties between joint items.
func compareGroupKeys(a, b WorkItem) int {
	keyA := ParseGroupKey(a.Assignee)
	keyB := ParseGroupKey(b.Assignee)

	if keyA.Joint() != keyB.Joint() {
		if keyA.Joint() {
			return 1
		}

		return -1
	}

	if c := strings.Compare(keyA.Canonical(), keyB.Canonical()); c != 0 {
		return c
	}

	if keyA.Joint() {
		return strings.Compare(a.ID, b.ID)
	}

	return 0
}

// ColumnSort returns the items ordered by one column via CompareValues.
// Sorting by the assignee/project columns keeps the group discipline as
// the secondary key (joint groups last, then order key); every other
// column falls back to id so equal values stay in a stable order.
func ColumnSort(items []WorkItem, col Column, dir Direction) []WorkItem {
	out := make([]WorkItem, len(items))
	copy(out, items)

	grouped := col == ColAssignee || col == ColProject

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		if c := CompareValues(a.Field(col), b.Field(col), dir); c != 0 {
			return c < 0
		}

		if grouped {
			if c := compareGroupKeys(a, b); c != 0 {
				return c < 0
			}

			if c := a.Order.Compare(b.Order); c != 0 {
				return c < 0
			}

			return false
		}

		return a.ID < b.ID
	})

	return out
}

// Display runs the full pipeline: filters, then the active column sort or
// the built-in composite sort.
func Display(items []WorkItem, filters FilterState, sortState SortState) []WorkItem {
	filtered := ApplyFilters(items, filters)

	if sortState.Active() {
		return ColumnSort(filtered, sortState.Column, sortState.Direction)
	}

	return DefaultSort(filtered)
}
