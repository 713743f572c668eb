package board

import (
	"time"
)

// WorkItem is one submittal/job row on the board. Fields other than ID,
// Assignee and Order are opaque payload as far as ordering is concerned;
// the pipeline only reads them through Field for filtering and sorting.
// Field aliasing in the source data (machine name vs display name for the
// same concept) is resolved once at ingestion; the engine exposes exactly
// one accessor per logical field.
type WorkItem struct {
	ID            string
	Assignee      string // raw group key; comma-joined for joint assignment
	Manager       string
	Project       string
	Stage         string
	JobNumber     string
	ReleaseNumber string
	Title         string
	Status        string
	Notes         string
	DueDate       time.Time // zero when unset
	UpdatedAt     time.Time
	Order         OrderKey
}

// Snapshot is one immutable read of the external item collection. All
// derived structures (groups, filtered and sorted lists) are pure functions
// over a snapshot; consistency comes from recomputing against the latest
// fetch, never from mutating a snapshot in place.
type Snapshot struct {
	Items []WorkItem
	AsOf  time.Time
}

// Column identifies a sortable/filterable logical field.
type Column string

// Board columns.
const (
	ColAssignee Column = "assignee"
	ColManager  Column = "manager"
	ColProject  Column = "project"
	ColStage    Column = "stage"
	ColJob      Column = "job"
	ColRelease  Column = "release"
	ColTitle    Column = "title"
	ColStatus   Column = "status"
	ColDue      Column = "due"
	ColUpdated  Column = "updated"
	ColOrder    Column = "order"
)

// Columns lists every sortable column in display order.
var Columns = []Column{
	ColAssignee, ColManager, ColProject, ColStage, ColJob,
	ColRelease, ColTitle, ColStatus, ColDue, ColUpdated, ColOrder,
}

// IsValidColumn reports whether name maps to a known column.
func IsValidColumn(name string) bool {
	for _, col := range Columns {
		if string(col) == name {
			return true
		}
	}

	return false
}

const dateLayout = "2006-01-02"

// Field returns the item's value for a logical column as a display string.
// Unset dates render empty so null-last comparison applies to them.
func (w WorkItem) Field(col Column) string {
	switch col {
	case ColAssignee:
		return w.Assignee
	case ColManager:
		return w.Manager
	case ColProject:
		return w.Project
	case ColStage:
		return w.Stage
	case ColJob:
		return w.JobNumber
	case ColRelease:
		return w.ReleaseNumber
	case ColTitle:
		return w.Title
	case ColStatus:
		return w.Status
	case ColDue:
		if w.DueDate.IsZero() {
			return ""
		}

		return w.DueDate.Format(dateLayout)
	case ColUpdated:
		if w.UpdatedAt.IsZero() {
			return ""
		}

		return w.UpdatedAt.Format(time.RFC3339)
	case ColOrder:
		return w.Order.String()
	default:
		return ""
	}
}
