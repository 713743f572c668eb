package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tailscale/hujson"

	"github.com/mcgareyconsulting/milehigh-sub001/internal/board"
)

// fieldAliases maps the machine and display spellings the source data uses
// for each logical field onto its canonical name. Aliasing is resolved here,
// once, at ingestion; nothing downstream ever does a dual-key lookup.
var fieldAliases = map[string]string{
	"id":               "id",
	"item_id":          "id",
	"assignee":         "assignee",
	"current_assignee": "assignee",
	"currently with":   "assignee",
	"currently_with":   "assignee",
	"manager":          "manager",
	"project_manager":  "manager",
	"pm":               "manager",
	"project":          "project",
	"job_name":         "project",
	"stage":            "stage",
	"status_stage":     "stage",
	"job":              "job_number",
	"job_number":       "job_number",
	"job #":            "job_number",
	"release":          "release_number",
	"release_number":   "release_number",
	"release #":        "release_number",
	"title":            "title",
	"description":      "title",
	"status":           "status",
	"notes":            "notes",
	"due":              "due_date",
	"due_date":         "due_date",
	"date_due":         "due_date",
	"updated":          "updated_at",
	"updated_at":       "updated_at",
	"last_updated":     "updated_at",
	"order":            "order_key",
	"order_key":        "order_key",
	"priority_order":   "order_key",
}

// canonicalField resolves one raw column name, tolerating case and
// surrounding whitespace. Unknown columns map to "".
func canonicalField(raw string) string {
	return fieldAliases[strings.ToLower(strings.TrimSpace(raw))]
}

// ImportJSON ingests a JSONC document holding an array of row objects and
// upserts each as a WorkItem. Rows may use any known alias for a column;
// an order value goes through the lenient parse, so junk in that column
// ingests as unordered rather than failing the whole file. Returns the
// number of rows imported.
func (s *Store) ImportJSON(ctx context.Context, data []byte) (int, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return 0, fmt.Errorf("invalid JSONC: %w", err)
	}

	var rows []map[string]any

	err = json.Unmarshal(standardized, &rows)
	if err != nil {
		return 0, fmt.Errorf("invalid import document: %w", err)
	}

	count := 0

	for pos, row := range rows {
		item, rowErr := itemFromRow(row)
		if rowErr != nil {
			return count, fmt.Errorf("row %d: %w", pos, rowErr)
		}

		err = s.Upsert(ctx, item)
		if err != nil {
			return count, fmt.Errorf("row %d: %w", pos, err)
		}

		count++
	}

	return count, nil
}

func itemFromRow(row map[string]any) (board.WorkItem, error) {
	fields := make(map[string]string, len(row))

	for raw, value := range row {
		canon := canonicalField(raw)
		if canon == "" {
			continue
		}

		fields[canon] = stringValue(value)
	}

	if fields["id"] == "" {
		return board.WorkItem{}, ErrMissingID
	}

	item := board.WorkItem{
		ID:            fields["id"],
		Assignee:      fields["assignee"],
		Manager:       fields["manager"],
		Project:       fields["project"],
		Stage:         fields["stage"],
		JobNumber:     fields["job_number"],
		ReleaseNumber: fields["release_number"],
		Title:         fields["title"],
		Status:        fields["status"],
		Notes:         fields["notes"],
		Order:         board.ParseOrderKey(fields["order_key"]),
	}

	if raw := fields["due_date"]; raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			item.DueDate = parsed
		}
	}

	if raw := fields["updated_at"]; raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			item.UpdatedAt = parsed
		}
	}

	return item, nil
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v), "0"), ".")
	case bool:
		if v {
			return "true"
		}

		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
