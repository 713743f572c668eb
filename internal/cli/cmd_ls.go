package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	flag "github.com/spf13/pflag"

	"github.com/mcgareyconsulting/milehigh-sub001/internal/board"
)

const defaultLimit = 200

func (a *app) lsCommand() *Command {
	flags := flag.NewFlagSet("ls", flag.ContinueOnError)

	assignee := flags.String("assignee", "", "Only items currently with this assignee")
	manager := flags.String("manager", "", "Only items under this project manager")
	project := flags.String("project", "", "Only items in this project")
	stage := flags.String("stage", "", "Only items in this stage")
	search := flags.String("search", "", "Substring match on job/release numbers")
	sortCol := flags.String("sort", "", "Sort column (assignee|manager|project|stage|job|release|title|status|due|updated|order)")
	desc := flags.Bool("desc", false, "Sort descending (with --sort)")
	limit := flags.Int("limit", defaultLimit, "Maximum items to show")
	offset := flags.Int("offset", 0, "Skip first N items")

	return &Command{
		Flags: flags,
		Usage: "ls [flags]",
		Short: "List the board in display order",
		Long: "List work items after filtering and sorting. Without --sort the\n" +
			"built-in order applies: grouped by assignee (joint assignments\n" +
			"last), urgent slots first within each group, then the regular\n" +
			"1..N sequence, then unordered items.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			if *limit < 0 {
				return fmt.Errorf("%w: --limit must be non-negative", errBadFlag)
			}

			if *offset < 0 {
				return fmt.Errorf("%w: --offset must be non-negative", errBadFlag)
			}

			sorting := board.SortState{}

			if *sortCol != "" {
				if !board.IsValidColumn(*sortCol) {
					return fmt.Errorf("%w: %s", board.ErrUnknownColumn, *sortCol)
				}

				sorting = board.SortState{Column: board.Column(*sortCol), Direction: board.Ascending}
				if *desc {
					sorting.Direction = board.Descending
				}
			}

			filters := board.FilterState{
				Assignee: *assignee,
				Manager:  *manager,
				Project:  *project,
				Stage:    *stage,
				Search:   *search,
			}

			return a.withController(ctx, func(ctrl *board.Controller) error {
				ctrl.SetFilters(filters)
				ctrl.SetSorting(sorting)

				items := window(ctrl.Items(), *offset, *limit)

				printTable(o, items)

				return nil
			})
		},
	}
}

func window(items []board.WorkItem, offset, limit int) []board.WorkItem {
	if offset >= len(items) {
		return nil
	}

	items = items[offset:]

	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	return items
}

var tableColumns = []struct {
	header string
	col    board.Column
}{
	{header: "ID", col: ""},
	{header: "ORDER", col: board.ColOrder},
	{header: "ASSIGNEE", col: board.ColAssignee},
	{header: "JOB", col: board.ColJob},
	{header: "REL", col: board.ColRelease},
	{header: "STAGE", col: board.ColStage},
	{header: "DUE", col: board.ColDue},
	{header: "TITLE", col: board.ColTitle},
}

// printTable renders an aligned table, padding cells by display width so
// wide runes in titles and names do not skew the columns.
func printTable(o *IO, items []board.WorkItem) {
	if len(items) == 0 {
		return
	}

	rows := make([][]string, 0, len(items)+1)

	header := make([]string, len(tableColumns))
	for pos, col := range tableColumns {
		header[pos] = col.header
	}

	rows = append(rows, header)

	for _, item := range items {
		row := make([]string, len(tableColumns))

		for pos, col := range tableColumns {
			if col.col == "" {
				row[pos] = item.ID

				continue
			}

			row[pos] = item.Field(col.col)
		}

		rows = append(rows, row)
	}

	widths := make([]int, len(tableColumns))

	for _, row := range rows {
		for pos, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[pos] {
				widths[pos] = w
			}
		}
	}

	for _, row := range rows {
		var line strings.Builder

		for pos, cell := range row {
			if pos > 0 {
				line.WriteString("  ")
			}

			line.WriteString(cell)

			// No padding after the last column.
			if pos < len(row)-1 {
				line.WriteString(strings.Repeat(" ", widths[pos]-runewidth.StringWidth(cell)))
			}
		}

		o.Println(strings.TrimRight(line.String(), " "))
	}
}
