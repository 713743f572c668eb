package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/mcgareyconsulting/milehigh-sub001/internal/board"
	"github.com/mcgareyconsulting/milehigh-sub001/internal/store"
)

func (a *app) importCommand() *Command {
	flags := flag.NewFlagSet("import", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "import <file>",
		Short: "Ingest board rows from a JSONC file",
		Long: "Read an array of row objects and upsert each as a work item.\n" +
			"Column names may use either the machine or the display spelling;\n" +
			"both resolve to the same canonical field at ingestion.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return ErrFileRequired
			}

			path := args[0]
			if !filepath.IsAbs(path) {
				path = filepath.Join(a.cfg.EffectiveCwd, path)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}

			return a.withStore(ctx, func(s *store.Store) error {
				count, importErr := s.ImportJSON(ctx, data)
				if importErr != nil {
					return importErr
				}

				o.Printf("imported %d items\n", count)

				return nil
			})
		},
	}
}

// exportRow is the JSON shape of one exported item.
type exportRow struct {
	ID            string `json:"id"`
	Assignee      string `json:"assignee"`
	Manager       string `json:"manager,omitempty"`
	Project       string `json:"project,omitempty"`
	Stage         string `json:"stage,omitempty"`
	JobNumber     string `json:"job_number,omitempty"`
	ReleaseNumber string `json:"release_number,omitempty"`
	Title         string `json:"title,omitempty"`
	Status        string `json:"status,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Due           string `json:"due_date,omitempty"`
	Updated       string `json:"updated_at,omitempty"`
	Order         string `json:"order_key,omitempty"`
}

func (a *app) exportCommand() *Command {
	flags := flag.NewFlagSet("export", flag.ContinueOnError)

	out := flags.String("out", "board.json", "Output file")

	return &Command{
		Flags: flags,
		Usage: "export [flags]",
		Short: "Write the board snapshot to a JSON file",
		Long: "Export every item in display order to a JSON array. The file is\n" +
			"written atomically; readers never observe a partial export.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			path := *out
			if !filepath.IsAbs(path) {
				path = filepath.Join(a.cfg.EffectiveCwd, path)
			}

			return a.withController(ctx, func(ctrl *board.Controller) error {
				items := ctrl.Items()

				rows := make([]exportRow, 0, len(items))

				for _, item := range items {
					row := exportRow{
						ID:            item.ID,
						Assignee:      item.Assignee,
						Manager:       item.Manager,
						Project:       item.Project,
						Stage:         item.Stage,
						JobNumber:     item.JobNumber,
						ReleaseNumber: item.ReleaseNumber,
						Title:         item.Title,
						Status:        item.Status,
						Notes:         item.Notes,
						Due:           item.Field(board.ColDue),
						Updated:       item.Field(board.ColUpdated),
					}

					if item.Order.Valid {
						row.Order = item.Order.String()
					}

					rows = append(rows, row)
				}

				data, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return fmt.Errorf("encode export: %w", err)
				}

				data = append(data, '\n')

				err = atomic.WriteFile(path, bytes.NewReader(data))
				if err != nil {
					return fmt.Errorf("write export: %w", err)
				}

				o.Printf("exported %d items to %s\n", len(rows), path)

				return nil
			})
		},
	}
}
