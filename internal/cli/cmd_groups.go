package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/mcgareyconsulting/milehigh-sub001/internal/board"
)

func (a *app) groupsCommand() *Command {
	flags := flag.NewFlagSet("groups", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "groups",
		Short: "Summarize ordering groups by assignee",
		Long: "Show each ordering group with its urgent, regular and unordered\n" +
			"item counts. Joint assignments form their own groups and are\n" +
			"marked as not reorderable.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return a.withController(ctx, func(ctrl *board.Controller) error {
				printGroups(o, ctrl.Snapshot().Items)

				return nil
			})
		},
	}
}
