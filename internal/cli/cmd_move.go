package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/mcgareyconsulting/milehigh-sub001/internal/board"
)

func (a *app) moveCommand() *Command {
	flags := flag.NewFlagSet("move", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "move <id> <target-id>",
		Short: "Reorder an item onto another item's position",
		Long: "Perform a drag gesture: the item takes the target's rank within\n" +
			"their shared assignee group (before the target when moving up,\n" +
			"after it when moving down) and the group's regular sequence\n" +
			"renumbers to 1..N. A drop across two different groups is a\n" +
			"silent no-op.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return ErrIDRequired
			}

			if len(args) < 2 {
				return ErrTargetRequired
			}

			return a.withController(ctx, func(ctrl *board.Controller) error {
				return ctrl.Move(ctx, args[0], args[1])
			})
		},
	}
}

func (a *app) bumpCommand() *Command {
	flags := flag.NewFlagSet("bump", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "bump <id>",
		Short: "Promote an item to the top of its group",
		Long: "Insert the item into an urgent slot ahead of its group's regular\n" +
			"queue. The first bump in a group takes 0.9; later bumps walk the\n" +
			"ladder down toward 0.1, and once all nine urgent slots are taken\n" +
			"the item lands at rank 1 instead.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return ErrIDRequired
			}

			return a.withController(ctx, func(ctrl *board.Controller) error {
				return ctrl.Bump(ctx, args[0])
			})
		},
	}
}

func (a *app) setCommand() *Command {
	flags := flag.NewFlagSet("set", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "set <id> <value|->",
		Short: "Set or clear an item's order key directly",
		Long: "Explicitly edit the order field. A dash or empty value clears it\n" +
			"(the item becomes unordered). Zero, negative, and non-numeric\n" +
			"values are rejected before anything is written.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return ErrIDRequired
			}

			if len(args) < 2 {
				return ErrValueRequired
			}

			return a.withController(ctx, func(ctrl *board.Controller) error {
				return ctrl.SetOrder(ctx, args[0], args[1])
			})
		},
	}
}
