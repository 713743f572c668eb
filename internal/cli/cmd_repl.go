package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/mcgareyconsulting/milehigh-sub001/internal/board"
)

func (a *app) replCommand() *Command {
	flags := flag.NewFlagSet("repl", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "repl",
		Short: "Interactive board session",
		Long: "Open the board in an interactive loop. The store stays open and\n" +
			"the filter/sort state persists across commands; 'sort' cycles a\n" +
			"column through ascending, descending and off, like clicking a\n" +
			"column header. Type 'help' inside the session for commands.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return a.withController(ctx, func(ctrl *board.Controller) error {
				return runRepl(ctx, o, ctrl)
			})
		},
	}
}

func runRepl(ctx context.Context, o *IO, ctrl *board.Controller) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("subboard> ")
		if err != nil {
			// Ctrl-C/Ctrl-D end the session.
			if errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}

			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)

		if input == "exit" || input == "quit" || input == "q" {
			return nil
		}

		err = dispatchRepl(ctx, o, ctrl, strings.Fields(input))
		if err != nil {
			o.ErrPrintln("error:", err)
		}
	}
}

var errReplUsage = errors.New("usage")

func dispatchRepl(ctx context.Context, o *IO, ctrl *board.Controller, words []string) error {
	switch words[0] {
	case "ls":
		printTable(o, ctrl.Items())

		return nil
	case "groups":
		printGroups(o, ctrl.Snapshot().Items)

		return nil
	case "move":
		if len(words) < 3 {
			return fmt.Errorf("%w: move <id> <target-id>", errReplUsage)
		}

		return ctrl.Move(ctx, words[1], words[2])
	case "bump":
		if len(words) < 2 {
			return fmt.Errorf("%w: bump <id>", errReplUsage)
		}

		return ctrl.Bump(ctx, words[1])
	case "set":
		if len(words) < 3 {
			return fmt.Errorf("%w: set <id> <value|->", errReplUsage)
		}

		return ctrl.SetOrder(ctx, words[1], words[2])
	case "sort":
		if len(words) < 2 {
			return fmt.Errorf("%w: sort <column>", errReplUsage)
		}

		if !board.IsValidColumn(words[1]) {
			return fmt.Errorf("%w: %s", board.ErrUnknownColumn, words[1])
		}

		ctrl.ToggleSort(board.Column(words[1]))
		o.Println("sort:", sortDescription(ctrl.Sorting()))

		return nil
	case "filter":
		return replFilter(o, ctrl, words[1:])
	case "refresh":
		return ctrl.Refresh(ctx)
	case "help":
		printReplHelp(o)

		return nil
	default:
		return fmt.Errorf("unknown command: %s (try 'help')", words[0])
	}
}

func sortDescription(state board.SortState) string {
	if !state.Active() {
		return "default order"
	}

	return fmt.Sprintf("%s %s", state.Column, state.Direction)
}

// replFilter updates one filter per argument (field=value) or clears all.
func replFilter(o *IO, ctrl *board.Controller, args []string) error {
	if len(args) == 1 && args[0] == "clear" {
		ctrl.SetFilters(board.FilterState{})
		o.Println("filters cleared")

		return nil
	}

	if len(args) == 0 {
		state := ctrl.Filters()
		o.Printf("assignee=%q manager=%q project=%q stage=%q search=%q\n",
			state.Assignee, state.Manager, state.Project, state.Stage, state.Search)

		return nil
	}

	state := ctrl.Filters()

	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("%w: filter <field>=<value> | filter clear", errReplUsage)
		}

		switch field {
		case "assignee":
			state.Assignee = value
		case "manager":
			state.Manager = value
		case "project":
			state.Project = value
		case "stage":
			state.Stage = value
		case "search":
			state.Search = value
		default:
			return fmt.Errorf("unknown filter field: %s", field)
		}
	}

	ctrl.SetFilters(state)

	return nil
}

func printGroups(o *IO, items []board.WorkItem) {
	for _, group := range board.Partition(items) {
		var urgent, regular, unordered int

		for _, item := range group.Items {
			switch item.Order.Classify() {
			case board.Urgent:
				urgent++
			case board.Regular:
				regular++
			case board.Unordered:
				unordered++
			}
		}

		marker := ""
		if group.Key.Joint() {
			marker = " (joint, not reorderable)"
		}

		o.Printf("%s%s: %d urgent, %d regular, %d unordered\n",
			group.Key.Canonical(), marker, urgent, regular, unordered)
	}
}

func printReplHelp(o *IO) {
	o.Println("Commands:")
	o.Println("  ls                       Show the board in display order")
	o.Println("  groups                   Summarize ordering groups")
	o.Println("  move <id> <target-id>    Reorder an item onto another's position")
	o.Println("  bump <id>                Promote an item to the top of its group")
	o.Println("  set <id> <value|->       Set or clear an order key")
	o.Println("  sort <column>            Cycle column sort: asc -> desc -> off")
	o.Println("  filter <field>=<value>   Add a filter (filter clear resets)")
	o.Println("  refresh                  Re-fetch the board")
	o.Println("  exit / quit / q          Leave the session")
}
