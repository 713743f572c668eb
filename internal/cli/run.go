// Package cli implements the subboard command line interface: the display
// pipeline, drag-style reorder gestures, urgency bumps and board
// administration, all against the SQLite-backed store.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mcgareyconsulting/milehigh-sub001/internal/board"
)

const (
	minArgs     = 2
	consumedOne = 1
	consumedTwo = 2
)

// Error variables for argument handling.
var (
	ErrFlagRequiresArg = errors.New("flag requires an argument")
	ErrIDRequired      = errors.New("item id is required")
	ErrTargetRequired  = errors.New("target item id is required")
	ErrValueRequired   = errors.New("order value is required (use - to clear)")
	ErrFileRequired    = errors.New("input file is required")
	errBadFlag         = errors.New("invalid flag value")
)

// Run is the main entry point. Returns exit code.
func Run(ctx context.Context, stdin io.Reader, out, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(out, errOut)

	if len(args) < minArgs {
		printUsage(o)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	cfg, err := board.LoadConfig(board.LoadConfigInput{
		WorkDirOverride:  flags.workDir,
		ConfigPath:       flags.configPath,
		StoreDirOverride: flags.storeDir,
		Env:              env,
	})
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	if len(flags.remaining) == 0 {
		printUsage(o)

		return 0
	}

	name := flags.remaining[0]
	if name == "-h" || name == "--help" {
		printUsage(o)

		return 0
	}

	app := &app{cfg: cfg, env: env, stdin: stdin}

	cmd := app.lookup(name)
	if cmd == nil {
		o.ErrPrintln("error: unknown command:", name)
		printUsage(o)

		return 1
	}

	return cmd.Run(ctx, o, flags.remaining[1:])
}

// app carries the resolved configuration into command constructors.
type app struct {
	cfg   board.Config
	env   map[string]string
	stdin io.Reader
}

func (a *app) commands() []*Command {
	return []*Command{
		a.lsCommand(),
		a.moveCommand(),
		a.bumpCommand(),
		a.setCommand(),
		a.groupsCommand(),
		a.importCommand(),
		a.exportCommand(),
		a.replCommand(),
		a.configCommand(),
	}
}

func (a *app) lookup(name string) *Command {
	for _, cmd := range a.commands() {
		if cmd.Name() == name {
			return cmd
		}
	}

	return nil
}

func printUsage(o *IO) {
	o.Println("Usage: subboard [global flags] <command> [args]")
	o.Println()
	o.Println("Submittal board: work items grouped by current assignee, ordered")
	o.Println("by a per-group priority key with urgent slots ahead of the queue.")
	o.Println()
	o.Println("Commands:")

	cmds := (&app{}).commands()

	width := 0
	for _, cmd := range cmds {
		if n := len(cmd.Usage); n > width {
			width = n
		}
	}

	for _, cmd := range cmds {
		o.Printf("  %-*s  %s\n", width, cmd.Usage, cmd.Short)
	}

	o.Println()
	o.Println("Global flags:")
	o.Println("  -C, --cwd <dir>       Run as if started in <dir>")
	o.Println("  -c, --config <file>   Explicit config file")
	o.Println("      --store-dir <dir> Override the store directory")
}

type globalFlags struct {
	workDir    string
	configPath string
	storeDir   string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a global flag at args[idx]. Returns the number
// of args consumed (0 if not a global flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	if arg == "-C" || arg == "--cwd" {
		if idx+1 >= len(args) {
			return 0, fmt.Errorf("%w: %s", ErrFlagRequiresArg, arg)
		}

		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return 0, fmt.Errorf("%w: %s", ErrFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	if arg == "--store-dir" {
		if idx+1 >= len(args) {
			return 0, fmt.Errorf("%w: %s", ErrFlagRequiresArg, arg)
		}

		flags.storeDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--store-dir="); ok {
		flags.storeDir = after

		return consumedOne, nil
	}

	return 0, nil
}
