package cli

import (
	"context"
	"errors"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command is a single subboard verb: a pflag set plus the code behind it.
type Command struct {
	// Flags defines command-specific flags.
	Flags *flag.FlagSet

	// Usage is the "subboard ..." argument line, starting with the verb.
	// Examples: "move <id> <target-id>", "ls [flags]"
	Usage string

	// Short is the one-line description shown in the global listing.
	Short string

	// Long is the full description for "subboard <verb> --help".
	// Falls back to Short when empty.
	Long string

	// Exec runs the verb with the positional args left after flag parsing.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the verb, the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// help assembles the full help text for "subboard <verb> --help".
func (c *Command) help() string {
	var b strings.Builder

	b.WriteString("Usage: subboard " + c.Usage + "\n\n")

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	b.WriteString(desc + "\n")

	if c.Flags != nil && c.Flags.HasFlags() {
		b.WriteString("\nFlags:\n")
		b.WriteString(c.Flags.FlagUsages())
	}

	return b.String()
}

// Run parses flags and executes the verb, translating errors into an
// exit code so the dispatcher stays a thin lookup.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{}) // silence pflag's own printing

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			o.Printf("%s", c.help())

			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		o.Printf("%s", c.help())

		return 1
	}

	if err := c.Exec(ctx, o, c.Flags.Args()); err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	return 0
}
