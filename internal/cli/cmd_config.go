package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

func (a *app) configCommand() *Command {
	flags := flag.NewFlagSet("config", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "config",
		Short: "Print the resolved configuration",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			o.Println("store_dir:", a.cfg.StoreDir)
			o.Println("store_dir_abs:", a.cfg.StoreDirAbs)
			o.Println("db_path:", a.cfg.DBPath)
			o.Println("cwd:", a.cfg.EffectiveCwd)

			if a.cfg.Sources.Global != "" {
				o.Println("global_config:", a.cfg.Sources.Global)
			}

			if a.cfg.Sources.Project != "" {
				o.Println("project_config:", a.cfg.Sources.Project)
			}

			return nil
		},
	}
}
