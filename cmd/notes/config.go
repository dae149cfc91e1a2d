package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective client configuration",
		Long: `Show the effective client configuration.
With --save, write it (including any --server/--timeout overrides) to the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.out, "config:  %s\nserver:  %s\ntimeout: %s\n", a.configPath, a.cfg.Server, a.cfg.Timeout)
			if !save {
				return nil
			}
			if a.configPath == "" {
				return fmt.Errorf("no config path: pass --config")
			}
			if err := a.cfg.Save(a.configPath); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "saved %s\n", a.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the effective configuration to the config file")
	return cmd
}
