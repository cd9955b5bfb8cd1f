package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skarland/clusterbench/internal/bicluster"
	"github.com/skarland/clusterbench/internal/config"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config without running an experiment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			configs := 0
			for _, m := range cfg.Models {
				if _, err := m.ToFamily(); err != nil {
					return err
				}
				configs += bicluster.Grid(m.Grid).Size()
			}
			fmt.Printf("OK: %d classes, %d models (%d grid configurations), %d trials, mode %q\n",
				len(cfg.Classes), len(cfg.Models), configs, cfg.Trials, cfg.Mode)
			return nil
		},
	}
}
