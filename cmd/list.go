package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skarland/clusterbench/internal/bicluster"
	"github.com/skarland/clusterbench/internal/config"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured data classes and models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Println("Classes:")
			for _, c := range cfg.Classes {
				fmt.Printf("  - %s: %dx%d, %d clusters, %s structure, noise %g\n",
					c.Name, c.Rows, c.Cols, c.Clusters, c.Structure, c.Noise)
			}
			fmt.Println("\nModels:")
			for _, m := range cfg.Models {
				fmt.Printf("  - %s (family: %s, %d configurations)\n",
					m.Name, m.Family, bicluster.Grid(m.Grid).Size())
			}
			fmt.Printf("\nBuilt-in families: %v\n", bicluster.BuiltinNames())
			return nil
		},
	}
}
