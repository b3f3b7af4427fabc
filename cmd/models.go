package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the registered organ models",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		for _, m := range reg.Models() {
			levels := make([]string, len(m.SupportedLevels))
			for i, l := range m.SupportedLevels {
				levels[i] = string(l)
			}
			count := len(reg.CatalogFor(m.ID).Landmarks())

			fmt.Printf("%s (%s)\n", m.ID, m.Label)
			fmt.Printf("  Asset: %s\n", reg.AssetURL(m))
			fmt.Printf("  Levels: %s\n", strings.Join(levels, ", "))
			fmt.Printf("  Landmarks: %d\n", count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
