package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the landmark catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report duplicate and dangling landmark ids",
	Args:  cobra.NoArgs,
	RunE:  runCatalogValidate,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	catalogs := reg.Catalogs()
	names := make([]string, 0, len(catalogs))
	for name := range catalogs {
		names = append(names, name)
	}
	sort.Strings(names)

	total := 0
	for _, name := range names {
		issues := catalogs[name].Validate()
		if len(issues) == 0 {
			fmt.Printf("✓ %s: %d landmarks\n", name, len(catalogs[name].Landmarks()))
			continue
		}
		for _, issue := range issues {
			fmt.Printf("✗ %s\n", issue)
		}
		total += len(issues)
	}

	if total > 0 {
		return fmt.Errorf("%d catalog issues found", total)
	}
	return nil
}
