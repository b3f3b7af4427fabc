package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/medar/arviewer/internal/catalog"
)

var (
	landmarksModel  string
	landmarksLevel  string
	landmarksDetail bool
)

var landmarksCmd = &cobra.Command{
	Use:   "landmarks",
	Short: "List the landmarks of a model at an annotation level",
	Args:  cobra.NoArgs,
	RunE:  runLandmarks,
}

func init() {
	rootCmd.AddCommand(landmarksCmd)

	landmarksCmd.Flags().StringVar(&landmarksModel, "model", "heart", "registry model id")
	landmarksCmd.Flags().StringVar(&landmarksLevel, "level", string(catalog.LevelBasic), "annotation level (basic, intermediate, advanced)")
	landmarksCmd.Flags().BoolVar(&landmarksDetail, "detail", false, "print descriptions and medical terms")
}

func runLandmarks(cmd *cobra.Command, args []string) error {
	level, ok := catalog.ParseLevel(landmarksLevel)
	if !ok {
		return fmt.Errorf("unknown level %q", landmarksLevel)
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	m, ok := reg.Model(landmarksModel)
	if !ok {
		return fmt.Errorf("unknown model %q", landmarksModel)
	}
	if !m.Supports(level) {
		return fmt.Errorf("model %s does not offer the %s level", m.ID, level)
	}

	landmarks := reg.CatalogFor(m.ID).LandmarksForLevel(level)
	fmt.Printf("%s - %s level (%d landmarks)\n", m.Label, level, len(landmarks))
	fmt.Println(strings.Repeat("=", 40))

	for _, lm := range landmarks {
		fmt.Printf("%s %-24s %-8s %s\n", lm.Type.Icon(), lm.ID, lm.Type, lm.Title)
		if !landmarksDetail {
			continue
		}
		fmt.Printf("    %s\n", lm.Description)
		if len(lm.MedicalTerms) > 0 {
			fmt.Printf("    Terms: %s\n", strings.Join(lm.MedicalTerms, ", "))
		}
		if lm.ClinicalSignificance != "" {
			fmt.Printf("    Clinical: %s\n", lm.ClinicalSignificance)
		}
	}
	return nil
}
