package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/medar/arviewer/internal/loader"
	"github.com/medar/arviewer/pkg/analysis"
)

var infoRaw bool

var infoCmd = &cobra.Command{
	Use:   "info <model-id|path>",
	Short: "Display statistics of a model file",
	Long:  "Load a glTF, GLB or STL model and show mesh, vertex and material counts, animations and dimensions.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&infoRaw, "raw", false, "report authored dimensions instead of the fitted ones")
}

func runInfo(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	path := args[0]
	if m, ok := reg.Model(path); ok {
		path = reg.AssetURL(m)
	}

	opts := loader.DefaultOptions()
	if infoRaw {
		opts = loader.Options{}
	}

	ld := newLoader(reg)
	defer ld.Close()

	res := ld.Load(context.Background(), path, opts, loader.Callbacks{})
	if !res.OK() {
		return fmt.Errorf("failed to load %s: %w", path, res.Err)
	}
	model, info := res.Model, res.Info

	fmt.Println("Model Information")
	fmt.Println("=================")
	if model.Name != "" {
		fmt.Printf("Name: %s\n", model.Name)
	}
	fmt.Printf("File: %s\n", path)
	fmt.Printf("Format: %s\n", model.Format)
	fmt.Printf("Size: %s\n\n", analysis.FormatBytes(info.FileSize))

	fmt.Println("Scene Statistics:")
	fmt.Printf("  Meshes: %d\n", info.MeshCount)
	fmt.Printf("  Materials: %d\n", info.MaterialCount)
	fmt.Printf("  Vertices: %s\n", analysis.FormatCount(info.VertexCount))
	fmt.Printf("  Triangles: %s\n", analysis.FormatCount(info.TriangleCount))
	if info.Compressed {
		fmt.Println("  Draco compressed: yes")
	}
	fmt.Println()

	if parts := model.Parts(); len(parts) > 0 {
		fmt.Printf("Parts: %s\n\n", strings.Join(parts, ", "))
	}

	if info.HasAnimations {
		fmt.Println("Animations:")
		for _, name := range info.AnimationNames {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println()
	}

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(info.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(info.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(info.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", info.Dimensions.X)
	fmt.Printf("  Height (Y): %.6f units\n", info.Dimensions.Y)
	fmt.Printf("  Depth (Z): %.6f units\n", info.Dimensions.Z)
	return nil
}
