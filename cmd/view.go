package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/medar/arviewer/internal/app"
	"github.com/medar/arviewer/internal/auth"
	"github.com/medar/arviewer/internal/config"
	"github.com/medar/arviewer/internal/loader"
)

var viewOpts struct {
	wireframe    bool
	color        string
	noCenter     bool
	noScale      bool
	disableDraco bool
}

var viewCmd = &cobra.Command{
	Use:   "view [model-id|path]",
	Short: "Open the 3D viewer",
	Long: `Open the interactive viewer for a registered model or for any glTF, GLB or
STL file. Without an argument the first registered model is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	f := viewCmd.Flags()
	f.Int("width", 1400, "window width")
	f.Int("height", 900, "window height")
	f.Int("fps", 60, "target frame rate")
	f.Bool("auto-rotate", false, "turn the model continuously")
	f.Bool("labels", false, "show all landmark labels")
	f.Bool("watch", true, "reload local files when they change")
	f.BoolVar(&viewOpts.wireframe, "wireframe", false, "overlay the triangle edges")
	f.StringVar(&viewOpts.color, "color", "", "override the material color (hex, e.g. #e74c3c)")
	f.BoolVar(&viewOpts.noCenter, "no-center", false, "keep the model at its authored position")
	f.BoolVar(&viewOpts.noScale, "no-scale", false, "keep the model at its authored size")
	f.BoolVar(&viewOpts.disableDraco, "disable-draco", false, "reject Draco-compressed assets")

	_ = viper.BindPFlag("viewer.width", f.Lookup("width"))
	_ = viper.BindPFlag("viewer.height", f.Lookup("height"))
	_ = viper.BindPFlag("viewer.fps", f.Lookup("fps"))
	_ = viper.BindPFlag("viewer.autoRotate", f.Lookup("auto-rotate"))
	_ = viper.BindPFlag("viewer.showAllLabels", f.Lookup("labels"))
	_ = viper.BindPFlag("viewer.watch", f.Lookup("watch"))
}

func runView(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	source := ""
	if len(args) > 0 {
		source = args[0]
	}

	load := loader.DefaultOptions()
	load.EnableAutoCenter = !viewOpts.noCenter
	load.EnableAutoScale = !viewOpts.noScale
	load.ShowWireframe = viewOpts.wireframe
	load.DisableDraco = viewOpts.disableDraco
	if viewOpts.color != "" {
		load.MaterialOverride = &loader.MaterialOverride{Color: viewOpts.color}
	}

	opts := app.Options{
		Source:        source,
		Width:         config.GetInt("viewer.width"),
		Height:        config.GetInt("viewer.height"),
		FPS:           config.GetInt("viewer.fps"),
		Debug:         config.GetBool("debug"),
		AutoRotate:    config.GetBool("viewer.autoRotate"),
		ShowAllLabels: config.GetBool("viewer.showAllLabels"),
		Watch:         config.GetBool("viewer.watch"),
		Load:          load,
	}

	store := auth.NewStore()
	if err := store.Load(sessionPath()); err != nil {
		log.Warn().Err(err).Msg("ignoring saved session")
	}
	if user, ok := store.CurrentUser(); ok {
		opts.User = user.Name
	}

	return app.New(reg, newLoader(reg), opts).Run()
}
