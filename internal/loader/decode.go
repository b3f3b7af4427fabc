package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/medar/arviewer/pkg/gltfio"
	"github.com/medar/arviewer/pkg/scene"
	"github.com/medar/arviewer/pkg/stl"
)

// ErrUnsupportedFormat is returned for files no decoder accepts
var ErrUnsupportedFormat = errors.New("unsupported model format")

// SupportedExtensions lists the file extensions the loader decodes
var SupportedExtensions = []string{".glb", ".gltf", ".stl"}

// Decode reads a local asset file
func Decode(path string, opts Options) (*scene.Model, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		model *scene.Model
		err   error
	)
	switch ext {
	case ".glb", ".gltf":
		model, err = gltfio.Open(path)
	case ".stl":
		model, err = stl.Open(path)
	default:
		return nil, fmt.Errorf("%w: %s (expected .glb, .gltf or .stl)", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	if opts.DisableDraco && usesDraco(model) {
		return nil, fmt.Errorf("%w: %s uses %s", ErrUnsupportedFormat, filepath.Base(path), gltfio.ExtDraco)
	}
	return model, nil
}

func usesDraco(model *scene.Model) bool {
	for _, ext := range model.ExtensionsUsed {
		if ext == gltfio.ExtDraco {
			return true
		}
	}
	return false
}
