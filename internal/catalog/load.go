package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/medar/arviewer/pkg/geometry"
)

//go:embed data
var embedded embed.FS

// registryFile is the model list inside a catalog file system; landmark
// catalogs live under catalogDir, one YAML document per catalog.
const (
	registryFile = "models.yaml"
	catalogDir   = "catalogs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report yaml names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		if s, ok := fl.Field().Interface().(string); ok {
			return strings.TrimSpace(s) != ""
		}
		return false
	})
	return v
}

type registryDoc struct {
	BaseURL string     `yaml:"baseUrl" validate:"omitempty,url"`
	Models  []modelDoc `yaml:"models" validate:"required,min=1,dive"`
}

type modelDoc struct {
	ID      string   `yaml:"id" validate:"notblank"`
	Label   string   `yaml:"label" validate:"notblank"`
	Asset   string   `yaml:"asset" validate:"notblank"`
	Catalog string   `yaml:"catalog"`
	Levels  []string `yaml:"levels" validate:"required,min=1,dive,oneof=basic intermediate advanced"`
}

type catalogDoc struct {
	Name      string              `yaml:"name" validate:"notblank"`
	Landmarks []landmarkDoc       `yaml:"landmarks" validate:"dive"`
	Levels    map[string][]string `yaml:"levels" validate:"dive,keys,oneof=basic intermediate advanced,endkeys"`
}

type landmarkDoc struct {
	ID                   string     `yaml:"id" validate:"notblank"`
	Position             [3]float64 `yaml:"position"`
	Title                string     `yaml:"title" validate:"notblank"`
	Description          string     `yaml:"description"`
	DetailedInfo         string     `yaml:"detailedInfo"`
	Type                 string     `yaml:"type" validate:"required,oneof=chamber valve vessel other"`
	Color                string     `yaml:"color" validate:"required,hexcolor"`
	MedicalTerms         []string   `yaml:"medicalTerms"`
	Functions            []string   `yaml:"functions"`
	RelatedStructures    []string   `yaml:"relatedStructures"`
	ClinicalSignificance string     `yaml:"clinicalSignificance"`
}

// Default loads the registry and catalogs compiled into the binary
func Default() (*Registry, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// LoadDir loads a registry from a directory laid out like the embedded data
func LoadDir(dir string) (*Registry, error) {
	return Load(os.DirFS(dir))
}

// Load reads models.yaml and every catalogs/*.yaml from fsys
func Load(fsys fs.FS) (*Registry, error) {
	var reg registryDoc
	if err := decodeFile(fsys, registryFile, &reg); err != nil {
		return nil, err
	}

	r := &Registry{
		baseURL:  reg.BaseURL,
		catalogs: make(map[string]*Catalog),
	}

	seen := make(map[string]bool)
	for _, md := range reg.Models {
		if seen[md.ID] {
			return nil, fmt.Errorf("%s: duplicate model id %q", registryFile, md.ID)
		}
		seen[md.ID] = true

		m := Model{ID: md.ID, Label: md.Label, AssetPath: md.Asset, Catalog: md.Catalog}
		for _, l := range md.Levels {
			m.SupportedLevels = append(m.SupportedLevels, Level(l))
		}
		r.models = append(r.models, m)
	}

	files, err := fs.Glob(fsys, path.Join(catalogDir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		c, err := loadCatalog(fsys, file)
		if err != nil {
			return nil, err
		}
		r.catalogs[c.Name] = c
	}

	for _, m := range r.models {
		if m.Catalog == "" {
			continue
		}
		if _, ok := r.catalogs[m.Catalog]; !ok {
			return nil, fmt.Errorf("model %s: catalog %q not found", m.ID, m.Catalog)
		}
	}

	return r, nil
}

func loadCatalog(fsys fs.FS, file string) (*Catalog, error) {
	var doc catalogDoc
	if err := decodeFile(fsys, file, &doc); err != nil {
		return nil, err
	}

	landmarks := make([]Landmark, 0, len(doc.Landmarks))
	for _, ld := range doc.Landmarks {
		landmarks = append(landmarks, Landmark{
			ID:                   ld.ID,
			Position:             geometry.FromArray(ld.Position),
			Title:                ld.Title,
			Description:          ld.Description,
			DetailedInfo:         ld.DetailedInfo,
			Type:                 LandmarkType(ld.Type),
			Color:                ld.Color,
			MedicalTerms:         ld.MedicalTerms,
			Functions:            ld.Functions,
			RelatedStructures:    ld.RelatedStructures,
			ClinicalSignificance: ld.ClinicalSignificance,
		})
	}

	levels := make(map[Level][]string, len(doc.Levels))
	for name, ids := range doc.Levels {
		levels[Level(name)] = ids
	}

	return NewCatalog(doc.Name, landmarks, levels), nil
}

func decodeFile(fsys fs.FS, file string, out any) error {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", file, err)
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid %s: %s", file, strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid %s: %w", file, err)
	}
	return nil
}
