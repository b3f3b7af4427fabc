package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/medar/arviewer/pkg/geometry"
	"github.com/medar/arviewer/pkg/scene"
)

// ErrTruncated is returned when a binary STL ends before its declared facet count
var ErrTruncated = errors.New("truncated binary STL")

// facetSize is the byte size of one binary facet: normal, three vertices, attribute count
const facetSize = 12*4 + 2

// Open reads an STL file into a single-mesh scene
func Open(filename string) (*scene.Model, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	model, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	model.FileSize = int64(len(data))
	model.LocalPath = filename
	return model, nil
}

// Decode parses ASCII or binary STL. The format is detected from the
// "solid" prefix; binary files whose 80-byte header happens to start with
// "solid" are recognised by their exact length.
func Decode(r io.Reader) (*scene.Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL: %w", err)
	}

	bbox := geometry.NewBoundingBox()
	vertices := 0
	name, err := walk(data, func(f Facet) {
		for _, v := range f.Vertices() {
			bbox.Extend(v)
		}
		vertices += 3
	})
	if err != nil {
		return nil, err
	}

	model := newModel(name, vertices, bbox)
	model.Format = "stl"
	model.FileSize = int64(len(data))
	return model, nil
}

func isASCII(data []byte) bool {
	if !bytes.HasPrefix(data, []byte("solid")) {
		return false
	}
	if len(data) >= 84 {
		count := binary.LittleEndian.Uint32(data[80:84])
		if int64(len(data)) == 84+int64(count)*facetSize {
			return false
		}
	}
	return true
}

// Facet is one triangle with the normal stored in the file
type Facet struct {
	Normal     geometry.Vector3
	V1, V2, V3 geometry.Vector3
}

// Vertices returns the facet corners in winding order
func (f Facet) Vertices() [3]geometry.Vector3 {
	return [3]geometry.Vector3{f.V1, f.V2, f.V3}
}

// ReadFacets reads every triangle of an STL file
func ReadFacets(filename string) ([]Facet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	var facets []Facet
	if _, err := walk(data, func(f Facet) { facets = append(facets, f) }); err != nil {
		return nil, err
	}
	return facets, nil
}

// walk calls fn for every facet and returns the solid name
func walk(data []byte, fn func(Facet)) (string, error) {
	if isASCII(data) {
		return walkASCII(data, fn)
	}
	return walkBinary(data, fn)
}

// newModel wraps one mesh in a model with a default standard material
func newModel(name string, vertexCount int, bbox geometry.BoundingBox) *scene.Model {
	part := name
	if part == "" {
		part = "mesh"
	}
	mat := scene.NewMaterial("stl")
	mat.Color = scene.Color{R: 0.8, G: 0.8, B: 0.8, A: 1}
	mat.Metalness = 0
	mat.Roughness = 0.8

	root := scene.NewNode(name)
	root.Meshes = []*scene.Mesh{{
		Name:        part,
		PartID:      part,
		VertexCount: vertexCount,
		Bounds:      bbox,
		Materials:   []*scene.Material{mat},
	}}
	return &scene.Model{Name: name, Root: root, PrimitiveParts: []string{part}}
}

func parseVector(line string, fields []string) (geometry.Vector3, error) {
	if len(fields) < 3 {
		return geometry.Vector3{}, fmt.Errorf("malformed line %q", line)
	}
	var p [3]float64
	for i := range p {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("malformed line %q: %w", line, err)
		}
		p[i] = v
	}
	return geometry.FromArray(p), nil
}

func walkASCII(data []byte, fn func(Facet)) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	name := ""
	var (
		facet   Facet
		corners []geometry.Vector3
	)

	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}
		case "facet":
			facet = Facet{}
			corners = corners[:0]
			if len(fields) >= 5 && fields[1] == "normal" {
				n, err := parseVector(line, fields[2:])
				if err != nil {
					return "", err
				}
				facet.Normal = n
			}
		case "vertex":
			v, err := parseVector(line, fields[1:])
			if err != nil {
				return "", err
			}
			corners = append(corners, v)
		case "endfacet":
			if len(corners) != 3 {
				return "", fmt.Errorf("facet with %d vertices", len(corners))
			}
			facet.V1, facet.V2, facet.V3 = corners[0], corners[1], corners[2]
			fn(facet)
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return name, nil
}

func walkBinary(data []byte, fn func(Facet)) (string, error) {
	if len(data) < 84 {
		return "", fmt.Errorf("failed to read header: %w", ErrTruncated)
	}

	name := strings.TrimSpace(string(bytes.TrimRight(data[:80], "\x00")))
	count := int(binary.LittleEndian.Uint32(data[80:84]))
	if len(data) < 84+count*facetSize {
		return "", fmt.Errorf("expected %d facets: %w", count, ErrTruncated)
	}

	readVector := func(p int) geometry.Vector3 {
		var xyz [3]float64
		for c := range xyz {
			xyz[c] = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[p+c*4:])))
		}
		return geometry.FromArray(xyz)
	}

	offset := 84
	for i := 0; i < count; i++ {
		fn(Facet{
			Normal: readVector(offset),
			V1:     readVector(offset + 12),
			V2:     readVector(offset + 24),
			V3:     readVector(offset + 36),
		})
		offset += facetSize
	}
	return name, nil
}
