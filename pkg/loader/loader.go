package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gobbox/pkg/openscad"
	"github.com/philipparndt/gobbox/pkg/stl"
	"github.com/philipparndt/gobbox/pkg/threemf"
)

// Source is a loaded model file
type Source struct {
	Path  string
	Model *stl.Model
	// Unit is the unit name declared by the file, empty when the format has none.
	Unit string
	// Watch lists the files whose change invalidates the model.
	Watch []string
}

// SupportedExtensions lists the file types Load accepts
var SupportedExtensions = []string{".stl", ".3mf", ".scad"}

// Load reads an STL, 3MF or OpenSCAD file
func Load(ctx context.Context, path string) (*Source, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".stl":
		model, err := stl.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
		return &Source{Path: path, Model: model, Watch: []string{path}}, nil

	case ".3mf":
		model, unit, err := threemf.Load(path)
		if err != nil {
			return nil, err
		}
		return &Source{Path: path, Model: model, Unit: unit, Watch: []string{path}}, nil

	case ".scad":
		return loadSCAD(ctx, path)

	default:
		return nil, fmt.Errorf("unsupported file type: %q (expected one of %s)", ext, strings.Join(SupportedExtensions, ", "))
	}
}

func loadSCAD(ctx context.Context, path string) (*Source, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	renderer := openscad.NewRenderer(filepath.Dir(path))

	deps, err := renderer.ResolveDependencies(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependencies: %w", err)
	}

	tmp, err := os.CreateTemp("", "gobbox-*.stl")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary STL: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	slog.Info("rendering OpenSCAD file", "file", path, "dependencies", len(deps)-1)
	if err := renderer.RenderToSTL(ctx, path, tmp.Name()); err != nil {
		return nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
	}

	model, err := stl.Parse(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered STL: %w", err)
	}

	// OpenSCAD exports are conventionally millimetres
	return &Source{Path: path, Model: model, Unit: "millimeter", Watch: deps}, nil
}
