package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/philipparndt/gobbox/pkg/analysis"
	"github.com/philipparndt/gobbox/pkg/geometry"
	"github.com/philipparndt/gobbox/pkg/units"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultPrecision matches the two decimals of the interactive viewers
const DefaultPrecision = 2

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected text, json or yaml)", name)
	}
}

// Options control rendering
type Options struct {
	Format Format
	// Precision is the number of decimals in text output; negative selects DefaultPrecision.
	Precision int
	// Units resolves unit names to symbols; units.Default when nil.
	Units *units.Table
	// Profile forces a color profile for text output; detected from the writer when nil.
	Profile *termenv.Profile
}

// Document is everything a report can show
type Document struct {
	Source      string                     `json:"source,omitempty" yaml:"source,omitempty"`
	Measurement analysis.MeasurementResult `json:"measurement" yaml:"measurement"`
	UnitSymbol  string                     `json:"unitSymbol" yaml:"unitSymbol"`
	AngleUnit   string                     `json:"angleUnit,omitempty" yaml:"angleUnit,omitempty"`
	Mesh        *analysis.MeshStats        `json:"mesh,omitempty" yaml:"mesh,omitempty"`
	Edges       []analysis.EdgeInfo        `json:"edges,omitempty" yaml:"edges,omitempty"`
}

// Write renders doc to w
func Write(w io.Writer, doc Document, opts Options) error {
	table := opts.Units
	if table == nil {
		table = units.Default
	}
	doc.UnitSymbol = symbolFor(table, doc.Measurement.Unit)

	if opts.Format == FormatText || opts.Format == "" {
		return writeText(w, doc, opts)
	}
	return Encode(w, doc, opts.Format)
}

// Encode writes v as JSON or YAML
func Encode(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()

	default:
		return fmt.Errorf("format %q cannot encode values", format)
	}
}

func symbolFor(table *units.Table, unit string) string {
	if unit == analysis.UnknownUnit {
		return units.UnknownSymbol
	}
	return table.Symbol(unit)
}

type textWriter struct {
	out       *termenv.Output
	precision int
	err       error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.out, format, args...)
}

func (t *textWriter) heading(title string) {
	t.printf("%s\n", t.out.String(title).Bold())
	t.printf("%s\n", strings.Repeat("=", len(title)))
}

func (t *textWriter) num(v float64) string {
	return fmt.Sprintf("%.*f", t.precision, v)
}

func (t *textWriter) vector(v geometry.Vector3) string {
	return fmt.Sprintf("(%s, %s, %s)", t.num(v.X), t.num(v.Y), t.num(v.Z))
}

func writeText(w io.Writer, doc Document, opts Options) error {
	var outOpts []termenv.OutputOption
	if opts.Profile != nil {
		outOpts = append(outOpts, termenv.WithProfile(*opts.Profile))
	}

	precision := opts.Precision
	if precision < 0 {
		precision = DefaultPrecision
	}

	t := &textWriter{out: termenv.NewOutput(w, outOpts...), precision: precision}
	m := doc.Measurement

	length, area, volume := "units", "square units", "cubic units"
	if doc.UnitSymbol != units.UnknownSymbol {
		length, area, volume = doc.UnitSymbol, doc.UnitSymbol+"²", doc.UnitSymbol+"³"
	}

	t.heading("AABB Measurement")
	if doc.Source != "" {
		t.printf("Source: %s\n", doc.Source)
	}
	t.printf("Unit: %s\n", m.Unit)
	if doc.AngleUnit != "" {
		t.printf("Angle Unit: %s\n", doc.AngleUnit)
	}
	t.printf("\n")

	t.printf("Dimensions: %s × %s × %s %s\n", t.num(m.Dimensions.X), t.num(m.Dimensions.Y), t.num(m.Dimensions.Z), length)
	t.printf("Surface Area: %s %s\n", t.num(m.SurfaceArea), area)
	t.printf("Volume: %s %s\n\n", t.num(m.Volume), volume)

	t.printf("Bounding Box:\n")
	t.printf("  Min: %s\n", t.vector(m.BoundingBox.Min))
	t.printf("  Max: %s\n", t.vector(m.BoundingBox.Max))
	t.printf("  Center: %s\n", t.vector(m.BoundingBox.Center()))
	t.printf("  Diagonal: %s %s\n", t.num(m.BoundingBox.Diagonal()), length)

	if doc.Mesh != nil {
		t.printf("\nMesh:\n")
		t.printf("  Triangles: %d\n", doc.Mesh.TriangleCount)
		t.printf("  Edges: %d\n", doc.Mesh.EdgeCount)
		t.printf("  Surface Area: %s %s\n", t.num(doc.Mesh.MeshSurfaceArea), area)
		t.printf("  Edge Length: min %s, max %s, avg %s %s\n",
			t.num(doc.Mesh.MinEdgeLength), t.num(doc.Mesh.MaxEdgeLength), t.num(doc.Mesh.AvgEdgeLength), length)
	}

	if len(doc.Edges) > 0 {
		t.printf("\n%-6s %-35s %-35s %-15s\n", "Index", "Start", "End", "Length")
		t.printf("%s\n", strings.Repeat("-", 91))
		for i, edge := range doc.Edges {
			t.printf("%-6d %-35s %-35s %-15s\n", i+1, t.vector(edge.Start), t.vector(edge.End), t.num(edge.Length))
		}
	}

	return t.err
}

// WriteError renders err for the user in the same style as reports
func WriteError(w io.Writer, err error) {
	out := termenv.NewOutput(w)
	fmt.Fprintf(out, "%s %v\n", out.String("Error:").Foreground(out.Color("1")).Bold(), err)
}
