package analysis

import (
	"math"
	"sort"

	"github.com/philipparndt/gobbox/pkg/geometry"
	"github.com/philipparndt/gobbox/pkg/stl"
)

// EdgeInfo contains information about an edge in the model
type EdgeInfo struct {
	Start      geometry.Vector3 `json:"start" yaml:"start"`
	End        geometry.Vector3 `json:"end" yaml:"end"`
	Length     float64          `json:"length" yaml:"length"`
	TriangleID int              `json:"triangle" yaml:"triangle"`
}

// MeshStats holds statistics of the tessellated surface itself
type MeshStats struct {
	TriangleCount   int     `json:"triangleCount" yaml:"triangleCount"`
	EdgeCount       int     `json:"edgeCount" yaml:"edgeCount"`
	MeshSurfaceArea float64 `json:"meshSurfaceArea" yaml:"meshSurfaceArea"`
	MinEdgeLength   float64 `json:"minEdgeLength" yaml:"minEdgeLength"`
	MaxEdgeLength   float64 `json:"maxEdgeLength" yaml:"maxEdgeLength"`
	AvgEdgeLength   float64 `json:"avgEdgeLength" yaml:"avgEdgeLength"`
}

// ModelReport combines the bounding box measurement of a mesh with its statistics
type ModelReport struct {
	Name        string            `json:"name,omitempty" yaml:"name,omitempty"`
	Measurement MeasurementResult `json:"measurement" yaml:"measurement"`
	Mesh        MeshStats         `json:"mesh" yaml:"mesh"`
	AllEdges    []EdgeInfo        `json:"-" yaml:"-"`
}

// AnalyzeModel measures the bounding box of a mesh and collects edge statistics.
// A model without triangles is rejected with *InvalidBoundingBoxError.
func AnalyzeModel(model *stl.Model, unit string) (*ModelReport, error) {
	measurement, err := Measure(model.BoundingBox(), unit)
	if err != nil {
		return nil, err
	}

	report := &ModelReport{
		Name:        model.Name,
		Measurement: measurement,
		Mesh: MeshStats{
			TriangleCount:   model.TriangleCount(),
			MeshSurfaceArea: model.SurfaceArea(),
		},
		AllEdges: make([]EdgeInfo, 0, model.TriangleCount()*3),
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for i, triangle := range model.Triangles {
		vertices := triangle.Vertices()
		for j := range vertices {
			start, end := vertices[j], vertices[(j+1)%3]
			length := start.Distance(end)

			report.AllEdges = append(report.AllEdges, EdgeInfo{
				Start:      start,
				End:        end,
				Length:     length,
				TriangleID: i,
			})

			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	report.Mesh.EdgeCount = len(report.AllEdges)
	report.Mesh.MinEdgeLength = minLength
	report.Mesh.MaxEdgeLength = maxLength
	report.Mesh.AvgEdgeLength = totalLength / float64(report.Mesh.EdgeCount)

	return report, nil
}

// FindLongestEdges returns the N longest edges in the model
func FindLongestEdges(report *ModelReport, count int) []EdgeInfo {
	return sortedEdges(report, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges in the model
func FindShortestEdges(report *ModelReport, count int) []EdgeInfo {
	return sortedEdges(report, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(report *ModelReport, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(report.AllEdges))
	copy(edges, report.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}
