package kernel

import (
	"github.com/philipparndt/gobbox/pkg/analysis"
	"github.com/philipparndt/gobbox/pkg/geometry"
	"github.com/philipparndt/gobbox/pkg/stl"
)

// Solid is an opaque handle to a kernel solid
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box computed by the kernel.
	BoundingBox() geometry.BoundingBox
}

// Kernel builds solids and tessellates them
type Kernel interface {
	// Primitives, centered on the origin
	Box(x, y, z float64) (Solid, error)
	Sphere(radius float64) (Solid, error)
	Cylinder(height, radius float64) (Solid, error)

	// Boolean operations. Union needs at least one solid.
	Union(solids ...Solid) (Solid, error)
	Difference(a, b Solid) Solid

	Translate(s Solid, offset geometry.Vector3) Solid

	// Tessellate converts a solid to triangles using the given grid resolution.
	Tessellate(s Solid, cells int) (*stl.Model, error)
}

// Measure measures the kernel's bounding box of s
func Measure(s Solid, unit string) (analysis.MeasurementResult, error) {
	return analysis.Measure(s.BoundingBox(), unit)
}
