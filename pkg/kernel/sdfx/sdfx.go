// Package sdfx implements kernel.Kernel with the github.com/deadsy/sdfx
// signed distance field library.
package sdfx

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/philipparndt/gobbox/pkg/geometry"
	"github.com/philipparndt/gobbox/pkg/kernel"
	"github.com/philipparndt/gobbox/pkg/stl"
)

var _ kernel.Kernel = (*Kernel)(nil)

// DefaultCells is the marching cubes resolution along the longest axis
const DefaultCells = 200

type solid struct {
	s sdf.SDF3
}

// BoundingBox returns the sdfx bounding box
func (s *solid) BoundingBox() geometry.BoundingBox {
	bb := s.s.BoundingBox()
	return geometry.BoundingBoxFromCorners(bb.Min.X, bb.Min.Y, bb.Min.Z, bb.Max.X, bb.Max.Y, bb.Max.Z)
}

// Kernel is the sdfx backed kernel
type Kernel struct{}

// New returns a new sdfx kernel
func New() *Kernel {
	return &Kernel{}
}

func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*solid).s
}

func wrap(s sdf.SDF3) kernel.Solid {
	return &solid{s: s}
}

// Box creates a box with the given edge lengths
func (k *Kernel) Box(x, y, z float64) (kernel.Solid, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return nil, fmt.Errorf("box %vx%vx%v: edges must be positive", x, y, z)
	}
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("box %vx%vx%v: %w", x, y, z, err)
	}
	return wrap(s), nil
}

// Sphere creates a sphere
func (k *Kernel) Sphere(radius float64) (kernel.Solid, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere r=%v: radius must be positive", radius)
	}
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sphere r=%v: %w", radius, err)
	}
	return wrap(s), nil
}

// Cylinder creates a cylinder along the Z axis
func (k *Kernel) Cylinder(height, radius float64) (kernel.Solid, error) {
	if height <= 0 || radius <= 0 {
		return nil, fmt.Errorf("cylinder h=%v r=%v: height and radius must be positive", height, radius)
	}
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("cylinder h=%v r=%v: %w", height, radius, err)
	}
	return wrap(s), nil
}

// ErrEmptyUnion is returned by Union when it is given no solids
var ErrEmptyUnion = errors.New("union needs at least one solid")

// Union returns the union of the solids
func (k *Kernel) Union(solids ...kernel.Solid) (kernel.Solid, error) {
	if len(solids) == 0 {
		return nil, ErrEmptyUnion
	}
	parts := make([]sdf.SDF3, len(solids))
	for i, s := range solids {
		parts[i] = unwrap(s)
	}
	return wrap(sdf.Union3D(parts...)), nil
}

// Difference returns a - b
func (k *Kernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by offset
func (k *Kernel) Translate(s kernel.Solid, offset geometry.Vector3) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: offset.X, Y: offset.Y, Z: offset.Z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Tessellate renders the solid with marching cubes
func (k *Kernel) Tessellate(s kernel.Solid, cells int) (*stl.Model, error) {
	if cells <= 0 {
		return nil, fmt.Errorf("cells must be positive, got %d", cells)
	}

	triangles := render.ToTriangles(unwrap(s), render.NewMarchingCubesUniform(cells))

	model := stl.NewModel("sdfx")
	for _, tri := range triangles {
		n := tri.Normal()
		model.AddTriangle(geometry.NewTriangle(
			geometry.NewVector3(n.X, n.Y, n.Z),
			geometry.NewVector3(tri[0].X, tri[0].Y, tri[0].Z),
			geometry.NewVector3(tri[1].X, tri[1].Y, tri[1].Z),
			geometry.NewVector3(tri[2].X, tri[2].Y, tri[2].Z),
		))
	}

	if model.TriangleCount() == 0 {
		return nil, fmt.Errorf("tessellation produced no triangles")
	}
	return model, nil
}
