package threemf

import (
	"fmt"

	"github.com/hpinc/go3mf"
	"github.com/philipparndt/gobbox/pkg/geometry"
	"github.com/philipparndt/gobbox/pkg/stl"
)

// Load decodes a 3MF file and returns its placed mesh triangles together
// with the model's declared unit name (3MF defaults to "millimeter").
func Load(filename string) (*stl.Model, string, error) {
	r, err := go3mf.OpenReader(filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open 3MF package: %w", err)
	}
	defer r.Close()

	var model go3mf.Model
	if err := r.Decode(&model); err != nil {
		return nil, "", fmt.Errorf("failed to decode 3MF package: %w", err)
	}

	out, err := Flatten(&model)
	if err != nil {
		return nil, "", err
	}
	return out, model.Units.String(), nil
}

// Flatten collects the triangles of every build item. Item and component
// transforms are applied, and component assemblies are expanded recursively.
// Without build items, every root object that no component references is
// taken untransformed.
func Flatten(model *go3mf.Model) (*stl.Model, error) {
	f := &flattener{
		model:  model,
		out:    stl.NewModel(model.Path),
		active: make(map[objectKey]bool),
	}

	if len(model.Build.Items) == 0 {
		for _, obj := range rootObjects(model) {
			if err := f.add("", obj, go3mf.Identity()); err != nil {
				return nil, err
			}
		}
		return f.out, nil
	}

	for _, item := range model.Build.Items {
		path := item.ObjectPath()
		obj, ok := model.FindObject(path, item.ObjectID)
		if !ok {
			return nil, fmt.Errorf("build item references unknown object %d", item.ObjectID)
		}
		if err := f.add(path, obj, placement(item.Transform)); err != nil {
			return nil, err
		}
	}
	return f.out, nil
}

// rootObjects returns the objects of the root model that are not part of an assembly
func rootObjects(model *go3mf.Model) []*go3mf.Object {
	referenced := make(map[uint32]bool)
	for _, obj := range model.Resources.Objects {
		if obj.Components == nil {
			continue
		}
		for _, c := range obj.Components.Component {
			referenced[c.ObjectID] = true
		}
	}

	var roots []*go3mf.Object
	for _, obj := range model.Resources.Objects {
		if !referenced[obj.ID] {
			roots = append(roots, obj)
		}
	}
	return roots
}

type objectKey struct {
	path string
	id   uint32
}

type flattener struct {
	model *go3mf.Model
	out   *stl.Model
	// active holds the objects on the current component chain
	active map[objectKey]bool
}

func (f *flattener) add(path string, obj *go3mf.Object, m go3mf.Matrix) error {
	key := objectKey{path: path, id: obj.ID}
	if f.active[key] {
		return fmt.Errorf("object %d contains itself through its components", obj.ID)
	}
	f.active[key] = true
	defer delete(f.active, key)

	if obj.Mesh != nil {
		if err := f.addMesh(obj, m); err != nil {
			return err
		}
	}

	if obj.Components == nil {
		return nil
	}
	for _, c := range obj.Components.Component {
		childPath := c.ObjectPath(path)
		child, ok := f.model.FindObject(childPath, c.ObjectID)
		if !ok {
			return fmt.Errorf("object %d: component references unknown object %d", obj.ID, c.ObjectID)
		}
		if err := f.add(childPath, child, m.Mul(placement(c.Transform))); err != nil {
			return err
		}
	}
	return nil
}

func (f *flattener) addMesh(obj *go3mf.Object, m go3mf.Matrix) error {
	vertices := obj.Mesh.Vertices.Vertex
	placed := make([]geometry.Vector3, len(vertices))
	for i, v := range vertices {
		placed[i] = apply(m, v)
	}

	count := uint32(len(placed))
	for i, tri := range obj.Mesh.Triangles.Triangle {
		if tri.V1 >= count || tri.V2 >= count || tri.V3 >= count {
			return fmt.Errorf("object %d: triangle %d references a vertex beyond the %d defined", obj.ID, i, count)
		}
		triangle := geometry.NewTriangle(geometry.Vector3{}, placed[tri.V1], placed[tri.V2], placed[tri.V3])
		triangle.Normal = triangle.CalculateNormal()
		f.out.AddTriangle(triangle)
	}
	return nil
}

// placement returns m, or the identity when the transform attribute was absent
func placement(m go3mf.Matrix) go3mf.Matrix {
	if m == (go3mf.Matrix{}) {
		return go3mf.Identity()
	}
	return m
}

func apply(m go3mf.Matrix, v go3mf.Point3D) geometry.Vector3 {
	p := m.Mul3D(v)
	return geometry.NewVector3(float64(p[0]), float64(p[1]), float64(p[2]))
}
