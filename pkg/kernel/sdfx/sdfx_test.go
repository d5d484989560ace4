package sdfx

import (
	"testing"

	"github.com/philipparndt/gobbox/pkg/geometry"
	"github.com/philipparndt/gobbox/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxBoundingBox(t *testing.T) {
	k := New()
	box, err := k.Box(10, 20, 30)
	require.NoError(t, err)

	bbox := box.BoundingBox()
	assert.Equal(t, geometry.NewVector3(-5, -10, -15), bbox.Min)
	assert.Equal(t, geometry.NewVector3(5, 10, 15), bbox.Max)

	result, err := kernel.Measure(box, "mm")
	require.NoError(t, err)
	assert.InDelta(t, 6000.0, result.Volume, 1e-9)
	assert.InDelta(t, 2*(200.0+300.0+600.0), result.SurfaceArea, 1e-9)
}

func TestTranslate(t *testing.T) {
	k := New()
	sphere, err := k.Sphere(2)
	require.NoError(t, err)

	moved := k.Translate(sphere, geometry.NewVector3(10, 0, -1))
	bbox := moved.BoundingBox()

	assert.InDelta(t, 8.0, bbox.Min.X, 1e-9)
	assert.InDelta(t, 12.0, bbox.Max.X, 1e-9)
	assert.InDelta(t, -3.0, bbox.Min.Z, 1e-9)
	assert.InDelta(t, 1.0, bbox.Max.Z, 1e-9)
}

func TestDifferenceKeepsOuterBounds(t *testing.T) {
	k := New()
	box, err := k.Box(100, 100, 100)
	require.NoError(t, err)
	cyl, err := k.Cylinder(120, 20)
	require.NoError(t, err)

	diff := k.Difference(box, cyl)
	assert.Equal(t, box.BoundingBox(), diff.BoundingBox())
}

func TestUnionBounds(t *testing.T) {
	k := New()
	a, err := k.Box(2, 2, 2)
	require.NoError(t, err)
	b, err := k.Box(2, 2, 2)
	require.NoError(t, err)

	union, err := k.Union(a, k.Translate(b, geometry.NewVector3(4, 0, 0)))
	require.NoError(t, err)
	bbox := union.BoundingBox()

	assert.InDelta(t, -1.0, bbox.Min.X, 1e-9)
	assert.InDelta(t, 5.0, bbox.Max.X, 1e-9)

	single, err := k.Union(a)
	require.NoError(t, err)
	assert.Equal(t, a.BoundingBox(), single.BoundingBox())
}

func TestUnionEmpty(t *testing.T) {
	union, err := New().Union()
	assert.ErrorIs(t, err, ErrEmptyUnion)
	assert.Nil(t, union)
}

func TestInvalidPrimitives(t *testing.T) {
	k := New()

	_, err := k.Box(-1, 1, 1)
	assert.Error(t, err)
	_, err = k.Sphere(0)
	assert.Error(t, err)
	_, err = k.Cylinder(10, -2)
	assert.Error(t, err)
}

func TestTessellate(t *testing.T) {
	k := New()
	box, err := k.Box(10, 10, 10)
	require.NoError(t, err)

	model, err := k.Tessellate(box, 20)
	require.NoError(t, err)
	assert.Greater(t, model.TriangleCount(), 0)

	bbox := model.BoundingBox()
	assert.InDelta(t, 10.0, bbox.Size().X, 1.5)

	_, err = k.Tessellate(box, 0)
	assert.Error(t, err)
}
