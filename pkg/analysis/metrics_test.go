package analysis

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/philipparndt/gobbox/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureKnownBoxes(t *testing.T) {
	tests := []struct {
		name        string
		box         geometry.BoundingBox
		dimensions  Dimensions
		surfaceArea float64
		volume      float64
	}{
		{
			name:        "unit cube",
			box:         geometry.BoundingBoxFromCorners(0, 0, 0, 1, 1, 1),
			dimensions:  Dimensions{X: 1, Y: 1, Z: 1},
			surfaceArea: 6,
			volume:      1,
		},
		{
			name:        "flat box",
			box:         geometry.BoundingBoxFromCorners(0, 0, 0, 5, 0, 3),
			dimensions:  Dimensions{X: 5, Y: 0, Z: 3},
			surfaceArea: 30,
			volume:      0,
		},
		{
			name:        "offset box",
			box:         geometry.BoundingBoxFromCorners(-2, -3, -4, 2, 3, 4),
			dimensions:  Dimensions{X: 4, Y: 6, Z: 8},
			surfaceArea: 208,
			volume:      192,
		},
		{
			name:        "line",
			box:         geometry.BoundingBoxFromCorners(1, 1, 1, 7, 1, 1),
			dimensions:  Dimensions{X: 6, Y: 0, Z: 0},
			surfaceArea: 0,
			volume:      0,
		},
		{
			name:        "point",
			box:         geometry.BoundingBoxFromCorners(3, 3, 3, 3, 3, 3),
			dimensions:  Dimensions{},
			surfaceArea: 0,
			volume:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Measure(tt.box, "mm")
			require.NoError(t, err)

			assert.Equal(t, tt.box, result.BoundingBox)
			assert.Equal(t, tt.dimensions, result.Dimensions)
			assert.Equal(t, tt.surfaceArea, result.SurfaceArea)
			assert.Equal(t, tt.volume, result.Volume)
			assert.Equal(t, "mm", result.Unit)
		})
	}
}

func TestComputeDimensionsPerAxis(t *testing.T) {
	box := geometry.BoundingBoxFromCorners(0.1, -7.25, 1e6, 0.3, 2.5, 1e6+0.5)
	d := ComputeDimensions(box)

	assert.Equal(t, 0.3-0.1, d.X)
	assert.Equal(t, 2.5-(-7.25), d.Y)
	assert.Equal(t, (1e6+0.5)-1e6, d.Z)
}

func TestComputeSurfaceAreaMonotonic(t *testing.T) {
	base := Dimensions{X: 2, Y: 3, Z: 4}
	area := ComputeSurfaceArea(base)

	grown := []Dimensions{
		{X: 2.5, Y: 3, Z: 4},
		{X: 2, Y: 3.5, Z: 4},
		{X: 2, Y: 3, Z: 4.5},
	}
	for _, d := range grown {
		assert.GreaterOrEqual(t, ComputeSurfaceArea(d), area, "growing %v", d)
	}
}

func TestMeasureNonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		minX, minY, minZ := rng.Float64()*200-100, rng.Float64()*200-100, rng.Float64()*200-100
		box := geometry.BoundingBoxFromCorners(
			minX, minY, minZ,
			minX+rng.Float64()*50, minY+rng.Float64()*50, minZ+rng.Float64()*50,
		)

		result, err := Measure(box, "")
		require.NoError(t, err)

		assert.Equal(t, box.Max.X-box.Min.X, result.Dimensions.X)
		assert.Equal(t, box.Max.Y-box.Min.Y, result.Dimensions.Y)
		assert.Equal(t, box.Max.Z-box.Min.Z, result.Dimensions.Z)
		assert.GreaterOrEqual(t, result.SurfaceArea, 0.0)
		assert.GreaterOrEqual(t, result.Volume, 0.0)
	}
}

func TestMeasureIdempotent(t *testing.T) {
	box := geometry.BoundingBoxFromCorners(-1.1, 0.3, 2.7, 4.9, 8.01, 3.3)

	first, err := Measure(box, "in")
	require.NoError(t, err)
	second, err := Measure(box, "in")
	require.NoError(t, err)

	assert.Equal(t, math.Float64bits(first.SurfaceArea), math.Float64bits(second.SurfaceArea))
	assert.Equal(t, math.Float64bits(first.Volume), math.Float64bits(second.Volume))
	assert.Equal(t, first, second)
}

func TestMeasureConcurrent(t *testing.T) {
	box := geometry.BoundingBoxFromCorners(-2, -3, -4, 2, 3, 4)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := Measure(box, "mm")
			assert.NoError(t, err)
			assert.Equal(t, 192.0, result.Volume)
		}()
	}
	wg.Wait()
}

func TestMeasureUnit(t *testing.T) {
	box := geometry.BoundingBoxFromCorners(0, 0, 0, 1, 1, 1)

	result, err := Measure(box, "")
	require.NoError(t, err)
	assert.Equal(t, UnknownUnit, result.Unit)

	result, err = Measure(box, "  MILLIMETRE ")
	require.NoError(t, err)
	assert.Equal(t, "  MILLIMETRE ", result.Unit, "unit must pass through untouched")
}

func TestMeasureRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		box  geometry.BoundingBox
		axis string
	}{
		{"min.x greater than max.x", geometry.BoundingBoxFromCorners(5, 0, 0, 0, 1, 1), "x"},
		{"min.y greater than max.y", geometry.BoundingBoxFromCorners(0, 2, 0, 1, 1, 1), "y"},
		{"NaN", geometry.BoundingBoxFromCorners(0, 0, math.NaN(), 1, 1, 1), "z"},
		{"positive infinity", geometry.BoundingBoxFromCorners(0, 0, 0, math.Inf(1), 1, 1), "x"},
		{"negative infinity", geometry.BoundingBoxFromCorners(0, math.Inf(-1), 0, 1, 1, 1), "y"},
		{"empty accumulator", geometry.NewBoundingBox(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Measure(tt.box, "mm")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidBoundingBox)

			var invalid *InvalidBoundingBoxError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.axis, invalid.Axis)
			assert.Equal(t, MeasurementResult{}, result)
		})
	}
}

func TestMeasureCorners(t *testing.T) {
	result, err := MeasureCorners(-2, -3, -4, 2, 3, 4, "cm")
	require.NoError(t, err)

	assert.Equal(t, Dimensions{X: 4, Y: 6, Z: 8}, result.Dimensions)
	assert.Equal(t, 208.0, result.SurfaceArea)
	assert.Equal(t, "cm", result.Unit)

	_, err = MeasureCorners(5, 0, 0, 0, 1, 1, "")
	assert.ErrorIs(t, err, ErrInvalidBoundingBox)
}
