package analysis

import (
	"github.com/philipparndt/gobbox/pkg/geometry"
)

// UnknownUnit is the unit label used when the caller supplies none
const UnknownUnit = "unknown"

// ErrInvalidBoundingBox is matched by every *InvalidBoundingBoxError
var ErrInvalidBoundingBox = geometry.ErrInvalidBoundingBox

// InvalidBoundingBoxError is returned by Measure for inverted or non-finite boxes
type InvalidBoundingBoxError = geometry.InvalidBoundingBoxError

// Dimensions holds the per-axis extents of a bounding box
type Dimensions struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// MeasurementResult describes a bounding box and its derived metrics.
// Values are full precision; rounding is left to the presentation layer.
type MeasurementResult struct {
	BoundingBox geometry.BoundingBox `json:"boundingBox" yaml:"boundingBox"`
	Dimensions  Dimensions           `json:"dimensions" yaml:"dimensions"`
	SurfaceArea float64              `json:"surfaceArea" yaml:"surfaceArea"`
	Volume      float64              `json:"volume" yaml:"volume"`
	Unit        string               `json:"unit" yaml:"unit"`
}

// ComputeDimensions returns max - min for each axis independently
func ComputeDimensions(box geometry.BoundingBox) Dimensions {
	return Dimensions{
		X: box.Max.X - box.Min.X,
		Y: box.Max.Y - box.Min.Y,
		Z: box.Max.Z - box.Min.Z,
	}
}

// ComputeSurfaceArea returns the surface area of a rectangular box with the given edges.
// A zero edge collapses the box to a rectangle counted on both sides.
func ComputeSurfaceArea(d Dimensions) float64 {
	return 2 * (d.X*d.Y + d.X*d.Z + d.Y*d.Z)
}

// ComputeVolume returns the volume of a rectangular box with the given edges
func ComputeVolume(d Dimensions) float64 {
	return d.X * d.Y * d.Z
}

// Measure validates box and returns its dimensions, surface area and volume.
// The unit is passed through untouched; an empty unit becomes UnknownUnit.
// Inverted or non-finite boxes are rejected with *InvalidBoundingBoxError.
func Measure(box geometry.BoundingBox, unit string) (MeasurementResult, error) {
	if err := box.Validate(); err != nil {
		return MeasurementResult{}, err
	}

	if unit == "" {
		unit = UnknownUnit
	}

	dimensions := ComputeDimensions(box)
	return MeasurementResult{
		BoundingBox: box,
		Dimensions:  dimensions,
		SurfaceArea: ComputeSurfaceArea(dimensions),
		Volume:      ComputeVolume(dimensions),
		Unit:        unit,
	}, nil
}

// MeasureCorners measures the box spanned by six extremal coordinates
func MeasureCorners(minX, minY, minZ, maxX, maxY, maxZ float64, unit string) (MeasurementResult, error) {
	return Measure(geometry.BoundingBoxFromCorners(minX, minY, minZ, maxX, maxY, maxZ), unit)
}
