package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBoundingBox is matched by every *InvalidBoundingBoxError via errors.Is
var ErrInvalidBoundingBox = errors.New("invalid bounding box")

// InvalidBoundingBoxError describes why a bounding box was rejected.
// Axis is "x", "y" or "z", or empty when the box has no points at all.
type InvalidBoundingBoxError struct {
	Axis   string
	Min    float64
	Max    float64
	Reason string
}

func (e *InvalidBoundingBoxError) Error() string {
	if e.Axis == "" {
		return fmt.Sprintf("invalid bounding box: %s", e.Reason)
	}
	return fmt.Sprintf("invalid bounding box: %s on %s axis (min %v, max %v)", e.Reason, e.Axis, e.Min, e.Max)
}

// Is makes errors.Is(err, ErrInvalidBoundingBox) succeed
func (e *InvalidBoundingBoxError) Is(target error) bool {
	return target == ErrInvalidBoundingBox
}

var axisNames = [3]string{"x", "y", "z"}

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Vector3 `json:"min" yaml:"min"`
	Max Vector3 `json:"max" yaml:"max"`
}

// NewBoundingBox creates an empty bounding box ready to be extended
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vector3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Vector3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// BoundingBoxFromCorners builds a box from the six extremal coordinates as given.
// The values are not reordered; use Validate to check them.
func BoundingBoxFromCorners(minX, minY, minZ, maxX, maxY, maxZ float64) BoundingBox {
	return BoundingBox{
		Min: NewVector3(minX, minY, minZ),
		Max: NewVector3(maxX, maxY, maxZ),
	}
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// IsEmpty reports whether the box is still the untouched accumulator of NewBoundingBox
func (b BoundingBox) IsEmpty() bool {
	return b == NewBoundingBox()
}

// Validate checks that every coordinate is finite and Min <= Max on each axis
func (b BoundingBox) Validate() error {
	if b.IsEmpty() {
		return &InvalidBoundingBoxError{Reason: "no points"}
	}
	for axis, name := range axisNames {
		lo, hi := b.Min.Axis(axis), b.Max.Axis(axis)
		if !isFinite(lo) || !isFinite(hi) {
			return &InvalidBoundingBoxError{Axis: name, Min: lo, Max: hi, Reason: "non-finite coordinate"}
		}
		if lo > hi {
			return &InvalidBoundingBoxError{Axis: name, Min: lo, Max: hi, Reason: "min greater than max"}
		}
	}
	return nil
}

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Vector3 {
	return Vector3{
		X: (b.Min.X + b.Max.X) / 2.0,
		Y: (b.Min.Y + b.Max.Y) / 2.0,
		Z: (b.Min.Z + b.Max.Z) / 2.0,
	}
}

// Diagonal returns the length of the bounding box diagonal
func (b BoundingBox) Diagonal() float64 {
	return b.Size().Length()
}
