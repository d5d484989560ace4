package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.Extend(NewVector3(-1, 0, 2))

	expectedMin := NewVector3(-1, 0, 2)
	expectedMax := NewVector3(4, 5, 6)

	if bbox.Min != expectedMin {
		t.Errorf("Min failed: expected %v, got %v", expectedMin, bbox.Min)
	}
	if bbox.Max != expectedMax {
		t.Errorf("Max failed: expected %v, got %v", expectedMax, bbox.Max)
	}
}

func TestBoundingBoxFromCorners(t *testing.T) {
	bbox := BoundingBoxFromCorners(-2, -3, -4, 2, 3, 4)

	if bbox.Min != NewVector3(-2, -3, -4) || bbox.Max != NewVector3(2, 3, 4) {
		t.Errorf("FromCorners failed: got %v", bbox)
	}
}

func TestBoundingBoxSize(t *testing.T) {
	bbox := BoundingBoxFromCorners(0, 0, 0, 10, 20, 30)

	size := bbox.Size()
	expected := NewVector3(10, 20, 30)

	if size != expected {
		t.Errorf("Size failed: expected %v, got %v", expected, size)
	}
}

func TestBoundingBoxCenter(t *testing.T) {
	bbox := BoundingBoxFromCorners(0, 0, 0, 10, 20, 30)

	center := bbox.Center()
	expected := NewVector3(5, 10, 15)

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestBoundingBoxDiagonal(t *testing.T) {
	bbox := BoundingBoxFromCorners(0, 0, 0, 3, 4, 0)

	if math.Abs(bbox.Diagonal()-5.0) > 1e-10 {
		t.Errorf("Diagonal failed: expected 5, got %v", bbox.Diagonal())
	}
}

func TestBoundingBoxIsEmpty(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.IsEmpty() {
		t.Error("new bounding box should be empty")
	}

	bbox.Extend(NewVector3(1, 1, 1))
	if bbox.IsEmpty() {
		t.Error("extended bounding box should not be empty")
	}

	inverted := BoundingBoxFromCorners(math.MaxFloat64, 0, 0, 1, 1, 1)
	if inverted.IsEmpty() {
		t.Error("box from corners should not be empty")
	}
	err := inverted.Validate()
	var invalid *InvalidBoundingBoxError
	if !errors.As(err, &invalid) || invalid.Reason != "min greater than max" {
		t.Errorf("expected min greater than max, got %v", err)
	}
}

func TestBoundingBoxValidate(t *testing.T) {
	tests := []struct {
		name    string
		bbox    BoundingBox
		wantErr bool
		axis    string
	}{
		{"unit cube", BoundingBoxFromCorners(0, 0, 0, 1, 1, 1), false, ""},
		{"flat", BoundingBoxFromCorners(0, 0, 0, 5, 0, 3), false, ""},
		{"point", BoundingBoxFromCorners(1, 1, 1, 1, 1, 1), false, ""},
		{"inverted x", BoundingBoxFromCorners(5, 0, 0, 0, 1, 1), true, "x"},
		{"inverted z", BoundingBoxFromCorners(0, 0, 2, 1, 1, 1), true, "z"},
		{"NaN", BoundingBoxFromCorners(0, math.NaN(), 0, 1, 1, 1), true, "y"},
		{"Inf", BoundingBoxFromCorners(0, 0, 0, 1, 1, math.Inf(1)), true, "z"},
		{"empty", NewBoundingBox(), true, ""},
		{"max float min on x", BoundingBoxFromCorners(math.MaxFloat64, 0, 0, 1, 1, 1), true, "x"},
		{"accumulator limits on x only", BoundingBoxFromCorners(math.MaxFloat64, 0, 0, -math.MaxFloat64, 1, 1), true, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bbox.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidBoundingBox) {
				t.Fatalf("expected ErrInvalidBoundingBox, got %v", err)
			}
			var invalid *InvalidBoundingBoxError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *InvalidBoundingBoxError, got %T", err)
			}
			if invalid.Axis != tt.axis {
				t.Errorf("expected axis %q, got %q", tt.axis, invalid.Axis)
			}
		})
	}
}
