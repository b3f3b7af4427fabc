package geometry

import (
	"math"
	"testing"
)

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.IsEmpty() {
		t.Fatalf("new bounding box should be empty")
	}

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.Extend(NewVector3(-1, 0, 2))

	if expected := NewVector3(-1, 0, 2); bbox.Min != expected {
		t.Errorf("Min failed: expected %v, got %v", expected, bbox.Min)
	}
	if expected := NewVector3(4, 5, 6); bbox.Max != expected {
		t.Errorf("Max failed: expected %v, got %v", expected, bbox.Max)
	}
}

func TestBoundingBoxSizeCenter(t *testing.T) {
	bbox := NewBoundingBoxFromPoints(NewVector3(0, 0, 0), NewVector3(10, 20, 30))

	if expected := NewVector3(10, 20, 30); bbox.Size() != expected {
		t.Errorf("Size failed: expected %v, got %v", expected, bbox.Size())
	}
	if expected := NewVector3(5, 10, 15); bbox.Center() != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, bbox.Center())
	}
	if bbox.MaxDimension() != 30 {
		t.Errorf("MaxDimension failed: expected 30, got %v", bbox.MaxDimension())
	}
}

func TestBoundingBoxEmptyHasZeroSize(t *testing.T) {
	bbox := NewBoundingBox()
	if bbox.Size() != (Vector3{}) || bbox.Center() != (Vector3{}) {
		t.Errorf("empty box should report zero size and center, got %v / %v", bbox.Size(), bbox.Center())
	}
}

func TestBoundingBoxUnion(t *testing.T) {
	a := NewBoundingBoxFromPoints(NewVector3(0, 0, 0), NewVector3(1, 1, 1))
	b := NewBoundingBoxFromPoints(NewVector3(-2, 0.5, 0), NewVector3(0, 3, 0.5))
	a.Union(b)
	a.Union(NewBoundingBox())

	if expected := NewVector3(-2, 0, 0); a.Min != expected {
		t.Errorf("Union min failed: expected %v, got %v", expected, a.Min)
	}
	if expected := NewVector3(1, 3, 1); a.Max != expected {
		t.Errorf("Union max failed: expected %v, got %v", expected, a.Max)
	}
}

func TestBoundingBoxTransform(t *testing.T) {
	bbox := NewBoundingBoxFromPoints(NewVector3(-1, -1, -1), NewVector3(1, 1, 1))
	moved := bbox.Transform(Translation(NewVector3(5, 0, 0)).Mul(UniformScaling(2)))

	if expected := NewVector3(3, -2, -2); moved.Min != expected {
		t.Errorf("Transform min failed: expected %v, got %v", expected, moved.Min)
	}
	if expected := NewVector3(7, 2, 2); moved.Max != expected {
		t.Errorf("Transform max failed: expected %v, got %v", expected, moved.Max)
	}
	if math.Abs(moved.Diagonal()-math.Sqrt(48)) > 1e-10 {
		t.Errorf("Diagonal failed: got %v", moved.Diagonal())
	}
}
