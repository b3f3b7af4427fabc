package geometry

import (
	"math"
	"testing"
)

func TestVector3AddSub(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)

	if got, expected := v1.Add(v2), NewVector3(5, 7, 9); got != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, got)
	}
	if got, expected := v2.Sub(v1), NewVector3(3, 3, 3); got != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, got)
	}
}

func TestVector3ScaleNegate(t *testing.T) {
	// Connector lines point back toward the organ center at 0.3x the anchor offset
	anchor := NewVector3(1.5, 0.6, 0.4)
	tail := anchor.Negate().Scale(0.3)

	expected := NewVector3(-0.45, -0.18, -0.12)
	if tail.Distance(expected) > 1e-12 {
		t.Errorf("Negate/Scale failed: expected %v, got %v", expected, tail)
	}
}

func TestVector3Length(t *testing.T) {
	v := NewVector3(3, 4, 0)
	if math.Abs(v.Length()-5.0) > 1e-10 {
		t.Errorf("Length failed: expected 5, got %v", v.Length())
	}
}

func TestVector3Normalize(t *testing.T) {
	normalized := NewVector3(3, 4, 0).Normalize()
	if math.Abs(normalized.Length()-1.0) > 1e-10 {
		t.Errorf("Normalize failed: expected length 1, got %v", normalized.Length())
	}

	if zero := (Vector3{}).Normalize(); zero != (Vector3{}) {
		t.Errorf("Normalize of zero vector failed: got %v", zero)
	}
}

func TestVector3Cross(t *testing.T) {
	result := NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0))
	if expected := NewVector3(0, 0, 1); result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3MaxComponent(t *testing.T) {
	if got := NewVector3(2, 7, -9).MaxComponent(); got != 7 {
		t.Errorf("MaxComponent failed: expected 7, got %v", got)
	}
}

func TestVector3ArrayRoundTrip(t *testing.T) {
	a := [3]float64{-1.2, -0.6, 0.3}
	if got := FromArray(a).Array(); got != a {
		t.Errorf("Array failed: expected %v, got %v", a, got)
	}
}
