package util

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	t.Parallel()

	// Istanbul to Ankara, roughly 350 km.
	got := HaversineKm(41.0082, 28.9784, 39.9334, 32.8597)
	if math.Abs(got-350) > 10 {
		t.Errorf("Istanbul-Ankara distance: got %.1f km, want ~350", got)
	}

	if d := HaversineKm(40.0, 30.0, 40.0, 30.0); d != 0 {
		t.Errorf("zero distance: got %v", d)
	}
}

func TestNearestVertexKm(t *testing.T) {
	t.Parallel()

	lines := []NamedLine{
		{Name: "North Anatolian Fault", Coords: [][2]float64{{40.8, 29.0}, {40.9, 31.0}}},
		{Name: "East Anatolian Fault", Coords: [][2]float64{{38.0, 38.5}}},
	}

	km, name, ok := NearestVertexKm(40.8, 29.1, lines)
	if !ok {
		t.Fatal("expected a nearest vertex")
	}
	if name != "North Anatolian Fault" {
		t.Errorf("nearest line: got %q", name)
	}
	if km > 20 {
		t.Errorf("nearest distance: got %.1f km, want < 20", km)
	}

	if _, _, ok := NearestVertexKm(40, 30, nil); ok {
		t.Error("empty set should report ok=false")
	}
}
