package render

import (
	"testing"

	"quakewatch/internal/model"
)

func TestRiskColorBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  string
	}{
		{9.5, "red"},
		{7.0, "red"},
		{6.99, "orange"},
		{4.0, "orange"},
		{3.99, "green"},
		{0, "green"},
	}
	for _, tt := range tests {
		if got := RiskColor(tt.score); got != tt.want {
			t.Errorf("RiskColor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestMagnitudeStyleTiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mag        float64
		wantColor  string
		wantRadius int
	}{
		{10.0, "#e74c3c", 12},
		{5.0, "#e74c3c", 12},
		{4.9, "#f39c12", 8},
		{4.0, "#f39c12", 8},
		{3.5, "#3498db", 6},
		{2.1, "#2ecc71", 5},
	}
	for _, tt := range tests {
		color, radius := MagnitudeStyle(tt.mag)
		if color != tt.wantColor || radius != tt.wantRadius {
			t.Errorf("MagnitudeStyle(%v) = (%q, %d), want (%q, %d)",
				tt.mag, color, radius, tt.wantColor, tt.wantRadius)
		}
	}
}

func TestMagnitudeClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mag  float64
		want string
	}{
		{6.2, "mag-high"},
		{5.0, "mag-high"},
		{4.0, "mag-medium"},
		{3.9, "mag-low"},
	}
	for _, tt := range tests {
		if got := MagnitudeClass(tt.mag); got != tt.want {
			t.Errorf("MagnitudeClass(%v) = %q, want %q", tt.mag, got, tt.want)
		}
	}
}

func point(lon, lat float64) *model.GeoPoint {
	return &model.GeoPoint{Type: "Point", Coordinates: []float64{lon, lat}}
}

func sampleSnapshot() *model.RiskSnapshot {
	return &model.RiskSnapshot{
		Status: "success",
		RiskRegions: []model.RiskRegion{
			{ID: 0, Lat: 40.7, Lon: 29.9, Score: 8.0, Density: 12},
			{ID: 1, Lat: 38.4, Lon: 27.1, Score: 5.5, Density: 4},
		},
		RecentEarthquakes: []model.EarthquakeEvent{
			{GeoJSON: point(29.9, 40.7), Mag: 5.4, Location: "Marmara", Date: "2026-08-30", Time: "12:01", Depth: 9},
			{GeoJSON: point(27.1, 38.4), Mag: 3.2, Location: "Izmir", Date: "2026-08-30", Time: "13:22", Depth: 7},
		},
		FaultLines: []model.FaultLine{
			{Name: "North Anatolian Fault", Coords: [][2]float64{{40.8, 29.0}, {40.9, 30.5}}},
		},
	}
}

func TestBuildFullReplacement(t *testing.T) {
	t.Parallel()

	snap := sampleSnapshot()
	first := Build(snap, nil)
	second := Build(snap, nil)

	// Each build starts from scratch; nothing accumulates across calls.
	if len(first.Map.Events) != 2 || len(second.Map.Events) != 2 {
		t.Errorf("event markers: got %d then %d, want 2 both times",
			len(first.Map.Events), len(second.Map.Events))
	}
	if len(second.Map.Regions) != 2 {
		t.Errorf("region markers: got %d, want 2", len(second.Map.Regions))
	}
	if len(second.Map.FaultLines) != 1 {
		t.Errorf("fault polylines: got %d, want 1", len(second.Map.FaultLines))
	}
	if len(second.List.Items) != 2 {
		t.Errorf("list items: got %d, want 2", len(second.List.Items))
	}
}

func TestBuildRegionRadius(t *testing.T) {
	t.Parallel()

	doc := Build(sampleSnapshot(), nil)
	if got, want := doc.Map.Regions[0].Radius, 8.0*1.5; got != want {
		t.Errorf("region radius: got %v, want %v", got, want)
	}
}

func TestBuildEmptyCollections(t *testing.T) {
	t.Parallel()

	doc := Build(&model.RiskSnapshot{Status: "success"}, nil)
	if doc.List.Notice != NoticeInsufficientData {
		t.Errorf("notice: got %q, want %q", doc.List.Notice, NoticeInsufficientData)
	}
	if doc.Map.Fit != nil {
		t.Error("empty snapshot should keep the default view, not fit bounds")
	}
	if doc.Map.Center != [2]float64{DefaultLat, DefaultLon} || doc.Map.Zoom != DefaultZoom {
		t.Errorf("default view: got center %v zoom %d", doc.Map.Center, doc.Map.Zoom)
	}
}

func TestBuildErrorSnapshotKeepsFaults(t *testing.T) {
	t.Parallel()

	snap := sampleSnapshot()
	snap.Status = "error"
	snap.Message = "model not trained yet"

	doc := Build(snap, nil)
	if doc.List.Error != "model not trained yet" {
		t.Errorf("list error: got %q", doc.List.Error)
	}
	if len(doc.Map.FaultLines) != 1 {
		t.Errorf("fault polylines on error: got %d, want 1", len(doc.Map.FaultLines))
	}
	if len(doc.Map.Events) != 0 || len(doc.Map.Regions) != 0 {
		t.Errorf("error snapshot must not draw events (%d) or regions (%d)",
			len(doc.Map.Events), len(doc.Map.Regions))
	}
	if doc.Map.Fit == nil {
		t.Error("fault vertices were drawn, expected fitted bounds")
	}
}

func TestBuildSkipsInvalidCoordinates(t *testing.T) {
	t.Parallel()

	snap := &model.RiskSnapshot{
		Status: "success",
		RecentEarthquakes: []model.EarthquakeEvent{
			{GeoJSON: nil, Mag: 4.1},
			{GeoJSON: &model.GeoPoint{Type: "Point"}, Mag: 4.2},
			{GeoJSON: point(28.9, 41.0), Mag: 4.1, Location: "Istanbul"},
		},
	}
	doc := Build(snap, nil)
	if len(doc.Map.Events) != 1 {
		t.Errorf("events: got %d, want 1 (invalid point skipped)", len(doc.Map.Events))
	}
}

func TestBuildViewerDistance(t *testing.T) {
	t.Parallel()

	viewer := &model.Coordinates{Lat: 41.0, Lon: 28.9}
	doc := Build(sampleSnapshot(), viewer)
	for i, item := range doc.List.Items {
		if item.DistanceKm == nil {
			t.Fatalf("item %d: missing viewer distance", i)
		}
		if *item.DistanceKm <= 0 {
			t.Errorf("item %d: distance %v, want > 0", i, *item.DistanceKm)
		}
	}

	doc = Build(sampleSnapshot(), nil)
	if doc.List.Items[0].DistanceKm != nil {
		t.Error("distance must be absent when no viewer coordinates are supplied")
	}
}

func TestBuildNilSnapshot(t *testing.T) {
	t.Parallel()

	doc := Build(nil, nil)
	if doc.List.Notice != NoticeWarmingUp {
		t.Errorf("notice: got %q, want %q", doc.List.Notice, NoticeWarmingUp)
	}
	if len(doc.Map.Events) != 0 || len(doc.Map.Regions) != 0 || len(doc.Map.FaultLines) != 0 {
		t.Error("warming-up document must be empty")
	}
}
