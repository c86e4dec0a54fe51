package model

// GeoPoint mirrors the backend's GeoJSON point: coordinates are [lon, lat].
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Valid reports whether the point carries a usable coordinate pair.
func (p *GeoPoint) Valid() bool {
	return p != nil && len(p.Coordinates) >= 2
}

// LatLon returns the point as (lat, lon).
func (p *GeoPoint) LatLon() (float64, float64) {
	return p.Coordinates[1], p.Coordinates[0]
}

// RiskRegion is a scored geographic cluster of recent seismic activity,
// produced by the analysis backend on every refresh. Discarded wholesale
// when the next snapshot arrives.
type RiskRegion struct {
	ID      int     `json:"id"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Score   float64 `json:"score"`
	Density int     `json:"density"`
}

// EarthquakeEvent is a single recent earthquake as reported by the backend.
type EarthquakeEvent struct {
	GeoJSON   *GeoPoint `json:"geojson"`
	Mag       float64   `json:"mag"`
	Location  string    `json:"location"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Depth     float64   `json:"depth"`
	Timestamp float64   `json:"timestamp"`
}

// FaultLine is a named polyline of (lat, lon) vertices. Static reference
// data returned alongside every snapshot.
type FaultLine struct {
	Name   string       `json:"name"`
	Coords [][2]float64 `json:"coords"`
}

// RiskSnapshot is the full payload of GET /api/risk.
type RiskSnapshot struct {
	Status            string            `json:"status,omitempty"`
	Message           string            `json:"message,omitempty"`
	Error             string            `json:"error,omitempty"`
	RiskRegions       []RiskRegion      `json:"risk_regions"`
	RecentEarthquakes []EarthquakeEvent `json:"recent_earthquakes"`
	FaultLines        []FaultLine       `json:"fault_lines"`
}

// ErrorMessage returns the snapshot's error text, or "" when the snapshot
// is healthy. The backend signals failure either through an explicit error
// field or through status=error with a message.
func (s *RiskSnapshot) ErrorMessage() string {
	if s.Error != "" {
		return s.Error
	}
	if s.Status == "error" {
		if s.Message != "" {
			return s.Message
		}
		return "risk analysis failed"
	}
	return ""
}

// Coordinates is a single optional (lat, lon) pair supplied by the viewer.
// Held only for the duration of a request; never persisted.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// InRange reports whether the pair is a valid WGS84 coordinate.
func (c Coordinates) InRange() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}
