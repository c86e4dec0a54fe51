package render

// Document is one full redraw of the dashboard: every call to Build produces
// a complete replacement, never an incremental merge. The browser shell
// clears all layers and draws exactly what the document says.
type Document struct {
	Map  MapView  `json:"map"`
	List ListView `json:"list"`
}

// MapView describes the map surface for one refresh cycle.
type MapView struct {
	Center     [2]float64      `json:"center"`
	Zoom       int             `json:"zoom"`
	Fit        *Bounds         `json:"fit,omitempty"`
	FaultLines []FaultPolyline `json:"fault_lines"`
	Events     []EventMarker   `json:"events"`
	Regions    []RegionMarker  `json:"regions"`
}

// Bounds is the lat/lon bounding box the viewport should fit to.
type Bounds struct {
	SouthWest [2]float64 `json:"south_west"`
	NorthEast [2]float64 `json:"north_east"`
}

// FaultPolyline is a named dashed polyline, drawn on the bottom layer.
type FaultPolyline struct {
	Name    string       `json:"name"`
	LatLons [][2]float64 `json:"latlons"`
	Color   string       `json:"color"`
	Weight  int          `json:"weight"`
	Opacity float64      `json:"opacity"`
	Dash    string       `json:"dash"`
	Popup   string       `json:"popup"`
}

// EventMarker is one earthquake circle marker, drawn on the middle layer.
type EventMarker struct {
	LatLon      [2]float64 `json:"latlon"`
	Radius      int        `json:"radius"`
	Color       string     `json:"color"`
	FillColor   string     `json:"fill_color"`
	FillOpacity float64    `json:"fill_opacity"`
	Weight      int        `json:"weight"`
	Popup       string     `json:"popup"`
}

// RegionMarker is one risk-region circle marker, drawn on the top layer.
type RegionMarker struct {
	LatLon      [2]float64 `json:"latlon"`
	Radius      float64    `json:"radius"`
	Color       string     `json:"color"`
	FillColor   string     `json:"fill_color"`
	FillOpacity float64    `json:"fill_opacity"`
	Weight      int        `json:"weight"`
	Popup       string     `json:"popup"`
}

// ListView mirrors the drawn event set as text, or carries a notice when
// there is nothing to list.
type ListView struct {
	Notice string     `json:"notice,omitempty"`
	Error  string     `json:"error,omitempty"`
	Items  []ListItem `json:"items"`
}

// ListItem is one textual earthquake entry. Class carries the same
// magnitude tier used for the marker color on the map.
type ListItem struct {
	Magnitude  float64  `json:"magnitude"`
	Class      string   `json:"class"`
	Location   string   `json:"location"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	Depth      float64  `json:"depth"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}
