package render

import (
	"fmt"

	"github.com/paulmach/orb"

	"quakewatch/internal/model"
	"quakewatch/internal/util"
)

// Default Turkey-wide view used whenever nothing gets drawn.
const (
	DefaultLat  = 39.9
	DefaultLon  = 35.8
	DefaultZoom = 6
)

// Fixed fault-line stroke style.
const (
	faultColor   = "#DC143C"
	faultWeight  = 4
	faultOpacity = 0.8
	faultDash    = "10, 5"
)

// Risk-region radius multiplier: radius = score * regionRadiusScale.
const regionRadiusScale = 1.5

// Messages surfaced through the list view.
const (
	NoticeInsufficientData = "Not enough recent earthquake data; risk is currently low."
	NoticeWarmingUp        = "The analysis service is waking up. Refresh in a moment."
)

// RiskColor maps a 0-10 risk score onto the three-tier palette. The upper
// threshold of each tier is inclusive.
func RiskColor(score float64) string {
	if score >= 7.0 {
		return "red"
	}
	if score >= 4.0 {
		return "orange"
	}
	return "green"
}

// MagnitudeStyle returns the fixed color/radius encoding for an earthquake
// magnitude. Tiers are buckets, not a continuous scale: everything at or
// above 5.0 gets the same largest marker.
func MagnitudeStyle(mag float64) (color string, radius int) {
	switch {
	case mag >= 5.0:
		return "#e74c3c", 12
	case mag >= 4.0:
		return "#f39c12", 8
	case mag >= 3.0:
		return "#3498db", 6
	default:
		return "#2ecc71", 5
	}
}

// MagnitudeClass returns the list-view tier for a magnitude.
func MagnitudeClass(mag float64) string {
	switch {
	case mag >= 5.0:
		return "mag-high"
	case mag >= 4.0:
		return "mag-medium"
	default:
		return "mag-low"
	}
}

// WarmingUp builds the document shown while the backend cold-starts: default
// view, no markers, a neutral waiting notice.
func WarmingUp() *Document {
	doc := emptyDocument()
	doc.List.Notice = NoticeWarmingUp
	return doc
}

// Build transforms a snapshot into one complete dashboard document. Layer
// order is fault lines, then events, then risk regions on top. When the
// snapshot carries an error, fault lines are still drawn (they are static
// reference data) but events and regions are skipped. When viewer
// coordinates are supplied, list entries carry the distance to the viewer.
func Build(snapshot *model.RiskSnapshot, viewer *model.Coordinates) *Document {
	if snapshot == nil {
		return WarmingUp()
	}

	doc := emptyDocument()
	var drawn orb.MultiPoint

	for _, fault := range snapshot.FaultLines {
		line := FaultPolyline{
			Name:    fault.Name,
			LatLons: fault.Coords,
			Color:   faultColor,
			Weight:  faultWeight,
			Opacity: faultOpacity,
			Dash:    faultDash,
			Popup:   fmt.Sprintf("%s — active fault line", fault.Name),
		}
		doc.Map.FaultLines = append(doc.Map.FaultLines, line)
		for _, v := range fault.Coords {
			drawn = append(drawn, orb.Point{v[1], v[0]})
		}
	}

	if msg := snapshot.ErrorMessage(); msg != "" {
		doc.List.Error = msg
		fitOrReset(doc, drawn)
		return doc
	}

	for i, eq := range snapshot.RecentEarthquakes {
		if !eq.GeoJSON.Valid() {
			continue
		}
		lat, lon := eq.GeoJSON.LatLon()
		drawn = append(drawn, orb.Point{lon, lat})

		color, radius := MagnitudeStyle(eq.Mag)
		location := eq.Location
		if location == "" {
			location = "Unknown"
		}
		doc.Map.Events = append(doc.Map.Events, EventMarker{
			LatLon:      [2]float64{lat, lon},
			Radius:      radius,
			Color:       "#000",
			FillColor:   color,
			FillOpacity: 0.8,
			Weight:      2,
			Popup: fmt.Sprintf("Earthquake #%d — M%.1f<br>%s<br>%s %s<br>Depth: %.0f km",
				i+1, eq.Mag, location, eq.Date, eq.Time, eq.Depth),
		})

		item := ListItem{
			Magnitude: eq.Mag,
			Class:     MagnitudeClass(eq.Mag),
			Location:  location,
			Date:      eq.Date,
			Time:      eq.Time,
			Depth:     eq.Depth,
		}
		if viewer != nil {
			km := util.HaversineKm(viewer.Lat, viewer.Lon, lat, lon)
			item.DistanceKm = &km
		}
		doc.List.Items = append(doc.List.Items, item)
	}

	for _, region := range snapshot.RiskRegions {
		drawn = append(drawn, orb.Point{region.Lon, region.Lat})
		color := RiskColor(region.Score)
		doc.Map.Regions = append(doc.Map.Regions, RegionMarker{
			LatLon:      [2]float64{region.Lat, region.Lon},
			Radius:      region.Score * regionRadiusScale,
			Color:       color,
			FillColor:   color,
			FillOpacity: 0.5,
			Weight:      3,
			Popup: fmt.Sprintf("Risk center #%d<br>Score: %.1f / 10<br>Density: %d earthquakes",
				region.ID+1, region.Score, region.Density),
		})
	}

	if len(snapshot.RecentEarthquakes) == 0 && len(snapshot.RiskRegions) == 0 {
		doc.List.Notice = NoticeInsufficientData
	}

	fitOrReset(doc, drawn)
	return doc
}

// NearestFault annotates how far the viewer is from the closest drawn fault
// vertex. Used by the dashboard when the caller supplies coordinates.
func NearestFault(viewer model.Coordinates, faults []model.FaultLine) (km float64, name string, ok bool) {
	lines := make([]util.NamedLine, 0, len(faults))
	for _, f := range faults {
		lines = append(lines, util.NamedLine{Name: f.Name, Coords: f.Coords})
	}
	return util.NearestVertexKm(viewer.Lat, viewer.Lon, lines)
}

func emptyDocument() *Document {
	return &Document{
		Map: MapView{
			Center:     [2]float64{DefaultLat, DefaultLon},
			Zoom:       DefaultZoom,
			FaultLines: []FaultPolyline{},
			Events:     []EventMarker{},
			Regions:    []RegionMarker{},
		},
		List: ListView{Items: []ListItem{}},
	}
}

// fitOrReset sets the viewport to the bounding box of everything drawn, or
// leaves the default region-and-zoom when the surface is empty.
func fitOrReset(doc *Document, drawn orb.MultiPoint) {
	if len(drawn) == 0 {
		return
	}
	bound := drawn.Bound()
	doc.Map.Fit = &Bounds{
		SouthWest: [2]float64{bound.Min[1], bound.Min[0]},
		NorthEast: [2]float64{bound.Max[1], bound.Max[0]},
	}
}
