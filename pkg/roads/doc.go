// Package roads converts road-network data into searchable graphs.
//
// # Input Formats
//
//   - KML: Placemark elements with SimpleData fields DECLARED, ROADNAME and
//     LOCALNAME and a single LineString coordinates list of "lon,lat[,alt]"
//     tuples ([ReadKML]).
//   - Roads JSON: [{"declared_name": "...", "points": [[lon, lat], ...]}]
//     ([ReadJSON], [WriteJSON]).
//
// [WriteCSV] flattens placemarks to declared_name,lat,lon rows.
//
// # Graph Construction
//
// [BuildGraph] turns every point into a node positioned at (lon, lat) and
// labelled with the road's declared name. Consecutive points of a placemark
// are adjacent. Separate roads are stitched together by joining each node to
// its nearest other node when they lie within [Options.MaxDistSquared], found
// with an R-tree.
package roads

// Placemark is one road segment.
type Placemark struct {
	DeclaredName string
	RoadName     string
	LocalName    string
	Points       []RoadPoint
}

// RoadPoint is a WGS84 coordinate.
type RoadPoint struct {
	Lon float64
	Lat float64
}
