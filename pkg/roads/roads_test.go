package roads

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/searchviz/pkg/errors"
	"github.com/matzehuels/searchviz/pkg/graph"
)

const sampleKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document><Folder>
  <Placemark>
    <ExtendedData><SchemaData schemaUrl="#roads">
      <SimpleData name="DECLARED">PRINCES HIGHWAY</SimpleData>
      <SimpleData name="ROADNAME">PRINCES</SimpleData>
      <SimpleData name="LOCALNAME">HWY</SimpleData>
    </SchemaData></ExtendedData>
    <LineString><coordinates>144.9,-37.8 144.91,-37.81,0</coordinates></LineString>
  </Placemark>
  <Placemark>
    <ExtendedData><SchemaData>
      <SimpleData name="DECLARED">HUME FREEWAY</SimpleData>
    </SchemaData></ExtendedData>
    <MultiGeometry><LineString><coordinates>
      145.0,-37.7
    </coordinates></LineString></MultiGeometry>
  </Placemark>
</Folder></Document>
</kml>`

func TestReadKML(t *testing.T) {
	pms, err := ReadKML(strings.NewReader(sampleKML), 0)
	if err != nil {
		t.Fatalf("ReadKML() error: %v", err)
	}
	if len(pms) != 2 {
		t.Fatalf("ReadKML() = %d placemarks, want 2", len(pms))
	}
	first := pms[0]
	if first.DeclaredName != "PRINCES HIGHWAY" || first.RoadName != "PRINCES" || first.LocalName != "HWY" {
		t.Errorf("names = %q %q %q", first.DeclaredName, first.RoadName, first.LocalName)
	}
	want := []RoadPoint{{Lon: 144.9, Lat: -37.8}, {Lon: 144.91, Lat: -37.81}}
	if !slices.Equal(first.Points, want) {
		t.Errorf("points = %v, want %v", first.Points, want)
	}
	if got := pms[1].Points; !slices.Equal(got, []RoadPoint{{Lon: 145.0, Lat: -37.7}}) {
		t.Errorf("second placemark points = %v", got)
	}
}

func TestReadKMLLimit(t *testing.T) {
	pms, err := ReadKML(strings.NewReader(sampleKML), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(pms) != 1 || pms[0].DeclaredName != "PRINCES HIGHWAY" {
		t.Errorf("ReadKML(limit 1) = %+v", pms)
	}
}

func TestReadKMLErrors(t *testing.T) {
	tests := []struct {
		name string
		kml  string
	}{
		{"two coordinate sets", `<kml><Placemark><coordinates>1,2</coordinates><coordinates>3,4</coordinates></Placemark></kml>`},
		{"bad tuple", `<kml><Placemark><coordinates>1;2</coordinates></Placemark></kml>`},
		{"bad number", `<kml><Placemark><coordinates>x,2</coordinates></Placemark></kml>`},
		{"truncated", `<kml><Placemark><coordinates>1,2`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadKML(strings.NewReader(tt.kml), 0)
			if !apperrors.Is(err, apperrors.ErrCodeInvalidKML) {
				t.Errorf("ReadKML() error = %v, want INVALID_KML", err)
			}
		})
	}
}

func TestReadKMLFileMissing(t *testing.T) {
	_, err := ReadKMLFile(filepath.Join(t.TempDir(), "none.kml"), 0)
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("ReadKMLFile() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestJSON(t *testing.T) {
	pms := []Placemark{{DeclaredName: "A ROAD", Points: []RoadPoint{{Lon: 1.5, Lat: 2}, {Lon: 3, Lat: 4}}}}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, pms); err != nil {
		t.Fatal(err)
	}
	want := "[\n\t{\n\t\t\"declared_name\": \"A ROAD\",\n\t\t\"points\": [\n\t\t\t[\n\t\t\t\t1.5,\n\t\t\t\t2\n\t\t\t],\n"
	if !strings.HasPrefix(buf.String(), want) {
		t.Errorf("WriteJSON() = %q, want prefix %q", buf.String(), want)
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if back[0].DeclaredName != "A ROAD" || !slices.Equal(back[0].Points, pms[0].Points) {
		t.Errorf("ReadJSON() = %+v", back)
	}

	if _, err := ReadJSON(strings.NewReader("{")); !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("ReadJSON(bad) error = %v, want INVALID_FORMAT", err)
	}
}

func TestWriteCSV(t *testing.T) {
	pms := []Placemark{
		{DeclaredName: "A, ROAD", Points: []RoadPoint{{Lon: 144.5, Lat: -37.25}}},
		{DeclaredName: "B", Points: []RoadPoint{{Lon: 1, Lat: 2}, {Lon: 3, Lat: 4}}},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, pms); err != nil {
		t.Fatal(err)
	}
	want := "declared_name,lat,lon\n\"A, ROAD\",-37.25,144.5\nB,2,1\nB,4,3\n"
	if buf.String() != want {
		t.Errorf("WriteCSV() = %q, want %q", buf.String(), want)
	}
}

func TestBuildGraphSameRoad(t *testing.T) {
	pms := []Placemark{
		{Points: []RoadPoint{{Lon: 0, Lat: 0}}},
		{Points: []RoadPoint{{Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}}},
	}
	g, err := BuildGraph(pms, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", g.Len())
	}
	if got := g.Neighbors(0); len(got) != 0 {
		t.Errorf("Neighbors(0) = %v, want none", got)
	}
	if got := g.Neighbors(1); !slices.Equal(got, []graph.NodeID{2}) {
		t.Errorf("Neighbors(1) = %v, want [2]", got)
	}
	if got := g.Neighbors(2); !slices.Equal(got, []graph.NodeID{1}) {
		t.Errorf("Neighbors(2) = %v, want [1]", got)
	}
}

func TestBuildGraphJoinsClose(t *testing.T) {
	pms := []Placemark{
		{Points: []RoadPoint{{Lon: 0, Lat: 0}}},
		{Points: []RoadPoint{{Lon: 5, Lat: 0}}},
		{Points: []RoadPoint{{Lon: 5, Lat: 5}}},
	}
	g, err := BuildGraph(pms, Options{MaxDistSquared: 25})
	if err != nil {
		t.Fatal(err)
	}
	want := []graph.Edge{{A: 0, B: 1}, {A: 1, B: 2}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestBuildGraphDefaultThreshold(t *testing.T) {
	pms := []Placemark{
		{DeclaredName: "A", Points: []RoadPoint{{Lon: 144.9, Lat: -37.8}, {Lon: 144.91, Lat: -37.8}}},
		{DeclaredName: "B", Points: []RoadPoint{{Lon: 144.91, Lat: -37.8}, {Lon: 144.92, Lat: -37.8}}},
		{DeclaredName: "C", Points: []RoadPoint{{Lon: 144.92, Lat: -37.9}}},
	}
	g, err := BuildGraph(pms, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !g.Adjacent(1, 2) {
		t.Error("coincident points of roads A and B not joined")
	}
	if len(g.Neighbors(4)) != 0 {
		t.Errorf("distant node 4 joined: %v", g.Neighbors(4))
	}
	if n, _ := g.Node(3); n.Label != "B" || n.Pos.X != 144.92 {
		t.Errorf("Node(3) = %+v", n)
	}

	g, err = BuildGraph(pms, Options{MaxDistSquared: -1})
	if err != nil {
		t.Fatal(err)
	}
	if g.Adjacent(1, 2) {
		t.Error("joined with joining disabled")
	}
}
