package roads

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/matzehuels/searchviz/pkg/errors"
)

// ReadKML parses the Placemark elements of a KML document. A limit <= 0
// reads every placemark.
func ReadKML(r io.Reader, limit int) ([]Placemark, error) {
	dec := xml.NewDecoder(r)
	var pms []Placemark
	for limit <= 0 || len(pms) < limit {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidKML, err, "read kml")
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Placemark" {
			continue
		}
		pm, err := readPlacemark(dec)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidKML, err, "placemark %d", len(pms))
		}
		pms = append(pms, pm)
	}
	return pms, nil
}

// ReadKMLFile reads placemarks from a KML file.
func ReadKMLFile(path string, limit int) ([]Placemark, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadKML(f, limit)
}

// readPlacemark consumes tokens up to the end of the current Placemark.
// SimpleData and coordinates elements are found at any depth.
func readPlacemark(dec *xml.Decoder) (Placemark, error) {
	var pm Placemark
	seenCoords := false
	for depth := 0; depth >= 0; {
		tok, err := dec.Token()
		if err != nil {
			return pm, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "SimpleData":
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return pm, err
				}
				pm.setField(attr(t, "name"), strings.TrimSpace(text))
			case "coordinates":
				if seenCoords {
					return pm, fmt.Errorf("more than one coordinate set in placemark %q", pm.DeclaredName)
				}
				seenCoords = true
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return pm, err
				}
				if pm.Points, err = parseCoordinates(text); err != nil {
					return pm, err
				}
			default:
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}
	return pm, nil
}

func (pm *Placemark) setField(name, value string) {
	switch name {
	case "DECLARED":
		pm.DeclaredName = value
	case "ROADNAME":
		pm.RoadName = value
	case "LOCALNAME":
		pm.LocalName = value
	}
}

func attr(e xml.StartElement, name string) string {
	for _, a := range e.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// parseCoordinates parses whitespace-separated "lon,lat[,alt]" tuples.
// Altitude is dropped.
func parseCoordinates(text string) ([]RoadPoint, error) {
	fields := strings.Fields(text)
	pts := make([]RoadPoint, 0, len(fields))
	for _, f := range fields {
		parts := strings.Split(f, ",")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("coordinate %q: want lon,lat[,alt]", f)
		}
		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %q: %w", f, err)
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %q: %w", f, err)
		}
		pts = append(pts, RoadPoint{Lon: lon, Lat: lat})
	}
	return pts, nil
}
