package roads

import (
	"encoding/json"
	"io"
	"os"

	apperrors "github.com/matzehuels/searchviz/pkg/errors"
)

type jsonPlacemark struct {
	DeclaredName string       `json:"declared_name"`
	Points       [][2]float64 `json:"points"`
}

// WriteJSON writes placemarks as tab-indented roads JSON. Points are
// [lon, lat] pairs.
func WriteJSON(w io.Writer, pms []Placemark) error {
	out := make([]jsonPlacemark, len(pms))
	for i, pm := range pms {
		out[i] = jsonPlacemark{DeclaredName: pm.DeclaredName, Points: make([][2]float64, len(pm.Points))}
		for j, p := range pm.Points {
			out[i].Points[j] = [2]float64{p.Lon, p.Lat}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(out)
}

// ReadJSON reads roads JSON.
func ReadJSON(r io.Reader) ([]Placemark, error) {
	var in []jsonPlacemark
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode roads json")
	}
	pms := make([]Placemark, len(in))
	for i, jp := range in {
		pms[i] = Placemark{DeclaredName: jp.DeclaredName, Points: make([]RoadPoint, len(jp.Points))}
		for j, p := range jp.Points {
			pms[i].Points[j] = RoadPoint{Lon: p[0], Lat: p[1]}
		}
	}
	return pms, nil
}

// ReadJSONFile reads roads JSON from a file.
func ReadJSONFile(path string) ([]Placemark, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}
