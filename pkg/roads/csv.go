package roads

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes one declared_name,lat,lon row per point, with a header.
func WriteCSV(w io.Writer, pms []Placemark) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"declared_name", "lat", "lon"}); err != nil {
		return err
	}
	for _, pm := range pms {
		for _, p := range pm.Points {
			row := []string{
				pm.DeclaredName,
				strconv.FormatFloat(p.Lat, 'f', -1, 64),
				strconv.FormatFloat(p.Lon, 'f', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
