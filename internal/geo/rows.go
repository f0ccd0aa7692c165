package geo

import (
	"errors"
	"strconv"
)

// Row is one selected table row from the client. Lat/lon arrive as strings
// or numbers depending on how the CSV was parsed, so they are decoded
// loosely.
type Row struct {
	Lat      any    `json:"lat"`
	Lon      any    `json:"lon"`
	Address  string `json:"address"`
	Postcode string `json:"postcode"`
	City     string `json:"city"`
}

// Point is a render-ready map marker.
type Point struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Address  string  `json:"address"`
	Postcode string  `json:"postcode"`
	City     string  `json:"city"`
}

var ErrNoValidPoints = errors.New("no valid lat/lon found in the selected rows")

// PointsFromRows extracts coordinates from the selected rows, dropping any
// row whose lat or lon does not parse as a number. No subprocess involved.
func PointsFromRows(rows []Row) ([]Point, error) {
	points := make([]Point, 0, len(rows))
	for _, row := range rows {
		lat, ok := toFloat(row.Lat)
		if !ok {
			continue
		}
		lon, ok := toFloat(row.Lon)
		if !ok {
			continue
		}
		points = append(points, Point{
			Lat:      lat,
			Lon:      lon,
			Address:  row.Address,
			Postcode: row.Postcode,
			City:     row.City,
		})
	}

	if len(points) == 0 {
		return nil, ErrNoValidPoints
	}
	return points, nil
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
