// Package geo converts between WGS84 and the Dutch national grid (RD New,
// EPSG:28992), so every resolved location carries both coordinate forms.
package geo

import (
	"github.com/twpayne/go-geom"
)

const (
	sridWGS84 = 4326
	sridRDNew = 28992

	// Amersfoort reference point of the RD datum.
	rdX0 = 155000.0
	rdY0 = 463000.0
	lat0 = 52.15517440
	lon0 = 5.38720621
)

// ToWGS84 converts an RD New coordinate pair to a WGS84 point (X =
// longitude, Y = latitude), using the Schreutelkamp–Strang van Hees
// polynomial approximation (centimetre-level inside the Netherlands).
func ToWGS84(x, y float64) *geom.Point {
	dx := (x - rdX0) * 1e-5
	dy := (y - rdY0) * 1e-5

	latSec := 3235.65389*dy +
		-32.58297*dx*dx +
		-0.24750*dy*dy +
		-0.84978*dx*dx*dy +
		-0.06550*dy*dy*dy +
		-0.01709*dx*dx*dy*dy +
		-0.00738*dx +
		0.00530*dx*dx*dx*dx +
		-0.00039*dx*dx*dy*dy*dy +
		0.00033*dx*dx*dx*dx*dy +
		-0.00012*dx*dy
	lonSec := 5260.52916*dx +
		105.94684*dx*dy +
		2.45656*dx*dy*dy +
		-0.81885*dx*dx*dx +
		0.05594*dx*dy*dy*dy +
		-0.05607*dx*dx*dx*dy +
		0.01199*dy +
		-0.00256*dx*dx*dx*dy*dy +
		0.00128*dx*dy*dy*dy*dy +
		0.00022*dy*dy +
		-0.00022*dx*dx +
		0.00026*dx*dx*dx*dx*dx

	lat := lat0 + latSec/3600
	lon := lon0 + lonSec/3600
	return geom.NewPointFlat(geom.XY, []float64{lon, lat}).SetSRID(sridWGS84)
}

// FromWGS84 converts a WGS84 latitude/longitude to an RD New point (X =
// easting, Y = northing).
func FromWGS84(lat, lon float64) *geom.Point {
	dlat := 0.36 * (lat - lat0)
	dlon := 0.36 * (lon - lon0)

	x := rdX0 +
		190094.945*dlon +
		-11832.228*dlat*dlon +
		-114.221*dlat*dlat*dlon +
		-32.391*dlon*dlon*dlon +
		-0.705*dlat +
		-2.340*dlat*dlat*dlat*dlon +
		-0.608*dlat*dlon*dlon*dlon +
		-0.008*dlon +
		0.148*dlat*dlat*dlon*dlon*dlon
	y := rdY0 +
		309056.544*dlat +
		3638.893*dlon*dlon +
		73.077*dlat*dlat +
		-157.984*dlat*dlon*dlon +
		59.788*dlat*dlat*dlat +
		0.433*dlon +
		-6.439*dlat*dlat*dlon*dlon +
		-0.032*dlat*dlon +
		0.092*dlon*dlon*dlon*dlon +
		-0.054*dlat*dlon*dlon*dlon*dlon

	return geom.NewPointFlat(geom.XY, []float64{x, y}).SetSRID(sridRDNew)
}

// InNetherlands reports whether an RD coordinate falls inside the grid's
// official validity window.
func InNetherlands(x, y float64) bool {
	return x >= 0 && x <= 290000 && y >= 290000 && y <= 630000
}
