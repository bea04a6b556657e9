package spatial

import (
	"fmt"
	"math"
)

// Coarse grid steps used to co-locate collisions and transit stops without
// a true geospatial join. A cell is roughly 500-700 m wide at Montreal's
// latitude; proximity is approximated by shared cells, not by distance.
const (
	GridLatStep = 0.008
	GridLonStep = 0.010
)

// Cell is a quantized grid coordinate. Latitude and longitude are snapped
// independently so the cell shape follows the dataset's own convention.
type Cell struct {
	Lat float64
	Lon float64
}

// Quantize snaps a coordinate pair onto the shared coarse grid.
func Quantize(lat, lon float64) Cell {
	return Cell{
		Lat: math.Round(lat/GridLatStep) * GridLatStep,
		Lon: math.Round(lon/GridLonStep) * GridLonStep,
	}
}

// Key returns a stable map key for the cell.
func (c Cell) Key() string {
	return fmt.Sprintf("%.3f,%.3f", c.Lat, c.Lon)
}

// SpanMeters returns the approximate diagonal extent of the cell in meters,
// useful to communicate the coarseness of the proximity approximation.
func (c Cell) SpanMeters() float64 {
	return HaversineDistance(c.Lat, c.Lon, c.Lat+GridLatStep, c.Lon+GridLonStep)
}
