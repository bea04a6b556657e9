package engine

import (
	"sort"
	"strings"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/models"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/spatial"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/stats"
)

// analyzeSTM co-locates transit stops with collision clusters on the coarse
// shared grid: only cells that contain both collisions and stops survive
// the join. Top 5 cells by collision volume; up to two stop names label
// each cell. This is a cell-membership approximation, not true distance.
func analyzeSTM(collisions []models.Collision, stops []models.TransitStop) []Row {
	if len(collisions) == 0 || len(stops) == 0 {
		return nil
	}

	type collBucket struct {
		cell   spatial.Cell
		total  int
		graves int
	}
	collByCell := make(map[string]*collBucket)
	var order []string
	for _, c := range collisions {
		cell := spatial.Quantize(c.Latitude, c.Longitude)
		key := cell.Key()
		b, ok := collByCell[key]
		if !ok {
			b = &collBucket{cell: cell}
			collByCell[key] = b
			order = append(order, key)
		}
		b.total++
		if c.Severity >= 3 {
			b.graves++
		}
	}

	type stopBucket struct {
		names []string
		count int
	}
	stopsByCell := make(map[string]*stopBucket)
	for _, s := range stops {
		key := spatial.Quantize(s.Latitude, s.Longitude).Key()
		b, ok := stopsByCell[key]
		if !ok {
			b = &stopBucket{}
			stopsByCell[key] = b
		}
		if s.StopName != "" && len(b.names) < 2 {
			b.names = append(b.names, s.StopName)
		}
		b.count++
	}

	// Inner join: keep only cells with at least one stop.
	joined := order[:0]
	for _, key := range order {
		if _, ok := stopsByCell[key]; ok {
			joined = append(joined, key)
		}
	}
	sort.SliceStable(joined, func(i, j int) bool {
		return collByCell[joined[i]].total > collByCell[joined[j]].total
	})
	if len(joined) > 5 {
		joined = joined[:5]
	}

	rows := make([]Row, 0, len(joined))
	for _, key := range joined {
		cb := collByCell[key]
		sb := stopsByCell[key]
		rows = append(rows, Row{
			Key: strings.Join(sb.names, ", "),
			Metrics: map[string]float64{
				"total":        float64(cb.total),
				"graves":       float64(cb.graves),
				"nb_arrets":    float64(sb.count),
				"rayon_approx": stats.Round1(cb.cell.SpanMeters()),
			},
			Labels: map[string]string{
				"zone": key,
			},
		})
	}
	return rows
}
