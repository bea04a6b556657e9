package engine

import (
	"sort"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/models"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/stats"
)

// analyzeMeteoCollision profiles collisions per surface/weather condition:
// volume, severe count and severe rate. Conditions sort by volume.
func analyzeMeteoCollision(collisions []models.Collision, weatherFilter []string) []Row {
	recs := filterByRoadCondition(collisions, weatherFilter)

	type bucket struct {
		total  int
		graves int
	}
	buckets := make(map[string]*bucket)
	var order []string
	for _, c := range recs {
		b, ok := buckets[c.RoadCondition]
		if !ok {
			b = &bucket{}
			buckets[c.RoadCondition] = b
			order = append(order, c.RoadCondition)
		}
		b.total++
		if c.Severity >= 3 {
			b.graves++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return buckets[order[i]].total > buckets[order[j]].total
	})

	rows := make([]Row, 0, len(order))
	for _, cond := range order {
		b := buckets[cond]
		rows = append(rows, Row{
			Key: cond,
			Metrics: map[string]float64{
				"total":       float64(b.total),
				"graves":      float64(b.graves),
				"taux_graves": stats.PctShare(b.graves, b.total),
			},
		})
	}
	return rows
}

// analyzeQuartiersMeteo ranks boroughs by collision volume under an
// optional condition filter, top 8.
func analyzeQuartiersMeteo(collisions []models.Collision, weatherFilter []string) []Row {
	recs := filterByRoadCondition(collisions, weatherFilter)

	type bucket struct {
		total  int
		graves int
	}
	buckets := make(map[string]*bucket)
	var order []string
	for _, c := range recs {
		b, ok := buckets[c.Borough]
		if !ok {
			b = &bucket{}
			buckets[c.Borough] = b
			order = append(order, c.Borough)
		}
		b.total++
		if c.Severity >= 3 {
			b.graves++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return buckets[order[i]].total > buckets[order[j]].total
	})
	if len(order) > 8 {
		order = order[:8]
	}

	rows := make([]Row, 0, len(order))
	for _, name := range order {
		b := buckets[name]
		rows = append(rows, Row{
			Key: name,
			Metrics: map[string]float64{
				"collisions": float64(b.total),
				"graves":     float64(b.graves),
			},
		})
	}
	return rows
}
