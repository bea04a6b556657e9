package engine

import (
	"sort"
	"strings"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/models"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/stats"
)

// matchesRoadCondition reports whether a collision's surface/weather label
// matches any of the requested condition substrings, accent-insensitively.
func matchesRoadCondition(condition string, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	norm := normalizeText(condition)
	for _, f := range filters {
		fn := normalizeText(f)
		if fn != "" && strings.Contains(norm, fn) {
			return true
		}
	}
	return false
}

func filterByRoadCondition(recs []models.Collision, filters []string) []models.Collision {
	if len(filters) == 0 {
		return recs
	}
	out := make([]models.Collision, 0, len(recs))
	for _, r := range recs {
		if matchesRoadCondition(r.RoadCondition, filters) {
			out = append(out, r)
		}
	}
	return out
}

// analyzeHotspots groups collisions by intersection and keeps the five
// busiest. Ties keep first-seen (input) order via the stable sort. An
// optional condition filter narrows the input first.
func analyzeHotspots(collisions []models.Collision, weatherFilter []string) []Row {
	recs := filterByRoadCondition(collisions, weatherFilter)

	type bucket struct {
		total  int
		graves int
		hours  []int
	}
	buckets := make(map[string]*bucket)
	var order []string
	for _, c := range recs {
		b, ok := buckets[c.Intersection]
		if !ok {
			b = &bucket{}
			buckets[c.Intersection] = b
			order = append(order, c.Intersection)
		}
		b.total++
		if c.Severity >= 3 {
			b.graves++
		}
		b.hours = append(b.hours, c.Hour)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return buckets[order[i]].total > buckets[order[j]].total
	})
	if len(order) > 5 {
		order = order[:5]
	}

	rows := make([]Row, 0, len(order))
	for _, name := range order {
		b := buckets[name]
		rows = append(rows, Row{
			Key: name,
			Metrics: map[string]float64{
				"total_collisions": float64(b.total),
				"graves":           float64(b.graves),
				"heure_moyenne":    stats.Round1(stats.MeanInt(b.hours)),
			},
		})
	}
	return rows
}
