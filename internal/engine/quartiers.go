package engine

import (
	"sort"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/models"
)

// analyzeQuartiers ranks boroughs by a combined pressure score over both
// sources: score = 2*collisions + req311. The join is outer, a borough
// present in only one source is zero-filled on the other. Top 8.
func analyzeQuartiers(collisions []models.Collision, requests []models.ServiceRequest) []Row {
	collCounts := make(map[string]int)
	reqCounts := make(map[string]int)
	var order []string
	seen := make(map[string]bool)

	for _, c := range collisions {
		collCounts[c.Borough]++
		if !seen[c.Borough] {
			seen[c.Borough] = true
			order = append(order, c.Borough)
		}
	}
	for _, r := range requests {
		reqCounts[r.Borough]++
		if !seen[r.Borough] {
			seen[r.Borough] = true
			order = append(order, r.Borough)
		}
	}

	score := func(name string) int {
		return collCounts[name]*2 + reqCounts[name]
	}
	sort.SliceStable(order, func(i, j int) bool {
		return score(order[i]) > score(order[j])
	})
	if len(order) > 8 {
		order = order[:8]
	}

	rows := make([]Row, 0, len(order))
	for _, name := range order {
		rows = append(rows, Row{
			Key: name,
			Metrics: map[string]float64{
				"collisions":  float64(collCounts[name]),
				"req_311":     float64(reqCounts[name]),
				"score_total": float64(score(name)),
			},
		})
	}
	return rows
}
