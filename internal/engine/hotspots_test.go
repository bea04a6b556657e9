package engine

import (
	"testing"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/models"
)

func TestAnalyzeHotspotsOrderingAndCap(t *testing.T) {
	var collisions []models.Collision
	counts := map[string]int{
		"A": 3, "B": 7, "C": 5, "D": 1, "E": 4, "F": 2,
	}
	for _, name := range []string{"A", "B", "C", "D", "E", "F"} {
		for i := 0; i < counts[name]; i++ {
			collisions = append(collisions, coll(t, "2025-03-10", name, "Q", 1, 10, "Sèche"))
		}
	}

	rows := analyzeHotspots(collisions, nil)
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}
	wantOrder := []string{"B", "C", "E", "A", "F"}
	for i, want := range wantOrder {
		if rows[i].Key != want {
			t.Errorf("rows[%d] = %q, want %q", i, rows[i].Key, want)
		}
	}
}

func TestAnalyzeHotspotsTieBreakFirstSeen(t *testing.T) {
	var collisions []models.Collision
	// Y appears first in the input; X and Y both have 2 collisions.
	collisions = append(collisions, coll(t, "2025-03-10", "Y", "Q", 1, 10, "Sèche"))
	collisions = append(collisions, coll(t, "2025-03-10", "X", "Q", 1, 10, "Sèche"))
	collisions = append(collisions, coll(t, "2025-03-11", "Y", "Q", 1, 12, "Sèche"))
	collisions = append(collisions, coll(t, "2025-03-11", "X", "Q", 1, 12, "Sèche"))

	rows := analyzeHotspots(collisions, nil)
	if rows[0].Key != "Y" || rows[1].Key != "X" {
		t.Errorf("tie not broken by first-seen order: got %q then %q", rows[0].Key, rows[1].Key)
	}
}

func TestAnalyzeHotspotsMetrics(t *testing.T) {
	collisions := []models.Collision{
		coll(t, "2025-03-10", "A", "Q", 4, 8, "Sèche"),
		coll(t, "2025-03-10", "A", "Q", 3, 10, "Sèche"),
		coll(t, "2025-03-10", "A", "Q", 1, 12, "Sèche"),
	}

	rows := analyzeHotspots(collisions, nil)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if got := rows[0].Metric("total_collisions"); got != 3 {
		t.Errorf("total_collisions = %v, want 3", got)
	}
	if got := rows[0].Metric("graves"); got != 2 {
		t.Errorf("graves = %v, want 2 (severity >= 3)", got)
	}
	if got := rows[0].Metric("heure_moyenne"); got != 10 {
		t.Errorf("heure_moyenne = %v, want 10", got)
	}
}

func TestAnalyzeHotspotsWeatherFilter(t *testing.T) {
	collisions := []models.Collision{
		coll(t, "2025-03-10", "A", "Q", 1, 8, "Enneigée"),
		coll(t, "2025-03-10", "A", "Q", 1, 9, "Enneigée"),
		coll(t, "2025-03-10", "B", "Q", 1, 10, "Sèche"),
		coll(t, "2025-03-10", "B", "Q", 1, 11, "Mouillée"),
	}

	// Accent-insensitive substring match on the condition label.
	rows := analyzeHotspots(collisions, []string{"enneig", "neige"})
	if len(rows) != 1 || rows[0].Key != "A" {
		t.Fatalf("snow filter kept %v", rows)
	}
	if got := rows[0].Metric("total_collisions"); got != 2 {
		t.Errorf("total_collisions = %v, want 2", got)
	}

	rows = analyzeHotspots(collisions, []string{"glac", "verglas"})
	if len(rows) != 0 {
		t.Errorf("ice filter should match nothing, got %v", rows)
	}
}
