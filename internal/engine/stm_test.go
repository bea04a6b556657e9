package engine

import (
	"testing"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/models"
)

func stop(id, name string, lat, lon float64) models.TransitStop {
	return models.TransitStop{StopID: id, StopName: name, Latitude: lat, Longitude: lon, Line: "bus"}
}

func collAt(t *testing.T, date string, lat, lon float64) models.Collision {
	t.Helper()
	c := coll(t, date, "X", "Q", 1, 9, "Sèche")
	c.Latitude = lat
	c.Longitude = lon
	return c
}

func TestAnalyzeSTMInnerJoin(t *testing.T) {
	collisions := []models.Collision{
		// Cluster near a stop cell.
		collAt(t, "2025-03-01", 45.5081, -73.5612),
		collAt(t, "2025-03-02", 45.5085, -73.5608),
		collAt(t, "2025-03-03", 45.5083, -73.5610),
		// Lone collision far from any stop.
		collAt(t, "2025-03-04", 45.7000, -73.9000),
	}
	stops := []models.TransitStop{
		stop("S1", "Berri-UQAM", 45.5082, -73.5611),
		stop("S2", "Saint-Laurent", 45.5084, -73.5615),
	}

	rows := analyzeSTM(collisions, stops)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 joined cell", len(rows))
	}
	top := rows[0]
	if top.Metric("total") != 3 {
		t.Errorf("total = %v, want 3", top.Metric("total"))
	}
	if top.Metric("nb_arrets") != 2 {
		t.Errorf("nb_arrets = %v, want 2", top.Metric("nb_arrets"))
	}
	if top.Key != "Berri-UQAM, Saint-Laurent" {
		t.Errorf("stop names = %q", top.Key)
	}
	if top.Label("zone") == "" {
		t.Errorf("missing zone label")
	}
}

func TestAnalyzeSTMTopFiveByVolume(t *testing.T) {
	var collisions []models.Collision
	var stops []models.TransitStop
	// Seven distinct cells along the latitude axis; cell i gets i+1
	// collisions and one stop.
	for i := 0; i < 7; i++ {
		lat := 45.5 + float64(i)*0.008*3
		for j := 0; j <= i; j++ {
			collisions = append(collisions, collAt(t, "2025-03-01", lat, -73.56))
		}
		stops = append(stops, stop("S", "Arrêt", lat, -73.56))
	}

	rows := analyzeSTM(collisions, stops)
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Metric("total") > rows[i-1].Metric("total") {
			t.Errorf("rows not sorted by collision volume desc")
		}
	}
	if rows[0].Metric("total") != 7 {
		t.Errorf("top total = %v, want 7", rows[0].Metric("total"))
	}
}

func TestAnalyzeSTMEmptyInputs(t *testing.T) {
	stops := []models.TransitStop{stop("S1", "Berri-UQAM", 45.5082, -73.5611)}
	if rows := analyzeSTM(nil, stops); len(rows) != 0 {
		t.Errorf("expected no rows without collisions")
	}
	collisions := []models.Collision{collAt(t, "2025-03-01", 45.5, -73.56)}
	if rows := analyzeSTM(collisions, nil); len(rows) != 0 {
		t.Errorf("expected no rows without stops")
	}
}
