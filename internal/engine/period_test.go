package engine

import (
	"testing"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/models"
)

func TestParseCustomPeriod(t *testing.T) {
	tests := []struct {
		name  string
		label string
		start string
		end   string
		ok    bool
	}{
		{"arrow", "Personnalisée : 2025-01-10 -> 2025-02-10", "2025-01-10", "2025-02-10", true},
		{"unicode arrow", "Personnalisée : 2025-01-10 → 2025-02-10", "2025-01-10", "2025-02-10", true},
		{"reversed swaps", "Personnalisée : 2025-02-10 -> 2025-01-10", "2025-01-10", "2025-02-10", true},
		{"named label", "30 derniers jours", "", "", false},
		{"garbage dates", "Personnalisée : 2025-13-40 -> 2025-01-10", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ok := ParseCustomPeriod(tt.label)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if got := w.Start.Format("2006-01-02"); got != tt.start {
				t.Errorf("start = %s, want %s", got, tt.start)
			}
			if got := w.End.Format("2006-01-02"); got != tt.end {
				t.Errorf("end = %s, want %s", got, tt.end)
			}
		})
	}
}

func TestLooksCustom(t *testing.T) {
	if !LooksCustom("Personnalisée : n'importe quoi") {
		t.Error("custom label not recognized")
	}
	if LooksCustom("7 derniers jours") {
		t.Error("named label misread as custom")
	}
}

func TestPeriodDayCount(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{Period7Days, 7},
		{Period30Days, 30},
		{Period3Months, 90},
		{Period12Month, 365},
		{"Personnalisée : 2025-01-01 -> 2025-01-10", 10},
		{"inconnu", 30},
	}
	for _, tt := range tests {
		if got := PeriodDayCount(tt.label); got != tt.want {
			t.Errorf("PeriodDayCount(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestResolveEffectivePeriod(t *testing.T) {
	tests := []struct {
		question string
		ui       string
		want     string
	}{
		{"Et sur 7 jours ?", Period30Days, Period7Days},
		{"Tendance cette semaine", Period3Months, Period7Days},
		{"Évolution sur 3 mois", Period7Days, Period3Months},
		{"Bilan sur un an", Period30Days, Period12Month},
		{"Top intersections dangereuses", Period3Months, Period3Months},
	}
	for _, tt := range tests {
		if got := ResolveEffectivePeriod(tt.question, tt.ui); got != tt.want {
			t.Errorf("ResolveEffectivePeriod(%q, %q) = %q, want %q", tt.question, tt.ui, got, tt.want)
		}
	}
}

func TestFilterCollisionsByPeriodAnchorsOnData(t *testing.T) {
	// Data ends in March 2024: windows must anchor there, not on today.
	collisions := []models.Collision{
		coll(t, "2024-03-15", "A", "Q1", 1, 8, "Sèche"),
		coll(t, "2024-03-01", "B", "Q1", 1, 9, "Sèche"),
		coll(t, "2024-02-20", "C", "Q1", 1, 10, "Sèche"),
		coll(t, "2023-11-01", "D", "Q1", 1, 11, "Sèche"),
	}

	got := filterCollisionsByPeriod(collisions, Period30Days)
	if len(got) != 3 {
		t.Fatalf("kept %d records, want 3 (anchor 2024-03-15, cutoff 30 days back)", len(got))
	}
	for _, c := range got {
		if c.Intersection == "D" {
			t.Errorf("record outside the anchored window survived")
		}
	}
}

func TestFilterCollisionsByCustomWindow(t *testing.T) {
	collisions := []models.Collision{
		coll(t, "2024-03-15", "A", "Q1", 1, 8, "Sèche"),
		coll(t, "2024-02-10", "B", "Q1", 1, 9, "Sèche"),
		coll(t, "2024-01-05", "C", "Q1", 1, 10, "Sèche"),
	}

	got := filterCollisionsByPeriod(collisions, "Personnalisée : 2024-02-01 -> 2024-02-28")
	if len(got) != 1 || got[0].Intersection != "B" {
		t.Fatalf("custom window kept %v", got)
	}
}
