package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/models"
)

func TestSplitTrendWindowsContiguity(t *testing.T) {
	dates := []time.Time{
		day(t, "2025-03-01"),
		day(t, "2025-03-20"),
		day(t, "2025-02-10"),
	}
	w := splitTrendWindows(dates, 7)
	if !w.ok {
		t.Fatal("expected resolvable windows")
	}
	if !w.anchor.Equal(day(t, "2025-03-20")) {
		t.Errorf("anchor = %s, want data max, never wall clock", w.anchor)
	}
	// Equal length and contiguous: the two exclusive bounds are exactly
	// N days apart, and the current bound is the previous window's end.
	if w.anchor.Sub(w.currStart) != w.currStart.Sub(w.prevStart) {
		t.Error("windows are not equal length")
	}

	// Boundary membership: anchor in current, currStart in previous,
	// prevStart in neither.
	if got := w.bucket(w.anchor); got != 0 {
		t.Errorf("anchor bucket = %d, want current", got)
	}
	if got := w.bucket(w.currStart); got != 1 {
		t.Errorf("currStart bucket = %d, want previous", got)
	}
	if got := w.bucket(w.prevStart); got != -1 {
		t.Errorf("prevStart bucket = %d, want outside", got)
	}
}

func TestTrendRowCollapseToZero(t *testing.T) {
	w := splitTrendWindows([]time.Time{day(t, "2025-03-20")}, 7)
	row := trendRow("Collisions (total)", 0, 12, w)

	if got := row.Metric("delta"); got != -12 {
		t.Errorf("delta = %v, want -12", got)
	}
	if got, ok := row.Metrics["pct"]; !ok || got != -100.0 {
		t.Errorf("pct = %v (present=%v), want -100.0", got, ok)
	}

	// A trend result holding this row is degraded, never insufficient.
	res := Result{
		Kind: KindTrend,
		Rows: []Row{row},
		Attrs: Attributes{
			Kind:       KindTrend,
			Period:     Period7Days,
			TrendScope: "collisions",
		},
	}
	conf := computeConfidence(res)
	if conf.Level == ConfidenceInsufficient {
		t.Errorf("confidence = %s, previous data exists", conf.Level)
	}
}

func TestAnalyzeTrendCountsAndRisingBoroughs(t *testing.T) {
	var collisions []models.Collision
	// Current window (anchored at 2025-03-20, 7 days): 5 in Rosemont, 1 in Verdun.
	for i := 0; i < 5; i++ {
		collisions = append(collisions, coll(t, "2025-03-18", "A", "Rosemont", 1, 9, "Sèche"))
	}
	collisions = append(collisions, coll(t, "2025-03-20", "B", "Verdun", 1, 10, "Sèche"))
	// Previous window: 2 in Rosemont, 3 in Verdun.
	for i := 0; i < 2; i++ {
		collisions = append(collisions, coll(t, "2025-03-10", "A", "Rosemont", 1, 9, "Sèche"))
	}
	for i := 0; i < 3; i++ {
		collisions = append(collisions, coll(t, "2025-03-09", "B", "Verdun", 1, 10, "Sèche"))
	}

	rows, note := analyzeTrend(collisions, nil, Period7Days, "collisions", nil)
	if note != "" {
		t.Errorf("unexpected alignment note %q", note)
	}
	if len(rows) == 0 || rows[0].Key != "Collisions (total)" {
		t.Fatalf("first row = %v, want the collisions total", rows)
	}
	total := rows[0]
	if total.Metric("current") != 6 || total.Metric("previous") != 5 {
		t.Errorf("totals = %v/%v, want 6/5", total.Metric("current"), total.Metric("previous"))
	}
	if total.Metric("delta") != 1 {
		t.Errorf("delta = %v, want 1", total.Metric("delta"))
	}
	if total.Metrics["pct"] != 20.0 {
		t.Errorf("pct = %v, want 20.0", total.Metrics["pct"])
	}

	// Only Rosemont rose (5 vs 2); Verdun fell and must not appear.
	var rising []Row
	for _, r := range rows[1:] {
		if strings.HasPrefix(r.Key, "Quartier en hausse: ") {
			rising = append(rising, r)
		}
	}
	if len(rising) != 1 || rising[0].Key != "Quartier en hausse: Rosemont" {
		t.Fatalf("rising rows = %v", rising)
	}
	if rising[0].Metric("delta") != 3 {
		t.Errorf("rising delta = %v, want 3", rising[0].Metric("delta"))
	}
}

func TestAnalyzeTrendRisingBoroughsCappedAtFour(t *testing.T) {
	var collisions []models.Collision
	boroughs := []string{"Q1", "Q2", "Q3", "Q4", "Q5", "Q6"}
	for i, q := range boroughs {
		// Each borough rises by i+1 collisions in the current window.
		for j := 0; j <= i; j++ {
			collisions = append(collisions, coll(t, "2025-03-18", "X", q, 1, 9, "Sèche"))
		}
		collisions = append(collisions, coll(t, "2025-03-09", "X", q, 1, 9, "Sèche"))
	}
	// Pin the anchor.
	collisions = append(collisions, coll(t, "2025-03-20", "X", "Q1", 1, 9, "Sèche"))

	rows, _ := analyzeTrend(collisions, nil, Period7Days, "collisions", nil)
	var rising []Row
	for _, r := range rows {
		if strings.HasPrefix(r.Key, "Quartier en hausse: ") {
			rising = append(rising, r)
		}
	}
	if len(rising) != 4 {
		t.Fatalf("rising rows = %d, want cap of 4", len(rising))
	}
	for i := 1; i < len(rising); i++ {
		if rising[i].Metric("delta") > rising[i-1].Metric("delta") {
			t.Errorf("rising rows not sorted by delta desc")
		}
	}
}

func TestAnalyzeTrendAlignmentNote(t *testing.T) {
	collisions := []models.Collision{
		coll(t, "2024-06-01", "A", "Q1", 1, 9, "Sèche"),
		coll(t, "2024-05-28", "A", "Q1", 1, 9, "Sèche"),
	}
	requests := []models.ServiceRequest{
		req(t, "2025-03-20", "Nid-de-poule", "Q1", 2),
		req(t, "2025-03-15", "Nid-de-poule", "Q1", 2),
	}

	_, note := analyzeTrend(collisions, requests, Period7Days, "both", nil)
	if note == "" {
		t.Fatal("expected an alignment note: anchors diverge by months")
	}
	if !strings.Contains(note, "2024-06-01") || !strings.Contains(note, "2025-03-20") {
		t.Errorf("note should name both anchors, got %q", note)
	}
}

func TestAnalyzeTrendUsesFullHistory(t *testing.T) {
	// All of the previous window lies outside a 7-day period filter; the
	// trend must still see it because it derives windows from full sources.
	var collisions []models.Collision
	collisions = append(collisions, coll(t, "2025-03-20", "A", "Q1", 1, 9, "Sèche"))
	for i := 0; i < 4; i++ {
		collisions = append(collisions, coll(t, "2025-03-10", "A", "Q1", 1, 9, "Sèche"))
	}

	rows, _ := analyzeTrend(collisions, nil, Period7Days, "collisions", nil)
	if rows[0].Metric("previous") != 4 {
		t.Errorf("previous = %v, want 4 from unfiltered history", rows[0].Metric("previous"))
	}
}
