package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/models"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/stats"
)

// trendWindows splits a dated source into current and previous windows of
// equal length, anchored at the source's own max date:
// current = (anchor-N, anchor], previous = (anchor-2N, anchor-N].
// The windows are contiguous, so every record of the 2N-day span lands in
// exactly one of them.
type trendWindows struct {
	ok        bool
	anchor    time.Time
	currStart time.Time // exclusive lower bound of current
	prevStart time.Time // exclusive lower bound of previous
}

func splitTrendWindows(dates []time.Time, days int) trendWindows {
	anchor, ok := maxDate(dates)
	if !ok {
		return trendWindows{}
	}
	return trendWindows{
		ok:        true,
		anchor:    anchor,
		currStart: anchor.AddDate(0, 0, -days),
		prevStart: anchor.AddDate(0, 0, -2*days),
	}
}

func (w trendWindows) bucket(d time.Time) int {
	switch {
	case !w.ok || d.IsZero():
		return -1
	case d.After(w.currStart) && !d.After(w.anchor):
		return 0
	case d.After(w.prevStart) && !d.After(w.currStart):
		return 1
	}
	return -1
}

func (w trendWindows) currentLabel() string {
	if !w.ok {
		return "n/a"
	}
	return fmt.Sprintf("%s -> %s", w.currStart.Format("2006-01-02"), w.anchor.Format("2006-01-02"))
}

func (w trendWindows) previousLabel() string {
	if !w.ok {
		return "n/a"
	}
	return fmt.Sprintf("%s -> %s", w.prevStart.Format("2006-01-02"), w.currStart.Format("2006-01-02"))
}

func trendRow(segment string, current, previous int, w trendWindows) Row {
	row := Row{
		Key: segment,
		Metrics: map[string]float64{
			"current":  float64(current),
			"previous": float64(previous),
			"delta":    float64(current - previous),
		},
		Labels: map[string]string{
			"window_current":  w.currentLabel(),
			"window_previous": w.previousLabel(),
		},
	}
	if pct, ok := stats.PctChange(current, previous); ok {
		row.Metrics["pct"] = pct
	}
	return row
}

// risingBoroughs appends up to four borough sub-rows whose current-window
// count grew versus the previous window, largest absolute growth first.
func risingBoroughs(curr, prev map[string]int, order []string, prefix string, w trendWindows, rows []Row) []Row {
	type delta struct {
		name string
		d    int
	}
	var rising []delta
	for _, name := range order {
		if d := curr[name] - prev[name]; d > 0 {
			rising = append(rising, delta{name, d})
		}
	}
	sort.SliceStable(rising, func(i, j int) bool { return rising[i].d > rising[j].d })
	if len(rising) > 4 {
		rising = rising[:4]
	}
	for _, r := range rising {
		rows = append(rows, trendRow(prefix+r.name, curr[r.name], prev[r.name], w))
	}
	return rows
}

// analyzeTrend compares the latest N-day window to the one before it, per
// source. It must receive the FULL unfiltered sources: a source already
// truncated to the period would make the previous window artificially
// empty and the percentages absurd. The optional weather filter applies to
// collisions only. The returned note flags diverging source anchors when
// scope is "both".
func analyzeTrend(collisions []models.Collision, requests []models.ServiceRequest, periodLabel, scope string, weatherFilter []string) (rows []Row, alignmentNote string) {
	days := PeriodDayCount(periodLabel)
	coll := filterByRoadCondition(collisions, weatherFilter)

	cw := splitTrendWindows(collisionDates(coll), days)
	rw := splitTrendWindows(requestDates(requests), days)

	if scope == "collisions" || scope == "both" {
		collCurrByQ := make(map[string]int)
		collPrevByQ := make(map[string]int)
		var qOrder []string
		seen := make(map[string]bool)
		collCurr, collPrev := 0, 0
		for _, c := range coll {
			switch cw.bucket(c.Date) {
			case 0:
				collCurr++
				collCurrByQ[c.Borough]++
			case 1:
				collPrev++
				collPrevByQ[c.Borough]++
			default:
				continue
			}
			if !seen[c.Borough] {
				seen[c.Borough] = true
				qOrder = append(qOrder, c.Borough)
			}
		}
		if cw.ok {
			rows = append(rows, trendRow("Collisions (total)", collCurr, collPrev, cw))
			rows = risingBoroughs(collCurrByQ, collPrevByQ, qOrder, "Quartier en hausse: ", cw, rows)
		}
	}

	if scope == "req311" || scope == "both" {
		reqCurrByQ := make(map[string]int)
		reqPrevByQ := make(map[string]int)
		var qOrder []string
		seen := make(map[string]bool)
		reqCurr, reqPrev := 0, 0
		for _, r := range requests {
			switch rw.bucket(r.Date) {
			case 0:
				reqCurr++
				reqCurrByQ[r.Borough]++
			case 1:
				reqPrev++
				reqPrevByQ[r.Borough]++
			default:
				continue
			}
			if !seen[r.Borough] {
				seen[r.Borough] = true
				qOrder = append(qOrder, r.Borough)
			}
		}
		if rw.ok {
			rows = append(rows, trendRow("Requêtes 311 (total)", reqCurr, reqPrev, rw))
			rows = risingBoroughs(reqCurrByQ, reqPrevByQ, qOrder, "Quartier 311 en hausse: ", rw, rows)
		}
	}

	// Put total rows first: collisions total, then 311 total, then sub-rows.
	sort.SliceStable(rows, func(i, j int) bool {
		return trendRowRank(rows[i].Key) < trendRowRank(rows[j].Key)
	})

	if scope == "both" && cw.ok && rw.ok {
		lag := rw.anchor.Sub(cw.anchor)
		if lag < 0 {
			lag = -lag
		}
		limit := 14
		if days > limit {
			limit = days
		}
		if int(lag.Hours()/24) > limit {
			alignmentNote = fmt.Sprintf(
				"Comparaison multi-sources affichée en lecture séparée: les ancres temporelles diffèrent (collisions=%s vs 311=%s).",
				cw.anchor.Format("2006-01-02"), rw.anchor.Format("2006-01-02"),
			)
		}
	}
	return rows, alignmentNote
}

func trendRowRank(segment string) int {
	switch segment {
	case "Collisions (total)":
		return 0
	case "Requêtes 311 (total)":
		return 1
	}
	return 2
}
