package engine

import (
	"regexp"
	"time"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/models"
)

// UI period labels. WidestPeriod is the last resort of the fallback cascade.
const (
	Period7Days   = "7 derniers jours"
	Period30Days  = "30 derniers jours"
	Period3Months = "3 derniers mois"
	Period12Month = "12 derniers mois"

	WidestPeriod  = Period12Month
	DefaultPeriod = Period30Days
)

var periodDays = map[string]int{
	Period7Days:   7,
	Period30Days:  30,
	Period3Months: 90,
	Period12Month: 365,
}

// Window is an inclusive [Start, End] date range.
type Window struct {
	Start time.Time
	End   time.Time
}

var customPeriodRe = regexp.MustCompile(`(?i)Personnalisée\s*:\s*(\d{4}-\d{2}-\d{2})\s*(?:->|→)\s*(\d{4}-\d{2}-\d{2})`)

// ParseCustomPeriod parses a "Personnalisée : YYYY-MM-DD -> YYYY-MM-DD"
// label. Start and end are swapped when given in reverse order.
func ParseCustomPeriod(label string) (Window, bool) {
	m := customPeriodRe.FindStringSubmatch(label)
	if m == nil {
		return Window{}, false
	}
	start, err1 := time.Parse("2006-01-02", m[1])
	end, err2 := time.Parse("2006-01-02", m[2])
	if err1 != nil || err2 != nil {
		return Window{}, false
	}
	if start.After(end) {
		start, end = end, start
	}
	return Window{Start: start, End: end}, true
}

// LooksCustom reports whether a label claims to be a custom range, whether
// or not it parses. The caller falls back to its last valid range when a
// custom label does not parse.
func LooksCustom(label string) bool {
	return regexp.MustCompile(`(?i)personnalis`).MatchString(label)
}

// PeriodDayCount returns the day span of a period label. Unknown labels
// count as the default 30 days.
func PeriodDayCount(label string) int {
	if w, ok := ParseCustomPeriod(label); ok {
		days := int(w.End.Sub(w.Start).Hours()/24) + 1
		if days < 1 {
			days = 1
		}
		return days
	}
	if d, ok := periodDays[label]; ok {
		return d
	}
	return 30
}

// ResolveEffectivePeriod lets an explicit period mention in the question
// override the UI-selected period for this single query.
func ResolveEffectivePeriod(question, uiPeriod string) string {
	q, qNorm := questionVariants(question)
	switch {
	case containsAny(q, qNorm, "7 jours", "7j", "7 derniers jours", "cette semaine", "semaine"):
		return Period7Days
	case containsAny(q, qNorm, "30 jours", "30j", "30 derniers jours"):
		return Period30Days
	case containsAny(q, qNorm, "3 mois", "90 jours", "trimestre"):
		return Period3Months
	case containsAny(q, qNorm, "12 mois", "365 jours", "1 an", "un an", "annee"):
		return Period12Month
	}
	return uiPeriod
}

// maxDate returns the latest date in a slice of dates, false when empty or
// all zero. Aggregations anchor windows here, never on the wall clock, so
// windows stay valid when the dataset's freshness lags behind real time.
func maxDate(dates []time.Time) (time.Time, bool) {
	var anchor time.Time
	for _, d := range dates {
		if d.After(anchor) {
			anchor = d
		}
	}
	return anchor, !anchor.IsZero()
}

func collisionDates(recs []models.Collision) []time.Time {
	out := make([]time.Time, len(recs))
	for i, r := range recs {
		out[i] = r.Date
	}
	return out
}

func requestDates(recs []models.ServiceRequest) []time.Time {
	out := make([]time.Time, len(recs))
	for i, r := range recs {
		out[i] = r.Date
	}
	return out
}

// filterCollisionsByPeriod keeps records inside the resolved window. Named
// periods anchor at the collection's own max date; custom windows are
// absolute. An unresolvable anchor returns the input unchanged.
func filterCollisionsByPeriod(recs []models.Collision, label string) []models.Collision {
	if w, ok := ParseCustomPeriod(label); ok {
		out := make([]models.Collision, 0, len(recs))
		for _, r := range recs {
			if !r.Date.Before(w.Start) && !r.Date.After(w.End) {
				out = append(out, r)
			}
		}
		return out
	}
	anchor, ok := maxDate(collisionDates(recs))
	if !ok {
		return recs
	}
	cutoff := anchor.AddDate(0, 0, -PeriodDayCount(label))
	out := make([]models.Collision, 0, len(recs))
	for _, r := range recs {
		if !r.Date.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

func filterRequestsByPeriod(recs []models.ServiceRequest, label string) []models.ServiceRequest {
	if w, ok := ParseCustomPeriod(label); ok {
		out := make([]models.ServiceRequest, 0, len(recs))
		for _, r := range recs {
			if !r.Date.Before(w.Start) && !r.Date.After(w.End) {
				out = append(out, r)
			}
		}
		return out
	}
	anchor, ok := maxDate(requestDates(recs))
	if !ok {
		return recs
	}
	cutoff := anchor.AddDate(0, 0, -PeriodDayCount(label))
	out := make([]models.ServiceRequest, 0, len(recs))
	for _, r := range recs {
		if !r.Date.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}
