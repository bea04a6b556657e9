package engine

import (
	"sort"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/models"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/stats"
)

// Temperature bands for the 311 volume profile, coldest first. Band edges
// follow the city's operational thresholds (snow ops below 0, freeze-thaw
// around 0-5).
var temperatureBands = []struct {
	label string
	min   float64 // exclusive
	max   float64 // inclusive
}{
	{"< -5°C", -30, -5},
	{"-5 à 0°C", -5, 0},
	{"0 à 5°C", 0, 5},
	{"5 à 15°C", 5, 15},
	{"> 15°C", 15, 35},
}

// analyze311Temperature buckets 311 requests into fixed day-temperature
// bands. Empty bands are omitted; band order is fixed coldest to warmest.
func analyze311Temperature(requests []models.ServiceRequest) []Row {
	counts := make([]int, len(temperatureBands))
	for _, r := range requests {
		t := r.DayTemperature
		for i, band := range temperatureBands {
			if t > band.min && t <= band.max {
				counts[i]++
				break
			}
		}
	}

	var rows []Row
	for i, band := range temperatureBands {
		if counts[i] == 0 {
			continue
		}
		rows = append(rows, Row{
			Key:     band.label,
			Metrics: map[string]float64{"count": float64(counts[i])},
		})
	}
	return rows
}

// matches311WeatherTag maps a weather proxy tag onto a day-temperature
// predicate. The 311 source has no weather column, so ambient temperature
// stands in for the condition.
func matches311WeatherTag(temp float64, tag string) bool {
	switch tag {
	case "ice":
		return temp >= -5 && temp <= 1
	case "rain":
		return temp > 0 && temp <= 12
	case "cold":
		return temp <= -8
	default: // snow
		return temp <= 0
	}
}

// analyze311TypesWeather ranks 311 categories by over-representation under
// the targeted weather proxy versus the rest of the window. Lift above 1
// means the category spikes with that weather. Categories with fewer than
// five in-weather occurrences are dropped as noise; top 8 by lift then
// in-weather volume.
func analyze311TypesWeather(requests []models.ServiceRequest, weatherTag string) []Row {
	if len(requests) == 0 {
		return nil
	}

	weatherCounts := make(map[string]int)
	otherCounts := make(map[string]int)
	var order []string
	seen := make(map[string]bool)
	wTotal, oTotal := 0, 0
	for _, r := range requests {
		cat := r.Category
		if cat == "" {
			cat = "Non spécifié"
		}
		if !seen[cat] {
			seen[cat] = true
			order = append(order, cat)
		}
		if matches311WeatherTag(r.DayTemperature, weatherTag) {
			weatherCounts[cat]++
			wTotal++
		} else {
			otherCounts[cat]++
			oTotal++
		}
	}
	if wTotal == 0 {
		return nil
	}
	if oTotal == 0 {
		oTotal = 1
	}

	type scored struct {
		cat  string
		cw   int
		co   int
		lift float64
	}
	var kept []scored
	for _, cat := range order {
		cw := weatherCounts[cat]
		if cw < 5 {
			continue
		}
		co := otherCounts[cat]
		lift := stats.Round2((float64(cw) / float64(wTotal)) / (float64(co+1) / float64(oTotal)))
		kept = append(kept, scored{cat: cat, cw: cw, co: co, lift: lift})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].lift != kept[j].lift {
			return kept[i].lift > kept[j].lift
		}
		return kept[i].cw > kept[j].cw
	})
	if len(kept) > 8 {
		kept = kept[:8]
	}

	rows := make([]Row, 0, len(kept))
	for _, s := range kept {
		rows = append(rows, Row{
			Key: s.cat,
			Metrics: map[string]float64{
				"count_weather": float64(s.cw),
				"count_other":   float64(s.co),
				"lift":          s.lift,
			},
		})
	}
	return rows
}
