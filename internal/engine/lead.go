package engine

import (
	"fmt"
	"strings"
)

// leadText builds the one-sentence French insight placed before the rows.
// Zero-count top rows get their own phrasing so the answer never claims a
// hotspot that does not exist.
func leadText(res Result) string {
	if res.Empty() {
		return ""
	}
	top := res.Rows[0]
	periode := strings.ToLower(res.Attrs.Period)

	switch res.Kind {
	case KindHotspots:
		total := int(top.Metric("total_collisions"))
		if total <= 0 {
			return fmt.Sprintf("Aucune collision enregistrée sur %s dans la fenêtre sélectionnée.", periode)
		}
		return fmt.Sprintf("Sur %s, la zone la plus exposée est %s avec %d collisions.", periode, top.Key, total)

	case KindHotspotsMeteo:
		total := int(top.Metric("total_collisions"))
		if total <= 0 {
			return fmt.Sprintf("Aucune collision enregistrée sur %s dans cette vue; la question doit être affinée (période, zone ou type d'incident).", periode)
		}
		switch {
		case len(res.Attrs.WeatherFilterRequested) > 0 && res.Attrs.WeatherFilterApplied:
			return fmt.Sprintf("Sous conditions météo demandées, la zone la plus exposée est %s avec %d collisions.", top.Key, total)
		case len(res.Attrs.WeatherFilterRequested) > 0:
			return fmt.Sprintf("Le filtre météo n'a pas pu être conservé sur cette fenêtre; la zone globale la plus exposée est %s avec %d collisions.", top.Key, total)
		}
		return fmt.Sprintf("Sans condition météo explicite dans la question, la zone globale la plus exposée est %s avec %d collisions.", top.Key, total)

	case KindSTM:
		total := int(top.Metric("total"))
		if total <= 0 {
			return fmt.Sprintf("Aucune collision enregistrée autour des arrêts STM sur %s.", periode)
		}
		return fmt.Sprintf("Sur %s, la concentration principale se situe autour de %s (%d collisions).", periode, top.Key, total)

	case KindTrend:
		return trendLead(res)

	case KindMeteoCollision:
		total := int(top.Metric("total"))
		if total <= 0 {
			return fmt.Sprintf("Aucune collision enregistrée dans la fenêtre météo sélectionnée sur %s.", periode)
		}
		return fmt.Sprintf("La condition la plus associée aux collisions sur %s est %s (%d collisions).", periode, top.Key, total)

	case Kind311Temperature:
		count := int(top.Metric("count"))
		if count <= 0 {
			return fmt.Sprintf("Aucun signalement 311 enregistré sur %s dans la fenêtre sélectionnée.", periode)
		}
		return fmt.Sprintf("Les signalements 311 se concentrent surtout dans la tranche %s (%d requêtes).", top.Key, count)

	case Kind311TypesWeather:
		n := int(top.Metric("count_weather"))
		if n <= 0 {
			return fmt.Sprintf("Aucun signalement 311 ciblé n'a été enregistré sur %s pour cette condition météo.", periode)
		}
		return fmt.Sprintf("Le type 311 le plus sensible à cette météo est %s (%d signalements ciblés).", top.Key, n)

	case KindQuartiersMeteo:
		n := int(top.Metric("collisions"))
		if n <= 0 {
			return fmt.Sprintf("Aucune collision enregistrée sur %s pour cette condition météo.", periode)
		}
		return fmt.Sprintf("En météo dégradée, le quartier le plus touché est %s (%d collisions).", top.Key, n)

	case KindQuartiers:
		score := int(top.Metric("score_total"))
		collisions := int(top.Metric("collisions"))
		req311 := int(top.Metric("req_311"))
		if score <= 0 {
			if collisions == 0 && req311 > 0 {
				return fmt.Sprintf("Aucune collision enregistrée sur cette période; le classement est basé uniquement sur les requêtes 311 (quartier en tête: %s, %d signalements).", top.Key, req311)
			}
			return "Aucun incident enregistré sur la période sélectionnée (collisions et requêtes 311 à 0)."
		}
		return fmt.Sprintf("Le quartier ressortant en premier sur le score combiné est %s (score %d).", top.Key, score)
	}
	return ""
}

// trendLead reads the total row matching the trend scope.
func trendLead(res Result) string {
	target := "Collisions (total)"
	noun := "collisions"
	singular := "collision"
	if res.Attrs.TrendScope == "req311" {
		target = "Requêtes 311 (total)"
		noun = "requêtes 311"
		singular = "requête 311"
	}
	row := res.Rows[0]
	for _, r := range res.Rows {
		if r.Key == target {
			row = r
			break
		}
	}

	var prefix string
	switch {
	case len(res.Attrs.WeatherFilterRequested) > 0 && res.Attrs.WeatherFilterApplied:
		prefix = "Sous conditions météo demandées, "
	case len(res.Attrs.WeatherFilterRequested) > 0:
		prefix = "Le filtre météo n'a pas pu être conservé sur cette fenêtre; "
	}

	current := int(row.Metric("current"))
	previous := int(row.Metric("previous"))
	delta := int(row.Metric("delta"))
	pct, hasPct := row.Metrics["pct"]
	pctTxt := "n/a"
	if hasPct {
		pctTxt = fmt.Sprintf("%+.1f%%", pct)
	}

	switch {
	case current == 0 && previous == 0:
		return fmt.Sprintf("%saucune %s enregistrée sur la période courante ni sur la période précédente.", prefix, singular)
	case current == 0 && previous > 0:
		return fmt.Sprintf("%saucune %s enregistrée sur la période courante (contre %d sur la période précédente).", prefix, singular, previous)
	}
	return fmt.Sprintf("%scomparaison période courante vs précédente: %s %+d (%s).", prefix, noun, delta, pctTxt)
}
