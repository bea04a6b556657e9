package engine

import (
	"github.com/mobilite-mtl/mobilite-backend-go/internal/models"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/store"
)

// Degradation notes appended by the cascade, in the order the steps fire.
const (
	noteWeatherRelaxed = "Aucune ligne trouvée pour la condition météo demandée sur cette fenêtre. Filtre météo assoupli pour conserver une lecture utile."
	note311Downgraded  = "Pas assez de signalements météo ciblés pour ce type 311 sur la fenêtre demandée. Affichage du profil 311 par tranche de température."
	noteWideWeather    = "La combinaison période + météo ne contient pas assez de lignes. Le filtre météo a été assoupli."
	notePeriodWidened  = "Aucun résultat robuste sur la période demandée: fenêtre élargie à 12 derniers mois pour fournir une réponse exploitable."
	noteHotspotsSafety = "La requête spécifique ne retourne pas assez de lignes exploitables. Affichage d'un diagnostic global des hotspots collisions pour garantir une réponse utile."
)

// runWithFallback runs one analysis and, while the result stays empty,
// walks the relaxation ladder: drop the weather filter, downgrade
// 311_types_weather to the temperature profile, widen the window to
// 12 months (retrying the weather drop at the wide window), and finally
// fall back to a global hotspots diagnostic. Every step recomputes from
// the unfiltered store, so running the cascade twice on the same inputs
// yields the same result and the same ordered notes.
func runWithFallback(st *store.Store, kind Kind, in analysisInput) Result {
	requestedFilter := in.WeatherFilter
	res := runAnalysis(kind, in)

	// 1. Drop the weather filter on the requested window.
	if res.Empty() && weatherRelaxableKinds[kind] && len(in.WeatherFilter) > 0 {
		relaxed := in
		relaxed.WeatherFilter = nil
		if r := runAnalysis(kind, relaxed); !r.Empty() {
			res = r
			in = relaxed
			res.Attrs.WeatherFilterRequested = requestedFilter
			res.Attrs.Notes = append(res.Attrs.Notes, noteWeatherRelaxed)
		}
	}

	// 2. 311_types_weather falls back to the plain temperature profile.
	if res.Empty() && kind == Kind311TypesWeather {
		if r := runAnalysis(Kind311Temperature, in); !r.Empty() {
			notes := res.Attrs.Notes
			res = r
			res.Attrs.Notes = append(notes, note311Downgraded)
			kind = Kind311Temperature
		}
	}

	// 3. Widen the window to 12 months, same kind.
	if res.Empty() && in.Period != WidestPeriod {
		wide := in
		wide.Period = WidestPeriod
		wide.Collisions = filterCollisionsByPeriod(st.Collisions, WidestPeriod)
		wide.Requests = filterRequestsByPeriod(st.Requests, WidestPeriod)

		broad := runAnalysis(kind, wide)
		notes := res.Attrs.Notes
		if broad.Empty() && weatherRelaxableKinds[kind] && len(wide.WeatherFilter) > 0 {
			relaxed := wide
			relaxed.WeatherFilter = nil
			if r := runAnalysis(kind, relaxed); !r.Empty() {
				broad = r
				wide = relaxed
				broad.Attrs.WeatherFilterRequested = requestedFilter
				notes = append(notes, noteWideWeather)
			}
		}
		if !broad.Empty() {
			res = broad
			in = wide
			res.Attrs.Notes = append(notes, notePeriodWidened)
			res.Attrs.PeriodWidened = true
		}
	}

	// 4. Last safety net: a global hotspots diagnostic, never an empty answer.
	if res.Empty() {
		coll := in.Collisions
		period := in.Period
		diag := analyzeHotspots(coll, nil)
		if len(diag) == 0 && period != WidestPeriod {
			coll = filterCollisionsByPeriod(st.Collisions, WidestPeriod)
			if d := analyzeHotspots(coll, nil); len(d) > 0 {
				diag = d
				period = WidestPeriod
			}
		}
		if len(diag) > 0 {
			notes := res.Attrs.Notes
			res = Result{
				Kind: KindHotspots,
				Rows: diag,
				Attrs: Attributes{
					Kind:          KindHotspots,
					Period:        period,
					Notes:         append(notes, noteHotspotsSafety),
					PeriodWidened: period != in.Period || res.Attrs.PeriodWidened,
					KindRelabeled: true,
				},
			}
		}
	}

	return res
}

// periodInputs builds the period-filtered and full source views for one run.
func periodInputs(st *store.Store, period string) (coll []models.Collision, req []models.ServiceRequest) {
	return filterCollisionsByPeriod(st.Collisions, period), filterRequestsByPeriod(st.Requests, period)
}
