package engine

// ConfidenceLevel grades how far the engine had to degrade to answer.
type ConfidenceLevel string

const (
	ConfidenceVerified     ConfidenceLevel = "verified"
	ConfidencePartial      ConfidenceLevel = "partial"
	ConfidenceInsufficient ConfidenceLevel = "insufficient"
)

// Confidence is the engine-owned verdict shown with every answer.
type Confidence struct {
	Level  ConfidenceLevel `json:"level"`
	Label  string          `json:"label"`
	Detail string          `json:"detail"`
}

// Kinds whose output is a descriptive correlation rather than a verified
// count: they never rate better than partial because the underlying data
// is not normalized (population, traffic, road length).
var descriptiveKinds = map[Kind]bool{
	KindHotspotsMeteo:   true,
	KindMeteoCollision:  true,
	Kind311Temperature:  true,
	Kind311TypesWeather: true,
	KindQuartiersMeteo:  true,
	KindQuartiers:       true,
	KindSTM:             true,
}

// computeConfidence grades a result. Emptiness dominates, then any
// relaxation (weather filter dropped, degradation notes, relabeling),
// then the descriptive-kind cap; everything else is verified.
func computeConfidence(res Result) Confidence {
	if res.Empty() {
		return Confidence{
			Level:  ConfidenceInsufficient,
			Label:  "Données insuffisantes",
			Detail: "Aucun résultat exploitable sur la fenêtre sélectionnée : élargir la période ou reformuler la question.",
		}
	}
	if len(res.Attrs.WeatherFilterRequested) > 0 && !res.Attrs.WeatherFilterApplied {
		return Confidence{
			Level:  ConfidencePartial,
			Label:  "Analyse partielle",
			Detail: "Filtre météo demandé assoupli faute d'échantillon suffisant; lecture descriptive à confirmer.",
		}
	}
	if len(res.Attrs.Notes) > 0 || res.Attrs.KindRelabeled || res.Attrs.PeriodWidened {
		return Confidence{
			Level:  ConfidencePartial,
			Label:  "Analyse partielle",
			Detail: "Analyse déclenchée avec hypothèse de routage; valider l'intention métier avant décision.",
		}
	}
	if descriptiveKinds[res.Kind] {
		return Confidence{
			Level:  ConfidencePartial,
			Label:  "Analyse partielle",
			Detail: "Corrélation descriptive, données non normalisées (population, trafic, longueur de voirie).",
		}
	}
	return Confidence{
		Level:  ConfidenceVerified,
		Label:  "Analyse vérifiée",
		Detail: "Calculs reproduits sur données filtrées avec trace d'exécution et preuves affichées.",
	}
}
