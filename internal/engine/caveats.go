package engine

// Caveat is the methodological counterweight attached to every analysis:
// what the numbers cannot claim, how to verify, and what decision they can
// reasonably feed.
type Caveat struct {
	Limites      string `json:"limites"`
	Verification string `json:"verification"`
	Decision     string `json:"decision"`
}

var caveatsByKind = map[Kind]Caveat{
	KindHotspots: {
		Limites:      "Le classement reflète des volumes observés de collisions déclarées, sans normalisation par trafic, population ou longueur de voirie.",
		Verification: "Croiser les zones avec le trafic réel (DGFM) et les collisions graves avant priorisation finale.",
		Decision:     "Pré-cibler signalisation/contrôle vitesse sur les 2 premières zones, puis confirmer avec un indicateur normalisé de risque.",
	},
	KindHotspotsMeteo: {
		Limites:      "Le classement identifie des rues/intersections avec plus de collisions observées sous météo ciblée, sans démontrer une causalité directe.",
		Verification: "Comparer ces zones aux mêmes zones hors météo dégradée et normaliser par trafic/longueur de voirie.",
		Decision:     "Lancer un ciblage préventif (signalisation, vitesse, inspection) sur les 2 premières zones puis valider l'effet sur 2 fenêtres successives.",
	},
	KindTrend: {
		Limites:      "Une hausse/baisse brute peut provenir de saisonnalité, de variations de signalement ou de changements de collecte.",
		Verification: "Vérifier la persistance sur plusieurs fenêtres glissantes et contrôler l'effet calendrier.",
		Decision:     "Déclencher une alerte opérationnelle seulement si la tendance se maintient sur au moins 2 périodes consécutives.",
	},
	KindMeteoCollision: {
		Limites:      "La relation météo-collision ici est observationnelle et ne démontre pas une causalité directe.",
		Verification: "Comparer les taux rapportés au volume de trafic estimé par condition météo.",
		Decision:     "Renforcer prévention et communication lors des conditions les plus corrélées, avec revue hebdomadaire des taux normalisés.",
	},
	Kind311Temperature: {
		Limites:      "Les volumes 311 reflètent aussi la propension à signaler; ils ne mesurent pas à eux seuls la gravité du problème terrain.",
		Verification: "Contrôler le délai météo -> signalement et croiser avec inspections voirie.",
		Decision:     "Pré-positionner les équipes sur les tranches météo les plus contributrices, puis valider par retours terrain.",
	},
	Kind311TypesWeather: {
		Limites:      "Le classement repose sur un proxy météo (température) et un lift statistique, sans preuve causale directe.",
		Verification: "Croiser avec observations météo locales (pluie/neige) et volumes absolus par type.",
		Decision:     "Prioriser temporairement les 3 types les plus sur-représentés en météo dégradée, puis ajuster après contrôle terrain.",
	},
	KindQuartiers: {
		Limites:      "Le score combiné est un indicateur de volume agrégé, non un taux de risque normalisé.",
		Verification: "Normaliser par population, trafic ou linéaire de voirie pour comparer équitablement.",
		Decision:     "Utiliser ce classement comme pré-filtre de priorisation, puis arbitrer avec indicateurs normalisés.",
	},
	KindQuartiersMeteo: {
		Limites:      "Le classement compare des volumes observés en contexte météo dégradé et ne démontre pas une causalité directe.",
		Verification: "Comparer ces volumes à des périodes météo neutres et à des taux normalisés.",
		Decision:     "Lancer des actions ciblées sur les 2-3 quartiers en tête en mode pilote, puis mesurer l'impact avant généralisation.",
	},
	KindSTM: {
		Limites:      "La proximité arrêt STM-collision n'implique pas une causalité; elle peut refléter la densité de fréquentation.",
		Verification: "Ventiler par type de collision et créneau horaire pour isoler les situations réellement critiques.",
		Decision:     "Programmer audit sécurité autour des arrêts prioritaires et ajuster signalisation/patrouilles selon créneaux critiques.",
	},
}

// caveatFor returns the per-kind caveat, with a generic fallback.
func caveatFor(kind Kind) Caveat {
	if c, ok := caveatsByKind[kind]; ok {
		return c
	}
	return Caveat{
		Limites:      "Données limitées à la période sélectionnée; interprétation prudente requise.",
		Verification: "Contrôler cohérence temporelle et complétude des sources avant décision.",
		Decision:     "Utiliser ces résultats comme signal initial, puis confirmer par un indicateur normalisé.",
	}
}
