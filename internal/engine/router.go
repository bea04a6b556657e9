package engine

import "regexp"

// The router is a single-pass state machine:
// smalltalk -> off_topic -> need_clarification -> one of the nine kinds.
// Every non-empty question classifies into exactly one route; "hotspots"
// is the default kind, never a routing failure.

var smalltalkTokens = []string{
	"bonjour", "bonsoir", "salut", "hello", "hey",
	"merci", "ok", "ça va", "ca va",
	"test", "ping",
}

// Domain vocabulary that disqualifies a short greeting from smalltalk.
var domainGuardTokens = []string{
	"mobilité", "mobilite", "collision", "accident", "incident", "311", "stm",
	"trafic", "route", "quartier", "pluie", "neige", "météo", "meteo",
	"arret", "arrêt",
}

func isSmalltalk(question string) bool {
	q, _ := questionVariants(question)
	if q == "" {
		return true
	}
	if containsAny(q, q, domainGuardTokens...) {
		return false
	}
	for _, tok := range smalltalkTokens {
		if q == tok {
			return true
		}
	}
	for _, tok := range smalltalkTokens {
		if len(q) > len(tok) && q[:len(tok)+1] == tok+" " {
			return true
		}
	}
	return false
}

// Mobility domain lexicon used by the off-topic filter.
var mobilityContextTokens = []string{
	"collision", "accident", "incident", "trafic", "embouteill", "route", "rue", "intersection",
	"quartier", "arrondissement", "zone",
	"311", "requete", "signalement", "deneig", "nid", "eclair",
	"stm", "bus", "metro", "arret", "ligne", "transport",
	"meteo", "pluie", "neige", "verglas", "temperature", "gel", "froid",
	"voirie", "circulation", "congestion", "ralentiss", "coince", "bloque", "bouchon",
	"mobilite", "deplacement",
}

var shortJamRe = regexp.MustCompile(`\bou\s+ca\s+(coince|bloque)\b`)

func hasMobilityContext(question string) bool {
	q, qNorm := questionVariants(question)
	if containsAny(q, qNorm, mobilityContextTokens...) {
		return true
	}
	// Colloquial congestion phrasings without an explicit mobility noun.
	if containsAny(qNorm, qNorm, "coince", "bloque", "bouchon", "congestion", "circulation") {
		if containsAny(qNorm, qNorm, " ou ", "zone", "quartier", "montreal", "trafic", "embouteill") {
			return true
		}
		if shortJamRe.MatchString(qNorm) {
			return true
		}
	}
	return false
}

// Tokens signaling an analytical operation (comparison, ranking, quantity,
// trend). Without one of these the question is understood but too vague.
var analyticIntentTokens = []string{
	"combien", "quel", "quels", "quelle", "quelles", "où", "ou ", "top",
	"plus", "moins", "hausse", "baisse", "augmente", "diminue",
	"tendance", "évolution", "evolution", "variation", "compare", "compar",
	"autour", "impact", "corr", "risque", "hotspot", "coince", "explose",
	"beaucoup", "en ce moment", "actuellement", "maintenant",
}

func hasAnalyticIntent(question string) bool {
	q, qNorm := questionVariants(question)
	return containsAny(q, qNorm, analyticIntentTokens...)
}

// RouteQuestion classifies a question into a control route or analysis kind.
// Kind selection is an ordered rule table: first predicate wins.
func RouteQuestion(question string) Kind {
	if isSmalltalk(question) {
		return RouteSmalltalk
	}
	if !hasMobilityContext(question) {
		return RouteOffTopic
	}
	if !hasAnalyticIntent(question) {
		return RouteClarification
	}

	q, qNorm := questionVariants(question)
	has := func(tokens ...string) bool { return containsAny(q, qNorm, tokens...) }

	has311 := has("311", "requete", "requetes", "signalement", "nid", "deneig", "eclair")
	hasWeather := has(
		"pluie", "pleu", "averse", "mouill",
		"neige", "enneig",
		"verglas", "glace", "gel",
		"meteo", "temperature", "conditions", "froid",
		"rain", "wet", "snow", "ice", "weather",
	)
	hasCollision := has("collision", "accident", "incident", "carambol", "crash")
	asksType := has("type", "types", "categorie", "explos", "hausse", "augment", "increase", "spike")
	trendWords := has("hausse", "augment", "baisse", "evolution", "tendance", "variation", "trend")
	streetTerms := has("rue", "intersection", "boulevard", "boul", "avenue", "route", "autoroute", "axe", "carrefour", "street", "road")
	areaTerms := has("quartier", "secteur", "arrondissement", "zone", "district", "borough", "neighborhood", "neighbourhood")
	stmTerms := has("stm", "bus", "arret", "ligne", "metro", "station")
	riskWords := has("dangereux", "dangereuse", "danger", "risque", "prioritaire", "critique", "top", "plus", "most")
	nowWords := has("en ce moment", "actuellement", "maintenant", "right now", "currently")

	switch {
	case has311 && (hasWeather || asksType):
		return Kind311TypesWeather
	case nowWords && (hasCollision || has311):
		return KindTrend
	case trendWords && (hasCollision || has311):
		return KindTrend
	// Key case: "quelle rue/intersection est la plus dangereuse avec pluie/neige..."
	case hasWeather && streetTerms && (hasCollision || riskWords):
		return KindHotspotsMeteo
	case has311:
		return Kind311Temperature
	case stmTerms:
		return KindSTM
	case areaTerms && hasWeather:
		return KindQuartiersMeteo
	case areaTerms:
		return KindQuartiers
	case hasWeather:
		return KindMeteoCollision
	default:
		return KindHotspots
	}
}

// "sec" must match as a whole word: as a plain substring it fires inside
// "intersections" and "secteur" and drags dry-surface labels into every
// such question's filter.
var dryConditionRe = regexp.MustCompile(`\b(sec|seche|dry)\b`)

// ExtractWeatherFilter pulls condition-label substrings from the question
// for collision weather filtering. Order is preserved, duplicates dropped.
func ExtractWeatherFilter(question string) []string {
	q, qNorm := questionVariants(question)
	var parts []string
	if containsAny(q, qNorm, "neige", "enneig", "tempete", "snow") {
		parts = append(parts, "enneig", "neige")
	}
	if containsAny(q, qNorm, "pluie", "pleu", "mouill", "averse", "rain", "wet") {
		parts = append(parts, "mouill", "pluie", "averse")
	}
	if containsAny(q, qNorm, "verglas", "glace", "gel", "ice") {
		parts = append(parts, "glac", "verglas", "gel")
	}
	if dryConditionRe.MatchString(qNorm) {
		parts = append(parts, "seche", "sec")
	}
	seen := make(map[string]bool, len(parts))
	dedup := parts[:0]
	for _, p := range parts {
		if !seen[p] {
			seen[p] = true
			dedup = append(dedup, p)
		}
	}
	if len(dedup) == 0 {
		return nil
	}
	return dedup
}

// Extract311WeatherTag infers the temperature-proxy tag for 311 analyses.
// Snow is the default: it is the dominant weather driver of 311 volume.
func Extract311WeatherTag(question string) string {
	q, qNorm := questionVariants(question)
	switch {
	case containsAny(q, qNorm, "neige", "enneig", "tempete"):
		return "snow"
	case containsAny(q, qNorm, "verglas", "glace", "gel"):
		return "ice"
	case containsAny(q, qNorm, "pluie", "pleu", "averse", "mouill"):
		return "rain"
	case containsAny(q, qNorm, "froid", "grand froid", "0°c", "zero"):
		return "cold"
	}
	return "snow"
}

// InferTrendScope picks the source set for trend comparison: collisions by
// default, 311 when explicit, both only when both are explicitly present.
func InferTrendScope(question string) string {
	q, qNorm := questionVariants(question)
	has311 := containsAny(q, qNorm, "311", "requete", "requetes", "signalement")
	hasColl := containsAny(q, qNorm, "collision", "collisions", "accident", "accidents", "carambol")
	switch {
	case has311 && hasColl:
		return "both"
	case has311:
		return "req311"
	}
	return "collisions"
}
