package engine

import "strings"

// glossaryEntry is one static knowledge chunk about a dataset or a domain
// definition. The corpus grounds the paraphrase prompt so the model
// restates verified facts instead of inventing dataset semantics.
type glossaryEntry struct {
	key   string
	title string
	desc  string
	extra string
}

// Corpus order is the retrieval order, so context output is deterministic.
var glossaryCorpus = []glossaryEntry{
	{
		key:   "dataset_311",
		title: "Requêtes 311 – Ville de Montréal",
		desc: "Le service 311 reçoit les demandes citoyennes pour des problèmes urbains non-urgents. " +
			"Chaque requête contient : type de service, date, arrondissement, statut de traitement.",
		extra: "Catégories: Nids-de-poule, Déneigement, Éclairage défectueux, Aqueduc/Fuite, Collecte des ordures, Entretien trottoir",
	},
	{
		key:   "dataset_collisions",
		title: "Collisions routières – Ville de Montréal",
		desc: "Données géolocalisées des accidents de la route sur l'île de Montréal. " +
			"Gravité officielle : Dommages matériels, Blessés légers, Blessés graves, Mortel. " +
			"Pics horaires habituels : 7h-9h et 16h-19h.",
	},
	{
		key:   "dataset_stm",
		title: "Transport collectif STM – GTFS",
		desc:  "Données du réseau de bus et métro de la Société de transport de Montréal : arrêts géolocalisés et lignes.",
	},
	{
		key:   "dataset_meteo",
		title: "Météo Canada – API GeoMet OGC (climate-daily)",
		desc: "Observations climatiques quotidiennes du Service météorologique du Canada, " +
			"filtrées sur la bbox de l'île de Montréal : température max/min (°C), précipitations (mm), neige (cm).",
		extra: "Seuils critiques: verglas entre -5°C et 2°C avec précipitations; tempête de neige > 15cm/24h; " +
			"pluie forte > 10mm; grand froid < -15°C (hausse requêtes 311 déneigement)",
	},
	{
		key:   "definitions",
		title: "Définitions",
		desc: "Hotspot : zone présentant une concentration anormalement élevée d'incidents sur une période donnée. " +
			"Tendance : évolution d'un indicateur comparée à une période de référence. " +
			"Signal faible : tendance émergente de faible volume mais persistante.",
	},
}

// Accent-stripped keyword to corpus keys. Matching runs on the normalized
// question, so the map stays unaccented.
var glossaryIndex = map[string][]string{
	"311":         {"dataset_311"},
	"requete":     {"dataset_311"},
	"nid":         {"dataset_311"},
	"deneig":      {"dataset_311"},
	"ordure":      {"dataset_311"},
	"trottoir":    {"dataset_311"},
	"collision":   {"dataset_collisions"},
	"accident":    {"dataset_collisions"},
	"gravite":     {"dataset_collisions"},
	"pieton":      {"dataset_collisions"},
	"cycliste":    {"dataset_collisions"},
	"stm":         {"dataset_stm"},
	"bus":         {"dataset_stm"},
	"arret":       {"dataset_stm"},
	"metro":       {"dataset_stm"},
	"meteo":       {"dataset_meteo"},
	"pluie":       {"dataset_meteo"},
	"neige":       {"dataset_meteo"},
	"temperature": {"dataset_meteo"},
	"verglas":     {"dataset_meteo"},
	"hotspot":     {"definitions"},
	"signal":      {"definitions"},
	"tendance":    {"definitions"},
}

const glossaryTopK = 3

// retrieveGlossary picks the corpus chunks whose keywords occur in the
// question, capped at glossaryTopK in corpus order. A question matching
// nothing still gets the collisions and 311 chunks, the two sources most
// answers draw on.
func retrieveGlossary(question string) []glossaryEntry {
	_, qNorm := questionVariants(question)
	wanted := make(map[string]bool)
	for kw, keys := range glossaryIndex {
		if strings.Contains(qNorm, kw) {
			for _, k := range keys {
				wanted[k] = true
			}
		}
	}
	if len(wanted) == 0 {
		wanted["dataset_collisions"] = true
		wanted["dataset_311"] = true
	}

	var out []glossaryEntry
	for _, e := range glossaryCorpus {
		if wanted[e.key] && len(out) < glossaryTopK {
			out = append(out, e)
		}
	}
	return out
}

// glossaryContext formats the retrieved chunks as a text block for the
// paraphrase prompt.
func glossaryContext(question string) string {
	var parts []string
	for _, e := range retrieveGlossary(question) {
		parts = append(parts, "[SOURCE: "+e.title+"]\n"+e.desc)
		if e.extra != "" {
			parts = append(parts, e.extra)
		}
	}
	return strings.Join(parts, "\n\n")
}

// clipContext bounds the context block so the prompt leaves room for the
// numeric preview. The cut backs up to a rune boundary.
func clipContext(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && s[limit]&0xC0 == 0x80 {
		limit--
	}
	return s[:limit]
}
