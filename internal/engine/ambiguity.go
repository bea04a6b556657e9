package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// Ambiguity is the detector's verdict over a fixed catalogue of vague
// phrasings. It is only consulted when the router fell through to the
// generic hotspots kind, to avoid over-triggering on specific questions.
type Ambiguity struct {
	IsAmbiguous bool                  `json:"is_ambiguous"`
	Reason      string                `json:"raison,omitempty"`
	Options     []ClarificationOption `json:"options,omitempty"`
}

type ambiguousPattern struct {
	trigger string
	reason  string
	labels  []string
}

// Catalogue of known vague phrasings, each with 2-4 candidate readings.
var ambiguousPatterns = []ambiguousPattern{
	{
		trigger: "ça coince",
		reason:  "L'expression 'ça coince' peut désigner plusieurs phénomènes.",
		labels: []string{
			"Embouteillages / ralentissements de trafic",
			"Zones à fort taux de collisions",
			"Secteurs avec beaucoup de requêtes 311 non résolues",
		},
	},
	{
		trigger: "ça bloque",
		reason:  "L'expression 'ça bloque' peut désigner plusieurs phénomènes.",
		labels: []string{
			"Embouteillages / ralentissements de trafic",
			"Zones à fort taux de collisions",
			"Secteurs avec beaucoup de requêtes 311 non résolues",
		},
	},
	{
		trigger: "incidents",
		reason:  "Le terme 'incidents' peut couvrir différents types de données.",
		labels: []string{
			"Collisions routières (base de données accidents)",
			"Requêtes 311 (problèmes signalés par citoyens)",
			"Perturbations du réseau STM",
		},
	},
	{
		trigger: "problèmes",
		reason:  "Plusieurs types de problèmes sont disponibles dans les données.",
		labels: []string{
			"Problèmes de voirie (nids-de-poule, trottoirs)",
			"Problèmes de sécurité (collisions, zones dangereuses)",
			"Problèmes d'infrastructure (éclairage, aqueduc)",
		},
	},
}

var jamVariantRe = regexp.MustCompile(`\b(ca|ça)\s+(coince|bloque)\b`)

// DetectAmbiguity matches the question against the catalogue and returns
// the candidate interpretations, each paired with a refined question.
func DetectAmbiguity(question string) Ambiguity {
	q, qNorm := questionVariants(question)

	for _, p := range ambiguousPatterns {
		trigger := strings.ToLower(p.trigger)
		if strings.Contains(q, trigger) || strings.Contains(qNorm, normalizeText(trigger)) {
			return ambiguityFrom(question, p)
		}
	}

	// Unaccented colloquial variants: "ca coince", "ou ca bloque".
	if jamVariantRe.MatchString(q) || jamVariantRe.MatchString(qNorm) {
		return ambiguityFrom(question, ambiguousPatterns[0])
	}

	return Ambiguity{IsAmbiguous: false}
}

func ambiguityFrom(question string, p ambiguousPattern) Ambiguity {
	options := make([]ClarificationOption, 0, len(p.labels))
	for _, label := range p.labels {
		options = append(options, ClarificationOption{
			Label:           label,
			RefinedQuestion: RefineQuestion(question, label),
		})
	}
	return Ambiguity{IsAmbiguous: true, Reason: p.reason, Options: options}
}

// RefineQuestion rewrites the opening clause of a vague question with the
// domain vocabulary of the chosen interpretation, so the refined question
// routes deterministically on the next pass.
func RefineQuestion(question, choiceLabel string) string {
	c := strings.ToLower(choiceLabel)
	switch {
	case strings.Contains(c, "requête") || strings.Contains(c, "requete") || strings.Contains(c, "311"):
		return fmt.Sprintf("Analyse orientée requêtes 311: %s", question)
	case strings.Contains(c, "stm") || strings.Contains(c, "bus") || strings.Contains(c, "métro") || strings.Contains(c, "metro"):
		return fmt.Sprintf("Analyse orientée STM: %s", question)
	case strings.Contains(c, "embouteill") || strings.Contains(c, "trafic"):
		return fmt.Sprintf("Analyse orientée congestion routière (proxy collisions): %s", question)
	case strings.Contains(c, "collision") || strings.Contains(c, "sécurité") || strings.Contains(c, "securite"):
		return fmt.Sprintf("Analyse orientée collisions routières: %s", question)
	}
	return fmt.Sprintf("Analyse orientée: %s. Question: %s", choiceLabel, question)
}
