package engine

import (
	"fmt"
	"strings"
)

// ClarificationOption pairs a human-readable label with a fully-formed
// refined question the caller can re-submit as-is.
type ClarificationOption struct {
	Label           string `json:"label"`
	RefinedQuestion string `json:"question_raffinee"`
}

// Clarification is returned when a question has mobility context but no
// clear analytical intent, or when the ambiguity detector triggers.
type Clarification struct {
	Reason  string                `json:"raison"`
	Options []ClarificationOption `json:"options"`
}

// BuildClarification combines detected sub-topics (collisions, 311, STM)
// with detected weather keywords into 2-4 refined questions.
func BuildClarification(question, period string) Clarification {
	q, qNorm := questionVariants(question)
	has := func(tokens ...string) bool { return containsAny(q, qNorm, tokens...) }

	has311 := has("311", "requete", "requetes", "signalement", "deneig", "nid")
	hasCollision := has("collision", "accident", "incident", "carambol")
	hasSTM := has("stm", "bus", "metro", "arret", "station", "ligne")
	hasWeather := has("pluie", "pleu", "neige", "verglas", "glace", "gel", "froid", "meteo", "temperature", "rain", "snow", "ice", "cold", "weather")

	weatherLabel, weatherClause := "", ""
	switch {
	case has("neige", "enneig", "tempete", "snow"):
		weatherLabel, weatherClause = "neige", "quand il neige"
	case has("pluie", "pleu", "averse", "mouill", "rain", "wet"):
		weatherLabel, weatherClause = "pluie", "quand il pleut"
	case has("verglas", "glace", "gel", "ice"):
		weatherLabel, weatherClause = "verglas", "en cas de verglas"
	case hasWeather:
		weatherLabel, weatherClause = "météo dégradée", "en météo dégradée"
	}

	var options []ClarificationOption
	add := func(label, refined string) {
		options = append(options, ClarificationOption{Label: label, RefinedQuestion: refined})
	}

	if hasCollision || (!has311 && !hasSTM) {
		add("Comparer l'évolution récente des collisions",
			fmt.Sprintf("Les collisions augmentent-elles sur %s ?", period))
		if hasWeather {
			desc, clause := weatherLabel, weatherClause
			if desc == "" {
				desc, clause = "météo ciblée", "en météo dégradée"
			}
			add(fmt.Sprintf("Voir les rues/intersections les plus exposées (%s)", desc),
				fmt.Sprintf("Quelles rues/intersections ont le plus de collisions %s sur %s ?", clause, period))
		}
		add("Voir les 5 intersections les plus touchées",
			fmt.Sprintf("Top 5 intersections avec le plus de collisions sur %s", period))
		add("Voir les quartiers les plus touchés",
			fmt.Sprintf("Quels quartiers ont le plus de collisions sur %s ?", period))
	}

	if has311 {
		add("Voir les types 311 dominants",
			fmt.Sprintf("Quels types de requêtes 311 dominent sur %s ?", period))
		add("Comparer l'évolution des requêtes 311",
			fmt.Sprintf("Les requêtes 311 augmentent-elles sur %s ?", period))
		if hasWeather {
			add(fmt.Sprintf("Voir les types 311 sensibles (%s)", weatherLabel),
				fmt.Sprintf("Quels types de requêtes 311 augmentent %s sur %s ?", weatherClause, period))
		}
	}

	if hasSTM {
		add("Voir les arrêts STM proches des zones de collisions",
			fmt.Sprintf("Autour de quels arrêts STM observe-t-on le plus de collisions sur %s ?", period))
		add("Voir les hotspots collisions pour orienter STM",
			fmt.Sprintf("Top 5 intersections avec le plus de collisions sur %s", period))
	}

	if len(options) == 0 {
		add("Comparer l'évolution des collisions",
			fmt.Sprintf("Les collisions augmentent-elles sur %s ?", period))
		add("Voir les hotspots collisions",
			fmt.Sprintf("Top 5 intersections avec le plus de collisions sur %s", period))
		add("Voir les quartiers les plus touchés",
			fmt.Sprintf("Quels quartiers ont le plus d'incidents sur %s ?", period))
		add("Voir les arrêts STM à surveiller",
			fmt.Sprintf("Autour de quels arrêts STM observe-t-on le plus de collisions sur %s ?", period))
	}

	// Dedupe preserving order, cap at 4 options.
	seen := make(map[string]bool)
	out := options[:0]
	for _, opt := range options {
		key := strings.ToLower(strings.TrimSpace(opt.Label)) + "|" + strings.ToLower(strings.TrimSpace(opt.RefinedQuestion))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, opt)
		if len(out) == 4 {
			break
		}
	}

	return Clarification{
		Reason: "La question est comprise, mais l'angle d'analyse n'est pas assez précis " +
			"(tendance, top zones, météo, STM, 311). Choisissez une option pour lancer " +
			"une requête validée sur les données.",
		Options: out,
	}
}
