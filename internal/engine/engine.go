package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/store"
)

// Paraphraser restates a computed answer in natural French. It is an
// optional collaborator: the engine's numbers never depend on it.
type Paraphraser interface {
	Enabled() bool
	ProviderLabel() string
	Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)
}

// Engine answers free-text French mobility questions over the loaded store.
type Engine struct {
	store *store.Store
	llm   Paraphraser
}

// New builds an engine. llm may be nil when no provider is configured.
func New(st *store.Store, llm Paraphraser) *Engine {
	return &Engine{store: st, llm: llm}
}

const noteLLMUnavailable = "Synthèse rédigée indisponible (assistant indisponible); réponse chiffrée complète ci-dessus."

// Control-route texts. These answer without touching the datasets.
const (
	smalltalkLead = "Je suis prêt pour une analyse mobilité. Posez une question précise sur Montréal, par exemple: " +
		"Quels quartiers ont le plus d'incidents par temps de pluie ? Quels incidents augmentent sur 7 jours ? " +
		"Autour de quels arrêts STM observe-t-on le plus de collisions ?"
	offTopicLead = "Question hors périmètre. Je peux répondre uniquement sur la mobilité montréalaise: " +
		"collisions, requêtes 311, STM et météo."
	ambiguityLead = "Précisez votre question pour une analyse ciblée, ou je lance une analyse sécurité routière par défaut."
)

// Answer runs the full pipeline for one question: period resolution,
// routing, ambiguity detection, aggregation with fallback, confidence
// grading and optional paraphrase. It always returns a usable payload.
func (e *Engine) Answer(ctx context.Context, question, uiPeriod string, skipAmbiguity bool) AnswerPayload {
	effective := ResolveEffectivePeriod(question, uiPeriod)
	kind := RouteQuestion(question)

	switch kind {
	case RouteSmalltalk:
		return AnswerPayload{
			Question: question,
			Kind:     RouteSmalltalk,
			Period:   effective,
			Lead:     fmt.Sprintf("%s (Période active: %s.)", smalltalkLead, effective),
		}
	case RouteOffTopic:
		return AnswerPayload{
			Question: question,
			Kind:     RouteOffTopic,
			Period:   effective,
			Lead:     offTopicLead,
		}
	case RouteClarification:
		clar := BuildClarification(question, effective)
		return AnswerPayload{
			Question:      question,
			Kind:          RouteClarification,
			Period:        effective,
			Lead:          "Question trop vague pour lancer l'analyse. Ajoutez une intention claire (top, évolution, comparaison, période, zone).",
			Clarification: &clar,
		}
	}

	// A vague question that routed onto the generic default gets its
	// candidate readings attached, together with a default diagnostic so
	// the caller can pause or proceed.
	if !skipAmbiguity && kind == KindHotspots {
		if amb := DetectAmbiguity(question); amb.IsAmbiguous {
			payload := e.analyze(ctx, question, KindHotspots, effective)
			payload.Ambiguity = &amb
			payload.Notes = append([]string{amb.Reason, ambiguityLead}, payload.Notes...)
			return payload
		}
	}

	return e.analyze(ctx, question, kind, effective)
}

func (e *Engine) analyze(ctx context.Context, question string, kind Kind, period string) AnswerPayload {
	coll, req := periodInputs(e.store, period)
	in := analysisInput{
		Collisions:     coll,
		Requests:       req,
		FullCollisions: e.store.Collisions,
		FullRequests:   e.store.Requests,
		Stops:          e.store.Stops,
		Period:         period,
		WeatherFilter:  ExtractWeatherFilter(question),
		WeatherTag:     Extract311WeatherTag(question),
		TrendScope:     InferTrendScope(question),
	}
	res := runWithFallback(e.store, kind, in)

	conf := computeConfidence(res)
	caveat := caveatFor(res.Kind)
	trace := Trace{
		KindFinal:              res.Kind,
		Period:                 res.Attrs.Period,
		WeatherFilterRequested: res.Attrs.WeatherFilterRequested,
		WeatherFilterApplied:   res.Attrs.WeatherFilterApplied,
		TrendScope:             res.Attrs.TrendScope,
		PeriodWidened:          res.Attrs.PeriodWidened,
		KindRelabeled:          res.Attrs.KindRelabeled,
		Notes:                  res.Attrs.Notes,
	}
	if res.Kind == Kind311TypesWeather {
		trace.WeatherTag = res.Attrs.WeatherTag
	}

	notes := make([]string, 0, len(res.Attrs.Notes)+1)
	notes = append(notes, res.Attrs.Notes...)
	if res.Attrs.AlignmentNote != "" {
		notes = append(notes, res.Attrs.AlignmentNote)
	}

	payload := AnswerPayload{
		Question:   question,
		Kind:       res.Kind,
		Period:     res.Attrs.Period,
		Lead:       leadText(res),
		Rows:       res.Rows,
		Confidence: &conf,
		Caveat:     &caveat,
		Trace:      &trace,
		Notes:      notes,
	}

	e.paraphrase(ctx, question, res, &payload)
	return payload
}

// paraphrase asks the configured provider to restate the computed answer.
// Failures only cost the prose, never the numbers.
func (e *Engine) paraphrase(ctx context.Context, question string, res Result, payload *AnswerPayload) {
	if e.llm == nil || !e.llm.Enabled() || res.Empty() {
		return
	}

	systemPrompt := "Tu es un analyste mobilité pour Montréal. " +
		"Tu dois répondre uniquement à partir des données fournies ci-dessous. " +
		"N'invente rien. Si une info manque, dis-le explicitement. " +
		"Réponse courte, factuelle, en français."
	userPrompt := fmt.Sprintf(
		"Question utilisateur: %s\nType d'analyse: %s\nPériode: %s\n\nContexte RAG:\n%s\n\nAperçu chiffré:\n%s\n\n"+
			"Rédige:\n1) Réponse directe (2 phrases max).\n2) 2 points clés en bullet list.\n3) 1 prudence méthodologique (1 phrase).",
		question, res.Kind, res.Attrs.Period, clipContext(glossaryContext(question), 1200), resultPreview(res),
	)

	out, err := e.llm.Generate(ctx, systemPrompt, userPrompt, 420, 0.1)
	if err != nil {
		payload.Notes = append(payload.Notes, noteLLMUnavailable)
		return
	}
	if !usableParaphrase(out) {
		return
	}
	payload.Paraphrase = &Paraphrase{Text: out, Provider: e.llm.ProviderLabel()}
}

// usableParaphrase rejects truncated or empty model output: too short, or
// no sentence punctuation at all in a short snippet.
func usableParaphrase(out string) bool {
	clean := strings.Join(strings.Fields(strings.ReplaceAll(out, "\r", "")), " ")
	if len(clean) < 70 {
		return false
	}
	punct := strings.Count(clean, ".") + strings.Count(clean, "!") + strings.Count(clean, "?")
	if punct == 0 && len(clean) < 140 {
		return false
	}
	return true
}

// resultPreview renders the first rows as compact text for the prompt.
func resultPreview(res Result) string {
	var b strings.Builder
	limit := len(res.Rows)
	if limit > 8 {
		limit = 8
	}
	for _, row := range res.Rows[:limit] {
		b.WriteString(row.Key)
		names := make([]string, 0, len(row.Metrics))
		for name := range row.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, " %s=%g", name, row.Metrics[name])
		}
		b.WriteString("\n")
	}
	return b.String()
}
