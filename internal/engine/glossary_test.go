package engine

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/store"
)

func entryKeys(entries []glossaryEntry) []string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.key
	}
	return keys
}

func TestRetrieveGlossary(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     []string
	}{
		{"weather keyword", "Quel est le risque de verglas ?", []string{"dataset_meteo"}},
		{"collision keyword accented", "Où sont les piétons les plus exposés ?", []string{"dataset_collisions"}},
		{"transit keyword", "Combien d'arrêts de bus dans la zone ?", []string{"dataset_stm"}},
		{"definition keyword", "C'est quoi un hotspot ?", []string{"definitions"}},
		{"no keyword falls back", "Montre-moi les chiffres", []string{"dataset_311", "dataset_collisions"}},
		{
			"many keywords capped in corpus order",
			"Tendance des collisions et requêtes 311 quand il neige ?",
			[]string{"dataset_311", "dataset_collisions", "dataset_meteo"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entryKeys(retrieveGlossary(tt.question))
			if len(got) != len(tt.want) {
				t.Fatalf("retrieveGlossary(%q) keys = %v, want %v", tt.question, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("retrieveGlossary(%q)[%d] = %q, want %q", tt.question, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGlossaryContext(t *testing.T) {
	ctx := glossaryContext("Combien de requêtes 311 pendant une tempête de neige ?")
	if !strings.Contains(ctx, "[SOURCE: Requêtes 311 – Ville de Montréal]") {
		t.Errorf("context missing 311 chunk:\n%s", ctx)
	}
	if !strings.Contains(ctx, "[SOURCE: Météo Canada") {
		t.Errorf("context missing weather chunk:\n%s", ctx)
	}
	if !strings.Contains(ctx, "Seuils critiques:") {
		t.Errorf("context missing weather thresholds:\n%s", ctx)
	}
}

func TestClipContext(t *testing.T) {
	if got := clipContext("court", 1200); got != "court" {
		t.Errorf("clipContext short = %q", got)
	}
	long := strings.Repeat("é", 100)
	got := clipContext(long, 25)
	if len(got) > 25 {
		t.Errorf("clipContext length = %d, want <= 25", len(got))
	}
	if !utf8.ValidString(got) {
		t.Errorf("clipContext split a rune: %q", got)
	}
}

type promptRecorder struct {
	userPrompt string
}

func (p *promptRecorder) Enabled() bool         { return true }
func (p *promptRecorder) ProviderLabel() string { return "Fake API" }
func (p *promptRecorder) Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	p.userPrompt = userPrompt
	return "Réponse directe appuyée sur les chiffres fournis, avec deux points clés et une prudence méthodologique.", nil
}

func TestParaphrasePromptCarriesGlossaryContext(t *testing.T) {
	collisions := repeatColl(t, 6, "2025-03-20", "Peel / Sainte-Catherine", "Ville-Marie", "Sèche")
	st := store.New(collisions, nil, nil, nil)
	rec := &promptRecorder{}
	eng := New(st, rec)

	eng.Answer(context.Background(), "Top 5 intersections avec le plus de collisions", Period30Days, true)
	if !strings.Contains(rec.userPrompt, "Contexte RAG:") {
		t.Fatalf("prompt missing context block:\n%s", rec.userPrompt)
	}
	if !strings.Contains(rec.userPrompt, "Collisions routières – Ville de Montréal") {
		t.Errorf("prompt missing collisions source:\n%s", rec.userPrompt)
	}
}
