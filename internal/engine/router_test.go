package engine

import "testing"

func TestRouteQuestion(t *testing.T) {
	tests := []struct {
		question string
		want     Kind
	}{
		// Control routes.
		{"bonjour", RouteSmalltalk},
		{"merci beaucoup", RouteSmalltalk},
		{"", RouteSmalltalk},
		{"Quelle est la recette de la poutine ?", RouteOffTopic},
		{"Raconte-moi une blague", RouteOffTopic},
		{"Parle-moi du trafic", RouteClarification},

		// Nine kinds, in priority order.
		{"Quels types de requêtes 311 augmentent quand il neige ?", Kind311TypesWeather},
		{"Quels types de signalements explosent avec la pluie ?", Kind311TypesWeather},
		{"Y a-t-il plus d'accidents en ce moment ?", KindTrend},
		{"Les collisions augmentent-elles sur 7 derniers jours ?", KindTrend},
		{"Quelle rue est la plus dangereuse quand il pleut ?", KindHotspotsMeteo},
		{"Quelles intersections ont le plus de collisions avec la neige ?", KindHotspotsMeteo},
		{"Combien de requêtes 311 sur 30 jours ?", Kind311Temperature},
		{"Autour de quels arrêts STM observe-t-on le plus de collisions ?", KindSTM},
		{"Quels quartiers ont le plus de collisions quand il neige ?", KindQuartiersMeteo},
		{"Quels quartiers ont le plus d'incidents ?", KindQuartiers},
		{"Quel est l'impact de la pluie sur les collisions ?", KindMeteoCollision},
		{"Top 5 intersections avec le plus de collisions sur 30 derniers jours", KindHotspots},
		{"où ça coince ?", KindHotspots},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			if got := RouteQuestion(tt.question); got != tt.want {
				t.Errorf("RouteQuestion(%q) = %s, want %s", tt.question, got, tt.want)
			}
		})
	}
}

// Every input classifies into exactly one known route; there is no
// unclassified fallthrough.
func TestRouteQuestionTotalCoverage(t *testing.T) {
	known := map[Kind]bool{
		RouteSmalltalk: true, RouteOffTopic: true, RouteClarification: true,
	}
	for _, k := range AnalysisKinds {
		known[k] = true
	}

	inputs := []string{
		"", "  ", "bonjour", "xyzzy", "42", "Montréal",
		"où sont les pires bouchons de circulation ?",
		"Top collisions piétons quartier Rosemont sous la pluie verglaçante",
		"combien d'arrêts de bus autour des zones à risque ?",
		"ça bloque où en ce moment sur la route ?",
	}
	for _, q := range inputs {
		if got := RouteQuestion(q); !known[got] {
			t.Errorf("RouteQuestion(%q) = %q, not a known route", q, got)
		}
	}
}

func TestExtractWeatherFilter(t *testing.T) {
	tests := []struct {
		question string
		want     []string
	}{
		{"accidents quand il neige", []string{"enneig", "neige"}},
		{"collisions sous la pluie", []string{"mouill", "pluie", "averse"}},
		{"collisions sur le verglas", []string{"glac", "verglas", "gel"}},
		{"collisions neige et pluie", []string{"enneig", "neige", "mouill", "pluie", "averse"}},
		{"collisions sur chaussée sèche", []string{"seche", "sec"}},
		{"top intersections", nil},
		{"Quelles intersections ont le plus de collisions avec la neige ?", []string{"enneig", "neige"}},
		{"secteur dangereux pour les piétons", nil},
	}
	for _, tt := range tests {
		got := ExtractWeatherFilter(tt.question)
		if len(got) != len(tt.want) {
			t.Errorf("ExtractWeatherFilter(%q) = %v, want %v", tt.question, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ExtractWeatherFilter(%q)[%d] = %q, want %q", tt.question, i, got[i], tt.want[i])
			}
		}
	}
}

func TestExtract311WeatherTag(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"requêtes 311 quand il neige", "snow"},
		{"requêtes 311 sous le verglas", "ice"},
		{"requêtes 311 quand il pleut beaucoup", "rain"},
		{"requêtes 311 par grand froid", "cold"},
		{"requêtes 311 par météo", "snow"},
	}
	for _, tt := range tests {
		if got := Extract311WeatherTag(tt.question); got != tt.want {
			t.Errorf("Extract311WeatherTag(%q) = %q, want %q", tt.question, got, tt.want)
		}
	}
}

func TestInferTrendScope(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"Les collisions augmentent-elles ?", "collisions"},
		{"Les requêtes 311 augmentent-elles ?", "req311"},
		{"Collisions et requêtes 311 augmentent-elles ?", "both"},
		{"Ça augmente en ce moment ?", "collisions"},
	}
	for _, tt := range tests {
		if got := InferTrendScope(tt.question); got != tt.want {
			t.Errorf("InferTrendScope(%q) = %q, want %q", tt.question, got, tt.want)
		}
	}
}
