package engine

// Trace exposes the final execution facts: what actually ran after the
// cascade, never what was initially requested alone.
type Trace struct {
	KindFinal              Kind     `json:"analyse_finale"`
	Period                 string   `json:"periode_finale"`
	WeatherFilterRequested []string `json:"filtre_meteo_demande,omitempty"`
	WeatherFilterApplied   bool     `json:"filtre_meteo_applique"`
	WeatherTag             string   `json:"contexte_meteo_311,omitempty"`
	TrendScope             string   `json:"scope_tendance,omitempty"`
	PeriodWidened          bool     `json:"periode_elargie"`
	KindRelabeled          bool     `json:"analyse_requalifiee"`
	Notes                  []string `json:"notes,omitempty"`
}

// Paraphrase is the optional LLM rendering of the computed answer.
type Paraphrase struct {
	Text     string `json:"texte"`
	Provider string `json:"fournisseur"`
}

// AnswerPayload is the complete response to one question. Rows and the
// lead always come from the deterministic engine; the paraphrase, when
// present, restates them without adding numbers.
type AnswerPayload struct {
	Question      string         `json:"question"`
	Kind          Kind           `json:"analyse"`
	Period        string         `json:"periode"`
	Lead          string         `json:"lecture"`
	Rows          []Row          `json:"lignes,omitempty"`
	Confidence    *Confidence    `json:"confiance,omitempty"`
	Caveat        *Caveat        `json:"contradicteur,omitempty"`
	Trace         *Trace         `json:"trace,omitempty"`
	Clarification *Clarification `json:"clarification,omitempty"`
	Ambiguity     *Ambiguity     `json:"ambiguite,omitempty"`
	Paraphrase    *Paraphrase    `json:"paraphrase,omitempty"`
	Notes         []string       `json:"notes,omitempty"`
}
