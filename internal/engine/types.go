package engine

// Kind identifies one of the nine analysis families the router can select.
type Kind string

const (
	KindHotspots        Kind = "hotspots"
	KindHotspotsMeteo   Kind = "hotspots_meteo"
	KindTrend           Kind = "trend_incidents"
	KindMeteoCollision  Kind = "meteo_collision"
	Kind311Temperature  Kind = "311_temperature"
	Kind311TypesWeather Kind = "311_types_weather"
	KindQuartiers       Kind = "quartiers"
	KindQuartiersMeteo  Kind = "quartiers_meteo"
	KindSTM             Kind = "stm"
)

// Control routes returned by the router before any aggregation runs.
const (
	RouteSmalltalk     Kind = "smalltalk"
	RouteOffTopic      Kind = "off_topic"
	RouteClarification Kind = "need_clarification"
)

// AnalysisKinds lists every aggregation kind, in router priority order.
var AnalysisKinds = []Kind{
	Kind311TypesWeather,
	KindTrend,
	KindHotspotsMeteo,
	Kind311Temperature,
	KindSTM,
	KindQuartiersMeteo,
	KindQuartiers,
	KindMeteoCollision,
	KindHotspots,
}

// Row is one grouped line of an aggregation result: a group key plus
// numeric metrics, with optional textual labels (stop names, windows, ...).
type Row struct {
	Key     string             `json:"key"`
	Metrics map[string]float64 `json:"metrics"`
	Labels  map[string]string  `json:"labels,omitempty"`
}

// Metric returns a metric value, or 0 when absent.
func (r Row) Metric(name string) float64 {
	return r.Metrics[name]
}

// Label returns a textual label, or "" when absent.
func (r Row) Label(name string) string {
	return r.Labels[name]
}

// Attributes records everything needed to reconstruct what filtering and
// relaxation actually happened, even after the cascade widened scope.
type Attributes struct {
	Kind                   Kind     `json:"kind"`
	Period                 string   `json:"periode"`
	WeatherFilterRequested []string `json:"filtre_meteo_demande,omitempty"`
	WeatherFilterApplied   bool     `json:"filtre_meteo_applique"`
	WeatherTag             string   `json:"contexte_meteo_311,omitempty"`
	TrendScope             string   `json:"scope_tendance,omitempty"`
	Notes                  []string `json:"notes,omitempty"`
	AlignmentNote          string   `json:"note_alignement,omitempty"`
	PeriodWidened          bool     `json:"periode_elargie"`
	KindRelabeled          bool     `json:"analyse_requalifiee"`
}

// Result is the output of one aggregation, possibly after relaxation.
type Result struct {
	Kind  Kind       `json:"kind"`
	Rows  []Row      `json:"rows"`
	Attrs Attributes `json:"attrs"`
}

// Empty reports whether the aggregation produced no usable rows.
func (r Result) Empty() bool {
	return len(r.Rows) == 0
}
