package engine

import (
	"github.com/mobilite-mtl/mobilite-backend-go/internal/models"
)

// analysisInput bundles everything one aggregation run needs. Collisions
// and Requests are already period-filtered; FullCollisions and FullRequests
// stay unfiltered for the trend analysis, which derives its own windows.
type analysisInput struct {
	Collisions     []models.Collision
	Requests       []models.ServiceRequest
	FullCollisions []models.Collision
	FullRequests   []models.ServiceRequest
	Stops          []models.TransitStop

	Period        string
	WeatherFilter []string
	WeatherTag    string
	TrendScope    string
}

// runAnalysis dispatches one kind onto its aggregation. The result carries
// the attributes needed to explain what actually ran.
func runAnalysis(kind Kind, in analysisInput) Result {
	attrs := Attributes{
		Kind:   kind,
		Period: in.Period,
	}

	var rows []Row
	switch kind {
	case KindHotspots:
		rows = analyzeHotspots(in.Collisions, nil)
	case KindHotspotsMeteo:
		rows = analyzeHotspots(in.Collisions, in.WeatherFilter)
		attrs.WeatherFilterRequested = in.WeatherFilter
		attrs.WeatherFilterApplied = len(in.WeatherFilter) > 0
	case KindMeteoCollision:
		rows = analyzeMeteoCollision(in.Collisions, in.WeatherFilter)
		attrs.WeatherFilterRequested = in.WeatherFilter
		attrs.WeatherFilterApplied = len(in.WeatherFilter) > 0
	case KindQuartiersMeteo:
		rows = analyzeQuartiersMeteo(in.Collisions, in.WeatherFilter)
		attrs.WeatherFilterRequested = in.WeatherFilter
		attrs.WeatherFilterApplied = len(in.WeatherFilter) > 0
	case Kind311Temperature:
		rows = analyze311Temperature(in.Requests)
		attrs.WeatherTag = in.WeatherTag
	case Kind311TypesWeather:
		rows = analyze311TypesWeather(in.Requests, in.WeatherTag)
		attrs.WeatherTag = in.WeatherTag
	case KindQuartiers:
		rows = analyzeQuartiers(in.Collisions, in.Requests)
	case KindSTM:
		rows = analyzeSTM(in.Collisions, in.Stops)
	case KindTrend:
		var note string
		rows, note = analyzeTrend(in.FullCollisions, in.FullRequests, in.Period, in.TrendScope, in.WeatherFilter)
		attrs.TrendScope = in.TrendScope
		attrs.AlignmentNote = note
		attrs.WeatherFilterRequested = in.WeatherFilter
		attrs.WeatherFilterApplied = len(in.WeatherFilter) > 0
	default:
		rows = analyzeHotspots(in.Collisions, nil)
		attrs.Kind = KindHotspots
	}

	return Result{Kind: attrs.Kind, Rows: rows, Attrs: attrs}
}

// weatherRelaxableKinds support dropping the collision weather filter as
// the first relaxation step.
var weatherRelaxableKinds = map[Kind]bool{
	KindHotspotsMeteo:  true,
	KindQuartiersMeteo: true,
	KindMeteoCollision: true,
	KindTrend:          true,
}
