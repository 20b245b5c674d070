// Package scoring holds the per-category label scoring tables. All scores
// are on a 1..5 star scale where 5 is safest. Lookups are case-insensitive
// and unknown values fall back to a neutral 2.5.
package scoring

import "strings"

const (
	// NeutralScore is used when an attribute value is not in its table.
	NeutralScore = 2.5

	MinScore = 1.0
	MaxScore = 5.0
)

var speedScores = map[string]float64{
	"20":  1.5,
	"30":  2,
	"40":  2.5,
	"50":  3.5,
	"60":  4,
	"80":  4.5,
	"100": 5,
	"120": 5,
}

var roadsideObjectScores = map[string]float64{
	"metal":    5,
	"concrete": 5,
	"bus":      2,
	"truck":    2,
	"residual": 1,
}

var roadsideDistanceScores = map[string]float64{
	"0-1":  1,
	"1-5":  2,
	"5-10": 3,
	"10+":  5,
}

var intersectionTypeScores = map[string]float64{
	"railway crossing": 1,
	"merge lane":       2,
	"3leg":             2,
	"4leg":             3,
	"3leg signalized":  4,
	"3leg-signalized":  4,
	"4leg signalised":  4,
	"4leg-signalised":  4,
	"roundabout":       5,
}

var intersectionQualityAdjust = map[string]float64{
	"poor":           -1,
	"adequate":       0,
	"not applicable": 0,
}

var channelisationAdjust = map[string]float64{
	"present":     0.5,
	"not present": -0.5,
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func lookup(table map[string]float64, value string) float64 {
	if score, ok := table[norm(value)]; ok {
		return score
	}
	return NeutralScore
}

// SpeedScore scores a speed label. Missing signage (speedLimit "not
// present") scores a flat 2.0 regardless of the management bucket: absent
// information is itself a risk signal. Otherwise the management-speed
// bucket is looked up, with unrecognised values falling back to neutral.
func SpeedScore(speedLimit, management string) float64 {
	presence := norm(speedLimit)
	if presence == "not present" || presence == "not_present" {
		return 2.0
	}
	return lookup(speedScores, management)
}

// SideScore scores one roadside: the mean of the object hazard score and
// the offset-distance score. Each component falls back to neutral on its
// own, so a known object with an unknown distance still contributes.
func SideScore(object, distance string) float64 {
	return (lookup(roadsideObjectScores, object) + lookup(roadsideDistanceScores, distance)) / 2
}

// IntersectionScore scores an intersection label: the type base score
// adjusted by build quality and channelisation, clamped to [1, 5].
func IntersectionScore(intersectionType, quality, channelisation string) float64 {
	base, ok := intersectionTypeScores[norm(intersectionType)]
	if !ok {
		base = 3
	}
	score := base + intersectionQualityAdjust[norm(quality)] + channelisationAdjust[norm(channelisation)]
	return Clamp(score)
}

// Clamp bounds a score to the valid star range.
func Clamp(score float64) float64 {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
