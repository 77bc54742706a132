package domain

import "math"

// Swell height bands in meters.
const (
	ankleToKneeMin = 0.3
	ankleToKneeMax = 1.0
	waistHighMax   = 2.0
)

// Rating scores forecast points against a beach's facing direction.
// The zero value is ready to use.
type Rating struct{}

// Rate returns the 1–5 quality score of point for beach.
func (Rating) Rate(beach Beach, point ForecastPoint) int {
	swellPosition := PositionFromDegrees(point.SwellDirection)
	windPosition := PositionFromDegrees(point.WindDirection)

	windAndWave := WindAndWaveRating(swellPosition, windPosition, beach.Position)
	height := SwellHeightRating(point.SwellHeight)
	period := SwellPeriodRating(point.SwellPeriod)

	avg := float64(windAndWave+height+period) / 3
	return int(math.Floor(avg + 0.5))
}

// WindAndWaveRating scores the relation between the swell and wind quadrants.
// Swell and wind from the same side means chop; wind blowing offshore for
// the beach's facing direction is ideal.
func WindAndWaveRating(wave, wind, beach Position) int {
	if wave == wind {
		return 1
	}
	if isWindOffshore(wave, wind, beach) {
		return 5
	}
	return 3
}

func isWindOffshore(wave, wind, beach Position) bool {
	switch {
	case wave == PositionNorth && wind == PositionSouth && beach == PositionNorth:
		return true
	case wave == PositionSouth && wind == PositionNorth && beach == PositionSouth:
		return true
	case wave == PositionEast && wind == PositionWest && beach == PositionEast:
		return true
	case wave == PositionWest && wind == PositionEast && beach == PositionWest:
		return true
	}
	return false
}

// SwellPeriodRating scores a swell period in seconds.
func SwellPeriodRating(period float64) int {
	switch {
	case period < 7:
		return 1
	case period < 10:
		return 2
	case period < 14:
		return 4
	}
	return 5
}

// SwellHeightRating scores a swell height in meters.
func SwellHeightRating(height float64) int {
	switch {
	case height < ankleToKneeMin:
		return 1
	case height < ankleToKneeMax:
		return 2
	case height < waistHighMax:
		return 3
	}
	return 5
}

// PositionFromDegrees maps a bearing to its compass quadrant. Anything at or
// above 310 wraps back to north.
func PositionFromDegrees(degrees float64) Position {
	switch {
	case degrees < 50:
		return PositionNorth
	case degrees < 120:
		return PositionEast
	case degrees < 220:
		return PositionSouth
	case degrees < 310:
		return PositionWest
	}
	return PositionNorth
}
