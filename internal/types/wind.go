package types

import "math"

var cardinals = [16]string{
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

// CardinalDirection converts a bearing in degrees to one of 16 compass points
func CardinalDirection(directionDegrees float64) string {
	deg := math.Mod(directionDegrees, 360)
	if deg < 0 {
		deg += 360
	}
	index := int((deg/22.5)+.5) % 16 // .5 for rounding
	return cardinals[index]
}
