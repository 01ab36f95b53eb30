package solar

import (
	"math"
)

// DegToRad converts an angle in degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts an angle in radians to degrees
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeAngle maps an angle in degrees into [0, 360).
// Normalizing an already normalized angle returns it unchanged.
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	// tiny negative inputs round up to exactly 360
	if a >= 360 {
		a = 0
	}
	return a
}

// Angle converts a sexagesimal angle to decimal degrees. The sign of
// degrees applies to the whole angle, so Angle(-9, 41, 52) is
// 9°41'52" west.
func Angle(degrees, minutes, seconds int) float64 {
	a := (float64(seconds)/60+float64(minutes))/60 + math.Abs(float64(degrees))
	if degrees < 0 {
		return -a
	}
	return a
}

func sinDeg(deg float64) float64 {
	return math.Sin(DegToRad(NormalizeAngle(deg)))
}

func cosDeg(deg float64) float64 {
	return math.Cos(DegToRad(NormalizeAngle(deg)))
}
