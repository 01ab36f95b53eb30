package solar

import (
	"math"
)

const (
	// meanNoonEpoch is J2000 plus the offset of mean solar noon
	meanNoonEpoch = 2451545.0009

	obliquity = 23.45 // axial tilt, degrees

	// horizon is the solar altitude at sunrise and sunset, accounting
	// for refraction and the radius of the solar disc
	horizon = -0.83
)

// julianCycle counts the solar transits between J2000 and the day
// jdn, as seen from longitudeWest. Like every formula in this file it
// takes longitude positive westward; Observer negates the east-positive
// value it is built with.
func julianCycle(jdn int, longitudeWest float64) float64 {
	return math.Floor(float64(jdn) - meanNoonEpoch - longitudeWest/360 + 0.5)
}

// approxTransit approximates solar noon for the mean sun
func approxTransit(jdn int, longitudeWest float64) float64 {
	return meanNoonEpoch + longitudeWest/360 + julianCycle(jdn, longitudeWest)
}

// meanAnomaly is the angle the mean sun has swept since the last
// perihelion at the given Julian date, normalized to [0, 360).
func meanAnomaly(julian float64) float64 {
	return NormalizeAngle(357.5291 + 0.98560028*(julian-J2000))
}

// equationOfCenter is how far, in degrees, the true sun on its
// elliptical orbit runs ahead of the mean sun, to third order.
//
// https://en.wikipedia.org/wiki/Equation_of_the_center
func equationOfCenter(meanAnomaly float64) float64 {
	firstOrder := 1.9148 * sinDeg(meanAnomaly)
	secondOrder := 0.0200 * sinDeg(2*meanAnomaly)
	thirdOrder := 0.0003 * sinDeg(3*meanAnomaly)

	return firstOrder + secondOrder + thirdOrder
}

// eclipticLongitude is the sun's position along the ecliptic in
// degrees. 102.9372 is the argument of perihelion.
func eclipticLongitude(meanAnomaly float64) float64 {
	return NormalizeAngle(meanAnomaly + 102.9372 + equationOfCenter(meanAnomaly) + 180)
}

// transitCorrection is the offset in days between mean and
// apparent solar noon (the equation of time)
func transitCorrection(meanAnomaly float64) float64 {
	lambda := eclipticLongitude(meanAnomaly)
	return 0.0053*sinDeg(meanAnomaly) - 0.0069*sinDeg(2*lambda)
}

// solarTransit refines an approximate transit into the Julian date
// of apparent solar noon
func solarTransit(approx float64) float64 {
	return approx + transitCorrection(meanAnomaly(approx))
}

// declination returns the sine and cosine of the sun's declination
func declination(meanAnomaly float64) (sin, cos float64) {
	sin = sinDeg(eclipticLongitude(meanAnomaly)) * sinDeg(obliquity)
	return sin, math.Cos(math.Asin(sin))
}

// refraction lowers the horizon for an observer above sea level
func refraction(elevation float64) float64 {
	if elevation > 0 {
		return -2.076 * math.Sqrt(elevation) / 60
	}
	return 0
}

// hourAngle is half the arc the sun travels above the horizon at
// the given latitude, in degrees. ok is false when the sun never
// crosses the horizon on that day.
func hourAngle(approx, latitude, elevation float64) (h float64, ok bool) {
	if !(math.Abs(latitude) < 90) {
		return 0, false
	}

	sinDecl, cosDecl := declination(meanAnomaly(approx))

	cosH := sinDeg(horizon+refraction(elevation)) - sinDeg(latitude)*sinDecl
	cosH /= cosDeg(latitude) * cosDecl
	if !(cosH >= -1 && cosH <= 1) {
		return 0, false
	}

	return RadToDeg(math.Acos(cosH)), true
}

// noonAltitude is the altitude of the sun at transit, in degrees
func noonAltitude(approx, latitude float64) float64 {
	sinDecl, _ := declination(meanAnomaly(approx))
	decl := RadToDeg(math.Asin(sinDecl))
	return 90 - math.Abs(latitude-decl)
}
