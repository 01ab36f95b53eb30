package solar

import (
	"math"
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{5, 5},
		{360, 0},
		{725, 5},
		{-355, 5},
		{-720, 0},
		{359.5, 359.5},
		{-1e-20, 0},
	}
	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v): wanted %v got %v", tt.in, tt.want, got)
		}
		if got < 0 || got >= 360 {
			t.Errorf("NormalizeAngle(%v) = %v is outside [0, 360)", tt.in, got)
		}
		if again := NormalizeAngle(got); again != got {
			t.Errorf("NormalizeAngle is not idempotent for %v: %v then %v", tt.in, got, again)
		}
	}

	if NormalizeAngle(725) != NormalizeAngle(-355) {
		t.Errorf("725 and -355 normalize differently: %v, %v", NormalizeAngle(725), NormalizeAngle(-355))
	}
}

func TestAngle(t *testing.T) {
	tests := []struct {
		d, m, s int
		want    float64
	}{
		{52, 23, 12, 52.386667},
		{9, 41, 52, 9.697778},
		{-9, 41, 52, -9.697778},
		{0, 30, 0, 0.5},
	}
	for _, tt := range tests {
		got := Angle(tt.d, tt.m, tt.s)
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("Angle(%d, %d, %d): wanted %v got %v", tt.d, tt.m, tt.s, tt.want, got)
		}
	}
}

func TestDegRadConversion(t *testing.T) {
	if got := DegToRad(180); got != math.Pi {
		t.Errorf("DegToRad(180): wanted pi got %v", got)
	}
	if got := RadToDeg(math.Pi / 2); math.Abs(got-90) > 1e-12 {
		t.Errorf("RadToDeg(pi/2): wanted 90 got %v", got)
	}
	if got := sinDeg(-30); math.Abs(got+0.5) > 1e-12 {
		t.Errorf("sinDeg(-30): wanted -0.5 got %v", got)
	}
}
