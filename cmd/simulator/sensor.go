package main

import (
	"math"
	"math/rand"
	"time"
)

// sensor produces drifting hydroponic readings for one device
type sensor struct {
	deviceID string
	rng      *rand.Rand
	ph       float64
	ec       float64
}

func newSensor(deviceID string, seed int64) *sensor {
	return &sensor{
		deviceID: deviceID,
		rng:      rand.New(rand.NewSource(seed)),
		ph:       6.0,
		ec:       1200,
	}
}

// next returns the payload the device would POST at time now. pH and EC random-walk
// inside wide clamps so that alerts fire now and then.
func (s *sensor) next(now time.Time) map[string]any {
	hour := now.Hour()
	day := hour >= 6 && hour <= 20

	s.ph = clamp(s.ph+s.rng.NormFloat64()*0.05, 5.0, 7.0)
	s.ec = clamp(s.ec+s.rng.NormFloat64()*25-2, 600, 1800)

	var lux, airTemp, waterTemp float64
	if day {
		lux = 25000 + s.rng.NormFloat64()*3000
		airTemp = 24 + float64(hour-13)*0.4 + s.rng.NormFloat64()
		waterTemp = 22 + float64(hour-13)*0.2 + s.rng.NormFloat64()*0.5
	} else {
		lux = s.rng.NormFloat64() * 50
		airTemp = 20 + s.rng.NormFloat64()*0.8
		waterTemp = 22 + s.rng.NormFloat64()*0.4
	}
	humidity := 65 - (airTemp-22)*1.5 + s.rng.NormFloat64()*3

	return map[string]any{
		"deviceId":   s.deviceID,
		"pH":         round(s.ph, 2),
		"ec":         math.Trunc(s.ec),
		"waterTemp":  round(clamp(waterTemp, 15, 30), 2),
		"airTemp":    round(clamp(airTemp, 15, 35), 2),
		"humidity":   round(clamp(humidity, 40, 90), 1),
		"lightLevel": int64(math.Max(0, lux)),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
