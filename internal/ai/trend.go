package ai

import (
	"fmt"
	"math"
	"time"

	"vitalguard/internal/vitals"
)

const (
	TrendStable      = "stable"
	TrendFluctuating = "fluctuating"
	TrendImproved    = "improved"
)

// heartRateStableDelta is the largest beat-to-beat change still
// reported as stable.
const heartRateStableDelta = 5.0

// Trend compares the latest reading with the one before it.
type Trend struct {
	HeartRate     string    `json:"heart_rate"`
	BloodPressure string    `json:"blood_pressure"`
	Since         time.Time `json:"since"`
	Summary       string    `json:"summary"`
}

// CompareReadings derives the check-in trend between two readings.
func CompareReadings(previous, latest vitals.Reading) Trend {
	hr := TrendFluctuating
	if math.Abs(latest.HeartRate-previous.HeartRate) < heartRateStableDelta {
		hr = TrendStable
	}

	bp := TrendStable
	if latest.Systolic < previous.Systolic {
		bp = TrendImproved
	}

	return Trend{
		HeartRate:     hr,
		BloodPressure: bp,
		Since:         previous.Timestamp,
		Summary: fmt.Sprintf(
			"Since your last check-in at %s, your blood pressure has %s and your heart rate is %s.",
			previous.Timestamp.Format(time.TimeOnly), bp, hr,
		),
	}
}
