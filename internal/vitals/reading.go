package vitals

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrNonFinite is returned when a reading carries NaN or an infinity.
var ErrNonFinite = errors.New("non-finite vital value")

// Reading is a single sample of a patient's vital signs.
//
// Values are not range checked. Simulated sources may produce
// physiologically implausible numbers (SpO2 above 100, negative heart
// rate) and those are kept as-is.
type Reading struct {
	Timestamp        time.Time `json:"timestamp"`
	HeartRate        float64   `json:"heart_rate"`
	Systolic         float64   `json:"systolic"`
	Diastolic        float64   `json:"diastolic"`
	Temperature      float64   `json:"temperature"`
	OxygenSaturation float64   `json:"oxygen_saturation"`
}

// Field identifies one charted vital series.
type Field int

const (
	FieldHeartRate Field = iota
	FieldSystolic
	FieldDiastolic
	FieldTemperature
	FieldOxygen
)

// Fields lists every series in display order.
var Fields = []Field{
	FieldHeartRate,
	FieldSystolic,
	FieldDiastolic,
	FieldTemperature,
	FieldOxygen,
}

var fieldLabels = map[Field]string{
	FieldHeartRate:   "Heart Rate",
	FieldSystolic:    "Systolic BP",
	FieldDiastolic:   "Diastolic BP",
	FieldTemperature: "Temperature",
	FieldOxygen:      "Oxygen (SpO2)",
}

var fieldUnits = map[Field]string{
	FieldHeartRate:   "bpm",
	FieldSystolic:    "mmHg",
	FieldDiastolic:   "mmHg",
	FieldTemperature: "°F",
	FieldOxygen:      "%",
}

// Label returns the human readable series name.
func (f Field) Label() string {
	return fieldLabels[f]
}

// Unit returns the measurement unit of the series.
func (f Field) Unit() string {
	return fieldUnits[f]
}

func (f Field) String() string {
	return f.Label()
}

// Value returns the reading's value for field f.
func (r Reading) Value(f Field) float64 {
	switch f {
	case FieldHeartRate:
		return r.HeartRate
	case FieldSystolic:
		return r.Systolic
	case FieldDiastolic:
		return r.Diastolic
	case FieldTemperature:
		return r.Temperature
	case FieldOxygen:
		return r.OxygenSaturation
	}
	return math.NaN()
}

// Validate reports the first field holding NaN or ±Inf.
func (r Reading) Validate() error {
	for _, f := range Fields {
		v := r.Value(f)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: %w", f.Label(), ErrNonFinite)
		}
	}
	return nil
}
