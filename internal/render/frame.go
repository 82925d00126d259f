package render

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"vitalguard/internal/ai"
	"vitalguard/internal/vitals"
)

// chartTimeLayout labels the x axis of every series.
const chartTimeLayout = time.TimeOnly

// Metric is one scalar card on the dashboard.
type Metric struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Unit    string  `json:"unit"`
	Display string  `json:"display"`
	Delta   string  `json:"delta,omitempty"`
}

// Series holds the charted history, one slice per vital, all aligned
// with Timestamps.
type Series struct {
	Timestamps  []string  `json:"timestamps"`
	HeartRate   []float64 `json:"heart_rate"`
	Systolic    []float64 `json:"systolic"`
	Diastolic   []float64 `json:"diastolic"`
	Temperature []float64 `json:"temperature"`
	Oxygen      []float64 `json:"oxygen"`
}

// Frame is everything a render surface needs for one tick.
type Frame struct {
	ID             string         `json:"id"`
	SessionID      string         `json:"session_id"`
	Tick           uint64         `json:"tick"`
	Timestamp      time.Time      `json:"timestamp"`
	Patient        vitals.Patient `json:"patient"`
	Latest         vitals.Reading `json:"latest"`
	Metrics        []Metric       `json:"metrics"`
	Classification ai.Result      `json:"classification"`
	Trend          *ai.Trend      `json:"trend,omitempty"`
	Series         Series         `json:"series"`
}

// FrameInput is the state a session hands to BuildFrame.
type FrameInput struct {
	SessionID         string
	Tick              uint64
	Patient           vitals.Patient
	Report            ai.Report
	History           []vitals.Reading
	HeartRateBaseline float64
}

// BuildFrame formats the newest reading into metric cards and the
// history into chart series. History must be oldest first.
func BuildFrame(in FrameInput) Frame {
	frame := Frame{
		ID:             uuid.NewString(),
		SessionID:      in.SessionID,
		Tick:           in.Tick,
		Patient:        in.Patient,
		Classification: in.Report.Classification,
		Trend:          in.Report.Trend,
		Series:         buildSeries(in.History),
		Metrics:        []Metric{},
	}

	if len(in.History) == 0 {
		frame.Timestamp = time.Now()
		return frame
	}

	latest := in.History[len(in.History)-1]
	frame.Latest = latest
	frame.Timestamp = latest.Timestamp
	frame.Metrics = buildMetrics(latest, in.HeartRateBaseline, in.Report.Classification)

	return frame
}

func buildMetrics(r vitals.Reading, hrBaseline float64, res ai.Result) []Metric {
	return []Metric{
		{
			Label:   "Heart Rate",
			Value:   r.HeartRate,
			Unit:    vitals.FieldHeartRate.Unit(),
			Display: fmt.Sprintf("%.0f BPM", r.HeartRate),
			Delta:   fmt.Sprintf("%.1f", r.HeartRate-hrBaseline),
		},
		{
			Label:   "Blood Pressure",
			Value:   r.Systolic,
			Unit:    vitals.FieldSystolic.Unit(),
			Display: fmt.Sprintf("%.0f/%.0f", r.Systolic, r.Diastolic),
		},
		{
			Label:   "Temperature",
			Value:   r.Temperature,
			Unit:    vitals.FieldTemperature.Unit(),
			Display: fmt.Sprintf("%.1f °F", r.Temperature),
		},
		{
			Label:   "Oxygen (SpO2)",
			Value:   r.OxygenSaturation,
			Unit:    vitals.FieldOxygen.Unit(),
			Display: fmt.Sprintf("%.0f %%", r.OxygenSaturation),
		},
		{
			Label:   "Health",
			Value:   float64(res.Score),
			Display: string(res.Status),
		},
	}
}

func buildSeries(history []vitals.Reading) Series {
	n := len(history)
	s := Series{
		Timestamps:  make([]string, n),
		HeartRate:   make([]float64, n),
		Systolic:    make([]float64, n),
		Diastolic:   make([]float64, n),
		Temperature: make([]float64, n),
		Oxygen:      make([]float64, n),
	}

	for i, r := range history {
		s.Timestamps[i] = r.Timestamp.Format(chartTimeLayout)
		s.HeartRate[i] = r.HeartRate
		s.Systolic[i] = r.Systolic
		s.Diastolic[i] = r.Diastolic
		s.Temperature[i] = r.Temperature
		s.Oxygen[i] = r.OxygenSaturation
	}
	return s
}
