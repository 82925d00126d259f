package render

import (
	"testing"
	"time"

	"vitalguard/internal/ai"
	"vitalguard/internal/vitals"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHistory() []vitals.Reading {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	return []vitals.Reading{
		{Timestamp: base, HeartRate: 72, Systolic: 118, Diastolic: 79, Temperature: 98.4, OxygenSaturation: 97.6},
		{Timestamp: base.Add(2 * time.Second), HeartRate: 81.46, Systolic: 126.4, Diastolic: 83.6, Temperature: 98.96, OxygenSaturation: 96.7},
	}
}

func TestBuildFrame_Metrics(t *testing.T) {
	hist := sampleHistory()
	report := ai.Report{Classification: ai.Result{Status: ai.StatusStable, Color: ai.ColorGreen}}

	f := BuildFrame(FrameInput{
		SessionID:         "session-1",
		Tick:              7,
		Patient:           vitals.DefaultPatient(),
		Report:            report,
		History:           hist,
		HeartRateBaseline: 75,
	})

	_, err := uuid.Parse(f.ID)
	require.NoError(t, err)
	assert.Equal(t, "session-1", f.SessionID)
	assert.Equal(t, uint64(7), f.Tick)
	assert.Equal(t, hist[1], f.Latest)
	assert.Equal(t, hist[1].Timestamp, f.Timestamp)

	require.Len(t, f.Metrics, 5)
	assert.Equal(t, "81 BPM", f.Metrics[0].Display)
	assert.Equal(t, "6.5", f.Metrics[0].Delta)
	assert.Equal(t, "126/84", f.Metrics[1].Display)
	assert.Equal(t, "99.0 °F", f.Metrics[2].Display)
	assert.Equal(t, "97 %", f.Metrics[3].Display)
	assert.Equal(t, "Stable", f.Metrics[4].Display)
}

func TestBuildFrame_Series(t *testing.T) {
	f := BuildFrame(FrameInput{History: sampleHistory(), HeartRateBaseline: 75})

	assert.Equal(t, []string{"08:00:00", "08:00:02"}, f.Series.Timestamps)
	assert.Equal(t, []float64{72, 81.46}, f.Series.HeartRate)
	assert.Equal(t, []float64{118, 126.4}, f.Series.Systolic)
	assert.Equal(t, []float64{79, 83.6}, f.Series.Diastolic)
	assert.Equal(t, []float64{98.4, 98.96}, f.Series.Temperature)
	assert.Equal(t, []float64{97.6, 96.7}, f.Series.Oxygen)
}

func TestBuildFrame_EmptyHistory(t *testing.T) {
	f := BuildFrame(FrameInput{})

	assert.Empty(t, f.Metrics)
	assert.Empty(t, f.Series.Timestamps)
	assert.False(t, f.Timestamp.IsZero())
}
