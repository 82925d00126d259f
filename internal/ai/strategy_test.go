package ai

import (
	"testing"
	"time"

	"vitalguard/internal/metrics"
	"vitalguard/internal/vitals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStrategy(t *testing.T) {
	for _, name := range Strategies {
		s, err := NewStrategy(name, DefaultRuleConfig())
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}

	s, err := NewStrategy("ml", DefaultRuleConfig())
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestStrategies_ArePure(t *testing.T) {
	inputs := []vitals.Reading{
		normal(),
		{HeartRate: 130, Systolic: 165, Diastolic: 105, Temperature: 102, OxygenSaturation: 85},
		{HeartRate: -3, Systolic: 0, Diastolic: 0, Temperature: 0, OxygenSaturation: 140},
	}

	for _, name := range Strategies {
		s, err := NewStrategy(name, DefaultRuleConfig())
		require.NoError(t, err)

		for _, in := range inputs {
			first := s.Classify(in)
			for i := 0; i < 5; i++ {
				again := s.Classify(in)
				assert.Equal(t, first.Status, again.Status)
				assert.Equal(t, first.Issues, again.Issues)
				assert.ElementsMatch(t, first.Possibilities, again.Possibilities)
			}
		}
	}
}

func TestPossibilityTable_UnknownIssue(t *testing.T) {
	assert.Empty(t, DefaultPossibilities().For([]string{"Unlisted"}))
	assert.Empty(t, PossibilityTable(nil).For([]string{IssuePyrexia}))
}

func TestCompareReadings(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 30, 15, 0, time.UTC)
	prev := vitals.Reading{Timestamp: at, HeartRate: 72, Systolic: 125}

	t.Run("stable heart rate and improved pressure", func(t *testing.T) {
		trend := CompareReadings(prev, vitals.Reading{HeartRate: 76.9, Systolic: 118})
		assert.Equal(t, TrendStable, trend.HeartRate)
		assert.Equal(t, TrendImproved, trend.BloodPressure)
		assert.Equal(t, at, trend.Since)
		assert.Equal(t,
			"Since your last check-in at 09:30:15, your blood pressure has improved and your heart rate is stable.",
			trend.Summary)
	})

	t.Run("fluctuating heart rate", func(t *testing.T) {
		trend := CompareReadings(prev, vitals.Reading{HeartRate: 77, Systolic: 125})
		assert.Equal(t, TrendFluctuating, trend.HeartRate)
		assert.Equal(t, TrendStable, trend.BloodPressure)
	})
}

func TestAnalyzer(t *testing.T) {
	t.Run("EmptyHistory", func(t *testing.T) {
		reg := metrics.NewRegistry()
		a := NewAnalyzer(scoreStrategy(), reg)

		report := a.Analyze(nil)

		assert.Equal(t, StatusUnclassifiable, report.Classification.Status)
		assert.Nil(t, report.Trend)
		assert.Equal(t, int64(1), reg.Get(metrics.StatusUnclassifiableTotal))
	})

	t.Run("SingleReadingHasNoTrend", func(t *testing.T) {
		reg := metrics.NewRegistry()
		a := NewAnalyzer(scoreStrategy(), reg)

		report := a.Analyze([]vitals.Reading{normal()})

		assert.Equal(t, StatusStable, report.Classification.Status)
		assert.Nil(t, report.Trend)
		assert.Equal(t, int64(1), reg.Get(metrics.StatusStableTotal))
	})

	t.Run("ClassifiesLatestReading", func(t *testing.T) {
		reg := metrics.NewRegistry()
		a := NewAnalyzer(cascadeStrategy(), reg)

		critical := normal()
		critical.OxygenSaturation = 85

		report := a.Analyze([]vitals.Reading{normal(), critical})

		assert.Equal(t, StatusCritical, report.Classification.Status)
		require.NotNil(t, report.Trend)
		assert.Equal(t, TrendStable, report.Trend.HeartRate)
		assert.Equal(t, int64(1), reg.Get(metrics.StatusCriticalTotal))
		assert.Equal(t, cascadeStrategy().Name(), a.Strategy().Name())
	})

	t.Run("CountsWarnings", func(t *testing.T) {
		reg := metrics.NewRegistry()
		a := NewAnalyzer(scoreStrategy(), reg)

		warn := normal()
		warn.HeartRate = 105
		a.Analyze([]vitals.Reading{warn})
		a.Analyze([]vitals.Reading{warn})

		assert.Equal(t, int64(2), reg.Get(metrics.StatusWarningTotal))
	})
}
