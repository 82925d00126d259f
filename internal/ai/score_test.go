package ai

import (
	"math"
	"testing"

	"vitalguard/internal/vitals"

	"github.com/stretchr/testify/assert"
)

func normal() vitals.Reading {
	return vitals.Reading{
		HeartRate:        75,
		Systolic:         120,
		Diastolic:        80,
		Temperature:      98.6,
		OxygenSaturation: 98,
	}
}

func scoreStrategy() *ScoreStrategy {
	return NewScoreStrategy(DefaultScoreThresholds(), DefaultPossibilities())
}

func TestScoreStrategy_Stable(t *testing.T) {
	res := scoreStrategy().Classify(normal())

	assert.Equal(t, StatusStable, res.Status)
	assert.Equal(t, ColorGreen, res.Color)
	assert.Equal(t, 0, res.Score)
	assert.Empty(t, res.Issues)
	assert.Empty(t, res.Possibilities)
	assert.Equal(t, StrategyScore, res.Strategy)
}

func TestScoreStrategy_HeartRateBoundary(t *testing.T) {
	s := scoreStrategy()

	r := normal()
	r.HeartRate = 100
	assert.Equal(t, 0, s.Classify(r).Score, "100 bpm is not above 100")

	r.HeartRate = 101
	res := s.Classify(r)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, StatusWarning, res.Status)
	assert.Equal(t, ColorOrange, res.Color)
	assert.Empty(t, res.Issues, "heart rate adds points without issue text")

	r.HeartRate = 60
	assert.Equal(t, 0, s.Classify(r).Score)

	r.HeartRate = 59.9
	assert.Equal(t, 1, s.Classify(r).Score)
}

func TestScoreStrategy_OxygenBoundary(t *testing.T) {
	s := scoreStrategy()

	r := normal()
	r.OxygenSaturation = 94
	res := s.Classify(r)
	assert.NotContains(t, res.Issues, IssueHypoxiaWarning)
	assert.Equal(t, StatusStable, res.Status)

	r.OxygenSaturation = 93.9
	res = s.Classify(r)
	assert.Contains(t, res.Issues, IssueHypoxiaWarning)
	assert.Equal(t, StatusCritical, res.Status)
	assert.Equal(t, ColorRed, res.Color)
	assert.GreaterOrEqual(t, res.Score, 3)
}

func TestScoreStrategy_HypertensionIsWarning(t *testing.T) {
	s := scoreStrategy()

	r := normal()
	r.Systolic = 140
	r.Diastolic = 90
	assert.Equal(t, StatusStable, s.Classify(r).Status)

	r.Diastolic = 90.1
	res := s.Classify(r)
	assert.Equal(t, StatusWarning, res.Status)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, []string{IssueHypertensionRisk}, res.Issues)
	assert.ElementsMatch(t, []string{"Cardiovascular Disease", "Kidney Disease"}, res.Possibilities)
}

func TestScoreStrategy_ScoresAccumulate(t *testing.T) {
	r := vitals.Reading{
		HeartRate:        130,
		Systolic:         150,
		Diastolic:        95,
		Temperature:      101,
		OxygenSaturation: 90,
	}

	res := scoreStrategy().Classify(r)

	assert.Equal(t, 7, res.Score)
	assert.Equal(t, StatusCritical, res.Status)
	assert.Equal(t, []string{IssueHypertensionRisk, IssuePyrexia, IssueHypoxiaWarning}, res.Issues)
	assert.ElementsMatch(t, []string{
		"Cardiovascular Disease",
		"Kidney Disease",
		"Infection",
		"Inflammatory Response",
		"Respiratory Distress",
		"Pneumonia",
	}, res.Possibilities)
}

func TestScoreStrategy_FeverPlusHeartRateStaysWarning(t *testing.T) {
	r := normal()
	r.HeartRate = 110
	r.Temperature = 100.5

	res := scoreStrategy().Classify(r)

	assert.Equal(t, 2, res.Score)
	assert.Equal(t, StatusWarning, res.Status)
	assert.Equal(t, []string{IssuePyrexia}, res.Issues)
}

func TestScoreStrategy_NonFiniteIsUnclassifiable(t *testing.T) {
	r := normal()
	r.OxygenSaturation = math.NaN()

	res := scoreStrategy().Classify(r)

	assert.Equal(t, StatusUnclassifiable, res.Status)
	assert.Equal(t, ColorGray, res.Color)
	assert.Empty(t, res.Issues)
	assert.Contains(t, res.Message, "Oxygen")
}

func TestScoreStrategy_CustomThresholds(t *testing.T) {
	th := DefaultScoreThresholds()
	th.OxygenLow = 96

	r := normal()
	r.OxygenSaturation = 95

	res := NewScoreStrategy(th, DefaultPossibilities()).Classify(r)
	assert.Equal(t, StatusCritical, res.Status)
}
