package ai

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func cascadeStrategy() *CascadeStrategy {
	return NewCascadeStrategy(DefaultCascadeThresholds(), DefaultPossibilities())
}

func TestCascadeStrategy_Stable(t *testing.T) {
	res := cascadeStrategy().Classify(normal())

	assert.Equal(t, StatusStable, res.Status)
	assert.Equal(t, ColorGreen, res.Color)
	assert.Empty(t, res.Issues)
	assert.Empty(t, res.Possibilities)
	assert.Equal(t, StrategyCascade, res.Strategy)
}

func TestCascadeStrategy_HeartRateBoundary(t *testing.T) {
	s := cascadeStrategy()

	r := normal()
	r.HeartRate = 120
	res := s.Classify(r)
	assert.Empty(t, res.Issues)
	assert.Equal(t, StatusStable, res.Status)

	r.HeartRate = 120.1
	res = s.Classify(r)
	assert.Equal(t, []string{IssueCriticalTachycardia}, res.Issues)
	assert.Equal(t, StatusCritical, res.Status)
	assert.Equal(t, ColorRed, res.Color)

	r.HeartRate = 50
	assert.Empty(t, s.Classify(r).Issues)

	r.HeartRate = 49.9
	assert.Equal(t, []string{IssueCriticalBradycardia}, s.Classify(r).Issues)
}

func TestCascadeStrategy_OxygenBoundary(t *testing.T) {
	s := cascadeStrategy()

	r := normal()
	r.OxygenSaturation = 90
	res := s.Classify(r)
	assert.NotContains(t, res.Issues, IssueCriticalHypoxia)
	assert.Equal(t, []string{IssueLowOxygenSaturation}, res.Issues)
	assert.Equal(t, StatusStable, res.Status, "low saturation alone is not critical")

	r.OxygenSaturation = 89.9
	res = s.Classify(r)
	assert.Equal(t, []string{IssueCriticalHypoxia}, res.Issues, "else-if keeps one issue per vital")
	assert.Equal(t, StatusCritical, res.Status)

	r.OxygenSaturation = 95
	assert.Empty(t, s.Classify(r).Issues)
}

func TestCascadeStrategy_NonCriticalIssues(t *testing.T) {
	r := normal()
	r.Systolic = 161
	r.Temperature = 101.2

	res := cascadeStrategy().Classify(r)

	assert.Equal(t, StatusStable, res.Status)
	assert.Equal(t, []string{IssueStage2Hypertension, IssueHighFever}, res.Issues)
	assert.ElementsMatch(t, []string{
		"Cardiovascular Disease",
		"Kidney Disease",
		"Infection",
		"Sepsis",
	}, res.Possibilities)
}

func TestCascadeStrategy_TemperatureAndDiastolicBoundaries(t *testing.T) {
	s := cascadeStrategy()

	r := normal()
	r.Temperature = 101
	r.Diastolic = 100
	assert.Empty(t, s.Classify(r).Issues)

	r.Diastolic = 100.5
	assert.Equal(t, []string{IssueStage2Hypertension}, s.Classify(r).Issues)
}

func TestCascadeStrategy_PossibilitiesAreDeduplicated(t *testing.T) {
	r := normal()
	r.HeartRate = 130
	r.Temperature = 102

	res := cascadeStrategy().Classify(r)

	// Infection is suggested by both issues but appears once
	count := 0
	for _, p := range res.Possibilities {
		if p == "Infection" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Len(t, res.Possibilities, 4)
}

func TestCascadeStrategy_NonFiniteIsUnclassifiable(t *testing.T) {
	r := normal()
	r.HeartRate = math.Inf(-1)

	res := cascadeStrategy().Classify(r)
	assert.Equal(t, StatusUnclassifiable, res.Status)
	assert.Empty(t, res.Possibilities)
}
