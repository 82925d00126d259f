package ai

import (
	"strings"

	"vitalguard/internal/vitals"
)

const (
	IssueCriticalTachycardia = "Critical Tachycardia"
	IssueCriticalBradycardia = "Critical Bradycardia"
	IssueStage2Hypertension  = "Stage 2 Hypertension"
	IssueCriticalHypoxia     = "Critical Hypoxia"
	IssueLowOxygenSaturation = "Low Oxygen Saturation"
	IssueHighFever           = "High Fever (Pyrexia)"
)

// criticalMarker in any issue makes the whole reading critical.
const criticalMarker = "Critical"

// CascadeThresholds configures the per-vital threshold cascade.
// All comparisons are strict.
type CascadeThresholds struct {
	TachycardiaAbove     float64 `yaml:"tachycardia_above" json:"tachycardia_above"`
	BradycardiaBelow     float64 `yaml:"bradycardia_below" json:"bradycardia_below"`
	SystolicAbove        float64 `yaml:"systolic_above" json:"systolic_above"`
	DiastolicAbove       float64 `yaml:"diastolic_above" json:"diastolic_above"`
	CriticalHypoxiaBelow float64 `yaml:"critical_hypoxia_below" json:"critical_hypoxia_below"`
	LowOxygenBelow       float64 `yaml:"low_oxygen_below" json:"low_oxygen_below"`
	FeverAbove           float64 `yaml:"fever_above" json:"fever_above"`
}

func DefaultCascadeThresholds() CascadeThresholds {
	return CascadeThresholds{
		TachycardiaAbove:     120,
		BradycardiaBelow:     50,
		SystolicAbove:        160,
		DiastolicAbove:       100,
		CriticalHypoxiaBelow: 90,
		LowOxygenBelow:       95,
		FeverAbove:           101,
	}
}

// CascadeRule returns the issue raised for one vital, or "".
// Within a rule the checks are mutually exclusive.
type CascadeRule func(r vitals.Reading, t CascadeThresholds) string

func HeartRateCascade(r vitals.Reading, t CascadeThresholds) string {
	if r.HeartRate > t.TachycardiaAbove {
		return IssueCriticalTachycardia
	} else if r.HeartRate < t.BradycardiaBelow {
		return IssueCriticalBradycardia
	}
	return ""
}

func BloodPressureCascade(r vitals.Reading, t CascadeThresholds) string {
	if r.Systolic > t.SystolicAbove || r.Diastolic > t.DiastolicAbove {
		return IssueStage2Hypertension
	}
	return ""
}

func OxygenCascade(r vitals.Reading, t CascadeThresholds) string {
	if r.OxygenSaturation < t.CriticalHypoxiaBelow {
		return IssueCriticalHypoxia
	} else if r.OxygenSaturation < t.LowOxygenBelow {
		return IssueLowOxygenSaturation
	}
	return ""
}

func TemperatureCascade(r vitals.Reading, t CascadeThresholds) string {
	if r.Temperature > t.FeverAbove {
		return IssueHighFever
	}
	return ""
}

// CascadeStrategy reports Critical iff any raised issue is critical,
// Stable otherwise. It has no Warning tier.
type CascadeStrategy struct {
	thresholds    CascadeThresholds
	possibilities PossibilityTable
	rules         []CascadeRule
}

func NewCascadeStrategy(t CascadeThresholds, possibilities PossibilityTable) *CascadeStrategy {
	return &CascadeStrategy{
		thresholds:    t,
		possibilities: possibilities,
		rules: []CascadeRule{
			HeartRateCascade,
			BloodPressureCascade,
			OxygenCascade,
			TemperatureCascade,
		},
	}
}

func (s *CascadeStrategy) Name() string { return StrategyCascade }

func (s *CascadeStrategy) Classify(r vitals.Reading) Result {
	if err := r.Validate(); err != nil {
		return unclassifiable(s.Name(), err)
	}

	issues := []string{}
	critical := false

	for _, rule := range s.rules {
		issue := rule(r, s.thresholds)
		if issue == "" {
			continue
		}
		issues = append(issues, issue)
		if strings.Contains(issue, criticalMarker) {
			critical = true
		}
	}

	result := Result{
		Strategy:      s.Name(),
		Issues:        issues,
		Possibilities: s.possibilities.For(issues),
	}

	switch {
	case critical:
		result.Status = StatusCritical
		result.Color = ColorRed
		result.Message = "Critical findings detected. Escalate care immediately."
	case len(issues) > 0:
		result.Status = StatusStable
		result.Color = ColorGreen
		result.Message = "Non-critical findings detected. Continue monitoring."
	default:
		result.Status = StatusStable
		result.Color = ColorGreen
		result.Message = "All vitals within normal limits."
	}

	return result
}
