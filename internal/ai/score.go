package ai

import "vitalguard/internal/vitals"

const (
	IssueHypertensionRisk = "Hypertension Risk"
	IssuePyrexia          = "Pyrexia (Fever)"
	IssueHypoxiaWarning   = "Hypoxia Warning"
)

// ScoreThresholds configures the additive score rules. All comparisons
// are strict.
type ScoreThresholds struct {
	HeartRateHigh   float64 `yaml:"heart_rate_high" json:"heart_rate_high"`
	HeartRateLow    float64 `yaml:"heart_rate_low" json:"heart_rate_low"`
	SystolicHigh    float64 `yaml:"systolic_high" json:"systolic_high"`
	DiastolicHigh   float64 `yaml:"diastolic_high" json:"diastolic_high"`
	TemperatureHigh float64 `yaml:"temperature_high" json:"temperature_high"`
	OxygenLow       float64 `yaml:"oxygen_low" json:"oxygen_low"`

	// total score at or above which the status escalates
	WarningScore  int `yaml:"warning_score" json:"warning_score"`
	CriticalScore int `yaml:"critical_score" json:"critical_score"`
}

func DefaultScoreThresholds() ScoreThresholds {
	return ScoreThresholds{
		HeartRateHigh:   100,
		HeartRateLow:    60,
		SystolicHigh:    140,
		DiastolicHigh:   90,
		TemperatureHigh: 100.4,
		OxygenLow:       94,
		WarningScore:    1,
		CriticalScore:   3,
	}
}

// RuleResult represents the outcome of a single score rule.
type RuleResult struct {
	Triggered bool
	Issue     string
	Points    int
}

// ScoreRule evaluates one vital against the thresholds.
type ScoreRule func(r vitals.Reading, t ScoreThresholds) RuleResult

// ---------- RULES ----------

// Heart rate outside the resting band adds a point but raises no issue.
func HeartRateRule(r vitals.Reading, t ScoreThresholds) RuleResult {
	if r.HeartRate > t.HeartRateHigh || r.HeartRate < t.HeartRateLow {
		return RuleResult{Triggered: true, Points: 1}
	}
	return RuleResult{}
}

func BloodPressureRule(r vitals.Reading, t ScoreThresholds) RuleResult {
	if r.Systolic > t.SystolicHigh || r.Diastolic > t.DiastolicHigh {
		return RuleResult{Triggered: true, Issue: IssueHypertensionRisk, Points: 2}
	}
	return RuleResult{}
}

func FeverRule(r vitals.Reading, t ScoreThresholds) RuleResult {
	if r.Temperature > t.TemperatureHigh {
		return RuleResult{Triggered: true, Issue: IssuePyrexia, Points: 1}
	}
	return RuleResult{}
}

// Hypoxia alone is enough to reach the critical tier.
func HypoxiaRule(r vitals.Reading, t ScoreThresholds) RuleResult {
	if r.OxygenSaturation < t.OxygenLow {
		return RuleResult{Triggered: true, Issue: IssueHypoxiaWarning, Points: 3}
	}
	return RuleResult{}
}

// ScoreStrategy sums rule points and maps the total to a status tier.
type ScoreStrategy struct {
	thresholds    ScoreThresholds
	possibilities PossibilityTable
	rules         []ScoreRule
}

func NewScoreStrategy(t ScoreThresholds, possibilities PossibilityTable) *ScoreStrategy {
	return &ScoreStrategy{
		thresholds:    t,
		possibilities: possibilities,
		rules: []ScoreRule{
			HeartRateRule,
			BloodPressureRule,
			FeverRule,
			HypoxiaRule,
		},
	}
}

func (s *ScoreStrategy) Name() string { return StrategyScore }

func (s *ScoreStrategy) Classify(r vitals.Reading) Result {
	if err := r.Validate(); err != nil {
		return unclassifiable(s.Name(), err)
	}

	score := 0
	issues := []string{}

	for _, rule := range s.rules {
		res := rule(r, s.thresholds)
		if !res.Triggered {
			continue
		}
		score += res.Points
		if res.Issue != "" {
			issues = append(issues, res.Issue)
		}
	}

	result := Result{
		Strategy:      s.Name(),
		Score:         score,
		Issues:        issues,
		Possibilities: s.possibilities.For(issues),
	}

	switch {
	case score >= s.thresholds.CriticalScore:
		result.Status = StatusCritical
		result.Color = ColorRed
		result.Message = "Immediate medical attention may be required."
	case score >= s.thresholds.WarningScore:
		result.Status = StatusWarning
		result.Color = ColorOrange
		result.Message = "Minor fluctuations detected. Monitor closely."
	default:
		result.Status = StatusStable
		result.Color = ColorGreen
		result.Message = "Normal vitals detected."
	}

	return result
}
