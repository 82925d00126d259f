package ai

import (
	"errors"
	"fmt"
	"sort"

	"vitalguard/internal/vitals"
)

var ErrUnknownStrategy = errors.New("unknown classifier strategy")

const (
	StrategyScore   = "score"
	StrategyCascade = "cascade"
)

// Strategies lists the selectable rule sets.
var Strategies = []string{StrategyScore, StrategyCascade}

// Strategy maps a reading to a classification. Implementations are pure.
type Strategy interface {
	Name() string
	Classify(r vitals.Reading) Result
}

// RuleConfig carries the thresholds of both rule sets and the shared
// issue to possibility table.
type RuleConfig struct {
	Score         ScoreThresholds   `yaml:"score" json:"score"`
	Cascade       CascadeThresholds `yaml:"cascade" json:"cascade"`
	Possibilities PossibilityTable  `yaml:"possibilities" json:"possibilities"`
}

func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		Score:         DefaultScoreThresholds(),
		Cascade:       DefaultCascadeThresholds(),
		Possibilities: DefaultPossibilities(),
	}
}

// NewStrategy builds the named strategy.
func NewStrategy(name string, cfg RuleConfig) (Strategy, error) {
	switch name {
	case StrategyScore:
		return NewScoreStrategy(cfg.Score, cfg.Possibilities), nil
	case StrategyCascade:
		return NewCascadeStrategy(cfg.Cascade, cfg.Possibilities), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// PossibilityTable maps an issue to the diagnostic categories it suggests.
type PossibilityTable map[string][]string

func DefaultPossibilities() PossibilityTable {
	return PossibilityTable{
		IssueHypertensionRisk:    {"Cardiovascular Disease", "Kidney Disease"},
		IssuePyrexia:             {"Infection", "Inflammatory Response"},
		IssueHypoxiaWarning:      {"Respiratory Distress", "Pneumonia"},
		IssueCriticalTachycardia: {"Cardiac Arrhythmia", "Dehydration", "Infection"},
		IssueCriticalBradycardia: {"Heart Block", "Medication Side Effect"},
		IssueStage2Hypertension:  {"Cardiovascular Disease", "Kidney Disease"},
		IssueCriticalHypoxia:     {"Respiratory Failure", "Pneumonia"},
		IssueLowOxygenSaturation: {"Respiratory Distress"},
		IssueHighFever:           {"Infection", "Sepsis"},
	}
}

// For returns the de-duplicated union of possibilities for issues.
// The slice is sorted only so that output is stable.
func (pt PossibilityTable) For(issues []string) []string {
	set := make(map[string]struct{})
	for _, issue := range issues {
		for _, p := range pt[issue] {
			set[p] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
