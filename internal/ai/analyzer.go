package ai

import (
	"vitalguard/internal/metrics"
	"vitalguard/internal/vitals"
)

// Report is the per-tick analysis of the history window.
type Report struct {
	Classification Result `json:"classification"`
	Trend          *Trend `json:"trend,omitempty"`
}

// Analyzer classifies the newest reading of a history window and
// derives its trend.
type Analyzer struct {
	strategy Strategy
	metrics  *metrics.Registry
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(strategy Strategy, reg *metrics.Registry) *Analyzer {
	return &Analyzer{
		strategy: strategy,
		metrics:  reg,
	}
}

func (a *Analyzer) Strategy() Strategy {
	return a.strategy
}

// Analyze evaluates history, oldest first, and counts the resulting status.
func (a *Analyzer) Analyze(history []vitals.Reading) Report {
	if len(history) == 0 {
		res := Result{
			Strategy:      a.strategy.Name(),
			Status:        StatusUnclassifiable,
			Color:         ColorGray,
			Message:       "No readings available.",
			Issues:        []string{},
			Possibilities: []string{},
		}
		a.count(res.Status)
		return Report{Classification: res}
	}

	latest := history[len(history)-1]
	report := Report{Classification: a.strategy.Classify(latest)}

	if len(history) > 1 {
		trend := CompareReadings(history[len(history)-2], latest)
		report.Trend = &trend
	}

	a.count(report.Classification.Status)
	return report
}

func (a *Analyzer) count(s Status) {
	switch s {
	case StatusStable:
		a.metrics.Inc(metrics.StatusStableTotal)
	case StatusWarning:
		a.metrics.Inc(metrics.StatusWarningTotal)
	case StatusCritical:
		a.metrics.Inc(metrics.StatusCriticalTotal)
	default:
		a.metrics.Inc(metrics.StatusUnclassifiableTotal)
	}
}
