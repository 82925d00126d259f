package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vitalguard/internal/ai"
	"vitalguard/internal/generator"
	"vitalguard/internal/history"
	"vitalguard/internal/metrics"
	"vitalguard/internal/render"
	"vitalguard/internal/vitals"
)

var ErrSessionClosed = errors.New("session closed")

// Options wires a Session.
type Options struct {
	Source            generator.Source
	HistoryCapacity   int
	Analyzer          *ai.Analyzer
	Renderer          render.Renderer
	Patient           vitals.Patient
	Enabled           bool
	HeartRateBaseline float64
	Logger            *zap.Logger
	Metrics           *metrics.Registry
}

// Session owns the monitoring state of one patient view: the rolling
// history, the live-stream toggle and the patient metadata.
//
// Ticks are serialized by tickMu, so user actions arriving on other
// goroutines never observe a half-finished tick.
type Session struct {
	id string

	tickMu   sync.Mutex
	tick     uint64
	source   generator.Source
	history  *history.Ring[vitals.Reading]
	analyzer *ai.Analyzer
	renderer render.Renderer

	patientMu sync.RWMutex
	patient   vitals.Patient

	enabled atomic.Bool
	closed  atomic.Bool

	hrBaseline float64
	logger     *zap.Logger
	metrics    *metrics.Registry
}

// NewSession validates opts and returns a session ready to tick.
func NewSession(opts Options) (*Session, error) {
	buf, err := history.NewBuffer(opts.HistoryCapacity)
	if err != nil {
		return nil, err
	}
	if opts.Source == nil {
		return nil, errors.New("session requires a reading source")
	}
	if opts.Analyzer == nil {
		return nil, errors.New("session requires an analyzer")
	}
	if err := opts.Patient.Validate(); err != nil {
		return nil, err
	}

	if opts.Renderer == nil {
		opts.Renderer = render.Fanout{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewRegistry()
	}

	id := uuid.NewString()
	s := &Session{
		id:         id,
		source:     opts.Source,
		history:    buf,
		analyzer:   opts.Analyzer,
		renderer:   opts.Renderer,
		patient:    opts.Patient.WithID(),
		hrBaseline: opts.HeartRateBaseline,
		logger:     opts.Logger.With(zap.String("session_id", id)),
		metrics:    opts.Metrics,
	}
	s.enabled.Store(opts.Enabled)

	s.logger.Info("session started",
		zap.Int("history_capacity", buf.Cap()),
		zap.String("strategy", opts.Analyzer.Strategy().Name()),
		zap.Bool("monitoring", opts.Enabled),
	)
	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

// Tick runs generate, append, classify and render once.
// It returns a nil frame without doing any work while monitoring is off.
func (s *Session) Tick(ctx context.Context) (*render.Frame, error) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	if s.closed.Load() {
		return nil, ErrSessionClosed
	}
	if !s.enabled.Load() {
		s.metrics.Inc(metrics.TicksSkippedTotal)
		return nil, nil
	}

	s.tick++
	s.metrics.Inc(metrics.TicksTotal)

	reading := s.source.Next()
	s.metrics.Inc(metrics.ReadingsGeneratedTotal)

	if evicted := s.history.Append(reading); evicted > 0 {
		s.metrics.Add(metrics.HistoryEvictionsTotal, int64(evicted))
	}
	s.metrics.Set(metrics.HistorySize, int64(s.history.Len()))

	snapshot := s.history.Snapshot()
	report := s.analyzer.Analyze(snapshot)

	frame := render.BuildFrame(render.FrameInput{
		SessionID:         s.id,
		Tick:              s.tick,
		Patient:           s.Patient(),
		Report:            report,
		History:           snapshot,
		HeartRateBaseline: s.hrBaseline,
	})

	if err := s.renderer.Render(ctx, frame); err != nil {
		s.metrics.Inc(metrics.RenderFailuresTotal)
		s.logger.Warn("render failed", zap.Uint64("tick", s.tick), zap.Error(err))
		return &frame, fmt.Errorf("render tick %d: %w", s.tick, err)
	}

	s.logger.Debug("tick complete",
		zap.Uint64("tick", s.tick),
		zap.String("status", string(report.Classification.Status)),
		zap.Int("history_size", len(snapshot)),
	)
	return &frame, nil
}

// Reset clears the history. The next tick starts a fresh window.
func (s *Session) Reset() {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	s.history.Clear()
	s.metrics.Inc(metrics.HistoryResetsTotal)
	s.metrics.Set(metrics.HistorySize, 0)
	s.logger.Info("history reset")
}

// SetMonitoring toggles the live stream. Takes effect at the next tick.
func (s *Session) SetMonitoring(enabled bool) {
	if s.enabled.Swap(enabled) != enabled {
		s.logger.Info("monitoring toggled", zap.Bool("enabled", enabled))
	}
}

func (s *Session) Monitoring() bool {
	return s.enabled.Load()
}

// History returns the rolling window, oldest first.
func (s *Session) History() []vitals.Reading {
	return s.history.Snapshot()
}

func (s *Session) Patient() vitals.Patient {
	s.patientMu.RLock()
	defer s.patientMu.RUnlock()
	return s.patient
}

// SetPatient replaces the display metadata, keeping the current ID
// when p has none.
func (s *Session) SetPatient(p vitals.Patient) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.patientMu.Lock()
	defer s.patientMu.Unlock()

	if p.ID == "" {
		p.ID = s.patient.ID
	}
	s.patient = p
	return nil
}

// Close disposes the session. Further ticks fail with ErrSessionClosed.
func (s *Session) Close() {
	if !s.closed.Swap(true) {
		s.logger.Info("session closed", zap.Uint64("ticks", s.ticks()))
	}
}

func (s *Session) ticks() uint64 {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	return s.tick
}
