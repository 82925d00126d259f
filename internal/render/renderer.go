package render

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"vitalguard/internal/ai"
)

// Renderer displays or forwards one frame.
type Renderer interface {
	Render(ctx context.Context, f Frame) error
}

// Latest keeps the most recent frame for pull-based readers.
type Latest struct {
	mu    sync.RWMutex
	frame *Frame
}

func NewLatest() *Latest {
	return &Latest{}
}

func (l *Latest) Render(_ context.Context, f Frame) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.frame = &f
	return nil
}

// Frame returns the last rendered frame, if any.
func (l *Latest) Frame() (Frame, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.frame == nil {
		return Frame{}, false
	}
	return *l.frame, true
}

// LogRenderer writes one structured line per frame.
type LogRenderer struct {
	logger *zap.Logger
}

func NewLogRenderer(logger *zap.Logger) *LogRenderer {
	return &LogRenderer{logger: logger}
}

func (lr *LogRenderer) Render(_ context.Context, f Frame) error {
	fields := []zap.Field{
		zap.String("session_id", f.SessionID),
		zap.Uint64("tick", f.Tick),
		zap.String("status", string(f.Classification.Status)),
		zap.Strings("issues", f.Classification.Issues),
		zap.Float64("heart_rate", f.Latest.HeartRate),
		zap.Float64("systolic", f.Latest.Systolic),
		zap.Float64("diastolic", f.Latest.Diastolic),
		zap.Float64("temperature", f.Latest.Temperature),
		zap.Float64("oxygen_saturation", f.Latest.OxygenSaturation),
	}

	switch f.Classification.Status {
	case ai.StatusCritical:
		lr.logger.Warn("vitals critical", fields...)
	default:
		lr.logger.Info("vitals rendered", fields...)
	}
	return nil
}

// Fanout renders to every target and joins their errors.
type Fanout []Renderer

func (fo Fanout) Render(ctx context.Context, f Frame) error {
	var errs []error
	for _, r := range fo {
		if err := r.Render(ctx, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
