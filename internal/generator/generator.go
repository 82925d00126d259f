package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"vitalguard/internal/vitals"
)

var ErrUnknownKind = errors.New("unknown generator kind")

const (
	KindGaussian = "gaussian"
	KindUniform  = "uniform"
)

// Source yields one synthetic reading per call.
type Source interface {
	Next() vitals.Reading
}

// Clock returns the timestamp stamped on generated readings.
type Clock func() time.Time

// Normal is a baseline and spread for one vital.
type Normal struct {
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stddev"`
}

// GaussianProfile holds the per-vital distributions.
type GaussianProfile struct {
	HeartRate   Normal `yaml:"heart_rate"`
	Systolic    Normal `yaml:"systolic"`
	Diastolic   Normal `yaml:"diastolic"`
	Temperature Normal `yaml:"temperature"`
	Oxygen      Normal `yaml:"oxygen"`
}

// DefaultGaussianProfile matches the live stream simulation.
func DefaultGaussianProfile() GaussianProfile {
	return GaussianProfile{
		HeartRate:   Normal{Mean: 75, StdDev: 8},
		Systolic:    Normal{Mean: 120, StdDev: 10},
		Diastolic:   Normal{Mean: 80, StdDev: 5},
		Temperature: Normal{Mean: 98.6, StdDev: 0.5},
		Oxygen:      Normal{Mean: 98, StdDev: 1},
	}
}

// Gaussian draws each vital independently as mean + N(0, stddev).
// Output is not clamped.
type Gaussian struct {
	profile GaussianProfile
	rng     *rand.Rand
	now     Clock
}

func NewGaussian(profile GaussianProfile, rng *rand.Rand, now Clock) *Gaussian {
	return &Gaussian{profile: profile, rng: rng, now: now}
}

func (g *Gaussian) Next() vitals.Reading {
	return vitals.Reading{
		Timestamp:        g.now(),
		HeartRate:        g.draw(g.profile.HeartRate),
		Systolic:         g.draw(g.profile.Systolic),
		Diastolic:        g.draw(g.profile.Diastolic),
		Temperature:      g.draw(g.profile.Temperature),
		OxygenSaturation: g.draw(g.profile.Oxygen),
	}
}

func (g *Gaussian) draw(n Normal) float64 {
	return n.Mean + g.rng.NormFloat64()*n.StdDev
}

// Uniform reproduces the static dashboard's sampling: integer vitals
// drawn from closed ranges and a temperature rounded to one decimal.
type Uniform struct {
	rng *rand.Rand
	now Clock
}

func NewUniform(rng *rand.Rand, now Clock) *Uniform {
	return &Uniform{rng: rng, now: now}
}

func (u *Uniform) Next() vitals.Reading {
	temp := 97 + u.rng.Float64()*4
	return vitals.Reading{
		Timestamp:        u.now(),
		HeartRate:        u.intIn(60, 110),
		Systolic:         u.intIn(100, 150),
		Diastolic:        u.intIn(60, 95),
		Temperature:      math.Round(temp*10) / 10,
		OxygenSaturation: u.intIn(90, 100),
	}
}

// intIn returns an integer in [lo, hi].
func (u *Uniform) intIn(lo, hi int) float64 {
	return float64(lo + u.rng.Intn(hi-lo+1))
}

// New builds a source by kind. A zero seed is replaced with the wall clock.
func New(kind string, seed int64, now Clock) (Source, error) {
	if now == nil {
		now = time.Now
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	switch kind {
	case KindGaussian, "":
		return NewGaussian(DefaultGaussianProfile(), rng, now), nil
	case KindUniform:
		return NewUniform(rng, now), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
