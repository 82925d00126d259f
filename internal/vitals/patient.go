package vitals

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrInvalidPatient = errors.New("invalid patient")

const (
	MinPatientAge = 0
	MaxPatientAge = 120
)

var genders = map[string]bool{
	"Male":   true,
	"Female": true,
	"Other":  true,
}

// Patient is display-only metadata shown next to the vitals.
// It never influences generation or classification.
type Patient struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Age       int    `json:"age" yaml:"age"`
	Gender    string `json:"gender" yaml:"gender"`
	MedicalID string `json:"medical_id" yaml:"medical_id"`
}

// DefaultPatient mirrors the profile prefilled in the dashboard sidebar.
func DefaultPatient() Patient {
	return Patient{
		Name:      "John Doe",
		Age:       30,
		Gender:    "Male",
		MedicalID: "HID-9921",
	}
}

// Validate checks age bounds and gender.
func (p Patient) Validate() error {
	if p.Age < MinPatientAge || p.Age > MaxPatientAge {
		return fmt.Errorf("%w: age %d outside [%d, %d]", ErrInvalidPatient, p.Age, MinPatientAge, MaxPatientAge)
	}
	if !genders[p.Gender] {
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidPatient, p.Gender)
	}
	return nil
}

// WithID returns p with a generated ID when it has none.
func (p Patient) WithID() Patient {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return p
}
