package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDoseStatus = errors.New("model: invalid dose status")

type DoseStatus string

const (
	DoseStatusTaken   DoseStatus = "taken"
	DoseStatusMissed  DoseStatus = "missed"
	DoseStatusSkipped DoseStatus = "skipped"
)

func (s DoseStatus) IsValid() bool {
	switch s {
	case DoseStatusTaken, DoseStatusMissed, DoseStatusSkipped:
		return true
	default:
		return false
	}
}

type DoseLog struct {
	ID                 string
	MedicationName     string
	Status             DoseStatus
	ConfirmationMethod string
	Timestamp          time.Time
}

func (l DoseLog) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return errors.New("model: dose log id is required")
	}
	if strings.TrimSpace(l.MedicationName) == "" {
		return errors.New("model: dose log medication_name is required")
	}
	if !l.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDoseStatus, l.Status)
	}
	if l.Timestamp.IsZero() {
		return errors.New("model: dose log timestamp is required")
	}
	return nil
}
