package model

import (
	"encoding/json"
	"fmt"
)

// Severity indicates the importance of a diagnostic.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityError indicates an inconsistency that must be fixed.
	SeverityError Severity = iota
	// SeverityInfo indicates informational feedback, e.g. an inferred
	// dimension for an equation that declares no expected unit.
	SeverityInfo
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the severity as its string form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Diagnostic represents one finding for one equation.
type Diagnostic struct {
	File     string   `json:"file"`
	Model    string   `json:"model"`
	Equation string   `json:"equation"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s: %s", d.File, d.Equation, d.Severity, d.Message)
}
