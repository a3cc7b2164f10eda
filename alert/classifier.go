package alert

import (
	"fmt"
	"strings"

	"github.com/glucotrack/glucotrack-api/model"
)

// Severity grades how far a reading is from the target range.
type Severity string

const (
	SeverityNone     Severity = "NONE"
	SeverityMild     Severity = "MILD"
	SeveritySevere   Severity = "SEVERE"
	SeverityCritical Severity = "CRITICAL"
)

// Rank orders severities from NONE (0) to CRITICAL (3).
func (s Severity) Rank() int {
	switch s {
	case SeverityMild:
		return 1
	case SeveritySevere:
		return 2
	case SeverityCritical:
		return 3
	}
	return 0
}

// Band is an inclusive mg/dL range mapped to one severity.
type Band struct {
	Severity Severity
	Min      int
	Max      int
}

// BandTable is a contiguous, ascending set of bands. Values outside
// [MinPlausible, MaxPlausible] are rejected.
type BandTable struct {
	MinPlausible int
	MaxPlausible int
	Bands        []Band
}

// Bands is the canonical classification table, in mg/dL.
var Bands = BandTable{
	MinPlausible: 40,
	MaxPlausible: 400,
	Bands: []Band{
		{Severity: SeverityNone, Min: 40, Max: 159},
		{Severity: SeverityMild, Min: 160, Max: 219},
		{Severity: SeveritySevere, Min: 220, Max: 349},
		{Severity: SeverityCritical, Min: 350, Max: 400},
	},
}

// Plausible reports whether value lies inside the table's accepted range.
func (t BandTable) Plausible(value int) bool {
	return value >= t.MinPlausible && value <= t.MaxPlausible
}

// Classify maps value to the severity of the band containing it. Values
// outside the plausible range yield ErrImplausibleValue.
func (t BandTable) Classify(value int) (Severity, error) {
	if !t.Plausible(value) {
		return "", fmt.Errorf("%w: %d mg/dL", ErrImplausibleValue, value)
	}
	for _, b := range t.Bands {
		if value >= b.Min && value <= b.Max {
			return b.Severity, nil
		}
	}
	return "", fmt.Errorf("%w: %d mg/dL", ErrImplausibleValue, value)
}

// Classify maps a glycemic value to its severity using Bands.
func Classify(value int) (Severity, error) {
	return Bands.Classify(value)
}

// ParseSeverity accepts a severity label in any case.
func ParseSeverity(s string) (Severity, error) {
	switch sev := Severity(strings.ToUpper(strings.TrimSpace(s))); sev {
	case SeverityNone, SeverityMild, SeveritySevere, SeverityCritical:
		return sev, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSeverity, s)
}

var severityLabels = map[Severity]string{
	SeverityCritical: model.LabelCriticalGlucose,
	SeveritySevere:   model.LabelVeryHighGlucose,
	SeverityMild:     model.LabelHighGlucose,
}

// LabelFor returns the alert type label raised for a severity.
func LabelFor(s Severity) (string, bool) {
	label, ok := severityLabels[s]
	return label, ok
}

// SeverityOf maps a glycemic alert type label back to its severity, or NONE
// for labels that are not glycemic.
func SeverityOf(label string) Severity {
	for sev, l := range severityLabels {
		if l == label {
			return sev
		}
	}
	return SeverityNone
}
