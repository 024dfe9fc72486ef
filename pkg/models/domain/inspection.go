package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date layout used by inspection records and filters.
const DateLayout = "2006-01-02"

// TriState is a three-valued flag: unknown, true or false.
type TriState int

const (
	TriUnknown TriState = iota
	TriTrue
	TriFalse
)

func TriStateOf(b bool) TriState {
	if b {
		return TriTrue
	}
	return TriFalse
}

// IsSet reports whether the value is true or false.
func (t TriState) IsSet() bool {
	return t == TriTrue || t == TriFalse
}

func (t TriState) String() string {
	switch t {
	case TriTrue:
		return "true"
	case TriFalse:
		return "false"
	default:
		return ""
	}
}

// ParseTriState accepts the spellings found in inspection exports and query strings.
// The empty string and "null" parse to TriUnknown.
func ParseTriState(s string) (TriState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null":
		return TriUnknown, nil
	case "true", "yes", "y", "1", "o", "accepted", "예":
		return TriTrue, nil
	case "false", "no", "n", "0", "x", "rejected", "아니오":
		return TriFalse, nil
	default:
		return TriUnknown, fmt.Errorf("invalid tri-state value %q", s)
	}
}

func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case TriTrue:
		return []byte("true"), nil
	case TriFalse:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (t *TriState) UnmarshalJSON(data []byte) error {
	var b *bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("tri-state must be a boolean or null: %w", err)
	}
	if b == nil {
		*t = TriUnknown
		return nil
	}
	*t = TriStateOf(*b)
	return nil
}

// InspectionRecord is a single paint-line inspection event.
type InspectionRecord struct {
	ID          string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	VehicleType string
	Color       string
	Booth       string
	DefectArea  string // DR_FRT_LH_DUST
	DefectType  string
	Repainted   TriState
	Accepted    TriState
	Extra       map[string]string
}

// FilterCriteria selects inspection records. Zero-valued fields impose no constraint.
type FilterCriteria struct {
	StartDate   string
	EndDate     string
	VehicleType string
	Color       string
	Repainted   TriState
	Accepted    TriState
}

func (c FilterCriteria) IsEmpty() bool {
	return c == FilterCriteria{}
}

func (c FilterCriteria) Validate() error {
	if c.StartDate != "" {
		if _, err := time.Parse(DateLayout, c.StartDate); err != nil {
			return fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", c.StartDate)
		}
	}
	if c.EndDate != "" {
		if _, err := time.Parse(DateLayout, c.EndDate); err != nil {
			return fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", c.EndDate)
		}
	}
	return nil
}

// FilterOptions is the vocabulary used to populate selection controls.
type FilterOptions struct {
	VehicleTypes []string
	Colors       []string
}

// Dataset is what a record source hands to the analysis layer.
type Dataset struct {
	Records []InspectionRecord
	Options FilterOptions
	Origin  string
}
