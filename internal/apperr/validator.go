package apperr

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"

	MinYear = 2000
	MaxYear = 2100
)

var timeLayouts = []string{"15:04:05", "15:04"}

type Validator struct {
	issues []FieldIssue
}

func NewValidator() *Validator {
	return &Validator{issues: make([]FieldIssue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	field = strings.TrimSpace(field)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.issues = append(v.issues, FieldIssue{
		Field:  field,
		Reason: reason,
	})
}

func (v *Validator) Required(field, value, reason string) bool {
	if strings.TrimSpace(value) == "" {
		v.Add(field, reason)
		return false
	}
	return true
}

func (v *Validator) Enum(field, value string, allowed []string, reason string) {
	normalized := strings.TrimSpace(value)
	if normalized == "" {
		return
	}
	for _, candidate := range allowed {
		if normalized == candidate {
			return
		}
	}
	v.Add(field, reason)
}

func (v *Validator) Date(field, raw string) (time.Time, bool) {
	parsed, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		v.Add(field, "must be a valid date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return parsed, true
}

// TimeOfDay validates HH:MM or HH:MM:SS and returns the HH:MM:SS form.
func (v *Validator) TimeOfDay(field, raw string) (string, bool) {
	normalized, err := NormalizeTimeOfDay(raw)
	if err != nil {
		v.Add(field, "must be a valid time in HH:MM or HH:MM:SS format")
		return "", false
	}
	return normalized, true
}

func (v *Validator) DateOrder(startField string, start time.Time, endField string, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start) {
		v.Add(startField, "must be on or before "+endField)
		v.Add(endField, "must be on or after "+startField)
	}
}

func (v *Validator) NonNegative(field string, value float64) {
	if value < 0 {
		v.Add(field, "must not be negative")
	}
}

// MonthYear parses a month in 1..12 and a year in MinYear..MaxYear.
func (v *Validator) MonthYear(monthRaw, yearRaw string) (int, int, bool) {
	ok := true
	month, err := strconv.Atoi(strings.TrimSpace(monthRaw))
	if err != nil || month < 1 || month > 12 {
		v.Add("month", "must be an integer between 1 and 12")
		ok = false
	}
	year, err := strconv.Atoi(strings.TrimSpace(yearRaw))
	if err != nil || year < MinYear || year > MaxYear {
		v.Add("year", "must be an integer between "+strconv.Itoa(MinYear)+" and "+strconv.Itoa(MaxYear))
		ok = false
	}
	return month, year, ok
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

func (v *Validator) Issues() []FieldIssue {
	if v == nil || len(v.issues) == 0 {
		return nil
	}
	out := make([]FieldIssue, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

// Err returns nil when no issue was recorded.
func (v *Validator) Err() error {
	if !v.HasIssues() {
		return nil
	}
	return Validation(v.Issues()...)
}

func NormalizeTimeOfDay(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.Format("15:04:05"), nil
		}
		lastErr = err
	}
	return "", lastErr
}
