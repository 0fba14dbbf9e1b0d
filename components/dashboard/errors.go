package dashboard

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput marks funnels that cannot be scaled because they have no stages.
	ErrEmptyInput = errors.New("dashboard: empty input")
	// ErrMalformedRecord marks records with missing, non-numeric or out of range fields.
	ErrMalformedRecord = errors.New("dashboard: malformed record")
	// ErrUnknownMetric is returned for metric selector values other than count/value.
	ErrUnknownMetric = errors.New("dashboard: unknown metric")
	// ErrUnknownStage is returned when a stage interaction targets no stage.
	ErrUnknownStage = errors.New("dashboard: unknown stage")
)

// EmptyInputError reports a funnel without stages.
type EmptyInputError struct {
	Funnel string
}

func (e *EmptyInputError) Error() string {
	if e.Funnel == "" {
		return "dashboard: funnel has no stages"
	}
	return fmt.Sprintf("dashboard: %s funnel has no stages", e.Funnel)
}

func (e *EmptyInputError) Unwrap() error { return ErrEmptyInput }

// MalformedRecordError reports a record field that cannot be used for scaling,
// classification or charting.
type MalformedRecordError struct {
	Section string
	Index   int
	Field   string
	Reason  string
	Err     error
}

func (e *MalformedRecordError) Error() string {
	location := e.Section
	if e.Index >= 0 && e.Section != "" {
		location = fmt.Sprintf("%s[%d]", e.Section, e.Index)
	}
	if e.Field != "" {
		if location != "" {
			location += "."
		}
		location += e.Field
	}
	msg := "dashboard: malformed record"
	if location != "" {
		msg += " " + location
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *MalformedRecordError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedRecord}
	}
	return []error{ErrMalformedRecord, e.Err}
}

func malformed(section string, index int, field, reason string) *MalformedRecordError {
	return &MalformedRecordError{Section: section, Index: index, Field: field, Reason: reason}
}

// IsInputError reports whether err stems from bad caller input rather than a
// rendering failure.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrMalformedRecord) ||
		errors.Is(err, ErrUnknownMetric) ||
		errors.Is(err, ErrUnknownStage)
}
