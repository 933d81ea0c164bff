package validation

import (
	"time"
)

// Report sort keys
const (
	SortByDuration  = "duration"
	SortByStartTime = "start_time"
)

// Report outputs
const (
	OutputDuration = "duration"
	OutputInterval = "interval"
)

// ReportValidator validates reporting parameters
type ReportValidator struct {
	validator *Validator
}

// NewReportValidator creates a new report validator
func NewReportValidator() *ReportValidator {
	return &ReportValidator{validator: NewValidator()}
}

// ValidateTimeRange requires a non-empty range with start before end
func (rv *ReportValidator) ValidateTimeRange(start, end time.Time) error {
	validationError := NewValidationError()

	if start.IsZero() {
		validationError.AddRequiredError("start")
	}
	if end.IsZero() {
		validationError.AddRequiredError("end")
	}
	if validationError.HasErrors() {
		return validationError
	}

	if !rv.validator.IsValidTimeRange(start, end) {
		validationError.AddInvalidRangeError("time_range", map[string]time.Time{
			"start": start,
			"end":   end,
		}, "start must be before end")
	}
	return validationError.OrNil()
}

// ValidateSortKey accepts duration or start_time
func (rv *ReportValidator) ValidateSortKey(key string) error {
	switch key {
	case SortByDuration, SortByStartTime:
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidValueError("sort", key, "must be duration or start_time")
	return validationError
}

// ValidateOutput accepts duration or interval
func (rv *ReportValidator) ValidateOutput(output string) error {
	switch output {
	case OutputDuration, OutputInterval:
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidValueError("output", output, "must be duration or interval")
	return validationError
}

// ValidateReport validates a whole report request at once
func (rv *ReportValidator) ValidateReport(start, end time.Time, sortKey, output string) error {
	validationError := NewValidationError()
	for _, err := range []error{
		rv.ValidateTimeRange(start, end),
		rv.ValidateSortKey(sortKey),
		rv.ValidateOutput(output),
	} {
		if ve, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, ve.Errors...)
		}
	}
	return validationError.OrNil()
}
