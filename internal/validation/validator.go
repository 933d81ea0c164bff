package validation

import (
	"regexp"
	"strings"
	"time"
)

var (
	taskNamePattern = regexp.MustCompile(`^[a-zA-Z0-9 \-_.,!?()/:#]+$`)
	usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)
)

// Limits on free-text input
const (
	TaskNameMaxLength    = 255
	UsernameMaxLength    = 64
	DescriptionMaxLength = 1024
)

// Validator provides the primitive checks shared by the input validators
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a trimmed string length is within [min, max]
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidTaskName checks if a task name contains only allowed characters
func (v *Validator) IsValidTaskName(name string) bool {
	return taskNamePattern.MatchString(name)
}

// IsValidUsername checks for a lower-case login style name
func (v *Validator) IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// IsValidID checks if an ID is positive
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidTimeRange checks that start is strictly before end
func (v *Validator) IsValidTimeRange(start, end time.Time) bool {
	return start.Before(end)
}

// TrimString trims surrounding whitespace
func (v *Validator) TrimString(s string) string {
	return strings.TrimSpace(s)
}
