package validation

import "net/mail"

// UserValidator validates user input
type UserValidator struct {
	validator *Validator
}

// NewUserValidator creates a new user validator
func NewUserValidator() *UserValidator {
	return &UserValidator{validator: NewValidator()}
}

// ValidateUsername checks a username is present, short enough and lower-case
func (uv *UserValidator) ValidateUsername(username string) error {
	validationError := NewValidationError()
	trimmed := uv.validator.TrimString(username)

	if trimmed == "" {
		validationError.AddRequiredError("username")
		return validationError
	}
	if !uv.validator.IsValidStringLength(trimmed, 1, UsernameMaxLength) {
		validationError.AddInvalidLengthError("username", trimmed, 1, UsernameMaxLength)
	}
	if !uv.validator.IsValidUsername(trimmed) {
		validationError.AddInvalidCharacterError("username", trimmed)
	}

	return validationError.OrNil()
}

// ValidateUser validates everything supplied when creating a user.
// The email is optional.
func (uv *UserValidator) ValidateUser(username, email string) error {
	validationError := NewValidationError()

	if err := uv.ValidateUsername(username); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, ve.Errors...)
		}
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			validationError.AddInvalidValueError("email", email, "not an email address")
		}
	}

	return validationError.OrNil()
}
