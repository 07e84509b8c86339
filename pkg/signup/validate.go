package signup

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"neocommerce.in/storefront/pkg/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 8

// FieldError is a message attached to one form field.
type FieldError struct {
	Field   string
	Message string
	Code    string
}

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Field returns the message for field, or "" when the field is valid.
func (v ValidationErrors) Field(field string) string {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

func required(field string) FieldError {
	return FieldError{Field: field, Message: "This field is required", Code: "required"}
}

// ValidateIdentity checks the first step of the form. Every failing field is reported.
func ValidateIdentity(req models.IdentityRequest) ValidationErrors {
	var errs ValidationErrors

	for _, f := range []struct{ name, value string }{
		{"first_name", req.FirstName},
		{"last_name", req.LastName},
	} {
		v := strings.TrimSpace(f.value)
		switch {
		case v == "":
			errs = append(errs, required(f.name))
		case len([]rune(v)) < 2:
			errs = append(errs, FieldError{Field: f.name, Message: "Name must be at least 2 characters", Code: "too_short"})
		}
	}

	email := strings.TrimSpace(req.Email)
	switch {
	case email == "":
		errs = append(errs, required("email"))
	case !emailPattern.MatchString(email):
		errs = append(errs, FieldError{Field: "email", Message: "Please enter a valid email address", Code: "invalid_email"})
	}

	switch {
	case req.Password == "":
		errs = append(errs, required("password"))
	case utf8.RuneCountInString(req.Password) < minPasswordLength:
		errs = append(errs, FieldError{Field: "password", Message: "Password must be at least 8 characters long", Code: "too_short"})
	case !mixedCase(req.Password):
		errs = append(errs, FieldError{Field: "password", Message: "Password must contain uppercase, lowercase, and number", Code: "weak_password"})
	}

	switch {
	case req.ConfirmPassword == "":
		errs = append(errs, required("confirm_password"))
	case req.ConfirmPassword != req.Password:
		errs = append(errs, FieldError{Field: "confirm_password", Message: "Passwords do not match", Code: "mismatch"})
	}

	return errs
}

// ValidateConsent checks the final step's mandatory checkboxes.
func ValidateConsent(req models.ConsentRequest) ValidationErrors {
	var errs ValidationErrors
	if !req.Terms {
		errs = append(errs, FieldError{Field: "terms", Message: "You must agree to the Terms & Conditions", Code: "required"})
	}
	if !req.AgeVerification {
		errs = append(errs, FieldError{Field: "age_verification", Message: "You must confirm that you are 18 or older", Code: "required"})
	}
	return errs
}

// mixedCase reports whether pw has an ASCII lower-case letter, upper-case letter and digit.
func mixedCase(pw string) bool {
	var lower, upper, digit bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}
