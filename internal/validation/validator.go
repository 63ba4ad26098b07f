package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/campus-housing-api/internal/models"
)

// MinPasswordLength is the shortest accepted password, in characters
const MinPasswordLength = 8

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

var (
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// IsIdentifier reports whether name can be used as a table name
func IsIdentifier(name string) bool {
	return identifierRegex.MatchString(name)
}

// IsEmail reports whether email looks like an address
func IsEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateRegistration validates a sign-up request
func ValidateRegistration(req *models.RegisterRequest) []ValidationError {
	var errors []ValidationError

	// Validate name
	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	}

	// Validate email
	if req.Email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	} else if !IsEmail(req.Email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: req.Email})
	}

	// Validate password; the value is never echoed back
	if req.Password == "" {
		errors = append(errors, ValidationError{Field: "password", Message: "password is required"})
	} else if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		errors = append(errors, ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	} else if len(req.Password) > MaxPasswordBytes {
		errors = append(errors, ValidationError{Field: "password", Message: "password must be at most 72 bytes"})
	}

	return errors
}

// ValidateLogin checks that an email is present.
// A missing password is left to the credential check.
func ValidateLogin(req *models.LoginRequest) []ValidationError {
	var errors []ValidationError
	if req.Email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	}
	return errors
}

// Messages flattens validation errors into "field: message" strings
func Messages(errs []ValidationError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field+": "+e.Message)
	}
	return out
}
