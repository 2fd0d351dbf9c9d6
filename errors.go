package adminauth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeRegisterFields  = "auth_register_fields_required"
	TextCodeLoginFields     = "auth_login_fields_required"
	TextCodeTeacherFields   = "teacher_fields_required"
	TextCodeBadCredentials  = "auth_invalid_credentials"
	TextCodeEmailRegistered = "auth_email_registered"
	TextCodeTeacherExists   = "teacher_exists"
	TextCodeNoSigningKey    = "auth_missing_signing_key"
	TextCodeTokenExpired    = "auth_token_expired"
	TextCodeTokenMalformed  = "auth_token_malformed"
)

// ErrRegisterFieldsRequired is returned when the registration payload is incomplete.
var ErrRegisterFieldsRequired = errors.New("Name, email and password are required", errors.CategoryValidation).
	WithTextCode(TextCodeRegisterFields).
	WithCode(errors.CodeBadRequest)

// ErrLoginFieldsRequired is returned when the login payload is incomplete.
var ErrLoginFieldsRequired = errors.New("Email and password are required", errors.CategoryValidation).
	WithTextCode(TextCodeLoginFields).
	WithCode(errors.CodeBadRequest)

// ErrTeacherFieldsRequired is returned when the teacher creation payload is incomplete.
var ErrTeacherFieldsRequired = errors.New("teacherId, name and password are required", errors.CategoryValidation).
	WithTextCode(TextCodeTeacherFields).
	WithCode(errors.CodeBadRequest)

// ErrInvalidCredentials is returned for both unknown accounts and password
// mismatches so responses never reveal whether an email is registered.
var ErrInvalidCredentials = errors.New("Invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeBadCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrEmailRegistered is returned when the registration email is taken,
// whether detected proactively or by the store's unique constraint.
var ErrEmailRegistered = errors.New("Email already registered", errors.CategoryConflict).
	WithTextCode(TextCodeEmailRegistered).
	WithCode(errors.CodeConflict)

// ErrTeacherExists is returned when a teacher with the same teacherId or
// email already exists.
var ErrTeacherExists = errors.New("Teacher with same teacherId or email already exists", errors.CategoryConflict).
	WithTextCode(TextCodeTeacherExists).
	WithCode(errors.CodeConflict)

// ErrMissingSigningKey is a deployment fault: the token signing secret is
// not configured. Reported generically, logged loudly.
var ErrMissingSigningKey = errors.New("Server misconfiguration", errors.CategoryInternal).
	WithTextCode(TextCodeNoSigningKey).
	WithCode(errors.CodeInternal)

// ErrTokenExpired is returned by token validation for expired tokens.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned by token validation for anything that is
// not a well formed, correctly signed token.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.TextCode == TextCodeTokenExpired {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsUniqueViolation reports whether err is a unique constraint violation
// from the underlying store. The store's constraint is the authoritative
// duplicate guard; the proactive existence checks only narrow the race.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
