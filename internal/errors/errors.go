package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError carries field level messages, keyed by the json field name.
// Message is used for errors that are not bound to a single field.
type ValidationError struct {
	Fields  map[string][]string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation error: %s", e.Message)
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s - %s", k, strings.Join(e.Fields[k], ", ")))
	}
	return fmt.Sprintf("validation error: %s", strings.Join(parts, "; "))
}

// Add appends a message for field
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors reports whether any field message was recorded
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0 || e.Message != ""
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// UpstreamError is returned by the frontend when the record API cannot be reached
type UpstreamError struct {
	URL string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("record API unavailable (%s): %v", e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx answer of the record API as seen by the frontend
type APIError struct {
	StatusCode int
	Detail     string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("record API returned status %d", e.StatusCode)
}

// Entity Not Found Errors
var (
	ErrCustomerNotFound = &NotFoundError{Entity: "customer"}
	ErrContractNotFound = &NotFoundError{Entity: "contract"}
	ErrEventNotFound    = &NotFoundError{Entity: "event"}
	ErrUserNotFound     = &NotFoundError{Entity: "user"}
	ErrGroupNotFound    = &NotFoundError{Entity: "group"}
)

// Authentication and authorization errors. Messages are surfaced as `detail`.
var (
	ErrAuthenticationRequired = &AuthenticationError{Message: "Authentication credentials were not provided."}
	ErrInvalidCredentials     = &AuthenticationError{Message: "No active account found with the given credentials"}
	ErrInvalidToken           = &AuthenticationError{Message: "Given token not valid for any token type"}
	ErrInvalidRefreshToken    = &AuthenticationError{Message: "Token is invalid or expired"}
	ErrPermissionDenied       = &AuthorizationError{Message: "You do not have permission to perform this action."}
)

// Business Logic Errors
var (
	ErrInvalidPaginationParams = errors.New("invalid pagination parameters")
	ErrInvalidFilter           = errors.New("invalid filter value")
	ErrUnknownSearch           = errors.New("unknown search selector")
	ErrUnexpectedDateFormat    = errors.New("unexpected date format")
	ErrMalformedResponse       = errors.New("malformed record API response")
)

// Configuration Errors
var (
	ErrAPIBaseURLMissing = &ConfigurationError{Message: "API_BASE_URL must be set"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// IsUpstream checks if an error is an UpstreamError
func IsUpstream(err error) bool {
	var upstreamErr *UpstreamError
	return errors.As(err, &upstreamErr)
}

// AsAPIError returns the APIError wrapped in err, if any
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// AsValidation returns the ValidationError wrapped in err, if any
func AsValidation(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}
	return nil, false
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationError creates a ValidationError holding a single field message.
// An empty field produces a non-field error.
func NewValidationError(field, message string) error {
	if field == "" {
		return &ValidationError{Message: message}
	}
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}
