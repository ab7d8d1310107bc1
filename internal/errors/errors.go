package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	TypePrecondition  ErrorType = "PRECONDITION"
	TypeRetrieval     ErrorType = "RETRIEVAL"
	TypeEmptyHistory  ErrorType = "EMPTY_HISTORY"
	TypeIO            ErrorType = "IO"
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if upstream, ok := e.Context["upstream"].(string); ok && upstream != "" {
			msg += fmt.Sprintf(" - %s", upstream)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// ContextKeys returns the context keys in a stable order, for diagnostics output.
func (e *AppError) ContextKeys() []string {
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// IsType reports whether any AppError in err's chain has the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	for err != nil {
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Type == t {
			return true
		}
		err = appErr.Err
	}
	return false
}

// Precondition errors
var (
	ErrModelNotFound = NewAppError(TypePrecondition, "Cost model artifact not found", nil).
				WithSuggestion("Train and export the model first, or point to it with: commitcost --model <path>")

	ErrModelInvalid = NewAppError(TypePrecondition, "Cost model artifact is invalid", nil).
			WithSuggestion("Expected a linear model with 6 coefficients (JSON or YAML)")

	ErrTokenMissing = NewAppError(TypePrecondition, "Repository access token is missing", nil).
			WithSuggestion("Add REPO_TOKEN to your environment or to a .env file")

	ErrInvalidRepository = NewAppError(TypePrecondition, "Invalid repository identifier", nil).
				WithSuggestion("Use the owner/name form, for example: octocat/hello-world")
)

// Retrieval errors
var (
	ErrRepositoryNotFound = NewAppError(TypeRetrieval, "repository not found", nil).
				WithSuggestion("Check the repository name and your token access")

	ErrCommitNotFound = NewAppError(TypeRetrieval, "commit not found", nil).
				WithSuggestion("Check the commit hash exists in the repository")

	ErrAccessDenied = NewAppError(TypeRetrieval, "access denied by the repository provider", nil).
			WithSuggestion("Token needs read access to repository contents")

	ErrRateLimit = NewAppError(TypeRetrieval, "API rate limit exceeded", nil).
			WithSuggestion("Wait a few minutes or use a personal access token for higher limits")

	ErrRetrieval = NewAppError(TypeRetrieval, "failed to retrieve data from the repository provider", nil)
)

// Empty history errors
var (
	ErrEmptyHistory = NewAppError(TypeEmptyHistory, "branch has no commits", nil).
		WithSuggestion("Pick another branch with: --branch <name>")
)

// IO errors
var (
	ErrCreateReportDir = NewAppError(TypeIO, "Failed to create report directory", nil).
				WithSuggestion("Check you have write permissions on the report directory")

	ErrWriteReport = NewAppError(TypeIO, "Failed to write report file", nil).
			WithSuggestion("Check the file is not open in another program and the disk is not full")
)

// Configuration errors
var (
	ErrInvalidConfig = NewAppError(TypeConfiguration, "Configuration is invalid", nil)

	ErrLoadConfig = NewAppError(TypeConfiguration, "Failed to load configuration", nil).
			WithSuggestion("Check the TOML syntax of your config file")

	ErrProviderNotSupported = NewAppError(TypeConfiguration, "repository provider not supported", nil).
				WithSuggestion("Supported providers: github, gitlab")
)
