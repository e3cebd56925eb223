package baseclass

import (
	"errors"
	"strconv"
	"strings"

	"github.com/reoring/baseclass/i18n"
	"github.com/reoring/baseclass/internal/engine"
)

// Configuration error codes (exported consts for IDE completion and
// errors.As-based branching).
const (
	CodeDefaultConflict           = "default_conflict"
	CodeMissingRequired           = "missing_required"
	CodeUnexpectedArguments       = "unexpected_arguments"
	CodePositionalWithInheritance = "positional_with_inheritance"
	CodePositionalKeywordConflict = "positional_keyword_conflict"
	CodeTooManyPositional         = "too_many_positional"
	CodeUnknownField              = "unknown_field"
	CodeInvalidDeclaration        = "invalid_declaration"
	CodeTypeMismatch              = "type_mismatch"
	// CodeImmutable is the message code used by ImmutabilityError.
	CodeImmutable = "immutable"
)

var (
	// ErrNotSupported is returned by comparisons against an instance of a
	// different class and by Hash on mutable classes.
	ErrNotSupported = engine.ErrNotSupported
	// ErrUnhashable reports a value that cannot take part in Hash.
	ErrUnhashable = engine.ErrUnhashable
	// ErrUnorderable reports two values with no defined ordering.
	ErrUnorderable = engine.ErrUnorderable
)

// ConfigurationError reports misuse at declaration or construction time.
type ConfigurationError struct {
	Code    string   // One of the Code* constants.
	Class   string   // Class being declared or constructed (empty for bare Fields).
	Fields  []string // Offending field or argument names, when relevant.
	Message string
	Hint    string // Optional remediation hint.
	Cause   error  // Optional underlying error.
}

// NewConfigurationError builds a ConfigurationError with its message
// resolved through i18n. Builders outside this package use it to report
// misuse with the same codes.
func NewConfigurationError(code, class string, fields ...string) *ConfigurationError {
	return newConfigurationError(code, class, fields)
}

func newConfigurationError(code, class string, fields []string) *ConfigurationError {
	return &ConfigurationError{
		Code:    code,
		Class:   class,
		Fields:  fields,
		Message: i18n.T(code, map[string]string{"class": class}),
	}
}

func (e *ConfigurationError) Error() string {
	b := &strings.Builder{}
	b.WriteString("baseclass: ")
	if e.Class != "" {
		b.WriteString(e.Class)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if len(e.Fields) > 0 {
		b.WriteString(": ")
		for i, f := range e.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(f))
		}
	}
	if e.Hint != "" {
		b.WriteString(" (")
		b.WriteString(e.Hint)
		b.WriteByte(')')
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *ConfigurationError) Unwrap() error { return e.Cause }

// ImmutabilityError reports an assignment to a field of an immutable
// instance.
type ImmutabilityError struct {
	Class string
	Field string
}

func (e *ImmutabilityError) Error() string {
	return "baseclass: " + e.Class + ": " + i18n.T(CodeImmutable, nil) + " " + strconv.Quote(e.Field)
}

// AsConfigurationError extracts a ConfigurationError using errors.As.
func AsConfigurationError(err error) (*ConfigurationError, bool) {
	if err == nil {
		return nil, false
	}
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsConfigurationCode reports whether err is a ConfigurationError with code.
func IsConfigurationCode(err error, code string) bool {
	ce, ok := AsConfigurationError(err)
	return ok && ce.Code == code
}

// IsImmutabilityError reports whether err is or wraps an ImmutabilityError.
func IsImmutabilityError(err error) bool {
	var ie *ImmutabilityError
	return errors.As(err, &ie)
}
