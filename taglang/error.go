package taglang

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind uint8

const (
	KindInternal ErrorKind = iota
	KindSyntax
	KindInvalidIdentifier
	KindTypeConflict
	KindUnknownVariable
	KindNotAVariable
	KindInvalidAppend
	KindExpansionTooDeep
	KindInvalidConditionalTarget
	KindIndentationNotAllowed
	KindUnknownKeyword
	KindEmptyArguments
	KindInvalidCallTarget
	KindUnknownNamespace
	KindUnknownCommand
	KindInvalidCallResult
	KindCommandFailed
	KindUserError
	KindTagpathMissing
	KindTagpathEmpty
	KindModuleNotFound
	KindUnsupportedModuleFormat
	KindInvalidPlugin
	KindNamespaceConflict
	KindUsageError
)

var kindNames = [...]string{
	KindInternal:                 "Internal",
	KindSyntax:                   "Syntax",
	KindInvalidIdentifier:        "InvalidIdentifier",
	KindTypeConflict:             "TypeConflict",
	KindUnknownVariable:          "UnknownVariable",
	KindNotAVariable:             "NotAVariable",
	KindInvalidAppend:            "InvalidAppend",
	KindExpansionTooDeep:         "ExpansionTooDeep",
	KindInvalidConditionalTarget: "InvalidConditionalTarget",
	KindIndentationNotAllowed:    "IndentationNotAllowed",
	KindUnknownKeyword:           "UnknownKeyword",
	KindEmptyArguments:           "EmptyArguments",
	KindInvalidCallTarget:        "InvalidCallTarget",
	KindUnknownNamespace:         "UnknownNamespace",
	KindUnknownCommand:           "UnknownCommand",
	KindInvalidCallResult:        "InvalidCallResult",
	KindCommandFailed:            "CommandFailed",
	KindUserError:                "UserError",
	KindTagpathMissing:           "TagpathMissing",
	KindTagpathEmpty:             "TagpathEmpty",
	KindModuleNotFound:           "ModuleNotFound",
	KindUnsupportedModuleFormat:  "UnsupportedModuleFormat",
	KindInvalidPlugin:            "InvalidPlugin",
	KindNamespaceConflict:        "NamespaceConflict",
	KindUsageError:               "UsageError",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

type Error struct {
	Kind       ErrorKind
	Message    string
	Location   Location
	Suggestion string
	// candidate paths tried by a failed USE, in pattern order
	Tried []string

	Filename string
	Source   string

	Err error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Suggestion != "" {
		sb.WriteString(" (did you mean ")
		sb.WriteString(e.Suggestion)
		sb.WriteString("?)")
	}
	if len(e.Tried) > 0 {
		sb.WriteString(". Tried:")
		for _, path := range e.Tried {
			sb.WriteString("\n        -")
			sb.WriteString(path)
		}
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) HasLocation() bool {
	return !e.Location.IsZero()
}

func newError(kind ErrorKind, loc Location, format string, args ...any) *Error {
	return &Error{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	}
}

// Errorf builds an unlocated error; the engine attaches the statement location.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return newError(kind, Location{}, format, args...)
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// WithLocation attaches loc to err unless it already carries one.
// Foreign errors are wrapped as KindCommandFailed.
func WithLocation(err error, loc Location) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.HasLocation() {
			return err
		}
		copied := *e
		copied.Location = loc
		return &copied
	}
	return &Error{
		Kind:     KindCommandFailed,
		Message:  err.Error(),
		Location: loc,
		Err:      err,
	}
}

// annotate records the file an error belongs to: the file its location
// points into, else the file being run. A file name set by a nested run is kept.
func annotate(err error, filename string, source string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	if e.Filename != "" || e.Source != "" {
		return err
	}
	copied := *e
	if src := e.Location.Source; src != nil {
		copied.Filename = src.Name
		copied.Source = src.Content
	} else {
		copied.Filename = filename
		copied.Source = source
	}
	return &copied
}
