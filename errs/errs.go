// Package errs defines the closed set of error kinds raised by the tib
// lexer, parser, and executor.
//
// Grounded on MongooseMoo-barn's types.ErrorCode (a closed, stringable int
// enum) and vm.MooError (a thin error wrapper around a code): Kind plays the
// role of ErrorCode, Error plays the role of MooError.
package errs

import "fmt"

// Kind enumerates every error spec.md §7 (and its parser contract in §4.5)
// requires. It is a closed set: there is no "other" case.
type Kind int

const (
	TypeMismatch Kind = iota
	DivideByZero
	DimensionMismatch
	NonNumericInList
	ImmutableVariable
	UnexpectedThen
	UnexpectedElse
	UnexpectedEnd
	UnexpectedEof
	SyntaxError
	UnknownLabel
	NotYetImplemented

	// Parser-only kinds (spec.md §4.5), folded into the same enum rather
	// than kept as a second parallel error type.
	MissingToken
	UnexpectedToken
)

func (k Kind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case DivideByZero:
		return "DivideByZero"
	case DimensionMismatch:
		return "DimensionMismatch"
	case NonNumericInList:
		return "NonNumericInList"
	case ImmutableVariable:
		return "ImmutableVariable"
	case UnexpectedThen:
		return "UnexpectedThen"
	case UnexpectedElse:
		return "UnexpectedElse"
	case UnexpectedEnd:
		return "UnexpectedEnd"
	case UnexpectedEof:
		return "UnexpectedEof"
	case SyntaxError:
		return "SyntaxError"
	case UnknownLabel:
		return "UnknownLabel"
	case NotYetImplemented:
		return "NotYetImplemented"
	case MissingToken:
		return "MissingToken"
	case UnexpectedToken:
		return "UnexpectedToken"
	default:
		return "UnknownError"
	}
}

// Error wraps a Kind with a human-readable message, the way vm.MooError
// wraps a types.ErrorCode.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// New builds an *Error for kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err is an *Error of the given kind, so callers can
// branch on REPL recovery (only UnexpectedEof is swallowed there, per
// spec.md §5 and §7).
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
