package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so call sites can branch on the cause instead of
// matching error message text.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation is a local pre-flight failure. Never retried, never sent
	// to the data layer.
	KindValidation
	// KindNotFound means the referenced record is absent from the local
	// collection or the table.
	KindNotFound
	// KindConflict is a uniqueness or foreign key violation reported by the
	// database.
	KindConflict
	// KindSchemaMismatch means the query referenced a column the backing
	// table does not have. Triggers the reduced-column fallback.
	KindSchemaMismatch
	// KindRemote covers every other database or network failure.
	KindRemote
	// KindRealtime is a change-feed subscription failure. Recovered by a
	// full silent re-fetch.
	KindRealtime
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindSchemaMismatch:
		return "schema_mismatch"
	case KindRemote:
		return "remote"
	case KindRealtime:
		return "realtime"
	default:
		return "unknown"
	}
}

// Error carries a kind, the operation that failed and an optional cause.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op
	}
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(op, msg string) *Error {
	return &Error{Kind: KindValidation, Op: op, Msg: msg}
}

func NotFound(op, msg string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Msg: msg}
}

func Conflict(op string, err error) *Error {
	return &Error{Kind: KindConflict, Op: op, Err: err}
}

func SchemaMismatch(op string, err error) *Error {
	return &Error{Kind: KindSchemaMismatch, Op: op, Err: err}
}

func Remote(op string, err error) *Error {
	return &Error{Kind: KindRemote, Op: op, Err: err}
}

func Realtime(op string, err error) *Error {
	return &Error{Kind: KindRealtime, Op: op, Err: err}
}

// KindOf extracts the kind from err, unwrapping as needed.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
