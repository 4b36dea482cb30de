// Package relerr holds the error kinds surfaced by the relational engine.
//
// Structural errors (schema mismatch, unknown attribute, join arity) abort
// an operation; type mismatches reject a single tuple and leave the
// relation as it was.
package relerr

import "fmt"

type Kind int

const (
	KindSchemaMismatch Kind = iota + 1
	KindAttributeNotFound
	KindTypeMismatch
	KindJoinArity
	KindDuplicateKey
)

func (k Kind) String() string {
	switch k {
	case KindSchemaMismatch:
		return "SchemaMismatchError"
	case KindAttributeNotFound:
		return "AttributeNotFoundError"
	case KindTypeMismatch:
		return "TypeMismatchError"
	case KindJoinArity:
		return "JoinArityError"
	case KindDuplicateKey:
		return "DuplicateKeyError"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type Error struct {
	kind Kind
	msg  string
}

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Kind() Kind    { return e.kind }

// Is matches any *Error of the same kind, so the sentinels below work
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.kind == e.kind
}

var (
	ErrSchemaMismatch    = New(KindSchemaMismatch, "schema mismatch")
	ErrAttributeNotFound = New(KindAttributeNotFound, "attribute not found")
	ErrTypeMismatch      = New(KindTypeMismatch, "type mismatch")
	ErrJoinArity         = New(KindJoinArity, "join arity mismatch")
	ErrDuplicateKey      = New(KindDuplicateKey, "duplicate key")
)

func AttributeNotFound(relation, attr string) *Error {
	return Newf(KindAttributeNotFound, "attribute %s not found in relation %s", attr, relation)
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.kind
	}
	return 0
}
