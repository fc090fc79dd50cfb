package cron

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Compile and Next. Use errors.Is/errors.As
// to distinguish them; the concrete error types below carry the
// offending field and token where relevant.
var (
	// ErrInvalidSpec is returned when the expression text is empty.
	ErrInvalidSpec = errors.New("invalid cron spec")

	// ErrMissingFields is returned when the expression has fewer than
	// 5 whitespace-separated fields.
	ErrMissingFields = errors.New("missing cron field(s)")

	// ErrInvalidFieldSyntax is returned when a field token cannot be
	// parsed under that field's grammar. Wrapped by FieldSyntaxError.
	ErrInvalidFieldSyntax = errors.New("invalid field syntax")

	// ErrUnknownAlias is returned for an unrecognized @-prefixed alias.
	// Wrapped by UnknownAliasError.
	ErrUnknownAlias = errors.New("unknown cron alias")

	// ErrTimeExhausted is returned by Expression.Next when the
	// expression's year mask admits no year at or after the given
	// instant. This is not a parse error: it is the documented way to
	// express "this schedule has ended".
	ErrTimeExhausted = errors.New("no next time matches the cron expression")
)

// FieldSyntaxError reports an unparseable token in a specific field,
// wrapping ErrInvalidFieldSyntax.
type FieldSyntaxError struct {
	Field string
	Token string
}

func (e *FieldSyntaxError) Error() string {
	return fmt.Sprintf("%s: field %q, token %q", ErrInvalidFieldSyntax, e.Field, e.Token)
}

func (e *FieldSyntaxError) Unwrap() error {
	return ErrInvalidFieldSyntax
}

func fieldSyntaxError(field, token string) error {
	return &FieldSyntaxError{Field: field, Token: token}
}

// UnknownAliasError reports an unrecognized @-prefixed alias, wrapping
// ErrUnknownAlias.
type UnknownAliasError struct {
	Name string
}

func (e *UnknownAliasError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownAlias, e.Name)
}

func (e *UnknownAliasError) Unwrap() error {
	return ErrUnknownAlias
}

func unknownAliasError(name string) error {
	return &UnknownAliasError{Name: name}
}
