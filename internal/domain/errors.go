package domain

import (
	"errors"
	"fmt"
)

// InvalidDomainError is returned when the source token names no known domain.
type InvalidDomainError struct {
	Value string
}

func (e InvalidDomainError) Error() string {
	if e.Value == "" {
		return "Invalid data source."
	}
	return fmt.Sprintf("Invalid data source '%s'.", e.Value)
}

type UnsupportedFilterError struct {
	Filter string
	Domain Domain
}

func (e UnsupportedFilterError) Error() string {
	return fmt.Sprintf("Filter '%s' is not allowed for source '%s'.", e.Filter, e.Domain)
}

type UnsupportedSortFieldError struct {
	Field  string
	Domain Domain
}

func (e UnsupportedSortFieldError) Error() string {
	return fmt.Sprintf("Cannot sort by '%s' for source '%s'.", e.Field, e.Domain)
}

type InvalidOrderError struct {
	Value string
}

func (e InvalidOrderError) Error() string {
	return fmt.Sprintf("Invalid sort order '%s'; expected 'asc' or 'desc'.", e.Value)
}

// ValidationError covers malformed request values that pass the shape layer,
// such as an unparsable date bound.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsInvalidDomain(err error) bool {
	var target InvalidDomainError
	return errors.As(err, &target)
}

func IsUnsupportedFilter(err error) bool {
	var target UnsupportedFilterError
	return errors.As(err, &target)
}

func IsUnsupportedSortField(err error) bool {
	var target UnsupportedSortFieldError
	return errors.As(err, &target)
}

func IsInvalidOrder(err error) bool {
	var target InvalidOrderError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// IsClientError reports whether err should surface as a 400 to the caller.
func IsClientError(err error) bool {
	return IsInvalidDomain(err) ||
		IsUnsupportedFilter(err) ||
		IsUnsupportedSortField(err) ||
		IsInvalidOrder(err) ||
		IsValidation(err)
}
