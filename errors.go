package voxi

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure modes of building and rendering queries.
// Every typed error below unwraps to one of these, so callers can match a
// kind with errors.Is or the Is*Err helpers without caring about details.
var (
	// ErrInvalidQueryBuilderConfiguration is returned by QueryBuilder.Build when
	// the query is missing a mandatory clause (columns or FROM sources).
	ErrInvalidQueryBuilderConfiguration = errors.New("voxi: query builder invalid configuration")

	// ErrBindNameNotFound is returned during rendering when a bind parameter
	// has no value registered in the query or in the resolver.
	ErrBindNameNotFound = errors.New("voxi: bind name not found")

	// ErrFieldNameNotFound is returned when a lookup by field name fails
	// against a known field set.
	ErrFieldNameNotFound = errors.New("voxi: field name not found")

	// ErrConversion is returned when a typed value cannot be narrowed to the
	// requested type, or text cannot be parsed into a typed value.
	ErrConversion = errors.New("voxi: conversion failed")

	// ErrValueIsNull is wrapped by a ConversionError when a null payload is
	// narrowed into a concrete value.
	ErrValueIsNull = errors.New("voxi: value is null")

	// ErrInvalidIdentifier is wrapped by a ConversionError when an identifier
	// (field, table, alias or bind name) contains a double quote or a NUL byte.
	ErrInvalidIdentifier = errors.New("voxi: content cannot contain double quotes")
)

// IsInvalidQueryBuilderConfigurationErr returns true if err is or wraps
// ErrInvalidQueryBuilderConfiguration.
func IsInvalidQueryBuilderConfigurationErr(err error) bool {
	return errors.Is(err, ErrInvalidQueryBuilderConfiguration)
}

// IsBindNameNotFoundErr returns true if err is or wraps ErrBindNameNotFound.
func IsBindNameNotFoundErr(err error) bool {
	return errors.Is(err, ErrBindNameNotFound)
}

// IsFieldNameNotFoundErr returns true if err is or wraps ErrFieldNameNotFound.
func IsFieldNameNotFoundErr(err error) bool {
	return errors.Is(err, ErrFieldNameNotFound)
}

// IsConversionErr returns true if err is or wraps ErrConversion.
func IsConversionErr(err error) bool {
	return errors.Is(err, ErrConversion)
}

// IsValueIsNullErr returns true if err is or wraps ErrValueIsNull.
func IsValueIsNullErr(err error) bool {
	return errors.Is(err, ErrValueIsNull)
}

// IsInvalidIdentifierErr returns true if err is or wraps ErrInvalidIdentifier.
func IsInvalidIdentifierErr(err error) bool {
	return errors.Is(err, ErrInvalidIdentifier)
}

// ConfigurationError reports a query that cannot be built.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidQueryBuilderConfiguration, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidQueryBuilderConfiguration
}

// BindNameNotFoundError reports a bind parameter without a registered value.
type BindNameNotFoundError struct {
	Name string
}

func (e *BindNameNotFoundError) Error() string {
	return fmt.Sprintf("%s: `%s`", ErrBindNameNotFound, e.Name)
}

func (e *BindNameNotFoundError) Unwrap() error {
	return ErrBindNameNotFound
}

// FieldNameNotFoundError reports a missing field and the names that were
// available at lookup time.
type FieldNameNotFoundError struct {
	Name      string
	Available []string
}

func (e *FieldNameNotFoundError) Error() string {
	return fmt.Sprintf("%s: `%s` (available: %s)", ErrFieldNameNotFound, e.Name, strings.Join(e.Available, ", "))
}

func (e *FieldNameNotFoundError) Unwrap() error {
	return ErrFieldNameNotFound
}

// ConversionError reports a value that could not be converted. Source is the
// offending text or value description and Type the requested type name.
type ConversionError struct {
	Source string
	Type   string
	Err    error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("%s: %q as %s", ErrConversion, e.Source, e.Type)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the conversion sentinel and the underlying cause, so
// errors.Is matches ErrConversion as well as ErrValueIsNull or a parse error.
func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConversion}
	}
	return []error{ErrConversion, e.Err}
}
