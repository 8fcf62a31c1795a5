package gogen

import "errors"

var (
	// ErrNoGrammar is returned when the generator has no grammar to render
	ErrNoGrammar = errors.New("no grammar to generate from")
	// ErrInvalidPackageName is returned for package names that are not Go identifiers
	ErrInvalidPackageName = errors.New("invalid package name")
)
