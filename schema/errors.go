package schema

import "errors"

var (
	// ErrDuplicateField is returned when two fields share a name
	ErrDuplicateField = errors.New("duplicate field name")
	// ErrEmptyFieldName is returned for a field without a name
	ErrEmptyFieldName = errors.New("field name is empty")
	// ErrMissingLeaf is returned for a field without a leaf parser
	ErrMissingLeaf = errors.New("field has no leaf parser")
	// ErrUnknownCardinality is returned by ParseCardinality for unknown names
	ErrUnknownCardinality = errors.New("unknown cardinality")
)
