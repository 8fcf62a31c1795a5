package record

import "errors"

var (
	// ErrMissingRequired is returned when a single field has no captured value
	ErrMissingRequired = errors.New("required field has no value")
	// ErrUnknownCapture is returned when a capture names a field outside the schema
	ErrUnknownCapture = errors.New("capture for unknown field")
	// ErrNotStructPointer is returned when Decode is given something other than a pointer to a struct
	ErrNotStructPointer = errors.New("decode target must be a non-nil pointer to a struct")
	// ErrFieldNotFound is returned when the decode target has no field for a record field
	ErrFieldNotFound = errors.New("field not found in struct")
	// ErrCannotConvert is returned when a value cannot be stored in the target field
	ErrCannotConvert = errors.New("cannot convert type")
)
