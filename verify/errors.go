package verify

import "errors"

var (
	// ErrSingleVariable is returned when a single field may be captured zero or several times
	ErrSingleVariable = errors.New("single field must occur exactly once")
	// ErrOptionalMultiple is returned when an optional field may be captured more than once
	ErrOptionalMultiple = errors.New("optional field may occur more than once")
	// ErrChoiceMismatch is returned when alternatives capture different single fields
	ErrChoiceMismatch = errors.New("field required in one choice but missing in another")
	// ErrRequiredFieldMissing is returned when a single field never appears in the pattern
	ErrRequiredFieldMissing = errors.New("required field missing from pattern")
	// ErrUnknownField is returned when a counted field is not in the schema
	ErrUnknownField = errors.New("field not in schema")
	// ErrUnbalancedScope is returned when group scopes are closed more often than opened
	ErrUnbalancedScope = errors.New("unbalanced group scope")
)
