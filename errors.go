package peggle

import "errors"

// Common errors used throughout the peggle package
var (
	// ErrConfigValidation is returned when configuration validation fails
	ErrConfigValidation = errors.New("configuration validation failed")

	// ErrFieldPattern indicates a field's restriction pattern does not compile
	ErrFieldPattern = errors.New("invalid field pattern")
	// ErrInvalidPredicate indicates a where expression does not compile
	ErrInvalidPredicate = errors.New("invalid where expression")

	// ErrPredicateFailed indicates the input matched but the where expression was false
	ErrPredicateFailed = errors.New("where expression rejected match")
	// ErrPredicateNotBool indicates a where expression evaluated to a non-boolean
	ErrPredicateNotBool = errors.New("where expression did not evaluate to a boolean")

	// ErrEmptyChoice indicates a choice without alternatives
	ErrEmptyChoice = errors.New("choice has no alternatives")
	// ErrDuplicateAlternative indicates two alternatives of a choice share a name
	ErrDuplicateAlternative = errors.New("duplicate alternative name")
	// ErrDuplicateRule indicates two grammar rules share a name
	ErrDuplicateRule = errors.New("duplicate rule name")
	// ErrInvalidRule indicates a malformed rule, such as one with both a pattern and variants
	ErrInvalidRule = errors.New("invalid rule")
	// ErrUnknownRule indicates a reference to a rule the grammar does not define
	ErrUnknownRule = errors.New("unknown rule")
	// ErrUnknownType indicates a field type that is neither a built-in type nor a rule
	ErrUnknownType = errors.New("unknown field type")
)
