package casebook

import "errors"

var (
	// ErrNoGrammar is returned when a section names a rule but the book defines no grammar
	ErrNoGrammar = errors.New("rule section without a grammar block")
	// ErrDuplicateGrammar is returned when a book defines its grammar twice
	ErrDuplicateGrammar = errors.New("grammar defined more than once")
	// ErrBlockOutsideSection is returned for pass, fail or expect blocks before the first section
	ErrBlockOutsideSection = errors.New("case block outside of a section")
	// ErrExpectWithoutPass is returned for an expect block that does not follow a pass block
	ErrExpectWithoutPass = errors.New("expect block must follow a pass block")

	// ErrUnexpectedFailure is reported when a pass input does not parse
	ErrUnexpectedFailure = errors.New("expected input to parse")
	// ErrUnexpectedSuccess is reported when a fail input parses
	ErrUnexpectedSuccess = errors.New("expected input to be rejected")
	// ErrRecordMismatch is reported when a parsed record differs from the expectation
	ErrRecordMismatch = errors.New("record does not match expectation")
)
