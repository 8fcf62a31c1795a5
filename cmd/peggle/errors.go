package main

import "errors"

// Sentinel errors for command operations
var (
	ErrNoGrammarFiles = errors.New("no grammar files given or configured")
	ErrAmbiguousGrammar = errors.New("more than one grammar file")
	ErrNoCaseFiles    = errors.New("no casebook files given or configured")
	ErrCheckFailed    = errors.New("grammar check failed")
	ErrTestsFailed    = errors.New("casebook cases failed")
	ErrNoInput        = errors.New("no input to parse")
	ErrParseFailed    = errors.New("input did not parse")
	ErrUnknownOutput  = errors.New("unknown output format")
)
