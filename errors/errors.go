// Package errors defines all exported error sentinels for the labeltree
// library.
//
// This is the single source of truth for error values. The top-level
// labeltree package wraps these with positional context; callers should
// test with errors.Is so the wrapping stays transparent.
package errors

import "errors"

// Parse errors
var (
	// ErrSyntax is returned for any malformed character sequence: an
	// unescaped delimiter where a name is expected, a modifier with
	// nothing to modify, an unterminated escape, a quantifier with
	// low > high, or a stray token at end of input.
	ErrSyntax = errors.New("labeltree: syntax error")

	// ErrNameTooLong is returned when a label or pattern alternative
	// exceeds 255 characters.
	ErrNameTooLong = errors.New("labeltree: name of level is too long")

	// ErrProgramLimit is returned when the pre-scanned level or
	// alternative count exceeds what the record format can hold. It is
	// raised before any large allocation.
	ErrProgramLimit = errors.New("labeltree: program limit exceeded")

	// ErrInternalParser indicates the tokenizer reached a state the
	// state machine considers impossible. It signals a bug in the
	// parser, not malformed input.
	ErrInternalParser = errors.New("labeltree: internal parser error")
)

// Record errors
var (
	ErrTruncatedRecord = errors.New("labeltree: record is truncated")
	ErrCorruptedRecord = errors.New("labeltree: record is corrupted")
)
