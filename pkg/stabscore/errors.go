package stabscore

import "fmt"

// ParseError is a malformed-input error at a specific cursor position,
// carrying the expected token, the token actually found, and a short
// context tag (spec.md §7, "Parse error").
type ParseError struct {
	Message       string
	CursorOffset  int
	Expected      string
	Got           string
	// Truncation distinguishes the dodgy-identifier end-of-input error from
	// an ordinary parse error. Nothing in this module reads it: a truncated
	// symbol is dropped like any other that fails to parse, and later
	// trailing-data errors in the same file are not demoted to warnings.
	Truncation bool
}

func (e *ParseError) Error() string {
	if e.Expected != "" || e.Got != "" {
		return fmt.Sprintf("%s (expected %q, got %q, at offset %d)", e.Message, e.Expected, e.Got, e.CursorOffset)
	}
	return fmt.Sprintf("%s (at offset %d)", e.Message, e.CursorOffset)
}

func newParseError(cursor *Cursor, message string) *ParseError {
	return &ParseError{Message: message, CursorOffset: cursor.pos}
}

func newExpectError(cursor *Cursor, expected string, got byte) *ParseError {
	gotStr := "<eof>"
	if got != 0 {
		gotStr = string(got)
	}
	return &ParseError{
		Message:      "unexpected character",
		CursorOffset: cursor.pos,
		Expected:     expected,
		Got:          gotStr,
	}
}

func newTruncationError(cursor *Cursor, message string) *ParseError {
	return &ParseError{Message: message, CursorOffset: cursor.pos, Truncation: true}
}
