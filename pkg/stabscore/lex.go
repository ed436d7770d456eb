package stabscore

// Cursor walks a null-terminated STABS string one byte at a time. It never
// reads past the end of the backing slice: an out-of-range read behaves as
// if the string were null-terminated, matching the C `const char*&` cursor
// the format was originally parsed with (spec.md §4.A).
type Cursor struct {
	input []byte
	pos   int
}

// NewCursor returns a cursor positioned at the start of input.
func NewCursor(input string) *Cursor {
	return &Cursor{input: []byte(input)}
}

// Offset returns the cursor's current byte position.
func (c *Cursor) Offset() int {
	return c.pos
}

// Seek rewinds or advances the cursor to an absolute byte position
// previously obtained from Offset, used by the field-list terminator
// lookahead (spec.md §4.B, "Field list").
func (c *Cursor) Seek(pos int) {
	c.pos = pos
}

// Remainder returns the bytes from the cursor to the end of input, used to
// report trailing-data errors (spec.md §4.C, step 6).
func (c *Cursor) Remainder() string {
	return string(c.input[c.pos:])
}

// AtEnd reports whether the cursor has run off the end of the string.
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.input)
}

// Peek returns the byte at the cursor without advancing, or 0 at end of
// input (the implicit null terminator).
func (c *Cursor) Peek() byte {
	if c.AtEnd() {
		return 0
	}
	return c.input[c.pos]
}

// PeekAt returns the byte offset bytes ahead of the cursor, or 0 past the
// end of input.
func (c *Cursor) PeekAt(offset int) byte {
	i := c.pos + offset
	if i < 0 || i >= len(c.input) {
		return 0
	}
	return c.input[i]
}

// EatChar returns the next byte and advances the cursor, or ok=false at end
// of input (spec.md §4.A, eat_char).
func (c *Cursor) EatChar() (b byte, ok bool) {
	if c.AtEnd() {
		return 0, false
	}
	b = c.input[c.pos]
	c.pos++
	return b, true
}

// ExpectChar consumes one byte and reports a *ParseError tagged with
// context if it is not want.
func (c *Cursor) ExpectChar(want byte, context string) error {
	got, ok := c.EatChar()
	if !ok || got != want {
		var err *ParseError
		if !ok {
			err = newExpectError(c, string(want), 0)
		} else {
			c.pos--
			err = newExpectError(c, string(want), got)
		}
		err.Message += " in " + context
		return err
	}
	return nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlnum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// EatS32Literal consumes an optionally-signed decimal integer and advances
// the cursor past its digits; it fails (ok=false) if no digits were
// consumed (spec.md §4.A, eat_s32_literal).
func (c *Cursor) EatS32Literal() (value int32, ok bool) {
	v, k := c.eatSignedLiteral()
	return int32(v), k
}

// EatS64Literal is EatS32Literal's 64-bit counterpart (spec.md §4.A,
// eat_s64_literal).
func (c *Cursor) EatS64Literal() (value int64, ok bool) {
	return c.eatSignedLiteral()
}

func (c *Cursor) eatSignedLiteral() (int64, bool) {
	start := c.pos
	neg := false
	if c.Peek() == '-' || c.Peek() == '+' {
		neg = c.Peek() == '-'
		c.pos++
	}
	digitsStart := c.pos
	var value int64
	for !c.AtEnd() && isDigit(c.Peek()) {
		value = value*10 + int64(c.Peek()-'0')
		c.pos++
	}
	if c.pos == digitsStart {
		c.pos = start
		return 0, false
	}
	if neg {
		value = -value
	}
	return value, true
}

// EatStabsIdentifier consumes characters until the first ':' or ';'. Every
// byte before that terminator, first or not, is part of the identifier, so
// sigils, digits, '_', '$' and operator characters are all accepted
// (spec.md §4.A, eat_stabs_identifier). Returns ok=false if the cursor
// reaches end of input without a terminator.
func (c *Cursor) EatStabsIdentifier() (string, bool) {
	start := c.pos
	first := true
	for !c.AtEnd() {
		b := c.Peek()
		valid := (b != ':' && b != ';') || (!first && isAlnum(b))
		if !valid {
			return string(c.input[start:c.pos]), true
		}
		c.pos++
		first = false
	}
	c.pos = start
	return "", false
}

// EatDodgyStabsIdentifier is EatStabsIdentifier but colon-tolerant: a ':'
// seen while inside template angle brackets ('<'...'>') is treated as part
// of the identifier rather than a terminator, so unescaped C++ "::" inside
// template arguments does not prematurely end the name. Reaching end of
// input without a terminator is reported as a truncation error rather than
// a plain ok=false (spec.md §4.A, eat_dodgy_stabs_identifier; §7,
// "Truncation error").
func (c *Cursor) EatDodgyStabsIdentifier() (string, error) {
	start := c.pos
	first := true
	templateDepth := 0
	for !c.AtEnd() {
		b := c.Peek()
		if b == '<' {
			templateDepth++
		}
		if b == '>' {
			templateDepth--
		}
		valid := ((b != ':' || templateDepth != 0) && b != ';') || (!first && isAlnum(b))
		if !valid {
			return string(c.input[start:c.pos]), nil
		}
		c.pos++
		first = false
	}
	c.pos = start
	return "", newTruncationError(c, "unterminated identifier")
}
