package sexp

import (
	"bytes"
	"fmt"
	"io"
)

// DefaultMaxDepth bounds list and base64-wrapper nesting unless overridden.
const DefaultMaxDepth = 1024

// Scanner is a recursive-descent reader of S-expressions. It keeps one unit of
// lookahead, so a Scanner owns its source for its whole life.
type Scanner struct {
	in       UnitReader
	next     int
	warn     WarningHandler
	maxDepth int
	depth    int
}

type ScannerOption func(*Scanner)

// WithWarningHandler routes non-fatal diagnostics to h.
func WithWarningHandler(h WarningHandler) ScannerOption {
	return func(s *Scanner) { s.warn = h }
}

// WithMaxDepth limits nesting; 0 or less removes the limit.
func WithMaxDepth(depth int) ScannerOption {
	return func(s *Scanner) { s.maxDepth = depth }
}

// NewScanner reads from r through an InputChannel.
func NewScanner(r io.Reader, opts ...ScannerOption) *Scanner {
	s := newScanner(opts)
	s.in = NewInputChannel(r, s.warning)
	return s
}

// NewUnitScanner reads from an existing UnitReader.
func NewUnitScanner(in UnitReader, opts ...ScannerOption) *Scanner {
	s := newScanner(opts)
	s.in = in
	return s
}

func newScanner(opts []ScannerOption) *Scanner {
	s := &Scanner{
		next:     ' ',
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parse reads the first object from r.
func Parse(r io.Reader, opts ...ScannerOption) (n *Node, err error) {
	return NewScanner(r, opts...).Next()
}

// ParseBytes reads the first object from b.
func ParseBytes(b []byte, opts ...ScannerOption) (n *Node, err error) {
	return Parse(bytes.NewReader(b), opts...)
}

// Offset returns the number of source bytes consumed so far.
func (s *Scanner) Offset() int64 { return s.in.Offset() }

// Next resets the channel to 8 bits and parses the next top-level object. It
// returns io.EOF when only whitespace remains.
func (s *Scanner) Next() (n *Node, err error) {
	if err = s.begin(); err != nil {
		return
	}
	if s.next == eof {
		return nil, io.EOF
	}
	return s.ParseObject()
}

// ScanToEOF returns everything from the next non-blank byte to end of input as
// a single atom.
func (s *Scanner) ScanToEOF() (n *Node, err error) {
	if err = s.begin(); err != nil {
		return
	}
	ss := &SimpleString{}
	for s.next != eof {
		ss.AppendByte(byte(s.next))
		if err = s.advance(); err != nil {
			ss.Wipe()
			return nil, err
		}
	}
	return &Node{Kind: KindAtom, OctetString: ss}, nil
}

func (s *Scanner) begin() (err error) {
	if err = s.in.SetWidth(8); err != nil {
		return
	}
	s.depth = 0
	return s.skipWhiteSpace()
}

func (s *Scanner) warning(w Warning) {
	if s.warn != nil {
		s.warn(w)
	}
}

func (s *Scanner) warnf(code Code, format string, args ...any) {
	s.warning(Warning{Code: code, Offset: s.in.Offset(), Message: fmt.Sprintf(format, args...)})
}

func (s *Scanner) errorf(code Code, sentinel error, format string, args ...any) error {
	return &Error{Code: code, Offset: s.in.Offset(), Message: fmt.Sprintf(format, args...), Err: sentinel}
}

// unexpected describes the current lookahead when it is not what the grammar
// needs at this point.
func (s *Scanner) unexpected(what string) error {
	if s.next == eof {
		return s.errorf(CodeEOF, ErrUnexpectedEOF, "unexpected end of input, expected %s", what)
	}
	return s.errorf(CodeSyntax, ErrUnexpectedChar, "character %q found where %s expected", rune(s.next), what)
}

func (s *Scanner) advance() (err error) {
	s.next, err = s.in.ReadUnit()
	return
}

func (s *Scanner) skipWhiteSpace() (err error) {
	for isWhiteSpace(s.next) {
		if err = s.advance(); err != nil {
			return
		}
	}
	return
}

func (s *Scanner) skipChar(c byte) (err error) {
	if s.next != int(c) {
		return s.unexpected(fmt.Sprintf("%q", c))
	}
	return s.advance()
}

func (s *Scanner) enter() error {
	s.depth++
	if s.maxDepth > 0 && s.depth > s.maxDepth {
		return s.errorf(CodeDepth, ErrNestingTooDeep, "nesting deeper than %d levels", s.maxDepth)
	}
	return nil
}

func (s *Scanner) leave() { s.depth-- }

// ParseObject reads a list, a string, or a base64-wrapped object.
func (s *Scanner) ParseObject() (n *Node, err error) {
	if err = s.skipWhiteSpace(); err != nil {
		return
	}

	switch s.next {
	case '{':
		// the width must change before '{' is consumed so the next unit is
		// decoded as base64
		if err = s.in.SetWidth(6); err != nil {
			return
		}
		if err = s.enter(); err != nil {
			return
		}
		defer s.leave()
		if err = s.advance(); err != nil {
			return
		}
		if n, err = s.ParseObject(); err != nil {
			return nil, err
		}
		if err = s.skipWhiteSpace(); err == nil {
			if s.next != '}' || s.in.Width() != 8 {
				err = s.unexpected("'}'")
			} else {
				err = s.advance()
			}
		}
		if err != nil {
			n.Wipe()
			return nil, err
		}
		return
	case '(':
		return s.ParseList()
	default:
		return s.ParseString()
	}
}

// ParseList reads "(" followed by objects up to the matching ")".
func (s *Scanner) ParseList() (n *Node, err error) {
	if err = s.skipChar('('); err != nil {
		return
	}
	if err = s.enter(); err != nil {
		return
	}
	defer s.leave()

	n = List()
	defer func() {
		if err != nil {
			n.Wipe()
			n = nil
		}
	}()

	for {
		if err = s.skipWhiteSpace(); err != nil {
			return
		}
		if s.next == ')' {
			err = s.advance()
			return
		}
		if s.next == eof {
			err = s.unexpected("')'")
			return
		}

		var child *Node
		child, err = s.ParseObject()
		if err != nil {
			return
		}
		n.Append(child)
	}
}

// ParseString reads an optional "[hint]" followed by a simple string.
func (s *Scanner) ParseString() (n *Node, err error) {
	n = &Node{Kind: KindAtom}
	defer func() {
		if err != nil {
			n.Wipe()
			n = nil
		}
	}()

	if s.next == '[' {
		if err = s.advance(); err != nil {
			return
		}
		if n.Hint, err = s.ParseSimpleString(); err != nil {
			return
		}
		if err = s.skipWhiteSpace(); err != nil {
			return
		}
		if err = s.skipChar(']'); err != nil {
			return
		}
		if err = s.skipWhiteSpace(); err != nil {
			return
		}
	}

	n.OctetString, err = s.ParseSimpleString()
	return
}

// ParseSimpleString reads one token, verbatim, quoted, hex or base64 string.
func (s *Scanner) ParseSimpleString() (ss *SimpleString, err error) {
	ss = &SimpleString{}
	defer func() {
		if err != nil {
			ss.Wipe()
			ss = nil
		}
	}()

	if err = s.skipWhiteSpace(); err != nil {
		return
	}

	// tokens are tested first so that a token may begin with ':'
	switch {
	case isTokenStart(s.next):
		err = s.scanToken(ss)
	case isDigit(s.next), s.next == '"', s.next == '#', s.next == '|', s.next == ':':
		length := -1
		if isDigit(s.next) {
			if length, err = s.scanDecimal(); err != nil {
				return
			}
		}
		switch s.next {
		case '"':
			err = s.scanQuotedString(ss, length)
		case '#':
			err = s.scanHexString(ss, length)
		case '|':
			err = s.scanBase64String(ss, length)
		case ':':
			err = s.scanVerbatimString(ss, length)
		default:
			err = s.unexpected("one of '\"', '#', '|' or ':' after length")
		}
	case s.next == eof:
		err = s.unexpected("string")
	default:
		err = s.errorf(CodeSyntax, ErrUnexpectedChar, "illegal character %q (%d decimal)", rune(s.next), s.next)
	}
	if err != nil {
		return
	}

	if ss.Len() == 0 {
		s.warnf(CodeZeroLength, "simple string has zero length")
	}
	return
}

func (s *Scanner) scanToken(ss *SimpleString) (err error) {
	for isTokenChar(s.next) {
		ss.AppendByte(byte(s.next))
		if err = s.advance(); err != nil {
			return
		}
	}
	return
}

// scanDecimal reads at most nine decimal digits.
func (s *Scanner) scanDecimal() (value int, err error) {
	digits := 0
	for isDigit(s.next) {
		digits++
		if digits > 9 {
			return 0, s.errorf(CodeLength, ErrDecimalTooLong, "decimal number %d... too long", value)
		}
		value = value*10 + s.next - '0'
		if err = s.advance(); err != nil {
			return
		}
	}
	return
}

func (s *Scanner) scanVerbatimString(ss *SimpleString, length int) (err error) {
	if length < 0 {
		return s.errorf(CodeLength, ErrNoLength, "verbatim string had no declared length")
	}
	if err = s.skipChar(':'); err != nil {
		return
	}
	for i := 0; i < length; i++ {
		if s.next == eof {
			return s.errorf(CodeEOF, ErrUnexpectedEOF, "verbatim string ended after %d of %d bytes", i, length)
		}
		ss.AppendByte(byte(s.next))
		if err = s.advance(); err != nil {
			return
		}
	}
	return
}

// scanQuotedString reads a C-style quoted string. A declared length must match
// the decoded length exactly.
func (s *Scanner) scanQuotedString(ss *SimpleString, length int) (err error) {
	if err = s.skipChar('"'); err != nil {
		return
	}
	for {
		if length >= 0 && ss.Len() > length {
			return s.errorf(CodeLength, ErrLengthMismatch, "quoted string longer than declared length %d", length)
		}

		switch s.next {
		case eof:
			return s.errorf(CodeEOF, ErrUnexpectedEOF, "unterminated quoted string")
		case '"':
			if length >= 0 && ss.Len() != length {
				return s.errorf(CodeLength, ErrLengthMismatch, "quoted string ended too early, declared length was %d", length)
			}
			return s.advance()
		case '\\':
			if err = s.scanEscape(ss); err != nil {
				return
			}
		default:
			ss.AppendByte(byte(s.next))
			if err = s.advance(); err != nil {
				return
			}
		}
	}
}

var simpleEscapes = [256]byte{
	'b':  '\b',
	't':  '\t',
	'v':  '\v',
	'n':  '\n',
	'f':  '\f',
	'r':  '\r',
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
}

func isOctalDigit(c int) bool { return c >= '0' && c <= '7' }

// scanEscape decodes one escape sequence; the lookahead is the backslash. It
// leaves the lookahead on the first unit after the sequence.
func (s *Scanner) scanEscape(ss *SimpleString) (err error) {
	if err = s.advance(); err != nil {
		return
	}
	c := s.next

	switch {
	case c >= 0 && c <= 0xFF && simpleEscapes[c] != 0:
		ss.AppendByte(simpleEscapes[c])
	case isOctalDigit(c):
		val := 0
		for j := 0; j < 3; j++ {
			if !isOctalDigit(c) {
				return s.errorf(CodeEscape, ErrBadEscape, "octal character \\%o... too short", val)
			}
			val = val<<3 | (c - '0')
			if j < 2 {
				if err = s.advance(); err != nil {
					return
				}
				c = s.next
			}
		}
		if val > 0xFF {
			return s.errorf(CodeEscape, ErrBadEscape, "octal character \\%o... too big", val)
		}
		ss.AppendByte(byte(val))
	case c == 'x':
		if err = s.advance(); err != nil {
			return
		}
		c = s.next
		val := 0
		for j := 0; j < 2; j++ {
			if !isHexDigit(c) {
				return s.errorf(CodeEscape, ErrBadEscape, "hex character \\x%x... too short", val)
			}
			val = val<<4 | int(hexValues[c])
			if j < 1 {
				if err = s.advance(); err != nil {
					return
				}
				c = s.next
			}
		}
		ss.AppendByte(byte(val))
	case c == '\n', c == '\r':
		// escaped line break, in either order of a CR LF pair
		if err = s.advance(); err != nil {
			return
		}
		if (c == '\n' && s.next == '\r') || (c == '\r' && s.next == '\n') {
			return s.advance()
		}
		return nil
	case c == eof:
		return s.errorf(CodeEOF, ErrUnexpectedEOF, "unterminated escape sequence")
	default:
		s.warnf(CodeUnknownEscape, "escape character \\%c... unknown", rune(c))
	}

	return s.advance()
}

func (s *Scanner) scanHexString(ss *SimpleString, length int) error {
	return s.scanRegion(ss, length, 4, '#', "hex")
}

func (s *Scanner) scanBase64String(ss *SimpleString, length int) error {
	return s.scanRegion(ss, length, 6, '|', "base64")
}

// scanRegion reads a delimited hex or base64 string. Units returned while the
// channel is still restricted are data; the channel drops back to 8 bits when
// it meets the closing delimiter.
func (s *Scanner) scanRegion(ss *SimpleString, length int, width int, delim byte, name string) (err error) {
	if err = s.in.SetWidth(width); err != nil {
		return
	}
	if err = s.skipChar(delim); err != nil {
		return
	}
	for s.next != eof && s.in.Width() == width {
		ss.AppendByte(byte(s.next))
		if err = s.advance(); err != nil {
			return
		}
	}
	if err = s.skipChar(delim); err != nil {
		return
	}
	if length >= 0 && ss.Len() != length {
		s.warnf(CodeLengthMismatch, "%s string has length %d different than declared length %d", name, ss.Len(), length)
	}
	return
}
