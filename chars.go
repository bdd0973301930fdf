package sexp

const (
	hexDigits    = "0123456789ABCDEF"
	base64Digits = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

	// noValue marks bytes that are not digits of the table's radix.
	noValue = 0xFF
)

type charClass uint8

const (
	classDecimal charClass = 1 << iota
	classHex
	classToken
	classSpace
)

var classes = func() (t [256]charClass) {
	for c := '0'; c <= '9'; c++ {
		t[c] |= classDecimal | classHex | classToken
	}
	for c := 'a'; c <= 'z'; c++ {
		t[c] |= classToken
		t[c-'a'+'A'] |= classToken
	}
	for c := 'a'; c <= 'f'; c++ {
		t[c] |= classHex
		t[c-'a'+'A'] |= classHex
	}
	for _, c := range "-./_:*+=" {
		t[c] |= classToken
	}
	for _, c := range " \t\n\v\f\r" {
		t[c] |= classSpace
	}
	return
}()

var hexValues = func() (t [256]byte) {
	for i := range t {
		t[i] = noValue
	}
	for i := 0; i < len(hexDigits); i++ {
		t[hexDigits[i]] = byte(i)
	}
	for c := 'a'; c <= 'f'; c++ {
		t[c] = byte(c-'a') + 10
	}
	return
}()

var base64Values = func() (t [256]byte) {
	for i := range t {
		t[i] = noValue
	}
	for i := 0; i < len(base64Digits); i++ {
		t[base64Digits[i]] = byte(i)
	}
	return
}()

// The predicates take an int so the end-of-input marker (-1) is never a member.

func is(c int, class charClass) bool {
	return c >= 0 && c <= 0xFF && classes[c]&class != 0
}

func isDigit(c int) bool { return is(c, classDecimal) }

func isHexDigit(c int) bool { return is(c, classHex) }

func isTokenChar(c int) bool { return is(c, classToken) }

func isWhiteSpace(c int) bool { return is(c, classSpace) }

// isTokenStart reports whether c may begin a bare token.
func isTokenStart(c int) bool {
	return isTokenChar(c) && !isDigit(c)
}

// isToken reports whether s is non-empty, does not start with a digit and is
// made only of token characters.
func isToken(s []byte) bool {
	if len(s) == 0 || !isTokenStart(int(s[0])) {
		return false
	}
	for _, c := range s[1:] {
		if !isTokenChar(int(c)) {
			return false
		}
	}
	return true
}
