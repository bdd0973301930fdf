package sexp

// SimpleString is an owned, growable octet string. It may hold key material, so
// every backing array it abandons is zeroed first and Wipe must be called when
// the value is no longer needed.
type SimpleString struct {
	b []byte
}

// NewSimpleString returns a SimpleString holding a copy of b.
func NewSimpleString(b []byte) *SimpleString {
	ss := &SimpleString{}
	ss.Append(b)
	return ss
}

// Len returns the number of octets held.
func (ss *SimpleString) Len() int {
	if ss == nil {
		return 0
	}
	return len(ss.b)
}

// Bytes returns the held octets. The slice aliases the internal buffer and is
// invalidated by the next append or Wipe.
func (ss *SimpleString) Bytes() []byte {
	if ss == nil {
		return nil
	}
	return ss.b
}

// AppendByte adds one octet, growing the buffer geometrically.
func (ss *SimpleString) AppendByte(c byte) {
	if len(ss.b) == cap(ss.b) {
		ss.grow(1)
	}
	ss.b = append(ss.b, c)
}

// Append adds all of p.
func (ss *SimpleString) Append(p []byte) {
	if len(ss.b)+len(p) > cap(ss.b) {
		ss.grow(len(p))
	}
	ss.b = append(ss.b, p...)
}

// grow reallocates to 1.5x the current length plus 16 (or more when n demands
// it) and wipes the old array.
func (ss *SimpleString) grow(n int) {
	newCap := len(ss.b) + len(ss.b)/2 + 16
	if newCap < len(ss.b)+n {
		newCap = len(ss.b) + n
	}
	nb := make([]byte, len(ss.b), newCap)
	copy(nb, ss.b)
	clear(ss.b[:cap(ss.b)])
	ss.b = nb
}

// Wipe zeroes the whole backing array and releases it.
func (ss *SimpleString) Wipe() {
	if ss == nil {
		return
	}
	clear(ss.b[:cap(ss.b)])
	ss.b = nil
}

func (ss *SimpleString) String() string {
	return string(ss.Bytes())
}
