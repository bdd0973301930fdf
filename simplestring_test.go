package sexp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleString_Grow(t *testing.T) {
	ss := &SimpleString{}
	ss.Append([]byte("0123456789abcdef"))
	assert.Equal(t, 16, cap(ss.b))

	old := ss.b[:cap(ss.b)]
	ss.AppendByte('x')

	assert.Equal(t, "0123456789abcdefx", ss.String())
	assert.Equal(t, 16+8+16, cap(ss.b))
	assert.Equal(t, make([]byte, 16), old, "abandoned array must be zeroed")
}

func TestSimpleString_AppendLarge(t *testing.T) {
	ss := NewSimpleString([]byte("ab"))
	big := make([]byte, 100)
	ss.Append(big)
	assert.Equal(t, 102, ss.Len())
	assert.GreaterOrEqual(t, cap(ss.b), 102)
}

func TestSimpleString_Wipe(t *testing.T) {
	ss := NewSimpleString([]byte("secret"))
	b := ss.Bytes()
	ss.Wipe()
	assert.Equal(t, make([]byte, 6), b)
	assert.Equal(t, 0, ss.Len())
	assert.Nil(t, ss.Bytes())
}

func TestSimpleString_Nil(t *testing.T) {
	var ss *SimpleString
	assert.Equal(t, 0, ss.Len())
	assert.Nil(t, ss.Bytes())
	assert.Equal(t, "", ss.String())
	assert.NotPanics(t, ss.Wipe)
}
