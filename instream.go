package sexp

import (
	"bufio"
	"fmt"
	"io"
)

// eof is the unit returned once the byte source is exhausted.
const eof = -1

// UnitReader yields 8-bit units decoded from a byte source whose digits may be
// raw bytes, hex digits or base64 digits depending on the active width.
type UnitReader interface {
	// ReadUnit returns the next 8-bit unit or eof. A region terminator is
	// returned as itself after the width has dropped back to 8.
	ReadUnit() (int, error)
	SetWidth(width int) error
	Width() int
	Offset() int64
}

// InputChannel is the UnitReader over an io.ByteReader.
type InputChannel struct {
	src   io.ByteReader
	width int
	bits  int
	nBits int
	count int64
	done  bool
	warn  WarningHandler
}

var _ UnitReader = (*InputChannel)(nil)

// NewInputChannel wraps r, buffering it when it is not already an io.ByteReader.
func NewInputChannel(r io.Reader, warn WarningHandler) *InputChannel {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &InputChannel{
		src:   br,
		width: 8,
		warn:  warn,
	}
}

func (in *InputChannel) Width() int { return in.width }

// Offset returns the number of raw bytes consumed from the source.
func (in *InputChannel) Offset() int64 { return in.count }

// SetWidth switches the channel between 8-bit and a restricted 4- or 6-bit
// region. Restricted regions never nest.
func (in *InputChannel) SetWidth(width int) error {
	if err := checkWidthChange(in.width, width); err != nil {
		return &Error{Code: CodeChannel, Offset: in.count, Message: err.Error(), Err: ErrIllegalWidth}
	}
	in.width = width
	in.bits = 0
	in.nBits = 0
	return nil
}

func checkWidthChange(from, to int) error {
	if to != 4 && to != 6 && to != 8 {
		return fmt.Errorf("illegal channel width %d", to)
	}
	if to != 8 && from != 8 {
		return fmt.Errorf("illegal change of channel width from %d to %d", from, to)
	}
	return nil
}

func (in *InputChannel) ReadUnit() (int, error) {
	if in.done {
		in.width = 8
		return eof, nil
	}
	for {
		b, err := in.src.ReadByte()
		if err == io.EOF {
			in.done = true
			return eof, nil
		}
		if err != nil {
			return eof, &Error{Code: CodeIO, Offset: in.count, Message: err.Error(), Err: err}
		}
		in.count++
		c := int(b)

		switch {
		case in.width == 6 && (c == '|' || c == '}'), in.width == 4 && c == '#':
			if in.nBits > 0 && in.bits&(1<<in.nBits-1) != 0 && in.warn != nil {
				in.warn(Warning{
					Code:    CodeUnusedBits,
					Offset:  in.count,
					Message: fmt.Sprintf("%d-bit region ended with %d unused bits left-over", in.width, in.nBits),
				})
			}
			in.width = 8
			in.bits = 0
			in.nBits = 0
			return c, nil
		case in.width != 8 && isWhiteSpace(c):
		case in.width == 6 && c == '=':
		case in.width == 8:
			return c, nil
		default:
			var v byte
			if in.width == 6 {
				v = base64Values[c]
			} else {
				v = hexValues[c]
			}
			if v == noValue {
				return eof, &Error{
					Code:    CodeSyntax,
					Offset:  in.count,
					Message: fmt.Sprintf("character %q found in %d-bit coding region", rune(c), in.width),
					Err:     ErrBadDigit,
				}
			}
			in.bits = in.bits<<in.width | int(v)
			in.nBits += in.width
			if in.nBits >= 8 {
				in.nBits -= 8
				c = in.bits >> in.nBits & 0xFF
				in.bits &= 1<<in.nBits - 1
				return c, nil
			}
		}
	}
}
