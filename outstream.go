package sexp

import (
	"bufio"
	"io"
)

// Mode selects an output form. It also decides what a line break looks like.
type Mode int

const (
	ModeCanonical Mode = iota + 1
	ModeBase64
	ModeAdvanced
)

func (m Mode) String() string {
	switch m {
	case ModeCanonical:
		return "canonical"
	case ModeBase64:
		return "base64"
	case ModeAdvanced:
		return "advanced"
	}
	return "unknown"
}

// PrintOptions controls line breaking in base64 and advanced output.
type PrintOptions struct {
	// Width is the max output column; 0 means unbounded.
	Width int
	// NoIndent suppresses indentation after advanced-mode line breaks.
	NoIndent bool
}

// UnitWriter encodes 8-bit units onto a byte sink as raw bytes, hex digits or
// base64 digits depending on the active width. It also owns the layout state
// the printers consult: column, max column and indentation.
type UnitWriter interface {
	WriteUnit(c byte)
	// PutChar writes c verbatim whatever the width.
	PutChar(c byte)
	SetWidth(width int, mode Mode) error
	// SetMode changes how line breaks look without touching the width.
	SetMode(mode Mode)
	Flush()
	NewLine()
	Indent(delta int)
	Width() int
	Column() int
	// MaxColumn is 0 when lines are unbounded.
	MaxColumn() int
	Err() error
}

// OutputChannel is the UnitWriter over an io.ByteWriter. It also tracks the
// output column and indentation for line breaking. Write errors are sticky and
// reported by Err.
type OutputChannel struct {
	dst       io.ByteWriter
	err       error
	column    int
	maxColumn int
	indent    int
	noIndent  bool
	width     int
	bits      int
	nBits     int
	unitCount int
	mode      Mode
}

var _ UnitWriter = (*OutputChannel)(nil)

// NewOutputChannel returns a channel writing to w. maxColumn 0 disables line
// breaking.
func NewOutputChannel(w io.ByteWriter, mode Mode, opts PrintOptions) *OutputChannel {
	return &OutputChannel{
		dst:       w,
		maxColumn: opts.Width,
		noIndent:  opts.NoIndent,
		width:     8,
		mode:      mode,
	}
}

func (o *OutputChannel) Width() int { return o.width }

// Column returns the column the next byte will be written at.
func (o *OutputChannel) Column() int { return o.column }

func (o *OutputChannel) MaxColumn() int { return o.maxColumn }

// Indent adjusts the nesting level used by advanced line breaks.
func (o *OutputChannel) Indent(delta int) { o.indent += delta }

func (o *OutputChannel) SetMode(mode Mode) { o.mode = mode }

// Err returns the first write error.
func (o *OutputChannel) Err() error { return o.err }

// PutChar writes c verbatim, bypassing the bit channel. A newline resets the
// column.
func (o *OutputChannel) PutChar(c byte) {
	if o.err == nil {
		o.err = o.dst.WriteByte(c)
	}
	if c == '\n' {
		o.column = 0
		return
	}
	o.column++
}

func (o *OutputChannel) overflow() bool {
	return o.maxColumn > 0 && o.column >= o.maxColumn
}

// WriteUnit pushes one 8-bit unit through the channel, breaking the line first
// when an encoded digit (or a region delimiter) would pass the max column.
func (o *OutputChannel) WriteUnit(c byte) {
	o.bits = o.bits<<8 | int(c)
	o.nBits += 8
	for o.nBits >= o.width {
		if (o.width != 8 || c == '{' || c == '}' || c == '#' || c == '|') && o.overflow() {
			o.NewLine()
		}
		o.nBits -= o.width
		switch o.width {
		case 4:
			o.PutChar(hexDigits[o.bits>>o.nBits&0x0F])
		case 6:
			o.PutChar(base64Digits[o.bits>>o.nBits&0x3F])
		default:
			o.PutChar(byte(o.bits))
		}
		o.bits &= 1<<o.nBits - 1
		o.unitCount++
	}
}

// SetWidth changes the channel width and records mode for line breaks.
func (o *OutputChannel) SetWidth(width int, mode Mode) error {
	if err := checkWidthChange(o.width, width); err != nil {
		return &Error{Code: CodeChannel, Offset: -1, Message: err.Error(), Err: ErrIllegalWidth}
	}
	o.width = width
	o.bits = 0
	o.nBits = 0
	o.unitCount = 0
	o.mode = mode
	return nil
}

// Flush emits the final partial digit, left aligned, and pads a base64 region
// with '=' to a multiple of four digits.
func (o *OutputChannel) Flush() {
	if o.nBits > 0 {
		switch o.width {
		case 4:
			o.PutChar(hexDigits[o.bits<<(4-o.nBits)&0x0F])
		case 6:
			o.PutChar(base64Digits[o.bits<<(6-o.nBits)&0x3F])
		default:
			o.PutChar(byte(o.bits))
		}
		o.nBits = 0
		o.bits = 0
		o.unitCount++
	}
	if o.width == 6 {
		for o.unitCount&3 != 0 {
			if o.overflow() {
				o.NewLine()
			}
			o.PutChar('=')
			o.unitCount++
		}
	}
}

// NewLine starts a new line. Canonical output never breaks; advanced output
// indents one blank per level, capped at a quarter of the max column.
func (o *OutputChannel) NewLine() {
	if o.mode != ModeAdvanced && o.mode != ModeBase64 {
		return
	}
	o.PutChar('\n')
	if o.mode != ModeAdvanced || o.noIndent {
		return
	}
	for i := 0; i < o.indent && 4*i < o.maxColumn; i++ {
		o.PutChar(' ')
	}
}

// newBufferedSink adapts w to an io.ByteWriter; flush must be called when done.
func newBufferedSink(w io.Writer) (io.ByteWriter, func() error) {
	if bw, ok := w.(io.ByteWriter); ok {
		return bw, func() error { return nil }
	}
	b := bufio.NewWriter(w)
	return b, b.Flush
}
