package sexp

import (
	"bytes"
	"io"
	"strconv"
)

// Printer writes trees through a UnitWriter. A Printer is good for one
// top-level object; use the Write* functions for the common case.
type Printer struct {
	out UnitWriter
}

// NewPrinter returns a Printer over out.
func NewPrinter(out UnitWriter) *Printer {
	return &Printer{out: out}
}

// WriteCanonical writes the canonical form of n to w. Canonical output never
// contains line breaks.
func WriteCanonical(w io.Writer, n *Node) error {
	return writeWith(w, ModeCanonical, PrintOptions{}, (*Printer).PrintCanonical, n)
}

// WriteBase64 writes n as "{" base64(canonical) "}", breaking lines at
// opts.Width.
func WriteBase64(w io.Writer, n *Node, opts PrintOptions) error {
	return writeWith(w, ModeBase64, opts, (*Printer).PrintBase64, n)
}

// WriteAdvanced writes the human-readable form of n to w.
func WriteAdvanced(w io.Writer, n *Node, opts PrintOptions) error {
	return writeWith(w, ModeAdvanced, opts, (*Printer).PrintAdvanced, n)
}

// Canonical returns the canonical encoding of n.
func Canonical(n *Node) ([]byte, error) {
	var b bytes.Buffer
	if err := WriteCanonical(&b, n); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func writeWith(w io.Writer, mode Mode, opts PrintOptions, fn func(*Printer, *Node) error, n *Node) error {
	sink, flush := newBufferedSink(w)
	out := NewOutputChannel(sink, mode, opts)
	err := fn(NewPrinter(out), n)
	if ferr := flush(); err == nil {
		err = ferr
	}
	return err
}

func (p *Printer) finish() error {
	if err := p.out.Err(); err != nil {
		return &Error{Code: CodeIO, Offset: -1, Message: err.Error(), Err: err}
	}
	return nil
}

func nilObject() error {
	return &Error{Code: CodeSyntax, Offset: -1, Message: "nil object can't be printed", Err: ErrUnexpectedChar}
}

// PrintCanonical writes n in canonical form through the current channel width.
func (p *Printer) PrintCanonical(n *Node) error {
	if err := p.canonicalObject(n); err != nil {
		return err
	}
	return p.finish()
}

// PrintBase64 writes n as a base64-wrapped canonical object.
func (p *Printer) PrintBase64(n *Node) (err error) {
	if n == nil {
		return nilObject()
	}
	if err = p.out.SetWidth(8, ModeBase64); err != nil {
		return
	}
	p.out.WriteUnit('{')
	if err = p.out.SetWidth(6, ModeBase64); err != nil {
		return
	}
	if err = p.canonicalObject(n); err != nil {
		return
	}
	p.out.Flush()
	if err = p.out.SetWidth(8, ModeBase64); err != nil {
		return
	}
	p.out.WriteUnit('}')
	return p.finish()
}

func (p *Printer) canonicalObject(n *Node) error {
	if n == nil {
		return nilObject()
	}
	switch n.Kind {
	case KindAtom:
		return p.canonicalString(n)
	case KindList:
		p.out.WriteUnit('(')
		for _, c := range n.List {
			if err := p.canonicalObject(c); err != nil {
				return err
			}
		}
		p.out.WriteUnit(')')
		return nil
	}
	return nilObject()
}

func (p *Printer) canonicalString(n *Node) error {
	if n.Hint != nil {
		p.out.WriteUnit('[')
		p.canonicalVerbatim(n.Hint)
		p.out.WriteUnit(']')
	}
	p.canonicalVerbatim(n.OctetString)
	return nil
}

func (p *Printer) writeDecimal(v int) {
	var buf [20]byte
	for _, c := range strconv.AppendInt(buf[:0], int64(v), 10) {
		p.out.WriteUnit(c)
	}
}

// canonicalVerbatim writes <length>:<octets>. A nil string prints as "0:".
func (p *Printer) canonicalVerbatim(ss *SimpleString) {
	b := ss.Bytes()
	p.writeDecimal(len(b))
	p.out.WriteUnit(':')
	for _, c := range b {
		p.out.WriteUnit(c)
	}
}
