package sexp

// PrintAdvanced writes n in advanced (human readable) form. Each list is
// measured first: if its whole image fits in the rest of the line it is printed
// horizontally, otherwise one element per line.
func (p *Printer) PrintAdvanced(n *Node) error {
	p.out.SetMode(ModeAdvanced)
	if err := p.advancedObject(n); err != nil {
		return err
	}
	return p.finish()
}

func (p *Printer) bounded() bool { return p.out.MaxColumn() > 0 }

func (p *Printer) advancedObject(n *Node) error {
	o := p.out
	if p.bounded() && o.Column() > o.MaxColumn()-4 {
		o.NewLine()
	}
	if n == nil {
		return nilObject()
	}
	switch n.Kind {
	case KindAtom:
		return p.advancedString(n)
	case KindList:
		return p.advancedList(n)
	}
	return nilObject()
}

func (p *Printer) advancedString(n *Node) error {
	if n.Hint != nil {
		p.out.PutChar('[')
		if err := p.advancedSimpleString(n.Hint.Bytes()); err != nil {
			return err
		}
		p.out.PutChar(']')
	}
	return p.advancedSimpleString(n.OctetString.Bytes())
}

func (p *Printer) advancedList(n *Node) error {
	o := p.out
	vertical := p.bounded() && p.advancedLengthList(n) > o.MaxColumn()-o.Column()

	o.PutChar('(')
	o.Indent(1)
	for i, c := range n.List {
		if i > 0 {
			if vertical {
				o.NewLine()
			} else {
				o.PutChar(' ')
			}
		}
		if err := p.advancedObject(c); err != nil {
			return err
		}
	}
	if p.bounded() && o.Column() > o.MaxColumn()-2 {
		o.NewLine()
	}
	o.Indent(-1)
	o.PutChar(')')
	return nil
}

type encoding int

const (
	encodingToken encoding = iota
	encodingQuoted
	encodingHex
	encodingBase64
	encodingNone
)

// chooseEncoding picks the first applicable of token, quoted string, hex (up
// to four octets) and base64. Hex and base64 need an unrestricted channel.
func (p *Printer) chooseEncoding(b []byte) encoding {
	switch {
	case p.canPrintAsToken(b):
		return encodingToken
	case canPrintAsQuotedString(b):
		return encodingQuoted
	case len(b) <= 4 && p.out.Width() == 8:
		return encodingHex
	case p.out.Width() == 8:
		return encodingBase64
	}
	return encodingNone
}

// canPrintAsToken also requires the token to end before the max column.
func (p *Printer) canPrintAsToken(b []byte) bool {
	if !isToken(b) {
		return false
	}
	return !p.bounded() || p.out.Column()+len(b) < p.out.MaxColumn()
}

// canPrintAsQuotedString accepts only token characters and blanks, so quoted
// output never needs escapes.
func canPrintAsQuotedString(b []byte) bool {
	for _, c := range b {
		if !isTokenChar(int(c)) && c != ' ' {
			return false
		}
	}
	return true
}

func (p *Printer) advancedSimpleString(b []byte) error {
	switch p.chooseEncoding(b) {
	case encodingToken:
		p.printToken(b)
	case encodingQuoted:
		p.printQuoted(b)
	case encodingHex:
		return p.printHex(b)
	case encodingBase64:
		return p.printBase64(b)
	default:
		return &Error{Code: CodeRestricted, Offset: -1, Message: ErrRestrictedChannel.Error(), Err: ErrRestrictedChannel}
	}
	return nil
}

func (p *Printer) printToken(b []byte) {
	o := p.out
	if p.bounded() && o.Column() > o.MaxColumn()-len(b) {
		o.NewLine()
	}
	for _, c := range b {
		o.PutChar(c)
	}
}

// printQuoted breaks long strings with an escaped newline, which readers drop.
func (p *Printer) printQuoted(b []byte) {
	o := p.out
	o.PutChar('"')
	for _, c := range b {
		if p.bounded() && o.Column() >= o.MaxColumn()-2 {
			o.PutChar('\\')
			o.PutChar('\n')
		}
		o.PutChar(c)
	}
	o.PutChar('"')
}

func (p *Printer) printHex(b []byte) (err error) {
	o := p.out
	o.PutChar('#')
	if err = o.SetWidth(4, ModeAdvanced); err != nil {
		return
	}
	for _, c := range b {
		o.WriteUnit(c)
	}
	o.Flush()
	if err = o.SetWidth(8, ModeAdvanced); err != nil {
		return
	}
	o.PutChar('#')
	return
}

func (p *Printer) printBase64(b []byte) (err error) {
	o := p.out
	o.WriteUnit('|')
	if err = o.SetWidth(6, ModeAdvanced); err != nil {
		return
	}
	for _, c := range b {
		o.WriteUnit(c)
	}
	o.Flush()
	if err = o.SetWidth(8, ModeAdvanced); err != nil {
		return
	}
	o.WriteUnit('|')
	return
}

// advancedLength returns the printed width of b under the encoding chosen at
// the current column.
func (p *Printer) advancedLength(b []byte) int {
	return encodedLength(p.chooseEncoding(b), len(b))
}

func encodedLength(e encoding, n int) int {
	switch e {
	case encodingToken:
		return n
	case encodingQuoted:
		return n + 2
	case encodingHex:
		return 2*n + 2
	case encodingBase64:
		return 2 + 4*((n+2)/3)
	}
	return 0
}

func (p *Printer) advancedLengthString(n *Node) (l int) {
	if n.Hint != nil {
		l += 2 + p.advancedLength(n.Hint.Bytes())
	}
	return l + p.advancedLength(n.OctetString.Bytes())
}

// advancedLengthList is the width of the list printed horizontally: parens,
// elements and one blank between neighbours.
func (p *Printer) advancedLengthList(n *Node) int {
	l := 2
	for i, c := range n.List {
		if i > 0 {
			l++
		}
		if c == nil {
			continue
		}
		switch c.Kind {
		case KindAtom:
			l += p.advancedLengthString(c)
		case KindList:
			l += p.advancedLengthList(c)
		}
	}
	return l
}
