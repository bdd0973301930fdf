package sexp

// Token returns an atom whose value must be printable as a bare token.
func Token(s string) (n *Node, err error) {
	if !isToken([]byte(s)) {
		return nil, ErrInvalidTokenChar
	}
	return Atom([]byte(s)), nil
}

func MustToken(s string) (n *Node) {
	var err error
	n, err = Token(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Atom returns an atom holding a copy of s.
func Atom(s []byte) (n *Node) {
	return &Node{
		Kind:        KindAtom,
		OctetString: NewSimpleString(s),
	}
}

// Hinted returns an atom holding a copy of s tagged with presentation hint.
func Hinted(hint, s []byte) (n *Node) {
	n = Atom(s)
	n.Hint = NewSimpleString(hint)
	return
}

// List returns a list of the given children in order.
func List(children ...*Node) (n *Node) {
	if children == nil {
		children = make([]*Node, 0)
	}
	return &Node{
		Kind: KindList,
		List: children,
	}
}
