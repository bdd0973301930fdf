package sexp

import (
	"strings"
)

type Kind int

const (
	KindList Kind = iota
	KindAtom
)

func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindAtom:
		return "atom"
	}
	return "unknown"
}

// Node is either an atom (an octet string with an optional presentation hint)
// or an ordered list of nodes. An empty list has a nil or zero-length List.
type Node struct {
	Kind
	Hint        *SimpleString
	OctetString *SimpleString
	List        []*Node
}

// IsAtom reports whether n is a string.
func (n *Node) IsAtom() bool { return n != nil && n.Kind == KindAtom }

// IsList reports whether n is a list.
func (n *Node) IsList() bool { return n != nil && n.Kind == KindList }

// Append adds child to the end of list n.
func (n *Node) Append(child *Node) {
	n.List = append(n.List, child)
}

// Wipe zeroes every octet string in the tree rooted at n.
func (n *Node) Wipe() {
	if n == nil {
		return
	}
	n.Hint.Wipe()
	n.OctetString.Wipe()
	for _, c := range n.List {
		c.Wipe()
	}
	n.List = nil
}

// String renders n in advanced form on a single line.
func (n *Node) String() string {
	if n == nil {
		return ""
	}

	var sb strings.Builder
	err := WriteAdvanced(&sb, n, PrintOptions{})
	if err != nil {
		return "!!(" + err.Error() + ")!!"
	}

	return sb.String()
}
