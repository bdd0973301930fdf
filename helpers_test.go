package sexp

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

// dump renders the structure of a tree, independent of any wire form.
func dump(n *Node) string {
	var sb strings.Builder
	dumpTo(&sb, n)
	return sb.String()
}

func dumpTo(sb *strings.Builder, n *Node) {
	if n == nil {
		sb.WriteString("nil")
		return
	}
	switch n.Kind {
	case KindAtom:
		if n.Hint != nil {
			fmt.Fprintf(sb, "[%q]", n.Hint.Bytes())
		}
		fmt.Fprintf(sb, "%q", n.OctetString.Bytes())
	case KindList:
		sb.WriteByte('(')
		for i, c := range n.List {
			if i > 0 {
				sb.WriteByte(' ')
			}
			dumpTo(sb, c)
		}
		sb.WriteByte(')')
	}
}

type warnings []Warning

func (w *warnings) handle(x Warning) { *w = append(*w, x) }

func (w warnings) codes() []Code {
	var codes []Code
	for _, x := range w {
		codes = append(codes, x.Code)
	}
	return codes
}

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-./_:*+="

// randomOctets favours strings that exercise every advanced encoding.
func randomOctets(r *rand.Rand) []byte {
	n := r.Intn(24)
	b := make([]byte, n)
	switch r.Intn(4) {
	case 0:
		for i := range b {
			b[i] = tokenAlphabet[r.Intn(len(tokenAlphabet))]
		}
	case 1:
		for i := range b {
			if r.Intn(5) == 0 {
				b[i] = ' '
			} else {
				b[i] = tokenAlphabet[r.Intn(len(tokenAlphabet))]
			}
		}
	case 2:
		b = make([]byte, r.Intn(5))
		r.Read(b)
	default:
		r.Read(b)
	}
	return b
}

func randomTree(r *rand.Rand, depth int) *Node {
	if depth <= 0 || r.Intn(3) == 0 {
		if r.Intn(4) == 0 {
			return Hinted(randomOctets(r), randomOctets(r))
		}
		return Atom(randomOctets(r))
	}
	n := List()
	for i := r.Intn(6); i > 0; i-- {
		n.Append(randomTree(r, depth-1))
	}
	return n
}

// allOctets holds every byte value once.
func allOctets() []byte {
	b := make([]byte, 256)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestRandomOctets(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		r := rand.New(rand.NewSource(seed))
		for i := 0; i < 200; i++ {
			b := randomOctets(r)
			if len(b) >= 24 {
				t.Fatalf("seed %d: %d octets", seed, len(b))
			}
		}
	}
}
