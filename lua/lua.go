// Package lua exposes S-expressions to gopher-lua scripts.
//
// An atom is the table {string=<octets>} with an optional hint=<octets>; a list
// is {list={...}}. A bare Lua string is also accepted as an atom.
package lua

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/alttpo/sexp/v2"
	"github.com/yuin/gopher-lua"
)

var (
	ErrNotSexp      = errors.New("value is not an s-expression table")
	ErrTooDeep      = errors.New("table nesting too deep")
	ErrNoFilterFunc = errors.New("script does not define a global filter function")
)

func table() *lua.LTable {
	return &lua.LTable{
		Metatable: lua.LNil,
	}
}

// ToLua converts n to its table form.
func ToLua(n *sexp.Node) lua.LValue {
	if n == nil {
		return lua.LNil
	}

	t := table()
	switch n.Kind {
	case sexp.KindAtom:
		t.RawSetString("string", lua.LString(n.OctetString.Bytes()))
		if n.Hint != nil {
			t.RawSetString("hint", lua.LString(n.Hint.Bytes()))
		}
	case sexp.KindList:
		list := table()
		for _, c := range n.List {
			list.Append(ToLua(c))
		}
		t.RawSetString("list", list)
	}
	return t
}

// FromLua converts a table form back into a tree.
func FromLua(v lua.LValue) (*sexp.Node, error) {
	return fromLua(v, 0)
}

func fromLua(v lua.LValue, depth int) (*sexp.Node, error) {
	if depth > sexp.DefaultMaxDepth {
		return nil, ErrTooDeep
	}

	switch tv := v.(type) {
	case lua.LString:
		return sexp.Atom([]byte(tv)), nil
	case *lua.LTable:
		if list, ok := tv.RawGetString("list").(*lua.LTable); ok {
			n := sexp.List()
			for i := 1; i <= list.Len(); i++ {
				c, err := fromLua(list.RawGetInt(i), depth+1)
				if err != nil {
					n.Wipe()
					return nil, err
				}
				n.Append(c)
			}
			return n, nil
		}

		s, ok := tv.RawGetString("string").(lua.LString)
		if !ok {
			return nil, fmt.Errorf("%w: table has neither list nor string", ErrNotSexp)
		}
		switch hint := tv.RawGetString("hint").(type) {
		case lua.LString:
			return sexp.Hinted([]byte(hint), []byte(s)), nil
		case *lua.LNilType:
			return sexp.Atom([]byte(s)), nil
		default:
			return nil, fmt.Errorf("%w: hint is a %s", ErrNotSexp, hint.Type())
		}
	}
	return nil, fmt.Errorf("%w: got %s", ErrNotSexp, v.Type())
}

// Preload makes require("sexp") available in L.
func Preload(L *lua.LState) {
	L.PreloadModule("sexp", loader)
}

var exports = map[string]lua.LGFunction{
	"parse":     luaParse,
	"canonical": luaCanonical,
	"base64":    luaBase64,
	"advanced":  luaAdvanced,
}

func loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), exports)
	L.Push(mod)
	return 1
}

func luaParse(L *lua.LState) int {
	src := L.CheckString(1)
	n, err := sexp.ParseBytes([]byte(src))
	if err != nil {
		L.RaiseError("sexp.parse: %v", err)
		return 0
	}
	defer n.Wipe()
	L.Push(ToLua(n))
	return 1
}

func checkNode(L *lua.LState, fn string) *sexp.Node {
	n, err := FromLua(L.CheckAny(1))
	if err != nil {
		L.RaiseError("sexp.%s: %v", fn, err)
		return nil
	}
	return n
}

func pushWritten(L *lua.LState, fn string, n *sexp.Node, write func(*bytes.Buffer, *sexp.Node) error) int {
	defer n.Wipe()
	var b bytes.Buffer
	if err := write(&b, n); err != nil {
		L.RaiseError("sexp.%s: %v", fn, err)
		return 0
	}
	L.Push(lua.LString(b.String()))
	return 1
}

func luaCanonical(L *lua.LState) int {
	n := checkNode(L, "canonical")
	return pushWritten(L, "canonical", n, func(b *bytes.Buffer, n *sexp.Node) error {
		return sexp.WriteCanonical(b, n)
	})
}

func luaBase64(L *lua.LState) int {
	n := checkNode(L, "base64")
	opts := sexp.PrintOptions{Width: L.OptInt(2, 0)}
	return pushWritten(L, "base64", n, func(b *bytes.Buffer, n *sexp.Node) error {
		return sexp.WriteBase64(b, n, opts)
	})
}

func luaAdvanced(L *lua.LState) int {
	n := checkNode(L, "advanced")
	opts := sexp.PrintOptions{Width: L.OptInt(2, sexp.DefaultWidth)}
	return pushWritten(L, "advanced", n, func(b *bytes.Buffer, n *sexp.Node) error {
		return sexp.WriteAdvanced(b, n, opts)
	})
}

// Filter runs a script's global filter(obj) function over objects.
type Filter struct {
	L  *lua.LState
	fn lua.LValue
}

// NewFilter loads the script at path.
func NewFilter(path string) (*Filter, error) {
	return newFilter(func(L *lua.LState) error { return L.DoFile(path) })
}

// NewFilterString loads a script from source.
func NewFilterString(src string) (*Filter, error) {
	return newFilter(func(L *lua.LState) error { return L.DoString(src) })
}

func newFilter(load func(*lua.LState) error) (*Filter, error) {
	L := lua.NewState(lua.Options{})
	Preload(L)
	if err := load(L); err != nil {
		L.Close()
		return nil, err
	}
	fn := L.GetGlobal("filter")
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNoFilterFunc
	}
	return &Filter{L: L, fn: fn}, nil
}

// Apply calls filter(obj). A nil result keeps n.
func (f *Filter) Apply(n *sexp.Node) (*sexp.Node, error) {
	err := f.L.CallByParam(
		lua.P{
			Fn:      f.fn,
			NRet:    1,
			Protect: true,
		},
		ToLua(n),
	)
	if err != nil {
		return nil, err
	}

	ret := f.L.Get(-1)
	f.L.Pop(1)
	if ret == lua.LNil {
		return nil, nil
	}
	return FromLua(ret)
}

func (f *Filter) Close() {
	f.L.Close()
}
