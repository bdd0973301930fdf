package sexp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is an unbounded UnitWriter that logs every call.
type recorder struct {
	events []string
	width  int
	err    error
}

var _ UnitWriter = (*recorder)(nil)

func newRecorder() *recorder { return &recorder{width: 8} }

func (r *recorder) log(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) WriteUnit(c byte) { r.log("unit %q", c) }
func (r *recorder) PutChar(c byte)   { r.log("put %q", c) }
func (r *recorder) SetMode(m Mode)   { r.log("mode %s", m) }
func (r *recorder) Flush()           { r.log("flush") }
func (r *recorder) NewLine()         { r.log("newline") }
func (r *recorder) Indent(delta int) {}
func (r *recorder) Width() int       { return r.width }
func (r *recorder) Column() int      { return 0 }
func (r *recorder) MaxColumn() int   { return 0 }
func (r *recorder) Err() error       { return r.err }

func (r *recorder) SetWidth(width int, mode Mode) error {
	r.log("width %d %s", width, mode)
	r.width = width
	return nil
}

func TestPrinter_UnitWriterCalls(t *testing.T) {
	tests := []struct {
		name  string
		print func(*Printer) error
		want  []string
	}{
		{
			name:  "canonical",
			print: func(p *Printer) error { return p.PrintCanonical(Hinted([]byte("h"), []byte("v"))) },
			want: []string{
				`unit '['`, `unit '1'`, `unit ':'`, `unit 'h'`, `unit ']'`,
				`unit '1'`, `unit ':'`, `unit 'v'`,
			},
		},
		{
			name:  "base64 wraps canonical",
			print: func(p *Printer) error { return p.PrintBase64(List(MustToken("a"))) },
			want: []string{
				"width 8 base64", `unit '{'`,
				"width 6 base64", `unit '('`, `unit '1'`, `unit ':'`, `unit 'a'`, `unit ')'`,
				"flush",
				"width 8 base64", `unit '}'`,
			},
		},
		{
			name:  "advanced hex region",
			print: func(p *Printer) error { return p.PrintAdvanced(Hinted([]byte("h"), []byte{0, 1})) },
			want: []string{
				"mode advanced",
				`put '['`, `put 'h'`, `put ']'`,
				`put '#'`, "width 4 advanced", `unit '\x00'`, `unit '\x01'`, "flush", "width 8 advanced", `put '#'`,
			},
		},
		{
			name:  "advanced base64 region",
			print: func(p *Printer) error { return p.PrintAdvanced(List(Atom([]byte{0, 1, 2, 3, 4}))) },
			want: []string{
				"mode advanced",
				`put '('`,
				`unit '|'`, "width 6 advanced",
				`unit '\x00'`, `unit '\x01'`, `unit '\x02'`, `unit '\x03'`, `unit '\x04'`,
				"flush", "width 8 advanced", `unit '|'`,
				`put ')'`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRecorder()
			require.NoError(t, tt.print(NewPrinter(r)))
			assert.Equal(t, tt.want, r.events)
		})
	}
}

func TestPrinter_WriterError(t *testing.T) {
	boom := errors.New("disk full")
	r := newRecorder()
	r.err = boom

	err := NewPrinter(r).PrintCanonical(MustToken("a"))
	assert.ErrorIs(t, err, boom)
	assert.True(t, IsCode(err, CodeIO))
}
