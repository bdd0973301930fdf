package sexp

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, in *InputChannel) (units []int, widths []int) {
	t.Helper()
	for {
		c, err := in.ReadUnit()
		require.NoError(t, err)
		if c == eof {
			return
		}
		units = append(units, c)
		widths = append(widths, in.Width())
	}
}

func TestInputChannel_Regions(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		width      int
		wantUnits  []int
		wantWidths []int
		wantWarn   []Code
	}{
		{
			name:       "raw bytes",
			input:      "a#|",
			width:      8,
			wantUnits:  []int{'a', '#', '|'},
			wantWidths: []int{8, 8, 8},
		},
		{
			name:       "hex with blanks",
			input:      "4 1\n42#x",
			width:      4,
			wantUnits:  []int{'A', 'B', '#', 'x'},
			wantWidths: []int{4, 4, 8, 8},
		},
		{
			name:       "hex odd digit",
			input:      "414#",
			width:      4,
			wantUnits:  []int{'A', '#'},
			wantWidths: []int{4, 8},
			wantWarn:   []Code{CodeUnusedBits},
		},
		{
			name:       "base64 padding skipped",
			input:      "QUI=|",
			width:      6,
			wantUnits:  []int{'A', 'B', '|'},
			wantWidths: []int{6, 6, 8},
		},
		{
			name:       "base64 closed by brace",
			input:      "QUJD}",
			width:      6,
			wantUnits:  []int{'A', 'B', 'C', '}'},
			wantWidths: []int{6, 6, 6, 8},
		},
		{
			name:       "hash is data in base64",
			input:      "Iw==|",
			width:      6,
			wantUnits:  []int{'#', '|'},
			wantWidths: []int{6, 8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w warnings
			in := NewInputChannel(strings.NewReader(tt.input), w.handle)
			require.NoError(t, in.SetWidth(tt.width))
			units, widths := readAll(t, in)
			assert.Equal(t, tt.wantUnits, units)
			assert.Equal(t, tt.wantWidths, widths)
			assert.Equal(t, tt.wantWarn, w.codes())
			assert.Equal(t, int64(len(tt.input)), in.Offset())
		})
	}
}

func TestInputChannel_BadDigit(t *testing.T) {
	in := NewInputChannel(strings.NewReader("4G"), nil)
	require.NoError(t, in.SetWidth(4))
	_, err := in.ReadUnit()
	assert.ErrorIs(t, err, ErrBadDigit)
	assert.Equal(t, int64(2), Offset(err))
}

func TestInputChannel_EOFResetsWidth(t *testing.T) {
	in := NewInputChannel(strings.NewReader("41"), nil)
	require.NoError(t, in.SetWidth(4))
	c, err := in.ReadUnit()
	require.NoError(t, err)
	assert.Equal(t, 'A', rune(c))

	c, err = in.ReadUnit()
	require.NoError(t, err)
	assert.Equal(t, eof, c)
	assert.Equal(t, 4, in.Width())

	c, err = in.ReadUnit()
	require.NoError(t, err)
	assert.Equal(t, eof, c)
	assert.Equal(t, 8, in.Width())
}

func TestInputChannel_SetWidth(t *testing.T) {
	in := NewInputChannel(strings.NewReader(""), nil)
	require.NoError(t, in.SetWidth(6))
	assert.ErrorIs(t, in.SetWidth(4), ErrIllegalWidth)
	assert.ErrorIs(t, in.SetWidth(6), ErrIllegalWidth)
	require.NoError(t, in.SetWidth(8))
	assert.ErrorIs(t, in.SetWidth(5), ErrIllegalWidth)
	assert.True(t, IsCode(in.SetWidth(7), CodeChannel))
}

func TestInputChannel_ReadError(t *testing.T) {
	boom := errors.New("boom")
	in := NewInputChannel(iotest.ErrReader(boom), nil)
	_, err := in.ReadUnit()
	assert.ErrorIs(t, err, boom)
	assert.True(t, IsCode(err, CodeIO))
}

func TestOutputChannel_Widths(t *testing.T) {
	tests := []struct {
		name  string
		width int
		units string
		want  string
	}{
		{name: "raw", width: 8, units: "(a)", want: "(a)"},
		{name: "hex", width: 4, units: "AB\n", want: "41420A"},
		{name: "base64 one octet", width: 6, units: "A", want: "QQ=="},
		{name: "base64 two octets", width: 6, units: "AB", want: "QUI="},
		{name: "base64 three octets", width: 6, units: "ABC", want: "QUJD"},
		{name: "base64 empty", width: 6, units: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bytes.Buffer
			out := NewOutputChannel(&b, ModeCanonical, PrintOptions{})
			require.NoError(t, out.SetWidth(tt.width, ModeCanonical))
			for i := 0; i < len(tt.units); i++ {
				out.WriteUnit(tt.units[i])
			}
			out.Flush()
			require.NoError(t, out.Err())
			assert.Equal(t, tt.want, b.String())
			assert.Equal(t, len(tt.want), out.Column())
		})
	}
}

func TestOutputChannel_NewLine(t *testing.T) {
	tests := []struct {
		name   string
		mode   Mode
		opts   PrintOptions
		indent int
		want   string
	}{
		{name: "canonical never breaks", mode: ModeCanonical, opts: PrintOptions{Width: 10}, indent: 2, want: ""},
		{name: "base64 has no indent", mode: ModeBase64, opts: PrintOptions{Width: 10}, indent: 2, want: "\n"},
		{name: "advanced indents", mode: ModeAdvanced, opts: PrintOptions{Width: 40}, indent: 3, want: "\n   "},
		{name: "advanced indent is capped", mode: ModeAdvanced, opts: PrintOptions{Width: 8}, indent: 5, want: "\n  "},
		{name: "advanced without indent", mode: ModeAdvanced, opts: PrintOptions{Width: 40, NoIndent: true}, indent: 3, want: "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bytes.Buffer
			out := NewOutputChannel(&b, tt.mode, tt.opts)
			out.indent = tt.indent
			out.NewLine()
			assert.Equal(t, tt.want, b.String())
		})
	}
}

func TestOutputChannel_SetWidth(t *testing.T) {
	out := NewOutputChannel(&bytes.Buffer{}, ModeAdvanced, PrintOptions{})
	require.NoError(t, out.SetWidth(4, ModeAdvanced))
	assert.ErrorIs(t, out.SetWidth(6, ModeAdvanced), ErrIllegalWidth)
	require.NoError(t, out.SetWidth(8, ModeAdvanced))
	assert.ErrorIs(t, out.SetWidth(3, ModeAdvanced), ErrIllegalWidth)
	assert.Equal(t, 8, out.Width())
}

func TestOutputChannel_Column(t *testing.T) {
	var b bytes.Buffer
	out := NewOutputChannel(&b, ModeAdvanced, PrintOptions{Width: 40})
	for _, c := range []byte("abc") {
		out.PutChar(c)
	}
	assert.Equal(t, 3, out.Column())

	out.PutChar('\n')
	assert.Equal(t, 0, out.Column())

	out.Indent(2)
	out.NewLine()
	assert.Equal(t, 2, out.Column())
	out.Indent(-2)
	assert.Equal(t, 40, out.MaxColumn())
	assert.Equal(t, "abc\n\n  ", b.String())
}
