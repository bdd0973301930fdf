package sexp

import (
	"bufio"
	"errors"
	"io"
)

// Filter may replace each object between parsing and printing. Returning nil
// keeps the original.
type Filter func(n *Node) (*Node, error)

// Transcoder reads objects from a source and writes each of them in every
// selected output form.
type Transcoder struct {
	cfg     Config
	scanner *Scanner
	out     *bufio.Writer
	prompt  io.Writer
	filter  Filter
	warn    WarningHandler
}

type TranscoderOption func(*Transcoder)

// WithPromptWriter sets where prompts and output labels go in prompt mode.
func WithPromptWriter(w io.Writer) TranscoderOption {
	return func(t *Transcoder) { t.prompt = w }
}

func WithFilter(f Filter) TranscoderOption {
	return func(t *Transcoder) { t.filter = f }
}

func WithWarnings(h WarningHandler) TranscoderOption {
	return func(t *Transcoder) { t.warn = h }
}

var labels = map[Mode]string{
	ModeCanonical: "Canonical output: ",
	ModeBase64:    "Base64 (of canonical) output: ",
	ModeAdvanced:  "Advanced transport output: ",
}

func NewTranscoder(r io.Reader, w io.Writer, cfg Config, opts ...TranscoderOption) *Transcoder {
	t := &Transcoder{
		cfg:    cfg,
		out:    bufio.NewWriter(w),
		prompt: io.Discard,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.scanner = NewScanner(r, WithWarningHandler(t.warn), WithMaxDepth(cfg.MaxDepth))
	return t
}

// Run transcodes objects until end of input, or just the first one when
// Repeat is off. The first fatal error stops it.
func (t *Transcoder) Run() error {
	if err := t.cfg.Validate(); err != nil {
		return err
	}
	for {
		if t.cfg.Prompt {
			_, _ = io.WriteString(t.prompt, "Input: ")
		}

		n, err := t.read()
		if errors.Is(err, io.EOF) {
			return t.out.Flush()
		}
		if err != nil {
			_ = t.out.Flush()
			return err
		}

		err = t.transcode(n)
		n.Wipe()
		if ferr := t.out.Flush(); err == nil {
			err = ferr
		}
		if err != nil {
			return err
		}

		if !t.cfg.Repeat || t.cfg.WholeInput {
			return nil
		}
	}
}

func (t *Transcoder) read() (*Node, error) {
	if t.cfg.WholeInput {
		return t.scanner.ScanToEOF()
	}
	return t.scanner.Next()
}

func (t *Transcoder) transcode(n *Node) (err error) {
	if t.filter != nil {
		var m *Node
		if m, err = t.filter(n); err != nil {
			return
		}
		if m != nil && m != n {
			defer m.Wipe()
			n = m
		}
	}

	opts := t.cfg.PrintOptions()
	for _, mode := range t.cfg.Modes() {
		if t.cfg.Prompt {
			_, _ = io.WriteString(t.prompt, labels[mode])
			if err = t.out.WriteByte('\n'); err != nil {
				return
			}
		}

		switch mode {
		case ModeCanonical:
			err = WriteCanonical(t.out, n)
		case ModeBase64:
			err = WriteBase64(t.out, n, opts)
		case ModeAdvanced:
			err = WriteAdvanced(t.out, n, opts)
		}
		if err != nil {
			return
		}

		if !t.cfg.NoTrailingNewline {
			if err = t.out.WriteByte('\n'); err != nil {
				return
			}
		}
	}
	if t.cfg.Prompt && !t.cfg.NoTrailingNewline {
		err = t.out.WriteByte('\n')
	}
	return
}
