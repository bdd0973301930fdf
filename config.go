package sexp

import (
	"errors"
	"fmt"
)

// DefaultWidth is the default max output column.
const DefaultWidth = 75

// Config selects what a Transcoder reads and writes. When no output form is
// selected, canonical output is produced.
type Config struct {
	// Width is the max output column for base64 and advanced output, 0 for
	// unbounded.
	Width int `toml:"width"`

	Canonical bool `toml:"canonical"`
	Base64    bool `toml:"base64"`
	Advanced  bool `toml:"advanced"`

	NoIndent          bool `toml:"no_indent"`
	NoTrailingNewline bool `toml:"no_trailing_newline"`

	// Repeat keeps reading top-level objects until end of input.
	Repeat bool `toml:"repeat"`
	// WholeInput treats the entire input as one string.
	WholeInput bool `toml:"whole_input"`
	// Prompt writes input prompts and output labels to the prompt writer.
	Prompt bool `toml:"prompt"`

	MaxDepth int `toml:"max_depth"`
}

func DefaultConfig() Config {
	return Config{
		Width:    DefaultWidth,
		Repeat:   true,
		MaxDepth: DefaultMaxDepth,
	}
}

var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects settings no transcoder can honour.
func (c Config) Validate() error {
	if c.Width < 0 {
		return fmt.Errorf("%w: width %d is negative", ErrInvalidConfig, c.Width)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth %d is negative", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}

// Modes returns the selected output forms in output order.
func (c Config) Modes() []Mode {
	var modes []Mode
	if c.Canonical {
		modes = append(modes, ModeCanonical)
	}
	if c.Base64 {
		modes = append(modes, ModeBase64)
	}
	if c.Advanced {
		modes = append(modes, ModeAdvanced)
	}
	if len(modes) == 0 {
		modes = append(modes, ModeCanonical)
	}
	return modes
}

// PrintOptions returns the line-breaking options for output.
func (c Config) PrintOptions() PrintOptions {
	return PrintOptions{Width: c.Width, NoIndent: c.NoIndent}
}
