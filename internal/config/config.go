// Package config loads the command-line tool's TOML configuration file.
//
//	[transcode]
//	width = 72
//	advanced = true
//
//	[log]
//	level = "warn"
//
//	[lua]
//	script = "filter.lua"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/alttpo/sexp/v2"
	"github.com/pelletier/go-toml/v2"
)

var ErrInvalidConfigPath = errors.New("invalid config file path")

// File is the whole configuration file.
type File struct {
	Transcode sexp.Config `toml:"transcode"`
	Log       LogConfig   `toml:"log"`
	Lua       LuaConfig   `toml:"lua"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type LuaConfig struct {
	// Script is a Lua file defining filter(obj).
	Script string `toml:"script"`
}

// Default returns the settings used when no file is given.
func Default() File {
	return File{
		Transcode: sexp.DefaultConfig(),
		Log:       LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults.
func Load(path string) (File, error) {
	if path == "" {
		return File{}, ErrInvalidConfigPath
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(content)
}

// Parse decodes content over the defaults. Unknown keys are errors.
func Parse(content []byte) (File, error) {
	f := Default()
	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return File{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := f.Transcode.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}
