// Command sexp converts S-expressions between canonical, base64 and advanced
// transport forms.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alttpo/sexp/v2"
	"github.com/alttpo/sexp/v2/internal/config"
	"github.com/alttpo/sexp/v2/internal/logging"
	"github.com/alttpo/sexp/v2/internal/terminal"
	"github.com/alttpo/sexp/v2/lua"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, nil))
}

type options struct {
	configPath string
	inPath     string
	outPath    string
	luaPath    string
	logLevel   string
	cfg        sexp.Config
	quiet      bool
	verbose    bool
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "sexp: S-expression transcoder")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  sexp [-a] [-b] [-c] [-w <width>] [-i <in>] [-o <out>] [-l] [-p] [-s] [-x] [-config <file>] [-lua <script>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - with no output form selected, canonical output is written")
	fmt.Fprintln(w, "  - -p defaults to on when stdin and stderr are terminals")
	fmt.Fprintln(w, "  - a Lua script may define filter(obj) to rewrite each object")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
}

// run is main without the process; detector may be nil.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer, detector terminal.InteractiveDetector) int {
	var o options
	fs := flag.NewFlagSet("sexp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(stderr)
		fs.PrintDefaults()
	}

	def := sexp.DefaultConfig()
	fs.StringVar(&o.configPath, "config", "", "TOML configuration file")
	fs.BoolVar(&o.cfg.Advanced, "a", false, "advanced transport output")
	fs.BoolVar(&o.cfg.Base64, "b", false, "base64 (of canonical) output")
	fs.BoolVar(&o.cfg.Canonical, "c", false, "canonical output")
	fs.StringVar(&o.inPath, "i", "", "input file (default stdin)")
	fs.StringVar(&o.outPath, "o", "", "output file (default stdout)")
	fs.BoolVar(&o.cfg.NoTrailingNewline, "l", false, "suppress newline after each output")
	fs.BoolVar(&o.cfg.NoIndent, "no-indent", false, "do not indent advanced output")
	fs.BoolVar(&o.cfg.Prompt, "p", false, "prompt for input and label outputs")
	fs.BoolVar(&o.cfg.WholeInput, "s", false, "treat the whole input as one string")
	fs.IntVar(&o.cfg.Width, "w", def.Width, "max output column, 0 for unbounded")
	fs.BoolVar(&o.cfg.Repeat, "x", def.Repeat, "transcode objects until end of input")
	fs.IntVar(&o.cfg.MaxDepth, "max-depth", def.MaxDepth, "max nesting depth, 0 for unlimited")
	fs.StringVar(&o.luaPath, "lua", "", "Lua script defining filter(obj)")
	fs.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.BoolVar(&o.quiet, "q", false, "only log errors")
	fs.BoolVar(&o.verbose, "v", false, "log debug messages")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(stderr, "unexpected argument: %s\n\n", fs.Arg(0))
		fs.Usage()
		return 2
	}

	file := config.Default()
	if o.configPath != "" {
		var err error
		file, err = config.Load(o.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "config: %v\n", err)
			return 2
		}
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	cfg := merge(file, o, set)

	level, err := logging.ParseLevel(file.Log.Level)
	if set["log-level"] {
		level, err = logging.ParseLevel(o.logLevel)
	}
	if err != nil {
		fmt.Fprintf(stderr, "log level: %v\n", err)
		return 2
	}
	if o.quiet {
		level = slog.LevelError
	}
	if o.verbose {
		level = slog.LevelDebug
	}
	logger, err := logging.New(logging.Options{Level: level, Writer: stderr})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return 2
	}

	in := stdin
	if o.inPath != "" {
		f, err := os.Open(o.inPath)
		if err != nil {
			logger.Error("can't open input file", "path", o.inPath, "error", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	out := stdout
	if o.outPath != "" {
		f, err := os.Create(o.outPath)
		if err != nil {
			logger.Error("can't open output file", "path", o.outPath, "error", err)
			return 1
		}
		defer f.Close()
		out = f
	}

	if !set["p"] && !cfg.Prompt && o.inPath == "" {
		if detector == nil {
			detector = terminal.NewInteractiveDetector(terminal.DetectorOptions{})
		}
		cfg.Prompt = detector.IsInteractive()
	}

	topts := []sexp.TranscoderOption{
		sexp.WithPromptWriter(stderr),
		sexp.WithWarnings(logging.WarningHandler(logger)),
	}

	luaPath := file.Lua.Script
	if set["lua"] {
		luaPath = o.luaPath
	}
	if luaPath != "" {
		filter, err := lua.NewFilter(luaPath)
		if err != nil {
			logger.Error("can't load Lua filter", "path", luaPath, "error", err)
			return 1
		}
		defer filter.Close()
		topts = append(topts, sexp.WithFilter(filter.Apply))
	}

	logger.Debug("transcoding", "modes", fmt.Sprint(cfg.Modes()), "width", cfg.Width, "repeat", cfg.Repeat)
	if err := sexp.NewTranscoder(in, out, cfg, topts...).Run(); err != nil {
		logging.LogError(logger, "transcode failed", err)
		return 1
	}
	return 0
}

// merge applies explicitly set flags over the configuration file.
func merge(file config.File, o options, set map[string]bool) sexp.Config {
	cfg := file.Transcode
	if set["a"] {
		cfg.Advanced = o.cfg.Advanced
	}
	if set["b"] {
		cfg.Base64 = o.cfg.Base64
	}
	if set["c"] {
		cfg.Canonical = o.cfg.Canonical
	}
	if set["l"] {
		cfg.NoTrailingNewline = o.cfg.NoTrailingNewline
	}
	if set["no-indent"] {
		cfg.NoIndent = o.cfg.NoIndent
	}
	if set["p"] {
		cfg.Prompt = o.cfg.Prompt
	}
	if set["s"] {
		cfg.WholeInput = o.cfg.WholeInput
	}
	if set["w"] {
		cfg.Width = o.cfg.Width
	}
	if set["x"] {
		cfg.Repeat = o.cfg.Repeat
	}
	if set["max-depth"] {
		cfg.MaxDepth = o.cfg.MaxDepth
	}
	return cfg
}
