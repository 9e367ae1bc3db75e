// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Scene generation
	Scenes     int
	BatchSize  int
	ImageSize  int
	MaxSources int
	Seed       int64

	// Strategies
	Strategies string
	ConfigFile string

	// Performance
	Threads int

	// Output
	Output  string
	Sort    bool
	Header  bool // true unless --no-header
	Verbose bool

	Version bool
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(flag.CommandLine, nil) }

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Scene generation
	fs.IntVar(&opt.Scenes, "scenes", 8, "number of scene batches to generate [8]")
	fs.IntVar(&opt.BatchSize, "batch-size", 4, "examples per batch [4]")
	fs.IntVar(&opt.ImageSize, "image-size", 64, "stamp side length in pixels [64]")
	fs.IntVar(&opt.MaxSources, "max-sources", 10, "catalog capacity per example [10]")
	fs.Int64Var(&opt.Seed, "seed", 0, "random seed for scene generation [0]")

	// Strategies
	fs.StringVar(&opt.Strategies, "strategies", "peaks", "comma-separated strategy names [peaks]")
	fs.StringVar(&opt.ConfigFile, "config", "", "TOML strategy file (overrides --strategies)")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	// Output
	fs.StringVar(&opt.Output, "output", "text", "output format: text | json | jsonl [text]")
	fs.BoolVar(&opt.Sort, "sort", false, "sort outputs for determinism (BatchID,Strategy,Example,Source) [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")
	fs.BoolVar(&opt.Verbose, "verbose", false, "log per-strategy timings to stderr [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader

	// Validation
	if opt.Scenes <= 0 {
		return opt, errors.New("--scenes must be ≥ 1")
	}
	if opt.BatchSize <= 0 {
		return opt, errors.New("--batch-size must be ≥ 1")
	}
	if opt.ImageSize < 16 {
		return opt, errors.New("--image-size must be ≥ 16")
	}
	if opt.MaxSources <= 0 {
		return opt, errors.New("--max-sources must be ≥ 1")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.ConfigFile == "" && opt.Strategies == "" {
		return opt, errors.New("provide --strategies or --config")
	}
	if opt.Output != "text" && opt.Output != "json" && opt.Output != "jsonl" {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	return opt, nil
}
