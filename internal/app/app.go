// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"

	"github.com/rs/zerolog"

	"deblend-core/deblender"
	"deblend/internal/cli"
	"deblend/internal/common"
	"deblend/internal/config"
	"deblend/internal/generator"
	"deblend/internal/output"
	"deblend/internal/simulate"
	"deblend/internal/version"
	"deblend/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("deblend")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "deblend version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	log := zerolog.Nop()
	if opts.Verbose {
		log = zerolog.New(zerolog.ConsoleWriter{Out: stderr}).With().Timestamp().Logger()
	}

	sv := simulate.DefaultSurvey()

	var strategies []deblender.Strategy
	if opts.ConfigFile != "" {
		f, err := config.Load(opts.ConfigFile)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		strategies, err = f.Build(sv, opts.MaxSources)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
	} else {
		for _, name := range common.SplitList(opts.Strategies) {
			s, err := deblender.New(name, deblender.Params{
				MaxSources: opts.MaxSources,
				SkyLevel:   sv.MeanSkyLevel(),
				Reduce:     deblender.Mean(),
			})
			if err != nil {
				_, _ = fmt.Fprintln(stderr, err)
				return 2
			}
			strategies = append(strategies, s)
		}
	}

	thr := opts.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	sim := simulate.New(simulate.Config{
		BatchSize: opts.BatchSize,
		ImageSize: opts.ImageSize,
		Batches:   opts.Scenes,
		Seed:      opts.Seed,
		Survey:    sv,
	})

	gen, err := generator.New(sim, strategies,
		generator.WithWorkers(thr),
		generator.WithLogger(log),
	)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	rowCh, writeErr := writers.StartCatalogWriter(outw, opts.Output, opts.Sort, opts.Header, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var runErr error
loop:
	for {
		b, results, err := gen.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			runErr = err
			break
		}
		for _, name := range gen.Names() {
			for _, row := range output.ToAPIRows(b.ID, name, results[name]) {
				select {
				case rowCh <- row:
				case <-ctx.Done():
					runErr = ctx.Err()
					break loop
				}
			}
		}
	}

	close(rowCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		_, _ = fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, runErr)
		return 3
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
