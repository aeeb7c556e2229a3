package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kolkov/plusc"
)

// job is one input file and where its translation goes.
type job struct {
	input  string // path, or "-" for stdin
	output string // path, or "" for stdout
}

// batch translates jobs with a bounded number of workers.
type batch struct {
	config  func(filename string) *plusc.Config
	workers int
	dumpAST bool
	logger  *slog.Logger

	stdoutMu sync.Mutex
}

// run translates every job. Syntax errors are reported on stderr and
// counted; the returned error is reserved for failures that stop the batch
// (cancellation).
func (b *batch) run(ctx context.Context, jobs []job) (failed int, err error) {
	results := make([]error, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, b.workers))

	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = b.translate(j)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	for i, err := range results {
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "plusc: %s: %v\n", displayName(jobs[i].input), err)
		}
	}
	return failed, nil
}

// translate reads, translates and writes a single job.
func (b *batch) translate(j job) error {
	src, err := readInput(j.input)
	if err != nil {
		return err
	}

	prog, err := plusc.CompileWithConfig(src, b.config(displayName(j.input)))
	if err != nil {
		return err
	}

	if b.dumpAST {
		b.stdoutMu.Lock()
		defer b.stdoutMu.Unlock()
		_, err := fmt.Fprint(os.Stderr, prog.Dump())
		return err
	}

	if j.output == "" {
		b.stdoutMu.Lock()
		defer b.stdoutMu.Unlock()
	}
	if err := writeOutput(j.output, prog.Generate()); err != nil {
		return err
	}

	b.logger.Debug("translated",
		slog.String("input", displayName(j.input)),
		slog.String("output", displayName(j.output)),
		slog.Int("statements", prog.Len()))
	return nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("cannot read stdin: %w", err)
		}
		return string(content), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", path, err)
	}
	return string(content), nil
}

// writeOutput writes text to path, or to stdout if path is empty.
func writeOutput(path, text string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}

// replaceExt swaps the extension of path for ext.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func displayName(path string) string {
	switch path {
	case "-":
		return "<stdin>"
	case "":
		return "<stdout>"
	default:
		return path
	}
}
