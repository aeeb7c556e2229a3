// plusc - translator from the plusc expression language to C
//
// Uses manual argument parsing rather than the "flag" package,
// so flags may be glued to their argument (-oout.c, -j4).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/kolkov/plusc"
)

// version is set by GoReleaser at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shortUsage = "usage: plusc [-o out] [-t template] [-j N] [-d] [-w] [-v] [-e 'prog' | file ...]\n       plusc -i"
	longUsage  = `Input and output:
  file ...          translate each file ("-" is stdin); with several
                    files each result is written next to its input as .c
  -e prog           translate program text given on the command line
  -o file           write the result to file (single input only)
  -t file           read the output template from file; it must contain
                    the <<!statements>> placeholder exactly once

Modes:
  -i                interactive prompt
  -w                watch the input files and translate again on change
  -j N              translate up to N files concurrently (default: 1)

Debugging arguments:
  -d                print parsed AST to stderr and exit
  -v                verbose (debug) logging to stderr

Other:
  -h, --help        show this help message
  -version          show plusc version and exit
`
)

// options holds the parsed command line.
type options struct {
	inputs      []string
	program     string // -e text
	hasProgram  bool
	output      string
	template    string
	jobs        int
	dumpAST     bool
	watch       bool
	interactive bool
	verbose     bool
}

//nolint:gocyclo // CLI argument parsing is inherently branchy
func parseArgs(args []string) options {
	opts := options{jobs: 1}

	needArg := func(i int, flag string) string {
		if i+1 >= len(args) {
			usageExitf("flag needs an argument: %s", flag)
		}
		return args[i+1]
	}

	var i int
	for i = 0; i < len(args); i++ {
		// Stop on explicit end of args or first arg not prefixed with "-"
		arg := args[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "-e":
			opts.program = needArg(i, arg)
			opts.hasProgram = true
			i++
		case "-o":
			opts.output = needArg(i, arg)
			i++
		case "-t":
			opts.template = needArg(i, arg)
			i++
		case "-j":
			opts.jobs = parseJobs(needArg(i, arg))
			i++
		case "-d":
			opts.dumpAST = true
		case "-w":
			opts.watch = true
		case "-i":
			opts.interactive = true
		case "-v":
			opts.verbose = true
		case "-h", "--help":
			fmt.Printf("plusc %s - expression language to C translator\n\n%s\n\n%s", version, shortUsage, longUsage)
			os.Exit(0)
		case "-version", "--version":
			fmt.Printf("plusc version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
			os.Exit(0)
		default:
			// Handle flags with no space: -oout.c, -ttmpl.c, -j4
			switch {
			case strings.HasPrefix(arg, "-o"):
				opts.output = arg[2:]
			case strings.HasPrefix(arg, "-t"):
				opts.template = arg[2:]
			case strings.HasPrefix(arg, "-j"):
				opts.jobs = parseJobs(arg[2:])
			default:
				usageExitf("flag provided but not defined: %s", arg)
			}
		}
	}

	opts.inputs = args[i:]
	return opts
}

func parseJobs(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		usageExitf("invalid number of jobs: %s", s)
	}
	return n
}

func main() {
	opts := parseArgs(os.Args[1:])

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	template := ""
	if opts.template != "" {
		content, err := os.ReadFile(opts.template)
		if err != nil {
			errorExitf("cannot read template %s: %v", opts.template, err)
		}
		template = string(content)
	}

	if opts.interactive {
		os.Exit(runREPL(logger))
	}

	switch {
	case opts.hasProgram && len(opts.inputs) > 0:
		usageExitf("-e cannot be combined with input files")
	case !opts.hasProgram && len(opts.inputs) == 0:
		usageExitf(shortUsage)
	case opts.output != "" && len(opts.inputs) > 1:
		usageExitf("-o requires a single input")
	case opts.watch && (opts.hasProgram || contains(opts.inputs, "-")):
		usageExitf("-w needs input files")
	}

	newConfig := func(filename string) *plusc.Config {
		return &plusc.Config{Filename: filename, Template: template, Logger: logger}
	}

	if opts.hasProgram {
		prog, err := plusc.CompileWithConfig(opts.program, newConfig(""))
		if err != nil {
			errorExit(err)
		}
		if opts.dumpAST {
			fmt.Fprint(os.Stderr, prog.Dump())
			os.Exit(0)
		}
		if err := writeOutput(opts.output, prog.Generate()); err != nil {
			errorExit(err)
		}
		return
	}

	jobs := make([]job, len(opts.inputs))
	for i, in := range opts.inputs {
		jobs[i] = job{input: in, output: outputPath(in, opts.output, len(opts.inputs))}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := &batch{
		config:  newConfig,
		workers: opts.jobs,
		dumpAST: opts.dumpAST,
		logger:  logger,
	}
	failed, err := b.run(ctx, jobs)
	if err != nil {
		errorExit(err)
	}
	if opts.dumpAST {
		os.Exit(0)
	}

	if opts.watch {
		if err := watch(ctx, b, jobs, logger); err != nil {
			errorExit(err)
		}
		return
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// outputPath picks where the result of input goes. The empty string
// means stdout.
func outputPath(input, output string, inputs int) string {
	switch {
	case output != "":
		return output
	case inputs == 1 || input == "-":
		return ""
	default:
		return replaceExt(input, ".c")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// errorExitf prints formatted error message and exits with code 1
func errorExitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "plusc: "+format+"\n", args...)
	os.Exit(1)
}

// errorExit prints error and exits with code 1
func errorExit(err error) {
	fmt.Fprintf(os.Stderr, "plusc: %v\n", err)
	os.Exit(1)
}

// usageExitf prints a usage problem and exits with code 2
func usageExitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "plusc: "+format+"\n", args...)
	os.Exit(2)
}
