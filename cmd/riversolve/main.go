package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/ehrlich-b/riversolve/internal/handrange"
	"github.com/ehrlich-b/riversolve/internal/solver"
	"github.com/ehrlich-b/riversolve/internal/tree"
	"github.com/ehrlich-b/riversolve/ioformat"
)

// CLI is the riversolve command line: a 12-line input file in, a JSON node
// record array out.
type CLI struct {
	InputFile  string `arg:"" help:"Path to the 12-line input file."`
	OutputFile string `arg:"" help:"Path to write the JSON node records to."`

	Workers    int    `help:"Concurrency cap for per-node EV computation (0 = GOMAXPROCS)." default:"0"`
	LogLevel   string `help:"Set the log level." enum:"debug,info,warn,error" default:"info"`
	Iterations int    `help:"Override the input file's maximum-iterations line (0 = use the file's value)." default:"0"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	level, err := log.ParseLevel(cli.LogLevel)
	if err != nil {
		ctx.FatalIfErrorf(fmt.Errorf("parsing log level: %w", err))
	}
	logger.SetLevel(level)

	// Precondition violations inside the engine are programmer errors: the
	// engine panics, and this is the engine's single point of recovery.
	defer func() {
		if r := recover(); r != nil {
			logger.Fatal("solver precondition violated", "panic", r)
		}
	}()

	if err := run(cli, logger); err != nil {
		logger.Fatal("riversolve failed", "error", err)
	}
}

func run(cli CLI, logger *log.Logger) error {
	in, err := ioformat.ReadInputFile(cli.InputFile)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	oopRange := handrange.New(in.OOPRange, in.Board)
	ipRange := handrange.New(in.IPRange, in.Board)

	builder := tree.NewBuilder(in.Config)
	t, err := builder.Build(in.PotSize, in.Stack, oopRange, ipRange)
	if err != nil {
		return fmt.Errorf("building tree: %w", err)
	}
	logger.Info("tree built", "nodes", len(t.Nodes))

	maxIterations := in.MaxIterations
	if cli.Iterations > 0 {
		maxIterations = cli.Iterations
	}

	eng := solver.NewEngine(t, in.Board, maxIterations, in.TargetExploitability)
	eng.Workers = cli.Workers
	eng.Logger = logger

	start := time.Now()
	if err := eng.Run(context.Background()); err != nil {
		return fmt.Errorf("running solver: %w", err)
	}
	logger.Info("solver converged", "iterations", maxIterations, "elapsed", time.Since(start))

	records := eng.Export()
	if err := ioformat.WriteOutputFile(cli.OutputFile, records); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	logger.Info("output written", "path", cli.OutputFile, "records", len(records))

	return nil
}
