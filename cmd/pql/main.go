package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/pql/internal/runner"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`

	Run     string `short:"r" help:"PQL program to execute" required:""`
	Trials  int    `short:"t" help:"Successful samples per statement" default:"0"`
	Workers int    `short:"w" help:"Parallel workers (0 = all cores)" default:"0"`
	Seed    int64  `help:"RNG seed for reproducible results (0 = random)"`
	Config  string `short:"c" help:"HCL settings file" type:"existingfile"`
	Verbose bool   `help:"Verbose logging"`
}

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("14"))

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pql"),
		kong.Description("Poker Query Language engine: evaluate probabilistic poker queries by Monte-Carlo simulation"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if cli.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	settings := runner.DefaultSettings()
	if cli.Config != "" {
		var err error
		settings, err = runner.LoadSettings(cli.Config)
		if err != nil {
			logger.Error("failed to load config", "err", err)
			ctx.Exit(2)
		}
	}

	// Flags override the settings file.
	if cli.Trials > 0 {
		settings.Trials = cli.Trials
	}
	if cli.Workers > 0 {
		settings.Workers = cli.Workers
	}
	if cli.Seed != 0 {
		settings.Seed = cli.Seed
	}

	opts := settings.Apply()
	if cli.Verbose {
		opts = append(opts, runner.WithProgress(func(done, total int) {
			logger.Debug("sampling", "done", done, "total", total)
		}))
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cli.Verbose {
		fmt.Fprintln(os.Stderr, headerStyle.Render(fmt.Sprintf("pql %s", version)))
	}

	start := time.Now()
	r := runner.New(cli.Run, os.Stdout, os.Stderr, opts...)
	err := r.Run(runCtx)

	logger.Debug("finished", "elapsed", time.Since(start))

	if err != nil {
		ctx.Exit(1)
	}
}
