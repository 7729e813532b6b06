// Command squeeze is the CLI entrypoint for the batch media compressor.
//
// It parses flags and env overrides, validates configuration, and either
// runs dependency diagnostics (--check) or the batch: scan, schedule up to
// --jobs concurrent compressions, and print the summary. Partial failures
// leave the exit code at 0; only setup errors are fatal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pressline/squeeze/internal/batch"
	"github.com/pressline/squeeze/internal/check"
	"github.com/pressline/squeeze/internal/compress"
	"github.com/pressline/squeeze/internal/config"
	"github.com/pressline/squeeze/internal/display"
	"github.com/pressline/squeeze/internal/logging"
	"github.com/pressline/squeeze/internal/scan"
	"github.com/pressline/squeeze/internal/term"
)

func main() {
	// 1. Load config: defaults, then .env overrides, then CLI flags.
	cfg := config.DefaultConfig()
	if err := config.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "squeeze: %v\n", err)
		os.Exit(1)
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "squeeze: %v\n", err)
		os.Exit(1)
	}
	if err := config.ParseFlags(&cfg, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "squeeze: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "squeeze: %v\n", err)
		os.Exit(1)
	}

	term.Configure(cfg.ColorMode)
	log := logging.New(&cfg)

	display.PrintBanner()

	// 2. If user asked for the system check, run it and exit successfully.
	if cfg.CheckOnly {
		check.RunCheck(log)
		os.Exit(0)
	}

	// 3. Fail fast when the external tooling for selected work is missing.
	if err := check.CheckDeps(cfg.Videos); err != nil {
		log.Error(err)
		os.Exit(1)
	}

	// SIGINT stops admission of new jobs; running encoders receive the
	// signal through their context. There is no per-job timeout.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// 4. Discover candidates. A malformed pattern was already rejected by
	// Validate; walk errors here are fatal setup errors.
	files, err := scan.Scan(scan.Options{
		Dir:       cfg.InputDir,
		Pattern:   cfg.Pattern,
		Videos:    cfg.Videos,
		Images:    cfg.Images,
		Recursive: cfg.Recursive,
	})
	if err != nil {
		log.Errorf("Scan failed: %v", err)
		os.Exit(1)
	}

	log.Infof("=== squeeze v%s ===", config.Version())
	log.Infof("In: %s (pattern %q)", cfg.InputDir, cfg.Pattern)
	log.Infof("Found %d files, compressing up to %d at a time", len(files), cfg.Jobs)
	if cfg.DryRun {
		log.Warn("DRY RUN")
	}

	// 5. Admit jobs (option snapshots frozen here) and run the batch.
	jobs := make([]batch.Job, 0, len(files))
	for _, f := range files {
		jobs = append(jobs, batch.NewJob(f, &cfg))
	}

	sched := batch.NewScheduler(cfg.Jobs, log,
		compress.NewVideo(log),
		compress.NewImage(log),
	)
	result, err := sched.Run(ctx, jobs)
	if err != nil {
		log.Errorf("Batch accounting error: %v", err)
		os.Exit(1)
	}

	display.PrintSummary(log, result, cfg.DryRun)
}
