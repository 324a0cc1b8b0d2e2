package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/asanchez-dev/bowbench/internal/bow"
	"github.com/asanchez-dev/bowbench/internal/corpus"
	"github.com/asanchez-dev/bowbench/internal/experiment"
	"github.com/asanchez-dev/bowbench/pkg/config"
	"github.com/asanchez-dev/bowbench/pkg/health"
	"github.com/asanchez-dev/bowbench/pkg/logger"
	"github.com/asanchez-dev/bowbench/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	workers := flag.Int("workers", 0, "requested worker count (group size comes from config when they differ)")
	listPath := flag.String("list", "", "path to the newline-delimited document list")
	trials := flag.Int("trials", 0, "number of trials to average over")
	outputDir := flag.String("output", "", "directory for the output CSV files")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *listPath != "" {
		cfg.Corpus.ListPath = *listPath
	}
	if *trials > 0 {
		cfg.Run.Trials = *trials
	}
	if *outputDir != "" {
		cfg.Run.OutputDir = *outputDir
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting bowbench",
		"workers", cfg.Run.Workers,
		"trials", cfg.Run.Trials,
		"list", cfg.Corpus.ListPath,
	)

	if cfg.Corpus.ListPath == "" {
		slog.Error("no document list given, use -list or corpus.listPath")
		os.Exit(1)
	}

	names, err := corpus.LoadList(cfg.Corpus.ListPath)
	if err != nil {
		slog.Error("failed to load document list", "error", err)
		os.Exit(1)
	}
	docs := corpus.Resolve(cfg.Corpus.ListPath, names, cfg.Corpus.BooksSubdir)
	if len(docs) == 0 {
		slog.Error("no document in the list could be resolved", "list", cfg.Corpus.ListPath)
		os.Exit(1)
	}
	slog.Info("documents detected", "count", len(docs))
	for _, doc := range docs {
		slog.Debug("document resolved", "index", doc.Index, "name", doc.Name, "path", doc.Path)
	}

	m := metrics.New()
	if cfg.Metrics.Enabled {
		checker := health.NewChecker()
		checker.Register("corpus", func(ctx context.Context) health.ComponentHealth {
			return health.ComponentHealth{
				Status:  health.StatusUp,
				Message: fmt.Sprintf("%d documents resolved", len(docs)),
			}
		})
		checker.Register("workers", func(ctx context.Context) health.ComponentHealth {
			return health.ComponentHealth{
				Status:  health.StatusUp,
				Message: fmt.Sprintf("group size %d", cfg.Run.Workers),
			}
		})
		shutdown := metrics.StartServer(cfg.Metrics.Port, m, checker)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			shutdown(ctx)
		}()
	}

	runner := experiment.New(experiment.Config{
		Workers:          cfg.Run.Workers,
		RequestedWorkers: *workers,
		Trials:           cfg.Run.Trials,
		BaselinePath:     cfg.Run.BaselinePath(),
		DistributedPath:  cfg.Run.DistributedPath(),
	}, bow.NewPipeline(corpus.ReadFile, m), m)

	result, err := runner.Run(context.Background(), docs)
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}

	fmt.Println("==== Summary ====")
	fmt.Printf("Workers:                 %d\n", result.Workers)
	fmt.Printf("Trials:                  %d\n", result.Trials)
	fmt.Printf("Baseline average:        %s\n", result.BaselineAvg)
	fmt.Printf("Distributed average:     %s\n", result.DistributedAvg)
	fmt.Printf("Estimated speedup:       %.2f\n", result.Speedup)
}
