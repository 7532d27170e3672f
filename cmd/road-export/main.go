package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/natevvv/osm-road-export/internal/config"
	"github.com/natevvv/osm-road-export/internal/export"
	"github.com/natevvv/osm-road-export/internal/geojson"
	"github.com/natevvv/osm-road-export/internal/logging"
	"github.com/natevvv/osm-road-export/internal/pbf"
	"github.com/natevvv/osm-road-export/pkg/pipeline"
	"github.com/natevvv/osm-road-export/pkg/road"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout io.Writer) int {
	cfg, err := config.Load("road-export", args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stdout, "ERROR: %v\n", err)
		return 2
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	start := time.Now()
	features, err := readFeatures(cfg.Input)
	switch {
	case errors.Is(err, geojson.ErrInputNotFound), errors.Is(err, pbf.ErrInputNotFound):
		fmt.Fprintf(stdout, "ERROR: File %s not found.\n", cfg.Input.Path)
		return 1
	case errors.Is(err, geojson.ErrMalformedInput), errors.Is(err, pbf.ErrMalformedInput):
		fmt.Fprintf(stdout, "ERROR: File %s is not a valid %s file.\n", cfg.Input.Path, cfg.Input.ResolvedFormat())
		slog.Error("malformed input", "input", cfg.Input.Path, "error", err)
		return 1
	case err != nil:
		fmt.Fprintf(stdout, "ERROR: %v\n", err)
		return 1
	}
	slog.Debug("read features", "input", cfg.Input.Path, "features", len(features), "duration", time.Since(start))

	result, err := pipeline.Run(ctx, features, pipeline.Options{Workers: cfg.Pipeline.Workers})
	if err != nil {
		fmt.Fprintf(stdout, "ERROR: %v\n", err)
		return 1
	}

	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		fmt.Fprintf(stdout, "ERROR: %v\n", err)
		return 2
	}
	if err := export.ExportFile(cfg.Output.Path, format, result.Records); err != nil {
		fmt.Fprintf(stdout, "ERROR: %v\n", err)
		return 1
	}

	slog.Info("export finished",
		"input", cfg.Input.Path,
		"output", cfg.Output.Path,
		"features", result.Stats.Features,
		"accepted", result.Stats.Accepted(),
		"rejected_not_drivable", result.Stats.Count(road.RejectedClassification),
		"rejected_unnamed", result.Stats.Count(road.RejectedName),
		"rejected_not_line", result.Stats.Count(road.RejectedGeometry),
		"duration", time.Since(start),
	)
	fmt.Fprintf(stdout, "Saved %d road segments to %s\n", result.Count(), cfg.Output.Path)
	return 0
}

func readFeatures(input config.InputConfig) ([]road.Feature, error) {
	if input.ResolvedFormat() == "pbf" {
		return pbf.ReadFile(input.Path)
	}
	return geojson.ReadFile(input.Path)
}
