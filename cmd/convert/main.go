// cmd/convert/main.go

// convert migrates an inventory file between the supported formats
// (JSON, YAML, CSV, delimited TXT), optionally snapshotting the source
// first. Records that fail validation are reported and skipped, matching
// the store's partial-success load policy.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mcanavera/stockroom/internal/adapters/filestore"
	"github.com/mcanavera/stockroom/internal/core/ports"
	"github.com/mcanavera/stockroom/internal/pkg/config"
	"github.com/mcanavera/stockroom/internal/pkg/logger"
)

func main() {
	var (
		in         = flag.String("in", "", "source inventory file")
		out        = flag.String("out", "", "target inventory file")
		formatName = flag.String("format", "", "target format (json, yaml, csv, txt); inferred from -out when empty")
		snapshot   = flag.Bool("snapshot", false, "snapshot the source file before converting")
	)
	flag.Parse()

	slogger := logger.SetupLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: convert -in <file> -out <file> [-format json|yaml|csv|txt] [-snapshot]")
		os.Exit(2)
	}

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)

	format, err := ports.ParseFormat(*formatName)
	if err != nil {
		slogger.Error("invalid target format", slog.String("error", err.Error()))
		os.Exit(2)
	}

	store := filestore.New(filestore.Options{
		Delimiter:      cfg.Storage.TXTDelimiter,
		IDPrefix:       cfg.Storage.IDPrefix,
		BackupEnabled:  cfg.Backup.Enabled,
		SnapshotDir:    cfg.Backup.SnapshotDir,
		SnapshotLayout: cfg.Backup.TimestampLayout,
	}, slogger)

	ctx := context.Background()

	if *snapshot {
		snapPath, err := store.Snapshot(ctx, *in)
		if err != nil {
			slogger.Error("failed to snapshot source", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slogger.Info("source snapshotted", slog.String("snapshot", snapPath))
	}

	report, err := store.Convert(ctx, *in, *out, format)
	if err != nil {
		slogger.Error("conversion failed",
			slog.String("in", *in),
			slog.String("out", *out),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, skipped := range report.Skipped {
		slogger.Warn("record skipped",
			slog.Int("index", skipped.Index),
			slog.String("reason", skipped.Reason))
	}

	slogger.Info("conversion complete",
		slog.String("in", *in),
		slog.String("out", *out),
		slog.Int("skipped", len(report.Skipped)))
}
