package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/omriariav/pdf-to-md/internal/convert"
	"github.com/omriariav/pdf-to-md/internal/logging"
	"github.com/omriariav/pdf-to-md/internal/watch"
	"github.com/omriariav/pdf-to-md/pkg/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory and convert new PDFs as they arrive",
	Long: `Watch monitors the configured watch_directory and converts each new PDF
into the output directory. A file is picked up once it stops changing for
debounce_seconds; files are processed one at a time. Runs until
interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	set, err := loadSettings()
	if err != nil {
		return err
	}

	closeLog, err := logging.Setup(set)
	if err != nil {
		return err
	}
	defer closeLog()

	info, err := os.Stat(set.WatchDirectory)
	if err != nil {
		return fmt.Errorf("watch_directory %s: %w", set.WatchDirectory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch_directory %s is not a directory", set.WatchDirectory)
	}
	if err := os.MkdirAll(set.OutputDirectory, 0o755); err != nil {
		return fmt.Errorf("creating output_directory: %w", err)
	}

	conv, err := convert.New(set.ConversionMethod)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("watching for PDFs",
		"watch_dir", set.WatchDirectory,
		"output_dir", set.OutputDirectory,
		"method", conv.Name(),
		"log_file", set.LogFile,
		"debounce", set.Debounce(),
	)

	handler := func(path string) {
		slog.Info("converting", "source", path)
		outPath, status, err := convert.ConvertFile(conv, path, set, io.Discard)
		switch {
		case err != nil:
			slog.Error("conversion failed", "source", path, "error", err)
		case status == types.StatusSkipped:
			slog.Info("skipped", "source", path)
		default:
			slog.Info("converted", "source", path, "output", outPath)
		}
	}

	if err := watch.New(set.WatchDirectory, set.Debounce(), handler).Run(ctx); err != nil {
		return err
	}

	slog.Info("watcher stopped")
	return nil
}
