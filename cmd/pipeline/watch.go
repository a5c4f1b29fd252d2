package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/video-knowledge/internal/processor"
	"github.com/nguyentantai21042004/video-knowledge/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	watchScan       bool
	watchExtensions []string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process every video dropped into paths.input",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, processor.Options{Archive: true})
		if err != nil {
			return err
		}
		defer a.Close()

		w, err := watcher.New(a.cfg.Paths.Input, a.processor.Process, a.log, watcher.Options{
			MaxConcurrent: a.cfg.Performance.MaxConcurrent,
			Extensions:    watchExtensions,
			ScanExisting:  watchScan,
		})
		if err != nil {
			return err
		}
		defer w.Stop()

		a.log.Info(ctx, "========================================")
		a.log.Info(ctx, "Video Pipeline is ready!")
		a.log.Info(ctx, "Monitoring: %s", a.cfg.Paths.Input)
		a.log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
		a.log.Info(ctx, "Concurrent: %d videos at once", a.cfg.Performance.MaxConcurrent)
		a.log.Info(ctx, "Press Ctrl+C to stop")
		a.log.Info(ctx, "========================================")

		err = w.Start(ctx)
		if errors.Is(err, context.Canceled) {
			a.log.Info(context.Background(), "Video Pipeline stopped")
			return nil
		}
		return err
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchScan, "scan", true, "process videos already in the input folder on start")
	watchCmd.Flags().StringSliceVar(&watchExtensions, "ext", nil, "video extensions to pick up (default: common video formats)")
}
