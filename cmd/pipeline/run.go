package main

import (
	"github.com/nguyentantai21042004/video-knowledge/internal/processor"
	"github.com/spf13/cobra"
)

var runOpts processor.Options

var runCmd = &cobra.Command{
	Use:   "run <video>",
	Short: "Process a single video end to end",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, runOpts)
		if err != nil {
			return err
		}
		defer a.Close()

		return a.processor.Process(ctx, args[0])
	},
}

func init() {
	runCmd.Flags().BoolVar(&runOpts.Force, "force", false, "redo extraction, summarization and indexing even if results exist")
	runCmd.Flags().BoolVar(&runOpts.Archive, "archive", false, "move the video to paths.archived when done")
}
