package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/video-knowledge/internal/extractor"
	"github.com/nguyentantai21042004/video-knowledge/internal/llm"
	"github.com/nguyentantai21042004/video-knowledge/internal/processor"
	"github.com/nguyentantai21042004/video-knowledge/internal/qa"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <video> <question>",
	Short: "Answer a question from a processed video's index",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, processor.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		if a.indexer == nil {
			return errors.New("ask: index.enabled is false in config")
		}

		gen, err := llm.FromConfig(ctx, a.cfg.GenAI, *a.cfg.GenAI.QATemperature, a.log)
		if err != nil {
			return fmt.Errorf("create generator: %w", err)
		}

		answerer := qa.New(a.indexer, gen, a.log, a.cfg.Index.TopK)
		answer, err := answerer.Ask(ctx, extractor.BaseName(args[0]), strings.Join(args[1:], " "))
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), answer)
		return nil
	},
}
