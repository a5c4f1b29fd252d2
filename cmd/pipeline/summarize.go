package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/video-knowledge/internal/processor"
	"github.com/nguyentantai21042004/video-knowledge/internal/summarizer"
	"github.com/spf13/cobra"
)

var (
	summarizeOCR        string
	summarizeTranscript string
	summarizeName       string
	summarizeForce      bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize already extracted OCR text and transcript",
	Long: `Runs the three summarization stages on an OCR text file and a transcript
file without touching any video. Results are written to paths.output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ocr, err := os.ReadFile(summarizeOCR)
		if err != nil {
			return fmt.Errorf("read ocr text: %w", err)
		}
		transcript, err := os.ReadFile(summarizeTranscript)
		if err != nil {
			return fmt.Errorf("read transcript: %w", err)
		}

		name := summarizeName
		if name == "" {
			name = nameFromTranscript(summarizeTranscript)
		}

		a, err := newApp(ctx, processor.Options{Force: summarizeForce})
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.processor.Summarize(ctx, name, summarizer.Input{
			OCRText:        string(ocr),
			TranscriptText: string(transcript),
		})
		if err != nil {
			return err
		}

		if res.Summary == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Summary already exists: %s\n", a.processor.Targets(name).SummaryPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Summary)
		return nil
	},
}

// nameFromTranscript derives a result name from "<name>_transcription.txt".
func nameFromTranscript(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.TrimSuffix(base, "_transcription")
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeOCR, "ocr", "", "file holding the deduplicated OCR text")
	summarizeCmd.Flags().StringVar(&summarizeTranscript, "transcript", "", "file holding the transcript")
	summarizeCmd.Flags().StringVar(&summarizeName, "name", "", "result name (defaults to the transcript file name)")
	summarizeCmd.Flags().BoolVar(&summarizeForce, "force", false, "overwrite existing results")
	_ = summarizeCmd.MarkFlagRequired("ocr")
	_ = summarizeCmd.MarkFlagRequired("transcript")
}
