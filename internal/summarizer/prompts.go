package summarizer

import "fmt"

// Stage names one text-generation step of the pipeline.
type Stage string

const (
	StageOCR        Stage = "ocr_summary"
	StageTranscript Stage = "transcript_documentation"
	StageFusion     Stage = "fusion"
)

const systemContext = `You are an AI system tasked with processing and summarizing technical video content, using two data sources:
- OCR text extracted from video frames, which may be incomplete, noisy, or unclear.
- Audio transcription text extracted from the video's spoken content, which is assumed to be cleaner and more reliable.

Your goals:
1. For the OCR text: extract only the most useful information, clearly mention any uncertainties or partial information.
2. For the transcription text: provide thorough, accurate, and clear full documentation.
3. Combine both sources intelligently, using transcription as the primary basis and enhancing it with OCR insights where OCR data is reliable.
4. Produce two output formats:
   - SUMMARY: A concise, clear summary of the combined information.
   - FULL DOCUMENTATION: A detailed document merging insights from both sources.`

const ocrInstruction = `The following OCR text is extracted from video frames and may be noisy or incomplete:
"""%s"""
Extract the most useful information, clearly highlight any unclear or partial content.
Produce a brief summarized output indicating uncertainty or gaps if any.`

const transcriptInstruction = `Here is a transcript of the video's spoken content:
"""%s"""
Provide a thorough, accurate, and clear full documentation of this transcription.
Your output should be detailed, precise, and faithfully represent the original content,
suitable for use as a reference document.`

const fusionInstruction = `You are given two sources of extracted video information:

[OCR Summary]
%s

[Transcript Documentation]
%s

1. Create a concise SUMMARY of the video based on both sources.
2. Then provide a comprehensive FULL DOCUMENTATION combining both.

Respond in this format:

` + SummaryMarker + `
<your summary>

` + DocumentationMarker + `
<your detailed documentation>`

// StagePrompt pairs a fixed role context with an instruction template. The
// template is filled from the pipeline state when the stage runs.
type StagePrompt struct {
	RoleContext string
	Instruction string
	fields      func(*PipelineState) []any
}

// Render fills the instruction with the state fields the stage depends on.
func (p StagePrompt) Render(s *PipelineState) string {
	return fmt.Sprintf(p.Instruction, p.fields(s)...)
}

type Prompts struct {
	OCR        StagePrompt
	Transcript StagePrompt
	Fusion     StagePrompt
}

func DefaultPrompts() Prompts {
	return Prompts{
		OCR: StagePrompt{
			RoleContext: systemContext,
			Instruction: ocrInstruction,
			fields:      func(s *PipelineState) []any { return []any{s.OCRText()} },
		},
		Transcript: StagePrompt{
			RoleContext: systemContext,
			Instruction: transcriptInstruction,
			fields:      func(s *PipelineState) []any { return []any{s.TranscriptText()} },
		},
		Fusion: StagePrompt{
			RoleContext: systemContext,
			Instruction: fusionInstruction,
			fields: func(s *PipelineState) []any {
				return []any{s.OCRSummary(), s.TranscriptDocumentation()}
			},
		},
	}
}
