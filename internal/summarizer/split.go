package summarizer

import "strings"

const (
	SummaryMarker       = "### SUMMARY"
	DocumentationMarker = "### FULL DOCUMENTATION"

	// SplitFailedSummary replaces the summary when the fusion response does
	// not carry both markers in order.
	SplitFailedSummary = "Error splitting summary."
)

// Split separates a fusion response into the text between the two markers
// and the text after the second one, both trimmed. Only the first occurrence
// of each marker counts, and the documentation marker is searched after the
// summary marker. When that fails, ok is false, summary is
// SplitFailedSummary and doc is the untouched response.
func Split(raw string) (summary, doc string, ok bool) {
	_, rest, found := strings.Cut(raw, SummaryMarker)
	if !found {
		return SplitFailedSummary, raw, false
	}

	summary, doc, found = strings.Cut(rest, DocumentationMarker)
	if !found {
		return SplitFailedSummary, raw, false
	}

	return strings.TrimSpace(summary), strings.TrimSpace(doc), true
}
