// Package frametext cleans the text read from sampled video frames before it
// reaches the summarizer.
package frametext

import "strings"

// Dedup returns the first occurrence of every distinct snippet, in input
// order. Snippets are compared byte for byte: a frame whose text changed by a
// single character is kept.
func Dedup(texts []string) []string {
	seen := make(map[string]struct{}, len(texts))
	unique := make([]string, 0, len(texts))

	for _, t := range texts {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}

	return unique
}

// Join concatenates snippets into the single OCR text handed to the
// summarizer, one snippet per line.
func Join(texts []string) string {
	return strings.Join(texts, "\n")
}
