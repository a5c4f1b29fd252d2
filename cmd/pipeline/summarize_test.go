package main

import "testing"

func TestNameFromTranscript(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"data/work/lecture/lecture_transcription.txt", "lecture"},
		{"talk.txt", "talk"},
		{"/tmp/notes", "notes"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := nameFromTranscript(tt.path); got != tt.want {
				t.Errorf("nameFromTranscript(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
