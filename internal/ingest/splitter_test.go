package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "and separator",
			input: "Buy milk and call mom",
			want:  []string{"Buy milk", "Call mom"},
		},
		{
			name:  "filler prefix stripped",
			input: "todo: water the plants",
			want:  []string{"Water the plants"},
		},
		{
			name:  "spoken filler stripped",
			input: "I need to finish the report",
			want:  []string{"Finish the report"},
		},
		{
			name:  "comma and semicolon",
			input: "finish report, send email; book flight",
			want:  []string{"Finish report", "Send email", "Book flight"},
		},
		{
			name:  "then separator",
			input: "walk the dog then take out the trash",
			want:  []string{"Walk the dog", "Take out the trash"},
		},
		{
			name:  "mixed case separators",
			input: "buy milk AND call mom THEN sleep",
			want:  []string{"Buy milk", "Call mom", "Sleep"},
		},
		{
			name:  "no separator returns whole input",
			input: "water the plants",
			want:  []string{"Water the plants"},
		},
		{
			name:  "fragments are trimmed and capitalized",
			input: "  buy milk ,   call mom  ",
			want:  []string{"Buy milk", "Call mom"},
		},
		{
			name:  "empty fragments dropped",
			input: "buy milk,, call mom",
			want:  []string{"Buy milk", "Call mom"},
		},
		{
			// Preserved source behavior: the empty input comes back as a
			// single empty element. The capture service rejects empty
			// utterances before ever reaching the splitter.
			name:  "empty input",
			input: "",
			want:  []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.input))
		})
	}
}

func TestSplitFillerOnlyStripsLeading(t *testing.T) {
	got := Split("remind me that i have to call mom")
	assert.Equal(t, []string{"Remind me that i have to call mom"}, got)
}
