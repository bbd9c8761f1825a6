package convert

import (
	"strings"
	"testing"
)

func TestConvertWraps(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "important box",
			input:    "<WRAP important>\ntext\n</WRAP>",
			expected: "\n> text\n{.is-warning}",
		},
		{
			name:     "alert box",
			input:    "<WRAP center round alert 60%>\nstop\n</WRAP>",
			expected: "\n> stop\n{.is-danger}",
		},
		{
			name:     "plain box",
			input:    "<WRAP round box>\na\nb\n</WRAP>",
			expected: "\n> a\n> b\n{.is-info}",
		},
		{
			name:     "lowercase markers",
			input:    "<wrap important>\nx\n</wrap>",
			expected: "\n> x\n{.is-warning}",
		},
		{
			name:     "kind resets after close",
			input:    "<WRAP alert>\na\n</WRAP>\n<WRAP>\nb\n</WRAP>",
			expected: "\n> a\n{.is-danger}\n\n> b\n{.is-info}",
		},
		{
			name:     "text outside boxes untouched",
			input:    "before\n<WRAP tip>\nin\n</WRAP>\nafter",
			expected: "before\n\n> in\n{.is-info}\nafter",
		},
		{
			name:     "close without open",
			input:    "stray </WRAP>",
			expected: "stray </WRAP>",
		},
		{
			name:     "inline em wrap",
			input:    "this is <wrap em>important</wrap> text",
			expected: "this is <em>important</em> text",
		},
		{
			name:     "inline lo wrap",
			input:    "<wrap lo>quiet</wrap>",
			expected: "<em>quiet</em>",
		},
		{
			name:     "box on one line",
			input:    "<WRAP info>text</WRAP>",
			expected: "> text\n{.is-info}",
		},
		{
			name:     "box on one line with surrounding text",
			input:    "see <wrap alert> careful </wrap> below",
			expected: "see\n> careful\n{.is-danger}\nbelow",
		},
		{
			name:     "box on one line then a block box",
			input:    "<WRAP important>a</WRAP>\n<WRAP>\nb\n</WRAP>",
			expected: "> a\n{.is-warning}\n\n> b\n{.is-info}",
		},
		{
			name:     "unterminated box quotes the rest",
			input:    "<WRAP info>\na\nb",
			expected: "\n> a\n> b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(convertWraps(strings.Split(tt.input, "\n"), &pageContext{}), "\n")
			if got != tt.expected {
				t.Errorf("convertWraps(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCalloutKind(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{line: "<WRAP>", expected: CalloutInfo},
		{line: "<WRAP important>", expected: CalloutWarning},
		{line: "<WRAP alert>", expected: CalloutDanger},
		{line: "<WRAP important alert>", expected: CalloutDanger},
		{line: "<WRAP Important>", expected: CalloutInfo},
	}

	for _, tt := range tests {
		if got := calloutKind(tt.line); got != tt.expected {
			t.Errorf("calloutKind(%q) = %q, want %q", tt.line, got, tt.expected)
		}
	}
}

func TestConvertWrapsIdempotent(t *testing.T) {
	once := convertWraps([]string{"<WRAP important>", "text", "</WRAP>", "<WRAP>x</WRAP>"}, &pageContext{})
	twice := convertWraps(once, &pageContext{})

	if strings.Join(once, "\n") != strings.Join(twice, "\n") {
		t.Errorf("second pass changed output: %q -> %q", once, twice)
	}
}
