package convert

import (
	"strings"
	"testing"
)

func TestConvertCodeBlocks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "open code", input: "<code>", expected: "```"},
		{name: "close code", input: "</code>", expected: "```"},
		{name: "open sxh", input: "<sxh>", expected: "```"},
		{name: "close sxh", input: "</sxh>", expected: "```"},
		{name: "code with language", input: "<code python>", expected: "```python"},
		{name: "code with language and file", input: "<code php index.php>", expected: "```php index.php"},
		{name: "sxh with attributes", input: "<sxh csharp; gutter: false>", expected: "```csharp; gutter: false"},
		{name: "single line", input: "<code>x = 1</code>", expected: "```x = 1```"},
		{name: "indented", input: "  <code bash>", expected: "  ```bash"},
		{name: "codec is not code", input: "<codec>", expected: "<codec>"},
		{name: "plain text", input: "no code here", expected: "no code here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertCodeBlocks([]string{tt.input}, &pageContext{})[0]
			if got != tt.expected {
				t.Errorf("convertCodeBlocks(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConvertLineBreaks(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: `first\\ second\\`, expected: "first<br> second<br>"},
		{input: `single \ slash`, expected: `single \ slash`},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		got := convertLineBreaks([]string{tt.input}, &pageContext{})[0]
		if got != tt.expected {
			t.Errorf("convertLineBreaks(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestConvertTables(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "compact header", input: "^A^B^C^", expected: "|A|B|C|\n|-|-|-|"},
		{name: "spaced header", input: "^ Name ^ Age ^", expected: "| Name | Age |\n|------|-----|"},
		{name: "multibyte cell", input: "^ é ^", expected: "| é |\n|---|"},
		{name: "ordinary row", input: "| a | b |", expected: "| a | b |"},
		{name: "caret inside text", input: "2^10 is 1024", expected: "2^10 is 1024"},
		{name: "lone caret", input: "^", expected: "^"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertTables([]string{tt.input}, &pageContext{})[0]
			if got != tt.expected {
				t.Errorf("convertTables(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConvertTablesSeparatorLength(t *testing.T) {
	row := "^ Column one ^ Two ^ Three ^"
	got := convertTables([]string{row}, &pageContext{})[0]

	parts := strings.Split(got, "\n")
	if len(parts) != 2 {
		t.Fatalf("expected header and separator, got %q", got)
	}
	if len(parts[0]) != len(parts[1]) {
		t.Errorf("separator length %d does not match header length %d", len(parts[1]), len(parts[0]))
	}
}
