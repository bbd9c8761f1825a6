package convert

import "testing"

func TestExtractHeadings(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		isRoot   bool
		expected string
	}{
		{name: "level 5 on page", input: "===== Install =====", expected: "# Install"},
		{name: "level 4 on page", input: "==== Usage ====", expected: "## Usage"},
		{name: "level 3 on page", input: "=== Options ===", expected: "### Options"},
		{name: "level 2 on page", input: "== Notes ==", expected: "#### Notes"},
		{name: "level 6 on root", input: "====== Home ======", isRoot: true, expected: "# Home"},
		{name: "level 5 on root", input: "===== News =====", isRoot: true, expected: "## News"},
		{name: "level 2 on root", input: "== Small ==", isRoot: true, expected: "##### Small"},
		{name: "no space inside markers", input: "=====Tight=====", expected: "# Tight"},
		{name: "trailing spaces trimmed", input: "===== Spaced    =====", expected: "# Spaced"},
		{name: "inline equals", input: "a == b is true", expected: "a == b is true"},
		{name: "only opening marker", input: "===== Broken", expected: "===== Broken"},
		{name: "markers only", input: "======", expected: "======"},
		{name: "plain text", input: "Just text", expected: "Just text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := &pageContext{IsRoot: tt.isRoot, opts: Options{RootTitle: DefaultRootTitle}}
			got := extractHeadings([]string{tt.input}, pc)[0]
			if got != tt.expected {
				t.Errorf("extractHeadings(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractHeadingsTitle(t *testing.T) {
	pc := &pageContext{opts: Options{RootTitle: DefaultRootTitle}}
	lines := extractHeadings([]string{"======   Spaced Title  ======", "text"}, pc)

	if pc.Title != "Spaced Title" {
		t.Errorf("Title = %q, want %q", pc.Title, "Spaced Title")
	}
	if lines[0] != "" {
		t.Errorf("title line = %q, want empty", lines[0])
	}
}

func TestExtractHeadingsNoTitle(t *testing.T) {
	pc := &pageContext{opts: Options{RootTitle: DefaultRootTitle}}
	extractHeadings([]string{"===== Section =====", "text"}, pc)

	if pc.Title != "" {
		t.Errorf("Title = %q, want empty", pc.Title)
	}
}

func TestExtractHeadingsIdempotent(t *testing.T) {
	input := []string{"====== T ======", "===== A =====", "=== B ===", "text"}

	for _, isRoot := range []bool{false, true} {
		pc := &pageContext{IsRoot: isRoot, opts: Options{RootTitle: DefaultRootTitle}}
		once := extractHeadings(input, pc)
		twice := extractHeadings(once, &pageContext{IsRoot: isRoot, opts: pc.opts})

		for i := range once {
			if once[i] != twice[i] {
				t.Errorf("isRoot=%v line %d changed on second pass: %q -> %q", isRoot, i, once[i], twice[i])
			}
		}
	}
}
