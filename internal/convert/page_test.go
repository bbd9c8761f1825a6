package convert

import (
	"os"
	"strings"
	"testing"
	"time"
)

var fixedTime = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func newTestConverter() *Converter {
	return NewConverter(Options{Timestamp: fixedTime})
}

// body strips the nine front-matter lines from a converted page
func body(p Page) []string {
	return p.Lines[9:]
}

func TestConvertSample(t *testing.T) {
	src, err := os.ReadFile("testdata/sample.txt")
	if err != nil {
		t.Fatalf("Failed to read DokuWiki fixture: %v", err)
	}

	expected, err := os.ReadFile("testdata/sample.md")
	if err != nil {
		t.Fatalf("Failed to read markdown fixture: %v", err)
	}

	page := newTestConverter().ConvertString(string(src), false)

	if page.Title != "Getting Started" {
		t.Errorf("Title = %q, want %q", page.Title, "Getting Started")
	}

	want := strings.TrimSuffix(string(expected), "\n")
	if got := page.Text(); got != want {
		t.Errorf("Conversion mismatch.\n\nExpected:\n%s\n\nGot:\n%s", want, got)
	}
}

func TestConvertDoesNotModifyInput(t *testing.T) {
	lines := []string{"====== Title ======", "[[a:b]]"}
	newTestConverter().Convert(lines, false)

	if lines[0] != "====== Title ======" || lines[1] != "[[a:b]]" {
		t.Errorf("Convert modified its input: %q", lines)
	}
}

func TestRootPageTitle(t *testing.T) {
	c := newTestConverter()

	root := c.Convert([]string{"======Home======"}, true)
	if root.Title != DefaultRootTitle {
		t.Errorf("root Title = %q, want %q", root.Title, DefaultRootTitle)
	}
	if got := body(root)[0]; got != "# Home" {
		t.Errorf("root heading = %q, want %q", got, "# Home")
	}
	if root.Lines[1] != "title: start" {
		t.Errorf("root front matter title line = %q", root.Lines[1])
	}

	page := c.Convert([]string{"======Home======"}, false)
	if page.Title != "Home" {
		t.Errorf("page Title = %q, want %q", page.Title, "Home")
	}
	if got := body(page)[0]; got != "" {
		t.Errorf("page heading line = %q, want empty", got)
	}
}

func TestCustomRootTitle(t *testing.T) {
	c := NewConverter(Options{Timestamp: fixedTime, RootTitle: "Home"})
	page := c.Convert([]string{"text"}, true)
	if page.Title != "Home" {
		t.Errorf("Title = %q, want %q", page.Title, "Home")
	}
}

func TestFrontMatterBlock(t *testing.T) {
	page := newTestConverter().Convert([]string{"====== My Page ======", "body"}, false)

	want := []string{
		"---",
		"title: My Page",
		"description: ",
		"published: true",
		"date: 2024-05-06T07:08:09.000Z",
		"tags: ",
		"editor: undefined",
		"dateCreated: 2024-05-06T07:08:09.000Z",
		"---",
		"",
		"body",
	}
	if len(page.Lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(page.Lines), len(want), page.Lines)
	}
	for i := range want {
		if page.Lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, page.Lines[i], want[i])
		}
	}
}

func TestFrontMatterQuotesUnsafeTitles(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{title: "Plain title", expected: "title: Plain title"},
		{title: "Setup: step one", expected: "title: 'Setup: step one'"},
		{title: "true", expected: `title: "true"`},
		{title: "", expected: "title: "},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			pc := &pageContext{Title: tt.title, opts: Options{Editor: DefaultEditor}}
			lines := injectFrontMatter(nil, pc)
			if lines[1] != tt.expected {
				t.Errorf("title line = %q, want %q", lines[1], tt.expected)
			}
		})
	}
}

func TestParseFrontMatter(t *testing.T) {
	page := newTestConverter().Convert([]string{"====== Setup: step one ======", "hello"}, false)

	fm, rest, ok := ParseFrontMatter(page.Text())
	if !ok {
		t.Fatal("ParseFrontMatter did not find a block")
	}
	if fm.Title != "Setup: step one" {
		t.Errorf("Title = %q", fm.Title)
	}
	if !fm.Published {
		t.Error("Published should be true")
	}
	if fm.Date != "2024-05-06T07:08:09.000Z" || fm.DateCreated != fm.Date {
		t.Errorf("Date = %q, DateCreated = %q", fm.Date, fm.DateCreated)
	}
	if fm.Editor != DefaultEditor {
		t.Errorf("Editor = %q", fm.Editor)
	}
	if rest != "\nhello" {
		t.Errorf("body = %q, want %q", rest, "\nhello")
	}

	if _, _, ok := ParseFrontMatter("no front matter"); ok {
		t.Error("expected ok=false without a block")
	}
	if _, _, ok := ParseFrontMatter("---\ntitle: x\n"); ok {
		t.Error("expected ok=false for an unterminated block")
	}
}

func TestKeepTimestamps(t *testing.T) {
	src := []string{"====== Notes ======", "body"}
	earlier := newTestConverter().Convert(src, false).Text()
	later := NewConverter(Options{Timestamp: fixedTime.Add(48 * time.Hour)}).Convert(src, false).Text()

	if earlier == later {
		t.Fatal("conversions at different times should differ before KeepTimestamps")
	}
	if got := KeepTimestamps(earlier, later); got != earlier {
		t.Errorf("KeepTimestamps did not restore dates:\n%s\nwant:\n%s", got, earlier)
	}

	edited := NewConverter(Options{Timestamp: fixedTime.Add(time.Hour)}).Convert([]string{"====== Notes ======", "new body"}, false).Text()
	got := KeepTimestamps(earlier, edited)
	if !strings.Contains(got, "date: 2024-05-06T07:08:09.000Z") || !strings.HasSuffix(got, "new body") {
		t.Errorf("KeepTimestamps lost content:\n%s", got)
	}

	if got := KeepTimestamps("plain text", later); got != later {
		t.Error("page must be unchanged when the existing file has no front matter")
	}
	if got := KeepTimestamps(earlier, "plain text"); got != "plain text" {
		t.Error("page without front matter must be unchanged")
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2023, 1, 2, 3, 4, 5, 999000000, time.FixedZone("CET", 3600))
	if got := FormatTimestamp(ts); got != "2023-01-02T02:04:05.000Z" {
		t.Errorf("FormatTimestamp = %q", got)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "trailing newline", input: "a\nb\n", expected: []string{"a", "b"}},
		{name: "crlf", input: "a\r\nb", expected: []string{"a", "b"}},
		{name: "blank lines kept", input: "a\n\nb", expected: []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.input)
			if strings.Join(got, "|") != strings.Join(tt.expected, "|") || len(got) != len(tt.expected) {
				t.Errorf("SplitLines(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConverterConcurrentUse(t *testing.T) {
	c := newTestConverter()
	done := make(chan Page, 8)
	for i := 0; i < 8; i++ {
		go func() {
			done <- c.Convert([]string{"====== T ======", "<WRAP alert>", "x", "</WRAP>"}, false)
		}()
	}
	for i := 0; i < 8; i++ {
		p := <-done
		if p.Title != "T" || p.Lines[len(p.Lines)-1] != "{.is-danger}" {
			t.Errorf("unexpected result: %q %q", p.Title, p.Lines)
		}
	}
}
