package convert

import (
	"strings"
	"time"
)

// DefaultRootTitle is the title given to the site's start page
const DefaultRootTitle = "start"

// DefaultEditor is written to the editor key of every front-matter block
const DefaultEditor = "undefined"

// Replacement is a literal find/replace pair applied by the glyph stage
type Replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// DefaultReplacements fixes the UTF-8 arrow that was read back as Windows-1252
func DefaultReplacements() []Replacement {
	return []Replacement{
		{From: "â†’", To: "->"},
	}
}

// Options controls a Converter. The zero value is usable.
type Options struct {
	Timestamp    time.Time
	RootTitle    string
	Editor       string
	Replacements []Replacement
}

// Page is the result of converting one DokuWiki page
type Page struct {
	Title string
	Lines []string
}

// Text joins the converted lines the way they are written to disk
func (p Page) Text() string {
	return strings.Join(p.Lines, "\n")
}

// pageContext carries what the stages share for a single page
type pageContext struct {
	Title  string
	IsRoot bool
	opts   Options
}

// stage rewrites a whole page and returns a new line slice
type stage func(lines []string, pc *pageContext) []string

// pipeline is the fixed stage order. Front matter needs the title, so heading
// extraction runs first.
var pipeline = []stage{
	extractHeadings,
	injectFrontMatter,
	convertCodeBlocks,
	convertLineBreaks,
	convertTables,
	resolveLinks,
	convertWraps,
	normalizeGlyphs,
	convertItalics,
	convertColors,
}

// Converter turns DokuWiki markup into Markdown for the target wiki.
// It holds no per-page state and is safe for concurrent use.
type Converter struct {
	opts Options
}

// NewConverter creates a converter, filling unset options with defaults
func NewConverter(opts Options) *Converter {
	if opts.RootTitle == "" {
		opts.RootTitle = DefaultRootTitle
	}
	if opts.Editor == "" {
		opts.Editor = DefaultEditor
	}
	if opts.Replacements == nil {
		opts.Replacements = DefaultReplacements()
	}
	return &Converter{opts: opts}
}

// Convert runs the page through every stage. isRoot marks the site's start page.
func (c *Converter) Convert(lines []string, isRoot bool) Page {
	pc := &pageContext{IsRoot: isRoot, opts: c.opts}

	out := append([]string(nil), lines...)
	for _, st := range pipeline {
		out = st(out, pc)
	}

	return Page{Title: pc.Title, Lines: out}
}

// ConvertString splits content into lines, converts it and joins the result
func (c *Converter) ConvertString(content string, isRoot bool) Page {
	return c.Convert(SplitLines(content), isRoot)
}

// SplitLines splits text on \n, \r\n or \r. A trailing line break does not
// produce an extra empty line.
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// mapLines applies fn to every line of a copy of lines
func mapLines(lines []string, fn func(string) string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = fn(line)
	}
	return out
}
