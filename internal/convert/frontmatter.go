package convert

import (
	"bufio"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// frontMatterDelimiter opens and closes the metadata block
const frontMatterDelimiter = "---"

// timestampLayout is the date format the target wiki writes into front matter
const timestampLayout = "2006-01-02T15:04:05"

// FrontMatter is the metadata block prepended to every converted page
type FrontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Published   bool   `yaml:"published"`
	Date        string `yaml:"date"`
	Tags        string `yaml:"tags"`
	Editor      string `yaml:"editor"`
	DateCreated string `yaml:"dateCreated"`
}

// FormatTimestamp renders t in UTC as YYYY-MM-DDTHH:MM:SS.000Z
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout) + ".000Z"
}

// injectFrontMatter prepends the metadata block built from the page title
func injectFrontMatter(lines []string, pc *pageContext) []string {
	ts := FormatTimestamp(pc.opts.Timestamp)
	header := []string{
		frontMatterDelimiter,
		"title: " + yamlScalar(pc.Title),
		"description: ",
		"published: true",
		"date: " + ts,
		"tags: ",
		"editor: " + pc.opts.Editor,
		"dateCreated: " + ts,
		frontMatterDelimiter,
	}

	out := make([]string, 0, len(header)+len(lines))
	out = append(out, header...)
	return append(out, lines...)
}

// yamlScalar returns s as written by a YAML encoder, so titles such as
// "Setup: step 1" or "true" stay strings. Plain titles are unchanged.
func yamlScalar(s string) string {
	if s == "" {
		return ""
	}
	b, err := yaml.Marshal(s)
	if err != nil {
		return s
	}
	return strings.TrimSuffix(string(b), "\n")
}

// ParseFrontMatter reads the metadata block at the top of a converted page.
// ok is false when content does not start with a complete block.
func ParseFrontMatter(content string) (fm FrontMatter, body string, ok bool) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), len(content)+1)

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != frontMatterDelimiter {
		return FrontMatter{}, content, false
	}

	var block []string
	var rest []string
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if !closed {
			if strings.TrimSpace(line) == frontMatterDelimiter {
				closed = true
				continue
			}
			block = append(block, line)
			continue
		}
		rest = append(rest, line)
	}
	if !closed {
		return FrontMatter{}, content, false
	}

	if err := yaml.Unmarshal([]byte(strings.Join(block, "\n")), &fm); err != nil {
		return FrontMatter{}, content, false
	}
	return fm, strings.Join(rest, "\n"), true
}

// KeepTimestamps returns page with the date and dateCreated values found in
// existing, so two conversions of one source taken at different times compare
// equal. page is returned unchanged unless both carry a front-matter block.
func KeepTimestamps(existing, page string) string {
	old, _, ok := ParseFrontMatter(existing)
	if !ok {
		return page
	}
	if _, _, ok := ParseFrontMatter(page); !ok {
		return page
	}

	lines := strings.Split(page, "\n")
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == frontMatterDelimiter {
			break
		}
		switch {
		case strings.HasPrefix(line, "date:"):
			lines[i] = "date: " + old.Date
		case strings.HasPrefix(line, "dateCreated:"):
			lines[i] = "dateCreated: " + old.DateCreated
		}
	}
	return strings.Join(lines, "\n")
}
