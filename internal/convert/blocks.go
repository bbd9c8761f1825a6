package convert

import (
	"regexp"
	"strings"
)

const codeFence = "```"

// Parameterized open tags such as <code python> or <sxh js; gutter: false>
var (
	sxhOpenWithAttr  = regexp.MustCompile(`<sxh\s+([^>]*)>`)
	codeOpenWithAttr = regexp.MustCompile(`<code\s+([^>]*)>`)
)

// bareCodeTags are replaced with a plain fence, in this order
var bareCodeTags = []string{"<code>", "</code>", "<sxh>", "</sxh>"}

// convertCodeBlocks turns <code> and <sxh> tags into fenced code markers
func convertCodeBlocks(lines []string, _ *pageContext) []string {
	return mapLines(lines, func(line string) string {
		for _, tag := range bareCodeTags {
			line = strings.ReplaceAll(line, tag, codeFence)
		}
		line = replaceFenceWithAttr(sxhOpenWithAttr, line)
		return replaceFenceWithAttr(codeOpenWithAttr, line)
	})
}

// replaceFenceWithAttr swaps an open tag for a fence carrying its attribute text
func replaceFenceWithAttr(re *regexp.Regexp, line string) string {
	return re.ReplaceAllStringFunc(line, func(tag string) string {
		attr := re.FindStringSubmatch(tag)[1]
		return codeFence + strings.TrimSpace(attr)
	})
}

// convertLineBreaks turns the forced line break \\ into <br>
func convertLineBreaks(lines []string, _ *pageContext) []string {
	return mapLines(lines, func(line string) string {
		return strings.ReplaceAll(line, `\\`, "<br>")
	})
}

// convertTables rewrites ^-delimited header rows and adds the separator row
// Markdown needs. Ordinary |-delimited rows pass through unchanged.
func convertTables(lines []string, _ *pageContext) []string {
	return mapLines(lines, func(line string) string {
		if len(line) < 2 || !strings.HasPrefix(line, "^") || !strings.HasSuffix(line, "^") {
			return line
		}

		var sep strings.Builder
		for _, r := range line {
			if r == '^' {
				sep.WriteByte('|')
			} else {
				sep.WriteByte('-')
			}
		}
		return strings.ReplaceAll(line, "^", "|") + "\n" + sep.String()
	})
}
