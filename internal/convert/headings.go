package convert

import "strings"

// titleMarker is the DokuWiki marker run of a top-level heading
const titleMarker = 6

// extractHeadings converts =-delimited headings to # headings. On ordinary
// pages the top-level heading becomes the page title and is removed from the body.
func extractHeadings(lines []string, pc *pageContext) []string {
	if pc.IsRoot {
		pc.Title = pc.opts.RootTitle
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		level, text, ok := parseHeading(line)
		if !ok {
			out[i] = line
			continue
		}

		if pc.IsRoot {
			out[i] = markdownHeading(titleMarker+1-level, text)
			continue
		}

		if level == titleMarker {
			pc.Title = strings.TrimSpace(text)
			out[i] = ""
			continue
		}
		out[i] = markdownHeading(titleMarker-level, text)
	}

	return out
}

// parseHeading reports the marker length of a heading line (6 down to 2) and
// the text between the markers
func parseHeading(line string) (int, string, bool) {
	for n := titleMarker; n >= 2; n-- {
		marker := strings.Repeat("=", n)
		if len(line) <= 2*n || !strings.HasPrefix(line, marker) || !strings.HasSuffix(line, marker) {
			continue
		}
		text := line[n : len(line)-n]
		if strings.Trim(text, "= \t") == "" {
			return 0, "", false
		}
		return n, text, true
	}
	return 0, "", false
}

// markdownHeading builds "### text" with trailing spaces removed
func markdownHeading(depth int, text string) string {
	text = strings.TrimRight(text, " \t")
	if !strings.HasPrefix(text, " ") && !strings.HasPrefix(text, "\t") {
		text = " " + text
	}
	return strings.Repeat("#", depth) + text
}
