package convert

import "strings"

// Callout kinds understood by the target wiki's {.is-*} block attribute
const (
	CalloutInfo    = "info"
	CalloutWarning = "warning"
	CalloutDanger  = "danger"
)

// inlineWraps are single-line emphasis wraps, closed by </wrap> on the same line
var inlineWraps = []string{"<wrap em>", "<wrap lo>"}

// calloutState is threaded through the block pass of convertWraps
type calloutState struct {
	active bool
	kind   string
}

// convertWraps converts inline emphasis wraps and then block-level <WRAP>
// boxes into blockquotes ending with a {.is-kind} attribute line.
// Nested boxes are not supported: an open inside an open box restarts it.
func convertWraps(lines []string, _ *pageContext) []string {
	out := mapLines(lines, convertInlineWraps)

	st := calloutState{kind: CalloutInfo}
	for i, line := range out {
		out[i], st = st.step(line)
	}
	return out
}

func convertInlineWraps(line string) string {
	for _, tag := range inlineWraps {
		if strings.Contains(line, tag) {
			line = strings.ReplaceAll(line, tag, "<em>")
			line = strings.ReplaceAll(line, "</wrap>", "</em>")
		}
	}
	return line
}

// wrapCloseTag is the length shared by </WRAP> and </wrap>
const wrapCloseTag = len("</WRAP>")

// step handles one line and returns the rewritten line with the next state
func (s calloutState) step(line string) (string, calloutState) {
	if !s.active {
		if box, ok := singleLineBox(line); ok {
			return box, s
		}
	}

	if strings.Contains(line, "</WRAP>") || strings.Contains(line, "</wrap>") {
		if !s.active {
			return line, s
		}
		return "{.is-" + s.kind + "}", calloutState{kind: CalloutInfo}
	}

	if strings.Contains(line, "<WRAP") || strings.Contains(line, "<wrap") {
		return "", calloutState{active: true, kind: calloutKind(line)}
	}

	if s.active {
		return "> " + line, s
	}
	return line, s
}

// calloutKind picks the box kind from the classes on an open tag
func calloutKind(line string) string {
	switch {
	case strings.Contains(line, "alert"):
		return CalloutDanger
	case strings.Contains(line, "important"):
		return CalloutWarning
	default:
		return CalloutInfo
	}
}

// singleLineBox converts <WRAP kind>text</WRAP> written on one line into the
// quoted text followed by its attribute line. Text around the box keeps its
// own line.
func singleLineBox(line string) (string, bool) {
	open := firstIndex(line, "<WRAP", "<wrap")
	if open == -1 {
		return "", false
	}
	tagEnd := strings.Index(line[open:], ">")
	if tagEnd == -1 {
		return "", false
	}
	tagEnd += open + 1

	closeAt := firstIndex(line[tagEnd:], "</WRAP>", "</wrap>")
	if closeAt == -1 {
		return "", false
	}
	closeAt += tagEnd

	var parts []string
	if before := strings.TrimSpace(line[:open]); before != "" {
		parts = append(parts, before)
	}
	parts = append(parts,
		"> "+strings.TrimSpace(line[tagEnd:closeAt]),
		"{.is-"+calloutKind(line[open:tagEnd])+"}")
	if after := strings.TrimSpace(line[closeAt+wrapCloseTag:]); after != "" {
		parts = append(parts, after)
	}
	return strings.Join(parts, "\n"), true
}

// firstIndex returns the smallest index of any of subs in s, or -1
func firstIndex(s string, subs ...string) int {
	best := -1
	for _, sub := range subs {
		if i := strings.Index(s, sub); i != -1 && (best == -1 || i < best) {
			best = i
		}
	}
	return best
}
