package convert

import (
	"path"
	"regexp"
	"strings"
)

// markdownExt is appended to internal page links so they point at converted files
const markdownExt = ".md"

// namespaceStart is the page a bare namespace link such as [[wiki:]] opens
const namespaceStart = "start"

// sizeParam matches a media width with an optional height
var sizeParam = regexp.MustCompile(`^\d+(x\d*)?$`)

// resolveLinks rewrites [[page]] links and then {{media}} links on every line
func resolveLinks(lines []string, _ *pageContext) []string {
	return mapLines(lines, func(line string) string {
		line = replaceDelimited(line, "[[", "]]", PageLink)
		return replaceDelimited(line, "{{", "}}", MediaLink)
	})
}

// replaceDelimited replaces every open...close span left to right with
// render(inner). Scanning stops at an opening marker with no closing marker,
// leaving the rest of the line as it was.
func replaceDelimited(line, open, close string, render func(string) string) string {
	var b strings.Builder
	rest := line
	for {
		start := strings.Index(rest, open)
		if start == -1 {
			break
		}
		end := strings.Index(rest[start+len(open):], close)
		if end == -1 {
			break
		}
		end += start + len(open)

		b.WriteString(rest[:start])
		b.WriteString(render(rest[start+len(open) : end]))
		rest = rest[end+len(close):]
	}
	b.WriteString(rest)
	return b.String()
}

// PageLink renders the inside of a [[target|label]] link as a Markdown link
func PageLink(inner string) string {
	target, label, hasLabel := strings.Cut(inner, "|")
	target = strings.TrimSpace(target)

	isURL := isAbsoluteURL(target)
	if !isURL {
		target = namespaceToPath(target)
	}

	if !hasLabel {
		if isURL {
			label = target
		} else if page, _, _ := strings.Cut(target, "#"); page != "" {
			label = path.Base(page)
		} else {
			label = target
		}
	}

	if !isURL {
		target = withMarkdownExt(target)
	}
	return "[" + label + "](" + target + ")"
}

// MediaLink renders the inside of a {{target?size|label}} link as a Markdown image
func MediaLink(inner string) string {
	target, label, _ := strings.Cut(inner, "|")
	target = strings.TrimSpace(target)

	target, params, _ := strings.Cut(target, "?")
	if !isAbsoluteURL(target) {
		target = namespaceToPath(target)
	}
	if label == "" {
		label = path.Base(target)
	}

	size := imageSize(params)
	if size == "" {
		return "![" + label + "](" + target + ")"
	}
	return "![" + label + "](" + target + " " + size + ")"
}

// imageSize turns a DokuWiki media parameter list into the =WxH annotation.
// Parameters are &-separated and the first size token wins: "200" and
// "200x" give "=200x", "200x50" gives "=200x50". Other options are dropped.
func imageSize(params string) string {
	for _, param := range strings.Split(params, "&") {
		param = strings.TrimSpace(param)
		if !sizeParam.MatchString(param) {
			continue
		}
		if strings.Contains(param, "x") {
			return "=" + param
		}
		return "=" + param + "x"
	}
	return ""
}

func isAbsoluteURL(target string) bool {
	return strings.HasPrefix(target, "http:") || strings.HasPrefix(target, "https:")
}

// namespaceToPath maps DokuWiki namespace separators to path separators
func namespaceToPath(target string) string {
	return strings.ReplaceAll(target, ":", "/")
}

// withMarkdownExt appends .md to the page part of target, keeping any #anchor
func withMarkdownExt(target string) string {
	page, anchor, hasAnchor := strings.Cut(target, "#")
	if page == "" || strings.HasSuffix(page, markdownExt) {
		return target
	}
	if strings.HasSuffix(page, "/") {
		page += namespaceStart
	}
	if hasAnchor {
		return page + markdownExt + "#" + anchor
	}
	return page + markdownExt
}
