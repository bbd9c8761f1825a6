package convert

import (
	"regexp"
	"strings"
)

const italicMarker = "//"

// colorOpen matches <color red>, <color #ff0000> and <color red/yellow>
var colorOpen = regexp.MustCompile(`<color\s+([^>]+?)\s*>`)

// normalizeGlyphs applies the configured find/replace table in order
func normalizeGlyphs(lines []string, pc *pageContext) []string {
	if len(pc.opts.Replacements) == 0 {
		return lines
	}
	pairs := make([]string, 0, 2*len(pc.opts.Replacements))
	for _, r := range pc.opts.Replacements {
		if r.From == "" {
			continue
		}
		pairs = append(pairs, r.From, r.To)
	}
	replacer := strings.NewReplacer(pairs...)
	return mapLines(lines, replacer.Replace)
}

// convertItalics turns pairs of // markers into <em></em>. Lines with a URL
// scheme are left alone so http:// is never mistaken for a marker.
func convertItalics(lines []string, _ *pageContext) []string {
	return mapLines(lines, ConvertItalicsLine)
}

// ConvertItalicsLine converts // pairs left to right on one line. A trailing
// unpaired marker stays as it is.
func ConvertItalicsLine(line string) string {
	if strings.Contains(line, "http://") || strings.Contains(line, "https://") {
		return line
	}
	for strings.Count(line, italicMarker) >= 2 {
		line = strings.Replace(line, italicMarker, "<em>", 1)
		line = strings.Replace(line, italicMarker, "</em>", 1)
	}
	return line
}

// convertColors turns the color plugin tags into styled spans
func convertColors(lines []string, _ *pageContext) []string {
	return mapLines(lines, func(line string) string {
		if !strings.Contains(line, "<color") && !strings.Contains(line, "</color>") {
			return line
		}
		line = colorOpen.ReplaceAllStringFunc(line, func(tag string) string {
			return ColorSpan(colorOpen.FindStringSubmatch(tag)[1])
		})
		return strings.ReplaceAll(line, "</color>", "</span>")
	})
}

// ColorSpan returns the opening span for a color value. "fg/bg" sets both
// the text and the background color.
func ColorSpan(value string) string {
	fg, bg, hasBg := strings.Cut(value, "/")
	style := "color:" + strings.TrimSpace(fg)
	if hasBg && strings.TrimSpace(bg) != "" {
		style += ";background-color:" + strings.TrimSpace(bg)
	}
	return `<span style="` + style + `">`
}
