package diff

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/gerunddev/dokumd/internal/convert"
)

// wordWrap is the column width used for terminal rendering
const wordWrap = 120

// Unified returns a unified diff from oldText to newText, or "" when they
// are identical
func Unified(oldName, newName, oldText, newText string) string {
	if oldText == newText {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(oldName), oldText, newText)
	return fmt.Sprint(gotextdiff.ToUnified(oldName, newName, oldText, edits))
}

// AgainstFile diffs the current content of dst against output. A missing
// dst is treated as empty so new pages show up as pure additions. Front-matter
// dates are taken from dst, so a page whose source did not change has no diff.
func AgainstFile(dst, output string) (string, error) {
	current, err := os.ReadFile(dst)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to read %s: %w", dst, err)
	}

	output = convert.KeepTimestamps(string(current), output)
	name := filepath.Base(dst)
	return Unified(name, name+" (converted)", string(current), output), nil
}

// Fence wraps a unified diff in a markdown diff code fence
func Fence(unified string) string {
	if unified != "" && !strings.HasSuffix(unified, "\n") {
		unified += "\n"
	}
	return fmt.Sprintf("```diff\n%s```\n", unified)
}

// Render renders markdown for the terminal with Glamour. If rendering is not
// possible the markdown is returned unchanged.
func Render(markdown string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return markdown
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}

	return rendered
}

// RenderUnified renders a unified diff as a highlighted diff block
func RenderUnified(unified string) string {
	return Render(Fence(unified))
}
