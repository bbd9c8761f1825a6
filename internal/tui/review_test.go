package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func reviewPages() []PageChange {
	return []PageChange{
		{Source: "start.txt", Dest: "/out/start.md", Status: StatusChanged, Diff: "-old\n+new"},
		{Source: "wiki/syntax.txt", Dest: "/out/wiki/syntax.md", Status: StatusUnchanged},
		{Source: "wiki/bad.txt", Dest: "/out/wiki/bad.md", Status: StatusFailed, Diff: "read failed"},
	}
}

func loadedReview(t *testing.T, writeFunc func(PageChange) error) reviewModel {
	t.Helper()
	next, _ := InitReviewModel(writeFunc).Update(ReviewMsg{Pages: reviewPages()})
	return next.(reviewModel)
}

func TestReviewModelTable(t *testing.T) {
	m := loadedReview(t, nil)
	view := m.View()

	for _, want := range []string{"Pages: 3", "changed: 1", "unchanged: 1", "failed: 1", "start.txt", "wiki/syntax.txt"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestReviewModelLoading(t *testing.T) {
	if !strings.Contains(InitReviewModel(nil).View(), "Converting pages") {
		t.Error("expected loading message before pages arrive")
	}
}

func TestReviewModelError(t *testing.T) {
	next, _ := InitReviewModel(nil).Update(ReviewMsg{Err: errors.New("scan failed")})
	if !strings.Contains(next.View(), "scan failed") {
		t.Errorf("unexpected view:\n%s", next.View())
	}
}

func TestReviewModelDiffView(t *testing.T) {
	m := loadedReview(t, nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(reviewModel)

	if !m.showingDiff {
		t.Fatal("expected diff view after enter")
	}
	view := m.View()
	if !strings.Contains(view, "start.txt → /out/start.md") {
		t.Errorf("diff view missing header:\n%s", view)
	}
	if !strings.Contains(view, "+new") {
		t.Errorf("diff view missing diff content:\n%s", view)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(reviewModel).showingDiff {
		t.Error("expected esc to return to the table")
	}
}

func TestReviewModelWrite(t *testing.T) {
	var written []string
	m := loadedReview(t, func(p PageChange) error {
		written = append(written, p.Dest)
		return nil
	})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	if cmd == nil {
		t.Fatal("expected write command for changed page")
	}
	msg := cmd()

	next, _ := m.Update(msg)
	m = next.(reviewModel)

	if len(written) != 1 || written[0] != "/out/start.md" {
		t.Errorf("written = %v, want [/out/start.md]", written)
	}
	if m.pages[0].Status != StatusWritten {
		t.Errorf("status = %q, want %q", m.pages[0].Status, StatusWritten)
	}
	if !strings.Contains(m.View(), "Wrote /out/start.md") {
		t.Errorf("expected write notice:\n%s", m.View())
	}
}

func TestReviewModelWriteSkipsUnchanged(t *testing.T) {
	m := loadedReview(t, func(PageChange) error { return nil })

	if cmd := m.write(1); cmd != nil {
		t.Error("unchanged page must not be written")
	}
	if cmd := m.write(2); cmd != nil {
		t.Error("failed page must not be written")
	}
}

func TestReviewModelWriteError(t *testing.T) {
	m := loadedReview(t, nil)

	next, _ := m.Update(WrittenMsg{Index: 0, Err: errors.New("disk full")})
	m = next.(reviewModel)

	if m.pages[0].Status != StatusChanged {
		t.Errorf("status changed on failed write: %q", m.pages[0].Status)
	}
	if !strings.Contains(m.View(), "disk full") {
		t.Errorf("expected error notice:\n%s", m.View())
	}
}
