package static

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wtree-dev/wt/internal/registry"
)

func TestWorktreeRows(t *testing.T) {
	t.Parallel()

	worktrees := []registry.Worktree{
		{Name: "main", Branch: "main"},
		{Name: "feature-x", Branch: "feature-x", Current: true},
		{Name: "spike", Head: "0123456789abcdef", Detached: true},
	}

	rows := WorktreeRows(worktrees)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != len(WorktreeHeaders) {
			t.Fatalf("row %d has %d columns, want %d", i, len(row), len(WorktreeHeaders))
		}
	}

	if rows[0][0] != "" {
		t.Errorf("non-current worktree should have no marker, got %q", rows[0][0])
	}
	if !strings.Contains(rows[1][0], CurrentMarker) {
		t.Errorf("current worktree marker = %q, want it to contain %q", rows[1][0], CurrentMarker)
	}
	if rows[1][1] != "feature-x" || rows[1][2] != "feature-x" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if !strings.Contains(rows[2][2], "0123456") {
		t.Errorf("detached worktree should show short HEAD, got %q", rows[2][2])
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	if got := RenderTable(WorktreeHeaders, nil); got != "" {
		t.Errorf("empty table should render nothing, got %q", got)
	}

	got := RenderTable([]string{"NAME", "BRANCH"}, [][]string{
		{"main", "main"},
		{"feature-long-name", "feature"},
	})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines:\n%s", len(lines), got)
	}
	if strings.Index(lines[1], "main") != 0 {
		t.Errorf("first column should start at column 0: %q", lines[1])
	}
	if strings.LastIndex(lines[1], "main") != strings.LastIndex(lines[2], "feature") {
		t.Errorf("branch column not aligned:\n%s", got)
	}
}

func TestWrite_StripsColorsWithoutTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	styled := currentStyle.Render(CurrentMarker)
	if err := Write(&buf, nil, styled+"\n"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected escape sequences to be stripped, got %q", buf.String())
	}
	if buf.String() != CurrentMarker+"\n" {
		t.Errorf("got %q, want %q", buf.String(), CurrentMarker+"\n")
	}
}
