// Package static renders non-interactive terminal output such as the
// worktree listing.
package static

import (
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/colorprofile"

	"github.com/wtree-dev/wt/internal/registry"
)

// CurrentMarker flags the worktree containing the working directory.
const CurrentMarker = "*"

var (
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// WorktreeHeaders are the column titles of WorktreeRows.
var WorktreeHeaders = []string{"", "NAME", "BRANCH"}

// WorktreeRows formats worktrees for RenderTable. Detached worktrees show
// their abbreviated HEAD in the branch column.
func WorktreeRows(worktrees []registry.Worktree) [][]string {
	rows := make([][]string, 0, len(worktrees))
	for _, wt := range worktrees {
		marker := ""
		if wt.Current {
			marker = currentStyle.Render(CurrentMarker)
		}
		ref := wt.Ref()
		if wt.Detached {
			ref = mutedStyle.Render(ref)
		}
		rows = append(rows, []string{marker, wt.Name, ref})
	}
	return rows
}

// RenderTable creates a borderless table with aligned columns.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// Write prints s to w, downsampling or stripping colors to what the
// terminal behind w supports.
func Write(w io.Writer, environ []string, s string) error {
	_, err := io.WriteString(colorprofile.NewWriter(w, environ), s)
	return err
}
