package output

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Veraticus/wiz-iac/internal/shared"
)

// Row is one aligned line of a table listing.
type Row struct {
	Key     string
	Columns []string
}

// ListRenderer formats titled, aligned tables.
type ListRenderer struct {
	styles shared.Styles
	indent string
}

// NewListRenderer creates a list renderer for w.
func NewListRenderer(w io.Writer, color bool) *ListRenderer {
	return &ListRenderer{
		styles: shared.NewStyles(NewRenderer(w, color)),
		indent: "  ",
	}
}

// RenderTable formats rows in the given order, padding every column to the
// widest cell so the listing lines up in a terminal.
func (l *ListRenderer) RenderTable(title string, rows []Row) string {
	var sb strings.Builder

	l.title(&sb, title)

	widths := []int{0}
	for _, row := range rows {
		widths[0] = max(widths[0], runewidth.StringWidth(row.Key))
		for i, col := range row.Columns {
			if i+1 >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i+1] = max(widths[i+1], runewidth.StringWidth(col))
		}
	}

	for _, row := range rows {
		sb.WriteString(l.indent)
		sb.WriteString(l.styles.Bullet.Render(runewidth.FillRight(row.Key, widths[0])))
		for i, col := range row.Columns {
			sb.WriteString("  ")
			// the last column is free text and is not padded
			if i+1 < len(row.Columns) {
				col = runewidth.FillRight(col, widths[i+1])
			}
			sb.WriteString(l.styles.Item.Render(col))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (l *ListRenderer) title(sb *strings.Builder, title string) {
	if title == "" {
		return
	}
	sb.WriteString(l.styles.Title.Render(title))
	sb.WriteString("\n")
}
