package report

import (
	"Go2NetTemplates/internal/model"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TopValues is the number of values listed per field in a table.
const TopValues = 10

// TruncationMarker ends a value list that omits some values.
const TruncationMarker = "..."

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// FieldCell renders the value column of one field: a count and length
// summary, then the most frequent values with their counts. The marker is
// added only when the field has more than TopValues distinct values, even if
// the summary was cut shorter by a smaller top_n.
func FieldCell(f model.FieldSummary) string {
	lengths := make([]string, len(f.Lengths))
	for i, l := range f.Lengths {
		lengths[i] = strconv.Itoa(l)
	}
	plural := ""
	if f.DistinctValues > 1 {
		plural = "s"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d value%s of size%s: (%s)", f.DistinctValues, plural, plural, strings.Join(lengths, ", "))
	top := f.Top
	if len(top) > TopValues {
		top = top[:TopValues]
	}
	for _, vc := range top {
		fmt.Fprintf(&b, "\n%s: %d", vc.Value, vc.Count)
	}
	if f.DistinctValues > TopValues {
		b.WriteString("\n" + TruncationMarker)
	}
	return b.String()
}

// TemplateTable draws a template as a bordered two-column table. Tables
// wider than maxWidth are shrunk to it; maxWidth <= 0 disables the limit.
func TemplateTable(t model.TemplateSummary, maxWidth int) string {
	rows := make([][]string, len(t.Fields))
	for i, f := range t.Fields {
		rows[i] = []string{f.ID, FieldCell(f)}
	}

	build := func() *table.Table {
		return table.New().
			Border(lipgloss.NormalBorder()).
			BorderRow(true).
			StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
			Headers("field ID", "length").
			Rows(rows...)
	}

	tbl := build()
	out := tbl.String()
	if maxWidth > 0 && lipgloss.Width(out) > maxWidth {
		out = build().Width(maxWidth).String()
	}
	return out
}

// Overview lists every template of a report, one line each.
func Overview(r *model.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d packets, %d templates\n", r.Source, r.Packets, len(r.Templates))
	for _, t := range r.Templates {
		fmt.Fprintf(&b, "id:%d packets: %d fields: %d\n", t.ID, t.Contributors, len(t.Fields))
	}
	return b.String()
}

// Render writes the overview followed by the table of every template.
func Render(r *model.Report, maxWidth int) string {
	var b strings.Builder
	b.WriteString(Overview(r))
	for _, t := range r.Templates {
		fmt.Fprintf(&b, "\ntemplate %d (%d packets)\n", t.ID, t.Contributors)
		b.WriteString(TemplateTable(t, maxWidth))
		b.WriteString("\n")
	}
	return b.String()
}
