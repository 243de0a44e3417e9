package panel

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableTemplate renders the instructor dashboard datatable shape
// {"title": ..., "header": [...], "data": [[...], ...]} as a bordered table.
type TableTemplate struct {
	styles *Styles
}

// NewTableTemplate creates the default datatable templater
func NewTableTemplate() *TableTemplate {
	return &TableTemplate{styles: NewStyles()}
}

type datatable struct {
	Title  string  `json:"title"`
	Header []any   `json:"header"`
	Data   [][]any `json:"data"`
}

func (tt *TableTemplate) Render(raw json.RawMessage) (string, error) {
	var dt datatable
	if err := json.Unmarshal(raw, &dt); err != nil {
		return "", fmt.Errorf("decode datatable: %w", err)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tt.styles.Dim).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tt.styles.TableHeader
			}
			return tt.styles.TableCell
		}).
		Headers(cells(dt.Header)...)
	for _, row := range dt.Data {
		t.Row(cells(row)...)
	}

	var b strings.Builder
	if dt.Title != "" {
		b.WriteString(tt.styles.Section.Render(dt.Title))
		b.WriteString("\n")
	}
	b.WriteString(t.String())
	return b.String(), nil
}

func cells(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}
