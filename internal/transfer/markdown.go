package transfer

import (
	"strconv"
	"strings"

	"github.com/jeanpaul/phonebook/internal/contacts"
)

// Markdown renders contacts as a numbered Markdown table.
func Markdown(list []contacts.Contact) string {
	rows := make([][]string, 0, len(list)+1)
	rows = append(rows, []string{"#", "Name", "Phone"})
	for i, c := range list {
		rows = append(rows, []string{strconv.Itoa(i + 1), c.Name, c.Phone})
	}
	return rowsToMarkdown(rows)
}

// rowsToMarkdown converts rows into a Markdown table; the first row is the header.
func rowsToMarkdown(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("| " + strings.Join(rows[0], " | ") + " |\n")

	sb.WriteString("|")
	for range rows[0] {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")

	for _, row := range rows[1:] {
		cells := make([]string, len(row))
		for j, cell := range row {
			// pipes would end the cell early
			cell = strings.ReplaceAll(cell, "|", "\\|")
			cells[j] = strings.ReplaceAll(cell, "\n", " ")
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return sb.String()
}
