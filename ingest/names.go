package ingest

import (
	"strconv"
	"strings"
	"unicode"
)

// sanitize turns a header cell into an identifier: quotes and surrounding
// blanks are dropped, inner spaces become underscores and any other
// punctuation is removed.
func sanitize(header string) string {
	header = strings.TrimSpace(trimField(header))
	var b strings.Builder
	for _, r := range header {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('_')
		}
	}
	return b.String()
}

// columnNames names the value columns: explicit names first, then the
// sanitized header, then "f" followed by the column index. Repeated names
// get a numeric suffix.
func columnNames(cols []int, header, explicit []string) []string {
	names := make([]string, len(cols))
	seen := make(map[string]int, len(cols))
	for i, c := range cols {
		var name string
		switch {
		case i < len(explicit) && strings.TrimSpace(explicit[i]) != "":
			name = strings.TrimSpace(explicit[i])
		case c < len(header):
			name = sanitize(header[c])
		}
		if name == "" {
			name = "f" + strconv.Itoa(c)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name += "_" + strconv.Itoa(n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}

// trimField strips blanks and single or double quotes around a raw field.
func trimField(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}

// ColumnTexts returns the trimmed, non-empty cells of column col. A negative
// col counts from the end of each row.
func (t *Table) ColumnTexts(col int) []string {
	var out []string
	for _, row := range t.Rows {
		c := col
		if c < 0 {
			c += len(row)
		}
		if c < 0 || c >= len(row) {
			continue
		}
		if s := trimField(row[c]); s != "" {
			out = append(out, s)
		}
	}
	return out
}
