package importer

import "strings"

// Tokenize splits raw CSV text into rows of string fields. Quoted fields
// may contain commas and newlines; a doubled quote inside a quoted field
// is one literal quote. An unterminated quote is closed at end of input,
// so Tokenize never fails. Blank and whitespace-only lines are dropped.
func Tokenize(raw string) [][]string {
	var rows [][]string
	var fields []string
	var cur strings.Builder
	inQuotes := false

	endField := func() {
		fields = append(fields, cur.String())
		cur.Reset()
	}
	endRow := func() {
		endField()
		if !isBlankRow(fields) {
			rows = append(rows, fields)
		}
		fields = nil
	}

	i := 0
	for i < len(raw) {
		c := raw[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(raw) && raw[i+1] == '"' {
					cur.WriteByte('"')
					i += 2
					continue
				}
				inQuotes = false
				i++
				continue
			}
			cur.WriteByte(c)
			i++
			continue
		}
		switch c {
		case '"':
			inQuotes = true
		case ',':
			endField()
		case '\r':
			// swallowed; the following '\n' (or end of input) ends the row
		case '\n':
			endRow()
		default:
			cur.WriteByte(c)
		}
		i++
	}

	// Implicitly close an unterminated quote and flush the last row
	if cur.Len() > 0 || len(fields) > 0 {
		endRow()
	}

	return rows
}

func isBlankRow(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
