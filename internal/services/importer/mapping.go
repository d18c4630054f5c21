package importer

import (
	"fmt"
	"strings"
)

// ColumnMapping maps canonical field names to source column names.
// An empty value means the field is unmapped.
type ColumnMapping map[string]string

// MappingError reports required canonical fields with no usable source
// column. It is global: the batch aborts before any row runs.
type MappingError struct {
	Missing []string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("no source column for required fields: %s", strings.Join(e.Missing, ", "))
}

// ProposeMapping matches each canonical field against the source columns.
// Match order: exact name equality, case-insensitive name equality,
// case-insensitive label equality, then bidirectional substring
// containment against the field's human label. The first source column
// wins; there is no scoring. Running it twice on the same header yields
// the same mapping.
func ProposeMapping(columns []string, fields []FieldSpec) ColumnMapping {
	mapping := make(ColumnMapping, len(fields))
	for _, f := range fields {
		mapping[f.Name] = matchColumn(columns, f)
	}
	return mapping
}

func matchColumn(columns []string, f FieldSpec) string {
	for _, col := range columns {
		if col == f.Name {
			return col
		}
	}
	for _, col := range columns {
		if strings.EqualFold(col, f.Name) {
			return col
		}
	}
	// A column spelling the label exactly beats any containment match;
	// without this, "VAT" would lose to an earlier "Amount (Inc VAT)".
	for _, col := range columns {
		if strings.EqualFold(col, f.Label) {
			return col
		}
	}
	label := strings.ToLower(f.Label)
	for _, col := range columns {
		c := strings.ToLower(col)
		if c == "" {
			continue
		}
		if strings.Contains(c, label) || strings.Contains(label, c) {
			return col
		}
	}
	return ""
}

// Apply overlays caller-supplied overrides onto the proposed mapping.
// Overriding is pure data manipulation with no effect on detection.
func (m ColumnMapping) Apply(overrides map[string]string) {
	for field, col := range overrides {
		m[field] = col
	}
}

// MissingRequired returns required fields that remain unmapped
func (m ColumnMapping) MissingRequired(fields []FieldSpec) []string {
	var missing []string
	for _, f := range fields {
		if f.Required && m[f.Name] == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}
