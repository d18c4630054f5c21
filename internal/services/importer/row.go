package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Value is one coerced canonical field value. Kind says which member is
// populated; Defaulted records that the coercer fell back to its
// documented default.
type Value struct {
	Kind      FieldKind
	Text      string
	Date      time.Time
	Amount    decimal.Decimal
	Bool      bool
	Contact   ResolvedContact
	Defaulted bool
}

// CanonicalRecord holds typed values keyed by canonical field name. Only
// canonical values reach persistence; raw strings never cross that
// boundary.
type CanonicalRecord map[string]Value

func (rec CanonicalRecord) Text(name string) string            { return rec[name].Text }
func (rec CanonicalRecord) Date(name string) time.Time         { return rec[name].Date }
func (rec CanonicalRecord) Bool(name string) bool              { return rec[name].Bool }
func (rec CanonicalRecord) Contact(name string) ResolvedContact { return rec[name].Contact }

func (rec CanonicalRecord) Amount(name string) decimal.Decimal {
	v, ok := rec[name]
	if !ok {
		return decimal.Zero
	}
	return v.Amount
}

// ImportOutcome is the result of processing exactly one input row
type ImportOutcome struct {
	Row    int               `json:"row"` // 1-based position among data rows
	ID     string            `json:"id,omitempty"`
	Record map[string]string `json:"record,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// Failed reports whether the row produced a failure outcome
func (o ImportOutcome) Failed() bool {
	return o.Error != ""
}

// persistFunc commits a canonical record and returns its stable identifier
type persistFunc func(userID uuid.UUID, rec CanonicalRecord, format Format) (string, error)

// rowImporter applies mapping, coercion, and resolution to single rows.
// All failures are caught at row granularity; the batch continues.
type rowImporter struct {
	layout   *HeaderLayout
	mapping  ColumnMapping
	fields   []FieldSpec
	resolver *ContactResolver
	persist  persistFunc
	userID   uuid.UUID
}

// importRow produces exactly one outcome for one raw row
func (ri *rowImporter) importRow(cells []string, rowNum int) ImportOutcome {
	if len(cells) != len(ri.layout.Columns) {
		return failure(rowNum, fmt.Sprintf("row has %d cells, header has %d columns", len(cells), len(ri.layout.Columns)))
	}

	// Project cells into source-column-named values; on duplicate column
	// names the first occurrence wins, matching the mapper's tie-break.
	src := make(map[string]string, len(cells))
	for i, col := range ri.layout.Columns {
		if _, ok := src[col]; !ok {
			src[col] = cells[i]
		}
	}

	rec := make(CanonicalRecord, len(ri.fields))
	for _, f := range ri.fields {
		col := ri.mapping[f.Name]
		if col == "" {
			continue
		}
		raw := src[col]

		switch f.Kind {
		case KindDate:
			d, defaulted := CoerceDate(raw)
			rec[f.Name] = Value{Kind: KindDate, Date: d, Defaulted: defaulted}
		case KindAmount:
			a, defaulted := CoerceAmount(raw)
			rec[f.Name] = Value{Kind: KindAmount, Amount: a, Defaulted: defaulted}
		case KindBool:
			rec[f.Name] = Value{Kind: KindBool, Bool: CoerceBool(raw)}
		case KindContact:
			name := CoerceText(raw, false)
			if name == "" {
				if f.Required {
					return failure(rowNum, fmt.Sprintf("missing required field %s", f.Name))
				}
				continue
			}
			ref, err := ri.resolver.Resolve(ri.userID, name)
			if err != nil {
				return failure(rowNum, err.Error())
			}
			rec[f.Name] = Value{Kind: KindContact, Text: name, Contact: ref}
		default:
			rec[f.Name] = Value{Kind: KindText, Text: CoerceText(raw, false)}
		}
	}

	// Dates and amounts default rather than fail; text and contact
	// fields have no usable default, so empties are row errors.
	for _, f := range ri.fields {
		if !f.Required {
			continue
		}
		if f.Kind == KindText && rec.Text(f.Name) == "" {
			return failure(rowNum, fmt.Sprintf("missing required field %s", f.Name))
		}
	}

	id, err := ri.persist(ri.userID, rec, ri.layout.Format)
	if err != nil {
		return failure(rowNum, err.Error())
	}

	return ImportOutcome{Row: rowNum, ID: id, Record: rec.display()}
}

func failure(rowNum int, reason string) ImportOutcome {
	return ImportOutcome{Row: rowNum, Error: reason}
}

// display renders a record's values as strings for echoing back to the
// caller alongside the summary.
func (rec CanonicalRecord) display() map[string]string {
	out := make(map[string]string, len(rec))
	for name, v := range rec {
		switch v.Kind {
		case KindDate:
			out[name] = v.Date.Format("2006-01-02")
		case KindAmount:
			out[name] = v.Amount.String()
		case KindBool:
			if v.Bool {
				out[name] = "true"
			} else {
				out[name] = "false"
			}
		case KindContact:
			out[name] = v.Text
		default:
			out[name] = v.Text
		}
	}
	return out
}
