// Package importer ingests CSV exports from prior products and commits
// the rows as bakery records. One pipeline serves every entity type,
// parameterized by a canonical field table.
package importer

// EntityType selects the canonical field table and persistence target
type EntityType string

const (
	EntityOrders   EntityType = "orders"
	EntityExpenses EntityType = "expenses"
)

// FieldKind selects the coercer applied to a raw cell value
type FieldKind int

const (
	KindText FieldKind = iota
	KindDate
	KindAmount
	KindBool
	KindContact // free-text name resolved to a contact record
)

// FieldSpec describes one canonical target field
type FieldSpec struct {
	Name     string // canonical name, stable across source formats
	Label    string // human label, used for fuzzy header matching
	Kind     FieldKind
	Required bool
}

// Canonical order fields. OrderNumber is the natural key used for
// idempotent upsert on re-import.
var orderFields = []FieldSpec{
	{Name: "order_number", Label: "Order Number", Kind: KindText, Required: true},
	{Name: "contact_name", Label: "Contact", Kind: KindContact, Required: true},
	{Name: "event_date", Label: "Event Date", Kind: KindDate, Required: true},
	{Name: "event_type", Label: "Event Type", Kind: KindText},
	{Name: "description", Label: "Theme", Kind: KindText},
	{Name: "price", Label: "Order Total", Kind: KindAmount},
	{Name: "status", Label: "Status", Kind: KindText},
	{Name: "notes", Label: "Notes", Kind: KindText},
	{Name: "expiry_date", Label: "Expiry Date", Kind: KindDate},
}

// Canonical expense fields. Expense exports carry no natural key; rows
// are deduplicated by a hash of their canonical content instead.
var expenseFields = []FieldSpec{
	{Name: "vendor", Label: "Vendor", Kind: KindText, Required: true},
	{Name: "amount", Label: "Amount (Inc VAT)", Kind: KindAmount, Required: true},
	{Name: "date", Label: "Date", Kind: KindDate, Required: true},
	{Name: "description", Label: "Description", Kind: KindText},
	{Name: "vat_amount", Label: "VAT", Kind: KindAmount},
	{Name: "category", Label: "Category", Kind: KindText},
	{Name: "paid", Label: "Paid", Kind: KindBool},
}

// FieldsFor returns the canonical field table for an entity type
func FieldsFor(entity EntityType) []FieldSpec {
	switch entity {
	case EntityExpenses:
		return expenseFields
	default:
		return orderFields
	}
}

// RequiredFields returns the names of required fields in table order
func RequiredFields(fields []FieldSpec) []string {
	var names []string
	for _, f := range fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}
