package importer

import (
	"reflect"
	"testing"
)

func TestProposeMapping(t *testing.T) {
	fields := []FieldSpec{
		{Name: "order_number", Label: "Order Number", Kind: KindText, Required: true},
		{Name: "contact_name", Label: "Contact", Kind: KindContact, Required: true},
		{Name: "price", Label: "Order Total", Kind: KindAmount},
	}

	tests := []struct {
		name    string
		columns []string
		want    ColumnMapping
	}{
		{
			name:    "exact canonical names",
			columns: []string{"order_number", "contact_name", "price"},
			want:    ColumnMapping{"order_number": "order_number", "contact_name": "contact_name", "price": "price"},
		},
		{
			name:    "case insensitive names",
			columns: []string{"ORDER_NUMBER", "Contact_Name"},
			want:    ColumnMapping{"order_number": "ORDER_NUMBER", "contact_name": "Contact_Name", "price": ""},
		},
		{
			name:    "label containment",
			columns: []string{"Order Number", "Contact", "Order Total"},
			want:    ColumnMapping{"order_number": "Order Number", "contact_name": "Contact", "price": "Order Total"},
		},
		{
			name:    "column containing the label",
			columns: []string{"Order Number (ref)", "Contact Name", "Total"},
			want:    ColumnMapping{"order_number": "Order Number (ref)", "contact_name": "Contact Name", "price": "Total"},
		},
		{
			name:    "exact beats label containment",
			columns: []string{"Order Number", "order_number"},
			want:    ColumnMapping{"order_number": "order_number", "contact_name": "", "price": ""},
		},
		{
			name:    "first matching column wins",
			columns: []string{"Contact", "Contact (billing)"},
			want:    ColumnMapping{"order_number": "", "contact_name": "Contact", "price": ""},
		},
		{
			name:    "empty columns skipped",
			columns: []string{"", "Contact"},
			want:    ColumnMapping{"order_number": "", "contact_name": "Contact", "price": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProposeMapping(tt.columns, fields)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ProposeMapping(%v) = %v, want %v", tt.columns, got, tt.want)
			}
			// Proposing again on the same header must not change the result
			again := ProposeMapping(tt.columns, fields)
			if !reflect.DeepEqual(got, again) {
				t.Errorf("ProposeMapping not deterministic: %v then %v", got, again)
			}
		})
	}
}

func TestProposeMappingLabelEqualityBeatsContainment(t *testing.T) {
	fields := []FieldSpec{
		{Name: "amount", Label: "Amount (Inc VAT)", Kind: KindAmount, Required: true},
		{Name: "vat_amount", Label: "VAT", Kind: KindAmount},
	}
	columns := []string{"Amount (Inc VAT)", "VAT"}

	got := ProposeMapping(columns, fields)
	if got["amount"] != "Amount (Inc VAT)" {
		t.Errorf("amount mapped to %q, want %q", got["amount"], "Amount (Inc VAT)")
	}
	if got["vat_amount"] != "VAT" {
		t.Errorf("vat_amount mapped to %q, want %q", got["vat_amount"], "VAT")
	}
}

func TestColumnMappingApply(t *testing.T) {
	m := ColumnMapping{"order_number": "Order Number", "contact_name": ""}
	m.Apply(map[string]string{"contact_name": "Customer", "order_number": "Ref"})

	if m["contact_name"] != "Customer" {
		t.Errorf("contact_name = %q, want %q", m["contact_name"], "Customer")
	}
	if m["order_number"] != "Ref" {
		t.Errorf("order_number = %q, want %q", m["order_number"], "Ref")
	}
}

func TestMissingRequired(t *testing.T) {
	fields := []FieldSpec{
		{Name: "order_number", Required: true},
		{Name: "contact_name", Required: true},
		{Name: "notes"},
	}

	m := ColumnMapping{"order_number": "Order Number", "contact_name": "", "notes": ""}
	got := m.MissingRequired(fields)
	want := []string{"contact_name"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MissingRequired() = %v, want %v", got, want)
	}

	m["contact_name"] = "Contact"
	if missing := m.MissingRequired(fields); missing != nil {
		t.Errorf("MissingRequired() = %v, want nil", missing)
	}
}
