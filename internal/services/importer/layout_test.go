package importer

import (
	"errors"
	"reflect"
	"testing"
)

func TestDetectLayout(t *testing.T) {
	tests := []struct {
		name       string
		rows       [][]string
		wantHeader int
		wantFormat Format
		wantErr    error
	}{
		{
			name: "plain header on row zero",
			rows: [][]string{
				{"Order Number", "Contact", "Event Date"},
				{"Q-1", "Jane Doe", "19/05/2025"},
			},
			wantHeader: 0,
			wantFormat: FormatStandard,
		},
		{
			name: "banner on row zero places header two rows down",
			rows: [][]string{
				{"Bake Diary Export"},
				{"Generated 01/05/2025"},
				{"Order Number", "Contact", "Event Date"},
				{"Q-1", "Jane Doe", "19/05/2025"},
			},
			wantHeader: 2,
			wantFormat: FormatBannerExport,
		},
		{
			name: "banner on row one",
			rows: [][]string{
				{"My Bakery"},
				{"Bake Diary Export"},
				{"Generated 01/05/2025"},
				{"Order Number", "Contact"},
				{"Q-1", "Jane"},
			},
			wantHeader: 3,
			wantFormat: FormatBannerExport,
		},
		{
			name: "vat signature beats banner",
			rows: [][]string{
				{"Vendor", "Amount (Inc VAT)", "Bake Diary", "Date"},
				{"Flour Co", "12.50", "", "01/05/2025"},
			},
			wantHeader: 0,
			wantFormat: FormatStandard,
		},
		{
			name: "vendor plus vat pair is a signature",
			rows: [][]string{
				{"Vendor", "Amount", "VAT", "Date"},
				{"Flour Co", "12.50", "2.08", "01/05/2025"},
			},
			wantHeader: 0,
			wantFormat: FormatStandard,
		},
		{
			name: "banner with no header row after it",
			rows: [][]string{
				{"Bake Diary Export"},
				{"Generated 01/05/2025"},
			},
			wantErr: ErrMalformedFile,
		},
		{
			name:    "single row",
			rows:    [][]string{{"Order Number", "Contact"}},
			wantErr: ErrMalformedFile,
		},
		{
			name:    "empty input",
			rows:    nil,
			wantErr: ErrMalformedFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := DetectLayout(tt.rows)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DetectLayout() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectLayout() error = %v", err)
			}
			if layout.HeaderRow != tt.wantHeader {
				t.Errorf("HeaderRow = %d, want %d", layout.HeaderRow, tt.wantHeader)
			}
			if layout.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", layout.Format, tt.wantFormat)
			}
			if !reflect.DeepEqual(layout.Columns, tt.rows[tt.wantHeader]) {
				t.Errorf("Columns = %v, want %v", layout.Columns, tt.rows[tt.wantHeader])
			}
		})
	}
}
