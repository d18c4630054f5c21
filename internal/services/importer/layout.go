package importer

import (
	"errors"
	"strings"
)

// Format tags the structural variant a file was detected as
type Format string

const (
	FormatStandard     Format = "standard_csv"
	FormatBannerExport Format = "bake_diary_csv"
)

// bannerMarker identifies the legacy Bake Diary export, which prints two
// banner lines above the actual header row.
const bannerMarker = "Bake Diary"

// bannerScanRows bounds the banner search to the top of the file
const bannerScanRows = 3

// ErrMalformedFile is the one global structural failure: without a
// locatable header row no mapping is possible and the batch aborts.
var ErrMalformedFile = errors.New("no parseable header row found")

// HeaderLayout records where the header row sits and what it contains
type HeaderLayout struct {
	HeaderRow int      `json:"headerRow"` // 0-based index into the tokenized rows
	Columns   []string `json:"columns"`
	Format    Format   `json:"format"`
}

// DetectLayout inspects the first few tokenized rows and decides which
// structural variant the file uses.
//
// A VAT signature on row 0 wins outright: it is a column-content signal,
// stronger than the banner's row-position heuristic. Otherwise a banner
// marker on row i places the header at i+2 (the legacy export prints two
// banner lines first). With neither, row 0 is the header.
func DetectLayout(rows [][]string) (*HeaderLayout, error) {
	if len(rows) < 2 {
		return nil, ErrMalformedFile
	}

	if hasVATSignature(rows[0]) {
		return &HeaderLayout{HeaderRow: 0, Columns: trimCells(rows[0]), Format: FormatStandard}, nil
	}

	limit := bannerScanRows
	if len(rows) < limit {
		limit = len(rows)
	}
	for i := 0; i < limit; i++ {
		if rowContainsMarker(rows[i], bannerMarker) {
			headerRow := i + 2
			if headerRow >= len(rows) {
				return nil, ErrMalformedFile
			}
			return &HeaderLayout{HeaderRow: headerRow, Columns: trimCells(rows[headerRow]), Format: FormatBannerExport}, nil
		}
	}

	return &HeaderLayout{HeaderRow: 0, Columns: trimCells(rows[0]), Format: FormatStandard}, nil
}

// hasVATSignature reports whether a row looks like an expense export
// header: a tax-inclusive amount column, or a vendor plus VAT pair.
func hasVATSignature(row []string) bool {
	hasVendor, hasVAT := false, false
	for _, cell := range row {
		c := strings.ToLower(strings.TrimSpace(cell))
		if strings.Contains(c, "(inc vat)") || strings.Contains(c, "inc. vat") {
			return true
		}
		if strings.Contains(c, "vendor") || strings.Contains(c, "supplier") {
			hasVendor = true
		}
		if c == "vat" || strings.Contains(c, "vat amount") {
			hasVAT = true
		}
	}
	return hasVendor && hasVAT
}

func rowContainsMarker(row []string, marker string) bool {
	for _, cell := range row {
		if strings.Contains(cell, marker) {
			return true
		}
	}
	return false
}

func trimCells(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
