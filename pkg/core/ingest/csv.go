package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"dealdesk/pkg/models"
)

// ImportCSV reads a spreadsheet-style export: the header row carries
// period names ("Line Item", "2022", "2023", ...) and each following
// row a statement label plus one value per period. Rows whose label has
// no alias are skipped; values parse leniently, so "$1,250,000" and
// blanks are fine.
func ImportCSV(r io.Reader) ([]*models.FinancialPeriod, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may be ragged
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("header row needs at least one period column")
	}

	periods := make([]*models.FinancialPeriod, 0, len(header)-1)
	for _, name := range header[1:] {
		periods = append(periods, models.NewFinancialPeriod(strings.TrimSpace(name)))
	}

	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read data row: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		key, ok := CanonicalField(row[0])
		if !ok {
			skipped++
			continue
		}
		for i, p := range periods {
			col := i + 1
			if col >= len(row) {
				break
			}
			p.SetField(key, models.AmountFromText(row[col]))
		}
	}
	if skipped > 0 {
		log.Printf("[INGEST] Skipped %d unrecognized row labels", skipped)
	}
	return periods, nil
}
