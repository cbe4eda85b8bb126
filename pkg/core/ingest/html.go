package ingest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"dealdesk/pkg/models"
)

// ImportHTML extracts periods from the first <table> of an HTML
// fragment (a pasted statement or a converted spreadsheet), using the
// same header-row/label-column shape as ImportCSV.
func ImportHTML(html string) ([]*models.FinancialPeriod, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table found in document")
	}

	var periods []*models.FinancialPeriod
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td, th")

		// Header row: a label column plus one period per column.
		if i == 0 {
			cells.Each(func(j int, cell *goquery.Selection) {
				if j == 0 {
					return
				}
				periods = append(periods, models.NewFinancialPeriod(strings.TrimSpace(cell.Text())))
			})
			return
		}

		var key string
		known := false
		cells.Each(func(j int, cell *goquery.Selection) {
			text := strings.TrimSpace(cell.Text())
			if j == 0 {
				key, known = CanonicalField(text)
				return
			}
			if !known || j-1 >= len(periods) {
				return
			}
			periods[j-1].SetField(key, models.AmountFromText(text))
		})
	})

	if len(periods) == 0 {
		return nil, fmt.Errorf("table has no period columns")
	}
	return periods, nil
}
