package extract

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"
)

const spreadsheetBanner = "[Limited spreadsheet support: cell values only, formulas and formatting are not evaluated.]"

// extractSpreadsheet scrapes cell text from a spreadsheet upload. OOXML
// workbooks (.xlsx) are read sheet by sheet with excelize; the legacy .xls
// binary format has no parser here and degrades to a printable-byte scrape.
// Either way the result opens with an explicit limited-support banner and
// the path never fails.
func extractSpreadsheet(content []byte, ext string) string {
	if ext != ".xls" {
		if text := scrapeWorkbook(content); text != "" {
			return spreadsheetBanner + "\n\n" + text
		}
	}
	scraped := scrapePrintable(content)
	if scraped == "" {
		return spreadsheetBanner + "\n\nNo readable cell text was found in this spreadsheet."
	}
	return spreadsheetBanner + "\n\n" + scraped
}

// scrapeWorkbook renders each sheet's rows tab-separated, one row per line.
// Returns "" when the workbook cannot be opened or holds no text.
func scrapeWorkbook(content []byte) string {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return ""
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String())
}
