package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// maxCSVRecords is how many data rows are rendered in full.
const maxCSVRecords = 10

const csvHint = "the file is not valid CSV; re-export it from your spreadsheet tool"

// extractCSV parses content with header inference and renders a report:
// the header list, the record count, and up to the first 10 records as
// "field: value" blocks with a truncation notice beyond that. Individual
// malformed rows are skipped; only a wholly unparseable file raises.
func extractCSV(content []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return "", corruptedErr("CSV", csvHint, err)
	}

	var records [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Row-level damage: skip the row, keep the rest.
			continue
		}
		records = append(records, row)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Headers: %s\n", strings.Join(header, ", "))
	fmt.Fprintf(&b, "Total records: %d\n", len(records))

	shown := len(records)
	if shown > maxCSVRecords {
		shown = maxCSVRecords
	}
	for i := 0; i < shown; i++ {
		fmt.Fprintf(&b, "\nRecord %d:\n", i+1)
		for j, field := range header {
			value := ""
			if j < len(records[i]) {
				value = records[i][j]
			}
			fmt.Fprintf(&b, "  %s: %s\n", field, value)
		}
	}
	if len(records) > maxCSVRecords {
		fmt.Fprintf(&b, "\n...and %d more rows\n", len(records)-maxCSVRecords)
	}
	return strings.TrimSpace(b.String()), nil
}
