package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes the table as CSV: a header row with Columns(), then one
// line per row with values in shortest round-trip form.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	record := make([]string, len(t.names)+1)
	for i := range t.Len() {
		for c := range t.names {
			record[c] = strconv.FormatFloat(t.params[c][i], 'g', -1, 64)
		}
		record[len(t.names)] = strconv.FormatFloat(t.scores[i], 'g', -1, 64)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i, err)
		}
	}

	cw.Flush()

	return cw.Error()
}
