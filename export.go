package stockroom

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSVHeader is the header line of WriteCSV.
var CSVHeader = []string{"Name", "Qty", "Low Threshold", "Price", "Total"}

// WriteCSV writes rows as CSV, prices and totals with two decimals.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("could not write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Name,
			strconv.Itoa(r.Quantity),
			strconv.Itoa(r.LowThreshold),
			r.Price.Fixed(),
			r.Total.Fixed(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("could not write csv row %q: %w", r.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
