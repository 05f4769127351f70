package fomc

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// WriteCSV emits the header and one record per row. rows are written
// in the order given, callers get deterministic output because Scrape
// and FetchProjections always sort before returning.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	err := cw.Write([]string{"meeting_date", "year", "rate", "count"})
	if err != nil {
		return err
	}
	for _, r := range rows {
		err := cw.Write([]string{
			r.MeetingDate.Format(time.DateOnly),
			strconv.Itoa(r.Year),
			strconv.FormatFloat(r.Rate, 'f', -1, 64),
			strconv.Itoa(r.Count),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
