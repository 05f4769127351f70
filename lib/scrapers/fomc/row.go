package fomc

import (
	"slices"
	"time"
)

// Row is one normalized projection: the number of committee
// participants projecting a given rate midpoint for a given year,
// published at a given meeting.
type Row struct {
	MeetingDate time.Time
	Year        int
	Rate        float64
	Count       int
}

func sortRows(rows []Row) {
	slices.SortFunc(rows, func(a, b Row) int {
		if c := a.MeetingDate.Compare(b.MeetingDate); c != 0 {
			return c
		}
		if a.Year != b.Year {
			if a.Year < b.Year {
				return -1
			}
			return 1
		}
		if a.Rate < b.Rate {
			return -1
		}
		if a.Rate > b.Rate {
			return 1
		}
		return 0
	})
}
