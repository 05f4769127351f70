package fomc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"dotplot-scraper/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// text that identifies the heading directly above the projections table
const tableMarker = "assessments of appropriate monetary policy"

func findProjectionTable(doc *goquery.Document) *goquery.Selection {
	var table *goquery.Selection
	doc.Find("h4, h5").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(s.Text()), tableMarker) {
			return true
		}
		next := s.NextAllFiltered("table").First()
		if next.Length() == 0 {
			next = s.Parent().NextAllFiltered("table").First()
		}
		if next.Length() > 0 {
			table = next
			return false
		}
		return true
	})
	return table
}

// grid is the typed intermediate between the DOM and Row values.
// everything past parseTable works on strings, never on selections,
// so markup drift surfaces in exactly one place.
type grid struct {
	headers []string
	rows    [][]string
}

func parseTable(sel *goquery.Selection) (grid, error) {
	var g grid
	sel.Find("thead tr").First().Find("th").Each(func(_ int, th *goquery.Selection) {
		g.headers = append(g.headers, htmlutil.CleanText(th.Text()))
	})
	if len(g.headers) == 0 {
		return g, fmt.Errorf("projection table has no header row")
	}
	sel.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, htmlutil.CleanText(cell.Text()))
		})
		g.rows = append(g.rows, cells)
	})
	return g, nil
}

var yearHeader = regexp.MustCompile(`^\d{4}$`)

// gridToRows maps a parsed table onto projection rows. the first
// column holds the rate midpoint, every four-digit header is a target
// year column holding participant counts. columns like "Longer run"
// and filler rows with non-numeric labels produce no rows.
func gridToRows(g grid, meetingDate time.Time) ([]Row, error) {
	years := map[int]int{}
	for i, h := range g.headers {
		if !yearHeader.MatchString(h) {
			continue
		}
		year, err := strconv.Atoi(h)
		if err != nil {
			continue
		}
		years[i] = year
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("no year columns in projection table header")
	}

	var rows []Row
	for _, cells := range g.rows {
		if len(cells) == 0 {
			continue
		}
		rate, err := strconv.ParseFloat(cells[0], 64)
		if err != nil {
			continue
		}
		if rate < 0 || rate > 25 {
			return nil, fmt.Errorf("rate midpoint %v outside the plausible percent range", rate)
		}

		for col, year := range years {
			if col >= len(cells) {
				continue
			}
			count, err := strconv.Atoi(cells[col])
			if err != nil || count == 0 {
				continue
			}
			rows = append(rows, Row{
				MeetingDate: meetingDate,
				Year:        year,
				Rate:        rate,
				Count:       count,
			})
		}
	}
	return rows, nil
}
