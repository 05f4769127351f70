package fomc

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func parseFixtureTable(t *testing.T, page string) grid {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	sel := findProjectionTable(doc)
	require.NotNil(t, sel)

	g, err := parseTable(sel)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

const fixturePage = `
<html><body>
<h4>Figure 2. FOMC participants' assessments of appropriate monetary policy</h4>
<table>
<thead><tr>
<th>Midpoint of target range or target level (Percent)</th>
<th>2025</th><th>2026</th><th>Longer run</th>
</tr></thead>
<tbody>
<tr><th>Number of participants with projected midpoint</th><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td></tr>
<tr><th>3.125</th><td>4</td><td>&nbsp;</td><td>2</td></tr>
<tr><th>3.375</th><td>&nbsp;</td><td>5</td><td>&nbsp;</td></tr>
</tbody>
</table>
</body></html>`

func TestParseTable(t *testing.T) {
	g := parseFixtureTable(t, fixturePage)

	require.Equal(t, []string{
		"Midpoint of target range or target level (Percent)",
		"2025", "2026", "Longer run",
	}, g.headers)
	require.Len(t, g.rows, 3)
	require.Equal(t, []string{"3.125", "4", "", "2"}, g.rows[1])
}

func TestGridToRows(t *testing.T) {
	g := parseFixtureTable(t, fixturePage)

	date := time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)
	rows, err := gridToRows(g, date)
	if err != nil {
		t.Fatal(err)
	}
	sortRows(rows)

	expected := []Row{
		{MeetingDate: date, Year: 2025, Rate: 3.125, Count: 4},
		{MeetingDate: date, Year: 2026, Rate: 3.375, Count: 5},
	}
	if diff := cmp.Diff(expected, rows); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
}

func TestGridToRowsNoYearColumns(t *testing.T) {
	g := grid{
		headers: []string{"Midpoint", "Longer run"},
		rows:    [][]string{{"3.125", "4"}},
	}
	_, err := gridToRows(g, time.Now())
	require.Error(t, err)
}

func TestGridToRowsImplausibleRate(t *testing.T) {
	g := grid{
		headers: []string{"Midpoint", "2025"},
		rows:    [][]string{{"312.5", "4"}},
	}
	_, err := gridToRows(g, time.Now())
	require.ErrorContains(t, err, "plausible")
}

func TestFindProjectionTableIgnoresOtherTables(t *testing.T) {
	page := `
<html><body>
<h4>Table 1. Economic projections</h4>
<table><thead><tr><th>Variable</th><th>2025</th></tr></thead>
<tbody><tr><th>Change in real GDP</th><td>1.8</td></tr></tbody></table>
<h4>Assessments of appropriate monetary policy: midpoint of target range</h4>
<table><thead><tr><th>Midpoint</th><th>2025</th></tr></thead>
<tbody><tr><th>4.125</th><td>3</td></tr></tbody></table>
</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	sel := findProjectionTable(doc)
	require.NotNil(t, sel)

	g, err := parseTable(sel)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, [][]string{{"4.125", "3"}}, g.rows)
}
