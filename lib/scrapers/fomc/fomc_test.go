package fomc

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"dotplot-scraper/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newFixtureClient(t *testing.T, dir string) *Client {
	srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientOptions{BaseUrl: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestFetchMeetings(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/fomc")
	defer cleanup()

	client := newFixtureClient(t, "testdata")

	meetings, err := client.FetchMeetings(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, meetings, 2)
	require.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), meetings[0].Date)
	require.Equal(t, time.Date(2024, 9, 18, 0, 0, 0, 0, time.UTC), meetings[1].Date)
	require.Contains(t, meetings[0].Url, "/monetarypolicy/fomcprojtabl20240612.htm")
}

func TestScrape(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/fomc")
	defer cleanup()

	client := newFixtureClient(t, "testdata")

	rows, err := client.Scrape(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	require.Greater(t, len(rows), 0)

	for _, r := range rows {
		require.GreaterOrEqual(t, r.Rate, 0.0)
		require.LessOrEqual(t, r.Rate, 25.0)
		require.GreaterOrEqual(t, r.Year, 1000)
		require.LessOrEqual(t, r.Year, 9999)
		require.Greater(t, r.Count, 0)
		require.False(t, r.MeetingDate.IsZero())
	}

	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if d := prev.MeetingDate.Compare(cur.MeetingDate); d != 0 {
			require.Negative(t, d)
			continue
		}
		if prev.Year != cur.Year {
			require.Less(t, prev.Year, cur.Year)
			continue
		}
		require.Less(t, prev.Rate, cur.Rate)
	}

	june := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	var june2025 []Row
	for _, r := range rows {
		if r.MeetingDate.Equal(june) && r.Year == 2025 {
			june2025 = append(june2025, r)
		}
	}
	expected := []Row{
		{MeetingDate: june, Year: 2025, Rate: 5.25, Count: 3},
		{MeetingDate: june, Year: 2025, Rate: 5.5, Count: 2},
	}
	if diff := cmp.Diff(expected, june2025); diff != "" {
		t.Fatalf("unexpected rows for june 2025 (-want +got):\n%s", diff)
	}
}

func TestScrapeDeterministic(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/fomc")
	defer cleanup()

	client := newFixtureClient(t, "testdata")

	var outputs [][]byte
	for i := 0; i < 2; i++ {
		rows, err := client.Scrape(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		buf := bytes.Buffer{}
		err = WriteCSV(&buf, rows)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, buf.Bytes())
	}

	require.Equal(t, outputs[0], outputs[1])

	golden, err := os.ReadFile("testdata/golden.csv")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, string(golden), string(outputs[0]))
}

func TestMissingTable(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/fomc")
	defer cleanup()

	client := newFixtureClient(t, "testdata/broken")

	rows, err := client.Scrape(context.Background())
	require.Nil(t, rows)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Contains(t, parseErr.URL, "fomcprojtabl20240612.htm")
}

func TestFetchError(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/fomc")
	defer cleanup()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient(ClientOptions{BaseUrl: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	rows, err := client.Scrape(context.Background())
	require.Nil(t, rows)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
}

func TestParseMeetingDate(t *testing.T) {
	date, err := parseMeetingDate("/monetarypolicy/fomcprojtabl20240612.htm")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), date)

	_, err = parseMeetingDate("/monetarypolicy/fomccalendars.htm")
	require.Error(t, err)
}
