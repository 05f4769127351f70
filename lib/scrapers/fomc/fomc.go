package fomc

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"dotplot-scraper/lib/htmlutil"
	"dotplot-scraper/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("scrapers/fomc")

const DefaultBaseUrl = "https://www.federalreserve.gov"

// page that links every meeting's projection materials
const calendarsPath = "/monetarypolicy/fomccalendars.htm"

// Meeting is one FOMC meeting with published projection materials.
type Meeting struct {
	Date time.Time
	Url  string
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	// overrides DefaultBaseUrl, used to point tests at fixture servers
	BaseUrl string
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/fomc/http")

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
	return c, nil
}

func (c *Client) get(ctx context.Context, link string) (*goquery.Document, error) {
	fullUrl := link
	if strings.HasPrefix(link, "/") {
		fullUrl = c.BaseUrl.String() + link
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, &FetchError{URL: fullUrl, Err: err}
	}
	if res.IsError() {
		return nil, &FetchError{URL: fullUrl, StatusCode: res.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, &ParseError{URL: fullUrl, Reason: err.Error()}
	}
	return doc, nil
}

// FetchMeetings scrapes the FOMC calendar for every meeting that has
// an html projection table published, sorted by date ascending.
func (c *Client) FetchMeetings(ctx context.Context) ([]Meeting, error) {
	ctx, span := tracer.Start(ctx, "FetchMeetings")
	defer span.End()

	doc, err := c.get(ctx, calendarsPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch calendar page")
		return nil, err
	}

	seen := map[string]bool{}
	var meetings []Meeting
	for _, anchor := range htmlutil.GetAnchors(ctx, doc.Find("a")) {
		if !strings.Contains(anchor.Href, "fomcprojtabl") || !strings.Contains(anchor.Href, ".htm") {
			continue
		}

		link, err := url.Parse(anchor.Href)
		if err != nil {
			continue
		}
		resolved := c.BaseUrl.ResolveReference(link).String()
		if seen[resolved] {
			continue
		}
		seen[resolved] = true

		date, err := parseMeetingDate(anchor.Href)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to parse meeting date")
			return nil, &ParseError{URL: resolved, Reason: err.Error()}
		}

		meetings = append(meetings, Meeting{
			Date: date,
			Url:  resolved,
		})
	}

	if len(meetings) == 0 {
		return nil, &ParseError{
			URL:    c.BaseUrl.String() + calendarsPath,
			Reason: "no projection table links on calendar page",
		}
	}

	slices.SortFunc(meetings, func(a, b Meeting) int {
		return a.Date.Compare(b.Date)
	})

	slog.DebugContext(ctx, "discovered projection pages", "count", len(meetings))
	return meetings, nil
}

// projection page urls end in the meeting date: fomcprojtabl<yyyymmdd>.htm
func parseMeetingDate(href string) (time.Time, error) {
	_, tail, found := strings.Cut(href, "fomcprojtabl")
	if !found {
		return time.Time{}, fmt.Errorf("no date in url: %s", href)
	}
	tail = strings.ReplaceAll(tail, ".htm", "")
	if len(tail) < 8 {
		return time.Time{}, fmt.Errorf("no date in url: %s", href)
	}
	return time.Parse("20060102", tail[len(tail)-8:])
}

// FetchProjections parses the policy-rate projection table from one
// meeting page into normalized rows, sorted by year then rate.
func (c *Client) FetchProjections(ctx context.Context, meeting Meeting) ([]Row, error) {
	ctx, span := tracer.Start(ctx, "FetchProjections", trace.WithAttributes(
		attribute.String("url", meeting.Url),
	))
	defer span.End()

	doc, err := c.get(ctx, meeting.Url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch projection page")
		return nil, err
	}

	sel := findProjectionTable(doc)
	if sel == nil {
		err := &ParseError{URL: meeting.Url, Reason: "policy assessment table not found"}
		span.RecordError(err)
		span.SetStatus(codes.Error, "table marker missing")
		return nil, err
	}

	g, err := parseTable(sel)
	if err != nil {
		return nil, &ParseError{URL: meeting.Url, Reason: err.Error()}
	}
	rows, err := gridToRows(g, meeting.Date)
	if err != nil {
		return nil, &ParseError{URL: meeting.Url, Reason: err.Error()}
	}

	sortRows(rows)
	return rows, nil
}

// Scrape runs the whole pipeline: discover every projection page,
// parse each one, and return all rows sorted by meeting date, year and
// rate. Any failure aborts the run, partial output is never returned.
func (c *Client) Scrape(ctx context.Context) ([]Row, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	meetings, err := c.FetchMeetings(ctx)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for _, meeting := range meetings {
		slog.DebugContext(
			ctx, "scraping projections",
			"date", meeting.Date.Format(time.DateOnly),
			"url", meeting.Url,
		)
		parsed, err := c.FetchProjections(ctx, meeting)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to scrape projection page")
			return nil, err
		}
		rows = append(rows, parsed...)
	}

	sortRows(rows)
	return rows, nil
}
