package fomc

import "fmt"

// FetchError reports a transport failure or a non-2xx response from
// the source site. Runs are never retried internally, the external
// scheduler is expected to re-run on its next trigger.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports that a fetched page no longer matches the
// expected markup. Fatal to the whole run, no partial output is valid.
type ParseError struct {
	URL    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.URL, e.Reason)
}
