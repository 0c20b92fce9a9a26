package encar

import (
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/MICROWAVE-web/EncarParsing/models"
	"github.com/MICROWAVE-web/EncarParsing/utils"
)

// FetchErrorKind classifies a failed page request.
type FetchErrorKind string

const (
	// FetchTransport is a network or timeout failure.
	FetchTransport FetchErrorKind = "transport"
	// FetchStatus is a non-200 response.
	FetchStatus FetchErrorKind = "status"
	// FetchDecode is a response body that is not valid JSON.
	FetchDecode FetchErrorKind = "decode"
)

// FetchError describes a failed page request. All variants are recoverable:
// the controller abandons the current year and moves on.
type FetchError struct {
	Kind      FetchErrorKind
	YearRange string
	Offset    int
	Status    int
	Err       error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchStatus:
		return fmt.Sprintf("fetch %s offset %d: status %d", e.YearRange, e.Offset, e.Status)
	default:
		return fmt.Sprintf("fetch %s offset %d: %s: %v", e.YearRange, e.Offset, e.Kind, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// YearRange maps a model year to the half-open numeric filter interval
// covering its two-digit sub-codes, e.g. 2025 -> "202500..202599".
func YearRange(year int) string {
	start := year * 100
	return fmt.Sprintf("%d..%d", start, start+99)
}

// Fetcher issues single authenticated paginated queries against the
// search API.
type Fetcher struct {
	client   *resty.Client
	baseURL  string
	pageSize int
	logger   *utils.Logger
}

// NewFetcher creates a Fetcher on top of an authenticated session.
func NewFetcher(client *resty.Client, baseURL string, pageSize int, logger *utils.Logger) *Fetcher {
	return &Fetcher{client: client, baseURL: baseURL, pageSize: pageSize, logger: logger}
}

type searchResponse struct {
	Count         int             `json:"Count"`
	SearchResults []models.RawCar `json:"SearchResults"`
}

// FetchPage requests one page for the year range at the given offset, sorted
// by last-modified descending. An empty result slice is a valid success and
// signals end-of-data for the range. Failures come back as *FetchError and
// are logged with their context here.
func (f *Fetcher) FetchPage(yearRange string, offset int) ([]models.RawCar, error) {
	f.logger.Info("[fetch] Range %s, offset %d", yearRange, offset)

	res, err := f.client.R().
		SetQueryParams(map[string]string{
			"count": "true",
			"q":     fmt.Sprintf("(And.Hidden.N._.Year.range(%s).)", yearRange),
			"sr":    fmt.Sprintf("|ModifiedDate|%d|%d", offset, f.pageSize),
		}).
		Get(f.baseURL)
	if err != nil {
		ferr := &FetchError{Kind: FetchTransport, YearRange: yearRange, Offset: offset, Err: err}
		f.logger.Error("[fetch] HTTP error (%s, offset %d): %v", yearRange, offset, err)
		return nil, ferr
	}

	if res.StatusCode() != 200 {
		ferr := &FetchError{Kind: FetchStatus, YearRange: yearRange, Offset: offset, Status: res.StatusCode()}
		f.logger.Error("[fetch] API returned status %d for range %s, offset %d: %s",
			res.StatusCode(), yearRange, offset, bodyExcerpt(res.Body()))
		return nil, ferr
	}

	var payload searchResponse
	if err := json.Unmarshal(res.Body(), &payload); err != nil {
		ferr := &FetchError{Kind: FetchDecode, YearRange: yearRange, Offset: offset, Err: err}
		f.logger.Error("[fetch] Could not decode JSON (%s, offset %d): %v", yearRange, offset, err)
		return nil, ferr
	}

	f.logger.Info("[fetch] Got %d results", len(payload.SearchResults))
	return payload.SearchResults, nil
}

func bodyExcerpt(body []byte) string {
	if len(body) > 500 {
		body = body[:500]
	}
	return string(body)
}
