// Package easyenergy is a client for the easyEnergy tariff API. It
// fetches hourly electricity and gas prices for a span of calendar days
// and derives statistics such as extremes, averages and the price for
// the current hour.
package easyenergy

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Version is reported to the API in the User-Agent header.
const Version = "1.2.0"

const (
	defaultBaseURL = "https://mijn.easyenergy.com/nl/api/tariff/"
	defaultTimeout = 10 * time.Second

	energyEndpoint = "getapxtariffs"
	gasEndpoint    = "getlebatariffs"
)

// VatOption controls whether the API reports tariffs with VAT included.
type VatOption string

const (
	// VatDefault defers to the client-level setting.
	VatDefault VatOption = ""
	// VatInclude requests tariffs including VAT.
	VatInclude VatOption = "true"
	// VatExclude requests tariffs excluding VAT.
	VatExclude VatOption = "false"
)

// rawTariff is one record as returned by the tariff endpoints. Gas
// records carry their price in TariffUsage and leave TariffReturn zero.
type rawTariff struct {
	Timestamp    time.Time `json:"Timestamp"`
	SupplierID   int       `json:"SupplierId"`
	TariffUsage  float64   `json:"TariffUsage"`
	TariffReturn float64   `json:"TariffReturn"`
}

// Client fetches tariffs from the easyEnergy API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	ownsClient bool
	vat        VatOption
	location   *time.Location
	now        func() time.Time
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithVat sets the default VAT mode for requests. The default is
// VatInclude.
func WithVat(vat VatOption) Option {
	return func(c *Client) { c.vat = vat }
}

// WithTimeout sets the request timeout. The default is 10 seconds. It
// has no effect when WithHTTPClient is used.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the HTTP client used for API requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the API endpoint, mainly for testing.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithLocation sets the timezone that anchors tariff windows. The
// default is the system timezone.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.location = loc }
}

// WithClock replaces the wall clock, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New returns a Client ready for use.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:  defaultBaseURL,
		vat:      VatInclude,
		location: time.Local,
		now:      time.Now,
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout:   c.timeout,
			Transport: ipv4Transport(),
		}
		c.ownsClient = true
	}
	return c
}

// Close releases the idle connections of an HTTP client the Client
// created itself. A client passed in with WithHTTPClient is left to its
// owner.
func (c *Client) Close() {
	if c.ownsClient {
		c.httpClient.CloseIdleConnections()
	}
}

// The API host publishes an AAAA record but nothing answers on the IPv6
// address, so connections are forced over IPv4.
func ipv4Transport() *http.Transport {
	dialer := &net.Dialer{}
	return &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, "tcp4", addr)
		},
	}
}

// ElectricityPrices fetches hourly electricity tariffs covering the
// local calendar days start through end, inclusive. Pass VatDefault to
// use the client's VAT setting. Returns ErrNoData when the API has no
// tariffs for the window.
func (c *Client) ElectricityPrices(ctx context.Context, start, end time.Time, vat VatOption) (*Electricity, error) {
	from, till := electricityWindow(start, end, c.location)
	records, err := c.request(ctx, energyEndpoint, c.tariffParams(from, till, vat))
	if err != nil {
		return nil, err
	}
	return newElectricity(records, c.now)
}

// GasPrices fetches hourly gas tariffs covering the local calendar days
// start through end, inclusive. Pass VatDefault to use the client's VAT
// setting. Returns ErrNoData when the API has no tariffs for the window.
func (c *Client) GasPrices(ctx context.Context, start, end time.Time, vat VatOption) (*Gas, error) {
	from, till := gasWindow(start, end, c.now(), c.location)
	records, err := c.request(ctx, gasEndpoint, c.tariffParams(from, till, vat))
	if err != nil {
		return nil, err
	}
	return newGas(records, c.now)
}

func (c *Client) tariffParams(from, till time.Time, vat VatOption) url.Values {
	if vat == VatDefault {
		vat = c.vat
	}
	return url.Values{
		"startTimestamp": {from.Format(apiTimeLayout)},
		"endTimestamp":   {till.Format(apiTimeLayout)},
		"includeVat":     {string(vat)},
	}
}

func (c *Client) request(ctx context.Context, endpoint string, params url.Values) ([]rawTariff, error) {
	u, err := url.JoinPath(c.baseURL, endpoint)
	if err != nil {
		return nil, fmt.Errorf("building request url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain")
	req.Header.Set("User-Agent", "GoEasyEnergy/"+Version)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrConnection, res.Status)
	}

	if ct := res.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return nil, fmt.Errorf("%w: content type %q", ErrUnexpectedResponse, ct)
	}

	var records []rawTariff
	if err := json.NewDecoder(res.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}

	return records, nil
}
