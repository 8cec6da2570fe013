// Package geodata talks to the Overpass API.
package geodata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
)

// Amenities are the node categories a places search covers.
var Amenities = []string{"restaurant", "cafe", "bar"}

var ErrUnexpectedStatus = errors.New("overpass: unexpected status")

// Element is a raw Overpass result. Only nodes are requested so Lat/Lon are always present.
type Element struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags,omitempty"`
}

type response struct {
	Elements []Element `json:"elements"`
}

type Config struct {
	URL     string
	Timeout time.Duration

	// Breaker settings. Zero values get defaults.
	FailureThreshold uint32
	OpenTimeout      time.Duration
	OnStateChange    func(name string, from, to gobreaker.State)

	HTTPClient *http.Client
}

type Client struct {
	url  string
	http *http.Client
	cb   *gobreaker.CircuitBreaker[[]Element]
}

func NewClient(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	openTimeout := cfg.OpenTimeout
	if openTimeout == 0 {
		openTimeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        "overpass",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A caller hanging up says nothing about Overpass health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: cfg.OnStateChange,
	}
	return &Client{
		url:  cfg.URL,
		http: hc,
		cb:   gobreaker.NewCircuitBreaker[[]Element](settings),
	}
}

func (c *Client) State() gobreaker.State { return c.cb.State() }

// BuildQuery renders the Overpass QL for all Amenities within radius meters of (lat, lon).
func BuildQuery(lat, lon, radius float64) string {
	around := fmt.Sprintf("(around:%s,%s,%s)", formatFloat(radius), formatFloat(lat), formatFloat(lon))
	var b strings.Builder
	b.WriteString("[out:json];\n(\n")
	for _, a := range Amenities {
		fmt.Fprintf(&b, "node[\"amenity\"=%q]%s;\n", a, around)
	}
	b.WriteString(");\nout body;\n")
	return b.String()
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// Around fetches amenity nodes near (lat, lon). A single attempt is made.
func (c *Client) Around(ctx context.Context, lat, lon, radius float64) ([]Element, error) {
	return c.cb.Execute(func() ([]Element, error) {
		return c.fetch(ctx, BuildQuery(lat, lon, radius))
	})
}

func (c *Client) fetch(ctx context.Context, query string) ([]Element, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w", err)
	}
	return out.Elements, nil
}
