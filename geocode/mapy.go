// Package geocode wraps the Mapy.cz suggest API for location autocomplete.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultEndpoint = "https://api.mapy.cz/v1/suggest"

// Bounding boxes keeping suggestions near the town: a tight box around Louny
// itself and a wider one covering the surrounding district.
const defaultLocality = "BOX(13.630415205275739,50.282424449893824,13.992872427758783,50.429883984497934)," +
	"BOX(13.495423078291793,50.21301448055726,14.175776259835118,50.489831390583106)"

const defaultPreferBBox = "13.495423078291793,50.21301448055726,14.175776259835118,50.489831390583106"

// The three suggestion categories queried in parallel. Results merge in this
// order: places of interest first, then streets, then addresses.
var suggestTypes = []string{"poi", "regional.street", "regional.address"}

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Suggestion struct {
	Name     string  `json:"name"`
	Label    string  `json:"label,omitempty"`
	Position *LatLon `json:"position,omitempty"`
}

// Client queries the Mapy.cz suggest API. The zero value is not usable; use
// NewClient.
type Client struct {
	apiKey     string
	endpoint   string
	locality   string
	preferBBox string
	httpClient *http.Client
	limit      int
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		locality:   defaultLocality,
		preferBBox: defaultPreferBBox,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limit:      5,
	}
}

// WithEndpoint overrides the API endpoint. Used by tests.
func (c *Client) WithEndpoint(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

// Suggest returns location suggestions for query. Queries shorter than
// three characters return an empty list without touching the network.
// The three category-scoped requests run in parallel and their results are
// merged; any failure, including cancellation through ctx, degrades to an
// empty list. A caller superseding an in-flight query cancels its ctx and
// the stale call returns empty instead of clobbering fresher results.
func (c *Client) Suggest(ctx context.Context, query string) []Suggestion {
	if len([]rune(query)) < 3 {
		return nil
	}

	// Each goroutine writes its own slot, keeping the merge order fixed.
	results := make([][]Suggestion, len(suggestTypes))

	g, ctx := errgroup.WithContext(ctx)
	for i, suggestType := range suggestTypes {
		i, suggestType := i, suggestType
		g.Go(func() error {
			items, err := c.fetch(ctx, query, suggestType)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil
	}

	var merged []Suggestion
	for _, items := range results {
		merged = append(merged, items...)
	}
	return merged
}

func (c *Client) fetch(ctx context.Context, query, suggestType string) ([]Suggestion, error) {
	params := url.Values{}
	params.Set("lang", "cs")
	params.Set("apikey", c.apiKey)
	params.Set("query", query)
	params.Set("limit", fmt.Sprint(c.limit))
	params.Set("type", suggestType)
	params.Set("locality", c.locality)
	params.Set("preferBBox", c.preferBBox)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggest %s: unexpected status %s", suggestType, resp.Status)
	}

	var body struct {
		Items []Suggestion `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("suggest %s: decode: %w", suggestType, err)
	}
	return body.Items, nil
}
