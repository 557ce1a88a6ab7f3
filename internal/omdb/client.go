// Package omdb wraps the OMDb HTTP API. It normalizes the upstream envelope
// into a small descriptor and signals "no match" and "upstream broken" as
// distinct errors; retry policy is left to callers.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "http://www.omdbapi.com/"

var (
	ErrNotFound    = errors.New("omdb: no match")
	ErrUnavailable = errors.New("omdb: upstream unavailable")
)

// Result is the normalized shape of an OMDb match.
type Result struct {
	ImdbID string
	Title  string
	Year   string
	Poster string
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchByID looks a movie up by its exact IMDb id.
func (c *Client) FetchByID(ctx context.Context, imdbID string) (*Result, error) {
	return c.fetch(ctx, url.Values{"i": {imdbID}})
}

// SearchByTitle looks a movie up by free-text title; OMDb returns its best
// single match.
func (c *Client) SearchByTitle(ctx context.Context, title string) (*Result, error) {
	return c.fetch(ctx, url.Values{"t": {title}})
}

func (c *Client) fetch(ctx context.Context, params url.Values) (*Result, error) {
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body struct {
		Response string `json:"Response"`
		Error    string `json:"Error"`
		ImdbID   string `json:"imdbID"`
		Title    string `json:"Title"`
		Year     string `json:"Year"`
		Poster   string `json:"Poster"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}

	if body.Response == "False" {
		return nil, ErrNotFound
	}

	return &Result{
		ImdbID: body.ImdbID,
		Title:  body.Title,
		Year:   body.Year,
		Poster: body.Poster,
	}, nil
}
