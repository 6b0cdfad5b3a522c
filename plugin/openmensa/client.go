package openmensa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/rcurve/mensabot/internal/civil"
)

const (
	// DefaultBaseURL is the public OpenMensa v2 endpoint.
	DefaultBaseURL = "https://openmensa.org/api/v2"

	// userAgent identifies the bot to the OpenMensa operators, with a way
	// to reach its maintainer.
	userAgent = "@rwthmensabot Telegram Bot. Please contact @rcurve on telegram in case of problems"

	// fetchTimeout caps a single upstream request. The upstream has no
	// retry contract, so a slow answer is treated like no answer.
	fetchTimeout = 5 * time.Second
)

// Fetcher retrieves the raw meal records for one canteen day.
// found=false reports that the upstream has no record of the day at all,
// which is a different thing from a published closed day.
type Fetcher interface {
	MealsOn(ctx context.Context, canteenID int, day civil.Date) (meals []Meal, found bool, err error)
}

// Client is an HTTP Fetcher against the OpenMensa v2 API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for the given API base URL.
// An empty baseURL selects the public OpenMensa endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

// MealsOn fetches the meal records for one canteen day.
//
// The upstream answers a day it has no record of with a bare whitespace
// body; that surfaces as found=false with no error. A body that fails to
// decode is a malformed payload, not a transport failure.
func (c *Client) MealsOn(ctx context.Context, canteenID int, day civil.Date) ([]Meal, bool, error) {
	url := fmt.Sprintf("%s/canteens/%d/days/%s/meals", c.baseURL, canteenID, day.ISO())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, errors.Wrap(err, "build meals request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, errors.Wrap(err, "fetch meals")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, errors.Wrap(err, "read meals response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, errors.Errorf("fetch meals: unexpected status %d", resp.StatusCode)
	}
	if strings.TrimSpace(string(body)) == "" {
		return nil, false, nil
	}

	var meals []Meal
	if err := json.Unmarshal(body, &meals); err != nil {
		return nil, false, errors.Wrapf(ErrMalformedPayload, "decode meals response: %v", err)
	}
	return meals, true, nil
}
