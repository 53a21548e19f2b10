// Package jibble is a thin client for the Jibble time-tracking API.
// Authentication uses the OAuth2 client credentials flow; list endpoints
// are OData collections paged through @odata.nextLink.
package jibble

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/flextime-hq/flextime-backend-go/internal/config"
)

// maxPages bounds nextLink traversal so a misbehaving API cannot loop us.
const maxPages = 50

// TimeEntry is one clock punch as the provider reports it.
type TimeEntry struct {
	ID            string  `json:"id"`
	PersonID      string  `json:"personId"`
	ActivityID    *string `json:"activityId"`
	Type          string  `json:"type"` // "In" or "Out"
	Time          string  `json:"time"` // RFC3339 UTC instant
	LocalTime     string  `json:"localTime"`
	BelongsToDate string  `json:"belongsToDate"` // YYYY-MM-DD in the agent's timezone
}

// Member is one person in the provider directory.
type Member struct {
	ID       string  `json:"id"`
	GroupID  *string `json:"groupId"`
	FullName string  `json:"fullName"`
	Email    *string `json:"email"`
	Timezone *string `json:"timeZone"`
}

// Group is one provider team.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Activity is one provider activity type.
type Activity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client talks to the Jibble workspace API.
type Client interface {
	TimeEntries(ctx context.Context, startDate, endDate string) ([]TimeEntry, error)
	People(ctx context.Context) ([]Member, error)
	Groups(ctx context.Context) ([]Group, error)
	Activities(ctx context.Context) ([]Activity, error)
}

type clientImpl struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient builds a client whose HTTP transport injects and refreshes
// the OAuth2 bearer token automatically.
func NewClient(cfg config.JibbleConfig) Client {
	oauthCfg := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.IdentityURL + "/connect/token",
	}

	httpClient := oauthCfg.Client(context.Background())
	httpClient.Timeout = 60 * time.Second

	return &clientImpl{
		apiURL:     cfg.APIURL,
		httpClient: httpClient,
	}
}

type odataResponse[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"@odata.nextLink"`
}

// TimeEntries returns every punch whose belongsToDate falls in the range,
// both bounds inclusive.
func (c *clientImpl) TimeEntries(ctx context.Context, startDate, endDate string) ([]TimeEntry, error) {
	filter := fmt.Sprintf("belongsToDate ge %s and belongsToDate le %s", startDate, endDate)
	query := url.Values{
		"$filter":  {filter},
		"$orderby": {"time asc"},
	}
	return listAll[TimeEntry](ctx, c, "/v1/TimeEntries?"+query.Encode())
}

func (c *clientImpl) People(ctx context.Context) ([]Member, error) {
	return listAll[Member](ctx, c, "/v1/People")
}

func (c *clientImpl) Groups(ctx context.Context) ([]Group, error) {
	return listAll[Group](ctx, c, "/v1/Groups")
}

func (c *clientImpl) Activities(ctx context.Context) ([]Activity, error) {
	return listAll[Activity](ctx, c, "/v1/Activities")
}

// listAll follows @odata.nextLink until the collection is exhausted.
func listAll[T any](ctx context.Context, c *clientImpl, path string) ([]T, error) {
	var items []T

	next := c.apiURL + path
	for page := 0; next != ""; page++ {
		if page >= maxPages {
			return nil, fmt.Errorf("jibble: pagination exceeded %d pages for %s", maxPages, path)
		}

		var resp odataResponse[T]
		if err := c.get(ctx, next, &resp); err != nil {
			return nil, err
		}

		items = append(items, resp.Value...)
		next = resp.NextLink
	}

	return items, nil
}

func (c *clientImpl) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("jibble: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jibble: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("jibble: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("jibble: decode response: %w", err)
	}

	return nil
}
