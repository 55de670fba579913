// Package provider implements the client for the external recipe API. The
// upstream is an opaque collaborator: its failures surface to callers as a
// single generic error, with no retries and no fallback content.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"github.com/dmitrijs2005/recipekeeper/internal/logging"
	"github.com/dmitrijs2005/recipekeeper/internal/server/config"
)

// searchResultLimit caps free-text searches at the upstream, matching the
// number of matches the dashboard renders.
const searchResultLimit = 30

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  logging.Logger
}

func NewClient(cfg *config.Config, logger logging.Logger) *Client {
	return &Client{
		baseURL: cfg.ProviderBaseURL,
		apiKey:  cfg.ProviderAPIKey,
		client:  &http.Client{Timeout: cfg.ProviderTimeout},
		logger:  logger.With("module", "provider"),
	}
}

// Ingredient is a single ingredient line from a provider recipe.
type Ingredient struct {
	Original string `json:"original"`
}

// Information is the subset of the provider's recipe detail response that
// the detail page renders.
type Information struct {
	ID                  int64        `json:"id"`
	Title               string       `json:"title"`
	Image               string       `json:"image"`
	ReadyInMinutes      int          `json:"readyInMinutes"`
	Servings            int          `json:"servings"`
	SourceURL           string       `json:"sourceUrl"`
	Summary             string       `json:"summary"`
	Instructions        string       `json:"instructions"`
	ExtendedIngredients []Ingredient `json:"extendedIngredients"`
}

// Search performs a free-text recipe search and returns the provider's JSON
// response verbatim, to be relayed to the client untouched.
func (c *Client) Search(ctx context.Context, query string) (json.RawMessage, error) {

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("query", query)
	params.Set("number", strconv.Itoa(searchResultLimit))

	body, err := c.get(ctx, "/recipes/complexSearch", params)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		c.logger.Warn(ctx, "provider returned malformed search payload")
		return nil, common.ErrUpstream
	}

	return json.RawMessage(body), nil
}

// Information fetches the full detail for an external recipe id.
func (c *Client) Information(ctx context.Context, id string) (*Information, error) {

	params := url.Values{}
	params.Set("apiKey", c.apiKey)

	body, err := c.get(ctx, fmt.Sprintf("/recipes/%s/information", url.PathEscape(id)), params)
	if err != nil {
		return nil, err
	}

	info := &Information{}
	if err := json.Unmarshal(body, info); err != nil {
		c.logger.Warn(ctx, "provider returned malformed detail payload")
		return nil, common.ErrUpstream
	}

	return info, nil
}

// get issues the upstream request and returns the response body. Errors are
// logged without the failing URL so the API key never reaches the logs.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {

	u := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, common.ErrUpstream
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "provider request failed", "path", path)
		return nil, common.ErrUpstream
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn(ctx, "provider returned error status", "path", path, "status", resp.StatusCode)
		return nil, common.ErrUpstream
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn(ctx, "provider response read failed", "path", path)
		return nil, common.ErrUpstream
	}

	return body, nil
}
