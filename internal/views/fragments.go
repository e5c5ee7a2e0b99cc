package views

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Hitargot/Qooa-Frontend/internal/routes"
)

// FragmentSource retrieves pre-rendered view fragments. Absence of a
// fragment is an ordinary condition, not an error at the system level;
// the resolver falls back to the local builder.
type FragmentSource interface {
	Fetch(ctx context.Context, route routes.Route) (string, error)
}

// HTTPFragments fetches fragments from
// <base>/components/views/<route>.html.
type HTTPFragments struct {
	base   string
	client *http.Client
}

// NewHTTPFragments creates a fragment source for the given base URL.
// client may be nil to use http.DefaultClient.
func NewHTTPFragments(base string, client *http.Client) *HTTPFragments {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFragments{base: strings.TrimRight(base, "/"), client: client}
}

// Fetch retrieves the fragment for a route. Any non-2xx response or
// empty body is reported as an error.
func (h *HTTPFragments) Fetch(ctx context.Context, route routes.Route) (string, error) {
	url := fmt.Sprintf("%s/components/views/%s.html", h.base, route)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building fragment request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching fragment %s: %w", route, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fragment %s: unexpected status %d", route, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading fragment %s: %w", route, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", fmt.Errorf("fragment %s: empty body", route)
	}
	return string(body), nil
}
