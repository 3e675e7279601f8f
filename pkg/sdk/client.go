package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// batchAllVersions is the server's sentinel for "every version of this id".
const batchAllVersions = "None"

// Client is the resources API entry point.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// New creates a Client against the given base URL, e.g.
// "https://resources.gem5.org".
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("resources: base URL required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o.apply(c)
	}
	return c, nil
}

// FindResourceByID resolves an id to its documents. With version == "" every
// stored version is returned newest-first, each tagged with the computed
// latest_version; with a concrete version only the exact match is returned.
func (c *Client) FindResourceByID(ctx context.Context, id, version string) ([]Resource, error) {
	q := url.Values{"id": {id}}
	if version != "" {
		q.Set("resource_version", version)
	}

	var docs []Resource
	if err := c.get(ctx, "/resources/find-resource-by-id", q, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// FindResourcesInBatch resolves up to 40 id+version pairs in one call.
// Results align with the input pairs. If any pair cannot be resolved the
// whole call fails with an ErrNotFound-matching APIError naming the
// missing ids.
func (c *Client) FindResourcesInBatch(ctx context.Context, pairs []BatchPair) ([][]Resource, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: at least one pair required", ErrInvalidRequest)
	}

	ids := make([]string, len(pairs))
	versions := make([]string, len(pairs))
	for i, p := range pairs {
		ids[i] = p.ID
		versions[i] = p.Version
		if p.Version == "" {
			versions[i] = batchAllVersions
		}
	}

	q := url.Values{
		"id":               {strings.Join(ids, ",")},
		"resource_version": {strings.Join(versions, ",")},
	}

	var results [][]Resource
	if err := c.get(ctx, "/resources/find-resources-in-batch", q, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Search runs a ranked, paginated full-text query.
func (c *Client) Search(ctx context.Context, query SearchQuery) (SearchResult, error) {
	q := url.Values{}
	if query.Query != "" {
		q.Set("contains-str", query.Query)
	}
	if query.MustInclude != "" {
		q.Set("must-include", query.MustInclude)
	}
	if query.Sort != "" {
		q.Set("sort", query.Sort)
	}
	if query.Page > 0 {
		q.Set("page", strconv.Itoa(query.Page))
	}
	if query.PageSize > 0 {
		q.Set("page-size", strconv.Itoa(query.PageSize))
	}

	var result SearchResult
	if err := c.get(ctx, "/resources/search", q, &result); err != nil {
		return SearchResult{}, err
	}
	return result, nil
}

// FilterOptions returns the distinct values of the filterable fields.
func (c *Client) FilterOptions(ctx context.Context) (FilterValues, error) {
	var values FilterValues
	if err := c.get(ctx, "/resources/filters", nil, &values); err != nil {
		return FilterValues{}, err
	}
	return values, nil
}

// DependentWorkloads returns the workloads depending on the given resource id.
func (c *Client) DependentWorkloads(ctx context.Context, id string) ([]WorkloadRef, error) {
	q := url.Values{"id": {id}}

	var refs []WorkloadRef
	if err := c.get(ctx, "/resources/get-dependent-workloads", q, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// Health returns the API health snapshot. A degraded API still answers;
// the report carries the per-component outcomes.
func (c *Client) Health(ctx context.Context) (HealthReport, error) {
	req, err := c.newRequest(ctx, "/health", nil)
	if err != nil {
		return HealthReport{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthReport{}, fmt.Errorf("resources: health request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var report HealthReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return HealthReport{}, fmt.Errorf("resources: decode health response: %w", err)
	}
	return report, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, path, query)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("resources: request %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("resources: decode response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, path string, query url.Values) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("resources: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Error string `json:"error"`
	}
	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		message = payload.Error
	}
	if message == "" {
		message = resp.Status
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
