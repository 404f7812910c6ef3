package jobsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

const (
	contentType = "application/json"
	// maxErrorBody bounds how much of a failed response ends up in errors.
	maxErrorBody = 512
)

type pageRequest struct {
	query    string
	where    string
	distance int
	page     int
	perPage  int
}

// publicQuery holds every parameter except the credentials.
func (r pageRequest) publicQuery() url.Values {
	q := url.Values{}
	q.Set("results_per_page", strconv.Itoa(r.perPage))
	q.Set("what", r.query)
	if r.where != "" {
		q.Set("where", r.where)
	}
	q.Set("distance", strconv.Itoa(r.distance))
	q.Set("content-type", contentType)
	return q
}

type searchResponse struct {
	Results []map[string]any `json:"results"`
}

// fetchPage returns the raw records of one result page.
func (c *Client) fetchPage(ctx context.Context, r pageRequest) ([]map[string]any, error) {
	endpoint := fmt.Sprintf("%s/%s/search/%d", c.APIURL, url.PathEscape(c.cfg.Country), r.page)
	public := r.publicQuery()
	key := cacheKey(endpoint, public)

	if body, ok := c.cacheGet(ctx, key); ok {
		records, err := parseSearchResponse(body)
		if err == nil {
			c.logger.Debug("page served from cache", zap.Int("page", r.page))
			return records, nil
		}
		c.logger.Debug("ignoring unreadable cached page", zap.Int("page", r.page), zap.Error(err))
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := c.get(ctx, endpoint, withCredentials(public, c.cfg))
	if err != nil {
		return nil, err
	}

	records, err := parseSearchResponse(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("got page from provider", zap.Int("page", r.page), zap.Int("records", len(records)))
	c.cacheSet(ctx, key, body)

	return records, nil
}

func withCredentials(public url.Values, cfg Config) url.Values {
	q := url.Values{}
	for k, v := range public {
		q[k] = append([]string(nil), v...)
	}
	q.Set("app_id", cfg.AppID)
	q.Set("app_key", cfg.AppKey)
	return q
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", contentType)
	req.URL.RawQuery = q.Encode()

	c.logger.Debug("make request", zap.String("url", endpoint))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, fmt.Errorf("bad status: %s: %s", resp.Status, string(body))
	}

	return body, nil
}

func parseSearchResponse(body []byte) ([]map[string]any, error) {
	var response searchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return response.Results, nil
}
