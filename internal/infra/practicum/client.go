// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"homework_notification_bot/internal/domain/homework"
)

// maxErrorBodyBytes caps how much of a non-200 body is kept for the error text.
const maxErrorBodyBytes = 1024

// Client fetches homework review statuses from the Practicum API. It issues
// a single synchronous GET per call and never retries; retry happens only
// through the poller's fixed-interval re-invocation.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

func NewClient(endpoint, token string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// HomeworkStatuses requests all submissions updated at or after fromDate
// (unix seconds) and returns the decoded, not-yet-validated response body.
// Failure modes are distinguishable by type: *ConnectionError for transport
// failures, *APIRequestError for non-200 replies, *DecodeError for bodies
// that are not JSON.
func (c *Client) HomeworkStatuses(ctx context.Context, fromDate int64) (homework.RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, &ConnectionError{URL: c.endpoint, Err: err}
	}

	q := req.URL.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{URL: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &APIRequestError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var raw homework.RawResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return raw, nil
}
