package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangamparmar/MovieFrenz/model"
)

const (
	DefaultBaseURL   = "http://localhost:5000"
	ticketsPath      = "/auth/tickets"
	defaultUserAgent = "moviefrenz-cli"
	defaultMaxAttempts = 1
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
	defaultTimeout     = 12 * time.Second
)

// Client wraps HTTP access to the MovieFrenz API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	logger      *slog.Logger
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
}

// APIError is returned when the API responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "moviefrenz api error"
	}
	return fmt.Sprintf("moviefrenz api error: %s: %s", e.Status, e.Body)
}

// IsNotFound reports whether the error represents a 404 from the API.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether the API rejected the credential.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized) || hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// NewClient creates a new API client. If httpClient is nil, a default client
// is used; a nil logger discards log records.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		userAgent:   defaultUserAgent,
		logger:      logger,
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
	}
}

// WithRetries returns a copy of the client that makes up to attempts tries
// for network failures, 429 and 5xx responses.
func (c *Client) WithRetries(attempts int) *Client {
	clone := *c
	if attempts < 1 {
		attempts = 1
	}
	clone.maxAttempts = attempts
	return &clone
}

type ticketsResponse struct {
	Data struct {
		Tickets []model.Ticket `json:"tickets"`
	} `json:"data"`
}

// GetTickets fetches the tickets owned by the credential's user, ordered by
// showtime. A response without a tickets field yields an empty slice.
func (c *Client) GetTickets(ctx context.Context, cred Credential) ([]model.Ticket, error) {
	if strings.TrimSpace(cred.Token) == "" {
		return nil, ErrMissingToken
	}
	header := http.Header{}
	header.Set("Authorization", cred.BearerHeader())

	var body ticketsResponse
	if err := c.getJSON(ctx, c.baseURL+ticketsPath, header, &body); err != nil {
		return nil, err
	}
	tickets := body.Data.Tickets
	SortTickets(tickets)
	return tickets, nil
}

// ErrTicketNotFound is returned by GetTicket when the id is not among the
// user's tickets.
var ErrTicketNotFound = errors.New("ticket not found")

// GetTicket looks a single ticket up in the user's ticket list.
func (c *Client) GetTicket(ctx context.Context, cred Credential, ticketID string) (model.Ticket, error) {
	ticketID = strings.TrimSpace(ticketID)
	if ticketID == "" {
		return model.Ticket{}, errors.New("ticket id is required")
	}
	tickets, err := c.GetTickets(ctx, cred)
	if err != nil {
		return model.Ticket{}, err
	}
	for _, ticket := range tickets {
		if ticket.Id == ticketID {
			return ticket, nil
		}
	}
	return model.Ticket{}, fmt.Errorf("%w: %s", ErrTicketNotFound, ticketID)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, header http.Header, out any) error {
	maxAttempts := c.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		for key, values := range header {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}
		requestID := uuid.NewString()
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", requestID)

		started := time.Now()
		res, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Debug("request failed",
				"endpoint", endpoint, "request_id", requestID, "attempt", attempt, "error", err)
			if c.shouldRetryNetworkError(err) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return fmt.Errorf("request failed: %w", err)
		}
		c.logger.Debug("request done",
			"endpoint", endpoint, "request_id", requestID, "attempt", attempt,
			"status", res.StatusCode, "duration", time.Since(started))

		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
			_ = res.Body.Close()

			apiErr := &APIError{
				StatusCode: res.StatusCode,
				Status:     res.Status,
				Endpoint:   endpoint,
				Body:       strings.TrimSpace(string(snippet)),
			}
			if c.shouldRetryStatus(res.StatusCode) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return apiErr
		}

		dec := json.NewDecoder(res.Body)
		err = dec.Decode(out)
		_ = res.Body.Close()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode response from %s: %w", endpoint, err)
		}
		return nil
	}

	return errors.New("request failed after retries")
}

func (c *Client) shouldRetryStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (c *Client) shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) waitRetry(ctx context.Context, attempt int) error {
	delay := c.retryDelay(attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	cap := c.retryCap
	if cap <= 0 {
		cap = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= cap/2 {
			return cap
		}
		delay *= 2
	}
	if delay > cap {
		return cap
	}
	return delay
}
