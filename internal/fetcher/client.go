package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/polyscan/polyscan/internal/ratelimit"
	"github.com/polyscan/polyscan/pkg/types"
)

const (
	// MaxPageSize is the Data API's hard cap on the limit parameter.
	MaxPageSize = 500

	tradesPath    = "/trades"
	positionsPath = "/positions"
	activityPath  = "/activity"
)

// SleepFunc waits for d or until ctx is cancelled. Injectable so tests can
// observe backoff sequences without real time passing.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Client fetches pages from the Polymarket Data API with adaptive pacing
// and bounded retry-with-backoff around throttling and transient failures.
// Requests through one Client are serialized by construction: the Client is
// not goroutine-safe and shares its rate controller with nobody else.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.Controller
	maxRetries int
	logger     *zap.Logger
	sleep      SleepFunc
}

// Config holds fetcher configuration.
type Config struct {
	BaseURL    string
	Limiter    *ratelimit.Controller
	Timeout    time.Duration
	MaxRetries int
	Logger     *zap.Logger
	Sleep      SleepFunc // optional, defaults to a timer-based wait
}

// New creates a new Data API client.
func New(cfg *Config) *Client {
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = waitFor
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:    cfg.Limiter,
		maxRetries: cfg.MaxRetries,
		logger:     cfg.Logger,
		sleep:      sleep,
	}
}

// FetchTrades fetches one page of the global trade feed. Pages are ordered
// newest-first; takerOnly narrows the feed to taker fills.
func (c *Client) FetchTrades(ctx context.Context, limit, offset int, takerOnly bool) ([]types.TradeRecord, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampLimit(limit)))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("takerOnly", strconv.FormatBool(takerOnly))

	var trades []types.TradeRecord
	err := c.getJSON(ctx, tradesPath, params, &trades)
	if err != nil {
		return nil, err
	}

	return trades, nil
}

// FetchPositions fetches a user's positions sorted by cash P&L descending,
// so a truncated fetch keeps the most significant positions.
func (c *Client) FetchPositions(ctx context.Context, user string, limit int) ([]types.PositionRecord, error) {
	params := url.Values{}
	params.Set("user", user)
	params.Set("limit", strconv.Itoa(clampLimit(limit)))
	params.Set("sortBy", "CASHPNL")
	params.Set("sortDirection", "DESC")

	var positions []types.PositionRecord
	err := c.getJSON(ctx, positionsPath, params, &positions)
	if err != nil {
		return nil, err
	}

	return positions, nil
}

// FetchActivity fetches a user's trade activity within [startTs, endTs].
func (c *Client) FetchActivity(ctx context.Context, user string, startTs, endTs int64, limit int) ([]types.ActivityRecord, error) {
	params := url.Values{}
	params.Set("user", user)
	params.Set("startTs", strconv.FormatInt(startTs, 10))
	params.Set("endTs", strconv.FormatInt(endTs, 10))
	params.Set("type", "TRADE")
	params.Set("limit", strconv.Itoa(clampLimit(limit)))
	params.Set("sortBy", "TIMESTAMP")
	params.Set("sortDirection", "DESC")

	var activities []types.ActivityRecord
	err := c.getJSON(ctx, activityPath, params, &activities)
	if err != nil {
		return nil, err
	}

	return activities, nil
}

// getJSON performs one logical page fetch: request, decode, and the
// bounded retry loop around throttling and transient failures. Every
// attempt is followed by exactly one pacing sleep, so callers can issue
// fetches back-to-back without hammering the upstream.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	var lastKind types.FailureKind
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			RetryAttemptsTotal.Inc()
		}

		start := time.Now()
		status, header, body, err := c.do(ctx, path, params)
		RequestDurationSeconds.Observe(time.Since(start).Seconds())

		switch {
		case err != nil:
			lastKind = types.FailureUnreachable
			lastErr = err
			c.logger.Warn("request-failed",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Error(err))

			sleepErr := c.sleep(ctx, c.limiter.OnTransientFailure())
			if sleepErr != nil {
				return fmt.Errorf("wait after transport error: %w", sleepErr)
			}

		case status == http.StatusTooManyRequests:
			RateLimitHitsTotal.Inc()
			lastKind = types.FailureRateLimited
			lastErr = fmt.Errorf("status 429")

			hint := retryAfterHint(header)
			wait := c.limiter.OnThrottled(hint)
			c.logger.Warn("rate-limited",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Bool("hinted", hint > 0))

			sleepErr := c.sleep(ctx, wait)
			if sleepErr != nil {
				return fmt.Errorf("wait after rate limit: %w", sleepErr)
			}

		case status != http.StatusOK:
			lastKind = types.FailureUnreachable
			lastErr = fmt.Errorf("status %d: %s", status, truncate(body, 200))
			c.logger.Warn("unexpected-status",
				zap.String("path", path),
				zap.Int("status", status),
				zap.Int("attempt", attempt))

			sleepErr := c.sleep(ctx, c.limiter.OnTransientFailure())
			if sleepErr != nil {
				return fmt.Errorf("wait after bad status: %w", sleepErr)
			}

		default:
			decodeErr := json.Unmarshal(body, out)
			if decodeErr != nil {
				lastKind = types.FailureInvalidResponse
				lastErr = decodeErr
				c.logger.Warn("malformed-body",
					zap.String("path", path),
					zap.Int("attempt", attempt),
					zap.Error(decodeErr))

				sleepErr := c.sleep(ctx, c.limiter.OnTransientFailure())
				if sleepErr != nil {
					return fmt.Errorf("wait after malformed body: %w", sleepErr)
				}
				continue
			}

			PagesFetchedTotal.Inc()
			c.limiter.OnSuccess()

			// Pacing sleep so the next fetch is not back-to-back.
			sleepErr := c.sleep(ctx, c.limiter.Delay())
			if sleepErr != nil {
				return fmt.Errorf("pacing wait: %w", sleepErr)
			}

			return nil
		}
	}

	FetchErrorsTotal.Inc()

	return &types.FetchError{
		Kind:     lastKind,
		Endpoint: path,
		Attempts: c.maxRetries,
		Err:      lastErr,
	}
}

// do performs a single GET attempt and returns status, headers and body.
func (c *Client) do(ctx context.Context, path string, params url.Values) (int, http.Header, []byte, error) {
	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "polyscan/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("read response body: %w", err)
	}

	return resp.StatusCode, resp.Header, body, nil
}

// retryAfterHint parses a Retry-After header given in whole seconds.
// Returns 0 when absent or unparseable.
func retryAfterHint(header http.Header) time.Duration {
	raw := header.Get("Retry-After")
	if raw == "" {
		return 0
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0
	}

	return time.Duration(seconds) * time.Second
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}

// waitFor is the production SleepFunc.
func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
