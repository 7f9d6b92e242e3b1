package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/lapenya/quiniela/internal/platform/logging"
	"github.com/lapenya/quiniela/internal/platform/resilience"
	"github.com/lapenya/quiniela/internal/usecase"
)

const defaultBaseURL = "https://api.football-data.org/v4"

var errFootballDataTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Competition    string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches the season fixture list with conditional requests. The
// stored validator goes out as If-None-Match; a 304 reply means the payload
// is byte-identical to the previous fetch.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	competition    string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	competition := strings.ToUpper(strings.TrimSpace(cfg.Competition))
	if competition == "" {
		competition = "PD"
	}
	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		competition:    competition,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        cfg.CircuitBreaker.NewBreaker(),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

type fetchOutcome struct {
	notModified bool
	etag        string
	body        []byte
}

// FetchMatches performs the conditional season fetch and normalizes the
// payload into canonical matches.
func (c *Client) FetchMatches(ctx context.Context, cacheToken string) (usecase.ProviderFetch, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
			return usecase.ProviderFetch{}, fmt.Errorf("%w: match data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := fmt.Sprintf("%s/competitions/%s/matches", c.baseURL, c.competition)
	key := fullURL + "#" + cacheToken
	out, err, _ := c.flight.Do(key, func() (any, error) {
		outcome, reqErr := c.executeRequest(ctx, fullURL, cacheToken)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errFootballDataTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return outcome, reqErr
	})
	if err != nil {
		return usecase.ProviderFetch{}, err
	}

	outcome, ok := out.(fetchOutcome)
	if !ok {
		return usecase.ProviderFetch{}, fmt.Errorf("unexpected response payload type %T", out)
	}

	if outcome.notModified {
		return usecase.ProviderFetch{NotModified: true, CacheToken: cacheToken}, nil
	}

	var envelope matchesEnvelope
	if err := sonic.Unmarshal(outcome.body, &envelope); err != nil {
		return usecase.ProviderFetch{}, fmt.Errorf("decode provider payload: %w", err)
	}

	matches, skipped := NormalizeMatches(envelope)
	if skipped > 0 {
		c.logger.WarnContext(ctx, "provider records skipped during normalization",
			"competition", c.competition, "skipped", skipped, "kept", len(matches))
	}

	return usecase.ProviderFetch{
		CacheToken:     outcome.etag,
		Matches:        matches,
		SkippedRecords: skipped,
	}, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL, cacheToken string) (fetchOutcome, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fetchOutcome{}, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("X-Auth-Token", c.token)
		}
		if cacheToken != "" {
			req.Header.Set("If-None-Match", cacheToken)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errFootballDataTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFootballDataTransient, readErr)
			case resp.StatusCode == http.StatusNotModified:
				return fetchOutcome{notModified: true, etag: cacheToken}, nil
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return fetchOutcome{etag: resp.Header.Get("ETag"), body: raw}, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFootballDataTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return fetchOutcome{}, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fetchOutcome{}, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "error", lastErr)
	return fetchOutcome{}, lastErr
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
