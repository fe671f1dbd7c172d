package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/time/rate"

	"github.com/Amaradona-max/football-serie-a/internal/platform/logging"
	"github.com/Amaradona-max/football-serie-a/internal/platform/resilience"
)

const (
	defaultBaseURL     = "https://api.football-data.org/v4"
	defaultCompetition = "SA"
	maxResponseBytes   = 6 << 20
)

var (
	errFootballDataTransient = crerr.New("football-data transient failure")
	errFootballDataNotFound  = crerr.New("football-data resource not found")
)

type ClientConfig struct {
	HTTPClient         *http.Client
	BaseURL            string
	Token              string
	Timeout            time.Duration
	DefaultCompetition string
	// RequestsPerMinute caps outbound calls; the free tier allows 10.
	RequestsPerMinute int
	Logger            *logging.Logger
}

// Client talks to the football-data.org v4 REST API.
type Client struct {
	httpClient         *http.Client
	baseURL            string
	token              string
	defaultCompetition string
	limiter            *rate.Limiter
	logger             *logging.Logger
	flight             resilience.Flight[[]byte]
	now                func() time.Time
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
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	competition := strings.ToUpper(strings.TrimSpace(cfg.DefaultCompetition))
	if competition == "" {
		competition = defaultCompetition
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.RequestsPerMinute)
	}

	return &Client{
		httpClient:         httpClient,
		baseURL:            baseURL,
		token:              strings.TrimSpace(cfg.Token),
		defaultCompetition: competition,
		limiter:            limiter,
		logger:             logger,
		now:                time.Now,
	}
}

func (c *Client) competition(value string) string {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return c.defaultCompetition
	}
	return value
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, shared, err := c.flight.Do(ctx, fullURL, func() ([]byte, error) {
		return c.executeRequest(ctx, fullURL)
	})
	if err != nil {
		return err
	}
	if shared {
		c.logger.DebugContext(ctx, "football-data request shared with in-flight call", "path", path)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode provider payload: %v", errFootballDataTransient, err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("wait for rate limit: %w", ctxErr)
		}
		return nil, fmt.Errorf("%w: wait for rate limit: %v", errFootballDataTransient, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	if c.token != "" {
		req.Header.Set("X-Auth-Token", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The caller's own cancellation keeps its chain so followers of a
		// shared call can tell it apart from an upstream failure.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("send request: %w", ctxErr)
		}
		return nil, fmt.Errorf("%w: send request: %s", errFootballDataTransient, sanitizeSensitiveText(err.Error(), c.token))
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxResponseBytes)); err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errFootballDataTransient, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		raw := make([]byte, buf.Len())
		copy(raw, buf.B)
		return raw, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, errFootballDataNotFound
	case isRetryableStatus(resp.StatusCode):
		err = fmt.Errorf("%w: provider status=%d body=%s", errFootballDataTransient, resp.StatusCode, abbreviateBody(buf.B))
	default:
		err = fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(buf.B))
	}

	c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "error", err)
	return nil, err
}

// IsTransient reports whether err came from a failure worth retrying.
func IsTransient(err error) bool {
	return stderrors.Is(err, errFootballDataTransient)
}

func isNotFound(err error) bool {
	return stderrors.Is(err, errFootballDataNotFound)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
