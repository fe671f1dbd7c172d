package apifootball

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"github.com/Amaradona-max/football-serie-a/internal/platform/logging"
)

const (
	defaultBaseURL     = "https://api-football-v1.p.rapidapi.com/v3"
	defaultCompetition = "SA"
	defaultLeagueID    = 135
	maxResponseBytes   = 6 << 20
)

var (
	errAPIFootballTransient = crerr.New("api-football transient failure")
	errAPIFootballNotFound  = crerr.New("api-football resource not found")
)

type ClientConfig struct {
	BaseURL            string
	APIKey             string
	Timeout            time.Duration
	Season             int
	DefaultCompetition string
	// Leagues maps competition codes such as "SA" to API-Football league ids.
	Leagues           map[string]int
	RequestsPerMinute int
	Logger            *logging.Logger
}

// Client talks to API-Football v3 through RapidAPI using fasthttp.
type Client struct {
	http               *fasthttp.Client
	baseURL            string
	host               string
	apiKey             string
	timeout            time.Duration
	season             int
	defaultCompetition string
	leagues            map[string]int
	limiter            *rate.Limiter
	logger             *logging.Logger
	now                func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	host := ""
	if parsed, err := url.Parse(baseURL); err == nil {
		host = parsed.Host
	}

	competition := strings.ToUpper(strings.TrimSpace(cfg.DefaultCompetition))
	if competition == "" {
		competition = defaultCompetition
	}
	leagues := make(map[string]int, len(cfg.Leagues)+1)
	for code, id := range cfg.Leagues {
		leagues[strings.ToUpper(strings.TrimSpace(code))] = id
	}
	if _, ok := leagues[defaultCompetition]; !ok {
		leagues[defaultCompetition] = defaultLeagueID
	}

	season := cfg.Season
	if season <= 0 {
		season = time.Now().UTC().Year()
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.RequestsPerMinute)
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                "football-serie-a",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBytes,
		},
		baseURL:            baseURL,
		host:               host,
		apiKey:             strings.TrimSpace(cfg.APIKey),
		timeout:            timeout,
		season:             season,
		defaultCompetition: competition,
		leagues:            leagues,
		limiter:            limiter,
		logger:             logger,
		now:                time.Now,
	}
}

// leagueID resolves a competition code. Unknown codes are not an error: the
// provider simply has nothing to offer for them.
func (c *Client) leagueID(competition string) (int, bool) {
	code := strings.ToUpper(strings.TrimSpace(competition))
	if code == "" {
		code = c.defaultCompetition
	}
	id, ok := c.leagues[code]
	return id, ok
}

// fetch performs one GET and returns the decoded "response" array.
func fetch[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: wait for rate limit: %v", errAPIFootballTransient, err)
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	if c.host != "" {
		req.Header.Set("X-RapidAPI-Host", c.host)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("%w: send request: %s", errAPIFootballTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
	}

	status := resp.StatusCode()
	body := resp.Body()
	switch {
	case status >= 200 && status < 300:
	case status == fasthttp.StatusNotFound:
		return nil, errAPIFootballNotFound
	case status == fasthttp.StatusTooManyRequests || status >= fasthttp.StatusInternalServerError:
		err := fmt.Errorf("%w: provider status=%d body=%s", errAPIFootballTransient, status, abbreviateBody(body))
		c.logger.WarnContext(ctx, "api-football request failed", "path", path, "error", err)
		return nil, err
	default:
		err := fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(body))
		c.logger.WarnContext(ctx, "api-football request failed", "path", path, "error", err)
		return nil, err
	}

	var env envelope[T]
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: decode provider payload: %v", errAPIFootballTransient, err)
	}
	if msg := env.errorMessage(); msg != "" {
		return nil, fmt.Errorf("%w: provider reported errors: %s", errAPIFootballTransient, sanitizeSensitiveText(msg, c.apiKey))
	}
	return env.Response, nil
}

func (c *Client) seasonQuery(leagueID int) url.Values {
	return url.Values{
		"league": []string{strconv.Itoa(leagueID)},
		"season": []string{strconv.Itoa(c.season)},
	}
}

// IsTransient reports whether err came from a failure worth retrying.
func IsTransient(err error) bool {
	return stderrors.Is(err, errAPIFootballTransient)
}

func isNotFound(err error) bool {
	return stderrors.Is(err, errAPIFootballNotFound)
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
