package nba

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://stats.nba.com/stats"

// maxErrorBody bounds how much of a failed response ends up in a TransportError.
const maxErrorBody = 512

var errInvalidJSON = errors.New("body is not valid json")

// Cache stores raw response bodies by request url. Implementations own
// expiry. The client treats a Get error as a miss and ignores Set errors.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte) error
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	limiter    *rate.Limiter
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLimiter paces outbound requests. Cached responses skip the limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// stats.nba.com drops requests that do not look like they came from the
// nba.com site.
func initNBAReq(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Accept", "application/json, text/plain, */*")
	req.Header.Add("Accept-Language", "en-US,en;q=0.9")
	req.Header.Add("Origin", "https://www.nba.com")
	req.Header.Add("Referer", "https://www.nba.com/")
	req.Header.Add("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Add("x-nba-stats-origin", "stats")
	req.Header.Add("x-nba-stats-token", "true")
	return req, nil
}

func (c *Client) URL(endpoint string, params Params) string {
	u := c.baseURL + "/" + endpoint
	if q := params.Encode(); q != "" {
		u += "?" + q
	}
	return u
}

// GetJSON issues one GET to {base}/{endpoint} and returns the body once it is
// known to be valid JSON.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params Params) (Payload, error) {
	if endpoint == "" {
		return nil, errors.New("nba: empty endpoint name")
	}
	url := c.URL(endpoint, params)

	if c.cache != nil {
		if body, ok, err := c.cache.Get(ctx, url); err == nil && ok {
			return Payload(body), nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{URL: url, Err: err}
		}
	}

	req, err := initNBAReq(ctx, url)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	if !gjson.ValidBytes(body) {
		return nil, &DecodeError{URL: url, Err: errInvalidJSON}
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, url, body)
	}
	return Payload(body), nil
}

// Response is a fetched payload together with the url it came from.
type Response struct {
	URL     string
	Payload Payload
}

func (r *Response) ResultSet(ndx int) (*Table, error) {
	return ResultSet(r.Payload, ndx)
}

// Fetch resolves the endpoint params and requests them.
func (c *Client) Fetch(ctx context.Context, ep Endpoint, overrides Params) (*Response, error) {
	params, err := ep.Params(overrides)
	if err != nil {
		return nil, err
	}
	payload, err := c.GetJSON(ctx, ep.Name(), params)
	if err != nil {
		return nil, err
	}
	return &Response{URL: c.URL(ep.Name(), params), Payload: payload}, nil
}

// Table fetches an endpoint and normalizes the result set at ndx.
func (c *Client) Table(ctx context.Context, ep Endpoint, overrides Params, ndx int) (*Table, error) {
	resp, err := c.Fetch(ctx, ep, overrides)
	if err != nil {
		return nil, err
	}
	return resp.ResultSet(ndx)
}

func (c *Client) PlayerList(ctx context.Context, overrides Params) (*Table, error) {
	return c.Table(ctx, CommonAllPlayers, overrides, 0)
}

func (c *Client) PlayerStats(ctx context.Context, overrides Params) (*Table, error) {
	return c.Table(ctx, LeagueDashPlayerStats, overrides, 0)
}

func (c *Client) LeagueLeaders(ctx context.Context, overrides Params) (*Table, error) {
	return c.Table(ctx, LeagueLeaders, overrides, 0)
}

// SeasonGames pairs the team game log into one entry per game.
func (c *Client) SeasonGames(ctx context.Context, overrides Params) ([]Game, error) {
	log, err := c.Table(ctx, LeagueGameLog, overrides, 0)
	if err != nil {
		return nil, err
	}
	return Games(log), nil
}

func (c *Client) fetchShotChart(ctx context.Context, playerID int, overrides Params) (*Response, error) {
	p := Params{}
	for k, v := range overrides {
		p[k] = v
	}
	p["PlayerID"] = strconv.Itoa(playerID)
	return c.Fetch(ctx, ShotChartDetail, p)
}

// ShotChart returns the player's shots and the league averages they are
// compared against.
func (c *Client) ShotChart(ctx context.Context, playerID int, overrides Params) (shots, leagueAverage *Table, err error) {
	resp, err := c.fetchShotChart(ctx, playerID, overrides)
	if err != nil {
		return nil, nil, err
	}
	if shots, err = resp.ResultSet(ShotChartSet); err != nil {
		return nil, nil, err
	}
	if leagueAverage, err = resp.ResultSet(LeagueAverageSet); err != nil {
		return nil, nil, err
	}
	return shots, leagueAverage, nil
}

// Shots returns only the shot set, for callers that have no use for the
// league averages.
func (c *Client) Shots(ctx context.Context, playerID int, overrides Params) (*Table, error) {
	resp, err := c.fetchShotChart(ctx, playerID, overrides)
	if err != nil {
		return nil, err
	}
	return resp.ResultSet(ShotChartSet)
}
