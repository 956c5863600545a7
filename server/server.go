package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"statline/db"
	"statline/nba"
	"statline/shotzone"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

type PlayerSearcher interface {
	SearchPlayers(ctx context.Context, query string, limit int) ([]db.Player, error)
}

type Server struct {
	client  *nba.Client
	players PlayerSearcher
	logger  *logrus.Logger
}

// New wires the handlers. players may be nil when no sqlite store is
// configured, in which case /players/search answers 503.
func New(client *nba.Client, players PlayerSearcher, logger *logrus.Logger) *Server {
	return &Server{client: client, players: players, logger: logger}
}

func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	s.Routes(e)
	return e
}

func (s *Server) Routes(e *echo.Echo) {
	e.GET("/players", s.playerList)
	e.GET("/players/lookup", s.playerLookup)
	e.GET("/players/search", s.playerSearch)
	e.GET("/stats/players", s.playerStats)
	e.GET("/leaders", s.leagueLeaders)
	e.GET("/games", s.games)
	e.GET("/shotchart/:player", s.shotChart)
	e.GET("/shotchart/:player/zones", s.shotZones)
	e.GET("/endpoints/:name/:index", s.endpoint)
}

// filters turns the query string into endpoint overrides, skipping keys the
// handler consumes itself.
func filters(c echo.Context, skip ...string) nba.Params {
	p := nba.Params{}
outer:
	for k, v := range c.QueryParams() {
		for _, s := range skip {
			if k == s {
				continue outer
			}
		}
		if len(v) > 0 {
			p[k] = v[0]
		}
	}
	return p
}

func (s *Server) fail(c echo.Context, err error) error {
	var (
		notFound  *nba.PlayerNotFoundError
		shape     *nba.ShapeError
		decode    *nba.DecodeError
		transport *nba.TransportError
	)
	switch {
	case errors.As(err, &notFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, nba.ErrUnknownFilter), errors.Is(err, nba.ErrMissingFilter):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &shape), errors.As(err, &decode), errors.As(err, &transport):
		s.logger.WithError(err).WithField("path", c.Path()).Warn("upstream request failed")
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	s.logger.WithError(err).WithField("path", c.Path()).Error("request failed")
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (s *Server) table(c echo.Context, ep nba.Endpoint, ndx int) error {
	table, err := s.client.Table(c.Request().Context(), ep, filters(c), ndx)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, table)
}

func (s *Server) playerList(c echo.Context) error {
	return s.table(c, nba.CommonAllPlayers, 0)
}

func (s *Server) playerStats(c echo.Context) error {
	return s.table(c, nba.LeagueDashPlayerStats, 0)
}

func (s *Server) leagueLeaders(c echo.Context) error {
	return s.table(c, nba.LeagueLeaders, 0)
}

func (s *Server) games(c echo.Context) error {
	games, err := s.client.SeasonGames(c.Request().Context(), filters(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, games)
}

func (s *Server) playerLookup(c echo.Context) error {
	q := nba.PlayerQuery{
		First:       c.QueryParam("first"),
		Last:        c.QueryParam("last"),
		Season:      c.QueryParam("season"),
		OnlyCurrent: c.QueryParam("only_current") == "1",
	}
	if q.First == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "first is required")
	}

	row, err := s.client.GetPlayerRow(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}
	if c.QueryParam("detail") == "1" {
		return c.JSON(http.StatusOK, row.Map())
	}
	id, err := nba.PlayerID(row)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"id": id})
}

func (s *Server) playerSearch(c echo.Context) error {
	if s.players == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "player index requires the sqlite cache")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	players, err := s.players.SearchPlayers(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, players)
}

func playerParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("player"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid player id %q", c.Param("player")))
	}
	return id, nil
}

func (s *Server) shotChart(c echo.Context) error {
	id, err := playerParam(c)
	if err != nil {
		return err
	}
	shots, avg, err := s.client.ShotChart(c.Request().Context(), id, filters(c, "PlayerID"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]*nba.Table{
		"shot_chart":     shots,
		"league_average": avg,
	})
}

func (s *Server) shotZones(c echo.Context) error {
	id, err := playerParam(c)
	if err != nil {
		return err
	}
	grid := shotzone.DefaultGrid
	if g := c.QueryParam("grid"); g != "" {
		if grid, err = strconv.Atoi(g); err != nil || grid <= 0 || grid > 100 {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid grid %q", g))
		}
	}
	shots, err := s.client.Shots(c.Request().Context(), id, filters(c, "PlayerID", "grid"))
	if err != nil {
		return s.fail(c, err)
	}
	chart, err := shotzone.Compute(shots, grid)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, chart)
}

func (s *Server) endpoint(c echo.Context) error {
	ep, ok := nba.LookupEndpoint(c.Param("name"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown endpoint %q, known: %s",
			c.Param("name"), strings.Join(nba.EndpointNames(), ", ")))
	}
	ndx, err := strconv.Atoi(c.Param("index"))
	if err != nil || ndx < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid result set index %q", c.Param("index")))
	}
	return s.table(c, ep, ndx)
}
