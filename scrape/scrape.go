package scrape

import (
	"context"
	"errors"
	"fmt"
	"time"

	"statline/config"
	"statline/db"
	"statline/nba"
	"statline/utils"

	"github.com/sirupsen/logrus"
)

type PlayerSource interface {
	PlayerList(ctx context.Context, overrides nba.Params) (*nba.Table, error)
}

type PlayerStore interface {
	InsertPlayers(ctx context.Context, players []db.Player) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type Scraper struct {
	source PlayerSource
	store  PlayerStore
	logger *logrus.Logger
}

func New(source PlayerSource, store PlayerStore, logger *logrus.Logger) *Scraper {
	return &Scraper{source: source, store: store, logger: logger}
}

// Daemon scrapes once right away and then every interval until ctx is done.
// A non-positive interval scrapes once and returns.
func (s *Scraper) Daemon(ctx context.Context, interval time.Duration) {
	if err := s.Scrape(ctx); err != nil {
		s.logger.WithError(err).Error("scrape failed")
	}
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Scrape(ctx); err != nil {
				s.logger.WithError(err).Error("scrape failed")
			}
		}
	}
}

func (s *Scraper) Scrape(ctx context.Context) error {
	s.logger.Info("Scraping All Players")
	playersErr := s.scrapeAllPlayers(ctx, config.CurrentSeason)
	if playersErr != nil {
		playersErr = utils.ErrorWithTrace(playersErr)
	}

	purged, purgeErr := s.store.PurgeExpired(ctx)
	if purgeErr != nil {
		purgeErr = utils.ErrorWithTrace(purgeErr)
	} else {
		s.logger.WithField("purged", purged).Debug("purged expired responses")
	}

	if playersErr != nil || purgeErr != nil {
		return errors.Join(playersErr, purgeErr)
	}
	s.logger.Info("Finished Scraping")
	return nil
}

// scrapeAllPlayers loads every player who appeared up to and including season.
func (s *Scraper) scrapeAllPlayers(ctx context.Context, season string) error {
	if utils.IsInvalidSeason(season) {
		return fmt.Errorf("invalid season provided: %s", season)
	}
	table, err := s.source.PlayerList(ctx, nba.Params{"Season": season, "IsOnlyCurrentSeason": "0"})
	if err != nil {
		return err
	}

	players := nba.CommonAllPlayersFromTable(table)
	dbPlayers := make([]db.Player, 0, len(players))
	for _, p := range players {
		if p.PersonID != nil && p.DisplayFirstLast != nil && p.DisplayLastFirst != nil {
			dbPlayers = append(dbPlayers, toDBPlayer(p))
			continue
		}
		if p.PersonID == nil && p.DisplayFirstLast != nil {
			s.logger.WithField("name", *p.DisplayFirstLast).Warn("player missing PERSON_ID")
		} else if p.PersonID != nil {
			s.logger.WithField("id", int(*p.PersonID)).Warn("player missing display name")
		} else {
			s.logger.WithField("player", fmt.Sprintf("%+v", p)).Warn("player missing id and name")
		}
	}
	if err := s.store.InsertPlayers(ctx, dbPlayers); err != nil {
		return err
	}
	s.logger.WithField("count", len(dbPlayers)).Info("stored players")
	return nil
}

func toDBPlayer(p nba.CommonAllPlayer) db.Player {
	return db.Player{
		ID:               int(*p.PersonID),
		LastFirst:        *p.DisplayLastFirst,
		FirstLast:        *p.DisplayFirstLast,
		FromYear:         deref(p.FromYear),
		ToYear:           deref(p.ToYear),
		TeamAbbreviation: deref(p.TeamAbbreviation),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
