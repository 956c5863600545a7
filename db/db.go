package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"statline/utils"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store is the sqlite side of statline: a response cache keyed by request url
// and the player index kept fresh by the scraper.
type Store struct {
	db     *sqlx.DB
	ttl    time.Duration
	logger *logrus.Logger
	now    func() time.Time
}

type Player struct {
	ID               int    `db:"id" json:"id"`
	LastFirst        string `db:"last_first" json:"last_first"`
	FirstLast        string `db:"first_last" json:"first_last"`
	FromYear         string `db:"from_year" json:"from_year"`
	ToYear           string `db:"to_year" json:"to_year"`
	TeamAbbreviation string `db:"team_abbreviation" json:"team_abbreviation"`
	UpdatedAt        int64  `db:"updated_at" json:"-"`
}

type response struct {
	Body      []byte `db:"body"`
	ExpiresAt int64  `db:"expires_at"`
}

// Open creates the database file if needed, migrates it, and checks the
// schema before handing back a Store.
func Open(path string, ttl time.Duration, logger *logrus.Logger) (*Store, error) {
	if err := SetupDatabase(path); err != nil {
		return nil, err
	}
	if err := RunMigrations(path); err != nil {
		return nil, err
	}
	conn, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	conn.SetMaxOpenConns(1)
	s := &Store{db: conn, ttl: ttl, logger: logger, now: time.Now}
	if err := s.ValidateMigrations(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func SetupDatabase(path string) error {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		file, err := os.Create(path)
		if err != nil {
			return utils.ErrorWithTrace(err)
		}
		file.Close()
	} else if err != nil {
		return utils.ErrorWithTrace(err)
	}
	return nil
}

func RunMigrations(path string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite3://"+path)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return utils.ErrorWithTrace(err)
	}
	return nil
}

func (s *Store) ValidateMigrations() error {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('responses', 'players')`).Scan(&count)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	if count != 2 {
		return utils.ErrorWithTrace(fmt.Errorf("expected 2 tables, found %d", count))
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var r response
	err := s.db.GetContext(ctx, &r, `SELECT body, expires_at FROM responses WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("sqlite cache read failed")
		return nil, false, utils.ErrorWithTrace(err)
	}
	if r.ExpiresAt <= s.now().Unix() {
		return nil, false, nil
	}
	return r.Body, true, nil
}

func (s *Store) Set(ctx context.Context, key string, body []byte) error {
	if s.ttl <= 0 {
		return nil
	}
	expires := s.now().Add(s.ttl).Unix()
	_, err := s.db.ExecContext(ctx, `REPLACE INTO responses (key, body, expires_at) VALUES (?, ?, ?)`, key, body, expires)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("sqlite cache write failed")
		return utils.ErrorWithTrace(err)
	}
	return nil
}

// PurgeExpired deletes cached responses past their expiry.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM responses WHERE expires_at <= ?`, s.now().Unix())
	if err != nil {
		return 0, utils.ErrorWithTrace(err)
	}
	return res.RowsAffected()
}

func (s *Store) InsertPlayers(ctx context.Context, players []Player) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	defer tx.Rollback()

	query := `
		REPLACE INTO players (
			id, last_first, first_last, from_year, to_year, team_abbreviation, updated_at
		) VALUES (
			:id, :last_first, :first_last, :from_year, :to_year, :team_abbreviation, :updated_at
		)
	`
	now := s.now().Unix()
	for _, p := range players {
		p.UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
			return utils.ErrorWithTrace(err)
		}
	}
	return tx.Commit()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchPlayers is a case-insensitive substring match on both display names.
// LIKE wildcards in query match literally.
func (s *Store) SearchPlayers(ctx context.Context, query string, limit int) ([]Player, error) {
	if limit <= 0 {
		limit = 25
	}
	like := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	players := []Player{}
	err := s.db.SelectContext(ctx, &players, `
		SELECT * FROM players
		WHERE lower(first_last) LIKE ? ESCAPE '\' OR lower(last_first) LIKE ? ESCAPE '\'
		ORDER BY last_first
		LIMIT ?
	`, like, like, limit)
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	return players, nil
}

func (s *Store) CountPlayers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM players`); err != nil {
		return 0, utils.ErrorWithTrace(err)
	}
	return n, nil
}
