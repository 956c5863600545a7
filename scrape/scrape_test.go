package scrape

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"statline/db"
	"statline/nba"
)

type fakeSource struct {
	table *nba.Table
	err   error
	calls []nba.Params
}

func (f *fakeSource) PlayerList(_ context.Context, p nba.Params) (*nba.Table, error) {
	f.calls = append(f.calls, p)
	return f.table, f.err
}

type fakeStore struct {
	players []db.Player
	purges  int
}

func (f *fakeStore) InsertPlayers(_ context.Context, players []db.Player) error {
	f.players = append(f.players, players...)
	return nil
}

func (f *fakeStore) PurgeExpired(context.Context) (int64, error) {
	f.purges++
	return 0, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestScrapeStoresCompletePlayers(t *testing.T) {
	table, err := nba.NewTable(
		[]string{"PERSON_ID", "DISPLAY_LAST_COMMA_FIRST", "DISPLAY_FIRST_LAST", "FROM_YEAR", "TO_YEAR", "TEAM_ABBREVIATION"},
		[][]any{
			{201939.0, "Curry, Stephen", "Stephen Curry", "2009", "2025", "GSW"},
			{nil, "Ghost, Player", "Player Ghost", "1950", "1951", ""},
			{77.0, nil, nil, nil, nil, nil},
		},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	source := &fakeSource{table: table}
	store := &fakeStore{}

	if err := New(source, store, quietLogger()).Scrape(context.Background()); err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if len(source.calls) != 1 || source.calls[0]["IsOnlyCurrentSeason"] != "0" {
		t.Errorf("calls = %v", source.calls)
	}
	if len(store.players) != 1 {
		t.Fatalf("stored %d players, want 1", len(store.players))
	}
	got := store.players[0]
	if got.ID != 201939 || got.FirstLast != "Stephen Curry" || got.TeamAbbreviation != "GSW" {
		t.Errorf("stored %+v", got)
	}
	if store.purges != 1 {
		t.Errorf("purges = %d", store.purges)
	}
}

func TestScrapeSourceErrorStillPurges(t *testing.T) {
	source := &fakeSource{err: &nba.TransportError{URL: "u", StatusCode: 500}}
	store := &fakeStore{}

	err := New(source, store, quietLogger()).Scrape(context.Background())
	var transportErr *nba.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *nba.TransportError, got %v", err)
	}
	if store.purges != 1 || len(store.players) != 0 {
		t.Errorf("purges = %d, players = %d", store.purges, len(store.players))
	}
}

func TestDaemonStopsOnCancel(t *testing.T) {
	table, _ := nba.NewTable([]string{"PERSON_ID"}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		New(&fakeSource{table: table}, &fakeStore{}, quietLogger()).Daemon(ctx, time.Hour)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not stop")
	}
}

func TestDaemonZeroIntervalScrapesOnce(t *testing.T) {
	table, _ := nba.NewTable([]string{"PERSON_ID"}, nil)
	source := &fakeSource{table: table}
	store := &fakeStore{}

	done := make(chan struct{})
	go func() {
		defer close(done)
		New(source, store, quietLogger()).Daemon(context.Background(), 0)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("daemon with zero interval did not return")
	}
	if len(source.calls) != 1 || store.purges != 1 {
		t.Errorf("calls = %d, purges = %d", len(source.calls), store.purges)
	}
}
