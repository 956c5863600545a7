package nba

import (
	"context"
	"fmt"
	"strings"

)

const (
	colPersonID         = "PERSON_ID"
	colDisplayLastFirst = "DISPLAY_LAST_COMMA_FIRST"
	colDisplayFirstLast = "DISPLAY_FIRST_LAST"
	colRosterStatus     = "ROSTERSTATUS"
	colFromYear         = "FROM_YEAR"
	colToYear           = "TO_YEAR"
	colPlayerCode       = "PLAYERCODE"
	colPlayerSlug       = "PLAYER_SLUG"
	colTeamID           = "TEAM_ID"
	colTeamCity         = "TEAM_CITY"
	colTeamName         = "TEAM_NAME"
	colTeamAbbreviation = "TEAM_ABBREVIATION"
	colTeamCode         = "TEAM_CODE"
	colTeamSlug         = "TEAM_SLUG"
	colGamesPlayedFlag  = "GAMES_PLAYED_FLAG"
	colOtherLeagueExpCh = "OTHERLEAGUE_EXPERIENCE_CH"
)

type CommonAllPlayer struct {
	PersonID                *float64
	DisplayLastFirst        *string
	DisplayFirstLast        *string
	RosterStatus            *float64
	FromYear                *string
	ToYear                  *string
	PlayerCode              *string
	PlayerSlug              *string
	TeamID                  *float64
	TeamCity                *string
	TeamName                *string
	TeamAbbreviation        *string
	TeamCode                *string
	TeamSlug                *string
	GamesPlayedFlag         *string
	OtherLeagueExperienceCh *string
}

func CommonAllPlayersFromTable(t *Table) []CommonAllPlayer {
	players := make([]CommonAllPlayer, t.Len())
	for i := range t.Rows {
		r := t.Row(i)
		players[i] = CommonAllPlayer{
			PersonID:                cell[float64](r, colPersonID),
			DisplayLastFirst:        cell[string](r, colDisplayLastFirst),
			DisplayFirstLast:        cell[string](r, colDisplayFirstLast),
			RosterStatus:            cell[float64](r, colRosterStatus),
			FromYear:                cell[string](r, colFromYear),
			ToYear:                  cell[string](r, colToYear),
			PlayerCode:              cell[string](r, colPlayerCode),
			PlayerSlug:              cell[string](r, colPlayerSlug),
			TeamID:                  cell[float64](r, colTeamID),
			TeamCity:                cell[string](r, colTeamCity),
			TeamName:                cell[string](r, colTeamName),
			TeamAbbreviation:        cell[string](r, colTeamAbbreviation),
			TeamCode:                cell[string](r, colTeamCode),
			TeamSlug:                cell[string](r, colTeamSlug),
			GamesPlayedFlag:         cell[string](r, colGamesPlayedFlag),
			OtherLeagueExperienceCh: cell[string](r, colOtherLeagueExpCh),
		}
	}
	return players
}

// PlayerQuery selects which player list a lookup runs against. An empty
// Season means the current one.
type PlayerQuery struct {
	First       string
	Last        string
	Season      string
	OnlyCurrent bool
}

func (q PlayerQuery) key() string {
	if q.Last == "" {
		return strings.ToLower(q.First)
	}
	return strings.ToLower(fmt.Sprintf("%s, %s", q.Last, q.First))
}

func (q PlayerQuery) params() Params {
	season := q.Season
	if season == "" {
		season = CurrentSeason
	}
	onlyCurrent := "0"
	if q.OnlyCurrent {
		onlyCurrent = "1"
	}
	return Params{"Season": season, "IsOnlyCurrentSeason": onlyCurrent}
}

// LookupPlayers returns every row whose DISPLAY_LAST_COMMA_FIRST equals
// "last, first" ignoring case, or just first when last is empty.
func LookupPlayers(players *Table, first, last string) []Row {
	key := PlayerQuery{First: first, Last: last}.key()
	idx := players.ColumnIndex(colDisplayLastFirst)
	if idx < 0 {
		return nil
	}
	matches := []Row{}
	for i, r := range players.Rows {
		if strings.ToLower(fmt.Sprint(r[idx])) == key {
			matches = append(matches, players.Row(i))
		}
	}
	return matches
}

// LookupPlayer returns the first matching row in table order. Callers that
// need to know about duplicate names should use LookupPlayers.
func LookupPlayer(players *Table, first, last string) (Row, error) {
	matches := LookupPlayers(players, first, last)
	if len(matches) == 0 {
		name := first
		if last != "" {
			name = first + " " + last
		}
		return Row{}, &PlayerNotFoundError{Name: name}
	}
	return matches[0], nil
}

// PlayerID reads PERSON_ID from a player list row.
func PlayerID(r Row) (int, error) {
	v, ok := r.Get(colPersonID)
	if !ok {
		return 0, fmt.Errorf("nba: row has no %s column", colPersonID)
	}
	switch id := v.(type) {
	case float64:
		return int(id), nil
	case int:
		return id, nil
	case int64:
		return int(id), nil
	}
	return 0, fmt.Errorf("nba: %s is %v, not a number", colPersonID, v)
}

func (c *Client) GetPlayerRow(ctx context.Context, q PlayerQuery) (Row, error) {
	players, err := c.PlayerList(ctx, q.params())
	if err != nil {
		return Row{}, err
	}
	return LookupPlayer(players, q.First, q.Last)
}

func (c *Client) GetPlayer(ctx context.Context, q PlayerQuery) (int, error) {
	row, err := c.GetPlayerRow(ctx, q)
	if err != nil {
		return 0, err
	}
	return PlayerID(row)
}
