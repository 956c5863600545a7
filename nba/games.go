package nba

import (
	"cmp"
	"slices"
	"strings"
)

type GameTeam struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Points       int    `json:"points"`
}

// Game pairs the two team rows leaguegamelog reports for every game.
type Game struct {
	ID      string   `json:"id"`
	Date    string   `json:"date"`
	Matchup string   `json:"matchup"`
	Home    GameTeam `json:"home"`
	Away    GameTeam `json:"away"`
	Winner  string   `json:"winner"`
}

// Games folds a team game log into one Game per GAME_ID, ordered by date.
// Games without exactly two complete team rows are left out.
func Games(log *Table) []Game {
	byID := map[string][]LeagueGameLogGame{}
	for _, g := range LeagueGameLogFromTable(log) {
		if g.GameID == nil || g.TeamID == nil || g.PTS == nil || g.Matchup == nil {
			continue
		}
		byID[*g.GameID] = append(byID[*g.GameID], g)
	}

	games := make([]Game, 0, len(byID))
	for id, rows := range byID {
		if len(rows) != 2 {
			continue
		}
		// "BOS @ NYK" is the away team's row, "NYK vs. BOS" the home team's.
		home, away := rows[0], rows[1]
		if strings.Contains(*home.Matchup, "@") {
			home, away = away, home
		}
		g := Game{
			ID:      id,
			Date:    deref(home.GameDate),
			Matchup: *home.Matchup,
			Home:    gameTeam(home),
			Away:    gameTeam(away),
		}
		if g.Home.Points > g.Away.Points {
			g.Winner = g.Home.Abbreviation
		} else {
			g.Winner = g.Away.Abbreviation
		}
		games = append(games, g)
	}
	slices.SortFunc(games, func(a, b Game) int {
		return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.ID, b.ID))
	})
	return games
}

func gameTeam(g LeagueGameLogGame) GameTeam {
	return GameTeam{
		ID:           int(*g.TeamID),
		Name:         deref(g.TeamName),
		Abbreviation: deref(g.TeamAbbreviation),
		Points:       int(*g.PTS),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
