package nba

func maybe[T any](x any) *T {
	if x, ok := x.(T); ok {
		return &x
	}
	return nil
}

func cell[T any](r Row, column string) *T {
	v, ok := r.Get(column)
	if !ok {
		return nil
	}
	return maybe[T](v)
}

type LeagueGameLogGame struct {
	SeasonID         *string
	TeamID           *float64
	TeamAbbreviation *string
	TeamName         *string
	GameID           *string
	GameDate         *string
	Matchup          *string
	WL               *string
	MIN              *float64
	PTS              *float64
	PlusMinus        *float64
	VideoAvailable   *float64
}

func LeagueGameLogFromTable(t *Table) []LeagueGameLogGame {
	games := make([]LeagueGameLogGame, t.Len())
	for i := range t.Rows {
		r := t.Row(i)
		games[i] = LeagueGameLogGame{
			SeasonID:         cell[string](r, "SEASON_ID"),
			TeamID:           cell[float64](r, "TEAM_ID"),
			TeamAbbreviation: cell[string](r, "TEAM_ABBREVIATION"),
			TeamName:         cell[string](r, "TEAM_NAME"),
			GameID:           cell[string](r, "GAME_ID"),
			GameDate:         cell[string](r, "GAME_DATE"),
			Matchup:          cell[string](r, "MATCHUP"),
			WL:               cell[string](r, "WL"),
			MIN:              cell[float64](r, "MIN"),
			PTS:              cell[float64](r, "PTS"),
			PlusMinus:        cell[float64](r, "PLUS_MINUS"),
			VideoAvailable:   cell[float64](r, "VIDEO_AVAILABLE"),
		}
	}
	return games
}

// Shot is one row of the shot chart set.
type Shot struct {
	GameID        *string
	GameEventID   *float64
	PlayerID      *float64
	PlayerName    *string
	Period        *float64
	EventType     *string
	ActionType    *string
	ShotType      *string
	ShotZoneBasic *string
	ShotZoneArea  *string
	ShotDistance  *float64
	LocX          *float64
	LocY          *float64
	Made          *float64
}

func ShotsFromTable(t *Table) []Shot {
	shots := make([]Shot, t.Len())
	for i := range t.Rows {
		r := t.Row(i)
		shots[i] = Shot{
			GameID:        cell[string](r, "GAME_ID"),
			GameEventID:   cell[float64](r, "GAME_EVENT_ID"),
			PlayerID:      cell[float64](r, "PLAYER_ID"),
			PlayerName:    cell[string](r, "PLAYER_NAME"),
			Period:        cell[float64](r, "PERIOD"),
			EventType:     cell[string](r, "EVENT_TYPE"),
			ActionType:    cell[string](r, "ACTION_TYPE"),
			ShotType:      cell[string](r, "SHOT_TYPE"),
			ShotZoneBasic: cell[string](r, "SHOT_ZONE_BASIC"),
			ShotZoneArea:  cell[string](r, "SHOT_ZONE_AREA"),
			ShotDistance:  cell[float64](r, "SHOT_DISTANCE"),
			LocX:          cell[float64](r, "LOC_X"),
			LocY:          cell[float64](r, "LOC_Y"),
			Made:          cell[float64](r, "SHOT_MADE_FLAG"),
		}
	}
	return shots
}
