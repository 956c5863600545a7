package nba

import "slices"

// CurrentSeason is the season sent when a caller does not choose one.
const CurrentSeason = "2025-26"

type SeasonType string

var SeasonTypes = struct {
	Regular   SeasonType
	Playoffs  SeasonType
	PreSeason SeasonType
	AllStar   SeasonType
	PlayIn    SeasonType
}{
	Regular:   "Regular Season",
	Playoffs:  "Playoffs",
	PreSeason: "Pre Season",
	AllStar:   "All Star",
	PlayIn:    "PlayIn",
}

type PerMode string

var PerModes = struct {
	Totals  PerMode
	PerGame PerMode
	Per36   PerMode
	Per100  PerMode
	PerMin  PerMode
}{
	Totals:  "Totals",
	PerGame: "PerGame",
	Per36:   "Per36",
	Per100:  "Per100Possessions",
	PerMin:  "PerMinute",
}

type MeasureType string

var MeasureTypes = struct {
	Base       MeasureType
	Advanced   MeasureType
	Misc       MeasureType
	FourFactor MeasureType
	Scoring    MeasureType
	Opponent   MeasureType
	Usage      MeasureType
	Defense    MeasureType
}{
	Base:       "Base",
	Advanced:   "Advanced",
	Misc:       "Misc",
	FourFactor: "Four Factors",
	Scoring:    "Scoring",
	Opponent:   "Opponent",
	Usage:      "Usage",
	Defense:    "Defense",
}

type ContextMeasure string

var ContextMeasures = struct {
	FGM  ContextMeasure
	FGA  ContextMeasure
	FG3M ContextMeasure
	FG3A ContextMeasure
	PTS  ContextMeasure
}{
	FGM:  "FGM",
	FGA:  "FGA",
	FG3M: "FG3M",
	FG3A: "FG3A",
	PTS:  "PTS",
}

const LeagueNBA = "00"

var CommonAllPlayers = Endpoint{
	name: "commonallplayers",
	filters: []Filter{
		{"LeagueID", LeagueNBA},
		{"Season", CurrentSeason},
		{"IsOnlyCurrentSeason", "1"},
	},
}

var LeagueDashPlayerStats = Endpoint{
	name: "leaguedashplayerstats",
	filters: []Filter{
		{"SeasonType", string(SeasonTypes.Regular)},
		{"MeasureType", string(MeasureTypes.Base)},
		{"PerMode", string(PerModes.PerGame)},
		{"PlusMinus", "N"},
		{"PaceAdjust", "N"},
		{"Rank", "N"},
		{"Season", CurrentSeason},
		{"PORound", "0"},
		{"Outcome", ""},
		{"Location", ""},
		{"Month", "0"},
		{"SeasonSegment", ""},
		{"DateFrom", ""},
		{"DateTo", ""},
		{"OpponentTeamID", "0"},
		{"VsConference", ""},
		{"VsDivision", ""},
		{"TeamID", "0"},
		{"Conference", ""},
		{"Division", ""},
		{"GameSegment", ""},
		{"Period", "0"},
		{"ShotClockRange", ""},
		{"LastNGames", "0"},
		{"GameScope", ""},
		{"PlayerExperience", ""},
		{"PlayerPosition", ""},
		{"StarterBench", ""},
		{"DraftYear", ""},
		{"DraftPick", ""},
		{"College", ""},
		{"Country", ""},
		{"Height", ""},
		{"Weight", ""},
	},
}

// ShotChartDetail answers with two sets: the shots (0) and the league
// averages per zone (1).
var ShotChartDetail = Endpoint{
	name: "shotchartdetail",
	filters: []Filter{
		{"PlayerID", ""},
		{"TeamID", "0"},
		{"GameID", ""},
		{"LeagueID", LeagueNBA},
		{"Season", CurrentSeason},
		{"SeasonType", string(SeasonTypes.Regular)},
		{"Outcome", ""},
		{"Location", ""},
		{"Month", "0"},
		{"SeasonSegment", ""},
		{"DateFrom", ""},
		{"DateTo", ""},
		{"OpponentTeamID", "0"},
		{"VsConference", ""},
		{"VsDivision", ""},
		{"PlayerPosition", ""},
		{"GameSegment", ""},
		{"Period", "0"},
		{"LastNGames", "0"},
		{"AheadBehind", ""},
		{"ContextMeasure", string(ContextMeasures.FGA)},
		{"ClutchTime", ""},
		{"RookieYear", ""},
	},
	required: []string{"PlayerID"},
}

const (
	ShotChartSet     = 0
	LeagueAverageSet = 1
)

// LeagueLeaders returns its single set directly under "resultSet".
var LeagueLeaders = Endpoint{
	name: "leagueleaders",
	filters: []Filter{
		{"LeagueID", LeagueNBA},
		{"PerMode", string(PerModes.PerGame)},
		{"Scope", "S"},
		{"Season", CurrentSeason},
		{"SeasonType", string(SeasonTypes.Regular)},
		{"StatCategory", "PTS"},
		{"ActiveFlag", ""},
	},
}

var LeagueGameLog = Endpoint{
	name: "leaguegamelog",
	filters: []Filter{
		{"Counter", "1000"},
		{"DateFrom", ""},
		{"DateTo", ""},
		{"Direction", "DESC"},
		{"LeagueID", LeagueNBA},
		{"PlayerOrTeam", "T"},
		{"Season", CurrentSeason},
		{"SeasonType", string(SeasonTypes.Regular)},
		{"Sorter", "DATE"},
	},
}

var LeagueGameFinder = Endpoint{
	name: "leaguegamefinder",
	filters: []Filter{
		{"PlayerOrTeam", "P"},
		{"PlayerID", ""},
		{"TeamID", ""},
		{"LeagueID", LeagueNBA},
		{"Season", ""},
		{"SeasonType", ""},
	},
}

var BoxScoreTraditionalV2 = Endpoint{
	name: "boxscoretraditionalv2",
	filters: []Filter{
		{"GameID", ""},
		{"StartPeriod", "0"},
		{"EndPeriod", "10"},
		{"StartRange", "0"},
		{"EndRange", "28800"},
		{"RangeType", "0"},
	},
	required: []string{"GameID"},
}

var CommonPlayerInfo = Endpoint{
	name: "commonplayerinfo",
	filters: []Filter{
		{"PlayerID", ""},
		{"LeagueID", ""},
	},
	required: []string{"PlayerID"},
}

var catalogue = map[string]Endpoint{}

func init() {
	for _, ep := range []Endpoint{
		CommonAllPlayers,
		LeagueDashPlayerStats,
		ShotChartDetail,
		LeagueLeaders,
		LeagueGameLog,
		LeagueGameFinder,
		BoxScoreTraditionalV2,
		CommonPlayerInfo,
	} {
		catalogue[ep.name] = ep
	}
}

// LookupEndpoint finds a descriptor declared above by its name.
func LookupEndpoint(name string) (Endpoint, bool) {
	ep, ok := catalogue[name]
	return ep, ok
}

// EndpointNames lists the catalogue in sorted order.
func EndpointNames() []string {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
