package sheet

// Columns maps logical fields to header names in the league export.
type Columns struct {
	TeamName          string `yaml:"team_name" validate:"required"`
	Standing          string `yaml:"standing" validate:"required"`
	MatchPoints       string `yaml:"match_points"`
	NetGameWins       string `yaml:"net_game_wins"`
	TeamKills         string `yaml:"team_kills"`
	TeamDeaths        string `yaml:"team_deaths"`
	TeamAssists       string `yaml:"team_assists"`
	PlayerName        string `yaml:"player_name" validate:"required"`
	PlayerTeam        string `yaml:"player_team"`
	PlayerTeamAlt     string `yaml:"player_team_fallback"`
	Role              string `yaml:"role" validate:"required"`
	TotalKills        string `yaml:"total_kills" validate:"required"`
	TotalAssists      string `yaml:"total_assists" validate:"required"`
	TotalDeaths       string `yaml:"total_deaths" validate:"required"`
	KillParticipation string `yaml:"kill_participation" validate:"required"`
	KDARatio          string `yaml:"kda_ratio" validate:"required"`
}

// DefaultColumns returns the header names used by the MPL season export.
func DefaultColumns() Columns {
	return Columns{
		TeamName:          "Team",
		Standing:          "Rank",
		MatchPoints:       "Match point",
		NetGameWins:       "Net Game Win",
		TeamKills:         "Kills",
		TeamDeaths:        "Deaths",
		TeamAssists:       "Assists",
		PlayerName:        "Player",
		PlayerTeam:        "Team.1",
		PlayerTeamAlt:     "Team",
		Role:              "Role",
		TotalKills:        "Total Kills",
		TotalAssists:      "Total Assists",
		TotalDeaths:       "Total Deaths",
		KillParticipation: "Kill Participation",
		KDARatio:          "KDA Ratio",
	}
}

// Merge fills blank fields of c from fallback.
func (c Columns) Merge(fallback Columns) Columns {
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Columns{
		TeamName:          pick(c.TeamName, fallback.TeamName),
		Standing:          pick(c.Standing, fallback.Standing),
		MatchPoints:       pick(c.MatchPoints, fallback.MatchPoints),
		NetGameWins:       pick(c.NetGameWins, fallback.NetGameWins),
		TeamKills:         pick(c.TeamKills, fallback.TeamKills),
		TeamDeaths:        pick(c.TeamDeaths, fallback.TeamDeaths),
		TeamAssists:       pick(c.TeamAssists, fallback.TeamAssists),
		PlayerName:        pick(c.PlayerName, fallback.PlayerName),
		PlayerTeam:        pick(c.PlayerTeam, fallback.PlayerTeam),
		PlayerTeamAlt:     pick(c.PlayerTeamAlt, fallback.PlayerTeamAlt),
		Role:              pick(c.Role, fallback.Role),
		TotalKills:        pick(c.TotalKills, fallback.TotalKills),
		TotalAssists:      pick(c.TotalAssists, fallback.TotalAssists),
		TotalDeaths:       pick(c.TotalDeaths, fallback.TotalDeaths),
		KillParticipation: pick(c.KillParticipation, fallback.KillParticipation),
		KDARatio:          pick(c.KDARatio, fallback.KDARatio),
	}
}
