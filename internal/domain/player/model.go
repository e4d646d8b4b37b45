package player

import (
	"math"
	"strings"

	"github.com/riskibarqy/mpl-analyzer/internal/domain/sheet"
)

// Role is a player's lane position within a five-player lineup.
type Role string

const (
	RoleUnknown Role = ""
	RoleEXP     Role = "EXP"
	RoleJungle  Role = "Jungle"
	RoleMid     Role = "Mid"
	RoleGold    Role = "Gold"
	RoleRoam    Role = "Roam"
)

// Roles lists the recognized roles in roster order.
var Roles = []Role{RoleEXP, RoleJungle, RoleMid, RoleGold, RoleRoam}

var rolesByKey = map[string]Role{
	"exp":    RoleEXP,
	"jungle": RoleJungle,
	"mid":    RoleMid,
	"gold":   RoleGold,
	"roam":   RoleRoam,
}

// ParseRole normalizes case and whitespace before matching a role name.
func ParseRole(raw string) (Role, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(raw), ""))
	role, ok := rolesByKey[key]
	return role, ok
}

func (r Role) String() string {
	if r == RoleUnknown {
		return "unknown"
	}
	return string(r)
}

// Record is one player row of the season sheet. Numeric stats are nil when the
// cell was blank or not a number.
type Record struct {
	Row               int
	Name              string
	Team              string
	Role              Role
	RawRole           string
	Kills             *float64
	Assists           *float64
	Deaths            *float64
	KillParticipation *float64
	KDARatio          *float64
}

// FromRow reads a player record. It reports false when the player name is blank.
func FromRow(row sheet.Row, cols sheet.Columns) (Record, bool) {
	name, ok := row.Text(cols.PlayerName)
	if !ok {
		return Record{}, false
	}

	// The fallback column only applies to sheets without a dedicated player
	// team column; side by side exports put the standings team there.
	teamColumn := cols.PlayerTeam
	if !row.HasColumn(teamColumn) {
		teamColumn = cols.PlayerTeamAlt
	}
	team, _ := row.Text(teamColumn)

	rawRole, _ := row.Text(cols.Role)
	role, _ := ParseRole(rawRole)

	return Record{
		Row:               row.Index,
		Name:              name,
		Team:              team,
		Role:              role,
		RawRole:           rawRole,
		Kills:             row.OptionalNumber(cols.TotalKills),
		Assists:           row.OptionalNumber(cols.TotalAssists),
		Deaths:            row.OptionalNumber(cols.TotalDeaths),
		KillParticipation: row.OptionalNumber(cols.KillParticipation),
		KDARatio:          row.OptionalNumber(cols.KDARatio),
	}, true
}

// FromTable returns every player row in table order.
func FromTable(table *sheet.Table, cols sheet.Columns) []Record {
	rows := table.Rows()
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		if rec, ok := FromRow(row, cols); ok {
			out = append(out, rec)
		}
	}
	return out
}

// DerivedKDA computes (kills + assists) / max(deaths, 1).
func (r Record) DerivedKDA() (float64, bool) {
	if r.Kills == nil || r.Assists == nil || r.Deaths == nil {
		return 0, false
	}
	return (*r.Kills + *r.Assists) / math.Max(*r.Deaths, 1), true
}
