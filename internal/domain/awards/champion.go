package awards

import (
	"cmp"
	"slices"

	"github.com/riskibarqy/mpl-analyzer/internal/domain/team"
)

// TopStandingsSize is the number of teams shown in the standings table.
const TopStandingsSize = 6

// Standings is the ranked head of the regular-season table.
type Standings struct {
	Top      []team.Record
	Champion *team.Record
	Eligible int
}

func (s Standings) HasChampion() bool {
	return s.Champion != nil
}

// RankStandings keeps teams with a name and a standing, orders them by standing
// ascending (ties keep sheet order) and returns at most size of them. The champion
// is the first returned team whose standing is 1.
func RankStandings(teams []team.Record, size int) Standings {
	ranked := make([]team.Record, 0, len(teams))
	for _, t := range teams {
		if t.Name == "" || t.Standing == nil {
			continue
		}
		ranked = append(ranked, t)
	}
	slices.SortStableFunc(ranked, func(a, b team.Record) int {
		return cmp.Compare(*a.Standing, *b.Standing)
	})

	out := Standings{Eligible: len(ranked)}
	if size >= 0 && len(ranked) > size {
		ranked = ranked[:size]
	}
	out.Top = ranked

	for i := range out.Top {
		if *out.Top[i].Standing == 1 {
			champion := out.Top[i]
			out.Champion = &champion
			break
		}
	}
	return out
}
