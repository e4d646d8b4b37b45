package awards

import (
	"fmt"

	"github.com/riskibarqy/mpl-analyzer/internal/domain/player"
)

// Selection is one roster slot.
type Selection struct {
	Role      player.Role
	Candidate Candidate
}

// RoleGap records a role whose pool could not fill both rosters.
type RoleGap struct {
	Role     player.Role
	Eligible int
}

func (g RoleGap) String() string {
	if g.Eligible == 0 {
		return fmt.Sprintf("no eligible %s players: first and second all-star slots are empty", g.Role)
	}
	return fmt.Sprintf("only one eligible %s player: second all-star slot is empty", g.Role)
}

// AllStars holds both rosters in role order.
type AllStars struct {
	Policy Policy
	First  []Selection
	Second []Selection
	Gaps   []RoleGap
}

func (a AllStars) Complete() bool {
	return len(a.Gaps) == 0
}

// SelectAllStars picks the two best players of every role. Players with an
// unrecognized role are ignored.
func SelectAllStars(players []player.Record, strategy Strategy) AllStars {
	pools := make(map[player.Role][]player.Record, len(player.Roles))
	for _, p := range players {
		if p.Role == player.RoleUnknown {
			continue
		}
		pools[p.Role] = append(pools[p.Role], p)
	}

	out := AllStars{Policy: strategy.Policy()}
	for _, role := range player.Roles {
		ranked := strategy.Rank(role, pools[role])
		if len(ranked) < 2 {
			out.Gaps = append(out.Gaps, RoleGap{Role: role, Eligible: len(ranked)})
		}
		if len(ranked) == 0 {
			continue
		}

		qualifiers := strategy.Seniority(ranked[:min(2, len(ranked))])
		out.First = append(out.First, Selection{Role: role, Candidate: qualifiers[0]})
		if len(qualifiers) > 1 {
			out.Second = append(out.Second, Selection{Role: role, Candidate: qualifiers[1]})
		}
	}
	return out
}
