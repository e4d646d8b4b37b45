package awards

import (
	"cmp"
	"slices"

	"github.com/riskibarqy/mpl-analyzer/internal/domain/player"
)

// MVPScore is efficiency x kill participation x total kills for one player.
type MVPScore struct {
	Candidate
	KillParticipation float64
	Kills             float64
	Score             float64
}

// RankMVP scores every player that has all three multiplicands, highest score
// first. Equal scores keep sheet order. Scores that overflow a float64 are
// dropped along with their player.
func RankMVP(players []player.Record, strategy Strategy) []MVPScore {
	out := make([]MVPScore, 0, len(players))
	for _, p := range players {
		if p.KillParticipation == nil || p.Kills == nil {
			continue
		}
		eff, ok := strategy.Efficiency(p)
		if !ok || !finite(eff) {
			continue
		}
		score := eff * *p.KillParticipation * *p.Kills
		if !finite(score) {
			continue
		}
		out = append(out, MVPScore{
			Candidate:         Candidate{Player: p, Efficiency: eff},
			KillParticipation: *p.KillParticipation,
			Kills:             *p.Kills,
			Score:             score,
		})
	}
	slices.SortStableFunc(out, func(a, b MVPScore) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

// SelectMVP returns the top scorer, or false when no player is eligible.
func SelectMVP(players []player.Record, strategy Strategy) (MVPScore, bool) {
	ranked := RankMVP(players, strategy)
	if len(ranked) == 0 {
		return MVPScore{}, false
	}
	return ranked[0], true
}
