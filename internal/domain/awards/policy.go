package awards

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/riskibarqy/mpl-analyzer/internal/domain/player"
)

// Policy names a scoring strategy for all-star and MVP selection.
type Policy string

const (
	// PolicySimple ranks by the precomputed KDA ratio column.
	PolicySimple Policy = "simple"
	// PolicyWeighted ranks by contribution volume and uses derived KDA as efficiency.
	PolicyWeighted Policy = "weighted"
)

const DefaultPolicy = PolicyWeighted

var ErrUnknownPolicy = errors.New("unknown scoring policy")

func ParsePolicy(raw string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return DefaultPolicy, nil
	case PolicySimple:
		return PolicySimple, nil
	case PolicyWeighted:
		return PolicyWeighted, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: %s, %s)", ErrUnknownPolicy, raw, PolicySimple, PolicyWeighted)
	}
}

// Candidate is an eligible player together with the policy's efficiency value.
type Candidate struct {
	Player     player.Record
	Efficiency float64
}

// Strategy decides eligibility, ordering and efficiency for one policy. The same
// efficiency measure feeds both the all-star seniority and the MVP score.
type Strategy interface {
	Policy() Policy
	Efficiency(p player.Record) (float64, bool)
	// Rank returns the members of pool eligible for role, best first.
	Rank(role player.Role, pool []player.Record) []Candidate
	// Seniority orders a role's qualifiers into first and second roster order.
	Seniority(qualifiers []Candidate) []Candidate
}

func NewStrategy(policy Policy) (Strategy, error) {
	switch policy {
	case PolicySimple:
		return simpleStrategy{}, nil
	case PolicyWeighted:
		return weightedStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}

type simpleStrategy struct{}

func (simpleStrategy) Policy() Policy { return PolicySimple }

func (simpleStrategy) Efficiency(p player.Record) (float64, bool) {
	if p.KDARatio == nil {
		return 0, false
	}
	return *p.KDARatio, true
}

func (s simpleStrategy) Rank(_ player.Role, pool []player.Record) []Candidate {
	out := eligible(s, pool, func(player.Record) bool { return true })
	slices.SortStableFunc(out, func(a, b Candidate) int {
		return cmp.Compare(b.Efficiency, a.Efficiency)
	})
	return out
}

func (simpleStrategy) Seniority(qualifiers []Candidate) []Candidate {
	return slices.Clone(qualifiers)
}

type weightedStrategy struct{}

func (weightedStrategy) Policy() Policy { return PolicyWeighted }

func (weightedStrategy) Efficiency(p player.Record) (float64, bool) {
	return p.DerivedKDA()
}

func (s weightedStrategy) Rank(role player.Role, pool []player.Record) []Candidate {
	out := eligible(s, pool, func(p player.Record) bool {
		return p.Kills != nil && p.Assists != nil && p.Deaths != nil
	})
	if role == player.RoleRoam {
		slices.SortStableFunc(out, compareRoam)
	} else {
		slices.SortStableFunc(out, compareCore)
	}
	return out
}

// Seniority puts the more efficient qualifier on the first roster.
func (weightedStrategy) Seniority(qualifiers []Candidate) []Candidate {
	out := slices.Clone(qualifiers)
	slices.SortStableFunc(out, func(a, b Candidate) int {
		return cmp.Compare(b.Efficiency, a.Efficiency)
	})
	return out
}

// compareRoam: assists desc, deaths asc, derived KDA desc.
func compareRoam(a, b Candidate) int {
	return cmp.Or(
		cmp.Compare(*b.Player.Assists, *a.Player.Assists),
		cmp.Compare(*a.Player.Deaths, *b.Player.Deaths),
		cmp.Compare(b.Efficiency, a.Efficiency),
	)
}

// compareCore: kills desc, assists desc, deaths asc, derived KDA desc.
func compareCore(a, b Candidate) int {
	return cmp.Or(
		cmp.Compare(*b.Player.Kills, *a.Player.Kills),
		cmp.Compare(*b.Player.Assists, *a.Player.Assists),
		cmp.Compare(*a.Player.Deaths, *b.Player.Deaths),
		cmp.Compare(b.Efficiency, a.Efficiency),
	)
}

func eligible(s Strategy, pool []player.Record, required func(player.Record) bool) []Candidate {
	out := make([]Candidate, 0, len(pool))
	for _, p := range pool {
		if !required(p) {
			continue
		}
		eff, ok := s.Efficiency(p)
		if !ok || !finite(eff) {
			continue
		}
		out = append(out, Candidate{Player: p, Efficiency: eff})
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
