package render

import (
	"time"

	"github.com/riskibarqy/mpl-analyzer/internal/domain/awards"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/team"
	"github.com/riskibarqy/mpl-analyzer/internal/usecase"
)

// ReportView is the JSON shape of a report, shared by the CLI and the HTTP API.
type ReportView struct {
	Source      string       `json:"source"`
	Policy      string       `json:"policy"`
	Rows        int          `json:"rows"`
	GeneratedAt time.Time    `json:"generated_at"`
	Champion    *TeamView    `json:"champion"`
	Standings   []TeamView   `json:"standings"`
	AllStars    AllStarsView `json:"all_stars"`
	MVP         *MVPView     `json:"mvp"`
	Contenders  []MVPView    `json:"mvp_contenders"`
	Warnings    []string     `json:"warnings"`
}

type TeamView struct {
	Row         int      `json:"row"`
	Name        string   `json:"name"`
	Standing    int      `json:"standing"`
	MatchPoints *float64 `json:"match_points,omitempty"`
	NetGameWins *float64 `json:"net_game_wins,omitempty"`
	Kills       *float64 `json:"kills,omitempty"`
	Deaths      *float64 `json:"deaths,omitempty"`
	Assists     *float64 `json:"assists,omitempty"`
}

type PlayerView struct {
	Row               int      `json:"row"`
	Name              string   `json:"name"`
	Team              string   `json:"team"`
	Role              string   `json:"role"`
	Kills             *float64 `json:"kills,omitempty"`
	Assists           *float64 `json:"assists,omitempty"`
	Deaths            *float64 `json:"deaths,omitempty"`
	KillParticipation *float64 `json:"kill_participation,omitempty"`
	KDARatio          *float64 `json:"kda_ratio,omitempty"`
	Efficiency        float64  `json:"efficiency"`
}

type AllStarsView struct {
	First  []PlayerView `json:"first"`
	Second []PlayerView `json:"second"`
}

type MVPView struct {
	PlayerView
	Score float64 `json:"score"`
}

func NewReportView(report usecase.Report) ReportView {
	view := ReportView{
		Source:      report.Source,
		Policy:      string(report.Policy),
		Rows:        report.Rows,
		GeneratedAt: report.GeneratedAt,
		Standings:   make([]TeamView, 0, len(report.Standings.Top)),
		AllStars: AllStarsView{
			First:  selectionViews(report.AllStars.First),
			Second: selectionViews(report.AllStars.Second),
		},
		Contenders: make([]MVPView, 0, len(report.Contenders)),
		Warnings:   append([]string{}, report.Warnings...),
	}
	for _, t := range report.Standings.Top {
		view.Standings = append(view.Standings, teamView(t))
	}
	if report.Standings.Champion != nil {
		champion := teamView(*report.Standings.Champion)
		view.Champion = &champion
	}
	for _, score := range report.Contenders {
		view.Contenders = append(view.Contenders, mvpView(score))
	}
	if report.MVP != nil {
		mvp := mvpView(*report.MVP)
		view.MVP = &mvp
	}
	return view
}

func teamView(t team.Record) TeamView {
	out := TeamView{
		Row:         t.Row,
		Name:        t.Name,
		MatchPoints: t.MatchPoints,
		NetGameWins: t.NetGameWins,
		Kills:       t.Kills,
		Deaths:      t.Deaths,
		Assists:     t.Assists,
	}
	if t.Standing != nil {
		out.Standing = *t.Standing
	}
	return out
}

func playerView(c awards.Candidate) PlayerView {
	p := c.Player
	return PlayerView{
		Row:               p.Row,
		Name:              p.Name,
		Team:              p.Team,
		Role:              p.Role.String(),
		Kills:             p.Kills,
		Assists:           p.Assists,
		Deaths:            p.Deaths,
		KillParticipation: p.KillParticipation,
		KDARatio:          p.KDARatio,
		Efficiency:        c.Efficiency,
	}
}

func selectionViews(selections []awards.Selection) []PlayerView {
	out := make([]PlayerView, 0, len(selections))
	for _, s := range selections {
		out = append(out, playerView(s.Candidate))
	}
	return out
}

func mvpView(score awards.MVPScore) MVPView {
	return MVPView{PlayerView: playerView(score.Candidate), Score: score.Score}
}
