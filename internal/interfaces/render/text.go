package render

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/riskibarqy/mpl-analyzer/internal/domain/awards"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/player"
	"github.com/riskibarqy/mpl-analyzer/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

// Text writes a human readable report. Tables are aligned with tabwriter.
func Text(w io.Writer, report usecase.Report) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "%s (policy: %s, rows: %d)\n\n", report.Source, report.Policy, report.Rows)

	writeStandings(buf, report.Standings)
	buf.WriteString("\n")
	writeRoster(buf, "First all-star roster", report.AllStars.First)
	buf.WriteString("\n")
	writeRoster(buf, "Second all-star roster", report.AllStars.Second)
	buf.WriteString("\n")
	writeMVP(buf, report)

	if len(report.Warnings) > 0 {
		buf.WriteString("\nWarnings:\n")
		for _, warning := range report.Warnings {
			fmt.Fprintf(buf, "  - %s\n", warning)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func writeStandings(w io.Writer, standings awards.Standings) {
	fmt.Fprintf(w, "Top %d standings\n", awards.TopStandingsSize)
	if len(standings.Top) == 0 {
		fmt.Fprintln(w, "  no eligible teams")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  #\tTEAM\tMATCH POINTS\tNET GAME WIN\tK\tD\tA\t")
		for _, t := range standings.Top {
			marker := ""
			if standings.Champion != nil && standings.Champion.Row == t.Row {
				marker = " *"
			}
			fmt.Fprintf(tw, "  %d\t%s%s\t%s\t%s\t%s\t%s\t%s\t\n",
				*t.Standing, t.Name, marker,
				formatOptional(t.MatchPoints), formatOptional(t.NetGameWins),
				formatOptional(t.Kills), formatOptional(t.Deaths), formatOptional(t.Assists),
			)
		}
		_ = tw.Flush()
	}

	if standings.HasChampion() {
		fmt.Fprintf(w, "Champion: %s\n", standings.Champion.Name)
	} else {
		fmt.Fprintln(w, "Champion: none (no team with standing 1)")
	}
}

func writeRoster(w io.Writer, title string, selections []awards.Selection) {
	fmt.Fprintln(w, title)

	byRole := make(map[player.Role]awards.Candidate, len(selections))
	for _, s := range selections {
		byRole[s.Role] = s.Candidate
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ROLE\tPLAYER\tTEAM\tK\tA\tD\tKP\tKDA\tEFFICIENCY\t")
	for _, role := range player.Roles {
		c, ok := byRole[role]
		if !ok {
			fmt.Fprintf(tw, "  %s\t(empty)\t\t\t\t\t\t\t\t\n", role)
			continue
		}
		p := c.Player
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			role, p.Name, p.Team,
			formatOptional(p.Kills), formatOptional(p.Assists), formatOptional(p.Deaths),
			formatOptional(p.KillParticipation), formatOptional(p.KDARatio),
			formatFloat(c.Efficiency),
		)
	}
	_ = tw.Flush()
}

func writeMVP(w io.Writer, report usecase.Report) {
	if !report.HasMVP() {
		fmt.Fprintln(w, "MVP: none (no eligible players)")
		return
	}
	mvp := report.MVP
	fmt.Fprintf(w, "MVP: %s (%s, %s) score %s = %s x %s x %s\n",
		mvp.Player.Name, mvp.Player.Team, mvp.Player.Role,
		formatFloat(mvp.Score), formatFloat(mvp.Efficiency),
		formatFloat(mvp.KillParticipation), formatFloat(mvp.Kills),
	)
}

func formatOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
