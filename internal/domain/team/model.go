package team

import "github.com/riskibarqy/mpl-analyzer/internal/domain/sheet"

// Record is one team row of the season sheet.
type Record struct {
	Row         int
	Name        string
	Standing    *int
	MatchPoints *float64
	NetGameWins *float64
	Kills       *float64
	Deaths      *float64
	Assists     *float64
}

// FromRow reads a team record. It reports false when the team name is blank.
// A standing that is missing or not a whole number is left nil.
func FromRow(row sheet.Row, cols sheet.Columns) (Record, bool) {
	name, ok := row.Text(cols.TeamName)
	if !ok {
		return Record{}, false
	}

	rec := Record{
		Row:         row.Index,
		Name:        name,
		MatchPoints: row.OptionalNumber(cols.MatchPoints),
		NetGameWins: row.OptionalNumber(cols.NetGameWins),
		Kills:       row.OptionalNumber(cols.TeamKills),
		Deaths:      row.OptionalNumber(cols.TeamDeaths),
		Assists:     row.OptionalNumber(cols.TeamAssists),
	}
	if raw, ok := row.Text(cols.Standing); ok {
		if standing, ok := sheet.ParseInteger(raw); ok {
			rec.Standing = &standing
		}
	}

	return rec, true
}

// FromTable returns every team row in table order.
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
