package sheet

import (
	"strconv"
	"strings"
)

// Table is one parsed worksheet. It is never mutated after NewTable returns.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Row
}

// Row is one data line of a Table. Index is the zero-based position among data rows.
type Row struct {
	Index  int
	table  *Table
	values []string
}

// NewTable builds a table from a header line and data records. Header names are
// trimmed; repeated names get ".1", ".2" suffixes in order of appearance. Records
// shorter than the header are padded with empty cells and longer ones are cut.
// Fully blank records are skipped.
func NewTable(header []string, records [][]string) *Table {
	columns := normalizeHeader(header)
	t := &Table{
		columns: columns,
		index:   make(map[string]int, len(columns)),
		rows:    make([]Row, 0, len(records)),
	}
	for i, name := range columns {
		t.index[name] = i
	}

	for _, record := range records {
		if isBlank(record) {
			continue
		}
		values := make([]string, len(columns))
		copy(values, record)
		t.rows = append(t.rows, Row{Index: len(t.rows), table: t, values: values})
	}

	return t
}

func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Rows() []Row {
	return append([]Row(nil), t.rows...)
}

// HasColumn reports whether the row's table has column.
func (r Row) HasColumn(column string) bool {
	return r.table != nil && r.table.HasColumn(column)
}

// Text returns the trimmed cell value for column, reporting false when the column
// does not exist or the cell is blank.
func (r Row) Text(column string) (string, bool) {
	if r.table == nil {
		return "", false
	}
	i, ok := r.table.index[column]
	if !ok {
		return "", false
	}
	value := strings.TrimSpace(r.values[i])
	if value == "" {
		return "", false
	}
	return value, true
}

// Number coerces the cell to a float. Cells that fail coercion are missing.
func (r Row) Number(column string) (float64, bool) {
	raw, ok := r.Text(column)
	if !ok {
		return 0, false
	}
	return ParseNumber(raw)
}

// OptionalNumber is Number returning nil for missing values.
func (r Row) OptionalNumber(column string) *float64 {
	v, ok := r.Number(column)
	if !ok {
		return nil
	}
	return &v
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]struct{}, len(header))
	dupCount := make(map[string]int)
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		candidate := name
		for {
			if _, taken := used[candidate]; !taken {
				break
			}
			dupCount[name]++
			candidate = name + "." + strconv.Itoa(dupCount[name])
		}
		used[candidate] = struct{}{}
		out[i] = candidate
	}
	return out
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
