package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/sheet"
)

// CSVParser reads a comma separated export of the season sheet.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Parse(data []byte) (*sheet.Table, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "read csv"), ErrMalformed)
		}
		records = append(records, record)
	}

	return buildTable(records)
}
