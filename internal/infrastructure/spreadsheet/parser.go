package spreadsheet

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/sheet"
)

var (
	ErrUnsupportedFormat = sheet.ErrUnsupportedFormat
	ErrMalformed         = sheet.ErrMalformed
)

// Parser turns an uploaded file into a table.
type Parser interface {
	Parse(data []byte) (*sheet.Table, error)
}

// Factory picks a parser from the file extension.
type Factory struct {
	sheetName string
}

// NewFactory creates a factory. sheetName selects the XLSX worksheet; empty means
// the first sheet.
func NewFactory(sheetName string) *Factory {
	return &Factory{sheetName: strings.TrimSpace(sheetName)}
}

// Load parses data with the parser registered for filename's extension.
func (f *Factory) Load(filename string, data []byte) (*sheet.Table, error) {
	parser, err := f.GetParser(filename)
	if err != nil {
		return nil, err
	}
	table, err := parser.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", filepath.Base(filename))
	}
	return table, nil
}

func (f *Factory) GetParser(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	switch ext {
	case ".xlsx", ".xlsm":
		return NewXLSXParser(f.sheetName), nil
	case ".csv":
		return NewCSVParser(), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "extension %q", ext)
	}
}

// buildTable treats the first non-blank record as the header.
func buildTable(records [][]string) (*sheet.Table, error) {
	for i, record := range records {
		if isBlankRecord(record) {
			continue
		}
		table := sheet.NewTable(record, records[i+1:])
		return table, nil
	}
	return nil, errors.Mark(errors.New("no header row found"), ErrMalformed)
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
