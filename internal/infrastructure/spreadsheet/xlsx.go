package spreadsheet

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/sheet"
	"github.com/xuri/excelize/v2"
)

// XLSXParser reads one worksheet of an Excel workbook.
type XLSXParser struct {
	sheetName string
}

func NewXLSXParser(sheetName string) *XLSXParser {
	return &XLSXParser{sheetName: sheetName}
}

// Parse reads raw cell values so percentages formatted in Excel arrive as fractions.
func (p *XLSXParser) Parse(data []byte) (*sheet.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "open xlsx"), ErrMalformed)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.Mark(errors.New("workbook has no sheets"), ErrMalformed)
	}

	name := sheets[0]
	if p.sheetName != "" {
		if idx, err := f.GetSheetIndex(p.sheetName); err != nil || idx < 0 {
			return nil, errors.Mark(errors.Newf("sheet %q not found", p.sheetName), ErrMalformed)
		}
		name = p.sheetName
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read sheet %q", name), ErrMalformed)
	}

	table, err := buildTable(rows)
	if err != nil {
		return nil, errors.Wrapf(err, "sheet %q", name)
	}
	return table, nil
}
