package sheet

import "github.com/cockroachdb/errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrMalformed         = errors.New("malformed spreadsheet")
)
