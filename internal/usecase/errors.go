package usecase

import (
	"errors"

	"github.com/riskibarqy/mpl-analyzer/internal/domain/sheet"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnsupportedFormat = sheet.ErrUnsupportedFormat
	ErrMalformedTable    = sheet.ErrMalformed
)
