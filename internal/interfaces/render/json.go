package render

import (
	"io"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/mpl-analyzer/internal/usecase"
)

// JSON writes the report view as indented JSON.
func JSON(w io.Writer, report usecase.Report) error {
	encoder := sonic.ConfigStd.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewReportView(report))
}

// JSONBatch writes several reports as one indented JSON array.
func JSONBatch(w io.Writer, reports []usecase.Report) error {
	views := make([]ReportView, 0, len(reports))
	for _, report := range reports {
		views = append(views, NewReportView(report))
	}

	encoder := sonic.ConfigStd.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(views)
}
