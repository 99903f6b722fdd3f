package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/spec-kit/sla-compliance-service/internal/domain"
	"github.com/spec-kit/sla-compliance-service/internal/ingest"
)

// Enriched column names appended to the source header.
const (
	ColumnElapsedHours  = "business_hours_elapsed"
	ColumnDeadlineHours = "deadline_hours"
	ColumnSlaStatus     = "sla_status"
)

// WriteAugmented writes the dataset back out with one evaluation per row:
// every source column is preserved unchanged and the enriched columns are
// appended. Evaluations must be in row order.
func WriteAugmented(w io.Writer, ds *ingest.Dataset, evaluations []domain.SlaEvaluation, delimiter rune) error {
	if len(evaluations) != len(ds.Rows) {
		return fmt.Errorf("row/evaluation count mismatch: %d rows, %d evaluations", len(ds.Rows), len(evaluations))
	}

	writer := csv.NewWriter(w)
	if delimiter != 0 {
		writer.Comma = delimiter
	}

	header := append(append([]string{}, ds.Header...), ColumnElapsedHours, ColumnDeadlineHours, ColumnSlaStatus)
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, row := range ds.Rows {
		eval := evaluations[i]
		out := append(append([]string{}, row...),
			formatHours(eval.ElapsedHours),
			formatHours(eval.DeadlineHours),
			string(eval.Status),
		)
		if err := writer.Write(out); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 2, 64)
}
