package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/spec-kit/sla-compliance-service/internal/domain"
	"github.com/spec-kit/sla-compliance-service/internal/sla"
	apperrors "github.com/spec-kit/sla-compliance-service/pkg/util"
)

// Columns names the required columns of a ticket export. Matching against the
// file header is case and diacritic insensitive, so "Número" finds "numero".
type Columns struct {
	ID       string
	Status   string
	Opened   string
	Priority string
	Assignee string
	Modified string
}

// Dataset is one parsed ticket export. The original header and cells are kept
// verbatim so exports can reproduce them losslessly.
type Dataset struct {
	Header  []string
	Rows    [][]string
	Tickets []domain.RawTicket
}

// ReadDataset parses a delimited ticket export. Required columns are resolved
// against the header before any row is read; if any are missing the whole
// batch is rejected with a single validation error naming them.
func ReadDataset(r io.Reader, cols Columns, delimiter rune) (*Dataset, error) {
	reader := csv.NewReader(r)
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewValidationError("dataset has no header row", nil)
	}

	index, missing := resolveColumns(header, cols)
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("dataset is missing required columns",
			map[string]any{"missing": missing})
	}

	ds := &Dataset{Header: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("malformed row %d", len(ds.Rows)+2),
				map[string]any{"cause": err.Error()})
		}
		ds.Rows = append(ds.Rows, row)
		ds.Tickets = append(ds.Tickets, domain.RawTicket{
			ID:          cell(row, index.id),
			Status:      cell(row, index.status),
			Priority:    cell(row, index.priority),
			OpenedRaw:   cell(row, index.opened),
			ModifiedRaw: cell(row, index.modified),
			Assignee:    cell(row, index.assignee),
		})
	}
	return ds, nil
}

type columnIndex struct {
	id, status, opened, priority, assignee, modified int
}

func resolveColumns(header []string, cols Columns) (columnIndex, []string) {
	lookup := make(map[string]int, len(header))
	for i, name := range header {
		key := sla.NormalizeText(name)
		if _, seen := lookup[key]; !seen {
			lookup[key] = i
		}
	}

	index := columnIndex{}
	var missing []string
	find := func(name string, dst *int) {
		if i, ok := lookup[sla.NormalizeText(name)]; ok {
			*dst = i
			return
		}
		*dst = -1
		missing = append(missing, name)
	}
	find(cols.ID, &index.id)
	find(cols.Status, &index.status)
	find(cols.Opened, &index.opened)
	find(cols.Priority, &index.priority)
	find(cols.Assignee, &index.assignee)
	find(cols.Modified, &index.modified)
	return index, missing
}

// cell tolerates short rows: exports frequently drop trailing empty fields.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
