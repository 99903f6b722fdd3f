package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spec-kit/sla-compliance-service/internal/domain"
	"github.com/spec-kit/sla-compliance-service/internal/ingest"
)

func TestWriteAugmented(t *testing.T) {
	ds := &ingest.Dataset{
		Header: []string{"Número", "Estado", "Asignado a"},
		Rows: [][]string{
			{"INC-1", "Resuelto", "garcia"},
			{"INC-2", "En progreso", "lopez"},
		},
	}
	evals := []domain.SlaEvaluation{
		{TicketID: "INC-1", ElapsedHours: 3.5, DeadlineHours: 8, Status: domain.SlaStatusCompliant},
		{TicketID: "INC-2", ElapsedHours: 20, DeadlineHours: 16, Status: domain.SlaStatusOpenBreached},
	}

	var buf bytes.Buffer
	if err := WriteAugmented(&buf, ds, evals, ','); err != nil {
		t.Fatalf("WriteAugmented: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Número,Estado,Asignado a,business_hours_elapsed,deadline_hours,sla_status" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != "INC-1,Resuelto,garcia,3.50,8.00,COMPLIANT" {
		t.Errorf("unexpected row: %s", lines[1])
	}
	if lines[2] != "INC-2,En progreso,lopez,20.00,16.00,OPEN_BREACHED" {
		t.Errorf("unexpected row: %s", lines[2])
	}
}

func TestWriteAugmentedCountMismatch(t *testing.T) {
	ds := &ingest.Dataset{Header: []string{"Número"}, Rows: [][]string{{"INC-1"}}}

	var buf bytes.Buffer
	if err := WriteAugmented(&buf, ds, nil, ','); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestWriteAugmentedPreservesCellsWithDelimiters(t *testing.T) {
	ds := &ingest.Dataset{
		Header: []string{"Número", "Título"},
		Rows:   [][]string{{"INC-1", "impresora, piso 2"}},
	}
	evals := []domain.SlaEvaluation{{TicketID: "INC-1", DeadlineHours: 8, Status: domain.SlaStatusOpenWithinDeadline}}

	var buf bytes.Buffer
	if err := WriteAugmented(&buf, ds, evals, ','); err != nil {
		t.Fatalf("WriteAugmented: %v", err)
	}
	if !strings.Contains(buf.String(), `"impresora, piso 2"`) {
		t.Errorf("cell with delimiter not quoted:\n%s", buf.String())
	}
}
