package ingest

import (
	"strings"
	"testing"
)

func testColumns() Columns {
	return Columns{
		ID:       "Número",
		Status:   "Estado",
		Opened:   "Fecha de apertura",
		Priority: "Prioridad",
		Assignee: "Asignado a",
		Modified: "Última modificación",
	}
}

const sampleCSV = `Número,Estado,Fecha de apertura,Prioridad,Asignado a,Última modificación
INC-1,Resuelto,15/01/2024 08:00,Alta,garcia,15/01/2024 12:00
INC-2,En progreso,15/01/2024 09:00,Media,lopez,
`

func TestReadDataset(t *testing.T) {
	ds, err := ReadDataset(strings.NewReader(sampleCSV), testColumns(), ',')
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if len(ds.Rows) != 2 || len(ds.Tickets) != 2 {
		t.Fatalf("got %d rows / %d tickets, want 2/2", len(ds.Rows), len(ds.Tickets))
	}

	first := ds.Tickets[0]
	if first.ID != "INC-1" || first.Status != "Resuelto" || first.Priority != "Alta" ||
		first.OpenedRaw != "15/01/2024 08:00" || first.ModifiedRaw != "15/01/2024 12:00" ||
		first.Assignee != "garcia" {
		t.Errorf("unexpected first ticket: %+v", first)
	}
	if ds.Tickets[1].ModifiedRaw != "" {
		t.Errorf("expected empty modified cell, got %q", ds.Tickets[1].ModifiedRaw)
	}
	if len(ds.Header) != 6 {
		t.Errorf("header not preserved: %v", ds.Header)
	}
}

func TestReadDatasetHeaderMatchingIsAccentInsensitive(t *testing.T) {
	// Header written without accents and with different casing.
	csv := "NUMERO,estado,fecha de apertura,PRIORIDAD,asignado a,ultima modificacion\n" +
		"INC-1,Nuevo,15/01/2024 08:00,Alta,garcia,\n"

	ds, err := ReadDataset(strings.NewReader(csv), testColumns(), ',')
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if ds.Tickets[0].ID != "INC-1" {
		t.Errorf("unexpected ticket: %+v", ds.Tickets[0])
	}
}

func TestReadDatasetMissingColumnsFailFast(t *testing.T) {
	// No priority and no assignee column.
	csv := "Número,Estado,Fecha de apertura,Última modificación\nINC-1,Nuevo,15/01/2024,\n"

	_, err := ReadDataset(strings.NewReader(csv), testColumns(), ',')
	if err == nil {
		t.Fatal("expected validation error for missing columns")
	}
	msg := err.Error()
	if !strings.Contains(msg, "missing") {
		t.Errorf("error does not mention missing columns: %v", err)
	}
}

func TestReadDatasetEmptyInput(t *testing.T) {
	if _, err := ReadDataset(strings.NewReader(""), testColumns(), ','); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestReadDatasetSemicolonDelimiter(t *testing.T) {
	csv := "Número;Estado;Fecha de apertura;Prioridad;Asignado a;Última modificación\n" +
		"INC-1;Nuevo;15/01/2024 08:00;Alta;garcia;\n"

	ds, err := ReadDataset(strings.NewReader(csv), testColumns(), ';')
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if ds.Tickets[0].Priority != "Alta" {
		t.Errorf("unexpected ticket: %+v", ds.Tickets[0])
	}
}

func TestReadDatasetToleratesShortRows(t *testing.T) {
	csv := "Número,Estado,Fecha de apertura,Prioridad,Asignado a,Última modificación\n" +
		"INC-1,Nuevo,15/01/2024 08:00\n"

	ds, err := ReadDataset(strings.NewReader(csv), testColumns(), ',')
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if ds.Tickets[0].Assignee != "" || ds.Tickets[0].Priority != "" {
		t.Errorf("short row cells should be empty: %+v", ds.Tickets[0])
	}
}
