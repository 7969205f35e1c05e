package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"timeclock/internal/domain/attendance"
	"timeclock/internal/domain/core"
)

func ts(day, hour, min, sec int) time.Time {
	return time.Date(2024, 3, day, hour, min, sec, 0, time.UTC)
}

func sampleEvents() []attendance.Event {
	return []attendance.Event{
		{EmployeeID: "EMP002", Date: "2024-03-04", Type: attendance.TypeEntrada, Timestamp: ts(4, 9, 0, 0), Ordinal: 0},
		{EmployeeID: "EMP001", Date: "2024-03-04", Type: attendance.TypeSalidaGeneral, Timestamp: ts(4, 17, 32, 15), Ordinal: 5},
		{EmployeeID: "EMP001", Date: "2024-03-04", Type: attendance.TypeEntrada, Timestamp: ts(4, 8, 0, 0), Ordinal: 0},
		{EmployeeID: "EMP001", Date: "2024-03-04", Type: attendance.TypeSalidaDesayuno, Timestamp: ts(4, 10, 0, 0), Ordinal: 1},
		{EmployeeID: "EMP002", Date: "2024-03-04", Type: attendance.TypeAutoCheckout, Timestamp: ts(4, 22, 0, 0), Ordinal: 1, IsAutomatic: true},
		{EmployeeID: "EMP009", Date: "2024-03-03", Type: attendance.TypeEntrada, Timestamp: ts(3, 8, 0, 0), Ordinal: 0},
	}
}

var sampleDirectory = map[string]core.Employee{
	"EMP001": {ID: "EMP001", Name: "Ana López", Area: "Corte"},
	"EMP002": {ID: "EMP002", Name: "Beto Ruiz", Area: "Bordado"},
}

func TestBuildDailySummaries(t *testing.T) {
	rows := BuildDailySummaries(sampleEvents(), sampleDirectory)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	orphan := rows[0]
	if orphan.EmployeeID != "EMP009" || orphan.EmployeeName != "" || orphan.CheckOut != nil || orphan.Worked != attendance.NoWorkedTime {
		t.Fatalf("unexpected row for deleted employee: %+v", orphan)
	}

	ana := rows[1]
	if ana.EmployeeName != "Ana López" || ana.Events != 3 || ana.Worked != "9h 32m" || ana.WorkedMinutes != 572 || ana.Automatic {
		t.Fatalf("unexpected row for EMP001: %+v", ana)
	}

	beto := rows[2]
	if !beto.Automatic || beto.Worked != "13h 0m" {
		t.Fatalf("unexpected row for EMP002: %+v", beto)
	}
}

func TestWriteXLSX(t *testing.T) {
	rows := BuildDailySummaries(sampleEvents(), sampleDirectory)
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rows, time.UTC); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	checks := map[string]string{
		"A1": "Fecha",
		"D1": "Área",
		"C3": "Ana López",
		"E3": "08:00",
		"F3": "17:32",
		"G3": "9h 32m",
		"I4": "Sí",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			t.Fatalf("read %s: %v", cell, err)
		}
		if got != want {
			t.Fatalf("%s: expected %q, got %q", cell, want, got)
		}
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, BuildDailySummaries(sampleEvents(), sampleDirectory), "Reporte de asistencia", time.UTC); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected a PDF document, got %q", buf.Bytes()[:8])
	}
}

func TestWritePDFWithoutRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, nil, "Reporte de asistencia", time.UTC); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected a non-empty document")
	}
}
