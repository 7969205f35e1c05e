package attendance

import (
	"reflect"
	"testing"
	"time"
)

func TestNextStepFollowsDailySequence(t *testing.T) {
	want := []EventType{TypeEntrada, TypeSalidaDesayuno, TypeEntradaDesayuno, TypeSalidaComida, TypeEntradaComida, TypeSalidaGeneral}
	for n, expected := range want {
		got, label, ok := NextStep(n)
		if !ok || got != expected {
			t.Fatalf("step %d: expected %s, got %s (ok=%v)", n, expected, got, ok)
		}
		if label == "" {
			t.Fatalf("step %d: missing label", n)
		}
	}
	if _, _, ok := NextStep(6); ok {
		t.Fatal("expected the seventh step to be rejected")
	}
}

func TestCooldownRemaining(t *testing.T) {
	last := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	cases := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 30},
		{500 * time.Millisecond, 30},
		{10 * time.Second, 20},
		{29 * time.Second, 1},
		{29*time.Second + 900*time.Millisecond, 1},
		{30 * time.Second, 0},
		{time.Hour, 0},
		{-5 * time.Second, 30},
	}
	for _, tc := range cases {
		if got := CooldownRemaining(last, last.Add(tc.elapsed)); got != tc.want {
			t.Fatalf("elapsed %s: expected %d, got %d", tc.elapsed, tc.want, got)
		}
	}
}

func TestFormatWorkedTruncates(t *testing.T) {
	start := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 4, 17, 32, 15, 0, time.UTC)
	if got := FormatWorked(end.Sub(start)); got != "9h 32m" {
		t.Fatalf("expected 9h 32m, got %s", got)
	}
	if got := FormatWorked(59 * time.Second); got != NoWorkedTime {
		t.Fatalf("expected %s, got %s", NoWorkedTime, got)
	}
	if got := FormatWorked(-time.Minute); got != NoWorkedTime {
		t.Fatalf("expected %s for negative duration, got %s", NoWorkedTime, got)
	}
}

func TestDateKeyUsesLocation(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	instant := time.Date(2024, 3, 5, 3, 0, 0, 0, time.UTC)
	if got := DateKey(instant, loc); got != "2024-03-04" {
		t.Fatalf("expected local date 2024-03-04, got %s", got)
	}
	if got := DateKey(instant, time.UTC); got != "2024-03-05" {
		t.Fatalf("expected UTC date 2024-03-05, got %s", got)
	}
}

func TestPastCutoff(t *testing.T) {
	loc := time.UTC
	if PastCutoff(time.Date(2024, 3, 4, 21, 59, 59, 0, loc), loc) {
		t.Fatal("21:59:59 must be before the cutoff")
	}
	if !PastCutoff(time.Date(2024, 3, 4, 22, 0, 0, 0, loc), loc) {
		t.Fatal("22:00 must be at the cutoff")
	}
}

func TestPendingCheckouts(t *testing.T) {
	events := []Event{
		{EmployeeID: "A", Type: TypeEntrada},
		{EmployeeID: "B", Type: TypeEntrada},
		{EmployeeID: "B", Type: TypeSalidaGeneral},
		{EmployeeID: "C", Type: TypeEntrada},
		{EmployeeID: "C", Type: TypeAutoCheckout},
		{EmployeeID: "A", Type: TypeSalidaDesayuno},
		{EmployeeID: "D", Type: TypeEntrada},
	}
	got := PendingCheckouts(events)
	if !reflect.DeepEqual(got, []string{"A", "D"}) {
		t.Fatalf("expected [A D], got %v", got)
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(map[EventType]int{TypeEntrada: 2, TypeSalidaGeneral: 1})
	if stats != (Stats{CheckIns: 2, CheckOuts: 1, ActiveEmployees: 1}) {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	stats = ComputeStats(map[EventType]int{TypeEntrada: 1, TypeSalidaGeneral: 1, TypeAutoCheckout: 1})
	if stats.ActiveEmployees != 0 {
		t.Fatalf("active employees must not go negative, got %d", stats.ActiveEmployees)
	}
}
