package reports

import (
	"sort"
	"time"

	"timeclock/internal/domain/attendance"
	"timeclock/internal/domain/core"
)

// BuildDailySummaries groups events by employee and date. Employees missing
// from the directory keep their id with an empty name.
func BuildDailySummaries(events []attendance.Event, employees map[string]core.Employee) []DailySummary {
	type groupKey struct{ employeeID, date string }
	groups := map[groupKey][]attendance.Event{}
	for _, ev := range events {
		key := groupKey{ev.EmployeeID, ev.Date}
		groups[key] = append(groups[key], ev)
	}

	out := make([]DailySummary, 0, len(groups))
	for key, evs := range groups {
		sort.SliceStable(evs, func(i, j int) bool {
			if evs[i].Timestamp.Equal(evs[j].Timestamp) {
				return evs[i].Ordinal < evs[j].Ordinal
			}
			return evs[i].Timestamp.Before(evs[j].Timestamp)
		})

		row := DailySummary{EmployeeID: key.employeeID, Date: key.date, Events: len(evs), Worked: attendance.NoWorkedTime}
		if emp, ok := employees[key.employeeID]; ok {
			row.EmployeeName = emp.Name
			row.Area = emp.Area
		}
		for _, ev := range evs {
			ts := ev.Timestamp
			if ev.Type == attendance.TypeEntrada && row.FirstIn == nil {
				row.FirstIn = &ts
			}
			if attendance.ClosesDay(ev.Type) && row.CheckOut == nil {
				row.CheckOut = &ts
				row.Automatic = ev.Type == attendance.TypeAutoCheckout
			}
		}
		if row.FirstIn != nil && row.CheckOut != nil {
			worked := row.CheckOut.Sub(*row.FirstIn)
			row.Worked = attendance.FormatWorked(worked)
			if worked > 0 {
				row.WorkedMinutes = int(worked / time.Minute)
			}
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].EmployeeName != out[j].EmployeeName {
			return out[i].EmployeeName < out[j].EmployeeName
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out
}

// clock formats an optional instant as HH:MM in loc.
func clock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("15:04")
}

var columns = []string{"Fecha", "ID", "Empleado", "Área", "Entrada", "Salida", "Tiempo trabajado", "Registros", "Salida automática"}

func rowValues(row DailySummary, loc *time.Location) []any {
	automatic := "No"
	if row.Automatic {
		automatic = "Sí"
	}
	return []any{
		row.Date, row.EmployeeID, row.EmployeeName, row.Area,
		clock(row.FirstIn, loc), clock(row.CheckOut, loc),
		row.Worked, row.Events, automatic,
	}
}
