package attendance

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeIDRequired = errors.New("employeeId is required")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrDayComplete        = errors.New("all records for the day already completed")
	ErrStaleDay           = errors.New("attendance day changed concurrently")
	ErrInvalidType        = errors.New("unknown attendance type")
)

// CooldownError reports how many whole seconds remain before the employee
// may scan again.
type CooldownError struct {
	Remaining int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("please wait %d seconds before scanning again", e.Remaining)
}
