package core

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrDuplicate        = errors.New("employee id or barcode already exists")
	ErrInvalidClock     = errors.New("time must use HH:MM format")
	ErrInvalidWindow    = errors.New("invalid time window")
	ErrValidation       = errors.New("validation failed")
)
