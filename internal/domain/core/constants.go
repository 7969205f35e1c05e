package core

const (
	DefaultToleranceMinutes = 15
	MaxToleranceMinutes     = 240

	DefaultScheduleName = "Horario general"

	ClockLayout = "15:04"
)
