package attendance

import "time"

type EventType string

const (
	TypeEntrada         EventType = "entrada"
	TypeSalidaDesayuno  EventType = "salida_desayuno"
	TypeEntradaDesayuno EventType = "entrada_desayuno"
	TypeSalidaComida    EventType = "salida_comida"
	TypeEntradaComida   EventType = "entrada_comida"
	TypeSalidaGeneral   EventType = "salida_general"
	TypeAutoCheckout    EventType = "auto_checkout"
)

type Source string

const (
	SourceScanner Source = "scanner"
	SourceManual  Source = "manual"
)

const (
	Cooldown   = 30 * time.Second
	CutoffHour = 22

	DateLayout = "2006-01-02"

	AutoCheckoutNotes = "Registro automático generado por el sistema"
	NoWorkedTime      = "0h 0m"
)

type step struct {
	Type  EventType
	Label string
}

// sequence is the fixed daily order of scanner events.
var sequence = []step{
	{TypeEntrada, "Entrada"},
	{TypeSalidaDesayuno, "Salida desayuno"},
	{TypeEntradaDesayuno, "Entrada desayuno"},
	{TypeSalidaComida, "Salida comida"},
	{TypeEntradaComida, "Entrada comida"},
	{TypeSalidaGeneral, "Salida general"},
}

var labels = map[EventType]string{
	TypeEntrada:         "Entrada",
	TypeSalidaDesayuno:  "Salida desayuno",
	TypeEntradaDesayuno: "Entrada desayuno",
	TypeSalidaComida:    "Salida comida",
	TypeEntradaComida:   "Entrada comida",
	TypeSalidaGeneral:   "Salida general",
	TypeAutoCheckout:    "Salida automática",
}

// EventsPerDay is the number of scanner events that completes a day.
var EventsPerDay = len(sequence)
