package settings

import (
	"encoding/json"
	"fmt"
	"time"
)

type Kind int

const (
	KindBool Kind = iota + 1
	KindInt
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	}
	return "unknown"
}

// Value holds exactly one of Bool, Int or Str, selected by Kind.
type Value struct {
	Kind Kind
	Bool bool
	Int  int
	Str  string
}

func BoolValue(v bool) Value     { return Value{Kind: KindBool, Bool: v} }
func IntValue(v int) Value       { return Value{Kind: KindInt, Int: v} }
func StringValue(v string) Value { return Value{Kind: KindString, Str: v} }

func (v Value) Any() any {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int
	case KindString:
		return v.Str
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == 0 {
		return nil, fmt.Errorf("settings: marshal of empty value")
	}
	return json.Marshal(v.Any())
}

// Entry is one stored setting.
type Entry struct {
	Key       string    `json:"key"`
	Value     Value     `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Settings is the full set of kiosk and UI options with defaults applied.
type Settings struct {
	AutoScan             bool `json:"autoScan"`
	CameraFallback       bool `json:"cameraFallback"`
	LockoutTime          int  `json:"lockoutTime" validate:"min=0,max=3600"`
	SoundAlerts          bool `json:"soundAlerts"`
	ShowPhoto            bool `json:"showPhoto"`
	NotificationDuration int  `json:"notificationDuration" validate:"min=1,max=60"`
	ToleranceMinutes     int  `json:"toleranceMinutes" validate:"min=0,max=240"`
}
