package settings

const (
	KeyAutoScan             = "autoScan"
	KeyCameraFallback       = "cameraFallback"
	KeyLockoutTime          = "lockoutTime"
	KeySoundAlerts          = "soundAlerts"
	KeyShowPhoto            = "showPhoto"
	KeyNotificationDuration = "notificationDuration"
	KeyToleranceMinutes     = "toleranceMinutes"
)

type definition struct {
	Kind    Kind
	Default Value
	// Rule is a validator tag applied to the decoded scalar.
	Rule  string
	apply func(*Settings, Value)
}

var registry = map[string]definition{
	KeyAutoScan: {
		Kind: KindBool, Default: BoolValue(true),
		apply: func(s *Settings, v Value) { s.AutoScan = v.Bool },
	},
	KeyCameraFallback: {
		Kind: KindBool, Default: BoolValue(false),
		apply: func(s *Settings, v Value) { s.CameraFallback = v.Bool },
	},
	KeyLockoutTime: {
		Kind: KindInt, Default: IntValue(60), Rule: "min=0,max=3600",
		apply: func(s *Settings, v Value) { s.LockoutTime = v.Int },
	},
	KeySoundAlerts: {
		Kind: KindBool, Default: BoolValue(true),
		apply: func(s *Settings, v Value) { s.SoundAlerts = v.Bool },
	},
	KeyShowPhoto: {
		Kind: KindBool, Default: BoolValue(true),
		apply: func(s *Settings, v Value) { s.ShowPhoto = v.Bool },
	},
	KeyNotificationDuration: {
		Kind: KindInt, Default: IntValue(3), Rule: "min=1,max=60",
		apply: func(s *Settings, v Value) { s.NotificationDuration = v.Int },
	},
	KeyToleranceMinutes: {
		Kind: KindInt, Default: IntValue(15), Rule: "min=0,max=240",
		apply: func(s *Settings, v Value) { s.ToleranceMinutes = v.Int },
	},
}
