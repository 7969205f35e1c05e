package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Keys lists the known setting names in lexical order.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for key := range registry {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func Known(key string) bool {
	_, ok := registry[key]
	return ok
}

// Defaults returns Settings with every option at its default.
func Defaults() Settings {
	var s Settings
	for _, def := range registry {
		def.apply(&s, def.Default)
	}
	return s
}

// Decode resolves raw JSON into the typed value for key and checks its range.
func Decode(key string, raw json.RawMessage) (Value, error) {
	def, ok := registry[key]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Value{}, fmt.Errorf("%w: %s requires a %s", ErrInvalidValue, key, def.Kind)
	}

	var v Value
	switch def.Kind {
	case KindBool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return Value{}, fmt.Errorf("%w: %s must be a boolean", ErrInvalidValue, key)
		}
		v = BoolValue(b)
	case KindInt:
		if raw[0] == '"' {
			return Value{}, fmt.Errorf("%w: %s must be an integer", ErrInvalidValue, key)
		}
		var n json.Number
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&n); err != nil {
			return Value{}, fmt.Errorf("%w: %s must be an integer", ErrInvalidValue, key)
		}
		i, err := n.Int64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %s must be an integer", ErrInvalidValue, key)
		}
		v = IntValue(int(i))
	case KindString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, fmt.Errorf("%w: %s must be a string", ErrInvalidValue, key)
		}
		v = StringValue(strings.TrimSpace(s))
	}

	if def.Rule != "" {
		if err := validate.Var(v.Any(), def.Rule); err != nil {
			return Value{}, fmt.Errorf("%w: %s %s", ErrInvalidValue, key, describe(err))
		}
	}
	return v, nil
}

// Apply overlays the stored entries onto the defaults.
func Apply(entries []Entry) (Settings, error) {
	s := Defaults()
	for _, entry := range entries {
		def, ok := registry[entry.Key]
		if !ok || entry.Value.Kind != def.Kind {
			continue
		}
		def.apply(&s, entry.Value)
	}
	if err := validate.Struct(s); err != nil {
		return Settings{}, fmt.Errorf("%w: %s", ErrInvalidValue, describe(err))
	}
	return s, nil
}

func describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		if fe.Field() != "" {
			parts = append(parts, fe.Field()+" fails "+rule)
		} else {
			parts = append(parts, "fails "+rule)
		}
	}
	return strings.Join(parts, ", ")
}
