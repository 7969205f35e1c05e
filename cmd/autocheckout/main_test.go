package main

import (
	"testing"
	"time"
)

func TestParseAt(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	fallback := time.Date(2024, 3, 4, 9, 0, 0, 0, loc)

	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{name: "empty uses fallback", raw: "", want: fallback},
		{name: "local wall clock", raw: "2024-03-04T22:05", want: time.Date(2024, 3, 4, 22, 5, 0, 0, loc)},
		{name: "with seconds", raw: "2024-03-04T22:05:30", want: time.Date(2024, 3, 4, 22, 5, 30, 0, loc)},
		{name: "rfc3339 keeps offset", raw: "2024-03-05T04:00:00Z", want: time.Date(2024, 3, 4, 22, 0, 0, 0, loc)},
		{name: "garbage", raw: "tonight", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseAt(tc.raw, loc, fallback)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
