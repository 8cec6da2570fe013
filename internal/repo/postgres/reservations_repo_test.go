package postgres

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestDecodeExtra(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]any
	}{
		{"empty column", "", nil},
		{"large integer", `{"ticket":9007199254740993}`, map[string]any{"ticket": json.Number("9007199254740993")}},
		{"mixed", `{"note":"window","guests":4,"ratio":0.5}`, map[string]any{
			"note": "window", "guests": json.Number("4"), "ratio": json.Number("0.5"),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeExtra([]byte(tt.raw))
			if err != nil {
				t.Fatalf("decodeExtra: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %#v, want %#v", k, got[k], v)
				}
			}
		})
	}
}

func TestDecodeExtraRejectsGarbage(t *testing.T) {
	if _, err := decodeExtra([]byte("{not json")); err == nil {
		t.Fatal("expected error")
	}
}
