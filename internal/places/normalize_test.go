package places

import (
	"slices"
	"testing"

	"github.com/diagnosis/place-reservations/internal/domain"
	"github.com/diagnosis/place-reservations/internal/geodata"
)

func TestAddress(t *testing.T) {
	tests := []struct {
		name string
		tags map[string]string
		want string
	}{
		{"full wins", map[string]string{"addr:full": "1 Main St, Town", "addr:street": "Other", "addr:city": "X"}, "1 Main St, Town"},
		{"street and city", map[string]string{"addr:street": "Jalan Besar", "addr:city": "Hat Yai"}, "Jalan Besar, Hat Yai"},
		{"street only", map[string]string{"addr:street": "Jalan Besar"}, "Jalan Besar"},
		{"city only", map[string]string{"addr:city": "Hat Yai"}, "Hat Yai"},
		{"nothing", map[string]string{"name": "x"}, "Unknown"},
		{"nil tags", nil, "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Address(tt.tags); got != tt.want {
				t.Errorf("Address() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	elements := []geodata.Element{
		{Type: "node", ID: 1, Lat: 6.5, Lon: 100.1, Tags: map[string]string{"name": "Alpha", "amenity": "cafe", "addr:city": "Satun"}},
		{Type: "node", ID: 2, Lat: 6.6, Lon: 100.2, Tags: map[string]string{"amenity": "bar"}},
		{Type: "node", ID: 3, Lat: 6.7, Lon: 100.3},
		{ID: 4, Lat: 6.8, Lon: 100.4, Tags: map[string]string{"name": "Delta"}},
	}

	got := slices.Collect(Normalize(elements))
	if len(got) != 2 {
		t.Fatalf("got %d places, want 2: %#v", len(got), got)
	}

	want0 := domain.Place{
		ID: PlaceID(1, "Alpha", 6.5, 100.1), Lat: 6.5, Lon: 100.1,
		Type: "node", Name: "Alpha", Amenity: "cafe", Address: "Satun",
	}
	if got[0] != want0 {
		t.Errorf("got[0] = %#v, want %#v", got[0], want0)
	}
	if got[1].Name != "Delta" || got[1].Type != "Unknown" || got[1].Amenity != "Unknown" || got[1].Address != "Unknown" {
		t.Errorf("got[1] = %#v", got[1])
	}
}

func TestNormalizeStopsEarly(t *testing.T) {
	elements := []geodata.Element{
		{ID: 1, Tags: map[string]string{"name": "a"}},
		{ID: 2, Tags: map[string]string{"name": "b"}},
		{ID: 3, Tags: map[string]string{"name": "c"}},
	}
	n := 0
	for range Normalize(elements) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("iterated %d times", n)
	}
}

func TestPlaceIDDeterministic(t *testing.T) {
	a := PlaceID(10, "Cafe", 1.5, 2.5)
	if b := PlaceID(10, "Cafe", 1.5, 2.5); a != b {
		t.Fatalf("ids differ: %d vs %d", a, b)
	}
	if c := PlaceID(11, "Cafe", 1.5, 2.5); a == c {
		t.Fatal("different source ids hashed equal")
	}
}
