// Package places turns Overpass results into Place records.
package places

import (
	"iter"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/diagnosis/place-reservations/internal/domain"
	"github.com/diagnosis/place-reservations/internal/geodata"
)

// Normalize yields one Place per named element, in input order.
func Normalize(elements []geodata.Element) iter.Seq[domain.Place] {
	return func(yield func(domain.Place) bool) {
		for _, e := range elements {
			name := e.Tags["name"]
			if name == "" {
				continue
			}
			p := domain.Place{
				ID:      PlaceID(e.ID, name, e.Lat, e.Lon),
				Lat:     e.Lat,
				Lon:     e.Lon,
				Type:    orUnknown(e.Type),
				Name:    name,
				Amenity: orUnknown(e.Tags["amenity"]),
				Address: Address(e.Tags),
			}
			if !yield(p) {
				return
			}
		}
	}
}

// PlaceID hashes the identifying fields of an element. Equal inputs give equal ids.
func PlaceID(sourceID int64, name string, lat, lon float64) int64 {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(sourceID, 10))
	b.WriteByte('|')
	b.WriteString(name)
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(lat, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(lon, 'g', -1, 64))
	return int64(xxhash.Sum64String(b.String()))
}

// Address picks addr:full, then "street, city", then whichever of the two exists.
func Address(tags map[string]string) string {
	if full := tags["addr:full"]; full != "" {
		return full
	}
	street, city := tags["addr:street"], tags["addr:city"]
	switch {
	case street != "" && city != "":
		return street + ", " + city
	case street != "":
		return street
	case city != "":
		return city
	}
	return domain.Unknown
}

func orUnknown(s string) string {
	if s == "" {
		return domain.Unknown
	}
	return s
}
