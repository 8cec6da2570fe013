package domain

const Unknown = "Unknown"

// Place is a normalized point of interest. It is never persisted.
//
// ID is a content hash of the upstream element and is only meant to tell
// entries apart within a response.
type Place struct {
	ID      int64   `json:"id"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Type    string  `json:"type"`
	Name    string  `json:"name"`
	Amenity string  `json:"amenity"`
	Address string  `json:"address"`
}

// PlaceQuery is the body of a places search. Pointers tell a missing
// coordinate apart from zero.
type PlaceQuery struct {
	Lat    *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon    *float64 `json:"lon" validate:"required,gte=-180,lte=180"`
	Radius *float64 `json:"radius,omitempty"`
}

const (
	DefaultRadius = 1000.0
	MaxRadius     = 20000.0
)

// EffectiveRadius applies the default and the upper bound.
func (q PlaceQuery) EffectiveRadius() float64 {
	if q.Radius == nil || *q.Radius <= 0 {
		return DefaultRadius
	}
	if *q.Radius > MaxRadius {
		return MaxRadius
	}
	return *q.Radius
}
