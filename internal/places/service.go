package places

import (
	"context"
	"slices"
	"strconv"

	"github.com/diagnosis/place-reservations/internal/domain"
	"github.com/diagnosis/place-reservations/internal/geodata"
	"github.com/diagnosis/place-reservations/pkg/logger"
	"github.com/go-playground/validator/v10"
)

// Finder is the upstream geodata source.
type Finder interface {
	Around(ctx context.Context, lat, lon, radius float64) ([]geodata.Element, error)
}

// Cache stores normalized results. Errors are reported but never fail a query.
type Cache interface {
	Get(ctx context.Context, key string) ([]domain.Place, bool, error)
	Set(ctx context.Context, key string, places []domain.Place) error
}

type Service struct {
	finder   Finder
	cache    Cache
	validate *validator.Validate
}

// NewService builds a places service. cache may be nil.
func NewService(finder Finder, cache Cache) *Service {
	return &Service{finder: finder, cache: cache, validate: validator.New()}
}

func (s *Service) Query(ctx context.Context, q domain.PlaceQuery) ([]domain.Place, error) {
	if q.Lat == nil || q.Lon == nil {
		return nil, domain.NewValidation(domain.MsgMissingCoordinates)
	}
	if err := s.validate.Struct(q); err != nil {
		return nil, domain.NewValidation(domain.MsgInvalidCoordinates)
	}
	lat, lon, radius := *q.Lat, *q.Lon, q.EffectiveRadius()

	key := cacheKey(lat, lon, radius)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.WarnContext(ctx).Err(err).Str("key", key).Msg("places cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	elements, err := s.finder.Around(ctx, lat, lon, radius)
	if err != nil {
		logger.ErrorContext(ctx).Err(err).Float64("lat", lat).Float64("lon", lon).Float64("radius", radius).Msg("overpass query failed")
		return nil, domain.NewUpstream(domain.MsgUpstreamPlaces, err)
	}

	out := slices.Collect(Normalize(elements))
	if out == nil {
		out = []domain.Place{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out); err != nil {
			logger.WarnContext(ctx).Err(err).Str("key", key).Msg("places cache write failed")
		}
	}
	return out, nil
}

func cacheKey(lat, lon, radius float64) string {
	return "places:" + strconv.FormatFloat(lat, 'f', -1, 64) +
		":" + strconv.FormatFloat(lon, 'f', -1, 64) +
		":" + strconv.FormatFloat(radius, 'f', -1, 64)
}
