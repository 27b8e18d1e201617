// File: /services/location_service.go
package services

import (
	"context"
	"errors"
	"math"
	"sort"

	"etkinlik-api/models"
	"etkinlik-api/repositories"
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

const (
	DefaultRadiusKm = 5.0
	MaxRadiusKm     = 50.0
	maxNearby       = 100

	earthRadiusKm = 6371.0
	kmPerDegree   = 111.32
)

// NearbyQuery is a point and a search radius. Zero radius and limit take defaults.
type NearbyQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	Limit     int
	// From hides events that ended before this date (YYYY-MM-DD).
	From string
}

type NearbyVenue struct {
	models.Venue
	DistanceKm float64 `json:"distanceKm"`
}

type NearbyEvent struct {
	models.Event
	DistanceKm float64 `json:"distanceKm"`
}

// LocationService answers "what is around me" for the map view.
type LocationService struct {
	venues *repositories.VenueRepository
	events *repositories.EventRepository
}

func NewLocationService(venues *repositories.VenueRepository, events *repositories.EventRepository) *LocationService {
	return &LocationService{venues: venues, events: events}
}

func (q *NearbyQuery) normalize() error {
	if !isValidLatitude(q.Latitude) || !isValidLongitude(q.Longitude) {
		return ErrInvalidCoordinates
	}
	if q.RadiusKm <= 0 {
		q.RadiusKm = DefaultRadiusKm
	}
	if q.RadiusKm > MaxRadiusKm {
		q.RadiusKm = MaxRadiusKm
	}
	if q.Limit <= 0 || q.Limit > maxNearby {
		q.Limit = maxNearby
	}
	return nil
}

// NearbyVenues returns active venues within the radius, closest first.
func (s *LocationService) NearbyVenues(ctx context.Context, q NearbyQuery) ([]NearbyVenue, error) {
	if err := q.normalize(); err != nil {
		return nil, err
	}
	venues, err := s.venues.WithinBox(ctx, boxAround(q.Latitude, q.Longitude, q.RadiusKm))
	if err != nil {
		return nil, err
	}

	out := make([]NearbyVenue, 0, len(venues))
	for _, v := range venues {
		d := distanceKm(q.Latitude, q.Longitude, *v.Latitude, *v.Longitude)
		if d <= q.RadiusKm {
			out = append(out, NearbyVenue{Venue: v, DistanceKm: roundToDecimal(d, 1)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// NearbyEvents returns active events within the radius, closest first.
func (s *LocationService) NearbyEvents(ctx context.Context, q NearbyQuery) ([]NearbyEvent, error) {
	if err := q.normalize(); err != nil {
		return nil, err
	}
	events, err := s.events.WithinBox(ctx, boxAround(q.Latitude, q.Longitude, q.RadiusKm), q.From)
	if err != nil {
		return nil, err
	}

	out := make([]NearbyEvent, 0, len(events))
	for _, e := range events {
		d := distanceKm(q.Latitude, q.Longitude, *e.Latitude, *e.Longitude)
		if d <= q.RadiusKm {
			out = append(out, NearbyEvent{Event: e, DistanceKm: roundToDecimal(d, 1)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].StartDate < out[j].StartDate
	})
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// boxAround is the smallest lat/lng rectangle containing the circle.
func boxAround(lat, lng, radiusKm float64) repositories.GeoBox {
	dLat := radiusKm / kmPerDegree
	dLng := 180.0
	if c := math.Cos(lat * math.Pi / 180); c > 0.01 {
		dLng = math.Min(radiusKm/(kmPerDegree*c), 180)
	}
	return repositories.GeoBox{
		MinLat: math.Max(lat-dLat, -90),
		MaxLat: math.Min(lat+dLat, 90),
		MinLng: math.Max(lng-dLng, -180),
		MaxLng: math.Min(lng+dLng, 180),
	}
}

// distanceKm is the great-circle distance (haversine).
func distanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func roundToDecimal(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func isValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func isValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
