package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"etkinlik-api/config"
	"etkinlik-api/database"
	"etkinlik-api/models"
	"etkinlik-api/repositories"

	"gorm.io/gorm/logger"
)

func newLocationFixture(t *testing.T) (*LocationService, *repositories.VenueRepository, *repositories.EventRepository) {
	t.Helper()
	db, err := database.Initialize(config.DatabaseConfig{Driver: "sqlite", URL: ":memory:"}, logger.Silent)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := database.Migrate(db, quietLogger()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.SeedData(db, quietLogger()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	venues := repositories.NewVenueRepository(db)
	events := repositories.NewEventRepository(db)
	return NewLocationService(venues, events), venues, events
}

func ptr(v float64) *float64 { return &v }

func TestNearbyVenuesClosestFirst(t *testing.T) {
	svc, venues, _ := newLocationFixture(t)
	ctx := context.Background()

	fixtures := []struct {
		name     string
		lat, lng float64
		active   bool
	}{
		{"Uzak Kafe", 39.9500, 32.8500, true},
		{"Yakın Kafe", 39.9250, 32.8600, true},
		{"Şehir Dışı", 40.0000, 32.8500, true},
		{"Kapalı Kafe", 39.9210, 32.8545, false},
	}
	for _, f := range fixtures {
		v := models.Venue{IsActive: f.active}
		v.Name = f.name
		v.Latitude, v.Longitude = ptr(f.lat), ptr(f.lng)
		if err := venues.Create(ctx, &v, []uint{1}); err != nil {
			t.Fatalf("create %s: %v", f.name, err)
		}
	}
	noCoords := models.Venue{IsActive: true}
	noCoords.Name = "Adressiz"
	if err := venues.Create(ctx, &noCoords, []uint{1}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.NearbyVenues(ctx, NearbyQuery{Latitude: 39.9208, Longitude: 32.8541})
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Yakın Kafe" || got[1].Name != "Uzak Kafe" {
		t.Fatalf("nearby = %+v", got)
	}
	if got[0].DistanceKm > got[1].DistanceKm || got[1].DistanceKm > DefaultRadiusKm {
		t.Errorf("distances = %v, %v", got[0].DistanceKm, got[1].DistanceKm)
	}
	if len(got[0].Categories) != 1 {
		t.Errorf("categories not attached: %+v", got[0].Categories)
	}

	got, err = svc.NearbyVenues(ctx, NearbyQuery{Latitude: 39.9208, Longitude: 32.8541, RadiusKm: 20, Limit: 1})
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Yakın Kafe" {
		t.Errorf("limited = %+v", got)
	}
}

func TestNearbyEventsSkipsFinished(t *testing.T) {
	svc, _, events := newLocationFixture(t)
	ctx := context.Background()

	for _, f := range []struct{ title, start, end string }{
		{"Eski Konser", "2020-05-01", "2020-05-02"},
		{"Festival", "2025-05-28", "2025-06-05"},
		{"Tiyatro", "2025-07-10", ""},
	} {
		e := models.Event{IsActive: true}
		e.Title, e.StartDate, e.EndDate = f.title, f.start, f.end
		e.Latitude, e.Longitude = ptr(39.9250), ptr(32.8600)
		if err := events.Create(ctx, &e, []uint{5}); err != nil {
			t.Fatalf("create %s: %v", f.title, err)
		}
	}

	q := NearbyQuery{Latitude: 39.9208, Longitude: 32.8541, From: "2025-06-01"}
	got, err := svc.NearbyEvents(ctx, q)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Festival" || got[1].Title != "Tiyatro" {
		t.Errorf("upcoming = %+v", got)
	}

	q.From = ""
	got, _ = svc.NearbyEvents(ctx, q)
	if len(got) != 3 {
		t.Errorf("all events = %d, want 3", len(got))
	}
}

func TestNearbyRejectsBadCoordinates(t *testing.T) {
	svc := NewLocationService(nil, nil)
	for _, q := range []NearbyQuery{
		{Latitude: 91, Longitude: 0},
		{Latitude: 0, Longitude: -181},
	} {
		if _, err := svc.NearbyVenues(context.Background(), q); !errors.Is(err, ErrInvalidCoordinates) {
			t.Errorf("%+v: err = %v", q, err)
		}
	}
}

func TestDistanceKm(t *testing.T) {
	// Ankara Kızılay to İstanbul Taksim is roughly 350 km.
	d := distanceKm(39.9208, 32.8541, 41.0370, 28.9850)
	if math.Abs(d-350) > 10 {
		t.Errorf("distance = %.1f", d)
	}
	if distanceKm(10, 10, 10, 10) != 0 {
		t.Error("same point has non-zero distance")
	}
}

func TestNormalizeClampsRadiusAndLimit(t *testing.T) {
	q := NearbyQuery{RadiusKm: 500, Limit: 5000}
	if err := q.normalize(); err != nil {
		t.Fatal(err)
	}
	if q.RadiusKm != MaxRadiusKm || q.Limit != maxNearby {
		t.Errorf("normalized = %+v", q)
	}
}
