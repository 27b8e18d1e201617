package repositories

import (
	"context"
	"testing"
	"time"

	"etkinlik-api/models"
)

func createEvent(t *testing.T, repo *EventRepository, title string, active bool, categoryIDs ...uint) *models.Event {
	t.Helper()
	e := models.Event{
		EventContent: models.EventContent{Title: title, StartDate: "2025-07-01"},
		IsActive:     active,
	}
	if err := repo.Create(context.Background(), &e, categoryIDs); err != nil {
		t.Fatalf("create event %s: %v", title, err)
	}
	return &e
}

func TestFavoritesAddIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	events := NewEventRepository(db)
	favs := NewFavoriteRepository(db)
	ctx := context.Background()

	a := createEvent(t, events, "Sergi", true, 3)
	b := createEvent(t, events, "Maç", true, 4)
	hidden := createEvent(t, events, "Gizli", false, 1)

	for _, id := range []uint{b.ID, a.ID, a.ID, hidden.ID} {
		if err := favs.Add(ctx, 7, id); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}

	ids, err := favs.EventIDs(ctx, 7)
	if err != nil {
		t.Fatalf("event ids: %v", err)
	}
	if !sameIDs(ids, []uint{a.ID, b.ID, hidden.ID}) {
		t.Errorf("ids = %v", ids)
	}

	list, err := favs.Events(ctx, 7)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("active favorites = %d, want 2", len(list))
	}
	for _, e := range list {
		if len(e.Categories) != 1 {
			t.Errorf("%s categories = %v", e.Title, e.Categories)
		}
	}

	if err := favs.Remove(ctx, 7, a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := favs.Remove(ctx, 7, a.ID); err != nil {
		t.Fatalf("remove twice: %v", err)
	}
	ids, _ = favs.EventIDs(ctx, 7)
	if !sameIDs(ids, []uint{b.ID, hidden.ID}) {
		t.Errorf("ids after remove = %v", ids)
	}

	other, _ := favs.EventIDs(ctx, 8)
	if len(other) != 0 {
		t.Errorf("other user sees %v", other)
	}
}

func TestAnnouncementWindowAndExpiry(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnnouncementRepository(db)
	ctx := context.Background()

	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	items := []models.Announcement{
		{Title: "açık uçlu", IsActive: true},
		{Title: "süren", IsActive: true, StartDate: &yesterday, EndDate: &tomorrow},
		{Title: "bitmiş", IsActive: true, StartDate: &past, EndDate: &yesterday},
		{Title: "gelecek", IsActive: true, StartDate: &tomorrow},
		{Title: "kapalı", IsActive: false},
	}
	for i := range items {
		if err := repo.Create(ctx, &items[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	active, err := repo.Active(ctx, now)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	titles := map[string]bool{}
	for _, a := range active {
		titles[a.Title] = true
	}
	if len(active) != 2 || !titles["açık uçlu"] || !titles["süren"] {
		t.Errorf("active = %v", titles)
	}

	n, err := repo.DeactivateExpired(ctx, now)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if n != 1 {
		t.Errorf("deactivated = %d, want 1", n)
	}
	expired, err := repo.Get(ctx, items[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if expired.IsActive {
		t.Errorf("expired announcement still active")
	}
}
