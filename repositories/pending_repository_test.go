package repositories

import (
	"context"
	"errors"
	"testing"

	"etkinlik-api/models"

	"gorm.io/gorm"
)

func summaryIDs(c []models.CategorySummary) []uint {
	ids := make([]uint, len(c))
	for i := range c {
		ids[i] = c[i].ID
	}
	return ids
}

func sameIDs(got, want []uint) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func concertContent(title string) models.EventContent {
	capacity := 300
	return models.EventContent{
		Title:         title,
		Description:   "Açık hava konseri",
		StartDate:     "2025-06-01",
		StartTime:     "20:30",
		Location:      "Kale Parkı",
		Capacity:      &capacity,
		Price:         "Ücretsiz",
		Tags:          models.TagList{"müzik", "açık hava"},
		MediaFiles:    models.MediaList{{URL: "/uploads/a.jpg", Rotation: 90}},
		SubmitterName: "Ayşe",
	}
}

func TestApproveEventPromotesDraft(t *testing.T) {
	db := newTestDB(t)
	repo := NewPendingRepository(db)
	ctx := context.Background()

	pending, err := repo.CreatePendingEvent(ctx, concertContent("Konser A"), []uint{5})
	if err != nil {
		t.Fatalf("create pending: %v", err)
	}

	event, err := repo.ApproveEvent(ctx, pending.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if event.Title != "Konser A" || event.StartDate != "2025-06-01" || event.StartTime != "20:30" {
		t.Errorf("content not copied: %+v", event.EventContent)
	}
	if event.Capacity == nil || *event.Capacity != 300 {
		t.Errorf("capacity = %v, want 300", event.Capacity)
	}
	if len(event.MediaFiles) != 1 || event.MediaFiles[0].Rotation != 90 {
		t.Errorf("media files = %+v", event.MediaFiles)
	}
	if !event.IsActive || event.IsFeatured {
		t.Errorf("isActive=%v isFeatured=%v, want true/false", event.IsActive, event.IsFeatured)
	}
	if got := summaryIDs(event.Categories); !sameIDs(got, []uint{5}) {
		t.Errorf("categories = %v, want [5]", got)
	}

	if n := countRows(t, db, "pending_events", ""); n != 0 {
		t.Errorf("pending_events rows = %d, want 0", n)
	}
	if n := countRows(t, db, "pending_event_categories", ""); n != 0 {
		t.Errorf("pending_event_categories rows = %d, want 0", n)
	}
	if n := countRows(t, db, "event_categories", "event_id = ? AND category_id = ?", event.ID, 5); n != 1 {
		t.Errorf("event_categories rows = %d, want 1", n)
	}

	live, err := NewEventRepository(db).Get(ctx, event.ID, true)
	if err != nil {
		t.Fatalf("get live event: %v", err)
	}
	if live.Tags[0] != "müzik" {
		t.Errorf("tags = %v", live.Tags)
	}
}

func TestApproveEventUnknownID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPendingRepository(db)

	if _, err := repo.ApproveEvent(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if n := countRows(t, db, "events", ""); n != 0 {
		t.Errorf("events rows = %d, want 0", n)
	}
}

func TestApproveEventRollsBackWhenLinkWriteFails(t *testing.T) {
	db := newTestDB(t)
	repo := NewPendingRepository(db)
	ctx := context.Background()

	pending, err := repo.CreatePendingEvent(ctx, concertContent("Konser B"), []uint{1, 3})
	if err != nil {
		t.Fatalf("create pending: %v", err)
	}

	forced := errors.New("forced link failure")
	err = db.Callback().Create().Before("gorm:create").Register("test:fail_event_links", func(tx *gorm.DB) {
		if tx.Statement.Table == "event_categories" {
			tx.AddError(forced)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	if _, err := repo.ApproveEvent(ctx, pending.ID); !errors.Is(err, forced) {
		t.Fatalf("err = %v, want forced failure", err)
	}

	if n := countRows(t, db, "events", ""); n != 0 {
		t.Errorf("events rows = %d, want 0 after rollback", n)
	}
	if n := countRows(t, db, "pending_events", "id = ?", pending.ID); n != 1 {
		t.Errorf("pending row missing after rollback")
	}
	if n := countRows(t, db, "pending_event_categories", "pending_event_id = ?", pending.ID); n != 2 {
		t.Errorf("pending category rows = %d, want 2", n)
	}
}

func TestRejectEventIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPendingRepository(db)
	ctx := context.Background()

	pending, err := repo.CreatePendingEvent(ctx, concertContent("Konser C"), []uint{2})
	if err != nil {
		t.Fatalf("create pending: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := repo.RejectEvent(ctx, pending.ID); err != nil {
			t.Fatalf("reject #%d: %v", i+1, err)
		}
	}
	if n := countRows(t, db, "pending_events", ""); n != 0 {
		t.Errorf("pending_events rows = %d, want 0", n)
	}
	if n := countRows(t, db, "pending_event_categories", ""); n != 0 {
		t.Errorf("pending_event_categories rows = %d, want 0", n)
	}
	if n := countRows(t, db, "events", ""); n != 0 {
		t.Errorf("reject created %d events", n)
	}
}

func TestListPendingEventsNewestFirstWithOwnCategories(t *testing.T) {
	db := newTestDB(t)
	repo := NewPendingRepository(db)
	ctx := context.Background()

	want := map[string][]uint{
		"İlk":    {1},
		"İkinci": {2, 4},
		"Üçüncü": {3, 5, 6},
	}
	for _, title := range []string{"İlk", "İkinci", "Üçüncü"} {
		if _, err := repo.CreatePendingEvent(ctx, concertContent(title), want[title]); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	rows, err := repo.ListPendingEvents(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len = %d, want 3", len(rows))
	}
	if rows[0].Title != "Üçüncü" || rows[2].Title != "İlk" {
		t.Errorf("order = %s, %s, %s", rows[0].Title, rows[1].Title, rows[2].Title)
	}
	for _, row := range rows {
		if got := summaryIDs(row.Categories); !sameIDs(got, want[row.Title]) {
			t.Errorf("%s categories = %v, want %v", row.Title, got, want[row.Title])
		}
		if row.Status != models.SubmissionStatusPending {
			t.Errorf("%s status = %q", row.Title, row.Status)
		}
	}
}

func TestCreatePendingEventUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	repo := NewPendingRepository(db)

	_, err := repo.CreatePendingEvent(context.Background(), concertContent("Konser D"), []uint{1, 42})
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("err = %v, want ErrUnknownCategory", err)
	}
	if n := countRows(t, db, "pending_events", ""); n != 0 {
		t.Errorf("pending_events rows = %d, want 0", n)
	}
}

func TestUpdatePendingEventReplacesCategories(t *testing.T) {
	db := newTestDB(t)
	repo := NewPendingRepository(db)
	ctx := context.Background()

	pending, err := repo.CreatePendingEvent(ctx, concertContent("Taslak"), []uint{1, 2})
	if err != nil {
		t.Fatalf("create pending: %v", err)
	}

	content := concertContent("Taslak (düzeltildi)")
	updated, err := repo.UpdatePendingEvent(ctx, pending.ID, content, []uint{6})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Taslak (düzeltildi)" || updated.Status != models.SubmissionStatusPending {
		t.Errorf("updated = %q/%q", updated.Title, updated.Status)
	}
	if got := summaryIDs(updated.Categories); !sameIDs(got, []uint{6}) {
		t.Errorf("categories = %v, want [6]", got)
	}

	if _, err := repo.UpdatePendingEvent(ctx, 999, content, []uint{1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update unknown: err = %v, want ErrNotFound", err)
	}
}

func TestApproveVenueSetsLegacyCategory(t *testing.T) {
	db := newTestDB(t)
	repo := NewPendingRepository(db)
	ctx := context.Background()

	pending, err := repo.CreatePendingVenue(ctx, models.VenueContent{Name: "Liman Kafe", Address: "Sahil Yolu 3"}, []uint{1, 2})
	if err != nil {
		t.Fatalf("create pending venue: %v", err)
	}
	if pending.Rating != models.DefaultVenueRating {
		t.Errorf("rating = %v, want default", pending.Rating)
	}

	venue, err := repo.ApproveVenue(ctx, pending.ID)
	if err != nil {
		t.Fatalf("approve venue: %v", err)
	}
	if venue.CategoryID == nil || *venue.CategoryID != 1 {
		t.Errorf("categoryId = %v, want 1", venue.CategoryID)
	}
	if got := summaryIDs(venue.Categories); !sameIDs(got, []uint{1, 2}) {
		t.Errorf("categories = %v, want [1 2]", got)
	}
	if !venue.IsActive || venue.IsFeatured {
		t.Errorf("isActive=%v isFeatured=%v", venue.IsActive, venue.IsFeatured)
	}
	if n := countRows(t, db, "pending_venues", ""); n != 0 {
		t.Errorf("pending_venues rows = %d, want 0", n)
	}
}

func TestRejectVenueLeavesNoVenue(t *testing.T) {
	db := newTestDB(t)
	repo := NewPendingRepository(db)
	ctx := context.Background()

	pending, err := repo.CreatePendingVenue(ctx, models.VenueContent{Name: "Kale Kafe"}, []uint{1})
	if err != nil {
		t.Fatalf("create pending venue: %v", err)
	}
	if err := repo.RejectVenue(ctx, pending.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	rows, err := repo.ListPendingVenues(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("pending venues = %d, want 0", len(rows))
	}
	if n := countRows(t, db, "venues", "name = ?", "Kale Kafe"); n != 0 {
		t.Errorf("rejected venue became live")
	}
	if n := countRows(t, db, "pending_venue_category_links", ""); n != 0 {
		t.Errorf("pending venue links = %d, want 0", n)
	}
}
