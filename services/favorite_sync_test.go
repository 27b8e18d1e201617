package services

import (
	"context"
	"errors"
	"io"
	"reflect"
	"sort"
	"testing"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name       string
		server     []uint
		client     []uint
		wantAdd    []uint
		wantRemove []uint
	}{
		{"overlap", []uint{1, 2, 3}, []uint{2, 3, 4}, []uint{4}, []uint{1}},
		{"empty client clears server", []uint{5, 1}, nil, []uint{}, []uint{1, 5}},
		{"empty server", nil, []uint{9, 3}, []uint{3, 9}, []uint{}},
		{"identical", []uint{1, 2}, []uint{2, 1}, []uint{}, []uint{}},
		{"duplicates on client", []uint{1}, []uint{2, 2, 1}, []uint{2}, []uint{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Diff(tt.server, tt.client)
			if !reflect.DeepEqual(d.ToAdd, tt.wantAdd) {
				t.Errorf("ToAdd = %v, want %v", d.ToAdd, tt.wantAdd)
			}
			if !reflect.DeepEqual(d.ToRemove, tt.wantRemove) {
				t.Errorf("ToRemove = %v, want %v", d.ToRemove, tt.wantRemove)
			}
		})
	}
}

type fakeFavoriteStore struct {
	ids     map[uint]bool
	failAdd map[uint]bool
	missing map[uint]bool
	listErr error
}

func newFakeStore(ids ...uint) *fakeFavoriteStore {
	s := &fakeFavoriteStore{ids: map[uint]bool{}, failAdd: map[uint]bool{}, missing: map[uint]bool{}}
	for _, id := range ids {
		s.ids[id] = true
	}
	return s
}

func (s *fakeFavoriteStore) EventIDs(_ context.Context, _ uint) ([]uint, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]uint, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (s *fakeFavoriteStore) Add(_ context.Context, _ uint, id uint) error {
	if s.failAdd[id] {
		return errors.New("write failed")
	}
	s.ids[id] = true
	return nil
}

func (s *fakeFavoriteStore) Favorable(_ context.Context, ids []uint) ([]uint, error) {
	var out []uint
	for _, id := range ids {
		if !s.missing[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *fakeFavoriteStore) Remove(_ context.Context, _ uint, id uint) error {
	delete(s.ids, id)
	return nil
}

func TestSyncConvergesToClientSet(t *testing.T) {
	store := newFakeStore(1, 2, 3)
	svc := NewFavoriteSyncService(store, quietLogger())

	d, err := svc.Sync(context.Background(), 42, []uint{2, 3, 4})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !reflect.DeepEqual(d.ToAdd, []uint{4}) || !reflect.DeepEqual(d.ToRemove, []uint{1}) {
		t.Errorf("diff = %+v", d)
	}

	got, _ := store.EventIDs(context.Background(), 42)
	if !reflect.DeepEqual(got, []uint{2, 3, 4}) {
		t.Errorf("server set = %v, want [2 3 4]", got)
	}
}

func TestSyncContinuesPastFailures(t *testing.T) {
	store := newFakeStore(1)
	store.failAdd[5] = true
	svc := NewFavoriteSyncService(store, quietLogger())

	_, err := svc.Sync(context.Background(), 42, []uint{5, 6})
	if err == nil {
		t.Fatal("expected an error for the failed add")
	}

	got, _ := store.EventIDs(context.Background(), 42)
	if !reflect.DeepEqual(got, []uint{6}) {
		t.Errorf("server set = %v, want [6]", got)
	}
}

func TestSyncStopsWhenServerSetUnreadable(t *testing.T) {
	store := newFakeStore(1)
	store.listErr = errors.New("db down")
	svc := NewFavoriteSyncService(store, quietLogger())

	if _, err := svc.Sync(context.Background(), 42, []uint{2}); !errors.Is(err, store.listErr) {
		t.Fatalf("err = %v, want list error", err)
	}
	if store.ids[2] {
		t.Error("add ran without a server snapshot")
	}
}

func TestSyncSkipsEventsThatAreNotLive(t *testing.T) {
	store := newFakeStore(1)
	store.missing[424242] = true
	svc := NewFavoriteSyncService(store, quietLogger())

	d, err := svc.Sync(context.Background(), 42, []uint{1, 7, 424242})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !reflect.DeepEqual(d.ToAdd, []uint{7}) || !reflect.DeepEqual(d.Skipped, []uint{424242}) {
		t.Errorf("diff = %+v", d)
	}
	if store.ids[424242] {
		t.Error("unknown event was favorited")
	}
}
