package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// FavoriteStore is the server side of a user's favorite set.
type FavoriteStore interface {
	EventIDs(ctx context.Context, userID uint) ([]uint, error)
	Add(ctx context.Context, userID, eventID uint) error
	Remove(ctx context.Context, userID, eventID uint) error
	// Favorable returns the ids among eventIDs that name live, active events.
	Favorable(ctx context.Context, eventIDs []uint) ([]uint, error)
}

// FavoriteDiff lists what has to change on the server to match the client.
type FavoriteDiff struct {
	ToAdd    []uint `json:"toAdd"`
	ToRemove []uint `json:"toRemove"`
	// Skipped holds client ids that are not live events and were not added.
	Skipped []uint `json:"skipped"`
}

// Diff returns client minus server as ToAdd and server minus client as
// ToRemove, both sorted ascending. Ids present on both sides appear in neither.
func Diff(server, client []uint) FavoriteDiff {
	inServer := toSet(server)
	inClient := toSet(client)

	d := FavoriteDiff{ToAdd: []uint{}, ToRemove: []uint{}, Skipped: []uint{}}
	for id := range inClient {
		if _, ok := inServer[id]; !ok {
			d.ToAdd = append(d.ToAdd, id)
		}
	}
	for id := range inServer {
		if _, ok := inClient[id]; !ok {
			d.ToRemove = append(d.ToRemove, id)
		}
	}
	sort.Slice(d.ToAdd, func(i, j int) bool { return d.ToAdd[i] < d.ToAdd[j] })
	sort.Slice(d.ToRemove, func(i, j int) bool { return d.ToRemove[i] < d.ToRemove[j] })
	return d
}

func toSet(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// FavoriteSyncService pushes a client's local favorite set to the server.
type FavoriteSyncService struct {
	store FavoriteStore
	log   *logrus.Logger
}

func NewFavoriteSyncService(store FavoriteStore, log *logrus.Logger) *FavoriteSyncService {
	return &FavoriteSyncService{store: store, log: log}
}

// Sync issues one Add per missing id and one Remove per extra id. A failed
// call is logged and the rest still run; the joined failures are returned with
// the diff that was attempted.
func (s *FavoriteSyncService) Sync(ctx context.Context, userID uint, client []uint) (FavoriteDiff, error) {
	server, err := s.store.EventIDs(ctx, userID)
	if err != nil {
		return FavoriteDiff{}, err
	}

	d := Diff(server, client)
	if len(d.ToAdd) > 0 {
		live, err := s.store.Favorable(ctx, d.ToAdd)
		if err != nil {
			return FavoriteDiff{}, err
		}
		inLive := toSet(live)
		add := d.ToAdd[:0:0]
		for _, id := range d.ToAdd {
			if _, ok := inLive[id]; ok {
				add = append(add, id)
			} else {
				d.Skipped = append(d.Skipped, id)
			}
		}
		d.ToAdd = add
		if len(d.Skipped) > 0 {
			s.log.WithFields(logrus.Fields{"user_id": userID, "event_ids": d.Skipped}).Info("sync skipped unknown or inactive events")
		}
	}

	var errs []error
	for _, id := range d.ToAdd {
		if err := s.store.Add(ctx, userID, id); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{"user_id": userID, "event_id": id}).Warn("favorite add failed during sync")
			errs = append(errs, fmt.Errorf("add %d: %w", id, err))
		}
	}
	for _, id := range d.ToRemove {
		if err := s.store.Remove(ctx, userID, id); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{"user_id": userID, "event_id": id}).Warn("favorite remove failed during sync")
			errs = append(errs, fmt.Errorf("remove %d: %w", id, err))
		}
	}
	return d, errors.Join(errs...)
}
