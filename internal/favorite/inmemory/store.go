// Package inmemory provides a map-backed favorite.Service with the same
// toggle semantics as the GORM implementation. Usecase tests run against it
// together with the in-memory entity repositories.
package inmemory

import (
	"context"
	"sync"

	"github.com/pandamarket/api/internal/favorite"
	"github.com/pandamarket/api/pkg/apperror"
)

// TargetStore applies counter updates to the store owning the target
// entity, mirroring the favorite_count column update in production.
type TargetStore interface {
	// AdjustFavoriteCount returns apperror.ErrNotFound when the target row
	// does not exist.
	AdjustFavoriteCount(target favorite.Target, delta int) error
}

type favKey struct {
	userID     uint
	targetType favorite.TargetType
	targetID   uint
}

// Store is an in-memory favorite.Service
type Store struct {
	mu      sync.Mutex
	rows    map[favKey]struct{}
	targets TargetStore
}

// New creates an in-memory store delegating counter updates to targets
func New(targets TargetStore) *Store {
	return &Store{
		rows:    make(map[favKey]struct{}),
		targets: targets,
	}
}

func (s *Store) Like(ctx context.Context, target favorite.Target, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := favKey{userID: userID, targetType: target.Type, targetID: target.ID}
	if _, exists := s.rows[key]; exists {
		return apperror.ErrAlreadyFavorited
	}
	if err := s.targets.AdjustFavoriteCount(target, 1); err != nil {
		return err
	}
	s.rows[key] = struct{}{}
	return nil
}

func (s *Store) Unlike(ctx context.Context, target favorite.Target, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := favKey{userID: userID, targetType: target.Type, targetID: target.ID}
	if _, exists := s.rows[key]; !exists {
		return apperror.ErrNotFavorited
	}
	if err := s.targets.AdjustFavoriteCount(target, -1); err != nil {
		return err
	}
	delete(s.rows, key)
	return nil
}

func (s *Store) IsFavorited(ctx context.Context, target favorite.Target, userID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.rows[favKey{userID: userID, targetType: target.Type, targetID: target.ID}]
	return exists, nil
}

func (s *Store) FavoritedIDs(ctx context.Context, targetType favorite.TargetType, userID uint) (map[uint]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := make(map[uint]bool)
	for key := range s.rows {
		if key.userID == userID && key.targetType == targetType {
			set[key.targetID] = true
		}
	}
	return set, nil
}
