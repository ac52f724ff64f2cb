package favorite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pandamarket/api/pkg/apperror"
)

// targetTables maps a target type to the table carrying its favorite_count
var targetTables = map[TargetType]string{
	TargetProduct: "products",
	TargetArticle: "articles",
}

// GormService implements Service on top of PostgreSQL.
// It relies on gorm.ErrDuplicatedKey translation (TranslateError) to turn
// unique-index violations into ErrAlreadyFavorited, so a concurrent double
// like can never produce a second row or a double increment.
type GormService struct {
	db *gorm.DB
}

// NewGormService creates a new GORM-backed favorite service
func NewGormService(db *gorm.DB) *GormService {
	return &GormService{db: db}
}

// AutoMigrate runs database migrations for the favorites table
func (s *GormService) AutoMigrate() error {
	return s.db.AutoMigrate(&Favorite{})
}

func (s *GormService) Like(ctx context.Context, target Target, userID uint) error {
	table, ok := targetTables[target.Type]
	if !ok {
		return fmt.Errorf("unknown favorite target type %q", target.Type)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fav := Favorite{
			UserID:     userID,
			TargetType: string(target.Type),
			TargetID:   target.ID,
		}
		if err := tx.Create(&fav).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.ErrAlreadyFavorited
			}
			return fmt.Errorf("failed to create favorite: %w", err)
		}

		res := tx.Table(table).
			Where("id = ? AND deleted_at IS NULL", target.ID).
			UpdateColumn("favorite_count", gorm.Expr("favorite_count + ?", 1))
		if res.Error != nil {
			return fmt.Errorf("failed to increment favorite count: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Target row is gone; roll back the join row insert
			return apperror.NotFound(string(target.Type) + " not found")
		}
		return nil
	})
}

func (s *GormService) Unlike(ctx context.Context, target Target, userID uint) error {
	table, ok := targetTables[target.Type]
	if !ok {
		return fmt.Errorf("unknown favorite target type %q", target.Type)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND target_type = ? AND target_id = ?",
			userID, string(target.Type), target.ID).
			Delete(&Favorite{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete favorite: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.ErrNotFavorited
		}

		// The row existed, so the counter is at least 1; the decrement and
		// the delete commit together and the count cannot go negative.
		upd := tx.Table(table).
			Where("id = ? AND deleted_at IS NULL", target.ID).
			UpdateColumn("favorite_count", gorm.Expr("favorite_count - ?", 1))
		if upd.Error != nil {
			return fmt.Errorf("failed to decrement favorite count: %w", upd.Error)
		}
		if upd.RowsAffected == 0 {
			return apperror.NotFound(string(target.Type) + " not found")
		}
		return nil
	})
}

func (s *GormService) IsFavorited(ctx context.Context, target Target, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Favorite{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?",
			userID, string(target.Type), target.ID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

func (s *GormService) FavoritedIDs(ctx context.Context, targetType TargetType, userID uint) (map[uint]bool, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&Favorite{}).
		Where("user_id = ? AND target_type = ?", userID, string(targetType)).
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
