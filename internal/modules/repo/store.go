package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Mutator edits a loaded row in place. Returning an error aborts the update.
type Mutator[T any] func(*T) error

// updateLocked loads the row with SELECT ... FOR UPDATE, applies mutate and saves it
// in one transaction, so concurrent updates of the same row serialize.
func updateLocked[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, mutate Mutator[T]) (*T, error) {
	var row T
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&row).Error; err != nil {
			return err
		}
		if err := mutate(&row); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func getByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) (*T, error) {
	var row T
	if err := db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
