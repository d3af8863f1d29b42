package repo

import (
	"context"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepo interface {
	Create(ctx context.Context, m *model.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Message, error)
	// ListBetween returns messages exchanged by a and b in either direction, oldest first.
	ListBetween(ctx context.Context, a, b uuid.UUID) ([]*model.Message, error)
	// ListByParticipant returns every message userID sent or received, oldest first.
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*model.Message, error)
	// MarkRead sets is_read. It never clears the flag.
	MarkRead(ctx context.Context, id uuid.UUID) (*model.Message, error)
}

type messageRepo struct{ db *gorm.DB }

func NewMessageRepo(db *gorm.DB) MessageRepo {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, m *model.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *messageRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	return getByID[model.Message](ctx, r.db, id)
}

func (r *messageRepo) ListBetween(ctx context.Context, a, b uuid.UUID) ([]*model.Message, error) {
	var items []*model.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *messageRepo) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*model.Message, error) {
	var items []*model.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *messageRepo) MarkRead(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	return updateLocked(ctx, r.db, id, func(m *model.Message) error {
		m.IsRead = true
		return nil
	})
}
