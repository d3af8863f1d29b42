package memrepo

import (
	"context"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/google/uuid"
)

type messageRepo struct{ s *Store }

func (r *messageRepo) Create(_ context.Context, m *model.Message) error {
	row := *m
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = r.s.now()
	}
	if err := r.s.messages.insert(row.ID, &row, nil); err != nil {
		return err
	}
	*m = row
	return nil
}

func (r *messageRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Message, error) {
	return r.s.messages.get(id)
}

func (r *messageRepo) ListBetween(_ context.Context, a, b uuid.UUID) ([]*model.Message, error) {
	return r.s.messages.list(func(m *model.Message) bool {
		return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
	}), nil
}

func (r *messageRepo) ListByParticipant(_ context.Context, userID uuid.UUID) ([]*model.Message, error) {
	return r.s.messages.list(func(m *model.Message) bool {
		return m.SenderID == userID || m.ReceiverID == userID
	}), nil
}

func (r *messageRepo) MarkRead(_ context.Context, id uuid.UUID) (*model.Message, error) {
	return r.s.messages.update(id, func(m *model.Message) error {
		m.IsRead = true
		return nil
	}, nil)
}
