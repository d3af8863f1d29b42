package memrepo

import (
	"context"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/google/uuid"
)

type milestoneRepo struct{ s *Store }

func (r *milestoneRepo) Create(_ context.Context, m *model.Milestone) error {
	row := *m
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = r.s.now()
	}
	if err := r.s.milestones.insert(row.ID, &row, nil); err != nil {
		return err
	}
	*m = row
	return nil
}

func (r *milestoneRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Milestone, error) {
	return r.s.milestones.get(id)
}

func (r *milestoneRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*model.Milestone, error) {
	return r.s.milestones.list(func(m *model.Milestone) bool { return m.ProjectID == projectID }), nil
}

func (r *milestoneRepo) Update(_ context.Context, id uuid.UUID, mutate repo.Mutator[model.Milestone]) (*model.Milestone, error) {
	return r.s.milestones.update(id, mutate, nil)
}
