package memrepo

import (
	"context"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/google/uuid"
)

type proposalRepo struct{ s *Store }

func (r *proposalRepo) Create(_ context.Context, p *model.Proposal) error {
	row := *p
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = r.s.now()
	}
	if err := r.s.proposals.insert(row.ID, &row, nil); err != nil {
		return err
	}
	*p = row
	return nil
}

func (r *proposalRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Proposal, error) {
	return r.s.proposals.get(id)
}

func (r *proposalRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*model.Proposal, error) {
	return r.s.proposals.list(func(p *model.Proposal) bool { return p.ProjectID == projectID }), nil
}

func (r *proposalRepo) Update(_ context.Context, id uuid.UUID, mutate repo.Mutator[model.Proposal]) (*model.Proposal, error) {
	return r.s.proposals.update(id, mutate, nil)
}
