package memrepo

import (
	"context"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/google/uuid"
)

type projectRepo struct{ s *Store }

func (r *projectRepo) Create(_ context.Context, p *model.Project) error {
	row := *p
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	now := r.s.now()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = now
	}
	if err := r.s.projects.insert(row.ID, &row, nil); err != nil {
		return err
	}
	*p = row
	return nil
}

func (r *projectRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Project, error) {
	return r.s.projects.get(id)
}

func (r *projectRepo) List(_ context.Context, f repo.ProjectFilter) ([]*model.Project, error) {
	var keep func(*model.Project) bool
	switch {
	case f.ClientID != nil:
		keep = func(p *model.Project) bool { return p.ClientID == *f.ClientID }
	case f.FreelancerID != nil:
		keep = func(p *model.Project) bool { return p.FreelancerID != nil && *p.FreelancerID == *f.FreelancerID }
	}
	return r.s.projects.list(keep), nil
}

func (r *projectRepo) Update(_ context.Context, id uuid.UUID, mutate repo.Mutator[model.Project]) (*model.Project, error) {
	return r.s.projects.update(id, func(p *model.Project) error {
		if err := mutate(p); err != nil {
			return err
		}
		p.UpdatedAt = r.s.now()
		return nil
	}, nil)
}
