package repo

import (
	"context"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectFilter narrows a project listing. At most one field is expected to be set;
// with neither set every project is returned.
type ProjectFilter struct {
	ClientID     *uuid.UUID
	FreelancerID *uuid.UUID
}

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context, f ProjectFilter) ([]*model.Project, error)
	Update(ctx context.Context, id uuid.UUID, mutate Mutator[model.Project]) (*model.Project, error)
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	return getByID[model.Project](ctx, r.db, id)
}

func (r *projectRepo) List(ctx context.Context, f ProjectFilter) ([]*model.Project, error) {
	q := r.db.WithContext(ctx)
	switch {
	case f.ClientID != nil:
		q = q.Where("client_id = ?", *f.ClientID)
	case f.FreelancerID != nil:
		q = q.Where("freelancer_id = ?", *f.FreelancerID)
	}

	var items []*model.Project
	err := q.Order("created_at ASC, id ASC").Find(&items).Error
	return items, err
}

func (r *projectRepo) Update(ctx context.Context, id uuid.UUID, mutate Mutator[model.Project]) (*model.Project, error) {
	return updateLocked(ctx, r.db, id, mutate)
}
