package repo

import (
	"context"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectModuleRepo interface {
	Create(ctx context.Context, m *model.ProjectModule) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.ProjectModule, error)
	// ListByProject returns the project's modules ascending by Order.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.ProjectModule, error)
	Update(ctx context.Context, id uuid.UUID, mutate Mutator[model.ProjectModule]) (*model.ProjectModule, error)
}

type projectModuleRepo struct{ db *gorm.DB }

func NewProjectModuleRepo(db *gorm.DB) ProjectModuleRepo {
	return &projectModuleRepo{db: db}
}

func (r *projectModuleRepo) Create(ctx context.Context, m *model.ProjectModule) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *projectModuleRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.ProjectModule, error) {
	return getByID[model.ProjectModule](ctx, r.db, id)
}

func (r *projectModuleRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.ProjectModule, error) {
	var items []*model.ProjectModule
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order(`"order" ASC`).
		Find(&items).Error
	return items, err
}

func (r *projectModuleRepo) Update(ctx context.Context, id uuid.UUID, mutate Mutator[model.ProjectModule]) (*model.ProjectModule, error) {
	return updateLocked(ctx, r.db, id, mutate)
}
