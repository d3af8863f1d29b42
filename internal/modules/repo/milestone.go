package repo

import (
	"context"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MilestoneRepo interface {
	Create(ctx context.Context, m *model.Milestone) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Milestone, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Milestone, error)
	Update(ctx context.Context, id uuid.UUID, mutate Mutator[model.Milestone]) (*model.Milestone, error)
}

type milestoneRepo struct{ db *gorm.DB }

func NewMilestoneRepo(db *gorm.DB) MilestoneRepo {
	return &milestoneRepo{db: db}
}

func (r *milestoneRepo) Create(ctx context.Context, m *model.Milestone) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *milestoneRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Milestone, error) {
	return getByID[model.Milestone](ctx, r.db, id)
}

func (r *milestoneRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Milestone, error) {
	var items []*model.Milestone
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *milestoneRepo) Update(ctx context.Context, id uuid.UUID, mutate Mutator[model.Milestone]) (*model.Milestone, error) {
	return updateLocked(ctx, r.db, id, mutate)
}
