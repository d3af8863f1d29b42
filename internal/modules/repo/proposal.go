package repo

import (
	"context"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProposalRepo interface {
	Create(ctx context.Context, p *model.Proposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Proposal, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Proposal, error)
	Update(ctx context.Context, id uuid.UUID, mutate Mutator[model.Proposal]) (*model.Proposal, error)
}

type proposalRepo struct{ db *gorm.DB }

func NewProposalRepo(db *gorm.DB) ProposalRepo {
	return &proposalRepo{db: db}
}

func (r *proposalRepo) Create(ctx context.Context, p *model.Proposal) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proposalRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Proposal, error) {
	return getByID[model.Proposal](ctx, r.db, id)
}

func (r *proposalRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Proposal, error) {
	var items []*model.Proposal
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *proposalRepo) Update(ctx context.Context, id uuid.UUID, mutate Mutator[model.Proposal]) (*model.Proposal, error) {
	return updateLocked(ctx, r.db, id, mutate)
}
