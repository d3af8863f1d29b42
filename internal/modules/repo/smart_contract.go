package repo

import (
	"context"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SmartContractRepo interface {
	Create(ctx context.Context, sc *model.SmartContract) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.SmartContract, error)
	// GetByProject returns the project's active contract, or its newest one when none is active.
	GetByProject(ctx context.Context, projectID uuid.UUID) (*model.SmartContract, error)
	Update(ctx context.Context, id uuid.UUID, mutate Mutator[model.SmartContract]) (*model.SmartContract, error)
}

type smartContractRepo struct{ db *gorm.DB }

func NewSmartContractRepo(db *gorm.DB) SmartContractRepo {
	return &smartContractRepo{db: db}
}

func (r *smartContractRepo) Create(ctx context.Context, sc *model.SmartContract) error {
	return r.db.WithContext(ctx).Create(sc).Error
}

func (r *smartContractRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.SmartContract, error) {
	return getByID[model.SmartContract](ctx, r.db, id)
}

func (r *smartContractRepo) GetByProject(ctx context.Context, projectID uuid.UUID) (*model.SmartContract, error) {
	var sc model.SmartContract
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("is_active DESC, created_at DESC").
		First(&sc).Error
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *smartContractRepo) Update(ctx context.Context, id uuid.UUID, mutate Mutator[model.SmartContract]) (*model.SmartContract, error) {
	return updateLocked(ctx, r.db, id, mutate)
}
