package memrepo

import (
	"context"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type smartContractRepo struct{ s *Store }

// bothActive mirrors the partial unique index on (project_id) WHERE is_active.
func bothActive(a, b *model.SmartContract) bool {
	return a.IsActive && b.IsActive && a.ProjectID == b.ProjectID
}

func (r *smartContractRepo) Create(_ context.Context, sc *model.SmartContract) error {
	row := *sc
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = r.s.now()
	}
	if err := r.s.contracts.insert(row.ID, &row, func(existing *model.SmartContract) bool {
		return bothActive(&row, existing)
	}); err != nil {
		return err
	}
	*sc = row
	return nil
}

func (r *smartContractRepo) GetByID(_ context.Context, id uuid.UUID) (*model.SmartContract, error) {
	return r.s.contracts.get(id)
}

func (r *smartContractRepo) GetByProject(_ context.Context, projectID uuid.UUID) (*model.SmartContract, error) {
	items := r.s.contracts.list(func(sc *model.SmartContract) bool { return sc.ProjectID == projectID })
	if len(items) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	// newest first, active wins
	best := items[len(items)-1]
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].IsActive {
			return items[i], nil
		}
	}
	return best, nil
}

func (r *smartContractRepo) Update(_ context.Context, id uuid.UUID, mutate repo.Mutator[model.SmartContract]) (*model.SmartContract, error) {
	return r.s.contracts.update(id, mutate, bothActive)
}
