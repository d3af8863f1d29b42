package memrepo

import (
	"cmp"
	"context"
	"slices"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/google/uuid"
)

type projectModuleRepo struct{ s *Store }

func sameModuleSlot(a, b *model.ProjectModule) bool {
	return a.ProjectID == b.ProjectID && a.Order == b.Order
}

func (r *projectModuleRepo) Create(_ context.Context, m *model.ProjectModule) error {
	row := *m
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = r.s.now()
	}
	if err := r.s.modules.insert(row.ID, &row, func(existing *model.ProjectModule) bool {
		return sameModuleSlot(&row, existing)
	}); err != nil {
		return err
	}
	*m = row
	return nil
}

func (r *projectModuleRepo) GetByID(_ context.Context, id uuid.UUID) (*model.ProjectModule, error) {
	return r.s.modules.get(id)
}

func (r *projectModuleRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*model.ProjectModule, error) {
	items := r.s.modules.list(func(m *model.ProjectModule) bool { return m.ProjectID == projectID })
	slices.SortStableFunc(items, func(a, b *model.ProjectModule) int { return cmp.Compare(a.Order, b.Order) })
	return items, nil
}

func (r *projectModuleRepo) Update(_ context.Context, id uuid.UUID, mutate repo.Mutator[model.ProjectModule]) (*model.ProjectModule, error) {
	return r.s.modules.update(id, mutate, sameModuleSlot)
}
