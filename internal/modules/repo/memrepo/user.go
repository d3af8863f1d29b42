package memrepo

import (
	"context"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/google/uuid"
)

type userRepo struct{ s *Store }

func sameUserKey(a, b *model.User) bool {
	return a.Username == b.Username || a.Email == b.Email
}

func (r *userRepo) Create(_ context.Context, u *model.User) error {
	row := *u
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = r.s.now()
	}
	if err := r.s.users.insert(row.ID, &row, func(existing *model.User) bool {
		return sameUserKey(&row, existing)
	}); err != nil {
		return err
	}
	*u = row
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	return r.s.users.get(id)
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	return r.s.users.find(func(u *model.User) bool { return u.Username == username })
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return r.s.users.find(func(u *model.User) bool { return u.Email == email })
}

func (r *userRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*model.User, error) {
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return r.s.users.list(func(u *model.User) bool {
		_, ok := want[u.ID]
		return ok
	}), nil
}

func (r *userRepo) ListFreelancers(_ context.Context) ([]*model.User, error) {
	return r.s.users.list(func(u *model.User) bool { return u.IsFreelancer }), nil
}

func (r *userRepo) Update(_ context.Context, id uuid.UUID, mutate repo.Mutator[model.User]) (*model.User, error) {
	return r.s.users.update(id, mutate, sameUserKey)
}
