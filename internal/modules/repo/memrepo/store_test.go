package memrepo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newUser(name string) *model.User {
	return &model.User{Username: name, Email: name + "@example.com", Skills: datatypes.JSONSlice[string]{}}
}

func TestUsers_UniqueUsernameAndEmail(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	require.NoError(t, users.Create(ctx, newUser("alice")))

	dup := newUser("alice")
	dup.Email = "other@example.com"
	assert.ErrorIs(t, users.Create(ctx, dup), gorm.ErrDuplicatedKey)

	dupMail := newUser("bob")
	dupMail.Email = "alice@example.com"
	assert.ErrorIs(t, users.Create(ctx, dupMail), gorm.ErrDuplicatedKey)
}

func TestCreate_RejectedInsertLeavesInputUntouched(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()

	tests := []struct {
		name   string
		create func(t *testing.T, s *Store) (id uuid.UUID, stamped bool, err error)
	}{
		{"user with taken username", func(t *testing.T, s *Store) (uuid.UUID, bool, error) {
			require.NoError(t, s.Users().Create(ctx, newUser("dora")))
			u := newUser("dora")
			err := s.Users().Create(ctx, u)
			return u.ID, !u.CreatedAt.IsZero(), err
		}},
		{"module in taken slot", func(t *testing.T, s *Store) (uuid.UUID, bool, error) {
			require.NoError(t, s.ProjectModules().Create(ctx, &model.ProjectModule{ProjectID: projectID, Order: 1}))
			m := &model.ProjectModule{ProjectID: projectID, Order: 1}
			err := s.ProjectModules().Create(ctx, m)
			return m.ID, !m.CreatedAt.IsZero(), err
		}},
		{"second active contract", func(t *testing.T, s *Store) (uuid.UUID, bool, error) {
			require.NoError(t, s.SmartContracts().Create(ctx, &model.SmartContract{ProjectID: projectID, IsActive: true}))
			sc := &model.SmartContract{ProjectID: projectID, IsActive: true}
			err := s.SmartContracts().Create(ctx, sc)
			return sc.ID, !sc.CreatedAt.IsZero(), err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, stamped, err := tt.create(t, New())
			assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
			assert.Equal(t, uuid.Nil, id)
			assert.False(t, stamped)
		})
	}

	users := New().Users()
	require.NoError(t, users.Create(ctx, newUser("erin")))
	retry := newUser("erin")
	require.ErrorIs(t, users.Create(ctx, retry), gorm.ErrDuplicatedKey)
	retry.Username, retry.Email = "erin2", "erin2@example.com"
	require.NoError(t, users.Create(ctx, retry))
	assert.NotEqual(t, uuid.Nil, retry.ID)
}

func TestUsers_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	u := newUser("carol")
	u.Skills = datatypes.JSONSlice[string]{"go"}
	require.NoError(t, users.Create(ctx, u))
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	u.Skills[0] = "mutated"
	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "go", got.Skills[0])

	got.Username = "mutated"
	again, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", again.Username)
}

func TestUsers_UpdateRejectsTakenEmail(t *testing.T) {
	ctx := context.Background()
	users := New().Users()
	a, b := newUser("a"), newUser("b")
	require.NoError(t, users.Create(ctx, a))
	require.NoError(t, users.Create(ctx, b))

	_, err := users.Update(ctx, b.ID, func(u *model.User) error {
		u.Email = a.Email
		return nil
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	got, err := users.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", got.Email)
}

func TestUpdate_MutatorErrorLeavesRowUntouched(t *testing.T) {
	ctx := context.Background()
	users := New().Users()
	u := newUser("dave")
	require.NoError(t, users.Create(ctx, u))

	boom := errors.New("boom")
	_, err := users.Update(ctx, u.ID, func(u *model.User) error {
		u.Username = "half-written"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := users.GetByID(ctx, u.ID)
	assert.Equal(t, "dave", got.Username)
}

func TestGetByID_NotFound(t *testing.T) {
	s := New()
	_, err := s.Projects().GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = s.Messages().MarkRead(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestModules_SortedByOrderAndUniquePerProject(t *testing.T) {
	ctx := context.Background()
	modules := New().ProjectModules()
	projectID := uuid.New()

	for _, order := range []int{3, 1, 2} {
		require.NoError(t, modules.Create(ctx, &model.ProjectModule{
			ProjectID: projectID, Name: "m", Budget: decimal.NewFromInt(10), Order: order,
		}))
	}
	assert.ErrorIs(t, modules.Create(ctx, &model.ProjectModule{ProjectID: projectID, Order: 2}), gorm.ErrDuplicatedKey)
	require.NoError(t, modules.Create(ctx, &model.ProjectModule{ProjectID: uuid.New(), Order: 2}))

	items, err := modules.ListByProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, m := range items {
		assert.Equal(t, i+1, m.Order)
	}
}

func TestSmartContracts_ActivePreferred(t *testing.T) {
	ctx := context.Background()
	contracts := New().SmartContracts()
	projectID := uuid.New()

	active := &model.SmartContract{ProjectID: projectID, IsActive: true}
	require.NoError(t, contracts.Create(ctx, active))
	require.NoError(t, contracts.Create(ctx, &model.SmartContract{ProjectID: projectID, IsActive: false}))
	assert.ErrorIs(t, contracts.Create(ctx, &model.SmartContract{ProjectID: projectID, IsActive: true}), gorm.ErrDuplicatedKey)

	got, err := contracts.GetByProject(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)

	_, err = contracts.GetByProject(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjects_FilterAndUpdatedAt(t *testing.T) {
	ctx := context.Background()
	projects := New().Projects()
	client, freelancer := uuid.New(), uuid.New()

	p1 := &model.Project{Title: "one", ClientID: client}
	p2 := &model.Project{Title: "two", ClientID: uuid.New(), FreelancerID: &freelancer}
	require.NoError(t, projects.Create(ctx, p1))
	require.NoError(t, projects.Create(ctx, p2))

	byClient, _ := projects.List(ctx, projectFilter(&client, nil))
	require.Len(t, byClient, 1)
	assert.Equal(t, p1.ID, byClient[0].ID)

	byFreelancer, _ := projects.List(ctx, projectFilter(nil, &freelancer))
	require.Len(t, byFreelancer, 1)
	assert.Equal(t, p2.ID, byFreelancer[0].ID)

	all, _ := projects.List(ctx, projectFilter(nil, nil))
	assert.Len(t, all, 2)

	updated, err := projects.Update(ctx, p1.ID, func(p *model.Project) error {
		p.Status = model.ProjectStatusInProgress
		return nil
	})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(p1.UpdatedAt))
}

func TestMessages_CreationOrderIsStrict(t *testing.T) {
	ctx := context.Background()
	messages := New().Messages()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	for _, m := range []*model.Message{
		{SenderID: a, ReceiverID: b, Content: "1"},
		{SenderID: b, ReceiverID: a, Content: "2"},
		{SenderID: a, ReceiverID: c, Content: "3"},
	} {
		require.NoError(t, messages.Create(ctx, m))
	}

	between, _ := messages.ListBetween(ctx, b, a)
	require.Len(t, between, 2)
	assert.Equal(t, "1", between[0].Content)
	assert.True(t, between[1].CreatedAt.After(between[0].CreatedAt))

	mine, _ := messages.ListByParticipant(ctx, a)
	assert.Len(t, mine, 3)
}

func TestUpdate_ConcurrentMutationsAreNotLost(t *testing.T) {
	ctx := context.Background()
	users := New().Users()
	u := newUser("eve")
	require.NoError(t, users.Create(ctx, u))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := users.Update(ctx, u.ID, func(u *model.User) error {
				u.CompletedProjects++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, _ := users.GetByID(ctx, u.ID)
	assert.Equal(t, 50, got.CompletedProjects)
}
