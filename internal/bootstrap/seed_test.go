package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/dappwork/marketplace/internal/modules/repo/memrepo"
	"github.com/dappwork/marketplace/internal/modules/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type seedHarness struct {
	seeder   *Seeder
	users    service.UserService
	projects service.ProjectService
	modules  service.ProjectModuleService
	messages service.MessageService
}

func newSeedHarness(now time.Time) *seedHarness {
	r := MemoryRepos(memrepo.New())
	log := zap.NewNop()
	pub := service.NoopPublisher()

	users := service.NewUserService(r.Users)
	projects := service.NewProjectService(service.ProjectRepos{
		Projects:   r.Projects,
		Users:      r.Users,
		Modules:    r.ProjectModules,
		Contracts:  r.SmartContracts,
		Proposals:  r.Proposals,
		Milestones: r.Milestones,
	}, pub, log)
	modules := service.NewProjectModuleService(r.ProjectModules, r.Projects)
	messages := service.NewMessageService(r.Messages, r.Users, r.Projects, service.NoopInbox(), pub, log)

	return &seedHarness{
		seeder: &Seeder{
			Users:    users,
			Projects: projects,
			Modules:  modules,
			Messages: messages,
			Lookup:   r.Users,
			Log:      log,
			Now:      func() time.Time { return now },
		},
		users:    users,
		projects: projects,
		modules:  modules,
		messages: messages,
	}
}

func TestSeeder_LoadsSampleMarketplace(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	h := newSeedHarness(now)

	require.NoError(t, h.seeder.Run(ctx))

	freelancers, err := h.users.ListFreelancers(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(freelancers))
	for _, u := range freelancers {
		names = append(names, u.Username)
	}
	assert.ElementsMatch(t, []string{"alexrodriguez", "sarahchen"}, names)

	client, err := h.seeder.Lookup.GetByUsername(ctx, "techstartup")
	require.NoError(t, err)
	assert.Equal(t, "4.8", client.Rating.String())

	projects, err := h.projects.List(ctx, service.ListProjectsInput{ClientID: &client.ID})
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "E-commerce Mobile App Development", projects[0].Title)
	assert.Equal(t, "in_progress", projects[0].Status)
	require.NotNil(t, projects[0].Deadline)
	assert.True(t, projects[0].Deadline.Equal(now.AddDate(0, 0, 30)))
	assert.Equal(t, "released", projects[1].EscrowStatus)

	mods, err := h.modules.ListByProject(ctx, projects[0].ID)
	require.NoError(t, err)
	require.Len(t, mods, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{mods[0].Order, mods[1].Order, mods[2].Order})
	assert.Equal(t, 65, mods[1].Progress)

	convs, err := h.messages.Conversations(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "alexrodriguez", convs[0].User.Username)
	assert.Equal(t, 1, convs[0].UnreadCount)
	assert.Equal(t, "sarahchen", convs[1].User.Username)
	assert.Equal(t, 0, convs[1].UnreadCount)
}

func TestSeeder_SecondRunIsNoop(t *testing.T) {
	ctx := context.Background()
	h := newSeedHarness(time.Now().UTC())

	require.NoError(t, h.seeder.Run(ctx))
	require.NoError(t, h.seeder.Run(ctx))

	freelancers, err := h.users.ListFreelancers(ctx)
	require.NoError(t, err)
	assert.Len(t, freelancers, 2)
}

func TestSeeder_RejectsBrokenFixture(t *testing.T) {
	h := newSeedHarness(time.Now().UTC())
	h.seeder.Data = []byte("users:\n  - username: a\n    email: a@example.com\n    rating: lots\n")

	err := h.seeder.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rating")
}
