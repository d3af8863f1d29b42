package service

import (
	"context"
	"sync"
	"testing"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/dappwork/marketplace/internal/modules/repo/memrepo"
	"github.com/dappwork/marketplace/internal/pkg/contractaddr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Kind)
	}
	return out
}

type mapInbox struct {
	mu          sync.Mutex
	entries     map[uuid.UUID][]InboxEntry
	versions    map[uuid.UUID]int64
	invalidated []uuid.UUID
}

func newMapInbox() *mapInbox {
	return &mapInbox{entries: map[uuid.UUID][]InboxEntry{}, versions: map[uuid.UUID]int64{}}
}

func (c *mapInbox) Version(_ context.Context, userID uuid.UUID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[userID], nil
}

func (c *mapInbox) Get(_ context.Context, userID uuid.UUID) ([]InboxEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, ok := c.entries[userID]
	return entries, ok, nil
}

func (c *mapInbox) Set(_ context.Context, userID uuid.UUID, version int64, entries []InboxEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[userID] != version {
		return ErrInboxStale
	}
	c.entries[userID] = entries
	return nil
}

func (c *mapInbox) Invalidate(_ context.Context, userIDs ...uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range userIDs {
		c.versions[id]++
		delete(c.entries, id)
		c.invalidated = append(c.invalidated, id)
	}
	return nil
}

type testServices struct {
	store      *memrepo.Store
	pub        *recordingPublisher
	inbox      *mapInbox
	users      UserService
	projects   ProjectService
	modules    ProjectModuleService
	contracts  SmartContractService
	proposals  ProposalService
	messages   MessageService
	milestones MilestoneService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	s := memrepo.New()
	pub := &recordingPublisher{}
	inbox := newMapInbox()
	log := zap.NewNop()

	return &testServices{
		store:  s,
		pub:    pub,
		inbox:  inbox,
		users:  NewUserService(s.Users()),
		projects: NewProjectService(ProjectRepos{
			Projects:   s.Projects(),
			Users:      s.Users(),
			Modules:    s.ProjectModules(),
			Contracts:  s.SmartContracts(),
			Proposals:  s.Proposals(),
			Milestones: s.Milestones(),
		}, pub, log),
		modules:    NewProjectModuleService(s.ProjectModules(), s.Projects()),
		contracts:  NewSmartContractService(s.SmartContracts(), s.Projects(), contractaddr.Fixed("0xfeedbeef01"), log),
		proposals:  NewProposalService(s.Proposals(), s.Projects(), s.Users(), pub, log),
		messages:   NewMessageService(s.Messages(), s.Users(), s.Projects(), inbox, pub, log),
		milestones: NewMilestoneService(s.Milestones(), s.Projects(), s.ProjectModules(), pub, log),
	}
}

func (ts *testServices) user(t *testing.T, name string, freelancer bool) *model.User {
	t.Helper()
	u, err := ts.users.Create(context.Background(), CreateUserInput{
		Username: name, Email: name + "@example.com", IsFreelancer: ptr(freelancer),
	})
	require.NoError(t, err)
	return u
}

func (ts *testServices) project(t *testing.T, clientID uuid.UUID) *model.Project {
	t.Helper()
	p, err := ts.projects.Create(context.Background(), CreateProjectInput{
		Title: "Token dashboard", Description: "React + ethers", ClientID: &clientID,
		TotalBudget: ptr(decimal.RequireFromString("1500")),
	})
	require.NoError(t, err)
	return p
}
