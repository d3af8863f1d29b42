package service

import (
	"context"
	"testing"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateDefaults(t *testing.T) {
	ts := newTestServices(t)
	client := ts.user(t, "client", false)

	p := ts.project(t, client.ID)
	assert.Equal(t, model.ProjectStatusOpen, p.Status)
	assert.Equal(t, model.EscrowStatusPending, p.EscrowStatus)
	assert.NotNil(t, p.Tags)
	assert.Nil(t, p.FreelancerID)
	assert.Equal(t, []string{EventProjectCreated}, ts.pub.kinds())
}

func TestProjectService_CreateValidation(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	client := ts.user(t, "client", false)
	ghost := uuid.New()

	tests := []struct {
		name      string
		in        CreateProjectInput
		wantField string
	}{
		{
			name:      "missing title",
			in:        CreateProjectInput{Description: "d", ClientID: &client.ID, TotalBudget: ptr(decimal.NewFromInt(1))},
			wantField: "title",
		},
		{
			name:      "missing budget",
			in:        CreateProjectInput{Title: "t", Description: "d", ClientID: &client.ID},
			wantField: "totalBudget",
		},
		{
			name:      "zero budget",
			in:        CreateProjectInput{Title: "t", Description: "d", ClientID: &client.ID, TotalBudget: ptr(decimal.Zero)},
			wantField: "totalBudget",
		},
		{
			name:      "budget overflows storage",
			in:        CreateProjectInput{Title: "t", Description: "d", ClientID: &client.ID, TotalBudget: ptr(decimal.NewFromInt(2_000_000))},
			wantField: "totalBudget",
		},
		{
			name:      "unknown client",
			in:        CreateProjectInput{Title: "t", Description: "d", ClientID: &ghost, TotalBudget: ptr(decimal.NewFromInt(1))},
			wantField: "clientId",
		},
		{
			name: "bad status",
			in: CreateProjectInput{
				Title: "t", Description: "d", ClientID: &client.ID,
				TotalBudget: ptr(decimal.NewFromInt(1)), Status: ptr("archived"),
			},
			wantField: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.projects.Create(ctx, tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, fieldNames(verr), tt.wantField)
		})
	}
}

func TestProjectService_ListFilters(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	a := ts.user(t, "alice", false)
	b := ts.user(t, "bob", true)

	p, err := ts.projects.Create(ctx, CreateProjectInput{
		Title: "P", Description: "d", ClientID: &a.ID, FreelancerID: &b.ID,
		TotalBudget: ptr(decimal.RequireFromString("5.5")),
	})
	require.NoError(t, err)
	other := ts.user(t, "carol", false)
	ts.project(t, other.ID)

	byClient, err := ts.projects.List(ctx, ListProjectsInput{ClientID: &a.ID})
	require.NoError(t, err)
	require.Len(t, byClient, 1)
	assert.Equal(t, p.ID, byClient[0].ID)
	assert.Equal(t, "5.5", byClient[0].TotalBudget.String())

	byFreelancer, err := ts.projects.List(ctx, ListProjectsInput{FreelancerID: &b.ID})
	require.NoError(t, err)
	require.Len(t, byFreelancer, 1)

	all, err := ts.projects.List(ctx, ListProjectsInput{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = ts.projects.List(ctx, ListProjectsInput{ClientID: &a.ID, FreelancerID: &b.ID})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestProjectService_UpdateRoundTrip(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	client := ts.user(t, "client", false)
	p := ts.project(t, client.ID)

	updated, err := ts.projects.Update(ctx, p.ID, UpdateProjectInput{Status: ptr(model.ProjectStatusInProgress)})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(p.UpdatedAt))

	got, err := ts.projects.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusInProgress, got.Status)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.Description, got.Description)
	assert.True(t, p.TotalBudget.Equal(got.TotalBudget))
	assert.Equal(t, p.EscrowStatus, got.EscrowStatus)
	assert.Equal(t, p.CreatedAt, got.CreatedAt)

	_, err = ts.projects.Update(ctx, uuid.New(), UpdateProjectInput{Title: ptr("x")})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = ts.projects.Update(ctx, p.ID, UpdateProjectInput{TotalBudget: ptr(decimal.NewFromInt(-1))})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestProjectService_Overview(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	client := ts.user(t, "client", false)
	dev := ts.user(t, "dev", true)
	p := ts.project(t, client.ID)

	_, err := ts.projects.Update(ctx, p.ID, UpdateProjectInput{FreelancerID: &dev.ID})
	require.NoError(t, err)
	_, err = ts.modules.Create(ctx, p.ID, CreateModuleInput{Name: "UI", Budget: ptr(decimal.NewFromInt(10)), Order: ptr(1)})
	require.NoError(t, err)
	_, err = ts.milestones.Create(ctx, p.ID, CreateMilestoneInput{Description: "MVP", Amount: ptr(decimal.NewFromInt(5))})
	require.NoError(t, err)

	ov, err := ts.projects.Overview(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, ov.Project.ID)
	assert.Equal(t, client.ID, ov.Client.ID)
	require.NotNil(t, ov.Freelancer)
	assert.Equal(t, dev.ID, ov.Freelancer.ID)
	assert.Len(t, ov.Modules, 1)
	assert.Len(t, ov.Milestones, 1)
	assert.Empty(t, ov.Proposals)
	assert.Nil(t, ov.SmartContract)

	_, err = ts.projects.Overview(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
