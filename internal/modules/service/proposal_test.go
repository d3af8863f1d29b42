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

func TestProposalService_Create(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	p := ts.project(t, ts.user(t, "client", false).ID)
	dev := ts.user(t, "dev", true)

	prop, err := ts.proposals.Create(ctx, p.ID, CreateProposalInput{
		FreelancerID: &dev.ID, CoverLetter: "I have shipped three dApps.",
		ProposedBudget: ptr(decimal.RequireFromString("1200.50")),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProposalStatusPending, prop.Status)
	assert.Equal(t, p.ID, prop.ProjectID)
	assert.Contains(t, ts.pub.kinds(), EventProposalCreated)

	items, err := ts.proposals.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1200.5", items[0].ProposedBudget.String())
}

func TestProposalService_CreateErrors(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	p := ts.project(t, ts.user(t, "client", false).ID)
	dev := ts.user(t, "dev", true)
	ghost := uuid.New()

	_, err := ts.proposals.Create(ctx, uuid.New(), CreateProposalInput{
		FreelancerID: &dev.ID, CoverLetter: "x", ProposedBudget: ptr(decimal.NewFromInt(1)),
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	tests := []struct {
		name      string
		in        CreateProposalInput
		wantField string
	}{
		{"missing cover letter", CreateProposalInput{FreelancerID: &dev.ID, ProposedBudget: ptr(decimal.NewFromInt(1))}, "coverLetter"},
		{"negative budget", CreateProposalInput{FreelancerID: &dev.ID, CoverLetter: "x", ProposedBudget: ptr(decimal.NewFromInt(-5))}, "proposedBudget"},
		{"budget overflows storage", CreateProposalInput{FreelancerID: &dev.ID, CoverLetter: "x", ProposedBudget: ptr(decimal.NewFromInt(1_000_000))}, "proposedBudget"},
		{"unknown freelancer", CreateProposalInput{FreelancerID: &ghost, CoverLetter: "x", ProposedBudget: ptr(decimal.NewFromInt(1))}, "freelancerId"},
		{"bad status", CreateProposalInput{FreelancerID: &dev.ID, CoverLetter: "x", ProposedBudget: ptr(decimal.NewFromInt(1)), Status: ptr("withdrawn")}, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.proposals.Create(ctx, p.ID, tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "Invalid proposal data", verr.Msg)
			assert.Contains(t, fieldNames(verr), tt.wantField)
		})
	}
}

func TestProposalService_Update(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	p := ts.project(t, ts.user(t, "client", false).ID)
	dev := ts.user(t, "dev", true)
	prop, err := ts.proposals.Create(ctx, p.ID, CreateProposalInput{
		FreelancerID: &dev.ID, CoverLetter: "x", ProposedBudget: ptr(decimal.NewFromInt(10)),
	})
	require.NoError(t, err)

	updated, err := ts.proposals.Update(ctx, prop.ID, UpdateProposalInput{Status: ptr(model.ProposalStatusAccepted)})
	require.NoError(t, err)
	assert.Equal(t, model.ProposalStatusAccepted, updated.Status)
	assert.Equal(t, "x", updated.CoverLetter)

	_, err = ts.proposals.Update(ctx, uuid.New(), UpdateProposalInput{CoverLetter: ptr("y")})
	assert.ErrorIs(t, err, ErrProposalNotFound)
}
