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

func TestMilestoneService_Transitions(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	p := ts.project(t, ts.user(t, "client", false).ID)

	m, err := ts.milestones.Create(ctx, p.ID, CreateMilestoneInput{Description: "Audit", Amount: ptr(decimal.NewFromInt(300))})
	require.NoError(t, err)
	assert.Equal(t, model.MilestoneStatusPending, m.Status)
	assert.Nil(t, m.CompletedAt)

	_, err = ts.milestones.Update(ctx, m.ID, UpdateMilestoneInput{Status: ptr(model.MilestoneStatusPaid)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"status"}, fieldNames(verr))

	done, err := ts.milestones.Update(ctx, m.ID, UpdateMilestoneInput{Status: ptr(model.MilestoneStatusCompleted)})
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	stamped := *done.CompletedAt

	again, err := ts.milestones.Update(ctx, m.ID, UpdateMilestoneInput{Status: ptr(model.MilestoneStatusCompleted)})
	require.NoError(t, err)
	assert.Equal(t, stamped, *again.CompletedAt)

	paid, err := ts.milestones.Update(ctx, m.ID, UpdateMilestoneInput{Status: ptr(model.MilestoneStatusPaid)})
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, stamped, *paid.CompletedAt)

	_, err = ts.milestones.Update(ctx, m.ID, UpdateMilestoneInput{Status: ptr(model.MilestoneStatusPending)})
	require.ErrorAs(t, err, &verr)

	var changes int
	for _, k := range ts.pub.kinds() {
		if k == EventMilestoneStatusChanged {
			changes++
		}
	}
	assert.Equal(t, 2, changes)
}

func TestMilestoneService_CreateErrors(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	client := ts.user(t, "client", false)
	p := ts.project(t, client.ID)
	other := ts.project(t, client.ID)
	foreign, err := ts.modules.Create(ctx, other.ID, CreateModuleInput{Name: "m", Budget: ptr(decimal.NewFromInt(1)), Order: ptr(1)})
	require.NoError(t, err)

	_, err = ts.milestones.Create(ctx, uuid.New(), CreateMilestoneInput{Description: "d", Amount: ptr(decimal.NewFromInt(1))})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	var verr *ValidationError
	_, err = ts.milestones.Create(ctx, p.ID, CreateMilestoneInput{Description: "d", Amount: ptr(decimal.Zero)})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, fieldNames(verr), "amount")

	_, err = ts.milestones.Create(ctx, p.ID, CreateMilestoneInput{Description: "d", Amount: ptr(decimal.NewFromInt(5_000_000))})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, fieldNames(verr), "amount")

	_, err = ts.milestones.Create(ctx, p.ID, CreateMilestoneInput{ModuleID: &foreign.ID, Description: "d", Amount: ptr(decimal.NewFromInt(1))})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, fieldNames(verr), "moduleId")

	_, err = ts.milestones.Update(ctx, uuid.New(), UpdateMilestoneInput{Description: ptr("x")})
	assert.ErrorIs(t, err, ErrMilestoneNotFound)
}
