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

func TestProjectModuleService_CreateAndList(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	p := ts.project(t, ts.user(t, "client", false).ID)

	for _, order := range []int{3, 1, 2} {
		_, err := ts.modules.Create(ctx, p.ID, CreateModuleInput{
			Name: "m", Budget: ptr(decimal.NewFromInt(100)), Order: ptr(order),
		})
		require.NoError(t, err)
	}

	items, err := ts.modules.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, m := range items {
		assert.Equal(t, i+1, m.Order)
		assert.Equal(t, model.ModuleStatusPending, m.Status)
		assert.Equal(t, model.PriorityMedium, m.Priority)
		assert.Equal(t, 0, m.Progress)
	}
}

func TestProjectModuleService_CreateErrors(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	p := ts.project(t, ts.user(t, "client", false).ID)

	_, err := ts.modules.Create(ctx, uuid.New(), CreateModuleInput{Name: "m", Budget: ptr(decimal.NewFromInt(1)), Order: ptr(1)})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = ts.modules.Create(ctx, p.ID, CreateModuleInput{Name: "m", Budget: ptr(decimal.NewFromInt(1)), Order: ptr(1), Progress: ptr(150)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, fieldNames(verr), "progress")

	_, err = ts.modules.Create(ctx, p.ID, CreateModuleInput{Name: "m", Budget: ptr(decimal.NewFromInt(1_000_000)), Order: ptr(1)})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, fieldNames(verr), "budget")

	_, err = ts.modules.Create(ctx, p.ID, CreateModuleInput{Name: "m", Budget: ptr(decimal.NewFromInt(1)), Order: ptr(1)})
	require.NoError(t, err)
	_, err = ts.modules.Create(ctx, p.ID, CreateModuleInput{Name: "dup", Budget: ptr(decimal.NewFromInt(1)), Order: ptr(1)})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, fieldNames(verr), "order")
}

func TestProjectModuleService_Update(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	p := ts.project(t, ts.user(t, "client", false).ID)
	m, err := ts.modules.Create(ctx, p.ID, CreateModuleInput{Name: "m", Budget: ptr(decimal.NewFromInt(1)), Order: ptr(1)})
	require.NoError(t, err)

	updated, err := ts.modules.Update(ctx, m.ID, UpdateModuleInput{Progress: ptr(40), Status: ptr(model.ModuleStatusInProgress)})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Progress)
	assert.Equal(t, model.ModuleStatusInProgress, updated.Status)
	assert.Equal(t, "m", updated.Name)

	_, err = ts.modules.Update(ctx, uuid.New(), UpdateModuleInput{Progress: ptr(1)})
	assert.ErrorIs(t, err, ErrModuleNotFound)
}
