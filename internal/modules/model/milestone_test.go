package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{MilestoneStatusPending, MilestoneStatusPending, true},
		{MilestoneStatusPending, MilestoneStatusCompleted, true},
		{MilestoneStatusCompleted, MilestoneStatusPaid, true},
		{MilestoneStatusPaid, MilestoneStatusPaid, true},
		{MilestoneStatusPending, MilestoneStatusPaid, false},
		{MilestoneStatusCompleted, MilestoneStatusPending, false},
		{MilestoneStatusPaid, MilestoneStatusCompleted, false},
		{MilestoneStatusPending, "cancelled", false},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestMilestone_AdvanceTo_StampsOnce(t *testing.T) {
	m := &Milestone{Status: MilestoneStatusPending}
	t1 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	m.AdvanceTo(MilestoneStatusCompleted, t1)
	require.NotNil(t, m.CompletedAt)
	assert.Equal(t, t1, *m.CompletedAt)
	assert.Nil(t, m.PaidAt)

	// repeating the same status changes nothing
	m.AdvanceTo(MilestoneStatusCompleted, t2)
	assert.Equal(t, t1, *m.CompletedAt)

	m.AdvanceTo(MilestoneStatusPaid, t3)
	require.NotNil(t, m.PaidAt)
	assert.Equal(t, t3, *m.PaidAt)
	assert.Equal(t, t1, *m.CompletedAt)
	assert.Equal(t, MilestoneStatusPaid, m.Status)
}

func TestMessage_Counterpart(t *testing.T) {
	a, b := mustUUID(t), mustUUID(t)
	m := &Message{SenderID: a, ReceiverID: b}
	assert.Equal(t, b, m.Counterpart(a))
	assert.Equal(t, a, m.Counterpart(b))
}
