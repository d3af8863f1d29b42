package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MilestoneStatusPending   = "pending"
	MilestoneStatusCompleted = "completed"
	MilestoneStatusPaid      = "paid"
)

// milestoneRank orders milestone statuses; transitions only move forward by one step.
var milestoneRank = map[string]int{
	MilestoneStatusPending:   0,
	MilestoneStatusCompleted: 1,
	MilestoneStatusPaid:      2,
}

type Milestone struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID   uuid.UUID       `gorm:"type:uuid;not null;index:ix_milestones_project_id" json:"projectId"`
	ModuleID    *uuid.UUID      `gorm:"type:uuid;index:ix_milestones_module_id" json:"moduleId"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,4);not null;check:amount > 0" json:"amount"`
	Status      string          `gorm:"type:text;not null;check:status IN ('pending','completed','paid')" json:"status"`
	CompletedAt *time.Time      `json:"completedAt"`
	PaidAt      *time.Time      `json:"paidAt"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`

	Project *Project       `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Module  *ProjectModule `gorm:"foreignKey:ModuleID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"-"`
}

func (Milestone) TableName() string { return "milestones" }

func (m *Milestone) Clone() *Milestone {
	c := *m
	c.ModuleID = cloneUUID(m.ModuleID)
	c.CompletedAt = cloneTime(m.CompletedAt)
	c.PaidAt = cloneTime(m.PaidAt)
	c.Project, c.Module = nil, nil
	return &c
}

// CanTransition reports whether a milestone may move from one status to another.
// Staying in place is allowed; everything else must advance exactly one step.
func CanTransition(from, to string) bool {
	f, ok1 := milestoneRank[from]
	t, ok2 := milestoneRank[to]
	if !ok1 || !ok2 {
		return false
	}
	return t == f || t == f+1
}

// AdvanceTo moves m to status and stamps the matching timestamp the first time it is reached.
func (m *Milestone) AdvanceTo(status string, now time.Time) {
	if m.Status == status {
		return
	}
	m.Status = status
	switch status {
	case MilestoneStatusCompleted:
		if m.CompletedAt == nil {
			m.CompletedAt = &now
		}
	case MilestoneStatusPaid:
		if m.PaidAt == nil {
			m.PaidAt = &now
		}
	}
}
