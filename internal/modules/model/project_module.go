package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ModuleStatusPending    = "pending"
	ModuleStatusInProgress = "in_progress"
	ModuleStatusCompleted  = "completed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type ProjectModule struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID   uuid.UUID       `gorm:"type:uuid;not null;index:ix_project_modules_project_id;uniqueIndex:uq_project_modules_project_order,priority:1" json:"projectId"`
	Name        string          `gorm:"type:text;not null" json:"name"`
	Description *string         `gorm:"type:text" json:"description"`
	Budget      decimal.Decimal `gorm:"type:numeric(10,4);not null;check:budget > 0" json:"budget"`
	Deadline    *time.Time      `json:"deadline"`

	Status   string `gorm:"type:text;not null;check:status IN ('pending','in_progress','completed')" json:"status"`
	Priority string `gorm:"type:text;not null;check:priority IN ('low','medium','high')" json:"priority"`
	Progress int    `gorm:"not null;check:progress BETWEEN 0 AND 100" json:"progress"`
	Order    int    `gorm:"column:order;not null;uniqueIndex:uq_project_modules_project_order,priority:2" json:"order"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`

	// ProjectModule <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ProjectModule) TableName() string { return "project_modules" }

func (m *ProjectModule) Clone() *ProjectModule {
	c := *m
	c.Description = cloneString(m.Description)
	c.Deadline = cloneTime(m.Deadline)
	c.Project = nil
	return &c
}
