package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	ProjectStatusOpen       = "open"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"

	EscrowStatusPending  = "pending"
	EscrowStatusFunded   = "funded"
	EscrowStatusReleased = "released"
)

type Project struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title        string          `gorm:"type:text;not null" json:"title"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	ClientID     uuid.UUID       `gorm:"type:uuid;not null;index:ix_projects_client_id" json:"clientId"`
	FreelancerID *uuid.UUID      `gorm:"type:uuid;index:ix_projects_freelancer_id" json:"freelancerId"`
	TotalBudget  decimal.Decimal `gorm:"type:numeric(10,4);not null;check:total_budget > 0" json:"totalBudget"`

	Status   string                      `gorm:"type:text;not null;check:status IN ('open','in_progress','completed','cancelled')" json:"status"`
	Category *string                     `gorm:"type:text" json:"category"`
	Tags     datatypes.JSONSlice[string] `gorm:"type:jsonb;not null" json:"tags"`
	Deadline *time.Time                  `json:"deadline"`

	SmartContractAddress *string `gorm:"type:text" json:"smartContractAddress"`
	EscrowStatus         string  `gorm:"type:text;not null;check:escrow_status IN ('pending','funded','released')" json:"escrowStatus"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`

	// Project <-> User
	Client     *User `gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE;" json:"-"`
	Freelancer *User `gorm:"foreignKey:FreelancerID;references:ID;constraint:OnUpdate:CASCADE;" json:"-"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) Clone() *Project {
	c := *p
	c.FreelancerID = cloneUUID(p.FreelancerID)
	c.Category = cloneString(p.Category)
	c.Tags = append(datatypes.JSONSlice[string]{}, p.Tags...)
	c.Deadline = cloneTime(p.Deadline)
	c.SmartContractAddress = cloneString(p.SmartContractAddress)
	c.Client, c.Freelancer = nil, nil
	return &c
}
