package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ProposalStatusPending  = "pending"
	ProposalStatusAccepted = "accepted"
	ProposalStatusRejected = "rejected"
)

type Proposal struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID        uuid.UUID       `gorm:"type:uuid;not null;index:ix_proposals_project_id" json:"projectId"`
	FreelancerID     uuid.UUID       `gorm:"type:uuid;not null;index:ix_proposals_freelancer_id" json:"freelancerId"`
	CoverLetter      string          `gorm:"type:text;not null" json:"coverLetter"`
	ProposedBudget   decimal.Decimal `gorm:"type:numeric(10,4);not null;check:proposed_budget > 0" json:"proposedBudget"`
	ProposedDeadline *time.Time      `json:"proposedDeadline"`
	Status           string          `gorm:"type:text;not null;check:status IN ('pending','accepted','rejected')" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`

	Project    *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Freelancer *User    `gorm:"foreignKey:FreelancerID;references:ID;constraint:OnUpdate:CASCADE;" json:"-"`
}

func (Proposal) TableName() string { return "proposals" }

func (p *Proposal) Clone() *Proposal {
	c := *p
	c.ProposedDeadline = cloneTime(p.ProposedDeadline)
	c.Project, c.Freelancer = nil, nil
	return &c
}
