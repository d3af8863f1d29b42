package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	DefaultRevisionRounds       = 3
	DefaultDisputeResolution    = "community_arbitration"
	DefaultGasFeeResponsibility = "split"
	DefaultAutoReleaseAfterDays = 7
)

// DefaultPlatformFee is the platform cut in percent.
var DefaultPlatformFee = decimal.RequireFromString("2.5")

// SmartContract holds the payment terms agreed for a project. Nothing here is executed on-chain.
type SmartContract struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID         `gorm:"type:uuid;not null;index:ix_smart_contracts_project_id;uniqueIndex:uq_smart_contracts_active_project,where:is_active" json:"projectId"`
	Terms     datatypes.JSONMap `gorm:"type:jsonb;not null" swaggertype:"object" json:"terms"`

	PaymentSchedule      string          `gorm:"type:text;not null" json:"paymentSchedule"`
	RevisionRounds       int             `gorm:"not null;check:revision_rounds >= 0" json:"revisionRounds"`
	CancellationTerms    *string         `gorm:"type:text" json:"cancellationTerms"`
	QualityStandards     *string         `gorm:"type:text" json:"qualityStandards"`
	DisputeResolution    string          `gorm:"type:text;not null" json:"disputeResolution"`
	PlatformFee          decimal.Decimal `gorm:"type:numeric(5,2);not null;check:platform_fee BETWEEN 0 AND 10" json:"platformFee"`
	GasFeeResponsibility string          `gorm:"type:text;not null" json:"gasFeeResponsibility"`
	AutoReleaseAfterDays int             `gorm:"not null;check:auto_release_after_days BETWEEN 1 AND 30" json:"autoReleaseAfterDays"`
	IsActive             bool            `gorm:"not null" json:"isActive"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`

	// SmartContract <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (SmartContract) TableName() string { return "smart_contracts" }

func (s *SmartContract) Clone() *SmartContract {
	c := *s
	c.Terms = cloneMap(s.Terms)
	c.CancellationTerms = cloneString(s.CancellationTerms)
	c.QualityStandards = cloneString(s.QualityStandards)
	c.Project = nil
	return &c
}
