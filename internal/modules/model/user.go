package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username string    `gorm:"type:text;not null;uniqueIndex:uq_users_username" json:"username"`
	Email    string    `gorm:"type:text;not null;uniqueIndex:uq_users_email" json:"email"`

	WalletAddress *string                     `gorm:"type:text" json:"walletAddress"`
	ProfileImage  *string                     `gorm:"type:text" json:"profileImage"`
	Bio           *string                     `gorm:"type:text" json:"bio"`
	Skills        datatypes.JSONSlice[string] `gorm:"type:jsonb;not null" json:"skills"`
	HourlyRate    *decimal.Decimal            `gorm:"type:numeric(10,4)" json:"hourlyRate"`

	SuccessRate       int             `gorm:"not null;check:success_rate BETWEEN 0 AND 100" json:"successRate"`
	CompletedProjects int             `gorm:"not null;check:completed_projects >= 0" json:"completedProjects"`
	Rating            decimal.Decimal `gorm:"type:numeric(3,2);not null;check:rating BETWEEN 0 AND 5" json:"rating"`
	TotalReviews      int             `gorm:"not null;check:total_reviews >= 0" json:"totalReviews"`
	IsFreelancer      bool            `gorm:"not null;index:ix_users_is_freelancer" json:"isFreelancer"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (User) TableName() string { return "users" }

// Clone returns a copy that shares no mutable state with u.
func (u *User) Clone() *User {
	c := *u
	c.WalletAddress = cloneString(u.WalletAddress)
	c.ProfileImage = cloneString(u.ProfileImage)
	c.Bio = cloneString(u.Bio)
	c.Skills = append(datatypes.JSONSlice[string]{}, u.Skills...)
	if u.HourlyRate != nil {
		r := *u.HourlyRate
		c.HourlyRate = &r
	}
	return &c
}
