package service

import (
	"context"
	"errors"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/dappwork/marketplace/internal/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const msgInvalidUser = "Invalid user data"

type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListFreelancers(ctx context.Context) ([]*model.User, error)
	Create(ctx context.Context, in CreateUserInput) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*model.User, error)
}

type userService struct {
	r repo.UserRepo
}

func NewUserService(r repo.UserRepo) UserService {
	return &userService{r: r}
}

type CreateUserInput struct {
	Username          string           `json:"username" binding:"required,max=64" example:"solidity_sam"`
	Email             string           `json:"email" binding:"required,email" example:"sam@example.com"`
	WalletAddress     *string          `json:"walletAddress" example:"0x1234567890abcdef"`
	ProfileImage      *string          `json:"profileImage"`
	Bio               *string          `json:"bio"`
	Skills            []string         `json:"skills" binding:"omitempty,dive,required"`
	HourlyRate        *decimal.Decimal `json:"hourlyRate" swaggertype:"string" example:"85.00"`
	SuccessRate       *int             `json:"successRate" binding:"omitempty,min=0,max=100"`
	CompletedProjects *int             `json:"completedProjects" binding:"omitempty,min=0"`
	Rating            *decimal.Decimal `json:"rating" swaggertype:"string" example:"4.9"`
	TotalReviews      *int             `json:"totalReviews" binding:"omitempty,min=0"`
	IsFreelancer      *bool            `json:"isFreelancer"`
}

// UpdateUserInput lists the profile fields a user may change. Nil means unchanged.
type UpdateUserInput struct {
	Username          *string          `json:"username" binding:"omitempty,min=1,max=64"`
	Email             *string          `json:"email" binding:"omitempty,email"`
	WalletAddress     *string          `json:"walletAddress"`
	ProfileImage      *string          `json:"profileImage"`
	Bio               *string          `json:"bio"`
	Skills            *[]string        `json:"skills"`
	HourlyRate        *decimal.Decimal `json:"hourlyRate" swaggertype:"string"`
	SuccessRate       *int             `json:"successRate" binding:"omitempty,min=0,max=100"`
	CompletedProjects *int             `json:"completedProjects" binding:"omitempty,min=0"`
	Rating            *decimal.Decimal `json:"rating" swaggertype:"string"`
	TotalReviews      *int             `json:"totalReviews" binding:"omitempty,min=0"`
	IsFreelancer      *bool            `json:"isFreelancer"`
}

func checkUserNumbers(fe *fieldErrors, hourlyRate, rating *decimal.Decimal) {
	checkPositive(fe, "hourlyRate", hourlyRate)
	checkRange(fe, "rating", rating, decimal.Zero, five)
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.r.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	return u, nil
}

func (s *userService) ListFreelancers(ctx context.Context) ([]*model.User, error) {
	return s.r.ListFreelancers(ctx)
}

// taken reports whether another user already holds the username or email.
func (s *userService) taken(ctx context.Context, fe *fieldErrors, self uuid.UUID, username, email *string) error {
	if username != nil {
		u, err := s.r.GetByUsername(ctx, *username)
		switch {
		case err == nil && u.ID != self:
			fe.add("username", "is already taken")
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
	}
	if email != nil {
		u, err := s.r.GetByEmail(ctx, *email)
		switch {
		case err == nil && u.ID != self:
			fe.add("email", "is already registered")
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
	}
	return nil
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if err := checkInput(msgInvalidUser, in); err != nil {
		return nil, err
	}
	var fe fieldErrors
	checkUserNumbers(&fe, in.HourlyRate, in.Rating)
	if err := s.taken(ctx, &fe, uuid.Nil, &in.Username, &in.Email); err != nil {
		return nil, err
	}
	if err := fe.err(msgInvalidUser); err != nil {
		return nil, err
	}

	u := &model.User{
		Username:          in.Username,
		Email:             in.Email,
		WalletAddress:     in.WalletAddress,
		ProfileImage:      in.ProfileImage,
		Bio:               in.Bio,
		Skills:            datatypes.JSONSlice[string]{},
		HourlyRate:        in.HourlyRate,
		SuccessRate:       deref(in.SuccessRate, 0),
		CompletedProjects: deref(in.CompletedProjects, 0),
		Rating:            deref(in.Rating, decimal.Zero),
		TotalReviews:      deref(in.TotalReviews, 0),
		IsFreelancer:      deref(in.IsFreelancer, false),
	}
	if in.Skills != nil {
		u.Skills = datatypes.JSONSlice[string](in.Skills)
	}

	if err := s.r.Create(ctx, u); err != nil {
		return nil, duplicateAs(err, msgInvalidUser, "username", "username or email is already taken")
	}
	telemetry.RecordEntityCreated("user")
	return u, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*model.User, error) {
	if err := checkInput(msgInvalidUser, in); err != nil {
		return nil, err
	}
	var fe fieldErrors
	checkUserNumbers(&fe, in.HourlyRate, in.Rating)
	if err := s.taken(ctx, &fe, id, in.Username, in.Email); err != nil {
		return nil, err
	}
	if err := fe.err(msgInvalidUser); err != nil {
		return nil, err
	}

	u, err := s.r.Update(ctx, id, func(u *model.User) error {
		assign(&u.Username, in.Username)
		assign(&u.Email, in.Email)
		assignOptional(&u.WalletAddress, in.WalletAddress)
		assignOptional(&u.ProfileImage, in.ProfileImage)
		assignOptional(&u.Bio, in.Bio)
		if in.Skills != nil {
			u.Skills = datatypes.JSONSlice[string](*in.Skills)
		}
		assignOptional(&u.HourlyRate, in.HourlyRate)
		assign(&u.SuccessRate, in.SuccessRate)
		assign(&u.CompletedProjects, in.CompletedProjects)
		assign(&u.Rating, in.Rating)
		assign(&u.TotalReviews, in.TotalReviews)
		assign(&u.IsFreelancer, in.IsFreelancer)
		return nil
	})
	if err != nil {
		err = notFoundAs(err, ErrUserNotFound)
		return nil, duplicateAs(err, msgInvalidUser, "username", "username or email is already taken")
	}
	return u, nil
}
