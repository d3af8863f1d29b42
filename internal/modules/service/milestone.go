package service

import (
	"context"
	"errors"
	"time"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/dappwork/marketplace/internal/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const msgInvalidMilestone = "Invalid milestone data"

type MilestoneService interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Milestone, error)
	Create(ctx context.Context, projectID uuid.UUID, in CreateMilestoneInput) (*model.Milestone, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateMilestoneInput) (*model.Milestone, error)
}

type milestoneService struct {
	milestones repo.MilestoneRepo
	projects   repo.ProjectRepo
	modules    repo.ProjectModuleRepo
	notify     notifier
	now        func() time.Time
}

func NewMilestoneService(milestones repo.MilestoneRepo, projects repo.ProjectRepo, modules repo.ProjectModuleRepo, pub EventPublisher, log *zap.Logger) MilestoneService {
	return &milestoneService{
		milestones: milestones,
		projects:   projects,
		modules:    modules,
		notify:     newNotifier(pub, log),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

type CreateMilestoneInput struct {
	ModuleID    *uuid.UUID       `json:"moduleId" swaggertype:"string" format:"uuid"`
	Description string           `json:"description" binding:"required" example:"Testnet deployment"`
	Amount      *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"500.00"`
}

// UpdateMilestoneInput changes the description, amount or status. Status only
// moves forward one step at a time: pending, completed, paid.
type UpdateMilestoneInput struct {
	Description *string          `json:"description" binding:"omitempty,min=1"`
	Amount      *decimal.Decimal `json:"amount" swaggertype:"string"`
	Status      *string          `json:"status" binding:"omitempty,oneof=pending completed paid"`
}

func (s *milestoneService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Milestone, error) {
	return s.milestones.ListByProject(ctx, projectID)
}

func (s *milestoneService) Create(ctx context.Context, projectID uuid.UUID, in CreateMilestoneInput) (*model.Milestone, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, notFoundAs(err, ErrProjectNotFound)
	}
	if err := checkInput(msgInvalidMilestone, in); err != nil {
		return nil, err
	}
	var fe fieldErrors
	checkPositive(&fe, "amount", in.Amount)
	if in.ModuleID != nil {
		m, err := s.modules.GetByID(ctx, *in.ModuleID)
		switch {
		case err == nil && m.ProjectID != projectID:
			fe.add("moduleId", "belongs to a different project")
		case errors.Is(err, gorm.ErrRecordNotFound):
			fe.add("moduleId", "does not reference an existing module")
		case err != nil:
			return nil, err
		}
	}
	if err := fe.err(msgInvalidMilestone); err != nil {
		return nil, err
	}

	m := &model.Milestone{
		ProjectID:   projectID,
		ModuleID:    in.ModuleID,
		Description: in.Description,
		Amount:      *in.Amount,
		Status:      model.MilestoneStatusPending,
	}
	if err := s.milestones.Create(ctx, m); err != nil {
		return nil, err
	}
	telemetry.RecordEntityCreated("milestone")
	return m, nil
}

func (s *milestoneService) Update(ctx context.Context, id uuid.UUID, in UpdateMilestoneInput) (*model.Milestone, error) {
	if err := checkInput(msgInvalidMilestone, in); err != nil {
		return nil, err
	}
	var fe fieldErrors
	checkPositive(&fe, "amount", in.Amount)
	if err := fe.err(msgInvalidMilestone); err != nil {
		return nil, err
	}

	var from string
	m, err := s.milestones.Update(ctx, id, func(m *model.Milestone) error {
		from = m.Status
		if in.Status != nil && !model.CanTransition(m.Status, *in.Status) {
			return invalid(msgInvalidMilestone, "status", "cannot move from "+m.Status+" to "+*in.Status)
		}
		assign(&m.Description, in.Description)
		assign(&m.Amount, in.Amount)
		if in.Status != nil {
			m.AdvanceTo(*in.Status, s.now())
		}
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, ErrMilestoneNotFound)
	}

	if m.Status != from {
		s.notify.emit(ctx, Event{
			Kind:      EventMilestoneStatusChanged,
			EntityID:  m.ID,
			ProjectID: &m.ProjectID,
			Data:      map[string]any{"from": from, "to": m.Status},
		})
	}
	return m, nil
}
