package service

import (
	"context"
	"time"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/dappwork/marketplace/internal/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const msgInvalidModule = "Invalid module data"

type ProjectModuleService interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.ProjectModule, error)
	Create(ctx context.Context, projectID uuid.UUID, in CreateModuleInput) (*model.ProjectModule, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateModuleInput) (*model.ProjectModule, error)
}

type projectModuleService struct {
	modules  repo.ProjectModuleRepo
	projects repo.ProjectRepo
}

func NewProjectModuleService(modules repo.ProjectModuleRepo, projects repo.ProjectRepo) ProjectModuleService {
	return &projectModuleService{modules: modules, projects: projects}
}

type CreateModuleInput struct {
	Name        string           `json:"name" binding:"required" example:"Smart contract audit"`
	Description *string          `json:"description"`
	Budget      *decimal.Decimal `json:"budget" binding:"required" swaggertype:"string" example:"800.00"`
	Deadline    *time.Time       `json:"deadline"`
	Status      *string          `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Priority    *string          `json:"priority" binding:"omitempty,oneof=low medium high"`
	Progress    *int             `json:"progress" binding:"omitempty,min=0,max=100"`
	Order       *int             `json:"order" binding:"required"`
}

type UpdateModuleInput struct {
	Name        *string          `json:"name" binding:"omitempty,min=1"`
	Description *string          `json:"description"`
	Budget      *decimal.Decimal `json:"budget" swaggertype:"string"`
	Deadline    *time.Time       `json:"deadline"`
	Status      *string          `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Priority    *string          `json:"priority" binding:"omitempty,oneof=low medium high"`
	Progress    *int             `json:"progress" binding:"omitempty,min=0,max=100"`
	Order       *int             `json:"order"`
}

func (s *projectModuleService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.ProjectModule, error) {
	return s.modules.ListByProject(ctx, projectID)
}

func (s *projectModuleService) Create(ctx context.Context, projectID uuid.UUID, in CreateModuleInput) (*model.ProjectModule, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, notFoundAs(err, ErrProjectNotFound)
	}
	if err := checkInput(msgInvalidModule, in); err != nil {
		return nil, err
	}
	var fe fieldErrors
	checkPositive(&fe, "budget", in.Budget)
	if err := fe.err(msgInvalidModule); err != nil {
		return nil, err
	}

	m := &model.ProjectModule{
		ProjectID:   projectID,
		Name:        in.Name,
		Description: in.Description,
		Budget:      *in.Budget,
		Deadline:    in.Deadline,
		Status:      deref(in.Status, model.ModuleStatusPending),
		Priority:    deref(in.Priority, model.PriorityMedium),
		Progress:    deref(in.Progress, 0),
		Order:       *in.Order,
	}
	if err := s.modules.Create(ctx, m); err != nil {
		return nil, duplicateAs(err, msgInvalidModule, "order", "is already used by another module of this project")
	}
	telemetry.RecordEntityCreated("project_module")
	return m, nil
}

func (s *projectModuleService) Update(ctx context.Context, id uuid.UUID, in UpdateModuleInput) (*model.ProjectModule, error) {
	if err := checkInput(msgInvalidModule, in); err != nil {
		return nil, err
	}
	var fe fieldErrors
	checkPositive(&fe, "budget", in.Budget)
	if err := fe.err(msgInvalidModule); err != nil {
		return nil, err
	}

	m, err := s.modules.Update(ctx, id, func(m *model.ProjectModule) error {
		assign(&m.Name, in.Name)
		assignOptional(&m.Description, in.Description)
		assign(&m.Budget, in.Budget)
		assignOptional(&m.Deadline, in.Deadline)
		assign(&m.Status, in.Status)
		assign(&m.Priority, in.Priority)
		assign(&m.Progress, in.Progress)
		assign(&m.Order, in.Order)
		return nil
	})
	if err != nil {
		err = notFoundAs(err, ErrModuleNotFound)
		return nil, duplicateAs(err, msgInvalidModule, "order", "is already used by another module of this project")
	}
	return m, nil
}
