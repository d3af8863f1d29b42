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
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const msgInvalidProject = "Invalid project data"

type ProjectService interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context, in ListProjectsInput) ([]*model.Project, error)
	Create(ctx context.Context, in CreateProjectInput) (*model.Project, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (*model.Project, error)
	Overview(ctx context.Context, id uuid.UUID) (*ProjectOverview, error)
}

// ProjectRepos groups the stores the project service reads.
type ProjectRepos struct {
	Projects   repo.ProjectRepo
	Users      repo.UserRepo
	Modules    repo.ProjectModuleRepo
	Contracts  repo.SmartContractRepo
	Proposals  repo.ProposalRepo
	Milestones repo.MilestoneRepo
}

type projectService struct {
	r      ProjectRepos
	notify notifier
}

func NewProjectService(r ProjectRepos, pub EventPublisher, log *zap.Logger) ProjectService {
	return &projectService{r: r, notify: newNotifier(pub, log)}
}

type ListProjectsInput struct {
	ClientID     *uuid.UUID
	FreelancerID *uuid.UUID
}

type CreateProjectInput struct {
	Title                string           `json:"title" binding:"required" example:"NFT marketplace frontend"`
	Description          string           `json:"description" binding:"required"`
	ClientID             *uuid.UUID       `json:"clientId" binding:"required" swaggertype:"string" format:"uuid"`
	FreelancerID         *uuid.UUID       `json:"freelancerId" swaggertype:"string" format:"uuid"`
	TotalBudget          *decimal.Decimal `json:"totalBudget" binding:"required" swaggertype:"string" example:"2500.00"`
	Status               *string          `json:"status" binding:"omitempty,oneof=open in_progress completed cancelled"`
	Category             *string          `json:"category"`
	Tags                 []string         `json:"tags" binding:"omitempty,dive,required"`
	Deadline             *time.Time       `json:"deadline"`
	SmartContractAddress *string          `json:"smartContractAddress"`
	EscrowStatus         *string          `json:"escrowStatus" binding:"omitempty,oneof=pending funded released"`
}

// UpdateProjectInput lists the patchable project fields. The client is fixed at creation.
type UpdateProjectInput struct {
	Title                *string          `json:"title" binding:"omitempty,min=1"`
	Description          *string          `json:"description" binding:"omitempty,min=1"`
	FreelancerID         *uuid.UUID       `json:"freelancerId" swaggertype:"string" format:"uuid"`
	TotalBudget          *decimal.Decimal `json:"totalBudget" swaggertype:"string"`
	Status               *string          `json:"status" binding:"omitempty,oneof=open in_progress completed cancelled"`
	Category             *string          `json:"category"`
	Tags                 *[]string        `json:"tags"`
	Deadline             *time.Time       `json:"deadline"`
	SmartContractAddress *string          `json:"smartContractAddress"`
	EscrowStatus         *string          `json:"escrowStatus" binding:"omitempty,oneof=pending funded released"`
}

// ProjectOverview is everything the project card shows, gathered in one call.
type ProjectOverview struct {
	Project       *model.Project         `json:"project"`
	Client        *model.User            `json:"client"`
	Freelancer    *model.User            `json:"freelancer"`
	Modules       []*model.ProjectModule `json:"modules"`
	SmartContract *model.SmartContract   `json:"smartContract"`
	Proposals     []*model.Proposal      `json:"proposals"`
	Milestones    []*model.Milestone     `json:"milestones"`
}

func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	p, err := s.r.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrProjectNotFound)
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context, in ListProjectsInput) ([]*model.Project, error) {
	if in.ClientID != nil && in.FreelancerID != nil {
		return nil, invalid("Invalid project filter", "freelancerId", "cannot be combined with clientId")
	}
	return s.r.Projects.List(ctx, repo.ProjectFilter{ClientID: in.ClientID, FreelancerID: in.FreelancerID})
}

// userExists adds a field error when id does not name a user.
func userExists(ctx context.Context, users repo.UserRepo, fe *fieldErrors, field string, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	_, err := users.GetByID(ctx, *id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fe.add(field, "does not reference an existing user")
		return nil
	}
	return err
}

func (s *projectService) Create(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	if err := checkInput(msgInvalidProject, in); err != nil {
		return nil, err
	}
	var fe fieldErrors
	checkPositive(&fe, "totalBudget", in.TotalBudget)
	if err := userExists(ctx, s.r.Users, &fe, "clientId", in.ClientID); err != nil {
		return nil, err
	}
	if err := userExists(ctx, s.r.Users, &fe, "freelancerId", in.FreelancerID); err != nil {
		return nil, err
	}
	if err := fe.err(msgInvalidProject); err != nil {
		return nil, err
	}

	p := &model.Project{
		Title:                in.Title,
		Description:          in.Description,
		ClientID:             *in.ClientID,
		FreelancerID:         in.FreelancerID,
		TotalBudget:          *in.TotalBudget,
		Status:               deref(in.Status, model.ProjectStatusOpen),
		Category:             in.Category,
		Tags:                 datatypes.JSONSlice[string]{},
		Deadline:             in.Deadline,
		SmartContractAddress: in.SmartContractAddress,
		EscrowStatus:         deref(in.EscrowStatus, model.EscrowStatusPending),
	}
	if in.Tags != nil {
		p.Tags = datatypes.JSONSlice[string](in.Tags)
	}

	if err := s.r.Projects.Create(ctx, p); err != nil {
		return nil, err
	}
	telemetry.RecordEntityCreated("project")
	s.notify.emit(ctx, Event{
		Kind:      EventProjectCreated,
		EntityID:  p.ID,
		ProjectID: &p.ID,
		Data:      map[string]any{"clientId": p.ClientID, "totalBudget": p.TotalBudget.String()},
	})
	return p, nil
}

func (s *projectService) Update(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (*model.Project, error) {
	if err := checkInput(msgInvalidProject, in); err != nil {
		return nil, err
	}
	var fe fieldErrors
	checkPositive(&fe, "totalBudget", in.TotalBudget)
	if err := userExists(ctx, s.r.Users, &fe, "freelancerId", in.FreelancerID); err != nil {
		return nil, err
	}
	if err := fe.err(msgInvalidProject); err != nil {
		return nil, err
	}

	p, err := s.r.Projects.Update(ctx, id, func(p *model.Project) error {
		assign(&p.Title, in.Title)
		assign(&p.Description, in.Description)
		assignOptional(&p.FreelancerID, in.FreelancerID)
		assign(&p.TotalBudget, in.TotalBudget)
		assign(&p.Status, in.Status)
		assignOptional(&p.Category, in.Category)
		if in.Tags != nil {
			p.Tags = datatypes.JSONSlice[string](*in.Tags)
		}
		assignOptional(&p.Deadline, in.Deadline)
		assignOptional(&p.SmartContractAddress, in.SmartContractAddress)
		assign(&p.EscrowStatus, in.EscrowStatus)
		p.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, ErrProjectNotFound)
	}
	return p, nil
}

// Overview loads the project, then fetches its people and children concurrently.
// A missing contract or unresolvable user leaves that slot nil.
func (s *projectService) Overview(ctx context.Context, id uuid.UUID) (*ProjectOverview, error) {
	ctx, span := otel.Tracer("marketplace.service").Start(ctx, "project.overview",
		trace.WithAttributes(attribute.String("project.id", id.String())))
	defer span.End()

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &ProjectOverview{Project: p}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.optionalUser(gctx, &p.ClientID)
		out.Client = u
		return err
	})
	g.Go(func() error {
		u, err := s.optionalUser(gctx, p.FreelancerID)
		out.Freelancer = u
		return err
	})
	g.Go(func() (err error) {
		out.Modules, err = s.r.Modules.ListByProject(gctx, id)
		return err
	})
	g.Go(func() error {
		sc, err := s.r.Contracts.GetByProject(gctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		out.SmartContract = sc
		return err
	})
	g.Go(func() (err error) {
		out.Proposals, err = s.r.Proposals.ListByProject(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		out.Milestones, err = s.r.Milestones.ListByProject(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return out, nil
}

func (s *projectService) optionalUser(ctx context.Context, id *uuid.UUID) (*model.User, error) {
	if id == nil {
		return nil, nil
	}
	u, err := s.r.Users.GetByID(ctx, *id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return u, err
}
