package service

import (
	"context"
	"time"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/dappwork/marketplace/internal/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const msgInvalidProposal = "Invalid proposal data"

type ProposalService interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Proposal, error)
	Create(ctx context.Context, projectID uuid.UUID, in CreateProposalInput) (*model.Proposal, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateProposalInput) (*model.Proposal, error)
}

type proposalService struct {
	proposals repo.ProposalRepo
	projects  repo.ProjectRepo
	users     repo.UserRepo
	notify    notifier
}

func NewProposalService(proposals repo.ProposalRepo, projects repo.ProjectRepo, users repo.UserRepo, pub EventPublisher, log *zap.Logger) ProposalService {
	return &proposalService{proposals: proposals, projects: projects, users: users, notify: newNotifier(pub, log)}
}

type CreateProposalInput struct {
	FreelancerID     *uuid.UUID       `json:"freelancerId" binding:"required" swaggertype:"string" format:"uuid"`
	CoverLetter      string           `json:"coverLetter" binding:"required"`
	ProposedBudget   *decimal.Decimal `json:"proposedBudget" binding:"required" swaggertype:"string" example:"1800.00"`
	ProposedDeadline *time.Time       `json:"proposedDeadline"`
	Status           *string          `json:"status" binding:"omitempty,oneof=pending accepted rejected"`
}

type UpdateProposalInput struct {
	CoverLetter      *string          `json:"coverLetter" binding:"omitempty,min=1"`
	ProposedBudget   *decimal.Decimal `json:"proposedBudget" swaggertype:"string"`
	ProposedDeadline *time.Time       `json:"proposedDeadline"`
	Status           *string          `json:"status" binding:"omitempty,oneof=pending accepted rejected"`
}

func (s *proposalService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Proposal, error) {
	return s.proposals.ListByProject(ctx, projectID)
}

func (s *proposalService) Create(ctx context.Context, projectID uuid.UUID, in CreateProposalInput) (*model.Proposal, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, notFoundAs(err, ErrProjectNotFound)
	}
	if err := checkInput(msgInvalidProposal, in); err != nil {
		return nil, err
	}
	var fe fieldErrors
	checkPositive(&fe, "proposedBudget", in.ProposedBudget)
	if err := userExists(ctx, s.users, &fe, "freelancerId", in.FreelancerID); err != nil {
		return nil, err
	}
	if err := fe.err(msgInvalidProposal); err != nil {
		return nil, err
	}

	p := &model.Proposal{
		ProjectID:        projectID,
		FreelancerID:     *in.FreelancerID,
		CoverLetter:      in.CoverLetter,
		ProposedBudget:   *in.ProposedBudget,
		ProposedDeadline: in.ProposedDeadline,
		Status:           deref(in.Status, model.ProposalStatusPending),
	}
	if err := s.proposals.Create(ctx, p); err != nil {
		return nil, err
	}
	telemetry.RecordEntityCreated("proposal")
	s.notify.emit(ctx, Event{
		Kind:      EventProposalCreated,
		EntityID:  p.ID,
		ProjectID: &p.ProjectID,
		Data:      map[string]any{"freelancerId": p.FreelancerID, "proposedBudget": p.ProposedBudget.String()},
	})
	return p, nil
}

func (s *proposalService) Update(ctx context.Context, id uuid.UUID, in UpdateProposalInput) (*model.Proposal, error) {
	if err := checkInput(msgInvalidProposal, in); err != nil {
		return nil, err
	}
	var fe fieldErrors
	checkPositive(&fe, "proposedBudget", in.ProposedBudget)
	if err := fe.err(msgInvalidProposal); err != nil {
		return nil, err
	}

	p, err := s.proposals.Update(ctx, id, func(p *model.Proposal) error {
		assign(&p.CoverLetter, in.CoverLetter)
		assign(&p.ProposedBudget, in.ProposedBudget)
		assignOptional(&p.ProposedDeadline, in.ProposedDeadline)
		assign(&p.Status, in.Status)
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, ErrProposalNotFound)
	}
	return p, nil
}
