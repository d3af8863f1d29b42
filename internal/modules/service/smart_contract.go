package service

import (
	"context"
	"errors"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/dappwork/marketplace/internal/pkg/contractaddr"
	"github.com/dappwork/marketplace/internal/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const msgInvalidContract = "Invalid contract data"

type SmartContractService interface {
	GetByProject(ctx context.Context, projectID uuid.UUID) (*model.SmartContract, error)
	Create(ctx context.Context, projectID uuid.UUID, in CreateSmartContractInput) (*model.SmartContract, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateSmartContractInput) (*model.SmartContract, error)
}

type smartContractService struct {
	contracts repo.SmartContractRepo
	projects  repo.ProjectRepo
	addr      contractaddr.Generator
	log       *zap.Logger
}

func NewSmartContractService(contracts repo.SmartContractRepo, projects repo.ProjectRepo, addr contractaddr.Generator, log *zap.Logger) SmartContractService {
	if addr == nil {
		addr = contractaddr.Random()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &smartContractService{contracts: contracts, projects: projects, addr: addr, log: log}
}

type CreateSmartContractInput struct {
	Terms                map[string]any   `json:"terms" binding:"required" swaggertype:"object"`
	PaymentSchedule      string           `json:"paymentSchedule" binding:"required" example:"milestone"`
	RevisionRounds       *int             `json:"revisionRounds" binding:"omitempty,min=0"`
	CancellationTerms    *string          `json:"cancellationTerms"`
	QualityStandards     *string          `json:"qualityStandards"`
	DisputeResolution    *string          `json:"disputeResolution" binding:"omitempty,min=1"`
	PlatformFee          *decimal.Decimal `json:"platformFee" swaggertype:"string" example:"2.5"`
	GasFeeResponsibility *string          `json:"gasFeeResponsibility" binding:"omitempty,min=1"`
	AutoReleaseAfterDays *int             `json:"autoReleaseAfterDays" binding:"omitempty,min=1,max=30"`
	IsActive             *bool            `json:"isActive"`
}

type UpdateSmartContractInput struct {
	Terms                map[string]any   `json:"terms" swaggertype:"object"`
	PaymentSchedule      *string          `json:"paymentSchedule" binding:"omitempty,min=1"`
	RevisionRounds       *int             `json:"revisionRounds" binding:"omitempty,min=0"`
	CancellationTerms    *string          `json:"cancellationTerms"`
	QualityStandards     *string          `json:"qualityStandards"`
	DisputeResolution    *string          `json:"disputeResolution" binding:"omitempty,min=1"`
	PlatformFee          *decimal.Decimal `json:"platformFee" swaggertype:"string"`
	GasFeeResponsibility *string          `json:"gasFeeResponsibility" binding:"omitempty,min=1"`
	AutoReleaseAfterDays *int             `json:"autoReleaseAfterDays" binding:"omitempty,min=1,max=30"`
	IsActive             *bool            `json:"isActive"`
}

const activeContractReason = "project already has an active smart contract"

func (s *smartContractService) GetByProject(ctx context.Context, projectID uuid.UUID) (*model.SmartContract, error) {
	sc, err := s.contracts.GetByProject(ctx, projectID)
	if err != nil {
		return nil, notFoundAs(err, ErrSmartContractNotFound)
	}
	return sc, nil
}

func (s *smartContractService) Create(ctx context.Context, projectID uuid.UUID, in CreateSmartContractInput) (*model.SmartContract, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, notFoundAs(err, ErrProjectNotFound)
	}
	if err := checkInput(msgInvalidContract, in); err != nil {
		return nil, err
	}
	var fe fieldErrors
	checkRange(&fe, "platformFee", in.PlatformFee, decimal.Zero, ten)
	if err := fe.err(msgInvalidContract); err != nil {
		return nil, err
	}

	sc := &model.SmartContract{
		ProjectID:            projectID,
		Terms:                in.Terms,
		PaymentSchedule:      in.PaymentSchedule,
		RevisionRounds:       deref(in.RevisionRounds, model.DefaultRevisionRounds),
		CancellationTerms:    in.CancellationTerms,
		QualityStandards:     in.QualityStandards,
		DisputeResolution:    deref(in.DisputeResolution, model.DefaultDisputeResolution),
		PlatformFee:          deref(in.PlatformFee, model.DefaultPlatformFee),
		GasFeeResponsibility: deref(in.GasFeeResponsibility, model.DefaultGasFeeResponsibility),
		AutoReleaseAfterDays: deref(in.AutoReleaseAfterDays, model.DefaultAutoReleaseAfterDays),
		IsActive:             deref(in.IsActive, true),
	}

	if sc.IsActive {
		existing, err := s.contracts.GetByProject(ctx, projectID)
		switch {
		case err == nil && existing.IsActive:
			return nil, invalid(msgInvalidContract, "isActive", activeContractReason)
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	if err := s.contracts.Create(ctx, sc); err != nil {
		return nil, duplicateAs(err, msgInvalidContract, "isActive", activeContractReason)
	}
	telemetry.RecordEntityCreated("smart_contract")

	if project.SmartContractAddress == nil {
		s.stampAddress(ctx, projectID)
	}
	return sc, nil
}

// stampAddress gives the project a placeholder contract address unless it gained one meanwhile.
// The contract row is already stored, so failures here are only logged.
func (s *smartContractService) stampAddress(ctx context.Context, projectID uuid.UUID) {
	addr, err := s.addr.Generate()
	if err != nil {
		s.log.Warn("generate contract address", zap.String("project_id", projectID.String()), zap.Error(err))
		return
	}
	_, err = s.projects.Update(ctx, projectID, func(p *model.Project) error {
		if p.SmartContractAddress == nil {
			p.SmartContractAddress = &addr
		}
		return nil
	})
	if err != nil {
		s.log.Warn("stamp contract address", zap.String("project_id", projectID.String()), zap.Error(err))
	}
}

func (s *smartContractService) Update(ctx context.Context, id uuid.UUID, in UpdateSmartContractInput) (*model.SmartContract, error) {
	if err := checkInput(msgInvalidContract, in); err != nil {
		return nil, err
	}
	var fe fieldErrors
	checkRange(&fe, "platformFee", in.PlatformFee, decimal.Zero, ten)
	if err := fe.err(msgInvalidContract); err != nil {
		return nil, err
	}

	sc, err := s.contracts.Update(ctx, id, func(sc *model.SmartContract) error {
		if in.Terms != nil {
			sc.Terms = in.Terms
		}
		assign(&sc.PaymentSchedule, in.PaymentSchedule)
		assign(&sc.RevisionRounds, in.RevisionRounds)
		assignOptional(&sc.CancellationTerms, in.CancellationTerms)
		assignOptional(&sc.QualityStandards, in.QualityStandards)
		assign(&sc.DisputeResolution, in.DisputeResolution)
		assign(&sc.PlatformFee, in.PlatformFee)
		assign(&sc.GasFeeResponsibility, in.GasFeeResponsibility)
		assign(&sc.AutoReleaseAfterDays, in.AutoReleaseAfterDays)
		assign(&sc.IsActive, in.IsActive)
		return nil
	})
	if err != nil {
		err = notFoundAs(err, ErrSmartContractNotFound)
		return nil, duplicateAs(err, msgInvalidContract, "isActive", activeContractReason)
	}
	return sc, nil
}
