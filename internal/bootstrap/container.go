package bootstrap

import (
	"time"

	"github.com/dappwork/marketplace/internal/config"
	"github.com/dappwork/marketplace/internal/infra/cache"
	"github.com/dappwork/marketplace/internal/infra/db"
	"github.com/dappwork/marketplace/internal/infra/logger"
	mq "github.com/dappwork/marketplace/internal/infra/queue"
	"github.com/dappwork/marketplace/internal/modules/handler"
	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/dappwork/marketplace/internal/modules/repo/memrepo"
	"github.com/dappwork/marketplace/internal/modules/service"
	"github.com/dappwork/marketplace/internal/pkg/contractaddr"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repos is the set of entity stores the services run against.
type Repos struct {
	Users          repo.UserRepo
	Projects       repo.ProjectRepo
	ProjectModules repo.ProjectModuleRepo
	SmartContracts repo.SmartContractRepo
	Proposals      repo.ProposalRepo
	Messages       repo.MessageRepo
	Milestones     repo.MilestoneRepo
}

func GormRepos(d *gorm.DB) Repos {
	return Repos{
		Users:          repo.NewUserRepo(d),
		Projects:       repo.NewProjectRepo(d),
		ProjectModules: repo.NewProjectModuleRepo(d),
		SmartContracts: repo.NewSmartContractRepo(d),
		Proposals:      repo.NewProposalRepo(d),
		Messages:       repo.NewMessageRepo(d),
		Milestones:     repo.NewMilestoneRepo(d),
	}
}

func MemoryRepos(s *memrepo.Store) Repos {
	return Repos{
		Users:          s.Users(),
		Projects:       s.Projects(),
		ProjectModules: s.ProjectModules(),
		SmartContracts: s.SmartContracts(),
		Proposals:      s.Proposals(),
		Messages:       s.Messages(),
		Milestones:     s.Milestones(),
	}
}

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB, only resolved for the postgres store
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if err := db.RegisterOpenTelemetryPlugin(d); err != nil {
			log.Warn("gorm tracing plugin", zap.Error(err))
		}
		if cfg.Database.AutoMigrate {
			if err := db.Migrate(d); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// entity stores
	do.Provide(inj, func(i *do.Injector) (Repos, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.Store.InMemory() {
			return MemoryRepos(memrepo.New()), nil
		}
		d, err := do.Invoke[*gorm.DB](i)
		if err != nil {
			return Repos{}, err
		}
		return GormRepos(d), nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		rdb, err := cache.New(cfg.Redis)
		if err != nil {
			return nil, err
		}
		if cfg.Telemetry.Enabled {
			if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
				do.MustInvoke[*zap.Logger](i).Warn("redis tracing plugin", zap.Error(err))
			}
		}
		return rdb, nil
	})

	// inbox cache: redis when enabled
	do.Provide(inj, func(i *do.Injector) (service.InboxCache, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.Redis.Enabled {
			return service.NoopInbox(), nil
		}
		rdb, err := do.Invoke[*redis.Client](i)
		if err != nil {
			return nil, err
		}
		return cache.NewInbox(rdb, time.Duration(cfg.Redis.InboxCacheTTLSec)*time.Second), nil
	})

	// RabbitMQ
	do.Provide(inj, func(i *do.Injector) (mq.DialFunc, error) {
		return mq.NewDialFunc(do.MustInvoke[*config.Config](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*mq.Publisher, error) {
		return mq.NewPublisher(
			do.MustInvoke[*zap.Logger](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[mq.DialFunc](i),
		)
	})

	// events: rabbitmq when enabled
	do.Provide(inj, func(i *do.Injector) (service.EventPublisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.RabbitMQ.Enabled {
			return service.NoopPublisher(), nil
		}
		pub, err := do.Invoke[*mq.Publisher](i)
		if err != nil {
			return nil, err
		}
		return mq.NewEventPublisher(pub, cfg), nil
	})

	do.Provide(inj, func(i *do.Injector) (contractaddr.Generator, error) {
		return contractaddr.Random(), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.UserService, error) {
		return service.NewUserService(do.MustInvoke[Repos](i).Users), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		r := do.MustInvoke[Repos](i)
		return service.NewProjectService(service.ProjectRepos{
			Projects:   r.Projects,
			Users:      r.Users,
			Modules:    r.ProjectModules,
			Contracts:  r.SmartContracts,
			Proposals:  r.Proposals,
			Milestones: r.Milestones,
		}, do.MustInvoke[service.EventPublisher](i), do.MustInvoke[*zap.Logger](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectModuleService, error) {
		r := do.MustInvoke[Repos](i)
		return service.NewProjectModuleService(r.ProjectModules, r.Projects), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.SmartContractService, error) {
		r := do.MustInvoke[Repos](i)
		return service.NewSmartContractService(
			r.SmartContracts,
			r.Projects,
			do.MustInvoke[contractaddr.Generator](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProposalService, error) {
		r := do.MustInvoke[Repos](i)
		return service.NewProposalService(
			r.Proposals,
			r.Projects,
			r.Users,
			do.MustInvoke[service.EventPublisher](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.MessageService, error) {
		r := do.MustInvoke[Repos](i)
		return service.NewMessageService(
			r.Messages,
			r.Users,
			r.Projects,
			do.MustInvoke[service.InboxCache](i),
			do.MustInvoke[service.EventPublisher](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.MilestoneService, error) {
		r := do.MustInvoke[Repos](i)
		return service.NewMilestoneService(
			r.Milestones,
			r.Projects,
			r.ProjectModules,
			do.MustInvoke[service.EventPublisher](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Seeder
	do.Provide(inj, func(i *do.Injector) (*Seeder, error) {
		return &Seeder{
			Users:    do.MustInvoke[service.UserService](i),
			Projects: do.MustInvoke[service.ProjectService](i),
			Modules:  do.MustInvoke[service.ProjectModuleService](i),
			Messages: do.MustInvoke[service.MessageService](i),
			Lookup:   do.MustInvoke[Repos](i).Users,
			Log:      do.MustInvoke[*zap.Logger](i),
		}, nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.UserHandler, error) {
		return handler.NewUserHandler(do.MustInvoke[service.UserService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectModuleHandler, error) {
		return handler.NewProjectModuleHandler(do.MustInvoke[service.ProjectModuleService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.SmartContractHandler, error) {
		return handler.NewSmartContractHandler(do.MustInvoke[service.SmartContractService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProposalHandler, error) {
		return handler.NewProposalHandler(do.MustInvoke[service.ProposalService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.MessageHandler, error) {
		return handler.NewMessageHandler(do.MustInvoke[service.MessageService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.MilestoneHandler, error) {
		return handler.NewMilestoneHandler(do.MustInvoke[service.MilestoneService](i)), nil
	})
	return inj
}
