package bootstrap

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/dappwork/marketplace/internal/modules/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Users    []seedUser    `yaml:"users"`
	Projects []seedProject `yaml:"projects"`
	Messages []seedMessage `yaml:"messages"`
}

type seedUser struct {
	Username          string   `yaml:"username"`
	Email             string   `yaml:"email"`
	WalletAddress     *string  `yaml:"walletAddress"`
	ProfileImage      *string  `yaml:"profileImage"`
	Bio               *string  `yaml:"bio"`
	Skills            []string `yaml:"skills"`
	HourlyRate        string   `yaml:"hourlyRate"`
	SuccessRate       *int     `yaml:"successRate"`
	CompletedProjects *int     `yaml:"completedProjects"`
	Rating            string   `yaml:"rating"`
	TotalReviews      *int     `yaml:"totalReviews"`
	IsFreelancer      bool     `yaml:"isFreelancer"`
}

type seedProject struct {
	Key                  string       `yaml:"key"`
	Title                string       `yaml:"title"`
	Description          string       `yaml:"description"`
	Client               string       `yaml:"client"`
	Freelancer           string       `yaml:"freelancer"`
	TotalBudget          string       `yaml:"totalBudget"`
	Status               *string      `yaml:"status"`
	Category             *string      `yaml:"category"`
	Tags                 []string     `yaml:"tags"`
	DeadlineInDays       *int         `yaml:"deadlineInDays"`
	SmartContractAddress *string      `yaml:"smartContractAddress"`
	EscrowStatus         *string      `yaml:"escrowStatus"`
	Modules              []seedModule `yaml:"modules"`
}

type seedModule struct {
	Name           string  `yaml:"name"`
	Description    *string `yaml:"description"`
	Budget         string  `yaml:"budget"`
	DeadlineInDays *int    `yaml:"deadlineInDays"`
	Status         *string `yaml:"status"`
	Priority       *string `yaml:"priority"`
	Progress       *int    `yaml:"progress"`
	Order          int     `yaml:"order"`
}

type seedMessage struct {
	Project string `yaml:"project"`
	From    string `yaml:"from"`
	To      string `yaml:"to"`
	Content string `yaml:"content"`
	Read    bool   `yaml:"read"`
}

// Seeder loads the sample marketplace through the services, with the same
// validation and defaults as API requests.
type Seeder struct {
	Users    service.UserService
	Projects service.ProjectService
	Modules  service.ProjectModuleService
	Messages service.MessageService
	Lookup   repo.UserRepo
	Log      *zap.Logger

	// Data overrides the embedded fixture when set.
	Data []byte
	Now  func() time.Time
}

// Run inserts the fixture unless its first user already exists.
func (s *Seeder) Run(ctx context.Context) error {
	data := s.Data
	if data == nil {
		data = defaultSeed
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse seed data: %w", err)
	}
	if len(f.Users) == 0 {
		return nil
	}

	_, err := s.Lookup.GetByUsername(ctx, f.Users[0].Username)
	switch {
	case err == nil:
		s.log().Info("seed data already present, skipping")
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}

	users := make(map[string]uuid.UUID, len(f.Users))
	for _, su := range f.Users {
		in, err := su.input()
		if err != nil {
			return fmt.Errorf("seed user %s: %w", su.Username, err)
		}
		u, err := s.Users.Create(ctx, in)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", su.Username, err)
		}
		users[su.Username] = u.ID
	}

	projects := make(map[string]uuid.UUID, len(f.Projects))
	for _, sp := range f.Projects {
		id, err := s.seedProject(ctx, sp, users, now)
		if err != nil {
			return fmt.Errorf("seed project %s: %w", sp.Key, err)
		}
		projects[sp.Key] = id
	}

	for i, sm := range f.Messages {
		if err := s.seedMessage(ctx, sm, users, projects); err != nil {
			return fmt.Errorf("seed message %d: %w", i, err)
		}
	}

	s.log().Info("seed data loaded",
		zap.Int("users", len(f.Users)),
		zap.Int("projects", len(f.Projects)),
		zap.Int("messages", len(f.Messages)))
	return nil
}

func (s *Seeder) seedProject(ctx context.Context, sp seedProject, users map[string]uuid.UUID, now time.Time) (uuid.UUID, error) {
	budget, err := decimal.NewFromString(sp.TotalBudget)
	if err != nil {
		return uuid.Nil, err
	}
	client, ok := users[sp.Client]
	if !ok {
		return uuid.Nil, fmt.Errorf("unknown client %q", sp.Client)
	}
	in := service.CreateProjectInput{
		Title:                sp.Title,
		Description:          sp.Description,
		ClientID:             &client,
		TotalBudget:          &budget,
		Status:               sp.Status,
		Category:             sp.Category,
		Tags:                 sp.Tags,
		Deadline:             daysFrom(now, sp.DeadlineInDays),
		SmartContractAddress: sp.SmartContractAddress,
		EscrowStatus:         sp.EscrowStatus,
	}
	if sp.Freelancer != "" {
		id, ok := users[sp.Freelancer]
		if !ok {
			return uuid.Nil, fmt.Errorf("unknown freelancer %q", sp.Freelancer)
		}
		in.FreelancerID = &id
	}
	p, err := s.Projects.Create(ctx, in)
	if err != nil {
		return uuid.Nil, err
	}

	for _, sm := range sp.Modules {
		b, err := decimal.NewFromString(sm.Budget)
		if err != nil {
			return uuid.Nil, fmt.Errorf("module %s: %w", sm.Name, err)
		}
		order := sm.Order
		_, err = s.Modules.Create(ctx, p.ID, service.CreateModuleInput{
			Name:        sm.Name,
			Description: sm.Description,
			Budget:      &b,
			Deadline:    daysFrom(now, sm.DeadlineInDays),
			Status:      sm.Status,
			Priority:    sm.Priority,
			Progress:    sm.Progress,
			Order:       &order,
		})
		if err != nil {
			return uuid.Nil, fmt.Errorf("module %s: %w", sm.Name, err)
		}
	}
	return p.ID, nil
}

func (s *Seeder) seedMessage(ctx context.Context, sm seedMessage, users, projects map[string]uuid.UUID) error {
	from, ok := users[sm.From]
	if !ok {
		return fmt.Errorf("unknown sender %q", sm.From)
	}
	to, ok := users[sm.To]
	if !ok {
		return fmt.Errorf("unknown receiver %q", sm.To)
	}
	in := service.CreateMessageInput{SenderID: &from, ReceiverID: &to, Content: sm.Content}
	if sm.Project != "" {
		id, ok := projects[sm.Project]
		if !ok {
			return fmt.Errorf("unknown project %q", sm.Project)
		}
		in.ProjectID = &id
	}
	m, err := s.Messages.Create(ctx, in)
	if err != nil {
		return err
	}
	if sm.Read {
		return s.Messages.MarkRead(ctx, m.ID)
	}
	return nil
}

func (s *Seeder) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (su seedUser) input() (service.CreateUserInput, error) {
	in := service.CreateUserInput{
		Username:          su.Username,
		Email:             su.Email,
		WalletAddress:     su.WalletAddress,
		ProfileImage:      su.ProfileImage,
		Bio:               su.Bio,
		Skills:            su.Skills,
		SuccessRate:       su.SuccessRate,
		CompletedProjects: su.CompletedProjects,
		TotalReviews:      su.TotalReviews,
		IsFreelancer:      &su.IsFreelancer,
	}
	var err error
	if in.HourlyRate, err = optionalDecimal(su.HourlyRate); err != nil {
		return in, fmt.Errorf("hourlyRate: %w", err)
	}
	if in.Rating, err = optionalDecimal(su.Rating); err != nil {
		return in, fmt.Errorf("rating: %w", err)
	}
	return in, nil
}

func optionalDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func daysFrom(now time.Time, days *int) *time.Time {
	if days == nil {
		return nil
	}
	t := now.AddDate(0, 0, *days)
	return &t
}
