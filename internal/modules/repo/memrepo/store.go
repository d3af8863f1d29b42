// Package memrepo keeps every entity in process memory. It satisfies the same
// repository interfaces as the gorm implementations, including their sentinel errors,
// and is used by tests and by deployments running with store.driver=memory.
package memrepo

import (
	"sync"
	"time"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/dappwork/marketplace/internal/modules/repo"
)

type Store struct {
	users      *table[model.User]
	projects   *table[model.Project]
	modules    *table[model.ProjectModule]
	contracts  *table[model.SmartContract]
	proposals  *table[model.Proposal]
	messages   *table[model.Message]
	milestones *table[model.Milestone]

	clockMu sync.Mutex
	last    time.Time
}

func New() *Store {
	return &Store{
		users:      newTable((*model.User).Clone),
		projects:   newTable((*model.Project).Clone),
		modules:    newTable((*model.ProjectModule).Clone),
		contracts:  newTable((*model.SmartContract).Clone),
		proposals:  newTable((*model.Proposal).Clone),
		messages:   newTable((*model.Message).Clone),
		milestones: newTable((*model.Milestone).Clone),
	}
}

// now never returns the same instant twice, so creation times order rows strictly
// even when the wall clock is coarse.
func (s *Store) now() time.Time {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()

	t := time.Now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func (s *Store) Users() repo.UserRepo                   { return &userRepo{s} }
func (s *Store) Projects() repo.ProjectRepo             { return &projectRepo{s} }
func (s *Store) ProjectModules() repo.ProjectModuleRepo { return &projectModuleRepo{s} }
func (s *Store) SmartContracts() repo.SmartContractRepo { return &smartContractRepo{s} }
func (s *Store) Proposals() repo.ProposalRepo           { return &proposalRepo{s} }
func (s *Store) Messages() repo.MessageRepo             { return &messageRepo{s} }
func (s *Store) Milestones() repo.MilestoneRepo         { return &milestoneRepo{s} }
