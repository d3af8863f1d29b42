package memrepo

import (
	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/google/uuid"
)

func projectFilter(client, freelancer *uuid.UUID) repo.ProjectFilter {
	return repo.ProjectFilter{ClientID: client, FreelancerID: freelancer}
}
