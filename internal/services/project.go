package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/elevatify/elevatify/internal/common"
	"github.com/elevatify/elevatify/internal/logging"
	"github.com/elevatify/elevatify/internal/models"
	"github.com/elevatify/elevatify/internal/repositories/projects"
)

// ProjectFields carries the owner-editable attributes of a project.
type ProjectFields struct {
	Title       string
	Description string
	Category    string
	TeamSize    int
	Timeframe   string
	Status      models.ProjectStatus // honored by Update only; Create always starts open
}

// ProjectService mutates the project collection: creation, owner edits,
// deletion, and the join-request lifecycle
// (NotMember -> Pending -> Member, or Pending -> NotMember on reject).
type ProjectService interface {
	Create(ctx context.Context, ownerID string, fields ProjectFields) (models.Project, error)
	Update(ctx context.Context, projectID string, fields ProjectFields) error
	Delete(ctx context.Context, projectID string) error
	RequestToJoin(ctx context.Context, projectID, userID string) error
	AcceptRequest(ctx context.Context, projectID, userID string) error
	RejectRequest(ctx context.Context, projectID, userID string) error
}

type projectService struct {
	projects projects.Repository
	log      logging.Logger
	now      func() time.Time
	newID    func() string
}

func NewProjectService(repo projects.Repository, log logging.Logger) ProjectService {
	return &projectService{
		projects: repo,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create registers a new project owned by ownerID. The owner is the sole
// initial member. Not idempotent: every call creates a fresh id.
func (s *projectService) Create(ctx context.Context, ownerID string, fields ProjectFields) (models.Project, error) {
	p := models.Project{
		ID:              s.newID(),
		Title:           fields.Title,
		Description:     fields.Description,
		Category:        fields.Category,
		TeamSize:        fields.TeamSize,
		Timeframe:       fields.Timeframe,
		Status:          models.StatusOpen,
		OwnerID:         ownerID,
		Members:         []string{ownerID},
		PendingRequests: []string{},
		CreatedAt:       s.now().UnixMilli(),
	}

	err := s.projects.Mutate(ctx, func(all []models.Project) ([]models.Project, error) {
		return append(all, p), nil
	})
	if err != nil {
		return models.Project{}, fmt.Errorf("creating project: %w", err)
	}

	s.log.Info(ctx, "project created", "project_id", p.ID, "owner_id", ownerID)
	return p, nil
}

// Update applies the non-zero fields to an existing project. Ownership
// and membership are never touched here; an unknown id is a no-op.
func (s *projectService) Update(ctx context.Context, projectID string, fields ProjectFields) error {
	return s.mutateProject(ctx, projectID, "update", func(p *models.Project) bool {
		changed := false
		if fields.Title != "" && fields.Title != p.Title {
			p.Title = fields.Title
			changed = true
		}
		if fields.Description != "" && fields.Description != p.Description {
			p.Description = fields.Description
			changed = true
		}
		if fields.Category != "" && fields.Category != p.Category {
			p.Category = fields.Category
			changed = true
		}
		if fields.TeamSize > 0 && fields.TeamSize != p.TeamSize {
			p.TeamSize = fields.TeamSize
			changed = true
		}
		if fields.Timeframe != "" && fields.Timeframe != p.Timeframe {
			p.Timeframe = fields.Timeframe
			changed = true
		}
		if fields.Status.Valid() && fields.Status != p.Status {
			p.Status = fields.Status
			changed = true
		}
		return changed
	})
}

// Delete removes the project. Owner-only by contract with the caller;
// deleting an absent id is a no-op, so retries are safe.
func (s *projectService) Delete(ctx context.Context, projectID string) error {
	err := s.projects.Mutate(ctx, func(all []models.Project) ([]models.Project, error) {
		kept := make([]models.Project, 0, len(all))
		for _, p := range all {
			if p.ID != projectID {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(all) {
			return nil, common.ErrNoChange
		}
		return kept, nil
	})
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// RequestToJoin appends userID to the project's pending requests. Already
// a member or already pending means nothing to do — the only entry to
// membership is Pending, and this is the only entry to Pending.
func (s *projectService) RequestToJoin(ctx context.Context, projectID, userID string) error {
	return s.mutateProject(ctx, projectID, "join request", func(p *models.Project) bool {
		if userID == "" || p.IsMember(userID) || p.IsPending(userID) {
			return false
		}
		p.PendingRequests = append(p.PendingRequests, userID)
		return true
	})
}

// AcceptRequest promotes a pending user to member. Accepting a user who
// is not pending (including one already accepted) is a no-op, which makes
// retried accepts converge on the same state.
func (s *projectService) AcceptRequest(ctx context.Context, projectID, userID string) error {
	return s.mutateProject(ctx, projectID, "accept request", func(p *models.Project) bool {
		if !p.IsPending(userID) {
			return false
		}
		p.PendingRequests = removeID(p.PendingRequests, userID)
		if !p.IsMember(userID) {
			p.Members = append(p.Members, userID)
		}
		return true
	})
}

// RejectRequest drops a pending join request without side effects on
// membership.
func (s *projectService) RejectRequest(ctx context.Context, projectID, userID string) error {
	return s.mutateProject(ctx, projectID, "reject request", func(p *models.Project) bool {
		if !p.IsPending(userID) {
			return false
		}
		p.PendingRequests = removeID(p.PendingRequests, userID)
		return true
	})
}

// mutateProject runs fn against the identified project inside one
// collection read-modify-write. fn reports whether it changed anything;
// unknown ids and unchanged projects resolve as silent no-ops.
func (s *projectService) mutateProject(ctx context.Context, projectID, op string, fn func(*models.Project) bool) error {
	err := s.projects.Mutate(ctx, func(all []models.Project) ([]models.Project, error) {
		for i := range all {
			if all[i].ID != projectID {
				continue
			}
			if !fn(&all[i]) {
				s.log.Debug(ctx, "project mutation resolved as no-op", "op", op, "project_id", projectID)
				return nil, common.ErrNoChange
			}
			return all, nil
		}
		s.log.Debug(ctx, "project not found, mutation skipped", "op", op, "project_id", projectID)
		return nil, common.ErrNoChange
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func removeID(ids []string, id string) []string {
	kept := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}
