// Package projections computes read-side views over the stored
// entities. Every view is recomputed from the repositories on each
// call; nothing is cached or patched incrementally, so a projection is
// always consistent with a single read of the store.
package projections

import (
	"context"
	"fmt"

	"github.com/elevatify/elevatify/internal/models"
	"github.com/elevatify/elevatify/internal/repositories/friends"
	"github.com/elevatify/elevatify/internal/repositories/messages"
	"github.com/elevatify/elevatify/internal/repositories/projects"
)

// Projections is the read-side API over the repositories.
type Projections struct {
	projects projects.Repository
	friends  friends.Repository
	messages messages.Repository
}

func New(p projects.Repository, f friends.Repository, m messages.Repository) *Projections {
	return &Projections{projects: p, friends: f, messages: m}
}

// CategoryAggregate is the per-category rollup of the project
// collection.
type CategoryAggregate struct {
	Category        string `json:"category"`
	ProjectCount    int    `json:"projectCount"`
	MemberCount     int    `json:"memberCount"`
	PendingRequests int    `json:"pendingRequests"`
}

// CategoryAggregates rolls the whole project collection up by category.
// Every fixed label appears exactly once, in display order, with zero
// counts when no project carries it. Unknown labels fold into Other so
// the per-category project counts always sum to the collection total.
func (v *Projections) CategoryAggregates(ctx context.Context) ([]CategoryAggregate, error) {
	all, err := v.projects.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregating categories: %w", err)
	}
	return AggregateByCategory(all), nil
}

// AggregateByCategory is the pure rollup behind CategoryAggregates.
func AggregateByCategory(all []models.Project) []CategoryAggregate {
	byLabel := make(map[string]*CategoryAggregate, len(models.Categories))
	out := make([]CategoryAggregate, len(models.Categories))
	for i, label := range models.Categories {
		out[i] = CategoryAggregate{Category: label}
		byLabel[label] = &out[i]
	}
	for _, p := range all {
		label := p.Category
		if !models.KnownCategory(label) {
			label = models.CategoryOther
		}
		agg := byLabel[label]
		agg.ProjectCount++
		agg.MemberCount += len(p.Members)
		agg.PendingRequests += len(p.PendingRequests)
	}
	return out
}

// Stats is the per-user dashboard summary.
type Stats struct {
	ActiveProjects    int `json:"activeProjects"`
	CompletedProjects int `json:"completedProjects"`
	TeamMembers       int `json:"teamMembers"`
}

// DashboardStats summarizes the projects userID is a member of.
// TeamMembers sums the declared TeamSize of those projects, the target
// headcount rather than the current member count.
func (v *Projections) DashboardStats(ctx context.Context, userID string) (Stats, error) {
	all, err := v.projects.All(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("computing dashboard stats: %w", err)
	}
	var s Stats
	for i := range all {
		p := &all[i]
		if !p.IsMember(userID) {
			continue
		}
		if p.Status.Active() {
			s.ActiveProjects++
		} else if p.Status == models.StatusCompleted {
			s.CompletedProjects++
		}
		s.TeamMembers += p.TeamSize
	}
	return s, nil
}

// GroupForProject derives the chat-group view of a project, or nil when
// the project does not exist. Groups are never stored; membership is
// exactly the project's members at read time.
func (v *Projections) GroupForProject(ctx context.Context, projectID string) (*models.Group, error) {
	p, err := v.projects.Get(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("deriving group: %w", err)
	}
	if p == nil {
		return nil, nil
	}
	return models.GroupFromProject(p), nil
}
